package commands

import (
	"os"

	"worldbank-ingest/lib/configutil"
	"worldbank-ingest/lib/serviceutil"
	"worldbank-ingest/lib/supabase"
)

type Config struct {
	Supabase    supabase.Config `json:"supabase"`
	FiscalYears []int           `json:"fiscal_years"`
}

// readConfig loads config.json5 and fills credentials from the
// environment where the file leaves them out. A missing file is fine,
// whether the resulting config is usable is decided at store setup.
func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}

	if cfg.Supabase.Url == "" {
		cfg.Supabase.Url = os.Getenv("NEXT_PUBLIC_SUPABASE_URL")
	}
	if cfg.Supabase.ServiceKey == "" {
		cfg.Supabase.ServiceKey = os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	}
	if len(cfg.FiscalYears) == 0 {
		cfg.FiscalYears = []int{2023, 2024, 2025}
	}
	return cfg
}

func (c Config) hasSupabase() bool {
	return c.Supabase.Url != "" && c.Supabase.ServiceKey != ""
}
