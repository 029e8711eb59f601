package main

import (
	"worldbank-ingest/cmd/wbingest/commands"
	"worldbank-ingest/lib/serviceutil"
	"worldbank-ingest/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "wbingest")
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
