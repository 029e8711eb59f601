package runstats

import (
	"log/slog"
	"sync/atomic"
)

// Stats accumulates counters over a single pipeline run. Counter fields
// use atomic operations so workers may increment them concurrently. A
// Stats value is owned by the run that created it and is read-only once
// the run summary has been printed.
type Stats struct {
	fetched    atomic.Int64
	downloaded atomic.Int64
	extracted  atomic.Int64
	stored     atomic.Int64
	errors     atomic.Int64
}

func (s *Stats) Fetched() int64    { return s.fetched.Load() }
func (s *Stats) Downloaded() int64 { return s.downloaded.Load() }
func (s *Stats) Extracted() int64  { return s.extracted.Load() }
func (s *Stats) Stored() int64     { return s.stored.Load() }
func (s *Stats) Errors() int64     { return s.errors.Load() }

func (s *Stats) AddFetched(n int64)    { s.fetched.Add(n) }
func (s *Stats) AddDownloaded(n int64) { s.downloaded.Add(n) }
func (s *Stats) AddExtracted(n int64)  { s.extracted.Add(n) }
func (s *Stats) AddStored(n int64)     { s.stored.Add(n) }
func (s *Stats) AddErrors(n int64)     { s.errors.Add(n) }

// SuccessRate is stored/fetched expressed as a percentage. A run where
// nothing was fetched has a rate of 0 rather than a division error.
func (s *Stats) SuccessRate() float64 {
	fetched := s.Fetched()
	if fetched < 1 {
		fetched = 1
	}
	return float64(s.Stored()) / float64(fetched) * 100
}

// LogValue implements slog.LogValuer for structured logging.
func (s *Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("fetched", s.Fetched()),
		slog.Int64("downloaded", s.Downloaded()),
		slog.Int64("extracted", s.Extracted()),
		slog.Int64("stored", s.Stored()),
		slog.Int64("errors", s.Errors()),
	)
}
