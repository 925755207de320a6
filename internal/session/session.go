package session

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/KaramelBytes/streamstats-cli/internal/dataset"
	"github.com/KaramelBytes/streamstats-cli/internal/logger"
	"github.com/KaramelBytes/streamstats-cli/internal/parser"
)

// Session owns the dataset currently in use. A reload replaces it as a
// whole; a failed reload leaves the previous one in place.
type Session struct {
	log *slog.Logger

	mu      sync.RWMutex
	current *dataset.Dataset
	loadID  uuid.UUID
}

// New creates an empty session. A nil logger discards diagnostics.
func New(log *slog.Logger) *Session {
	if log == nil {
		log = logger.Discard()
	}
	return &Session{log: log}
}

// Load ingests path. The returned error is non-nil only when the source
// cannot be opened; skipped rows are reported through Report and the logger.
func (s *Session) Load(path string, opt parser.Options) error {
	id := uuid.New()
	log := s.log.With("load_id", id.String(), "source", path)
	log.Debug("loading dataset")
	d, err := dataset.Load(path, dataset.Options{Parser: opt, Logger: log})
	if err != nil {
		log.Error("load failed", "error", err)
		return fmt.Errorf("load %s: %w", path, err)
	}
	s.mu.Lock()
	s.current, s.loadID = d, id
	s.mu.Unlock()
	return nil
}

// Loaded reports whether a dataset has been loaded.
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// LoadID identifies the load that produced the current dataset.
func (s *Session) LoadID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadID
}

// Dataset returns the current dataset, or nil before the first load.
func (s *Session) Dataset() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Records returns a copy of the current records in input order.
func (s *Session) Records() []dataset.Record {
	return s.Dataset().Records()
}

// AttributeValues returns one value per record for name; unknown names
// yield an empty slice.
func (s *Session) AttributeValues(name string) []float64 {
	d := s.Dataset()
	if d == nil {
		return []float64{}
	}
	return d.AttributeValues(name)
}

// Report returns the diagnostics of the current dataset's load.
func (s *Session) Report() dataset.LoadReport {
	return s.Dataset().Report()
}
