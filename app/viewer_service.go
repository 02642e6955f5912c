// Package app orchestrates the core table operations behind session handles
// for the presentation layers. All semantics live in domain/table and the
// adapters; this layer only wires them to per-upload state.
package app

import (
	"log"
	"sync"
	"time"

	"tabview/adapters/export"
	"tabview/adapters/ingest"
	"tabview/adapters/stats"
	"tabview/domain/core"
	"tabview/domain/table"
)

// Session owns one immutable loaded table plus the caller's current view
// parameters. The table is write-once at load; every parameter change fully
// recomputes the view from it.
type Session struct {
	ID       core.SessionID   `json:"id"`
	Filename string           `json:"filename"`
	Table    *table.Table     `json:"-"`
	Params   table.ViewParams `json:"params"`
	LoadedAt time.Time        `json:"loaded_at"`
}

// ViewerService is the session registry and the single entry point the UI and
// API use. The mutex guards the registry and each session's parameters; Get
// hands out a snapshot, so handlers never observe a half-replaced Params.
// Tables and views are immutable and need no guarding.
type ViewerService struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*Session
}

// NewViewerService creates an empty session registry
func NewViewerService() *ViewerService {
	return &ViewerService{sessions: make(map[core.SessionID]*Session)}
}

// Load infers a table from uploaded bytes and registers a new session for it.
// A parse failure registers nothing - the caller stays in the unloaded state.
func (s *ViewerService) Load(filename string, raw []byte) (*Session, error) {
	t, err := ingest.ReadFile(filename, raw)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:       core.SessionID(core.NewID()),
		Filename: filename,
		Table:    t,
		LoadedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	log.Printf("[ViewerService] Loaded %s into session %s (%d columns, %d rows)",
		filename, session.ID, t.NumColumns(), t.NumRows())
	return session, nil
}

// Get returns a snapshot of a session by ID. The copy is taken under the
// read lock: a concurrent UpdateParams replaces Params wholesale, so the
// caller's snapshot is always an intact before-or-after value, never a torn
// one. The table pointer is shared but immutable.
func (s *ViewerService) Get(id core.SessionID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	snapshot := *session
	return &snapshot, nil
}

// UpdateParams replaces the session's view parameters wholesale under the
// write lock; existing Get snapshots keep the previous value. The next
// CurrentView call recomputes everything; nothing is cached between calls.
func (s *ViewerService) UpdateParams(id core.SessionID, p table.ViewParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return core.ErrSessionNotFound
	}
	session.Params = p
	return nil
}

// Drop removes a session and its table
func (s *ViewerService) Drop(id core.SessionID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Controls derives the constraint space of the session's table
func (s *ViewerService) Controls(id core.SessionID) (map[string]table.Control, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return table.DeriveControls(session.Table), nil
}

// CurrentView computes the view for the session's current parameters
func (s *ViewerService) CurrentView(id core.SessionID) (*table.View, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return table.ComputeView(session.Table, session.Params), nil
}

// Summary computes the metrics readout for a numeric column of the current view
func (s *ViewerService) Summary(id core.SessionID, column string) (stats.Summary, error) {
	view, err := s.CurrentView(id)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(view, column)
}

// Distribution computes the value-frequency chart data for a numeric column
func (s *ViewerService) Distribution(id core.SessionID, column string) ([]stats.Bucket, error) {
	view, err := s.CurrentView(id)
	if err != nil {
		return nil, err
	}
	return stats.Distribution(view, column)
}

// ExportCSV serializes the current view for the filtered_export.csv download
func (s *ViewerService) ExportCSV(id core.SessionID) ([]byte, error) {
	view, err := s.CurrentView(id)
	if err != nil {
		return nil, err
	}
	return export.CSV(view)
}

// ExportExcel serializes the current view as an xlsx workbook
func (s *ViewerService) ExportExcel(id core.SessionID) ([]byte, error) {
	view, err := s.CurrentView(id)
	if err != nil {
		return nil, err
	}
	return export.Excel(view)
}
