package gridstate

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/rgodse/claimdesk/internal/debounce"
	"github.com/rgodse/claimdesk/internal/storage"
)

// ColumnState captures the saved layout of a single column. Order within a
// ViewState slice is significant: it defines display order.
type ColumnState struct {
	ID     string `json:"colId"`
	Width  int    `json:"width,omitempty"`
	Hide   bool   `json:"hide"`
	Pinned string `json:"pinned,omitempty"` // "left", "right", or empty
	Sort   string `json:"sort,omitempty"`   // "asc", "desc", or empty
}

// ViewState is the persisted layout of one tabular view.
type ViewState struct {
	ColumnState      []ColumnState              `json:"columnState"`
	ColumnGroupState map[string]bool            `json:"columnGroupState,omitempty"`
	FilterModel      map[string]json.RawMessage `json:"filterModel,omitempty"`
}

// GridAPI is the live grid's view of its own layout. The grid is the source
// of truth for current state; the service only bridges it to storage.
// Implementations must ignore saved columns whose ids they do not know.
type GridAPI interface {
	ColumnState() []ColumnState
	ApplyColumnState(state []ColumnState, applyOrder bool)
	ColumnGroupState() map[string]bool
	SetColumnGroupState(state map[string]bool)
	FilterModel() map[string]json.RawMessage
	SetFilterModel(model map[string]json.RawMessage)
}

// ColumnDef describes a column before the grid mounts. Saved state is
// overlaid onto defs by column id so the first render already reflects the
// previous session's layout.
type ColumnDef struct {
	Field    string
	Header   string
	Width    int
	MinWidth int
	Hide     bool
	Pinned   string
	Sortable bool
}

// Service persists and restores grid view state, keyed by a storage key
// identifying the view. All failures are logged and swallowed: a layout
// that fails to save or restore must never break the view itself.
type Service struct {
	store  *storage.Store
	logger *slog.Logger
}

// NewService returns a Service backed by the given store. A nil logger
// disables logging.
func NewService(store *storage.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, logger: logger}
}

// Save reads the grid's current layout and overwrites the persisted entry
// for the key. Last write wins; there are no merge semantics.
func (s *Service) Save(grid GridAPI, storageKey string) {
	if grid == nil {
		s.logger.Warn("grid state save skipped, grid not ready", "key", storageKey)
		return
	}
	state := ViewState{
		ColumnState:      grid.ColumnState(),
		ColumnGroupState: grid.ColumnGroupState(),
		FilterModel:      grid.FilterModel(),
	}
	if len(state.ColumnState) == 0 {
		s.logger.Warn("grid state save skipped, no columns reported", "key", storageKey)
		return
	}
	s.store.Set(storage.Durable, storageKey, state)
}

// Load applies the persisted layout for the key onto the live grid:
// column state in saved order, group expansion, and filter predicates.
// Absence of a saved state is a no-op.
func (s *Service) Load(grid GridAPI, storageKey string) {
	if grid == nil {
		s.logger.Warn("grid state load skipped, grid not ready", "key", storageKey)
		return
	}
	var state ViewState
	if !s.store.Get(storage.Durable, storageKey, &state) {
		return
	}
	if len(state.ColumnState) > 0 {
		grid.ApplyColumnState(state.ColumnState, true)
	}
	if len(state.ColumnGroupState) > 0 {
		grid.SetColumnGroupState(state.ColumnGroupState)
	}
	if len(state.FilterModel) > 0 {
		grid.SetFilterModel(state.FilterModel)
	}
}

// Clear removes the persisted entry for the key.
func (s *Service) Clear(storageKey string) {
	s.store.Delete(storage.Durable, storageKey)
}

// SavedColumnVisibility derives a column-id to visibility mapping from the
// saved state, for seeding toggle controls before the grid is ready. The
// second return is false when no saved state exists.
func (s *Service) SavedColumnVisibility(storageKey string) (map[string]bool, bool) {
	var state ViewState
	if !s.store.Get(storage.Durable, storageKey, &state) || len(state.ColumnState) == 0 {
		return nil, false
	}
	visibility := make(map[string]bool, len(state.ColumnState))
	for _, col := range state.ColumnState {
		visibility[col.ID] = !col.Hide
	}
	return visibility, true
}

// ApplyToColumnDefs overlays saved hide/width/pinned onto matching defaults
// by column id. Defs without a saved match are returned untouched; saved
// columns with no matching def are ignored.
func (s *Service) ApplyToColumnDefs(defs []ColumnDef, storageKey string) []ColumnDef {
	var state ViewState
	if !s.store.Get(storage.Durable, storageKey, &state) || len(state.ColumnState) == 0 {
		return defs
	}

	saved := make(map[string]ColumnState, len(state.ColumnState))
	for _, col := range state.ColumnState {
		saved[col.ID] = col
	}

	out := make([]ColumnDef, len(defs))
	for i, def := range defs {
		out[i] = def
		col, ok := saved[def.Field]
		if !ok {
			continue
		}
		out[i].Hide = col.Hide
		if col.Width > 0 {
			out[i].Width = col.Width
		}
		out[i].Pinned = col.Pinned
	}
	return out
}

// NewAutoSaver returns a debounced trigger that saves the grid's state at
// most once per quiet period; the last call in a burst wins. The caller
// owns the debouncer and must Cancel it on teardown.
func (s *Service) NewAutoSaver(grid GridAPI, storageKey string, wait time.Duration) *debounce.Debouncer {
	if wait <= 0 {
		wait = 500 * time.Millisecond
	}
	return debounce.New(wait, func() {
		s.Save(grid, storageKey)
	})
}
