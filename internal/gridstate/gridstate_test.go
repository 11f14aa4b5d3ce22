package gridstate

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/rgodse/claimdesk/internal/storage"
)

// fakeGrid implements GridAPI over plain fields.
type fakeGrid struct {
	columns []ColumnState
	groups  map[string]bool
	filters map[string]json.RawMessage

	applyOrder bool
}

func (g *fakeGrid) ColumnState() []ColumnState { return append([]ColumnState(nil), g.columns...) }

func (g *fakeGrid) ApplyColumnState(state []ColumnState, applyOrder bool) {
	g.applyOrder = applyOrder
	known := make(map[string]bool, len(g.columns))
	for _, col := range g.columns {
		known[col.ID] = true
	}
	var next []ColumnState
	for _, col := range state {
		if known[col.ID] {
			next = append(next, col)
		}
	}
	g.columns = next
}

func (g *fakeGrid) ColumnGroupState() map[string]bool { return g.groups }

func (g *fakeGrid) SetColumnGroupState(state map[string]bool) { g.groups = state }

func (g *fakeGrid) FilterModel() map[string]json.RawMessage { return g.filters }

func (g *fakeGrid) SetFilterModel(model map[string]json.RawMessage) { g.filters = model }

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(storage.Open(t.TempDir(), nil), nil)
}

func sampleGrid() *fakeGrid {
	return &fakeGrid{
		columns: []ColumnState{
			{ID: "billNumber", Width: 150},
			{ID: "customerName", Width: 180, Pinned: "left"},
			{ID: "tyreCompany", Width: 120, Hide: true, Sort: "asc"},
		},
		groups:  map[string]bool{"tyre": true},
		filters: map[string]json.RawMessage{"billDate": json.RawMessage(`{"type":"after","value":"2024-01-01"}`)},
	}
}

func TestSaveLoad_RoundTripsLayout(t *testing.T) {
	svc := newTestService(t)
	grid := sampleGrid()

	svc.Save(grid, "claims-view")

	// Fresh grid with same column ids but default layout.
	fresh := &fakeGrid{columns: []ColumnState{
		{ID: "customerName"},
		{ID: "tyreCompany"},
		{ID: "billNumber"},
	}}
	svc.Load(fresh, "claims-view")

	if !fresh.applyOrder {
		t.Fatalf("Load did not request saved column order")
	}
	if !reflect.DeepEqual(fresh.columns, grid.ColumnState()) {
		t.Fatalf("columns after load = %+v, want %+v", fresh.columns, grid.ColumnState())
	}
	if !fresh.groups["tyre"] {
		t.Fatalf("group state not restored: %v", fresh.groups)
	}
	if string(fresh.filters["billDate"]) != `{"type":"after","value":"2024-01-01"}` {
		t.Fatalf("filter model not restored: %s", fresh.filters["billDate"])
	}
}

func TestLoad_IsIdempotent(t *testing.T) {
	svc := newTestService(t)
	svc.Save(sampleGrid(), "claims-view")

	fresh := sampleGrid()
	svc.Load(fresh, "claims-view")
	once := append([]ColumnState(nil), fresh.columns...)

	svc.Load(fresh, "claims-view")
	if !reflect.DeepEqual(fresh.columns, once) {
		t.Fatalf("second Load changed layout: %+v vs %+v", fresh.columns, once)
	}
}

func TestLoad_UnknownColumnIDsIgnored(t *testing.T) {
	svc := newTestService(t)
	grid := sampleGrid()
	grid.columns = append(grid.columns, ColumnState{ID: "retiredColumn", Width: 90})
	svc.Save(grid, "claims-view")

	// The fresh grid no longer knows retiredColumn.
	fresh := &fakeGrid{columns: []ColumnState{
		{ID: "billNumber"}, {ID: "customerName"}, {ID: "tyreCompany"},
	}}
	svc.Load(fresh, "claims-view")

	for _, col := range fresh.columns {
		if col.ID == "retiredColumn" {
			t.Fatalf("unknown column survived restore")
		}
	}
	if len(fresh.columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(fresh.columns))
	}
}

func TestLoad_MissingStateIsNoOp(t *testing.T) {
	svc := newTestService(t)
	fresh := sampleGrid()
	before := fresh.ColumnState()

	svc.Load(fresh, "never-saved")
	if !reflect.DeepEqual(fresh.ColumnState(), before) {
		t.Fatalf("Load without saved state mutated the grid")
	}
}

func TestClear_RemovesSavedState(t *testing.T) {
	svc := newTestService(t)
	svc.Save(sampleGrid(), "claims-view")
	svc.Clear("claims-view")

	if _, ok := svc.SavedColumnVisibility("claims-view"); ok {
		t.Fatalf("state survived Clear")
	}
}

func TestSavedColumnVisibility(t *testing.T) {
	svc := newTestService(t)

	if _, ok := svc.SavedColumnVisibility("claims-view"); ok {
		t.Fatalf("visibility reported before any save")
	}

	svc.Save(sampleGrid(), "claims-view")
	vis, ok := svc.SavedColumnVisibility("claims-view")
	if !ok {
		t.Fatalf("no visibility after save")
	}
	if !vis["billNumber"] || vis["tyreCompany"] {
		t.Fatalf("visibility = %v", vis)
	}
}

func TestApplyToColumnDefs_OverlaysByID(t *testing.T) {
	svc := newTestService(t)
	svc.Save(sampleGrid(), "claims-view")

	defs := []ColumnDef{
		{Field: "billNumber", Header: "Bill Number", Width: 100},
		{Field: "tyreCompany", Header: "Tyre Company", Width: 100},
		{Field: "docketNumber", Header: "Docket Number", Width: 100},
	}
	out := svc.ApplyToColumnDefs(defs, "claims-view")

	if out[0].Width != 150 {
		t.Fatalf("billNumber width = %d, want saved 150", out[0].Width)
	}
	if !out[1].Hide {
		t.Fatalf("tyreCompany should be hidden")
	}
	if out[2].Width != 100 || out[2].Hide {
		t.Fatalf("docketNumber (no saved match) was modified: %+v", out[2])
	}
	// Input slice untouched.
	if defs[0].Width != 100 {
		t.Fatalf("ApplyToColumnDefs mutated its input")
	}
}

func TestNewAutoSaver_CoalescesSaves(t *testing.T) {
	svc := newTestService(t)
	grid := sampleGrid()

	saver := svc.NewAutoSaver(grid, "claims-view", 20*time.Millisecond)
	defer saver.Cancel()

	for i := 0; i < 10; i++ {
		grid.columns[0].Width = 150 + i
		saver.Trigger()
	}
	time.Sleep(80 * time.Millisecond)

	if _, ok := svc.SavedColumnVisibility("claims-view"); !ok {
		t.Fatalf("auto-save never fired")
	}

	fresh := sampleGrid()
	svc.Load(fresh, "claims-view")
	if fresh.columns[0].Width != 159 {
		t.Fatalf("saved width = %d, want last value 159", fresh.columns[0].Width)
	}
}
