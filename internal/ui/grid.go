package ui

import (
	"encoding/json"
	"sync"

	"github.com/rgodse/claimdesk/internal/claims"
	"github.com/rgodse/claimdesk/internal/gridstate"
)

// claimsGridKey is the storage key for the claims table layout.
const claimsGridKey = "claimsGrid"

// defaultClaimColumns returns the claims table columns in default order.
func defaultClaimColumns() []gridstate.ColumnDef {
	return []gridstate.ColumnDef{
		{Field: "billNumber", Header: "Bill #", Width: 10, MinWidth: 6, Sortable: true},
		{Field: "customer", Header: "Customer", Width: 20, MinWidth: 10, Sortable: true},
		{Field: "billDate", Header: "Bill Date", Width: 12, MinWidth: 10, Sortable: true},
		{Field: "tyreCompany", Header: "Company", Width: 12, MinWidth: 8, Sortable: true},
		{Field: "tyreSerialNumber", Header: "Tyre Serial", Width: 14, MinWidth: 8},
		{Field: "vehicleNumber", Header: "Vehicle", Width: 12, MinWidth: 8, Hide: true},
		{Field: "status", Header: "Status", Width: 10, MinWidth: 8, Sortable: true},
	}
}

// claimsGrid is the live claims table layout. It is the source of truth for
// column order, width, and visibility; the gridstate service mirrors it to
// storage. The autosaver flushes from a timer goroutine, so all access is
// mutex-guarded.
type claimsGrid struct {
	mu          sync.Mutex
	cols        []gridstate.ColumnDef
	sortField   string
	sortDir     string // "asc", "desc", or empty
	groupState  map[string]bool
	filterModel map[string]json.RawMessage
}

func newClaimsGrid(defs []gridstate.ColumnDef) *claimsGrid {
	cols := make([]gridstate.ColumnDef, len(defs))
	copy(cols, defs)
	return &claimsGrid{cols: cols}
}

// ColumnState implements gridstate.GridAPI.
func (g *claimsGrid) ColumnState() []gridstate.ColumnState {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]gridstate.ColumnState, 0, len(g.cols))
	for _, c := range g.cols {
		cs := gridstate.ColumnState{
			ID:     c.Field,
			Width:  c.Width,
			Hide:   c.Hide,
			Pinned: c.Pinned,
		}
		if c.Field == g.sortField {
			cs.Sort = g.sortDir
		}
		out = append(out, cs)
	}
	return out
}

// ApplyColumnState implements gridstate.GridAPI. Saved columns whose ids
// are unknown are ignored; known columns not present in the saved state
// keep their current settings and sink below the restored ones when order
// is applied.
func (g *claimsGrid) ApplyColumnState(saved []gridstate.ColumnState, applyOrder bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	byID := make(map[string]int, len(g.cols))
	for i, c := range g.cols {
		byID[c.Field] = i
	}

	for _, cs := range saved {
		i, ok := byID[cs.ID]
		if !ok {
			continue
		}
		if cs.Width >= g.cols[i].MinWidth && cs.Width > 0 {
			g.cols[i].Width = cs.Width
		}
		g.cols[i].Hide = cs.Hide
		g.cols[i].Pinned = cs.Pinned
		if cs.Sort != "" {
			g.sortField = cs.ID
			g.sortDir = cs.Sort
		}
	}

	if !applyOrder {
		return
	}
	ordered := make([]gridstate.ColumnDef, 0, len(g.cols))
	seen := make(map[string]bool, len(g.cols))
	for _, cs := range saved {
		if i, ok := byID[cs.ID]; ok && !seen[cs.ID] {
			ordered = append(ordered, g.cols[i])
			seen[cs.ID] = true
		}
	}
	for _, c := range g.cols {
		if !seen[c.Field] {
			ordered = append(ordered, c)
		}
	}
	g.cols = ordered
}

// ColumnGroupState implements gridstate.GridAPI.
func (g *claimsGrid) ColumnGroupState() map[string]bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return cloneBoolMap(g.groupState)
}

// SetColumnGroupState implements gridstate.GridAPI.
func (g *claimsGrid) SetColumnGroupState(state map[string]bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.groupState = cloneBoolMap(state)
}

// FilterModel implements gridstate.GridAPI.
func (g *claimsGrid) FilterModel() map[string]json.RawMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return cloneRawMap(g.filterModel)
}

// SetFilterModel implements gridstate.GridAPI.
func (g *claimsGrid) SetFilterModel(model map[string]json.RawMessage) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.filterModel = cloneRawMap(model)
}

// Columns returns a copy of the current column defs in display order.
func (g *claimsGrid) Columns() []gridstate.ColumnDef {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]gridstate.ColumnDef, len(g.cols))
	copy(out, g.cols)
	return out
}

// VisibleColumns returns the columns currently shown.
func (g *claimsGrid) VisibleColumns() []gridstate.ColumnDef {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]gridstate.ColumnDef, 0, len(g.cols))
	for _, c := range g.cols {
		if !c.Hide {
			out = append(out, c)
		}
	}
	return out
}

// ToggleHide flips visibility of the column with the given id.
func (g *claimsGrid) ToggleHide(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.cols {
		if g.cols[i].Field == id {
			g.cols[i].Hide = !g.cols[i].Hide
			return
		}
	}
}

// Resize adjusts a column's width by delta, clamped to its minimum.
func (g *claimsGrid) Resize(id string, delta int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.cols {
		if g.cols[i].Field != id {
			continue
		}
		w := g.cols[i].Width + delta
		if w < g.cols[i].MinWidth {
			w = g.cols[i].MinWidth
		}
		g.cols[i].Width = w
		return
	}
}

// Move shifts the column with the given id by delta positions.
func (g *claimsGrid) Move(id string, delta int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	from := -1
	for i := range g.cols {
		if g.cols[i].Field == id {
			from = i
			break
		}
	}
	if from < 0 {
		return
	}
	to := from + delta
	if to < 0 || to >= len(g.cols) {
		return
	}
	col := g.cols[from]
	g.cols = append(g.cols[:from], g.cols[from+1:]...)
	g.cols = append(g.cols[:to], append([]gridstate.ColumnDef{col}, g.cols[to:]...)...)
}

// CycleSort advances the sort on the given column: none, asc, desc, none.
// Sorting on a different column resets direction to asc.
func (g *claimsGrid) CycleSort(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sortField != id {
		g.sortField = id
		g.sortDir = "asc"
		return
	}
	switch g.sortDir {
	case "asc":
		g.sortDir = "desc"
	case "desc":
		g.sortField = ""
		g.sortDir = ""
	default:
		g.sortDir = "asc"
	}
}

// ClearSort drops the active sort. ApplyColumnState only touches the sort
// when a saved column carries one, so resetting to defaults needs this.
func (g *claimsGrid) ClearSort() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sortField = ""
	g.sortDir = ""
}

// Sort returns the active sort column id and direction.
func (g *claimsGrid) Sort() (field, dir string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sortField, g.sortDir
}

// claimValue extracts the display value for a column id from a claim.
func claimValue(c claims.Claim, field string) string {
	switch field {
	case "billNumber":
		return c.BillNumber
	case "customer":
		return c.Customer.Name
	case "billDate":
		return c.FormatBillDate()
	case "tyreCompany":
		return c.TyreCompany
	case "tyreSerialNumber":
		return c.TyreSerialNumber
	case "vehicleNumber":
		return c.VehicleNumber
	case "status":
		return c.ClaimStatusByCompany
	}
	return ""
}

func cloneBoolMap(in map[string]bool) map[string]bool {
	if in == nil {
		return nil
	}
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneRawMap(in map[string]json.RawMessage) map[string]json.RawMessage {
	if in == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
