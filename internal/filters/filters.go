// Package filters holds the claim list's active filter criteria and
// presentation mode.
//
// The container is an injectable store so tests can run isolated instances.
// It is never persisted: filters reset on every launch. The applied-filter
// count is always derived from current state on read, never stored, so it
// cannot drift.
package filters

import (
	"strings"
	"sync"
)

// ViewMode selects how the claim list is presented.
type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"
)

// ClaimFilters is the active filter criteria. Status and company carry set
// semantics: each value toggles independently and order is not significant.
// Date bounds are inclusive and caller-validated.
type ClaimFilters struct {
	ClaimStatusByCompany []string
	TyreCompany          []string
	BillDateFrom         string
	BillDateTo           string
	ViewMode             ViewMode
}

// Partial carries a shallow merge of filter fields; nil fields are left
// untouched by SetMultiple.
type Partial struct {
	ClaimStatusByCompany []string
	TyreCompany          []string
	BillDateFrom         *string
	BillDateTo           *string
	ViewMode             *ViewMode
}

// Store coordinates concurrent access to the filter state.
type Store struct {
	mu      sync.RWMutex
	filters ClaimFilters
}

// New returns a Store with no filters applied and list mode active.
func New() *Store {
	return &Store{filters: defaults()}
}

func defaults() ClaimFilters {
	return ClaimFilters{
		ClaimStatusByCompany: []string{},
		TyreCompany:          []string{},
		ViewMode:             ViewList,
	}
}

// Filters returns a copy of the current filter state.
func (s *Store) Filters() ClaimFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.filters
	out.ClaimStatusByCompany = append([]string(nil), s.filters.ClaimStatusByCompany...)
	out.TyreCompany = append([]string(nil), s.filters.TyreCompany...)
	return out
}

// ToggleStatus flips the presence of one company-status value.
func (s *Store) ToggleStatus(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.ClaimStatusByCompany = toggle(s.filters.ClaimStatusByCompany, value)
}

// ToggleCompany flips the presence of one tyre-company value.
func (s *Store) ToggleCompany(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.TyreCompany = toggle(s.filters.TyreCompany, value)
}

// SetDateRange replaces both bill-date bounds. Empty strings clear a bound.
func (s *Store) SetDateRange(from, to string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.BillDateFrom = strings.TrimSpace(from)
	s.filters.BillDateTo = strings.TrimSpace(to)
}

// SetViewMode switches the presentation mode without touching filters.
func (s *Store) SetViewMode(mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode != ViewGrid {
		mode = ViewList
	}
	s.filters.ViewMode = mode
}

// SetMultiple merges several fields at once; nil fields are untouched.
func (s *Store) SetMultiple(p Partial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ClaimStatusByCompany != nil {
		s.filters.ClaimStatusByCompany = append([]string(nil), p.ClaimStatusByCompany...)
	}
	if p.TyreCompany != nil {
		s.filters.TyreCompany = append([]string(nil), p.TyreCompany...)
	}
	if p.BillDateFrom != nil {
		s.filters.BillDateFrom = *p.BillDateFrom
	}
	if p.BillDateTo != nil {
		s.filters.BillDateTo = *p.BillDateTo
	}
	if p.ViewMode != nil {
		s.filters.ViewMode = *p.ViewMode
	}
}

// Reset restores the no-filters, list-mode default.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = defaults()
}

// AppliedCount is the number of active filter criteria: one per non-empty
// scalar field plus the cardinality of each set-valued field. The view mode
// is presentation, not a filter, and is never counted.
func (s *Store) AppliedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := len(s.filters.ClaimStatusByCompany) + len(s.filters.TyreCompany)
	if strings.TrimSpace(s.filters.BillDateFrom) != "" {
		count++
	}
	if strings.TrimSpace(s.filters.BillDateTo) != "" {
		count++
	}
	return count
}

func toggle(values []string, value string) []string {
	for i, v := range values {
		if v == value {
			return append(values[:i], values[i+1:]...)
		}
	}
	return append(values, value)
}

// Match reports whether a claim's status, company, and bill date satisfy
// the current criteria. Empty criteria match everything.
func (f ClaimFilters) Match(status, company, billDate string) bool {
	if len(f.ClaimStatusByCompany) > 0 && !contains(f.ClaimStatusByCompany, status) {
		return false
	}
	if len(f.TyreCompany) > 0 && !contains(f.TyreCompany, company) {
		return false
	}
	day := billDate
	if len(day) > 10 {
		day = day[:10]
	}
	if f.BillDateFrom != "" && day < f.BillDateFrom {
		return false
	}
	if f.BillDateTo != "" && (day == "" || day > f.BillDateTo) {
		return false
	}
	return true
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}
