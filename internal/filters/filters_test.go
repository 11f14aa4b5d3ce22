package filters

import (
	"reflect"
	"testing"
)

func TestAppliedCount_SumsScalarsAndSets(t *testing.T) {
	s := New()
	s.SetMultiple(Partial{
		ClaimStatusByCompany: []string{"accepted", "pending"},
		TyreCompany:          []string{},
	})
	s.SetDateRange("2024-01-01", "")

	if got := s.AppliedCount(); got != 3 {
		t.Fatalf("AppliedCount = %d, want 3 (2 statuses + 0 companies + from + no to)", got)
	}
}

func TestAppliedCount_EmptyByDefault(t *testing.T) {
	if got := New().AppliedCount(); got != 0 {
		t.Fatalf("AppliedCount = %d, want 0", got)
	}
}

func TestToggle_SetSemantics(t *testing.T) {
	s := New()
	s.ToggleStatus("accepted")
	s.ToggleStatus("rejected")
	s.ToggleStatus("accepted")

	got := s.Filters().ClaimStatusByCompany
	if !reflect.DeepEqual(got, []string{"rejected"}) {
		t.Fatalf("statuses = %v, want [rejected]", got)
	}
}

func TestReset_RestoresDefaults(t *testing.T) {
	s := New()
	s.ToggleStatus("accepted")
	s.ToggleCompany("MRF")
	s.SetDateRange("2024-01-01", "2024-02-01")
	s.SetViewMode(ViewGrid)

	s.Reset()

	f := s.Filters()
	if s.AppliedCount() != 0 {
		t.Fatalf("AppliedCount after Reset = %d", s.AppliedCount())
	}
	if f.ViewMode != ViewList {
		t.Fatalf("ViewMode after Reset = %q, want list", f.ViewMode)
	}
}

func TestSetViewMode_IndependentOfFilters(t *testing.T) {
	s := New()
	s.ToggleStatus("pending")
	s.SetViewMode(ViewGrid)

	f := s.Filters()
	if f.ViewMode != ViewGrid {
		t.Fatalf("ViewMode = %q, want grid", f.ViewMode)
	}
	if len(f.ClaimStatusByCompany) != 1 {
		t.Fatalf("filters changed by SetViewMode: %v", f.ClaimStatusByCompany)
	}

	s.SetViewMode("bogus")
	if s.Filters().ViewMode != ViewList {
		t.Fatalf("unknown mode not coerced to list")
	}
}

func TestSetMultiple_LeavesNilFieldsAlone(t *testing.T) {
	s := New()
	s.SetDateRange("2024-01-01", "2024-03-01")

	from := "2024-02-01"
	s.SetMultiple(Partial{BillDateFrom: &from})

	f := s.Filters()
	if f.BillDateFrom != "2024-02-01" {
		t.Fatalf("BillDateFrom = %q", f.BillDateFrom)
	}
	if f.BillDateTo != "2024-03-01" {
		t.Fatalf("BillDateTo = %q, should be untouched", f.BillDateTo)
	}
}

func TestMatch(t *testing.T) {
	cases := []struct {
		name     string
		filters  ClaimFilters
		status   string
		company  string
		billDate string
		want     bool
	}{
		{"empty matches all", ClaimFilters{}, "pending", "MRF", "2024-01-05", true},
		{"status hit", ClaimFilters{ClaimStatusByCompany: []string{"accepted"}}, "accepted", "", "", true},
		{"status miss", ClaimFilters{ClaimStatusByCompany: []string{"accepted"}}, "pending", "", "", false},
		{"company case-insensitive", ClaimFilters{TyreCompany: []string{"mrf"}}, "", "MRF", "", true},
		{"date inside range", ClaimFilters{BillDateFrom: "2024-01-01", BillDateTo: "2024-01-31"}, "", "", "2024-01-15", true},
		{"date before range", ClaimFilters{BillDateFrom: "2024-01-01"}, "", "", "2023-12-31", false},
		{"date after range", ClaimFilters{BillDateTo: "2024-01-31"}, "", "", "2024-02-01", false},
		{"timestamp truncated to day", ClaimFilters{BillDateTo: "2024-01-31"}, "", "", "2024-01-31T10:00:00Z", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filters.Match(tc.status, tc.company, tc.billDate); got != tc.want {
				t.Fatalf("Match = %v, want %v", got, tc.want)
			}
		})
	}
}
