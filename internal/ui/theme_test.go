package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 {
		t.Fatalf("ThemeNames() returned %d names, want 2", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Slate" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Slate"); got.Name != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got.Name)
	}
	if got := GetTheme("Unknown"); got.Name != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", got.Name)
	}
	if got := GetTheme(""); got.Name != "Nightfox" {
		t.Fatalf("GetTheme(\"\").Name = %q, want Nightfox (default)", got.Name)
	}
}

func TestStatusStyleFallsBackToMuted(t *testing.T) {
	th := GetTheme("Nightfox")
	styles := th.Styles()

	known := styles.StatusStyle("pending")
	unknown := styles.StatusStyle("nonsense")

	if known.GetForeground() == unknown.GetForeground() {
		t.Fatalf("unknown status should not reuse a known status color")
	}
}
