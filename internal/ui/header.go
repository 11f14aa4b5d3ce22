package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgodse/claimdesk/internal/filters"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	var parts []string
	parts = append(parts, bg.Render("claimdesk", styles.Logo))

	if m.currentView == ViewLogin {
		parts = append(parts, bg.Render("Sign in to continue", styles.MutedText))
		if m.notice != "" {
			parts = append(parts, bg.Render(m.notice, styles.DangerText))
		}
		return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
	}

	// Connection indicator
	if m.snapshot.IsOffline() {
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	} else if m.snapshot.LastError != nil {
		parts = append(parts, bg.Render("● RETRYING", styles.WarningText))
	} else {
		parts = append(parts, bg.Render("● ON", styles.SuccessText))
	}

	// Claim count
	parts = append(parts,
		bg.Render("Claims:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.snapshot.Claims)), styles.Text),
	)

	// Applied filter count, derived on every render
	if n := m.filters.AppliedCount(); n > 0 {
		parts = append(parts,
			bg.Render("Filters:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", n), styles.AccentText),
		)
	}

	// View mode
	mode := "list"
	if m.filters.Filters().ViewMode == filters.ViewGrid {
		mode = "grid"
	}
	parts = append(parts, bg.Render(mode, styles.FaintText))

	// Signed-in user
	if m.user.Name != "" {
		parts = append(parts, bg.Render(truncate(m.user.Name, 20), styles.MutedText))
	}

	// Last refresh
	if !m.lastUpdated.IsZero() {
		parts = append(parts, bg.Render(m.lastUpdated.Format("15:04:05"), styles.FaintText))
	}

	// Transient notice
	if m.notice != "" {
		parts = append(parts, bg.Render(truncate(m.notice, 50), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewLogin:
		commands = []cmd{
			{"Tab", "Next field"},
			{"Enter", "Submit"},
			{"F2", m.login.modeLabel()},
			{"Ctrl+C", "Quit"},
		}
	case ViewIntake:
		commands = []cmd{
			{"Tab", "Next field"},
			{"Enter", "Save & continue"},
			{"Esc", ternary(m.intake.onFirstSection(), "Cancel", "Back")},
		}
	case ViewCustomers:
		commands = []cmd{
			{"Tab", "Switch field"},
			{"Enter", "Search"},
			{"↑/↓", "Select"},
			{"Esc", "Back"},
		}
	default: // ViewClaims
		commands = []cmd{
			{"j/k", "Navigate"},
			{"Enter", "Edit"},
			{"f", "Filters"},
			{"c", "Columns"},
			{"v", "List/grid"},
			{"a", "Add claim"},
			{"u", "Customers"},
			{"r", "Refresh"},
			{"x", "Sign out"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"esc", "Back / cancel"},
			},
		},
		{
			title: "Claims",
			items: []helpItem{
				{"enter", "Edit selected claim"},
				{"f", "Filter claims"},
				{"c", "Column layout"},
				{"v", "Toggle list/grid"},
				{"a", "Add a claim"},
				{"u", "Browse customers"},
				{"r", "Refresh now"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"h/?", "Toggle help"},
				{"x", "Sign out"},
				{"e/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(12)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return m.renderModal(b.String(), 40)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
