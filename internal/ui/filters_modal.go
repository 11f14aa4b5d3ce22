package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgodse/claimdesk/internal/filters"
)

// initFilterInputs initializes the text inputs for the filter modal.
func (m *Model) initFilterInputs() {
	statusInput := textinput.New()
	statusInput.Placeholder = "e.g. pending, accepted"
	statusInput.CharLimit = 100
	statusInput.Width = 30

	companyInput := textinput.New()
	companyInput.Placeholder = "e.g. MRF, CEAT"
	companyInput.CharLimit = 100
	companyInput.Width = 30

	fromInput := textinput.New()
	fromInput.Placeholder = "YYYY-MM-DD"
	fromInput.CharLimit = 10
	fromInput.Width = 30

	toInput := textinput.New()
	toInput.Placeholder = "YYYY-MM-DD"
	toInput.CharLimit = 10
	toInput.Width = 30

	m.filterInputs[0] = statusInput
	m.filterInputs[1] = companyInput
	m.filterInputs[2] = fromInput
	m.filterInputs[3] = toInput
}

// openFilterModal opens the filter modal pre-filled with current state.
func (m *Model) openFilterModal() {
	f := m.filters.Filters()
	m.filterInputs[0].SetValue(strings.Join(f.ClaimStatusByCompany, ", "))
	m.filterInputs[1].SetValue(strings.Join(f.TyreCompany, ", "))
	m.filterInputs[2].SetValue(f.BillDateFrom)
	m.filterInputs[3].SetValue(f.BillDateTo)
	m.filterFocusIdx = 0
	m.filterInputs[0].Focus()
	for i := 1; i < len(m.filterInputs); i++ {
		m.filterInputs[i].Blur()
	}
	m.showFilters = true
}

// handleFilterModalKey handles keyboard input for the filter modal.
func (m Model) handleFilterModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.showFilters = false
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.applyFilters()
		m.showFilters = false
		m.clampSelection()
		return m, nil

	case key.Matches(msg, m.keys.Tab), msg.String() == "down":
		m.filterInputs[m.filterFocusIdx].Blur()
		m.filterFocusIdx = (m.filterFocusIdx + 1) % len(m.filterInputs)
		m.filterInputs[m.filterFocusIdx].Focus()
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab), msg.String() == "up":
		m.filterInputs[m.filterFocusIdx].Blur()
		m.filterFocusIdx = (m.filterFocusIdx - 1 + len(m.filterInputs)) % len(m.filterInputs)
		m.filterInputs[m.filterFocusIdx].Focus()
		return m, nil

	case msg.String() == "ctrl+r":
		// Reset all filters (modal-specific)
		m.filters.Reset()
		for i := range m.filterInputs {
			m.filterInputs[i].SetValue("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInputs[m.filterFocusIdx], cmd = m.filterInputs[m.filterFocusIdx].Update(msg)
	return m, cmd
}

// applyFilters pushes the modal's values into the filter store as a single
// merge.
func (m *Model) applyFilters() {
	from := strings.TrimSpace(m.filterInputs[2].Value())
	to := strings.TrimSpace(m.filterInputs[3].Value())

	m.filters.SetMultiple(filters.Partial{
		ClaimStatusByCompany: splitCSV(m.filterInputs[0].Value()),
		TyreCompany:          splitCSV(m.filterInputs[1].Value()),
		BillDateFrom:         &from,
		BillDateTo:           &to,
	})
}

// splitCSV splits a comma-separated value list, dropping blanks. It never
// returns nil so the result always replaces the previous set.
func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// renderFilterModal renders the claim filter modal.
func (m Model) renderFilterModal() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Claim Filters"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 44)))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Statuses and companies take comma-separated"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("lists. Leave blank to disable a filter."))
	b.WriteString("\n\n")

	labels := [4]string{"Status:    ", "Company:   ", "From date: ", "To date:   "}
	for i, in := range m.filterInputs {
		label := labels[i]
		if m.filterFocusIdx == i {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	b.WriteString(styles.FaintText.Render("Enter: Apply  •  Esc: Cancel  •  Ctrl+R: Reset"))

	return m.renderModal(b.String(), 50)
}
