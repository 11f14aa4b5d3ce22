package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgodse/claimdesk/internal/api"
	"github.com/rgodse/claimdesk/internal/claims"
)

// customersState holds the customer browser's search inputs and results.
type customersState struct {
	inputs   [2]textinput.Model // name, mobile
	focus    int
	results  []claims.Customer
	selected int
	busy     bool
	searched bool
}

// customersResultMsg carries the outcome of a customer search.
type customersResultMsg struct {
	list []claims.Customer
	err  error
}

// openCustomers enters the customer browser and lists everyone.
func (m Model) openCustomers() (tea.Model, tea.Cmd) {
	name := textinput.New()
	name.Placeholder = "Name contains"
	name.CharLimit = 100
	name.Width = 24
	name.Focus()

	mobile := textinput.New()
	mobile.Placeholder = "Mobile number"
	mobile.CharLimit = 15
	mobile.Width = 24

	m.customers = customersState{
		inputs: [2]textinput.Model{name, mobile},
		busy:   true,
	}
	m.currentView = ViewCustomers
	return m, searchCustomersCmd(m.ctx, m.auth, api.CustomerQuery{})
}

func searchCustomersCmd(ctx context.Context, auth *api.AuthClient, query api.CustomerQuery) tea.Cmd {
	return func() tea.Msg {
		list, err := auth.GetCustomers(ctx, query)
		return customersResultMsg{list: list, err: err}
	}
}

// handleCustomersKey processes keyboard input for the customer browser.
// Arrow keys move the result selection; tab switches the search inputs so
// j/k keep typing.
func (m Model) handleCustomersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.customers.busy {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewClaims
		return m, nil

	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
		m.customers.inputs[m.customers.focus].Blur()
		m.customers.focus = 1 - m.customers.focus
		m.customers.inputs[m.customers.focus].Focus()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.customers.busy = true
		query := api.CustomerQuery{
			Name:   strings.TrimSpace(m.customers.inputs[0].Value()),
			Mobile: strings.TrimSpace(m.customers.inputs[1].Value()),
		}
		return m, searchCustomersCmd(m.ctx, m.auth, query)

	case msg.String() == "down":
		if m.customers.selected < len(m.customers.results)-1 {
			m.customers.selected++
		}
		return m, nil

	case msg.String() == "up":
		if m.customers.selected > 0 {
			m.customers.selected--
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.customers.inputs[m.customers.focus], cmd = m.customers.inputs[m.customers.focus].Update(msg)
	return m, cmd
}

func (m Model) handleCustomersResult(msg customersResultMsg) (tea.Model, tea.Cmd) {
	m.customers.busy = false

	if msg.err != nil {
		return m, m.setNotice("Customer search failed: " + msg.err.Error())
	}
	m.customers.results = msg.list
	m.customers.searched = true
	if m.customers.selected >= len(msg.list) {
		m.customers.selected = 0
	}
	return m, nil
}

// renderCustomers renders the customer browser.
func (m Model) renderCustomers() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2 // header + cmdbar

	var b strings.Builder
	for i, label := range []string{"Name", "Mobile"} {
		if i == m.customers.focus {
			b.WriteString(styles.AccentText.Render(padRight(label, 8)))
		} else {
			b.WriteString(styles.MutedText.Render(padRight(label, 8)))
		}
		b.WriteString(m.customers.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 46)))
	b.WriteString("\n")

	switch {
	case m.customers.busy:
		b.WriteString(styles.WarningText.Render("Searching..."))
	case len(m.customers.results) == 0:
		msg := "No customers"
		if m.customers.searched {
			msg = "No customers match the search"
		}
		b.WriteString(styles.MutedText.Render(msg))
	default:
		b.WriteString(styles.AccentText.Bold(true).Render(
			"  " + padRight("Customer", 30) + "Mobile"))
		b.WriteString("\n")
		for i, c := range m.customers.results {
			line := padRight(truncate(c.Name, 28), 30) + c.MobileNumber
			if i == m.customers.selected {
				b.WriteString(styles.AccentText.Render("> " + line))
			} else {
				b.WriteString(styles.Text.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	title := fmt.Sprintf("Customers (%d)", len(m.customers.results))
	return m.renderTitledBox(title, b.String(), m.width, contentHeight, true)
}
