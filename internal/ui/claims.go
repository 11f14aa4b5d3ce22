package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgodse/claimdesk/internal/claims"
	"github.com/rgodse/claimdesk/internal/filters"
	"github.com/rgodse/claimdesk/internal/gridstate"
)

// sortedClaims returns the snapshot's claims with active filters and the
// grid's sort applied.
func (m Model) sortedClaims() []claims.Claim {
	list := visibleClaims(m.snapshot.Claims, m.filters.Filters())

	field, dir := m.grid.Sort()
	if field == "" || dir == "" {
		return list
	}
	sort.SliceStable(list, func(i, j int) bool {
		a, b := sortKey(list[i], field), sortKey(list[j], field)
		if dir == "desc" {
			return a > b
		}
		return a < b
	})
	return list
}

// sortKey returns the comparable value for a column. Dates sort on the raw
// wire value so lexical order matches chronological order.
func sortKey(c claims.Claim, field string) string {
	if field == "billDate" {
		return c.BillDate
	}
	return strings.ToLower(claimValue(c, field))
}

// clampSelection keeps the selected row inside the visible claim list.
func (m *Model) clampSelection() {
	count := len(m.sortedClaims())
	if count == 0 {
		m.selectedRow = 0
		return
	}
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
}

// selectedClaim returns the claim under the cursor, or nil.
func (m Model) selectedClaim() *claims.Claim {
	list := m.sortedClaims()
	if len(list) == 0 || m.selectedRow >= len(list) {
		return nil
	}
	c := list[m.selectedRow]
	return &c
}

// toggleViewMode flips the claim list between list and grid presentation.
func (m *Model) toggleViewMode() {
	if m.filters.Filters().ViewMode == filters.ViewGrid {
		m.filters.SetViewMode(filters.ViewList)
	} else {
		m.filters.SetViewMode(filters.ViewGrid)
	}
}

// handleClaimsKey processes keyboard input for the claims view.
func (m Model) handleClaimsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.sortedClaims())
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	}

	return m, nil
}

// renderClaims renders the claim list with a detail pane.
func (m Model) renderClaims() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2 // header + cmdbar

	list := m.sortedClaims()
	if len(list) == 0 {
		msg := "No claims"
		if len(m.snapshot.Claims) > 0 {
			msg = "No claims match the active filters"
		}
		empty := styles.MutedText.Render(msg)
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, empty)
	}

	var tableWidth int
	if m.width >= 160 {
		tableWidth = m.width * 60 / 100
	} else {
		tableWidth = m.width * 55 / 100
	}
	detailWidth := m.width - tableWidth

	tableTitle := m.claimsTitle(len(list))
	tableContent := m.renderClaimRows(list, tableWidth-2)
	tablePane := m.renderTitledBox(tableTitle, tableContent, tableWidth, contentHeight, true)

	var detailContent string
	if c := m.selectedClaim(); c != nil {
		detailContent = m.renderClaimDetail(*c, detailWidth-4)
	} else {
		detailContent = styles.MutedText.Render("Select a claim")
	}
	detailPane := m.renderTitledBox("Details", detailContent, detailWidth, contentHeight, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, tablePane, detailPane)
}

// claimsTitle returns the table pane title with filter and sort hints.
func (m Model) claimsTitle(visible int) string {
	total := len(m.snapshot.Claims)
	title := fmt.Sprintf("Claims (%d)", total)
	if visible != total {
		title = fmt.Sprintf("Claims (%d/%d)", visible, total)
	}
	if field, dir := m.grid.Sort(); field != "" && dir != "" {
		title += fmt.Sprintf(" %s %s", field, ternary(dir == "asc", "↑", "↓"))
	}
	return title
}

// renderClaimRows renders the claim list in the active view mode.
func (m Model) renderClaimRows(list []claims.Claim, width int) string {
	if m.filters.Filters().ViewMode == filters.ViewGrid {
		return m.renderClaimGrid(list, width)
	}
	return m.renderClaimList(list, width)
}

// renderClaimList renders compact single-line rows.
func (m Model) renderClaimList(list []claims.Claim, width int) string {
	styles := m.theme.Styles()
	bgColor := m.theme.SurfaceAlt

	var lines []string
	for i, c := range list {
		selected := i == m.selectedRow
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		bg := NewBgStyle(rowBg)

		status := c.ClaimStatusByCompany
		label := c.BillNumber
		if label == "" {
			label = truncate(c.ID, 8)
		}
		name := c.Customer.Name

		nameWidth := width - len(label) - len(status) - 6
		if nameWidth < 8 {
			nameWidth = 8
		}

		var idStyle, nameStyle, statusStyle lipgloss.Style
		if selected {
			sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
			idStyle, nameStyle, statusStyle = sel, sel, sel
		} else {
			idStyle = styles.MutedText
			nameStyle = styles.Text
			statusStyle = styles.StatusStyle(status)
		}

		content := bg.Render(label, idStyle) + bg.Space() +
			bg.Render(truncate(name, nameWidth), nameStyle) +
			bg.Sep(" · ") +
			bg.Render(status, statusStyle)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

// renderClaimGrid renders a columnar table driven by the grid layout.
func (m Model) renderClaimGrid(list []claims.Claim, width int) string {
	styles := m.theme.Styles()
	cols := m.grid.VisibleColumns()
	if len(cols) == 0 {
		return styles.MutedText.Render("All columns hidden")
	}

	// Header row
	var header strings.Builder
	for _, col := range cols {
		header.WriteString(padRight(col.Header, col.Width))
		header.WriteString(" ")
	}
	lines := []string{styles.AccentText.Bold(true).Render(strings.TrimRight(header.String(), " "))}

	for i, c := range list {
		selected := i == m.selectedRow
		var row strings.Builder
		for _, col := range cols {
			row.WriteString(padRight(claimValue(c, col.Field), col.Width))
			row.WriteString(" ")
		}
		text := strings.TrimRight(row.String(), " ")
		if selected {
			lines = append(lines, styles.Selected.Width(width).Render(text))
		} else {
			lines = append(lines, styles.Text.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}

// renderClaimDetail renders the detail pane for one claim.
func (m Model) renderClaimDetail(c claims.Claim, width int) string {
	styles := m.theme.Styles()

	row := func(label, value string) string {
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		return styles.MutedText.Render(padRight(label, 14)) + styles.Text.Render(truncate(value, width-15))
	}

	sections := []string{
		styles.AccentText.Bold(true).Render("Customer"),
		row("Name", c.Customer.Name),
		row("Mobile", c.Customer.MobileNumber),
		row("Bill #", c.BillNumber),
		row("Bill date", c.FormatBillDate()),
		row("Docket #", c.DocketNumber),
		row("Complaint", c.ComplaintDetails),
		"",
		styles.AccentText.Bold(true).Render("Tyre"),
		row("Company", c.TyreCompany),
		row("Pattern", c.TyrePattern),
		row("Size", c.TyreSize),
		row("Serial", c.TyreSerialNumber),
		row("Sent via", c.TyreSentThrough),
		row("Warranty", c.WarrantyDetails),
		"",
		styles.AccentText.Bold(true).Render("Vehicle"),
		row("Number", c.VehicleNumber),
		row("Type", c.VehicleType),
		row("Distance", c.DistanceCovered),
		"",
		styles.AccentText.Bold(true).Render("Status"),
		styles.MutedText.Render(padRight("Company", 14)) +
			styles.StatusStyle(c.ClaimStatusByCompany).Render(c.ClaimStatusByCompany),
		row("Depreciation", c.DepreciationAmt),
		row("Returned", c.ReturnToCustomerDt),
		row("Final", ternary(c.FinalClaimStatus, "closed", "open")),
	}

	if m.auth != nil && c.ID != "" {
		sections = append(sections, "", styles.FaintText.Render(truncate("PDF: "+m.auth.ClaimPDFURL(c.ID), width)))
	}

	return strings.Join(sections, "\n")
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr := m.theme.Border
	if focused {
		borderColorStr = m.theme.BorderFocus
	}
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	titleLen := len([]rune(title))
	leftPad := (innerWidth - titleLen - 2) / 2
	if leftPad < 0 {
		leftPad = 0
	}
	rightPad := innerWidth - titleLen - 2 - leftPad
	if rightPad < 0 {
		rightPad = 0
	}

	topBorder := borderStyle.Render("┌"+strings.Repeat("─", leftPad)) +
		titleStyle.Render(" "+title+" ") +
		borderStyle.Render(strings.Repeat("─", rightPad)+"┐")
	bottomBorder := borderStyle.Render("└" + strings.Repeat("─", innerWidth) + "┘")

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth)
	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	var paddedLines []string
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			borderStyle.Render("│")+contentStyle.Render(line)+borderStyle.Render("│"))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}

// Column picker modal

// openColumnPicker opens the column layout modal.
func (m *Model) openColumnPicker() {
	m.columnRow = 0
	m.showColumns = true
}

// handleColumnPickerKey handles keyboard input for the column modal. Every
// layout mutation nudges the autosaver so the new layout lands in storage
// once editing settles.
func (m Model) handleColumnPickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.grid.Columns()
	if len(cols) == 0 {
		m.showColumns = false
		return m, nil
	}
	current := cols[m.columnRow].Field

	save := func() {
		if m.gridSaver != nil {
			m.gridSaver.Trigger()
		}
	}

	switch {
	case key.Matches(msg, m.keys.Escape),
		key.Matches(msg, m.keys.Columns),
		key.Matches(msg, m.keys.Confirm):
		m.showColumns = false
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.columnRow < len(cols)-1 {
			m.columnRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.columnRow > 0 {
			m.columnRow--
		}

	case key.Matches(msg, m.keys.Space):
		m.grid.ToggleHide(current)
		save()

	case key.Matches(msg, m.keys.NarrowCol):
		m.grid.Resize(current, -2)
		save()
	case key.Matches(msg, m.keys.WidenCol):
		m.grid.Resize(current, 2)
		save()

	case key.Matches(msg, m.keys.CycleSortBy):
		m.grid.CycleSort(current)
		save()

	case key.Matches(msg, m.keys.MoveColDown):
		m.grid.Move(current, 1)
		if m.columnRow < len(cols)-1 {
			m.columnRow++
		}
		save()
	case key.Matches(msg, m.keys.MoveColUp):
		m.grid.Move(current, -1)
		if m.columnRow > 0 {
			m.columnRow--
		}
		save()

	case key.Matches(msg, m.keys.ResetLayout):
		// Reset layout to defaults and drop the saved state. The default
		// state carries no sort, so the active sort is cleared explicitly.
		m.grid.ClearSort()
		m.grid.ApplyColumnState(defaultsAsState(), true)
		if m.gridSvc != nil {
			m.gridSvc.Clear(claimsGridKey)
		}
	}

	return m, nil
}

// defaultsAsState converts the default column defs into a saved-state
// overlay, used when resetting the layout.
func defaultsAsState() []gridstate.ColumnState {
	defs := defaultClaimColumns()
	out := make([]gridstate.ColumnState, 0, len(defs))
	for _, d := range defs {
		out = append(out, gridstate.ColumnState{
			ID:    d.Field,
			Width: d.Width,
			Hide:  d.Hide,
		})
	}
	return out
}

// renderColumnPicker renders the column layout modal.
func (m Model) renderColumnPicker() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Columns"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	field, dir := m.grid.Sort()
	for i, col := range m.grid.Columns() {
		marker := ternary(col.Hide, "[ ]", "[x]")
		line := fmt.Sprintf("%s %s (%d)", marker, col.Header, col.Width)
		if col.Field == field && dir != "" {
			line += " " + ternary(dir == "asc", "↑", "↓")
		}
		if i == m.columnRow {
			b.WriteString(styles.AccentText.Render("> " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Space: Show/hide  •  </>: Width  •  s: Sort"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("J/K: Reorder  •  R: Reset  •  Esc: Close"))

	return m.renderModal(b.String(), 46)
}

// renderModal centers content in a bordered overlay covering the screen.
func (m Model) renderModal(content string, width int) string {
	return placeCentered(m.width, m.height, lipglossModal(m.theme, width).Render(content), m.theme.Background)
}

// lipglossModal returns the bordered modal container style.
func lipglossModal(t Theme, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Accent)).
		Padding(1, 2).
		Width(width)
}

// placeCentered centers rendered content inside a w x h area.
func placeCentered(w, h int, content, bgColor string) string {
	return lipgloss.Place(
		w,
		h,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(bgColor)),
	)
}
