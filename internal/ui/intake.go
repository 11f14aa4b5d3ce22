package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgodse/claimdesk/internal/claims"
	"github.com/rgodse/claimdesk/internal/config"
	"github.com/rgodse/claimdesk/internal/debounce"
	"github.com/rgodse/claimdesk/internal/formstate"
)

// fieldMirror batches per-keystroke edits and propagates them to the form
// store after a quiet period, so the session mirror is not rewritten on
// every character. The flush runs on a timer goroutine; the form store is
// safe for that, the staged map is guarded here.
type fieldMirror struct {
	form *formstate.Store

	mu     sync.Mutex
	staged map[claims.Field]any

	deb *debounce.Debouncer
}

func newFieldMirror(form *formstate.Store, wait time.Duration) *fieldMirror {
	m := &fieldMirror{
		form:   form,
		staged: make(map[claims.Field]any),
	}
	m.deb = debounce.New(wait, m.flushStaged)
	return m
}

// Stage records an edit and (re)arms the debounce window.
func (m *fieldMirror) Stage(f claims.Field, value any) {
	m.mu.Lock()
	m.staged[f] = value
	m.mu.Unlock()
	m.deb.Trigger()
}

// Flush propagates any staged edits immediately.
func (m *fieldMirror) Flush() {
	m.deb.Cancel()
	m.flushStaged()
}

func (m *fieldMirror) flushStaged() {
	m.mu.Lock()
	staged := m.staged
	m.staged = make(map[claims.Field]any)
	m.mu.Unlock()

	for f, v := range staged {
		// Type mismatches cannot happen for values staged by the form
		// inputs, so errors are not surfaced here.
		_ = m.form.UpdateField(f, v)
	}
}

// intakeState holds the multi-step intake form's view state. The form
// store owns the data; this only tracks inputs and focus for the active
// section.
type intakeState struct {
	form     *formstate.Store
	mirror   *fieldMirror
	fields   []claims.Field
	inputs   []textinput.Model
	focus    int
	busy     bool
	problems map[string]string
}

func newIntakeState(form *formstate.Store, cfg *config.Config) intakeState {
	wait := 500 * time.Millisecond
	if cfg != nil {
		wait = cfg.Debounce()
	}
	return intakeState{
		form:   form,
		mirror: newFieldMirror(form, wait),
	}
}

// sectionFields returns the display order of a section's fields.
func sectionFields(s claims.Section) []claims.Field {
	switch s {
	case claims.SectionCustomer:
		return []claims.Field{
			claims.FieldCustomerName,
			claims.FieldCustomerNumber,
			claims.FieldBillDate,
			claims.FieldBillNumber,
			claims.FieldDocketNumber,
			claims.FieldLeadRelation,
			claims.FieldComplaintDetails,
			claims.FieldAdditionalRemarks,
		}
	case claims.SectionTyre:
		return []claims.Field{
			claims.FieldTyreCompany,
			claims.FieldTyrePattern,
			claims.FieldTyreSize,
			claims.FieldTyreSerialNumber,
			claims.FieldTyreSentThrough,
			claims.FieldTyreSentDate,
			claims.FieldWarrantyDetails,
		}
	case claims.SectionVehicle:
		return []claims.Field{
			claims.FieldVehicleNumber,
			claims.FieldVehicleType,
			claims.FieldDistanceCovered,
		}
	default:
		return []claims.Field{
			claims.FieldDepreciationAmt,
			claims.FieldClaimStatusByCompany,
			claims.FieldReturnToCustomerDt,
			claims.FieldFinalClaimStatus,
		}
	}
}

// fieldLabel returns the display label for a form field.
func fieldLabel(f claims.Field) string {
	switch f {
	case claims.FieldCustomerName:
		return "Customer name"
	case claims.FieldCustomerNumber:
		return "Mobile number"
	case claims.FieldBillDate:
		return "Bill date"
	case claims.FieldBillNumber:
		return "Bill number"
	case claims.FieldDocketNumber:
		return "Docket number"
	case claims.FieldLeadRelation:
		return "Lead relation"
	case claims.FieldComplaintDetails:
		return "Complaint"
	case claims.FieldAdditionalRemarks:
		return "Remarks"
	case claims.FieldWarrantyDetails:
		return "Warranty"
	case claims.FieldTyreSerialNumber:
		return "Tyre serial"
	case claims.FieldTyrePattern:
		return "Tyre pattern"
	case claims.FieldTyreSize:
		return "Tyre size"
	case claims.FieldTyreSentDate:
		return "Sent date"
	case claims.FieldTyreSentThrough:
		return "Sent through"
	case claims.FieldTyreCompany:
		return "Tyre company"
	case claims.FieldVehicleNumber:
		return "Vehicle number"
	case claims.FieldVehicleType:
		return "Vehicle type"
	case claims.FieldDistanceCovered:
		return "Distance (km)"
	case claims.FieldDepreciationAmt:
		return "Depreciation"
	case claims.FieldClaimStatusByCompany:
		return "Company status"
	case claims.FieldReturnToCustomerDt:
		return "Returned on"
	case claims.FieldFinalClaimStatus:
		return "Claim closed"
	}
	return f.String()
}

// fieldIsBool reports whether the field is a checkbox rather than text.
func fieldIsBool(f claims.Field) bool {
	return f == claims.FieldFinalClaimStatus
}

// fieldRequired reports whether the field must be filled before its
// section can be submitted.
func fieldRequired(f claims.Field) bool {
	switch f {
	case claims.FieldCustomerName, claims.FieldCustomerNumber,
		claims.FieldBillDate, claims.FieldBillNumber,
		claims.FieldTyreSerialNumber, claims.FieldTyreCompany,
		claims.FieldVehicleNumber:
		return true
	}
	return false
}

// fieldLeaf returns the JSON leaf name, which is how validation problems
// are keyed.
func fieldLeaf(f claims.Field) string {
	path := f.String()
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

// fieldText renders the aggregate's current value of a field as text.
func fieldText(agg claims.FormAggregate, f claims.Field) string {
	switch v := agg.Get(f).(type) {
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case bool:
		return ternary(v, "yes", "no")
	}
	return ""
}

// enterSection rebuilds the inputs for the form store's active section.
func (s *intakeState) enterSection() {
	agg := s.form.Aggregate()
	s.fields = sectionFields(s.form.Active())
	s.inputs = make([]textinput.Model, len(s.fields))
	s.focus = 0
	s.problems = nil

	for i, f := range s.fields {
		in := textinput.New()
		in.CharLimit = 200
		in.Width = 32
		switch f {
		case claims.FieldBillDate, claims.FieldTyreSentDate, claims.FieldReturnToCustomerDt:
			in.Placeholder = "YYYY-MM-DD"
		case claims.FieldClaimStatusByCompany:
			in.Placeholder = "pending / accepted / rejected / settled"
		}
		if !fieldIsBool(f) {
			in.SetValue(fieldText(agg, f))
		}
		s.inputs[i] = in
	}
	if len(s.inputs) > 0 && !fieldIsBool(s.fields[0]) {
		s.inputs[0].Focus()
	}
}

// onFirstSection reports whether the flow is on its first step.
func (s intakeState) onFirstSection() bool {
	return s.form.Active() == claims.SectionCustomer
}

// Messages

// intakeStartedMsg carries the claim id allocated for a new intake flow.
type intakeStartedMsg struct {
	claimID string
	err     error
}

// sectionSavedMsg carries the outcome of advancing one section.
type sectionSavedMsg struct {
	done     bool
	problems map[string]string
	err      error
}

// claimLoadedMsg carries a freshly fetched claim opened for editing.
type claimLoadedMsg struct {
	claim claims.Claim
	err   error
}

// startIntake allocates a claim id and enters the intake flow.
func (m Model) startIntake() (tea.Model, tea.Cmd) {
	ctx := m.ctx
	auth := m.auth
	return m, func() tea.Msg {
		id, err := auth.NewClaimID(ctx)
		return intakeStartedMsg{claimID: id, err: err}
	}
}

func (m Model) handleIntakeStarted(msg intakeStartedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.setNotice("Could not start a claim: " + msg.err.Error())
	}
	m.form.Begin(msg.claimID)
	m.intake.enterSection()
	m.currentView = ViewIntake
	return m, nil
}

// startEdit refetches the selected claim and opens it in the intake flow.
func (m Model) startEdit() (tea.Model, tea.Cmd) {
	c := m.selectedClaim()
	if c == nil {
		return m, nil
	}
	ctx := m.ctx
	auth := m.auth
	id := c.ID
	return m, func() tea.Msg {
		claim, err := auth.GetClaim(ctx, id)
		return claimLoadedMsg{claim: claim, err: err}
	}
}

func (m Model) handleClaimLoaded(msg claimLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.setNotice("Could not open claim: " + msg.err.Error())
	}
	// Editing replaces any in-progress draft: clear the session mirror
	// first so the fetched record is the flow's starting point.
	m.form.Reset()
	m.form.Begin(msg.claim.ID)
	m.form.Initialize(claims.AggregateFromClaim(msg.claim))
	m.intake.enterSection()
	m.currentView = ViewIntake
	return m, nil
}

// handleIntakeKey processes keyboard input for the intake form.
func (m Model) handleIntakeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.intake.busy {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	if len(m.intake.fields) == 0 {
		m.currentView = ViewClaims
		return m, nil
	}
	focusedField := m.intake.fields[m.intake.focus]

	// Arrow keys move focus by their literal names; j/k must keep typing.
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab), msg.String() == "down":
		m.intakeFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab), msg.String() == "up":
		m.intakeFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.advanceSection()

	case key.Matches(msg, m.keys.Escape):
		m.intake.mirror.Flush()
		if m.form.Back() {
			m.intake.enterSection()
		} else {
			// Leave the flow; the session mirror keeps the draft.
			m.currentView = ViewClaims
		}
		return m, nil

	case key.Matches(msg, m.keys.Space):
		if fieldIsBool(focusedField) {
			current, _ := m.form.Aggregate().Get(focusedField).(bool)
			m.intake.mirror.Flush()
			if err := m.form.UpdateField(focusedField, !current); err == nil {
				m.intake.inputs[m.intake.focus].SetValue("")
			}
			return m, nil
		}
	}

	if fieldIsBool(focusedField) {
		return m, nil
	}

	var cmd tea.Cmd
	m.intake.inputs[m.intake.focus], cmd = m.intake.inputs[m.intake.focus].Update(msg)
	m.intake.mirror.Stage(focusedField, strings.TrimSpace(m.intake.inputs[m.intake.focus].Value()))
	return m, cmd
}

// intakeFocus moves focus by delta, wrapping around the section.
func (m *Model) intakeFocus(delta int) {
	n := len(m.intake.inputs)
	if n == 0 {
		return
	}
	if !fieldIsBool(m.intake.fields[m.intake.focus]) {
		m.intake.inputs[m.intake.focus].Blur()
	}
	m.intake.focus = (m.intake.focus + delta + n) % n
	if !fieldIsBool(m.intake.fields[m.intake.focus]) {
		m.intake.inputs[m.intake.focus].Focus()
	}
}

// advanceSection validates and submits the active section.
func (m Model) advanceSection() (tea.Model, tea.Cmd) {
	m.intake.mirror.Flush()
	m.intake.busy = true

	ctx := m.ctx
	form := m.form
	auth := m.auth
	return m, func() tea.Msg {
		done, problems, err := form.Advance(ctx, auth)
		return sectionSavedMsg{done: done, problems: problems, err: err}
	}
}

func (m Model) handleSectionSaved(msg sectionSavedMsg) (tea.Model, tea.Cmd) {
	m.intake.busy = false

	if msg.err != nil {
		// State is intact; advancing again retries the submission.
		return m, m.setNotice("Save failed: " + msg.err.Error())
	}
	if len(msg.problems) > 0 {
		m.intake.problems = msg.problems
		return m, nil
	}
	if msg.done {
		m.currentView = ViewClaims
		return m, tea.Batch(
			m.setNotice("Claim saved"),
			refreshClaimsCmd(m.ctx, m.store, m.auth),
		)
	}
	m.intake.enterSection()
	return m, nil
}

// renderIntake renders the multi-step claim form.
func (m Model) renderIntake() string {
	styles := m.theme.Styles()
	section := m.form.Active()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(section.Title()))
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("  (step %d of %d)", section.Index(), len(claims.Sections))))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 48)))
	b.WriteString("\n\n")

	agg := m.form.Aggregate()
	for i, f := range m.intake.fields {
		label := fieldLabel(f)
		if fieldRequired(f) {
			label += " *"
		}
		label = padRight(label, 16)
		if i == m.intake.focus {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}

		if fieldIsBool(f) {
			checked, _ := agg.Get(f).(bool)
			box := ternary(checked, "[x]", "[ ]")
			if i == m.intake.focus {
				b.WriteString(styles.AccentText.Render(box + " (Space toggles)"))
			} else {
				b.WriteString(styles.Text.Render(box))
			}
		} else {
			b.WriteString(m.intake.inputs[i].View())
		}
		b.WriteString("\n")

		if msgText, ok := m.intake.problems[fieldLeaf(f)]; ok {
			b.WriteString(styles.DangerText.Render(strings.Repeat(" ", 16) + msgText))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.intake.busy {
		b.WriteString(styles.WarningText.Render("Saving..."))
	} else {
		back := ternary(m.intake.onFirstSection(), "Esc: Cancel", "Esc: Back")
		next := ternary(section == claims.SectionIssuance, "Enter: Finish", "Enter: Save & continue")
		b.WriteString(styles.FaintText.Render(next + "  •  " + back))
	}

	contentHeight := m.height - 2
	return placeCentered(m.width, contentHeight, lipglossModal(m.theme, 58).Render(b.String()), m.theme.Background)
}
