package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgodse/claimdesk/internal/api"
)

// loginMode selects which auth form is shown.
type loginMode int

const (
	modeLogin loginMode = iota
	modeRegister
	modeForgot
	modeOTP
)

// loginState holds the auth form's inputs and progress.
type loginState struct {
	mode   loginMode
	labels []string
	inputs []textinput.Model
	focus  int
	busy   bool
	email  string // carried from register into the OTP step
}

func newLoginState() loginState {
	s := loginState{}
	s.setMode(modeLogin)
	return s
}

// setMode rebuilds the input set for the given form.
func (s *loginState) setMode(mode loginMode) {
	s.mode = mode
	s.focus = 0

	build := func(placeholder string, secret bool) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 100
		in.Width = 32
		if secret {
			in.EchoMode = textinput.EchoPassword
		}
		return in
	}

	switch mode {
	case modeRegister:
		s.labels = []string{"Name", "Organisation", "Email", "Password"}
		s.inputs = []textinput.Model{
			build("Full name", false),
			build("Shop or firm name", false),
			build("you@example.com", false),
			build("", true),
		}
	case modeForgot:
		s.labels = []string{"Email"}
		s.inputs = []textinput.Model{
			build("you@example.com", false),
		}
	case modeOTP:
		s.labels = []string{"OTP"}
		otp := build("6-digit code", false)
		otp.CharLimit = 6
		s.inputs = []textinput.Model{otp}
	default:
		s.labels = []string{"Email", "Password"}
		s.inputs = []textinput.Model{
			build("you@example.com", false),
			build("", true),
		}
	}
	s.inputs[0].Focus()
}

// modeLabel returns the F2 hint for the next form in the cycle.
func (s loginState) modeLabel() string {
	switch s.mode {
	case modeLogin:
		return "Register"
	case modeRegister:
		return "Forgot password"
	default:
		return "Sign in"
	}
}

// title returns the form heading.
func (s loginState) title() string {
	switch s.mode {
	case modeRegister:
		return "Create account"
	case modeForgot:
		return "Forgot password"
	case modeOTP:
		return "Verify OTP"
	default:
		return "Sign in"
	}
}

// value returns the trimmed input at index i.
func (s loginState) value(i int) string {
	if i >= len(s.inputs) {
		return ""
	}
	return strings.TrimSpace(s.inputs[i].Value())
}

// authResultMsg carries the outcome of an auth API call.
type authResultMsg struct {
	mode    loginMode
	session api.Session
	err     error
}

// handleLoginKey processes keyboard input for the auth forms.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.busy {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	// Arrow keys move focus by their literal names; j/k must keep typing.
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case msg.String() == "f2":
		switch m.login.mode {
		case modeLogin:
			m.login.setMode(modeRegister)
		case modeRegister:
			m.login.setMode(modeForgot)
		default:
			m.login.setMode(modeLogin)
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab), msg.String() == "down":
		m.login.inputs[m.login.focus].Blur()
		m.login.focus = (m.login.focus + 1) % len(m.login.inputs)
		m.login.inputs[m.login.focus].Focus()
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab), msg.String() == "up":
		m.login.inputs[m.login.focus].Blur()
		m.login.focus = (m.login.focus - 1 + len(m.login.inputs)) % len(m.login.inputs)
		m.login.inputs[m.login.focus].Focus()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.submitAuth()

	case key.Matches(msg, m.keys.Escape):
		if m.login.mode != modeLogin {
			m.login.setMode(modeLogin)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

// submitAuth fires the API call for the active form.
func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	mode := m.login.mode
	ctx := m.ctx
	client := m.client

	switch mode {
	case modeLogin:
		email, password := m.login.value(0), m.login.value(1)
		if email == "" || password == "" {
			return m, m.setNotice("Email and password are required")
		}
		m.login.busy = true
		return m, func() tea.Msg {
			session, err := client.Login(ctx, api.LoginRequest{Email: email, Password: password})
			return authResultMsg{mode: mode, session: session, err: err}
		}

	case modeRegister:
		name, org := m.login.value(0), m.login.value(1)
		email, password := m.login.value(2), m.login.value(3)
		if name == "" || email == "" || password == "" {
			return m, m.setNotice("Name, email, and password are required")
		}
		m.login.busy = true
		m.login.email = email
		return m, func() tea.Msg {
			session, err := client.Register(ctx, api.RegisterRequest{
				Name:             name,
				OrganisationName: org,
				Email:            email,
				Password:         password,
			})
			return authResultMsg{mode: mode, session: session, err: err}
		}

	case modeForgot:
		email := m.login.value(0)
		if email == "" {
			return m, m.setNotice("Email is required")
		}
		m.login.busy = true
		return m, func() tea.Msg {
			err := client.ForgotPassword(ctx, email)
			return authResultMsg{mode: mode, err: err}
		}

	case modeOTP:
		otp := m.login.value(0)
		if otp == "" {
			return m, m.setNotice("Enter the code from your email")
		}
		m.login.busy = true
		email := m.login.email
		return m, func() tea.Msg {
			session, err := client.VerifyOTP(ctx, api.VerifyOTPRequest{Email: email, OTP: otp})
			return authResultMsg{mode: mode, session: session, err: err}
		}
	}
	return m, nil
}

// handleAuthResult applies the outcome of an auth call.
func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false

	if msg.err != nil {
		return m, m.setNotice(msg.err.Error())
	}

	switch msg.mode {
	case modeLogin, modeOTP:
		m.tokens.SetToken(msg.session.Token)
		m.user = msg.session.User
		m.currentView = ViewClaims
		m.notice = ""
		return m, refreshClaimsCmd(m.ctx, m.store, m.auth)

	case modeRegister:
		// Registration is confirmed by a one-time code sent to the email.
		m.login.setMode(modeOTP)
		return m, m.setNotice("Check your email for the verification code")

	case modeForgot:
		m.login.setMode(modeLogin)
		return m, m.setNotice("Password reset email sent")
	}
	return m, nil
}

// renderLogin renders the centered auth form.
func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(m.login.title()))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	for i, in := range m.login.inputs {
		label := padRight(m.login.labels[i]+":", 14)
		if i == m.login.focus {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	if m.login.busy {
		b.WriteString(styles.WarningText.Render("Working..."))
	} else {
		b.WriteString(styles.FaintText.Render("Enter: Submit  •  F2: " + m.login.modeLabel()))
	}

	contentHeight := m.height - 2
	modal := m.renderModalSized(b.String(), 52, contentHeight)
	return modal
}

// renderModalSized centers content within the content area below the bars.
func (m Model) renderModalSized(content string, width, height int) string {
	box := lipglossModal(m.theme, width)
	return placeCentered(m.width, height, box.Render(content), m.theme.Background)
}
