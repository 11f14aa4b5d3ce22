// Package ui provides the Bubble Tea TUI for claimdesk.
package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgodse/claimdesk/internal/api"
	"github.com/rgodse/claimdesk/internal/claims"
	"github.com/rgodse/claimdesk/internal/config"
	"github.com/rgodse/claimdesk/internal/debounce"
	"github.com/rgodse/claimdesk/internal/filters"
	"github.com/rgodse/claimdesk/internal/formstate"
	"github.com/rgodse/claimdesk/internal/gridstate"
	"github.com/rgodse/claimdesk/internal/state"
	"github.com/rgodse/claimdesk/internal/storage"
)

// prefsKey is the storage key for persisted UI preferences.
const prefsKey = "uiPrefs"

// uiPrefs are the user preferences that survive restarts. Filters are
// deliberately absent: they reset on every launch.
type uiPrefs struct {
	Theme string `json:"theme"`
}

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewClaims
	ViewIntake
	ViewCustomers
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Client   *api.Client
	Auth     *api.AuthClient
	Tokens   *api.TokenStore
	Claims   *state.Store
	Form     *formstate.Store
	Filters  *filters.Store
	Grid     *gridstate.Service
	Storage  *storage.Store
	Config   *config.Config
	Logger   *slog.Logger
	PollTick time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	client   *api.Client
	auth     *api.AuthClient
	tokens   *api.TokenStore
	store    *state.Store
	form     *formstate.Store
	filters  *filters.Store
	gridSvc  *gridstate.Service
	storage  *storage.Store
	config   *config.Config
	logger   *slog.Logger
	pollTick time.Duration

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	notice      string

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time
	user        api.User

	// Claims view state
	grid        *claimsGrid
	gridSaver   *debounce.Debouncer
	selectedRow int

	// Column picker modal
	showColumns bool
	columnRow   int

	// Filter modal
	showFilters    bool
	filterInputs   [4]textinput.Model
	filterFocusIdx int

	// Login state
	login loginState

	// Intake state
	intake intakeState

	// Customers view state
	customers customersState

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	view := ViewLogin
	if opts.Tokens != nil && opts.Tokens.Token() != "" {
		view = ViewClaims
	}

	grid := newClaimsGrid(defaultClaimColumns())
	if opts.Grid != nil {
		opts.Grid.Load(grid, claimsGridKey)
	}

	var prefs uiPrefs
	if opts.Storage != nil {
		opts.Storage.Get(storage.Durable, prefsKey, &prefs)
	}

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		auth:        opts.Auth,
		tokens:      opts.Tokens,
		store:       opts.Claims,
		form:        opts.Form,
		filters:     opts.Filters,
		gridSvc:     opts.Grid,
		storage:     opts.Storage,
		config:      opts.Config,
		logger:      logger,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(prefs.Theme),
		currentView: view,
		grid:        grid,
	}
	if opts.Grid != nil {
		m.gridSaver = opts.Grid.NewAutoSaver(grid, claimsGridKey, 300*time.Millisecond)
	}
	m.login = newLoginState()
	m.intake = newIntakeState(opts.Form, opts.Config)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initFilterInputs()
		}
		m.ready = true
		m.clampSelection()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelection()
		return m, nil

	case authResultMsg:
		return m.handleAuthResult(msg)

	case sectionSavedMsg:
		return m.handleSectionSaved(msg)

	case intakeStartedMsg:
		return m.handleIntakeStarted(msg)

	case claimLoadedMsg:
		return m.handleClaimLoaded(msg)

	case customersResultMsg:
		return m.handleCustomersResult(msg)

	case noticeExpiredMsg:
		if m.notice == string(msg) {
			m.notice = ""
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}
	if m.showFilters {
		return m.renderFilterModal()
	}
	if m.showColumns {
		return m.renderColumnPicker()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.showFilters {
		return m.handleFilterModalKey(msg)
	}
	if m.showColumns {
		return m.handleColumnPickerKey(msg)
	}

	// Views with text inputs own nearly all keys while active.
	switch m.currentView {
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewIntake:
		return m.handleIntakeKey(msg)
	case ViewCustomers:
		return m.handleCustomersKey(msg)
	}

	// Global keys for the claims view
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.storage != nil {
			m.storage.Set(storage.Durable, prefsKey, uiPrefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.Filters):
		m.openFilterModal()
		return m, nil

	case key.Matches(msg, m.keys.Columns):
		m.openColumnPicker()
		return m, nil

	case key.Matches(msg, m.keys.ToggleMode):
		m.toggleViewMode()
		return m, nil

	case key.Matches(msg, m.keys.NewClaim):
		return m.startIntake()

	case key.Matches(msg, m.keys.EditClaim):
		return m.startEdit()

	case key.Matches(msg, m.keys.Customers):
		return m.openCustomers()

	case key.Matches(msg, m.keys.Refresh):
		return m, refreshClaimsCmd(m.ctx, m.store, m.auth)

	case key.Matches(msg, m.keys.SignOut):
		// Sign out: drop the token and any session-scoped form state.
		m.tokens.Clear()
		m.form.Reset()
		m.login = newLoginState()
		m.currentView = ViewLogin
		return m, nil
	}

	return m.handleClaimsKey(msg)
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.pollTick))

	return m, tea.Batch(cmds...)
}

// setNotice shows a transient message in the header for a few seconds.
func (m *Model) setNotice(text string) tea.Cmd {
	m.notice = text
	note := text
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg(note)
	})
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.renderLogin()
	case ViewClaims:
		return m.renderClaims()
	case ViewIntake:
		return m.renderIntake()
	case ViewCustomers:
		return m.renderCustomers()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type noticeExpiredMsg string

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// refreshClaimsCmd fetches the claim list immediately, outside the poll
// cadence, and pushes the result through the shared store.
func refreshClaimsCmd(ctx context.Context, store *state.Store, auth *api.AuthClient) tea.Cmd {
	return func() tea.Msg {
		list, err := auth.GetClaims(ctx)
		store.Update(list, err)
		return snapshotMsg(store.Snapshot())
	}
}

// visibleClaims applies the active filters to the snapshot's claim list.
func visibleClaims(list []claims.Claim, f filters.ClaimFilters) []claims.Claim {
	out := make([]claims.Claim, 0, len(list))
	for _, c := range list {
		if f.Match(c.ClaimStatusByCompany, c.TyreCompany, c.BillDate) {
			out = append(out, c)
		}
	}
	return out
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
