package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tote/internal/lists"
	"github.com/five82/tote/internal/logtail"
	"github.com/five82/tote/internal/prefs"
	"github.com/five82/tote/internal/shopping"
	"github.com/five82/tote/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewLists View = iota
	ViewItems
)

type pane int

const (
	paneItems pane = iota
	paneShares
)

// Options configures the UI.
type Options struct {
	Context       context.Context
	Manager       *lists.Manager
	Selection     *state.Selection
	ThemeName     string
	HideCompleted bool
	PrefsPath     string
	LogPath       string
	APIURL        string
	Tick          time.Duration // activity pane refresh; zero uses one second
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	manager   *lists.Manager
	store     *state.Store
	selection *state.Selection
	prefsPath string
	logPath   string
	apiURL    string
	tick      time.Duration

	// Store change notifications
	changes     chan struct{}
	unsubscribe func()

	// UI state
	keys   keyMap
	help   help.Model
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.State
	synced   time.Time

	// Cursor state
	listRow  int
	itemRow  int
	shareRow int
	pane     pane

	hideCompleted bool
	showHelp      bool

	// Activity pane
	showActivity bool
	activity     viewport.Model
	entries      []logtail.Entry

	// Prompt and confirmation overlays
	prompt  prompt
	input   textinput.Model
	confirm confirmation

	// Transient status line, cleared on the next key press
	notice      string
	noticeLevel noticeLevel
}

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeWarn
)

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = time.Second
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}
	selection := opts.Selection
	if selection == nil {
		selection = &state.Selection{}
	}

	store := opts.Manager.Store()
	changes := make(chan struct{}, 1)
	notify := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}
	unsubStore := store.Subscribe(func(state.State) { notify() })
	unsubSel := selection.Subscribe(func(shopping.ID) { notify() })

	input := textinput.New()
	input.CharLimit = 120

	return Model{
		ctx:           ctx,
		manager:       opts.Manager,
		store:         store,
		selection:     selection,
		prefsPath:     opts.PrefsPath,
		logPath:       opts.LogPath,
		apiURL:        opts.APIURL,
		tick:          tick,
		changes:       changes,
		unsubscribe:   func() { unsubStore(); unsubSel() },
		keys:          DefaultKeyMap(),
		help:          help.New(),
		theme:         GetTheme(themeName),
		snapshot:      store.State(),
		synced:        time.Now(),
		hideCompleted: opts.HideCompleted,
		input:         input,
	}
}

// Close releases the store and selection subscriptions.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForChange(m.ctx, m.changes),
		tickCmd(m.tick),
	}
	if id := m.selection.Active(); id != 0 {
		cmds = append(cmds, m.openListCmd(id))
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
		m.help.Width = msg.Width
		if !m.ready {
			m.activity = viewport.New(msg.Width, activityHeight)
		}
		m.ready = true
		m.activity.Width = msg.Width - 4
		m.updateActivityViewport()
		return m, nil

	case changedMsg:
		m.applySnapshot(m.store.State())
		return m, waitForChange(m.ctx, m.changes)

	case tickMsg:
		var cmd tea.Cmd
		if m.showActivity {
			cmd = readActivityCmd(m.logPath)
		}
		return m, tea.Batch(cmd, tickCmd(m.tick))

	case activityMsg:
		m.entries = msg
		m.updateActivityViewport()
		return m, nil

	case opDoneMsg:
		m.handleOpDone(msg)
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
	return m.renderMain()
}

// CurrentView reports which screen is showing. The items view requires an
// active list that is present in the store.
func (m Model) CurrentView() View {
	if _, ok := m.activeList(); ok {
		return ViewItems
	}
	return ViewLists
}

func (m Model) activeList() (shopping.List, bool) {
	id := m.selection.Active()
	if id == 0 {
		return shopping.List{}, false
	}
	l, _, ok := m.snapshot.Find(id)
	return l, ok
}

func (m *Model) applySnapshot(s state.State) {
	m.snapshot = s
	m.synced = time.Now()
	m.listRow = clampRow(m.listRow, len(s.Lists))
	if l, ok := m.activeList(); ok {
		m.itemRow = clampRow(m.itemRow, len(m.visibleItems(l)))
		m.shareRow = clampRow(m.shareRow, len(l.Shares))
		if len(l.Shares) == 0 {
			m.pane = paneItems
		}
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.prompt.active() {
		return m.handlePromptKey(msg)
	}
	if m.confirm.active() {
		return m.handleConfirmKey(msg)
	}

	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		name := m.theme.Name
		_ = prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name })
		return m, nil
	case key.Matches(msg, m.keys.DismissError):
		m.manager.ClearError()
		return m, nil
	case key.Matches(msg, m.keys.Activity):
		m.showActivity = !m.showActivity
		if m.showActivity {
			return m, readActivityCmd(m.logPath)
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()
	}

	if m.CurrentView() == ViewItems {
		return m.handleItemsKey(msg)
	}
	return m.handleListsKey(msg)
}

func (m *Model) handleOpDone(msg opDoneMsg) {
	switch {
	case msg.err == nil:
		if msg.notice != "" {
			m.notice, m.noticeLevel = msg.notice, noticeInfo
		}
	case errors.Is(msg.err, shopping.ErrEmptyName),
		errors.Is(msg.err, shopping.ErrEmptyUsername),
		errors.Is(msg.err, shopping.ErrPending):
		m.notice, m.noticeLevel = capitalize(msg.err.Error()), noticeWarn
	case errors.Is(msg.err, context.Canceled):
	default:
		// Mutation failures are already on State.Error.
	}
}

// Messages

type tickMsg time.Time

type changedMsg struct{}

type activityMsg []logtail.Entry

type opDoneMsg struct {
	op     string
	notice string
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForChange(ctx context.Context, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			return changedMsg{}
		}
	}
}

// run wraps a manager call so it executes off the UI goroutine.
func (m Model) run(op string, fn func(ctx context.Context) (string, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		notice, err := fn(ctx)
		return opDoneMsg{op: op, notice: notice, err: err}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	mgr := m.manager
	cmds := []tea.Cmd{m.run(lists.OpRefreshLists, func(ctx context.Context) (string, error) {
		return "", mgr.RefreshLists(ctx)
	})}
	if l, ok := m.activeList(); ok {
		cmds = append(cmds, m.openListCmd(l.ID))
	}
	return tea.Batch(cmds...)
}

// openListCmd loads the items of a list and, for owners, its share grants.
func (m Model) openListCmd(id shopping.ID) tea.Cmd {
	if id.Pending() {
		return nil
	}
	mgr := m.manager
	owner := true
	if l, _, ok := m.snapshot.Find(id); ok {
		owner = l.IsOwner
	}
	return m.run(lists.OpFetchItems, func(ctx context.Context) (string, error) {
		if err := mgr.FetchListItems(ctx, id); err != nil {
			return "", err
		}
		if owner {
			if _, err := mgr.FetchShares(ctx, id); err != nil {
				return "", err
			}
		}
		return "", nil
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

func clampRow(row, n int) int {
	if n == 0 || row < 0 {
		return 0
	}
	if row >= n {
		return n - 1
	}
	return row
}
