// Package ui implements the terminal interface: a bubbletea state
// machine whose states are the app's routes.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tdlapp/tdl-go/internal/appdir"
	"github.com/tdlapp/tdl-go/internal/config"
	"github.com/tdlapp/tdl-go/internal/identity"
	"github.com/tdlapp/tdl-go/internal/store"
	"github.com/tdlapp/tdl-go/internal/task"
)

// prefs are display preferences persisted across runs.
type prefs struct {
	Theme string `json:"theme"`
}

// editorFocus indexes the editor form: three text inputs followed by
// the priority selector.
const (
	focusTitle = iota
	focusDescription
	focusDueDate
	focusPriority
)

type clockTickMsg time.Time

type appModel struct {
	cfg   *config.Config
	store *store.Store
	repo  *task.Repository
	ids   *identity.Service

	route    Route
	session  identity.Identity
	loggedIn bool

	width  int
	height int
	now    time.Time

	themeName string
	styles    styles

	errMsg string
	notice string

	// dashboard state; tasks is the manual (positional) order
	tasks   []task.Task
	cursor  int
	grabbed int // source index captured at grab; -1 when inactive
	columns bool

	// editor state; editID is the transient edit target, empty = add
	editID   string
	priority task.Priority
	filter   task.StatusFilter

	// active text inputs for the current route
	inputs []textinput.Model
	focus  int

	calYear  int
	calMonth time.Month
}

func newAppModel(cfg *config.Config, st *store.Store, repo *task.Repository, ids *identity.Service) (*appModel, error) {
	m := &appModel{
		cfg:       cfg,
		store:     st,
		repo:      repo,
		ids:       ids,
		now:       time.Now(),
		themeName: cfg.Theme,
		grabbed:   -1,
		filter:    task.FilterAll,
	}
	m.calYear, m.calMonth = m.now.Year(), m.now.Month()

	// Persisted theme preference wins over config.
	var p prefs
	if found, err := st.Read(appdir.PrefsKey, &p); err == nil && found && p.Theme != "" {
		m.themeName = p.Theme
	}
	m.styles = newStyles(m.themeName)

	session, ok, err := ids.Current()
	if err != nil {
		return nil, err
	}
	m.session, m.loggedIn = session, ok

	m.enterRoute(Resolve(DefaultRoute(m.loggedIn), m.loggedIn))
	return m, nil
}

func (m *appModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.clockInterval()), textinput.Blink)
}

func (m *appModel) clockInterval() time.Duration {
	return time.Duration(m.cfg.ClockIntervalSeconds) * time.Second
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clockTickMsg:
		// Display-only clock refresh, no data effects.
		m.now = time.Time(msg)
		return m, tickCmd(m.clockInterval())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.route {
		case RouteLogin, RouteRegister:
			return m.updateAuth(msg)
		case RouteDashboard:
			return m.updateDashboard(msg)
		case RouteEditor:
			return m.updateEditor(msg)
		case RouteCalendar:
			return m.updateCalendar(msg)
		}
	}
	return m, nil
}

// navigate resolves and enters a route, clearing transient banners.
func (m *appModel) navigate(r Route) {
	m.errMsg = ""
	m.notice = ""
	m.enterRoute(Resolve(r, m.loggedIn))
}

func (m *appModel) enterRoute(r Route) {
	m.route = r
	switch r {
	case RouteLogin:
		m.inputs = []textinput.Model{
			newInput("you@email.com", 60),
			newPasswordInput(),
		}
		m.setFocus(0)
	case RouteRegister:
		m.inputs = []textinput.Model{
			newInput("Your name", 80),
			newInput("you@email.com", 60),
			newPasswordInput(),
		}
		m.setFocus(0)
	case RouteDashboard:
		m.reloadTasks()
		m.grabbed = -1
	case RouteEditor:
		m.reloadTasks()
		m.buildEditorForm()
	case RouteCalendar:
		// month state persists across visits
	}
}

func (m *appModel) owner() string {
	if m.loggedIn {
		return m.session.Email
	}
	return ""
}

func (m *appModel) reloadTasks() {
	tasks, err := m.repo.Ordered(m.owner())
	if err != nil {
		m.errMsg = err.Error()
		m.tasks = nil
		return
	}
	m.tasks = tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) buildEditorForm() {
	title := newInput("e.g. Study the basics", 200)
	description := newInput("Details...", 500)
	due := newInput(task.DateLayout, 10)
	due.Placeholder = "YYYY-MM-DD"

	m.priority = task.PriorityHigh
	if m.editID != "" {
		existing, found, err := m.repo.Get(m.owner(), m.editID)
		if err != nil {
			m.errMsg = err.Error()
			m.editID = ""
		} else if !found {
			// The target vanished; fall back to add mode.
			m.editID = ""
		} else {
			title.SetValue(existing.Title)
			description.SetValue(existing.Description)
			due.SetValue(existing.DueDate)
			m.priority = existing.Priority
		}
	}

	m.inputs = []textinput.Model{title, description, due}
	m.setFocus(focusTitle)
}

// updateAuth handles the login and register forms.
func (m *appModel) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % len(m.inputs))
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case "enter":
		if m.focus < len(m.inputs)-1 {
			return m, m.setFocus(m.focus + 1)
		}
		m.submitAuth()
		return m, nil
	case "ctrl+r":
		if m.route == RouteLogin {
			m.navigate(RouteRegister)
		}
		return m, nil
	case "ctrl+l":
		if m.route == RouteRegister {
			m.navigate(RouteLogin)
		}
		return m, nil
	}
	return m, m.updateInputs(msg)
}

func (m *appModel) submitAuth() {
	m.errMsg = ""
	var (
		id  identity.Identity
		err error
	)
	if m.route == RouteLogin {
		id, err = m.ids.Login(m.inputs[0].Value(), m.inputs[1].Value())
	} else {
		id, err = m.ids.Register(m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value())
	}
	if err != nil {
		// Shown above the form until the user retries with corrected input.
		m.errMsg = err.Error()
		return
	}
	m.session, m.loggedIn = id, true
	m.navigate(RouteDashboard)
}

func (m *appModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "g":
		if m.columns || len(m.tasks) == 0 {
			return m, nil
		}
		if m.grabbed < 0 {
			// Capture the source index now; the move is applied at drop.
			m.grabbed = m.cursor
			return m, nil
		}
		if err := m.repo.Reorder(m.owner(), m.grabbed, m.cursor); err != nil {
			m.errMsg = err.Error()
		}
		m.grabbed = -1
		m.reloadTasks()
		return m, nil
	case "esc":
		m.grabbed = -1
		m.errMsg = ""
		m.notice = ""
		return m, nil
	case "x", "enter", " ":
		if t, ok := m.selectedTask(); ok {
			if _, _, err := m.repo.ToggleDone(m.owner(), t.ID); err != nil {
				m.errMsg = err.Error()
			}
			m.reloadTasks()
		}
		return m, nil
	case "d":
		if t, ok := m.selectedTask(); ok {
			if err := m.repo.Remove(m.owner(), t.ID); err != nil {
				m.errMsg = err.Error()
			}
			m.reloadTasks()
		}
		return m, nil
	case "a":
		m.editID = ""
		m.navigate(RouteEditor)
		return m, nil
	case "e":
		if t, ok := m.selectedTask(); ok {
			m.editID = t.ID
			m.navigate(RouteEditor)
		}
		return m, nil
	case "c":
		m.navigate(RouteCalendar)
		return m, nil
	case "v":
		m.columns = !m.columns
		m.grabbed = -1
		return m, nil
	case "t":
		m.toggleTheme()
		return m, nil
	case "L":
		m.logout()
		return m, nil
	}
	return m, nil
}

func (m *appModel) selectedTask() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return task.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *appModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m, m.setEditorFocus((m.focus + 1) % (focusPriority + 1))
	case "shift+tab":
		return m, m.setEditorFocus((m.focus + focusPriority) % (focusPriority + 1))
	case "left", "right":
		if m.focus == focusPriority {
			m.cyclePriority(msg.String() == "right")
			return m, nil
		}
	case "enter":
		if m.focus < focusPriority {
			return m, m.setEditorFocus(m.focus + 1)
		}
		m.submitEditor()
		return m, nil
	case "ctrl+s":
		m.submitEditor()
		return m, nil
	case "ctrl+f":
		m.cycleFilter()
		return m, nil
	case "esc":
		// Cancel editing: drop the transient edit target.
		m.editID = ""
		m.navigate(RouteDashboard)
		return m, nil
	}
	return m, m.updateInputs(msg)
}

func (m *appModel) setEditorFocus(focus int) tea.Cmd {
	m.focus = focus
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if focus < len(m.inputs) {
		return m.inputs[focus].Focus()
	}
	return nil
}

func (m *appModel) cyclePriority(forward bool) {
	order := task.Priorities()
	for i, p := range order {
		if p != m.priority {
			continue
		}
		if forward {
			m.priority = order[(i+1)%len(order)]
		} else {
			m.priority = order[(i+len(order)-1)%len(order)]
		}
		return
	}
	m.priority = order[0]
}

func (m *appModel) cycleFilter() {
	switch m.filter {
	case task.FilterAll:
		m.filter = task.FilterPending
	case task.FilterPending:
		m.filter = task.FilterDone
	default:
		m.filter = task.FilterAll
	}
}

func (m *appModel) submitEditor() {
	m.errMsg = ""
	draft := task.Draft{
		Title:       m.inputs[focusTitle].Value(),
		Description: m.inputs[focusDescription].Value(),
		Priority:    m.priority,
		DueDate:     m.inputs[focusDueDate].Value(),
	}

	if m.editID != "" {
		_, found, err := m.repo.Update(m.owner(), m.editID, draft)
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		m.editID = ""
		if !found {
			m.navigate(RouteDashboard)
			m.errMsg = "task no longer exists"
			return
		}
		m.navigate(RouteDashboard)
		m.notice = "Task updated"
		return
	}

	if _, err := m.repo.Add(m.owner(), draft); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.notice = "Task added"
	m.reloadTasks()
	m.buildEditorForm()
}

func (m *appModel) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		m.calYear, m.calMonth = monthStep(m.calYear, m.calMonth, -1)
	case "right", "l":
		m.calYear, m.calMonth = monthStep(m.calYear, m.calMonth, 1)
	case ".":
		m.calYear, m.calMonth = m.now.Year(), m.now.Month()
	case "t":
		m.toggleTheme()
	case "L":
		m.logout()
	case "esc", "c":
		m.navigate(RouteDashboard)
	case "a":
		m.editID = ""
		m.navigate(RouteEditor)
	}
	return m, nil
}

func (m *appModel) toggleTheme() {
	if m.themeName == "dark" {
		m.themeName = "light"
	} else {
		m.themeName = "dark"
	}
	m.styles = newStyles(m.themeName)
	if err := m.store.Write(appdir.PrefsKey, prefs{Theme: m.themeName}); err != nil {
		m.errMsg = err.Error()
	}
}

func (m *appModel) logout() {
	if err := m.ids.Logout(); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.session = identity.Identity{}
	m.loggedIn = false
	m.editID = ""
	m.navigate(RouteLogin)
}

func (m *appModel) setFocus(focus int) tea.Cmd {
	m.focus = focus
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *appModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func newPasswordInput() textinput.Model {
	ti := newInput("min. 4 characters", 100)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// RunTUI starts the terminal interface.
func RunTUI(ctx context.Context, cfg *config.Config, st *store.Store, repo *task.Repository, ids *identity.Service) error {
	if !IsTTY(os.Stdout) {
		return errors.New("tui requires a TTY")
	}

	model, err := newAppModel(cfg, st, repo, ids)
	if err != nil {
		return fmt.Errorf("initialize tui: %w", err)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
