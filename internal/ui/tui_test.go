package ui

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tdlapp/tdl-go/internal/appdir"
	"github.com/tdlapp/tdl-go/internal/config"
	"github.com/tdlapp/tdl-go/internal/identity"
	"github.com/tdlapp/tdl-go/internal/store"
	"github.com/tdlapp/tdl-go/internal/task"
)

func newTestModel(t *testing.T) (*appModel, *store.Store, *task.Repository, *identity.Service) {
	t.Helper()
	dir := t.TempDir()
	st := store.New(dir)
	repo := task.NewRepository(st)
	ids := identity.NewService(st, repo)

	cfg := &config.Config{
		DataDir:              dir,
		Theme:                "dark",
		ClockIntervalSeconds: 60,
	}
	m, err := newAppModel(cfg, st, repo, ids)
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	return m, st, repo, ids
}

func newLoggedInModel(t *testing.T) (*appModel, *store.Store, *task.Repository) {
	t.Helper()
	m, st, repo, _ := newTestModel(t)
	m.navigate(RouteRegister)
	m.inputs[0].SetValue("Ada")
	m.inputs[1].SetValue("ada@example.com")
	m.inputs[2].SetValue("s3cret")
	m.submitAuth()
	if m.route != RouteDashboard {
		t.Fatalf("after register route = %q, want %q (err: %s)", m.route, RouteDashboard, m.errMsg)
	}
	return m, st, repo
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *appModel, keys ...string) {
	for _, s := range keys {
		m.Update(key(s))
	}
}

func TestStartsAtLoginWithoutSession(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	if m.route != RouteLogin {
		t.Fatalf("route = %q, want %q", m.route, RouteLogin)
	}
}

func TestStartsAtDashboardWithSession(t *testing.T) {
	dir := t.TempDir()
	st := store.New(dir)
	repo := task.NewRepository(st)
	ids := identity.NewService(st, repo)
	if _, err := ids.Register("Ada", "ada@example.com", "s3cret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cfg := &config.Config{DataDir: dir, Theme: "dark", ClockIntervalSeconds: 60}
	m, err := newAppModel(cfg, st, repo, ids)
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	if m.route != RouteDashboard {
		t.Fatalf("route = %q, want %q", m.route, RouteDashboard)
	}
	if !strings.Contains(m.View(), "Hello, Ada") {
		t.Error("dashboard view missing greeting")
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	m.navigate(RouteRegister)
	m.inputs[0].SetValue("Ada")
	m.inputs[1].SetValue("ada@example.com")
	m.inputs[2].SetValue("abc")
	m.submitAuth()

	if m.route != RouteRegister {
		t.Fatalf("route = %q, want to stay on %q", m.route, RouteRegister)
	}
	if m.errMsg == "" {
		t.Error("expected an error banner")
	}
	if !strings.Contains(m.View(), m.errMsg) {
		t.Error("error banner not rendered")
	}
}

func TestLoginWrongPasswordShowsErrorAndAllowsRetry(t *testing.T) {
	m, _, _, ids := newTestModel(t)
	if _, err := ids.Register("Ada", "ada@example.com", "s3cret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := ids.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	m.navigate(RouteLogin)
	m.inputs[0].SetValue("ada@example.com")
	m.inputs[1].SetValue("wrong")
	m.submitAuth()
	if m.route != RouteLogin || m.errMsg == "" {
		t.Fatalf("wrong password: route = %q, err = %q", m.route, m.errMsg)
	}

	m.inputs[1].SetValue("s3cret")
	m.submitAuth()
	if m.route != RouteDashboard {
		t.Fatalf("retry: route = %q, want %q (err: %s)", m.route, RouteDashboard, m.errMsg)
	}
}

func TestDashboardToggleAndDelete(t *testing.T) {
	m, _, repo := newLoggedInModel(t)
	if _, err := repo.Add("ada@example.com", task.Draft{Title: "First", Priority: task.PriorityHigh}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	m.navigate(RouteDashboard)

	press(m, "x")
	got, err := repo.Ordered("ada@example.com")
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	if !got[0].Done {
		t.Error("task not marked done after x")
	}

	press(m, "d")
	got, err = repo.Ordered("ada@example.com")
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d tasks after delete, want 0", len(got))
	}
}

func TestGrabDropReorder(t *testing.T) {
	m, _, repo := newLoggedInModel(t)
	for _, title := range []string{"A", "B", "C"} {
		if _, err := repo.Add("ada@example.com", task.Draft{Title: title, Priority: task.PriorityLow}); err != nil {
			t.Fatalf("Add %s: %v", title, err)
		}
	}
	m.navigate(RouteDashboard)

	press(m, "g", "j", "j", "g")

	got, err := repo.Ordered("ada@example.com")
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	titles := make([]string, len(got))
	for i, tk := range got {
		titles[i] = tk.Title
	}
	want := []string{"B", "C", "A"}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("order = %v, want %v", titles, want)
		}
	}
}

func TestGrabCancelLeavesOrder(t *testing.T) {
	m, _, repo := newLoggedInModel(t)
	for _, title := range []string{"A", "B"} {
		if _, err := repo.Add("ada@example.com", task.Draft{Title: title, Priority: task.PriorityLow}); err != nil {
			t.Fatalf("Add %s: %v", title, err)
		}
	}
	m.navigate(RouteDashboard)

	press(m, "g", "j", "esc")
	if m.grabbed != -1 {
		t.Error("grab still active after esc")
	}
	got, _ := repo.Ordered("ada@example.com")
	if got[0].Title != "A" {
		t.Errorf("order changed after cancelled grab: %q first", got[0].Title)
	}
}

func TestEditorAddsTask(t *testing.T) {
	m, _, repo := newLoggedInModel(t)
	press(m, "a")
	if m.route != RouteEditor {
		t.Fatalf("route = %q, want %q", m.route, RouteEditor)
	}

	m.inputs[focusTitle].SetValue("  Ship it  ")
	m.inputs[focusDueDate].SetValue("2026-09-01")
	m.priority = task.PriorityMedium
	m.submitEditor()

	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if m.notice == "" {
		t.Error("expected a confirmation notice")
	}
	if m.route != RouteEditor {
		t.Errorf("route = %q, want to stay on editor for the next add", m.route)
	}
	if m.inputs[focusTitle].Value() != "" {
		t.Error("form not reset after add")
	}

	got, err := repo.Ordered("ada@example.com")
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Ship it" || got[0].DueDate != "2026-09-01" {
		t.Fatalf("stored task = %+v", got)
	}
}

func TestEditorPreviewShowsTaskJustAdded(t *testing.T) {
	m, _, _ := newLoggedInModel(t)
	press(m, "a")

	m.inputs[focusTitle].SetValue("Ship it")
	m.submitEditor()

	got := m.View()
	if !strings.Contains(got, "Ship it") {
		t.Errorf("preview missing task added on this submit:\n%s", got)
	}
	if strings.Contains(got, "nothing here") {
		t.Errorf("preview still shows the empty placeholder:\n%s", got)
	}
}

func TestEditorVanishedTaskShowsBanner(t *testing.T) {
	m, _, repo := newLoggedInModel(t)
	added, err := repo.Add("ada@example.com", task.Draft{Title: "Gone", Priority: task.PriorityLow})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	m.navigate(RouteDashboard)
	press(m, "e")

	// The task disappears between the edit entry and the submit.
	if err := repo.Remove("ada@example.com", added.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	m.submitEditor()

	if m.route != RouteDashboard {
		t.Fatalf("route = %q, want %q", m.route, RouteDashboard)
	}
	if m.errMsg == "" {
		t.Fatal("no error banner after updating a removed task")
	}
	if !strings.Contains(m.View(), m.errMsg) {
		t.Error("error banner not rendered on the dashboard")
	}
}

func TestEditorValidationKeepsInput(t *testing.T) {
	m, _, repo := newLoggedInModel(t)
	press(m, "a")
	m.inputs[focusDescription].SetValue("no title")
	m.submitEditor()

	if m.errMsg == "" {
		t.Fatal("expected a validation error")
	}
	if m.inputs[focusDescription].Value() != "no title" {
		t.Error("form cleared on rejected submit")
	}
	got, _ := repo.Ordered("ada@example.com")
	if len(got) != 0 {
		t.Errorf("rejected submit stored %d tasks", len(got))
	}
}

func TestEditPrefillsAndUpdates(t *testing.T) {
	m, _, repo := newLoggedInModel(t)
	added, err := repo.Add("ada@example.com", task.Draft{Title: "Draft", Priority: task.PriorityHigh})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	m.navigate(RouteDashboard)

	press(m, "e")
	if m.route != RouteEditor || m.editID != added.ID {
		t.Fatalf("route = %q editID = %q", m.route, m.editID)
	}
	if m.inputs[focusTitle].Value() != "Draft" {
		t.Fatalf("title not prefilled: %q", m.inputs[focusTitle].Value())
	}

	m.inputs[focusTitle].SetValue("Final")
	m.submitEditor()
	if m.route != RouteDashboard {
		t.Fatalf("route after update = %q (err: %s)", m.route, m.errMsg)
	}
	if m.editID != "" {
		t.Error("edit target not cleared after submit")
	}

	got, _, err := repo.Get("ada@example.com", added.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Final" {
		t.Errorf("title = %q, want %q", got.Title, "Final")
	}
}

func TestEditorEscCancelsEdit(t *testing.T) {
	m, _, repo := newLoggedInModel(t)
	added, err := repo.Add("ada@example.com", task.Draft{Title: "Keep", Priority: task.PriorityLow})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	m.navigate(RouteDashboard)
	press(m, "e", "esc")

	if m.route != RouteDashboard || m.editID != "" {
		t.Fatalf("route = %q editID = %q after cancel", m.route, m.editID)
	}
	got, _, _ := repo.Get("ada@example.com", added.ID)
	if got.Title != "Keep" {
		t.Errorf("cancelled edit changed task: %q", got.Title)
	}
}

func TestThemeTogglePersists(t *testing.T) {
	m, st, _ := newLoggedInModel(t)
	press(m, "t")
	if m.themeName != "light" {
		t.Fatalf("theme = %q, want light", m.themeName)
	}

	var p prefs
	found, err := st.Read(appdir.PrefsKey, &p)
	if err != nil || !found {
		t.Fatalf("read prefs: found=%v err=%v", found, err)
	}
	if p.Theme != "light" {
		t.Errorf("persisted theme = %q, want light", p.Theme)
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	m, _, _ := newLoggedInModel(t)
	press(m, "L")
	if m.route != RouteLogin || m.loggedIn {
		t.Fatalf("route = %q loggedIn = %v after logout", m.route, m.loggedIn)
	}
}

func TestCalendarNavigation(t *testing.T) {
	m, _, _ := newLoggedInModel(t)
	press(m, "c")
	if m.route != RouteCalendar {
		t.Fatalf("route = %q, want %q", m.route, RouteCalendar)
	}

	year, month := m.calYear, m.calMonth
	press(m, "right")
	wantYear, wantMonth := monthStep(year, month, 1)
	if m.calYear != wantYear || m.calMonth != wantMonth {
		t.Fatalf("after right: %d-%s, want %d-%s", m.calYear, m.calMonth, wantYear, wantMonth)
	}

	press(m, ".")
	if m.calYear != m.now.Year() || m.calMonth != m.now.Month() {
		t.Error("'.' did not return to the current month")
	}

	press(m, "esc")
	if m.route != RouteDashboard {
		t.Fatalf("route = %q, want %q", m.route, RouteDashboard)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&strings.Builder{}) {
		t.Error("non-file writer reported as a TTY")
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	if IsTTY(f) {
		t.Error("regular file reported as a TTY")
	}

	// A closed file makes Stat fail; that must not panic.
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if IsTTY(f) {
		t.Error("closed file reported as a TTY")
	}
}

func TestUnknownRouteFallsBack(t *testing.T) {
	m, _, _ := newLoggedInModel(t)
	m.navigate(Route("settings"))
	if m.route != RouteDashboard {
		t.Fatalf("route = %q, want %q", m.route, RouteDashboard)
	}
}
