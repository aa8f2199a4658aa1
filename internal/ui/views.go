package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tdlapp/tdl-go/internal/task"
)

func (m *appModel) View() string {
	var b strings.Builder

	if m.route.AuthScreen() {
		m.writeAuth(&b)
		return b.String()
	}

	m.writeHeader(&b)
	m.writeBanners(&b)

	switch m.route {
	case RouteDashboard:
		m.writeDashboard(&b)
	case RouteEditor:
		m.writeEditor(&b)
	case RouteCalendar:
		m.writeCalendar(&b)
	}

	m.writeFooter(&b)
	return b.String()
}

func (m *appModel) writeHeader(b *strings.Builder) {
	b.WriteString(m.styles.Title.Render("tdl"))
	b.WriteString("  ")

	for _, r := range NavOrder {
		if r == m.route {
			b.WriteString(m.styles.NavActive.Render(r.Title()))
		} else {
			b.WriteString(m.styles.Nav.Render(r.Title()))
		}
	}

	if m.loggedIn {
		who := m.session.Name
		if who == "" {
			who = m.session.Email
		}
		b.WriteString("  ")
		b.WriteString(m.styles.Hello.Render("Hello, " + who))
	}
	b.WriteString("\n\n")
}

func (m *appModel) writeBanners(b *strings.Builder) {
	if m.errMsg != "" {
		b.WriteString(m.styles.Error.Render("✗ "+m.errMsg) + "\n\n")
	}
	if m.notice != "" {
		b.WriteString(m.styles.Notice.Render("✓ "+m.notice) + "\n\n")
	}
}

func (m *appModel) writeAuth(b *strings.Builder) {
	b.WriteString(m.styles.Title.Render("tdl") + "\n\n")
	b.WriteString(m.styles.Selected.Render(m.route.Title()) + "\n\n")

	if m.errMsg != "" {
		b.WriteString(m.styles.Error.Render("✗ "+m.errMsg) + "\n\n")
	}

	labels := []string{"Email", "Password"}
	if m.route == RouteRegister {
		labels = []string{"Name", "Email", "Password"}
	}
	for i, in := range m.inputs {
		b.WriteString(m.styles.Muted.Render(labels[i]) + "\n")
		b.WriteString(in.View() + "\n\n")
	}

	hint := "enter submit · tab next · ctrl+r register · ctrl+c quit"
	if m.route == RouteRegister {
		hint = "enter submit · tab next · ctrl+l login · ctrl+c quit"
	}
	b.WriteString(m.styles.Footer.Render(hint) + "\n")
}

func (m *appModel) writeDashboard(b *strings.Builder) {
	if len(m.tasks) == 0 {
		b.WriteString(m.styles.Muted.Render("No tasks yet. Press 'a' to add one.") + "\n")
		return
	}
	if m.columns {
		m.writeColumns(b)
		return
	}

	for i, t := range m.tasks {
		marker := "  "
		switch {
		case i == m.cursor && m.grabbed >= 0:
			marker = m.styles.Grabbed.Render("↕ ")
		case i == m.cursor:
			marker = m.styles.Selected.Render("› ")
		}

		line := m.taskLine(t)
		if i == m.grabbed {
			line = m.styles.Grabbed.Render(line)
		} else if i == m.cursor {
			line = m.styles.Selected.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
}

// writeColumns renders the priority-grouped view: one column per
// priority, each in display order.
func (m *appModel) writeColumns(b *strings.Builder) {
	cols := make([]string, 0, len(task.Priorities()))
	for _, p := range task.Priorities() {
		var c strings.Builder
		c.WriteString(m.styles.Badge(p).Render(strings.ToUpper(string(p))) + "\n")

		group := make([]task.Task, 0, len(m.tasks))
		for _, t := range m.tasks {
			if t.Priority == p {
				group = append(group, t)
			}
		}
		task.SortForDisplay(group)

		if len(group) == 0 {
			c.WriteString(m.styles.Muted.Render("—") + "\n")
		}
		for _, t := range group {
			c.WriteString(m.checkbox(t) + " " + m.titleLine(t) + "\n")
			if t.DueDate != "" {
				c.WriteString("    " + m.styles.Muted.Render("due "+t.DueDate) + "\n")
			}
		}
		cols = append(cols, m.styles.Column.Render(c.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n")
}

func (m *appModel) taskLine(t task.Task) string {
	line := m.checkbox(t) + " " + m.titleLine(t)
	line += "  " + m.styles.Badge(t.Priority).Render(string(t.Priority))
	if t.DueDate != "" {
		line += "  " + m.styles.Muted.Render("due "+t.DueDate)
	}
	return line
}

func (m *appModel) checkbox(t task.Task) string {
	if t.Done {
		return m.styles.Done.Render("[x]")
	}
	return m.styles.Pending.Render("[ ]")
}

func (m *appModel) titleLine(t task.Task) string {
	if t.Done {
		return m.styles.Done.Strikethrough(true).Render(t.Title)
	}
	return t.Title
}

func (m *appModel) writeEditor(b *strings.Builder) {
	heading := "Add a task"
	if m.editID != "" {
		heading = "Edit task"
	}
	b.WriteString(m.styles.Selected.Render(heading) + "\n\n")

	labels := []string{"Title", "Description", "Due date"}
	for i, in := range m.inputs {
		b.WriteString(m.styles.Muted.Render(labels[i]) + "\n")
		b.WriteString(in.View() + "\n\n")
	}

	b.WriteString(m.styles.Muted.Render("Priority") + "\n")
	for _, p := range task.Priorities() {
		label := " " + string(p) + " "
		switch {
		case p == m.priority && m.focus == focusPriority:
			b.WriteString(m.styles.Badge(p).Underline(true).Render("‹" + label + "›"))
		case p == m.priority:
			b.WriteString(m.styles.Badge(p).Render("[" + label + "]"))
		default:
			b.WriteString(m.styles.Muted.Render(label))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	m.writePreview(b)
}

// writePreview shows the collection in display order under the active
// status filter, next to the form.
func (m *appModel) writePreview(b *strings.Builder) {
	for _, f := range []task.StatusFilter{task.FilterAll, task.FilterPending, task.FilterDone} {
		if f == m.filter {
			b.WriteString(m.styles.ChipActive.Render(string(f)))
		} else {
			b.WriteString(m.styles.Chip.Render(string(f)))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n")

	preview := make([]task.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		switch m.filter {
		case task.FilterPending:
			if t.Done {
				continue
			}
		case task.FilterDone:
			if !t.Done {
				continue
			}
		}
		preview = append(preview, t)
	}
	task.SortForDisplay(preview)

	if len(preview) == 0 {
		b.WriteString(m.styles.Muted.Render("nothing here") + "\n")
		return
	}
	for _, t := range preview {
		b.WriteString(m.checkbox(t) + " " + m.titleLine(t))
		if t.DueDate != "" {
			b.WriteString("  " + m.styles.Muted.Render(t.DueDate))
		}
		b.WriteString("\n")
	}
}

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (m *appModel) writeCalendar(b *strings.Builder) {
	b.WriteString(m.styles.Selected.Render(fmt.Sprintf("%s %d", m.calMonth, m.calYear)) + "\n\n")

	for _, name := range weekdayNames {
		b.WriteString(m.styles.CalWeekday.Render(name))
	}
	b.WriteString("\n")

	grid := buildMonthGrid(m.calYear, m.calMonth)
	byDay := tasksByDay(m.tasks, m.calYear, m.calMonth)
	today := 0
	if m.now.Year() == m.calYear && m.now.Month() == m.calMonth {
		today = m.now.Day()
	}

	for i, day := range grid.Cells {
		cell := ""
		if day > 0 {
			cell = fmt.Sprintf("%d", day)
			if n := len(byDay[day]); n > 0 {
				cell += " " + strings.Repeat("•", min(n, 3))
			}
		}
		if day == today && day > 0 {
			b.WriteString(m.styles.CalToday.Render(cell))
		} else {
			b.WriteString(m.styles.CalCell.Render(cell))
		}
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	for day := 1; day <= 31; day++ {
		for _, t := range byDay[day] {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%2d", day)) + "  " + m.checkbox(t) + " " + m.titleLine(t) + "\n")
		}
	}
}

func (m *appModel) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.now.Format("Mon Jan 2 · 15:04")) + "\n")

	var help string
	switch m.route {
	case RouteDashboard:
		if m.grabbed >= 0 {
			help = "j/k choose position · g drop · esc cancel"
		} else if m.columns {
			help = "v list view · a add · c calendar · t theme · L logout · q quit"
		} else {
			help = "j/k move · x done · e edit · d delete · g grab · a add · v columns · c calendar · t theme · L logout · q quit"
		}
	case RouteEditor:
		help = "tab next field · enter submit · ctrl+f filter · esc back"
	case RouteCalendar:
		help = "←/→ month · . today · a add · esc back · q quit"
	}
	b.WriteString(m.styles.Footer.Render(help) + "\n")
}
