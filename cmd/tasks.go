package cmd

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/tdlapp/tdl-go/internal/task"
)

// listCommand prints the owner's tasks.
func (a *app) listCommand(args []string) error {
	fs := flag.NewFlagSet("tdl list", flag.ContinueOnError)
	status := fs.String("status", "all", "Filter by status (all|pending|done)")
	manual := fs.Bool("manual", false, "Use manual order instead of due-date order")
	verbose := fs.Bool("v", false, "Show more details")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	filter, err := task.ParseFilter(*status)
	if err != nil {
		return err
	}

	owner, err := a.owner()
	if err != nil {
		return err
	}

	var tasks []task.Task
	if *manual {
		tasks, err = a.repo.Ordered(owner)
		if err == nil && filter != task.FilterAll {
			kept := tasks[:0]
			for _, t := range tasks {
				if (filter == task.FilterDone) == t.Done {
					kept = append(kept, t)
				}
			}
			tasks = kept
		}
	} else {
		tasks, err = a.repo.List(owner, filter)
	}
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks found.")
		return nil
	}
	for i, t := range tasks {
		a.printTask(i+1, t, *verbose)
	}
	return nil
}

// addCommand creates a task from the remaining args.
func (a *app) addCommand(args []string) error {
	fs := flag.NewFlagSet("tdl add", flag.ContinueOnError)
	priority := fs.String("priority", string(task.PriorityMedium), "Task priority (high|medium|low)")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")
	desc := fs.String("desc", "", "Task description")

	if err := fs.Parse(args); err != nil {
		return err
	}
	title := strings.Join(fs.Args(), " ")

	owner, err := a.owner()
	if err != nil {
		return err
	}

	t, err := a.repo.Add(owner, task.Draft{
		Title:       title,
		Description: *desc,
		Priority:    task.Priority(*priority),
		DueDate:     *due,
	})
	if err != nil {
		return err
	}

	a.logger.Debug("task added", "id", t.ID)
	fmt.Fprintf(a.out, "Added: %s\n", t.Title)
	return nil
}

// doneCommand toggles a task between done and pending.
func (a *app) doneCommand(args []string) error {
	fs := flag.NewFlagSet("tdl done", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) != 1 {
		return fmt.Errorf("usage: tdl done <task>")
	}

	owner, err := a.owner()
	if err != nil {
		return err
	}
	target, err := a.resolveTask(owner, fs.Args()[0])
	if err != nil {
		return err
	}

	t, found, err := a.repo.ToggleDone(owner, target.ID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no such task: %s", target.ID)
	}
	if t.Done {
		fmt.Fprintf(a.out, "Done: %s\n", t.Title)
	} else {
		fmt.Fprintf(a.out, "Pending again: %s\n", t.Title)
	}
	return nil
}

// rmCommand removes a task.
func (a *app) rmCommand(args []string) error {
	fs := flag.NewFlagSet("tdl rm", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) != 1 {
		return fmt.Errorf("usage: tdl rm <task>")
	}

	owner, err := a.owner()
	if err != nil {
		return err
	}
	target, err := a.resolveTask(owner, fs.Args()[0])
	if err != nil {
		return err
	}

	if err := a.repo.Remove(owner, target.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed: %s\n", target.Title)
	return nil
}

// editCommand updates the fields given via flags, keeping the rest.
func (a *app) editCommand(args []string) error {
	fs := flag.NewFlagSet("tdl edit", flag.ContinueOnError)
	title := fs.String("title", "", "New title")
	priority := fs.String("priority", "", "New priority (high|medium|low)")
	due := fs.String("due", "", "New due date (YYYY-MM-DD), or 'none' to clear")
	desc := fs.String("desc", "", "New description")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) != 1 {
		return fmt.Errorf("usage: tdl edit [options] <task>")
	}

	owner, err := a.owner()
	if err != nil {
		return err
	}
	target, err := a.resolveTask(owner, fs.Args()[0])
	if err != nil {
		return err
	}

	draft := task.Draft{
		Title:       target.Title,
		Description: target.Description,
		Priority:    target.Priority,
		DueDate:     target.DueDate,
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			draft.Title = *title
		case "priority":
			draft.Priority = task.Priority(*priority)
		case "due":
			draft.DueDate = *due
			if *due == "none" {
				draft.DueDate = ""
			}
		case "desc":
			draft.Description = *desc
		}
	})

	t, found, err := a.repo.Update(owner, target.ID, draft)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no such task: %s", target.ID)
	}
	fmt.Fprintf(a.out, "Updated: %s\n", t.Title)
	return nil
}

// mvCommand moves a task to a new position in the manual order.
func (a *app) mvCommand(args []string) error {
	fs := flag.NewFlagSet("tdl mv", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) != 2 {
		return fmt.Errorf("usage: tdl mv <from> <to>")
	}

	owner, err := a.owner()
	if err != nil {
		return err
	}
	tasks, err := a.repo.Ordered(owner)
	if err != nil {
		return err
	}

	from, err := parsePosition(fs.Args()[0], len(tasks))
	if err != nil {
		return err
	}
	to, err := parsePosition(fs.Args()[1], len(tasks))
	if err != nil {
		return err
	}

	if err := a.repo.Reorder(owner, from, to); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Moved: %s → position %d\n", tasks[from].Title, to+1)
	return nil
}

// resolveTask finds a task by 1-based manual position or id prefix.
func (a *app) resolveTask(owner, ref string) (task.Task, error) {
	tasks, err := a.repo.Ordered(owner)
	if err != nil {
		return task.Task{}, err
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(tasks) {
			return task.Task{}, fmt.Errorf("position %d out of range 1..%d", n, len(tasks))
		}
		return tasks[n-1], nil
	}

	var matches []task.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return task.Task{}, fmt.Errorf("no task matches %q", ref)
	default:
		return task.Task{}, fmt.Errorf("%q is ambiguous (%d matches)", ref, len(matches))
	}
}

func parsePosition(s string, n int) (int, error) {
	pos, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	if pos < 1 || pos > n {
		return 0, fmt.Errorf("position %d out of range 1..%d", pos, n)
	}
	return pos - 1, nil
}

// printTask prints a single task.
func (a *app) printTask(pos int, t task.Task, verbose bool) {
	statusIcon := "📝"
	if t.Done {
		statusIcon = "✅"
	}

	line := fmt.Sprintf("  %2d. %s %s (%s)", pos, statusIcon, t.Title, t.Priority)
	if t.DueDate != "" {
		line += " due " + t.DueDate
	}
	fmt.Fprintln(a.out, line)

	if verbose {
		fmt.Fprintf(a.out, "      id: %s\n", t.ID)
		if t.Description != "" {
			fmt.Fprintf(a.out, "      %s\n", t.Description)
		}
	}
}
