package task

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

// SchemaVersion is the current on-disk collection format version.
const SchemaVersion = 1

// farFutureDue sorts tasks without a due date after every dated task.
const farFutureDue = "9999-12-31"

// Priority represents a task priority level.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Priorities lists the priority levels in display order.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	FilterAll     StatusFilter = "all"
	FilterPending StatusFilter = "pending"
	FilterDone    StatusFilter = "done"
)

// ParseFilter parses a status filter string.
func ParseFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case FilterAll, FilterPending, FilterDone:
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("invalid status filter %q, must be one of: all, pending, done", s)
}

// Task represents a single task in an owner's collection.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	DueDate     string    `json:"due_date,omitempty"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"created_at"`
	Position    int       `json:"position"`
}

// List represents an owner's on-disk task collection.
type List struct {
	SchemaVersion int    `json:"schema_version"`
	Owner         string `json:"owner"`
	Tasks         []Task `json:"tasks"`
}

// Draft carries the user-editable fields of a task for Add and Update.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     string
}

// ValidationError represents a validation error with field context.
type ValidationError struct {
	Field string // field the error refers to
	Err   error  // underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// normalizeDraft trims the draft's text fields and validates it.
func normalizeDraft(d Draft) (Draft, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.DueDate = strings.TrimSpace(d.DueDate)

	if d.Title == "" {
		return d, &ValidationError{Field: "title", Err: fmt.Errorf("must not be empty")}
	}
	if !d.Priority.Valid() {
		return d, &ValidationError{
			Field: "priority",
			Err:   fmt.Errorf("invalid priority %q, must be one of: high, medium, low", d.Priority),
		}
	}
	if d.DueDate != "" {
		if _, err := time.Parse(DateLayout, d.DueDate); err != nil {
			return d, &ValidationError{Field: "due_date", Err: fmt.Errorf("must be a YYYY-MM-DD date")}
		}
	}
	return d, nil
}

// validateListMinimal performs minimal structural checks on a loaded collection.
func validateListMinimal(l *List) error {
	if l.SchemaVersion != SchemaVersion {
		return &ValidationError{
			Field: "schema_version",
			Err:   fmt.Errorf("expected %d, got %d", SchemaVersion, l.SchemaVersion),
		}
	}
	seen := make(map[string]bool, len(l.Tasks))
	for i := range l.Tasks {
		t := &l.Tasks[i]
		path := fmt.Sprintf("tasks[%d]", i)
		if t.ID == "" {
			return &ValidationError{Field: path + ".id", Err: fmt.Errorf("missing required field")}
		}
		if seen[t.ID] {
			return &ValidationError{Field: path + ".id", Err: fmt.Errorf("duplicate id %q", t.ID)}
		}
		seen[t.ID] = true
		if t.Title == "" {
			return &ValidationError{Field: path + ".title", Err: fmt.Errorf("missing required field")}
		}
		if !t.Priority.Valid() {
			return &ValidationError{
				Field: path + ".priority",
				Err:   fmt.Errorf("invalid priority %q, must be one of: high, medium, low", t.Priority),
			}
		}
		if t.DueDate != "" {
			if _, err := time.Parse(DateLayout, t.DueDate); err != nil {
				return &ValidationError{Field: path + ".due_date", Err: fmt.Errorf("must be a YYYY-MM-DD date")}
			}
		}
	}
	return nil
}
