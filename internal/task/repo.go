package task

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tdlapp/tdl-go/internal/appdir"
	"github.com/tdlapp/tdl-go/internal/store"
)

// Repository provides CRUD, ordering, and reordering over per-owner
// task collections. Every mutation reads the owner's whole collection,
// modifies it in memory, and writes it back in a single store call.
type Repository struct {
	store *store.Store
}

// NewRepository returns a repository backed by s.
func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s}
}

// Load reads an owner's collection, defaulting to an empty one when
// the dataset does not exist yet.
func (r *Repository) Load(owner string) (*List, error) {
	l := &List{SchemaVersion: SchemaVersion, Owner: owner}
	found, err := r.store.Read(r.key(owner), l)
	if err != nil {
		return nil, err
	}
	if found {
		if err := validateListMinimal(l); err != nil {
			return nil, fmt.Errorf("task collection for %s: %w", ownerLabel(owner), err)
		}
	}
	return l, nil
}

// EnsureOwner creates an empty collection for owner if none exists.
func (r *Repository) EnsureOwner(owner string) error {
	if r.store.Exists(r.key(owner)) {
		return nil
	}
	return r.save(owner, &List{SchemaVersion: SchemaVersion, Owner: owner})
}

// List returns the owner's tasks matching filter in display order:
// not-done before done, then ascending due date with undated tasks
// last. The order is recomputed from current task state on every call.
func (r *Repository) List(owner string, filter StatusFilter) ([]Task, error) {
	l, err := r.Load(owner)
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		switch filter {
		case FilterPending:
			if t.Done {
				continue
			}
		case FilterDone:
			if !t.Done {
				continue
			}
		}
		tasks = append(tasks, t)
	}

	SortForDisplay(tasks)
	return tasks, nil
}

// Ordered returns the owner's tasks in manual (positional) order.
func (r *Repository) Ordered(owner string) ([]Task, error) {
	l, err := r.Load(owner)
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, len(l.Tasks))
	copy(tasks, l.Tasks)
	return tasks, nil
}

// Add creates a task from d, appends it to the owner's collection, and
// persists the collection. The draft's text fields are trimmed; an
// empty title, unknown priority, or malformed due date is rejected
// with a ValidationError.
func (r *Repository) Add(owner string, d Draft) (Task, error) {
	d, err := normalizeDraft(d)
	if err != nil {
		return Task{}, err
	}

	l, err := r.Load(owner)
	if err != nil {
		return Task{}, err
	}

	t := Task{
		ID:          uuid.NewString(),
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		DueDate:     d.DueDate,
		Done:        false,
		CreatedAt:   time.Now().UTC(),
		Position:    len(l.Tasks),
	}
	l.Tasks = append(l.Tasks, t)

	if err := r.save(owner, l); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Get returns the task with the given id, if present.
func (r *Repository) Get(owner, id string) (Task, bool, error) {
	l, err := r.Load(owner)
	if err != nil {
		return Task{}, false, err
	}
	for _, t := range l.Tasks {
		if t.ID == id {
			return t, true, nil
		}
	}
	return Task{}, false, nil
}

// Update replaces the editable fields of the task with the given id,
// preserving id, done, and createdAt. An absent id is a no-op reported
// via found=false.
func (r *Repository) Update(owner, id string, d Draft) (Task, bool, error) {
	d, err := normalizeDraft(d)
	if err != nil {
		return Task{}, false, err
	}

	l, err := r.Load(owner)
	if err != nil {
		return Task{}, false, err
	}
	for i := range l.Tasks {
		if l.Tasks[i].ID != id {
			continue
		}
		l.Tasks[i].Title = d.Title
		l.Tasks[i].Description = d.Description
		l.Tasks[i].Priority = d.Priority
		l.Tasks[i].DueDate = d.DueDate
		if err := r.save(owner, l); err != nil {
			return Task{}, false, err
		}
		return l.Tasks[i], true, nil
	}
	return Task{}, false, nil
}

// ToggleDone flips the done flag of the task with the given id. An
// absent id is a no-op reported via found=false.
func (r *Repository) ToggleDone(owner, id string) (Task, bool, error) {
	l, err := r.Load(owner)
	if err != nil {
		return Task{}, false, err
	}
	for i := range l.Tasks {
		if l.Tasks[i].ID != id {
			continue
		}
		l.Tasks[i].Done = !l.Tasks[i].Done
		if err := r.save(owner, l); err != nil {
			return Task{}, false, err
		}
		return l.Tasks[i], true, nil
	}
	return Task{}, false, nil
}

// Remove deletes the task with the given id. Removing an absent id is
// a no-op, so Remove is idempotent.
func (r *Repository) Remove(owner, id string) error {
	l, err := r.Load(owner)
	if err != nil {
		return err
	}

	kept := l.Tasks[:0]
	for _, t := range l.Tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(l.Tasks) {
		return nil
	}
	l.Tasks = kept
	return r.save(owner, l)
}

// Reorder removes the task at from and reinserts it at to in the
// owner's positional order, shifting the tasks in between. Equal or
// out-of-range indices are a no-op.
func (r *Repository) Reorder(owner string, from, to int) error {
	l, err := r.Load(owner)
	if err != nil {
		return err
	}
	n := len(l.Tasks)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return nil
	}

	moved := l.Tasks[from]
	l.Tasks = append(l.Tasks[:from], l.Tasks[from+1:]...)
	l.Tasks = append(l.Tasks[:to], append([]Task{moved}, l.Tasks[to:]...)...)

	return r.save(owner, l)
}

func (r *Repository) save(owner string, l *List) error {
	if l.Tasks == nil {
		l.Tasks = []Task{}
	}
	for i := range l.Tasks {
		l.Tasks[i].Position = i
	}
	return r.store.Write(r.key(owner), l)
}

func (r *Repository) key(owner string) string {
	return appdir.TasksKey(appdir.OwnerKey(owner))
}

// SortForDisplay orders tasks in place: not-done first, then by
// ascending due date, undated tasks last. The sort is stable so equal
// keys keep their positional order.
func SortForDisplay(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Done != tasks[j].Done {
			return !tasks[i].Done
		}
		return dueKey(tasks[i]) < dueKey(tasks[j])
	})
}

func dueKey(t Task) string {
	if t.DueDate == "" {
		return farFutureDue
	}
	return t.DueDate
}

func ownerLabel(owner string) string {
	if owner == "" {
		return appdir.LocalOwner
	}
	return owner
}
