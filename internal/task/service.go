package task

import (
	"fmt"
	"time"

	"github.com/roach88/todolor/internal/store"
)

// Store is the persistence contract the task layer needs.
// *store.Store satisfies it.
type Store interface {
	GetAll(typ string) ([]store.Record, error)
	Add(typ string, rec store.Record) (int, error)
	Edit(typ string, partial store.Record) (int, error)
	Delete(typ string, id int) error
}

// Clock supplies the wall time used for completion stamps and overdue checks.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Service mediates between the store and the user interface.
type Service struct {
	store Store
	clock Clock
}

// New creates a Service. A nil clock defaults to SystemClock.
func New(st Store, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{store: st, clock: clock}
}

// GetAll returns every task in storage order.
// One malformed record fails the whole call.
func (s *Service) GetAll() ([]Task, error) {
	records, err := s.store.GetAll(Type)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	tasks := make([]Task, 0, len(records))
	for _, rec := range records {
		t, err := ToTask(rec)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Add stores a new pending task and returns its id. t.ID is ignored.
func (s *Service) Add(t Task) (int, error) {
	if t.Completed != nil {
		return 0, validationError(-1, "a task cannot be created completed")
	}
	rec, err := ToEntity(t)
	if err != nil {
		return 0, err
	}
	delete(rec, KeyID)

	id, err := s.store.Add(Type, rec)
	if err != nil {
		return 0, fmt.Errorf("add task: %w", err)
	}
	return id, nil
}

// Edit applies c to the task with id c.ID.
func (s *Service) Edit(c Changes) (int, error) {
	if c.Completed != nil {
		return 0, validationError(c.ID, "completion can only be set by completing the task")
	}
	if c.Title != nil && *c.Title == "" {
		return 0, validationError(c.ID, "task title must not be empty")
	}
	if c.Description != nil && *c.Description == "" {
		return 0, validationError(c.ID, "task description must not be empty")
	}

	id, err := s.store.Edit(Type, toPartial(c))
	if err != nil {
		return 0, fmt.Errorf("edit task: %w", err)
	}
	return id, nil
}

// Complete stamps the task with the current time.
func (s *Service) Complete(id int) (int, error) {
	tasks, err := s.GetAll()
	if err != nil {
		return 0, err
	}

	var found *Task
	for i := range tasks {
		if tasks[i].ID == id {
			found = &tasks[i]
			break
		}
	}
	if found == nil {
		return 0, notFoundError(id)
	}
	if found.IsCompleted() {
		return 0, alreadyCompletedError(id)
	}

	changes := store.Record{
		KeyID:        id,
		KeyCompleted: s.clock.Now().UnixMilli(),
	}
	if _, err := s.store.Edit(Type, changes); err != nil {
		return 0, fmt.Errorf("complete task: %w", err)
	}
	return id, nil
}

// Delete removes the task with the given id.
func (s *Service) Delete(id int) error {
	if err := s.store.Delete(Type, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// GetDue returns pending tasks, nearest deadline first.
// Tasks without a deadline come last.
func (s *Service) GetDue() ([]Task, error) {
	tasks, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	due := filter(tasks, func(t Task) bool { return !t.IsCompleted() })
	sortByField(due, KeyDeadline, Ascending)
	return due, nil
}

// GetOverdue returns pending tasks whose deadline has passed, oldest first.
func (s *Service) GetOverdue() ([]Task, error) {
	tasks, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	overdue := filter(tasks, func(t Task) bool { return t.IsOverdue(now) })
	sortByField(overdue, KeyDeadline, Ascending)
	return overdue, nil
}

// GetCompleted returns completed tasks, most recently completed first.
func (s *Service) GetCompleted() ([]Task, error) {
	tasks, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	done := filter(tasks, Task.IsCompleted)
	sortByField(done, KeyCompleted, Descending)
	return done, nil
}

func filter(tasks []Task, keep func(Task) bool) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
