// Package task maps stored records to tasks and enforces the task lifecycle.
//
// A task is created pending, may be edited any number of times, and is
// completed exactly once through Service.Complete. Completion can never be
// set through Add or Edit.
package task

import (
	"time"

	"github.com/roach88/todolor/internal/store"
)

// Type is the store type tag for tasks.
const Type = "task"

// Record keys. Only these are read from or written to the store; any other
// key on a stored record is ignored here and preserved by the store.
const (
	KeyID          = store.IDKey
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyDeadline    = "deadline"
	KeyCompleted   = "completed"
)

// Task is the domain view of a stored record.
// Deadline and Completed are epoch milliseconds.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Deadline    *int64 `json:"deadline,omitempty"`
	Completed   *int64 `json:"completed,omitempty"`
}

// IsCompleted reports whether the task has a completion time.
func (t Task) IsCompleted() bool {
	return t.Completed != nil
}

// IsOverdue reports whether the task is pending with a deadline before now.
func (t Task) IsOverdue(now time.Time) bool {
	return t.Completed == nil && t.Deadline != nil && *t.Deadline < now.UnixMilli()
}

// Changes is a partial update. Nil fields are left untouched.
type Changes struct {
	ID          int
	Title       *string
	Description *string
	Deadline    *int64

	// Completed is always rejected; use Service.Complete.
	Completed *int64
}

// Empty reports whether c changes nothing.
func (c Changes) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Deadline == nil && c.Completed == nil
}

// ToTask projects a stored record onto the task whitelist.
// A record without an integer id or a non-empty title is corrupted, as is
// a nil record (a stored element that is not an object).
func ToTask(rec store.Record) (Task, error) {
	id, ok := rec.ID()
	if !ok {
		return Task{}, corruptedError(-1, "task record has no valid id")
	}
	title, _ := rec[KeyTitle].(string)
	if title == "" {
		return Task{}, corruptedError(id, "task record has no title")
	}

	t := Task{ID: id, Title: title}

	if v, ok := rec[KeyDescription]; ok {
		desc, isString := v.(string)
		if !isString {
			return Task{}, corruptedError(id, "description is %T, not a string", v)
		}
		t.Description = desc
	}

	var err error
	if t.Deadline, err = optionalMillis(rec, KeyDeadline, id); err != nil {
		return Task{}, err
	}
	if t.Completed, err = optionalMillis(rec, KeyCompleted, id); err != nil {
		return Task{}, err
	}
	return t, nil
}

func optionalMillis(rec store.Record, key string, id int) (*int64, error) {
	v, ok := rec[key]
	if !ok {
		return nil, nil
	}
	ms, ok := store.AsInt64(v)
	if !ok {
		return nil, corruptedError(id, "%s %v is not a timestamp", key, v)
	}
	return &ms, nil
}

// ToEntity projects a task onto a store record for writing.
func ToEntity(t Task) (store.Record, error) {
	if t.Title == "" {
		return nil, validationError(t.ID, "task must have a title")
	}

	rec := store.Record{
		KeyID:    t.ID,
		KeyTitle: t.Title,
	}
	if t.Description != "" {
		rec[KeyDescription] = t.Description
	}
	if t.Deadline != nil {
		rec[KeyDeadline] = *t.Deadline
	}
	if t.Completed != nil {
		rec[KeyCompleted] = *t.Completed
	}
	return rec, nil
}

// toPartial converts a change set into a store edit record.
func toPartial(c Changes) store.Record {
	rec := store.Record{KeyID: c.ID}
	if c.Title != nil {
		rec[KeyTitle] = *c.Title
	}
	if c.Description != nil {
		rec[KeyDescription] = *c.Description
	}
	if c.Deadline != nil {
		rec[KeyDeadline] = *c.Deadline
	}
	return rec
}
