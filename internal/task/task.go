// Package task implements the task collection: the on-disk store, the
// query engine, and the mutation operations.
package task

import "time"

// DueLayout is the calendar-date layout used for due dates.
const DueLayout = "2006-01-02"

// Task is a single task record as persisted in the store file.
type Task struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	Due       string     `json:"due,omitempty"`
	Tag       string     `json:"tag,omitempty"`
	Done      bool       `json:"done"`
	DoneAt    *time.Time `json:"done_at,omitempty"`
}

// Today normalizes a wall-clock instant to its local calendar date
// (midnight, local zone). Callers pass the result wherever an operation
// takes a today parameter, so the core never reads the system clock.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// IsOverdue reports whether t's due date has passed as of today.
// Done tasks are never overdue, nor are tasks without a due date or
// with a due date that does not parse as a calendar date.
func IsOverdue(t Task, today time.Time) bool {
	if t.Done {
		return false
	}
	if t.Due == "" {
		return false
	}
	due, err := time.ParseInLocation(DueLayout, t.Due, today.Location())
	if err != nil {
		return false
	}
	return due.Before(Today(today))
}

// DueOn reports whether t is not done and due exactly on the given
// calendar date. Unlike IsOverdue this is plain date equality.
func DueOn(t Task, today time.Time) bool {
	return !t.Done && t.Due != "" && t.Due == Today(today).Format(DueLayout)
}
