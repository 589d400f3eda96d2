package task

import "time"

// Outcome reports what a mutation did.
type Outcome string

const (
	// NotFound means no task with the given id exists.
	NotFound Outcome = "not_found"
	// AlreadyDone means the task was done before the call; nothing changed.
	AlreadyDone Outcome = "already_done"
	// Completed means the task transitioned to done.
	Completed Outcome = "completed"
	// Removed means the task was deleted from the collection.
	Removed Outcome = "removed"
)

// NextID returns the next id to assign: one more than the highest id in
// the collection, or 1 for an empty collection. Ids are never reused.
func NextID(tasks []Task) int {
	max := 0
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// Add appends a new not-done task and returns the grown collection and
// the assigned id. due must already be a validated YYYY-MM-DD string or
// empty; validation belongs to the input boundary.
func Add(tasks []Task, title, due, tag string, now time.Time) ([]Task, int) {
	id := NextID(tasks)
	tasks = append(tasks, Task{
		ID:        id,
		Title:     title,
		CreatedAt: now.Truncate(time.Second),
		Due:       due,
		Tag:       tag,
	})
	return tasks, id
}

// Complete marks the task with the given id done, recording done_at.
// Completing a done task is an idempotent no-op reported as AlreadyDone.
func Complete(tasks []Task, id int, now time.Time) Outcome {
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if tasks[i].Done {
			return AlreadyDone
		}
		doneAt := now.Truncate(time.Second)
		tasks[i].Done = true
		tasks[i].DoneAt = &doneAt
		return Completed
	}
	return NotFound
}

// Remove deletes the task with the given id. Confirmation is the
// caller's concern; once invoked the removal is unconditional.
func Remove(tasks []Task, id int) ([]Task, Outcome) {
	for i := range tasks {
		if tasks[i].ID == id {
			return append(tasks[:i], tasks[i+1:]...), Removed
		}
	}
	return tasks, NotFound
}

// Get returns the task with the given id, or nil if none exists.
func Get(tasks []Task, id int) *Task {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}
