package task

import (
	"sort"
	"strings"
	"time"
)

// FilterOptions selects a subset of the collection. Options compose:
// Tag restricts by exact tag match, OnlyDone/IncludeDone pick the
// completion mode (OnlyDone wins over IncludeDone; the default keeps
// only not-done tasks), OverdueOnly further restricts to overdue tasks.
type FilterOptions struct {
	Tag         string
	IncludeDone bool
	OnlyDone    bool
	OverdueOnly bool
}

// Filter applies opts to the collection and returns the matches sorted
// ascending by id. The input slice is not modified.
func Filter(tasks []Task, opts FilterOptions, today time.Time) []Task {
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if opts.Tag != "" && t.Tag != opts.Tag {
			continue
		}
		switch {
		case opts.OnlyDone:
			if !t.Done {
				continue
			}
		case opts.IncludeDone:
			// keep all
		default:
			if t.Done {
				continue
			}
		}
		if opts.OverdueOnly && !IsOverdue(t, today) {
			continue
		}
		result = append(result, t)
	}
	sortByID(result)
	return result
}

// Search returns tasks whose title contains keyword, case-insensitively,
// sorted ascending by id. A keyword that matches nothing yields an
// empty result, not an error.
func Search(tasks []Task, keyword string) []Task {
	needle := strings.ToLower(keyword)
	result := make([]Task, 0)
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			result = append(result, t)
		}
	}
	sortByID(result)
	return result
}

// DueToday returns the not-done tasks whose due date equals today's
// calendar date, sorted ascending by id.
func DueToday(tasks []Task, today time.Time) []Task {
	result := make([]Task, 0)
	for _, t := range tasks {
		if DueOn(t, today) {
			result = append(result, t)
		}
	}
	sortByID(result)
	return result
}

func sortByID(tasks []Task) {
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
}
