package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/taskli/taskli/internal/task"
)

const (
	doneMark    = "✔"
	overdueMark = "!"
	emptyCell   = "-"
	columnGap   = "  "
)

var tableHeader = []string{"id", "done", "due", "tag", "title"}

// formatRow renders one task as table cells.
func formatRow(t task.Task, today time.Time) []string {
	done := ""
	if t.Done {
		done = doneMark
	}
	due := t.Due
	if due == "" {
		due = emptyCell
	}
	if task.IsOverdue(t, today) {
		due = due + " " + overdueMark
	}
	tag := t.Tag
	if tag == "" {
		tag = emptyCell
	}
	return []string{fmt.Sprintf("%d", t.ID), done, due, tag, t.Title}
}

// renderTable writes the tasks as a padded table: a header row, a
// dashed separator sized per column, then one row per task. Column
// widths are measured in display cells so wide characters line up.
func renderTable(w io.Writer, tasks []task.Task, today time.Time) {
	rows := make([][]string, 0, len(tasks)+1)
	rows = append(rows, tableHeader)
	for _, t := range tasks {
		rows = append(rows, formatRow(t, today))
	}

	widths := make([]int, len(tableHeader))
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	for idx, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = pad(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, columnGap), " "))
		if idx == 0 {
			dashes := make([]string, len(widths))
			for i, width := range widths {
				dashes[i] = strings.Repeat("-", width)
			}
			fmt.Fprintln(w, strings.Join(dashes, columnGap))
		}
	}
}

func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// confirm asks a y/n question and reports whether the answer was
// affirmative. Only "y" and "yes" (any case) count as yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (y/n): ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
