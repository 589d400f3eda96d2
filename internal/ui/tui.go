// Package ui provides an optional terminal interface for browsing tasks.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskli/taskli/internal/task"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle   = lipgloss.NewStyle().Faint(true)
)

// Run starts the read-only task browser. The browser never mutates the
// store; it reloads the file on demand so external changes show up.
func Run(ctx context.Context, store *task.Store) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newModel(store)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type model struct {
	store    *task.Store
	today    time.Time
	tasks    []task.Task
	visible  []task.Task
	cursor   int
	showDone bool
	loadErr  error
}

func newModel(store *task.Store) *model {
	m := &model{
		store: store,
		today: task.Today(time.Now()),
	}
	m.refresh()
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "j", "down":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "a":
			m.showDone = !m.showDone
			m.applyFilter()
		case "r", "f5":
			m.refresh()
		}
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("taskli") + "\n\n")

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		b.WriteString(footerStyle.Render("r refresh · q quit") + "\n")
		return b.String()
	}

	if len(m.visible) == 0 {
		b.WriteString("No matching tasks.\n\n")
	} else {
		b.WriteString(headerStyle.Render("  id  due         tag         title") + "\n")
		for i, t := range m.visible {
			b.WriteString(m.renderRow(i, t) + "\n")
		}
		b.WriteString("\n")
	}

	mode := "open tasks"
	if m.showDone {
		mode = "all tasks"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("%s · j/k move · a toggle done · r refresh · q quit", mode)) + "\n")
	return b.String()
}

func (m *model) renderRow(i int, t task.Task) string {
	mark := " "
	if t.Done {
		mark = "✔"
	}
	due := t.Due
	if due == "" {
		due = "-"
	}
	tag := t.Tag
	if tag == "" {
		tag = "-"
	}
	line := fmt.Sprintf("%s %3d  %-11s %-11s %s", mark, t.ID, due, tag, t.Title)

	switch {
	case i == m.cursor:
		return selectedStyle.Render(line)
	case t.Done:
		return doneStyle.Render(line)
	case task.IsOverdue(t, m.today):
		return overdueStyle.Render(line)
	}
	return line
}

func (m *model) refresh() {
	tasks, err := m.store.Load()
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		m.visible = nil
		return
	}
	m.loadErr = nil
	m.tasks = tasks
	m.applyFilter()
}

func (m *model) applyFilter() {
	m.visible = task.Filter(m.tasks, task.FilterOptions{IncludeDone: m.showDone}, m.today)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// IsTTY reports whether w is attached to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
