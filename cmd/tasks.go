package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taskli/taskli/internal/config"
	"github.com/taskli/taskli/internal/task"
)

// addCommand creates a new task and prints its id.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskli add", flag.ContinueOnError)
	var due string
	fs.Func("due", "Due date (YYYY-MM-DD)", func(v string) error {
		if err := validateDate(v); err != nil {
			return err
		}
		due = v
		return nil
	})
	tag := fs.String("tag", "", "Tag for grouping tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// flag stops parsing at the first positional argument, so a flag
	// after the title would silently become part of it
	for _, arg := range fs.Args() {
		if strings.HasPrefix(arg, "-") {
			return fmt.Errorf("add: flags must come before the title (saw %q after it)", arg)
		}
	}
	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		return fmt.Errorf("add: a task title is required")
	}

	store, tasks, err := loadTasks(cfg, logger)
	if err != nil {
		return err
	}
	tasks, id := task.Add(tasks, title, due, *tag, time.Now())
	if err := store.Save(tasks); err != nil {
		return err
	}
	logger.Debug("added task", "id", id, "title", title)
	fmt.Println(id)
	return nil
}

// listCommand prints a filtered table of tasks.
func listCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskli list", flag.ContinueOnError)
	all := fs.Bool("all", false, "Include done tasks")
	done := fs.Bool("done", false, "Show only done tasks")
	tag := fs.String("tag", "", "Show only tasks with this tag")
	overdue := fs.Bool("overdue", false, "Show only overdue open tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("list: unexpected arguments: %v", fs.Args())
	}

	_, tasks, err := loadTasks(cfg, logger)
	if err != nil {
		return err
	}

	today := task.Today(time.Now())
	matched := task.Filter(tasks, task.FilterOptions{
		Tag:         *tag,
		IncludeDone: *all,
		OnlyDone:    *done,
		OverdueOnly: *overdue,
	}, today)
	if len(matched) == 0 {
		fmt.Println("No matching tasks.")
		return nil
	}
	renderTable(os.Stdout, matched, today)
	return nil
}

// todayCommand prints the open tasks due today.
func todayCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("today: unexpected arguments: %v", args)
	}

	_, tasks, err := loadTasks(cfg, logger)
	if err != nil {
		return err
	}

	today := task.Today(time.Now())
	matched := task.DueToday(tasks, today)
	if len(matched) == 0 {
		fmt.Println("No open tasks due today.")
		return nil
	}
	renderTable(os.Stdout, matched, today)
	return nil
}

// doneCommand marks a task as done.
func doneCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	id, err := parseIDArg("done", args)
	if err != nil {
		return err
	}

	store, tasks, err := loadTasks(cfg, logger)
	if err != nil {
		return err
	}

	switch task.Complete(tasks, id, time.Now()) {
	case task.NotFound:
		fmt.Printf("Task %d not found.\n", id)
	case task.AlreadyDone:
		fmt.Printf("Task %d is already done.\n", id)
	case task.Completed:
		if err := store.Save(tasks); err != nil {
			return err
		}
		fmt.Printf("Task %d marked as done.\n", id)
	}
	return nil
}

// searchCommand prints tasks whose title matches a keyword.
func searchCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("search: exactly one keyword is required")
	}

	_, tasks, err := loadTasks(cfg, logger)
	if err != nil {
		return err
	}

	matched := task.Search(tasks, args[0])
	if len(matched) == 0 {
		fmt.Println("No tasks matched.")
		return nil
	}
	renderTable(os.Stdout, matched, task.Today(time.Now()))
	return nil
}

// deleteCommand removes a task after an interactive confirmation.
// The prompt reads from in and writes to out so tests can drive it.
func deleteCommand(cfg *config.Config, logger *log.Logger, args []string, in io.Reader, out io.Writer) error {
	id, err := parseIDArg("delete", args)
	if err != nil {
		return err
	}

	store, tasks, err := loadTasks(cfg, logger)
	if err != nil {
		return err
	}

	t := task.Get(tasks, id)
	if t == nil {
		fmt.Fprintf(out, "Task %d not found.\n", id)
		return nil
	}
	if !confirm(in, out, fmt.Sprintf("Delete task %q?", t.Title)) {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	tasks, _ = task.Remove(tasks, id)
	if err := store.Save(tasks); err != nil {
		return err
	}
	logger.Debug("deleted task", "id", id)
	fmt.Fprintf(out, "Deleted task %d.\n", id)
	return nil
}

// parseIDArg extracts the single positional id argument of a command.
func parseIDArg(command string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: exactly one task id is required", command)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s: %q is not a valid task id", command, args[0])
	}
	return id, nil
}

// validateDate rejects anything that is not a strict YYYY-MM-DD
// calendar date. Validation happens here, at the input boundary, so
// the core never sees a malformed due date.
func validateDate(v string) error {
	if _, err := time.Parse(task.DueLayout, v); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD form: %q", v)
	}
	return nil
}
