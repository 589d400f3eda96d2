// Package cmd implements the CLI command structure for taskli.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/taskli/taskli/internal/config"
	"github.com/taskli/taskli/internal/logging"
	"github.com/taskli/taskli/internal/task"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskli CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskli", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.New(os.Stderr, logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
	})

	// Determine the subcommand; bare "taskli" lists open tasks
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	// Execute the subcommand
	switch subcommand {
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "list", "ls":
		return listCommand(cfg, logger, remainingArgs)
	case "today":
		return todayCommand(cfg, logger, remainingArgs)
	case "done":
		return doneCommand(cfg, logger, remainingArgs)
	case "search":
		return searchCommand(cfg, logger, remainingArgs)
	case "delete", "rm":
		return deleteCommand(cfg, logger, remainingArgs, os.Stdin, os.Stdout)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openStore builds the Store from configuration.
func openStore(cfg *config.Config) *task.Store {
	store := task.NewStore(cfg.DataFile)
	store.SchemaPath = cfg.SchemaFile
	return store
}

// loadTasks loads the collection, logging where it came from.
func loadTasks(cfg *config.Config, logger *log.Logger) (*task.Store, []task.Task, error) {
	store := openStore(cfg)
	tasks, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("loaded task file", "path", store.Path, "tasks", len(tasks))
	return store, tasks, nil
}

func versionCommand() error {
	fmt.Printf("taskli version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskli - A personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskli [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <title>      Add a task (prints the new id)")
	fmt.Fprintln(w, "  list             List tasks (default command)")
	fmt.Fprintln(w, "  today            List open tasks due today")
	fmt.Fprintln(w, "  done <id>        Mark a task as done")
	fmt.Fprintln(w, "  search <word>    Search task titles")
	fmt.Fprintln(w, "  delete <id>      Delete a task after confirmation")
	fmt.Fprintln(w, "  tui              Browse tasks interactively")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add' command):")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        Due date (YYYY-MM-DD)")
	fmt.Fprintln(w, "  -tag string")
	fmt.Fprintln(w, "        Tag for grouping tasks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -all     Include done tasks")
	fmt.Fprintln(w, "  -done    Show only done tasks")
	fmt.Fprintln(w, "  -tag string")
	fmt.Fprintln(w, "        Show only tasks with this tag")
	fmt.Fprintln(w, "  -overdue Show only overdue open tasks")
}
