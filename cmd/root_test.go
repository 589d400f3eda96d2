// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taskli/taskli/internal/config"
	"github.com/taskli/taskli/internal/logging"
	"github.com/taskli/taskli/internal/task"
)

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("changing directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restoring directory: %v", err)
		}
	})
}

// setupStore isolates the environment and points the store at a file
// in a fresh temp directory. Returns the store path.
func setupStore(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "tasks.json")
	t.Setenv("TASKLI_FILE", path)
	return path
}

func mustLoad(t *testing.T, path string) []task.Task {
	t.Helper()
	tasks, err := task.NewStore(path).Load()
	if err != nil {
		t.Fatalf("reloading store: %v", err)
	}
	return tasks
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("shows help with --help flag", func(t *testing.T) {
		setupStore(t)
		if err := Run(ctx, []string{"--help"}); err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
	})

	t.Run("shows version with -v flag", func(t *testing.T) {
		setupStore(t)
		if err := Run(ctx, []string{"-v"}); err != nil {
			t.Errorf("expected no error with -v, got %v", err)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		setupStore(t)
		err := Run(ctx, []string{"frobnicate"})
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("list on empty store succeeds", func(t *testing.T) {
		setupStore(t)
		if err := Run(ctx, []string{"list"}); err != nil {
			t.Errorf("list on empty store: %v", err)
		}
	})

	t.Run("add assigns id 1 on empty store", func(t *testing.T) {
		path := setupStore(t)
		if err := Run(ctx, []string{"add", "-due", "2024-01-01", "-tag", "errand", "Buy", "milk"}); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		tasks := mustLoad(t, path)
		if len(tasks) != 1 {
			t.Fatalf("tasks: got %d, want 1", len(tasks))
		}
		got := tasks[0]
		if got.ID != 1 || got.Title != "Buy milk" || got.Due != "2024-01-01" || got.Tag != "errand" {
			t.Errorf("task: got %+v", got)
		}
		if got.Done || got.DoneAt != nil {
			t.Errorf("new task marked done: %+v", got)
		}
	})

	t.Run("add rejects invalid due date", func(t *testing.T) {
		path := setupStore(t)
		for _, due := range []string{"2024-13-01", "2024-02-30", "01-01-2024", "soon"} {
			if err := Run(ctx, []string{"add", "-due", due, "x"}); err == nil {
				t.Errorf("add accepted bad date %q", due)
			}
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("store was written despite rejected input")
		}
	})

	t.Run("add rejects flag after title", func(t *testing.T) {
		setupStore(t)
		if err := Run(ctx, []string{"add", "Buy milk", "-due", "2024-01-01"}); err == nil {
			t.Error("add accepted a flag after the title")
		}
	})

	t.Run("done is idempotent", func(t *testing.T) {
		path := setupStore(t)
		if err := Run(ctx, []string{"add", "x"}); err != nil {
			t.Fatal(err)
		}

		if err := Run(ctx, []string{"done", "1"}); err != nil {
			t.Fatalf("first done failed: %v", err)
		}
		first := mustLoad(t, path)
		if !first[0].Done || first[0].DoneAt == nil {
			t.Fatalf("task not done after first call: %+v", first[0])
		}

		if err := Run(ctx, []string{"done", "1"}); err != nil {
			t.Fatalf("second done failed: %v", err)
		}
		second := mustLoad(t, path)
		if !second[0].DoneAt.Equal(*first[0].DoneAt) {
			t.Errorf("done_at changed on repeat call: %v vs %v", second[0].DoneAt, first[0].DoneAt)
		}
	})

	t.Run("done on missing id succeeds without mutation", func(t *testing.T) {
		path := setupStore(t)
		if err := Run(ctx, []string{"add", "x"}); err != nil {
			t.Fatal(err)
		}
		if err := Run(ctx, []string{"done", "99"}); err != nil {
			t.Errorf("done on missing id: %v", err)
		}
		if tasks := mustLoad(t, path); tasks[0].Done {
			t.Error("unrelated task was mutated")
		}
	})

	t.Run("corrupt store is a fatal error", func(t *testing.T) {
		path := setupStore(t)
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := Run(ctx, []string{"list"}); err == nil {
			t.Error("list succeeded on corrupt store")
		}
	})
}

func testConfig(path string) *config.Config {
	return &config.Config{DataFile: path, LogLevel: "error"}
}

func TestDeleteCommand(t *testing.T) {
	logger := logging.New(io.Discard, logging.Options{Level: "error"})

	seed := func(t *testing.T) (string, *config.Config) {
		t.Helper()
		path := filepath.Join(t.TempDir(), "tasks.json")
		cfg := testConfig(path)
		if err := addCommand(cfg, logger, []string{"Buy milk"}); err != nil {
			t.Fatal(err)
		}
		return path, cfg
	}

	t.Run("confirmed delete removes the task", func(t *testing.T) {
		path, cfg := seed(t)
		var out strings.Builder
		if err := deleteCommand(cfg, logger, []string{"1"}, strings.NewReader("y\n"), &out); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if !strings.Contains(out.String(), "Buy milk") {
			t.Errorf("prompt does not reference the title: %q", out.String())
		}
		if tasks := mustLoad(t, path); len(tasks) != 0 {
			t.Errorf("tasks remaining: got %d, want 0", len(tasks))
		}
	})

	t.Run("declined delete leaves the store unchanged", func(t *testing.T) {
		path, cfg := seed(t)
		var out strings.Builder
		if err := deleteCommand(cfg, logger, []string{"1"}, strings.NewReader("n\n"), &out); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if !strings.Contains(out.String(), "Cancelled") {
			t.Errorf("missing cancel message: %q", out.String())
		}
		if tasks := mustLoad(t, path); len(tasks) != 1 {
			t.Errorf("tasks: got %d, want 1", len(tasks))
		}
	})

	t.Run("missing id reports not found without prompting", func(t *testing.T) {
		path, cfg := seed(t)
		before, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}

		var out strings.Builder
		if err := deleteCommand(cfg, logger, []string{"42"}, strings.NewReader(""), &out); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if !strings.Contains(out.String(), "not found") {
			t.Errorf("missing not-found message: %q", out.String())
		}
		after, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(before) != string(after) {
			t.Error("store file changed on not-found delete")
		}
	})
}

func TestParseIDArg(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantID  int
		wantErr bool
	}{
		{"valid id", []string{"7"}, 7, false},
		{"no args", nil, 0, true},
		{"too many args", []string{"1", "2"}, 0, true},
		{"not a number", []string{"abc"}, 0, true},
		{"zero", []string{"0"}, 0, true},
		{"negative", []string{"-4"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseIDArg("done", tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tt.wantErr)
			}
			if id != tt.wantID {
				t.Errorf("id: got %d, want %d", id, tt.wantID)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	valid := []string{"2024-01-01", "2024-02-29", "1999-12-31"}
	for _, v := range valid {
		if err := validateDate(v); err != nil {
			t.Errorf("validateDate(%q): unexpected error %v", v, err)
		}
	}

	invalid := []string{"2023-02-29", "2024-1-1", "2024/01/01", "2024-00-10", "tomorrow", ""}
	for _, v := range invalid {
		if err := validateDate(v); err == nil {
			t.Errorf("validateDate(%q): expected error", v)
		}
	}
}
