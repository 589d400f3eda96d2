package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Store reads and writes the task file. The path is injected at
// construction so tests can point it at a temporary location; there is
// no package-level default.
type Store struct {
	// Path is the location of the task file.
	Path string
	// SchemaPath, when set, enables JSON Schema validation of the file
	// contents on load in addition to the built-in shape checks.
	SchemaPath string
}

// NewStore returns a Store for the given file path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the task file and returns the full collection.
// A missing or blank file yields an empty collection. Anything that
// does not parse as an array of well-formed task records is an error;
// no partial recovery is attempted.
func (s *Store) Load() ([]Task, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read task file %s: %w", s.Path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("task file %s is not valid JSON: %w", s.Path, err)
	}

	if err := validate(tasks); err != nil {
		return nil, fmt.Errorf("task file %s: %w", s.Path, err)
	}

	if s.SchemaPath != "" {
		if err := validateWithSchema(data, s.SchemaPath); err != nil {
			return nil, fmt.Errorf("task file %s: %w", s.Path, err)
		}
	}

	return tasks, nil
}

// Save serializes the full collection and overwrites the task file.
// Output is indented JSON with HTML escaping disabled so non-ASCII
// titles and tags are stored as-is.
func (s *Store) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write task file %s: %w", s.Path, err)
	}
	return nil
}

// validate rejects collections that decoded but are not shaped like
// task records: ids must be positive and unique, titles non-empty, and
// done_at must be present exactly when done is set.
func validate(tasks []Task) error {
	seen := make(map[int]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID < 1 {
			return fmt.Errorf("tasks[%d]: missing or non-positive id", i)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("tasks[%d]: duplicate id %d", i, t.ID)
		}
		seen[t.ID] = struct{}{}
		if t.Title == "" {
			return fmt.Errorf("tasks[%d]: missing title", i)
		}
		if t.Done != (t.DoneAt != nil) {
			return fmt.Errorf("tasks[%d]: done and done_at disagree", i)
		}
	}
	return nil
}

// validateWithSchema validates the raw file contents against a JSON
// Schema. A missing or broken schema file is an error here rather than
// a warning: the user asked for strict validation by configuring it.
func validateWithSchema(data []byte, schemaPath string) error {
	if abs, err := filepath.Abs(schemaPath); err == nil {
		schemaPath = abs
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	schema, err := compiler.Compile(schemaPath)
	if err != nil {
		return fmt.Errorf("compile schema %s: %w", schemaPath, err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse for schema validation: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
