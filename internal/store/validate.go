package store

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/kanban-go/internal/board"
)

//go:embed snapshot.schema.json
var snapshotSchema string

const schemaURL = "https://github.com/nibzard/kanban-go/snapshot.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, strings.NewReader(snapshotSchema)); err != nil {
			schemaErr = fmt.Errorf("add snapshot schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidationError is one schema violation, located by a path such as
// "[0].tasks[2].title".
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ValidationResult lists every problem found in a snapshot.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

func (r *ValidationResult) fail(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// Validate checks raw snapshot bytes against the snapshot schema.
func Validate(data []byte) *ValidationResult {
	result := &ValidationResult{Valid: true}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		result.fail(&ValidationError{Err: fmt.Errorf("parse snapshot: %w", err)})
		return result
	}
	schema, err := loadSchema()
	if err != nil {
		result.fail(err)
		return result
	}

	err = schema.Validate(doc)
	var schemaErr *jsonschema.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &schemaErr):
		for _, leaf := range leafCauses(schemaErr) {
			result.fail(&ValidationError{
				Path: jsonPointerToPath(leaf.InstanceLocation),
				Err:  errors.New(leaf.Message),
			})
		}
	default:
		result.fail(err)
	}
	if result.Valid {
		checkUniqueIDs(data, result)
	}
	return result
}

// checkUniqueIDs rejects snapshots that reuse an identifier. Column and task
// IDs share one namespace because a move target may name either; tag IDs
// need only be unique within their task.
func checkUniqueIDs(data []byte, result *ValidationResult) {
	var cols []board.Column
	if err := json.Unmarshal(data, &cols); err != nil {
		result.fail(&ValidationError{Err: fmt.Errorf("parse snapshot: %w", err)})
		return
	}

	owner := map[string]string{}
	claim := func(id, path string) {
		if prev, ok := owner[id]; ok {
			result.fail(&ValidationError{Path: path, Err: fmt.Errorf("duplicate id %q, first used at %s", id, prev)})
			return
		}
		owner[id] = path
	}
	for i, col := range cols {
		claim(col.ID, fmt.Sprintf("[%d].id", i))
	}
	for i, col := range cols {
		for j, task := range col.Tasks {
			claim(task.ID, fmt.Sprintf("[%d].tasks[%d].id", i, j))

			tags := map[string]bool{}
			for k, tag := range task.Tags {
				if tags[tag.ID] {
					result.fail(&ValidationError{
						Path: fmt.Sprintf("[%d].tasks[%d].tags[%d].id", i, j, k),
						Err:  fmt.Errorf("duplicate tag id %q", tag.ID),
					})
				}
				tags[tag.ID] = true
			}
		}
	}
}

// leafCauses flattens a schema error tree to the errors that have no causes.
func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}

// jsonPointerToPath turns "/0/tasks/1/title" into "[0].tasks[1].title".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
