// Package script replays a list of task actions from a YAML or JSON file
// through a session, the same way the interactive form would.
package script

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/Makepad-fr/tada/script.schema.json"

// Op names an action.
type Op string

const (
	OpAdd      Op = "add"
	OpEdit     Op = "edit"
	OpDelete   Op = "delete"
	OpComplete Op = "complete"
	OpSort     Op = "sort"
	OpFilter   Op = "filter"
)

// Action is one step of a script. Which fields matter depends on Op.
type Action struct {
	Op          Op     `json:"op"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Reminder    bool   `json:"reminder,omitempty"`
	Due         string `json:"due,omitempty"`
	// Index is required by edit. A delete without one has no selection.
	Index *int   `json:"index,omitempty"`
	By    string `json:"by,omitempty"`
}

// Script is a named sequence of actions.
type Script struct {
	Name    string   `json:"name,omitempty"`
	Actions []Action `json:"actions"`
}

// SchemaError reports where a document broke the script schema.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// schema compiles the embedded script schema once.
var schema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
})

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML (and therefore JSON), validates it against the script
// schema and returns the typed script.
func Parse(data []byte) (*Script, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if raw == nil {
		return nil, &SchemaError{Message: "script is empty"}
	}

	// normalize YAML scalars to the JSON value model the validator expects
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize script: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("normalize script: %w", err)
	}

	sch, err := schema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	var s Script
	if err := json.Unmarshal(normalized, &s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

// schemaError reduces a validation tree to its first leaf.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SchemaError{Message: err.Error()}
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	return &SchemaError{
		Path:    pointerToPath(leaf.InstanceLocation),
		Message: leaf.Message,
	}
}

// pointerToPath turns "/actions/2/op" into "actions[2].op".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
