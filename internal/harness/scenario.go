// Package harness runs edit-event scenarios through the gate engine.
//
// A scenario is a YAML file declaring one edit (tool, path, content or
// fragments) plus the expected decision and rule IDs. Tests load scenarios
// from testdata, run them through the engine, and optionally compare the
// rendered report against a golden file.
package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one gate conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files use it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Tool is the edit shape: Write, Edit, or MultiEdit.
	Tool string `yaml:"tool"`

	// Path is the target file of the edit.
	Path string `yaml:"path"`

	// Content is the payload text for Write and Edit shapes.
	Content string `yaml:"content,omitempty"`

	// Edits holds the ordered fragments for the MultiEdit shape.
	Edits []string `yaml:"edits,omitempty"`

	// WantDecision is the expected verdict: "allow" or "block".
	WantDecision string `yaml:"want_decision"`

	// WantRules lists the rule IDs expected among the diagnostics.
	// Subset match: extra diagnostics from the same rules are fine.
	WantRules []string `yaml:"want_rules,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected to catch typos like "want_decison".
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml scenario in a directory, sorted by file
// name for deterministic test order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan scenario dir: %w", err)
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and consistent.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Tool == "" {
		return fmt.Errorf("tool is required")
	}
	if s.Path == "" {
		return fmt.Errorf("path is required")
	}
	if s.WantDecision != "allow" && s.WantDecision != "block" {
		return fmt.Errorf("want_decision must be \"allow\" or \"block\", got %q", s.WantDecision)
	}
	if s.Tool == "MultiEdit" && len(s.Edits) == 0 {
		return fmt.Errorf("MultiEdit scenario needs a non-empty edits list")
	}
	return nil
}

// Payload builds the hook JSON envelope the host would deliver for this
// scenario's edit.
func (s *Scenario) Payload() ([]byte, error) {
	input := map[string]any{"file_path": s.Path}

	switch s.Tool {
	case "Write":
		input["content"] = s.Content
	case "Edit":
		input["new_string"] = s.Content
	case "MultiEdit":
		edits := make([]map[string]any, 0, len(s.Edits))
		for _, fragment := range s.Edits {
			edits = append(edits, map[string]any{"new_string": fragment})
		}
		input["edits"] = edits
	}

	return json.Marshal(map[string]any{
		"tool_name":  s.Tool,
		"tool_input": input,
	})
}
