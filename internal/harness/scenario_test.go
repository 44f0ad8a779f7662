package harness

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: sample
description: a sample
tool: Write
path: src/MyApp.Domain/Order.cs
content: "public sealed class Order {}"
want_decision: allow
`)

	s, err := LoadScenario(path)

	require.NoError(t, err)
	assert.Equal(t, "sample", s.Name)
	assert.Equal(t, "Write", s.Tool)
	assert.Equal(t, "allow", s.WantDecision)
}

func TestLoadScenario_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want string
	}{
		{
			"unknown field",
			"name: x\ntool: Write\npath: a.cs\nwant_decison: allow\n",
			"parse scenario YAML",
		},
		{
			"missing name",
			"tool: Write\npath: a.cs\nwant_decision: allow\n",
			"name is required",
		},
		{
			"bad decision",
			"name: x\ntool: Write\npath: a.cs\nwant_decision: maybe\n",
			"want_decision",
		},
		{
			"multiedit without edits",
			"name: x\ntool: MultiEdit\npath: a.cs\nwant_decision: allow\n",
			"edits list",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestScenarioPayload_Shapes(t *testing.T) {
	testCases := []struct {
		name     string
		scenario Scenario
		wantKey  string
	}{
		{"write uses content", Scenario{Tool: "Write", Path: "a.cs", Content: "x"}, "content"},
		{"edit uses new_string", Scenario{Tool: "Edit", Path: "a.cs", Content: "x"}, "new_string"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := tc.scenario.Payload()
			require.NoError(t, err)

			var envelope struct {
				ToolName  string         `json:"tool_name"`
				ToolInput map[string]any `json:"tool_input"`
			}
			require.NoError(t, json.Unmarshal(payload, &envelope))
			assert.Equal(t, tc.scenario.Tool, envelope.ToolName)
			assert.Equal(t, "a.cs", envelope.ToolInput["file_path"])
			assert.Equal(t, "x", envelope.ToolInput[tc.wantKey])
		})
	}
}

func TestScenarioPayload_MultiEdit(t *testing.T) {
	s := Scenario{Tool: "MultiEdit", Path: "a.cs", Edits: []string{"one", "two"}}

	payload, err := s.Payload()
	require.NoError(t, err)

	var envelope struct {
		ToolInput struct {
			Edits []struct {
				NewString string `json:"new_string"`
			} `json:"edits"`
		} `json:"tool_input"`
	}
	require.NoError(t, json.Unmarshal(payload, &envelope))
	require.Len(t, envelope.ToolInput.Edits, 2)
	assert.Equal(t, "one", envelope.ToolInput.Edits[0].NewString)
	assert.Equal(t, "two", envelope.ToolInput.Edits[1].NewString)
}
