// Package event normalizes host edit descriptions into a uniform
// (path, text) pair.
//
// The host delivers one JSON payload per invocation describing a proposed
// write. Three tool shapes are understood: Write carries the full file
// content, Edit carries a single replacement fragment, and MultiEdit carries
// an ordered list of fragments. MultiEdit fragments are joined with newlines.
// That is a lossy approximation of the resulting file: fragments need not be
// contiguous, and a faithful reconstruction would require the pre-edit
// content, which the gate never sees.
//
// The package is fail-open by contract: malformed payloads, unknown tools,
// and missing paths all degrade to the inert empty event, never to an error.
package event

import (
	"encoding/json"
	"io"
	"strings"
)

// Tool names the edit operation shape in the host payload.
type Tool string

const (
	// ToolWrite carries the complete file content.
	ToolWrite Tool = "Write"

	// ToolEdit carries a single replacement fragment.
	ToolEdit Tool = "Edit"

	// ToolMultiEdit carries an ordered list of replacement fragments.
	ToolMultiEdit Tool = "MultiEdit"
)

// EditEvent is one normalized edit description. Constructed fresh per
// invocation and never persisted.
type EditEvent struct {
	// Tool is the operation shape the event came from.
	Tool Tool

	// Path is the target file of the edit.
	Path string

	// Text is the resulting text to inspect. For MultiEdit this is the
	// newline-joined fragment concatenation, not the true file content.
	Text string
}

// Inert reports whether the event carries nothing to check.
func (e EditEvent) Inert() bool {
	return e.Path == "" || e.Text == ""
}

// payload mirrors the host hook JSON envelope.
type payload struct {
	ToolName  string    `json:"tool_name"`
	ToolInput toolInput `json:"tool_input"`
}

// toolInput is the union of the three tool shapes' fields.
type toolInput struct {
	FilePath  string `json:"file_path"`
	Content   string `json:"content"`
	NewString string `json:"new_string"`
	Edits     []struct {
		NewString string `json:"new_string"`
	} `json:"edits"`
}

// Parse reads one payload and normalizes it into an EditEvent.
//
// Never fails: read errors, invalid JSON, unknown tool names, and absent
// paths all yield the inert empty event. A convention gate must not block
// on malformed transport data.
func Parse(r io.Reader) EditEvent {
	data, err := io.ReadAll(r)
	if err != nil {
		return EditEvent{}
	}
	return ParseBytes(data)
}

// ParseBytes is Parse over an in-memory payload.
func ParseBytes(data []byte) EditEvent {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return EditEvent{}
	}
	return normalize(p.ToolName, p.ToolInput)
}

// normalize maps a tool name and its input to the uniform (path, text) pair.
// Unknown tool names produce an event with empty text, which is inert.
func normalize(toolName string, in toolInput) EditEvent {
	ev := EditEvent{Tool: Tool(toolName), Path: in.FilePath}

	switch Tool(toolName) {
	case ToolWrite:
		ev.Text = in.Content

	case ToolEdit:
		ev.Text = in.NewString

	case ToolMultiEdit:
		fragments := make([]string, 0, len(in.Edits))
		for _, e := range in.Edits {
			fragments = append(fragments, e.NewString)
		}
		ev.Text = strings.Join(fragments, "\n")
	}

	return ev
}
