// Package config loads the immutable rule tables for dotnetgate.
//
// The tables live in an embedded CUE document (tables.cue) and are decoded
// exactly once at process start. Nothing mutates them afterwards; concurrent
// invocations share them safely without locking.
package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue/cuecontext"
)

//go:embed tables.cue
var tablesCUE []byte

// LayerPatterns maps one architecture layer to the path-segment spellings
// that identify it. Order in the Layers slice is detection order.
type LayerPatterns struct {
	Name     string   `json:"name"`
	Patterns []string `json:"patterns"`
}

// Marker is one required builder call for endpoint files. The marker is
// satisfied when any spelling in Any appears in the file.
type Marker struct {
	ID      string   `json:"id"`
	Any     []string `json:"any"`
	Message string   `json:"message"`
}

// Tables holds every fixed rule table. Treat as read-only after Load.
type Tables struct {
	// Layers lists the architecture layers in detection order.
	Layers []LayerPatterns `json:"layers"`

	// DomainForbidden are namespace markers the Domain layer must not
	// reference (substring match).
	DomainForbidden []string `json:"domainForbidden"`

	// ApplicationForbidden are namespace segments the Application layer
	// must not reference (segment-exact match).
	ApplicationForbidden []string `json:"applicationForbidden"`

	// APIWarn are namespace markers that draw a warning in the Api layer
	// (substring match).
	APIWarn []string `json:"apiWarn"`

	// SensitiveTerms are names that must never appear in log calls.
	SensitiveTerms []string `json:"sensitiveTerms"`

	// RequiredMarkers are the builder calls every endpoint file needs.
	RequiredMarkers []Marker `json:"requiredMarkers"`

	// ClauseTerminators end a WHERE clause during the SQL literal scan.
	ClauseTerminators []string `json:"clauseTerminators"`

	// ParamExclusions are built-in SQL names excluded from parameter
	// documentation checks.
	ParamExclusions []string `json:"paramExclusions"`
}

// Load compiles the embedded CUE document into Tables.
//
// A failure here is a build defect (the document ships inside the binary),
// never a property of the edit under inspection, so callers treat it as a
// startup error rather than a gate decision.
func Load() (*Tables, error) {
	ctx := cuecontext.New()

	v := ctx.CompileBytes(tablesCUE)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile rule tables: %w", err)
	}

	var t Tables
	if err := v.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode rule tables: %w", err)
	}

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("validate rule tables: %w", err)
	}

	return &t, nil
}

// MustLoad is Load for contexts where the tables are known to be valid,
// such as tests. Panics on error.
func MustLoad() *Tables {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

// validate rejects tables that would silently disable whole rule groups.
func (t *Tables) validate() error {
	if len(t.Layers) == 0 {
		return fmt.Errorf("layers table is empty")
	}
	for _, l := range t.Layers {
		if l.Name == "" || len(l.Patterns) == 0 {
			return fmt.Errorf("layer entry %q has no patterns", l.Name)
		}
	}
	if len(t.DomainForbidden) == 0 {
		return fmt.Errorf("domainForbidden table is empty")
	}
	if len(t.SensitiveTerms) == 0 {
		return fmt.Errorf("sensitiveTerms table is empty")
	}
	if len(t.RequiredMarkers) == 0 {
		return fmt.Errorf("requiredMarkers table is empty")
	}
	for _, m := range t.RequiredMarkers {
		if m.ID == "" || len(m.Any) == 0 || m.Message == "" {
			return fmt.Errorf("required marker %q is incomplete", m.ID)
		}
	}
	if len(t.ClauseTerminators) == 0 {
		return fmt.Errorf("clauseTerminators table is empty")
	}
	return nil
}
