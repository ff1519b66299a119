// Package parser turns test spec documents into validated domain.TestSpec
// values. Parsing is three stages: JSON Schema validation of the raw
// document, decoding with the explicit "do" discriminant selecting the
// action variant, and the region/containment validation on the result.
package parser

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"flintmc/internal/domain"
)

//go:embed schema.json
var schemaJSON string

var specSchema = jsonschema.MustCompileString("spec.schema.json", schemaJSON)

type rawSpec struct {
	FlintVersion string     `json:"flintVersion"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Tags         []string   `json:"tags"`
	Dependencies []string   `json:"dependencies"`
	Setup        *rawSetup  `json:"setup"`
	Breakpoints  []int      `json:"breakpoints"`
	Timeline     []rawEntry `json:"timeline"`
}

type rawSetup struct {
	Cleanup struct {
		Region domain.Region `json:"region"`
	} `json:"cleanup"`
}

type rawEntry struct {
	At json.RawMessage `json:"at"`
	Do string          `json:"do"`

	Pos    *domain.Vec3   `json:"pos"`
	Block  string         `json:"block"`
	Blocks []rawPlacement `json:"blocks"`
	Region *domain.Region `json:"region"`
	With   string         `json:"with"`
	Checks []rawCheck     `json:"checks"`
	State  string         `json:"state"`
	Values []string       `json:"values"`
}

type rawPlacement struct {
	Pos   domain.Vec3 `json:"pos"`
	Block string      `json:"block"`
}

type rawCheck struct {
	Pos domain.Vec3 `json:"pos"`
	Is  string      `json:"is"`
}

// ParseFile reads, parses and validates one spec document.
func ParseFile(path string) (*domain.TestSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// Parse decodes and validates one spec document.
func Parse(data []byte) (*domain.TestSpec, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse spec: %w", err)
	}
	if err := specSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("spec does not match schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var raw rawSpec
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse spec: %w", err)
	}

	spec := &domain.TestSpec{
		FlintVersion: raw.FlintVersion,
		Name:         raw.Name,
		Description:  raw.Description,
		Tags:         raw.Tags,
		Dependencies: raw.Dependencies,
		Breakpoints:  raw.Breakpoints,
	}
	if raw.Setup != nil {
		spec.Setup = &domain.Setup{Cleanup: domain.Cleanup{Region: raw.Setup.Cleanup.Region}}
	}

	for i, e := range raw.Timeline {
		at, err := parseTicks(e.At)
		if err != nil {
			return nil, fmt.Errorf("timeline[%d]: %w", i, err)
		}
		action, err := parseAction(&e, len(at))
		if err != nil {
			return nil, fmt.Errorf("timeline[%d] (%s): %w", i, e.Do, err)
		}
		spec.Timeline = append(spec.Timeline, domain.TimelineEntry{At: at, Action: action})
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// parseTicks normalizes "at" to a tick list: a bare integer becomes a
// single-element list.
func parseTicks(raw json.RawMessage) ([]int, error) {
	var single int
	if err := json.Unmarshal(raw, &single); err == nil {
		return []int{single}, nil
	}
	var list []int
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("'at' must be a tick or a list of ticks")
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("'at' tick list must not be empty")
	}
	return list, nil
}

// parseAction selects the variant named by "do" and checks that variant's
// required fields, so a malformed entry fails with a targeted error.
func parseAction(e *rawEntry, tickCount int) (domain.Action, error) {
	switch e.Do {
	case "place":
		if e.Pos == nil {
			return nil, fmt.Errorf("missing 'pos'")
		}
		if e.Block == "" {
			return nil, fmt.Errorf("missing 'block'")
		}
		return domain.Place{Pos: *e.Pos, Block: e.Block}, nil

	case "placeEach":
		if len(e.Blocks) == 0 {
			return nil, fmt.Errorf("missing 'blocks'")
		}
		a := domain.PlaceEach{Blocks: make([]domain.Placement, 0, len(e.Blocks))}
		for _, b := range e.Blocks {
			a.Blocks = append(a.Blocks, domain.Placement{Pos: b.Pos, Block: b.Block})
		}
		return a, nil

	case "fill":
		if e.Region == nil {
			return nil, fmt.Errorf("missing 'region'")
		}
		if e.With == "" {
			return nil, fmt.Errorf("missing 'with'")
		}
		return domain.Fill{Region: *e.Region, With: e.With}, nil

	case "remove":
		if e.Pos == nil {
			return nil, fmt.Errorf("missing 'pos'")
		}
		return domain.Remove{Pos: *e.Pos}, nil

	case "assert":
		if len(e.Checks) == 0 {
			return nil, fmt.Errorf("missing 'checks'")
		}
		a := domain.Assert{Checks: make([]domain.Check, 0, len(e.Checks))}
		for _, c := range e.Checks {
			a.Checks = append(a.Checks, domain.Check{Pos: c.Pos, Is: c.Is})
		}
		return a, nil

	case "assertState":
		if e.Pos == nil {
			return nil, fmt.Errorf("missing 'pos'")
		}
		if e.State == "" {
			return nil, fmt.Errorf("missing 'state'")
		}
		if len(e.Values) == 0 {
			return nil, fmt.Errorf("missing 'values'")
		}
		if len(e.Values) < tickCount {
			return nil, fmt.Errorf("%d ticks but only %d values", tickCount, len(e.Values))
		}
		return domain.AssertState{Pos: *e.Pos, State: e.State, Values: e.Values}, nil

	default:
		return nil, fmt.Errorf("unknown action %q", e.Do)
	}
}
