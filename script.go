package pointermask

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a pointer script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// pointerScript is the top-level JSON structure for a script.
type pointerScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences scripted pointer input across frames for
// deterministic, automated testing of an engine. Supported actions:
//
//	{"action": "move", "x": 10, "y": 20}  — record a pointer sample
//	{"action": "frame"}                   — let one frame elapse
//	{"action": "wait", "frames": 3}       — let several frames elapse
//
// Consecutive moves without an intervening frame land in the same frame and
// therefore coalesce, exactly like real input bursts.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON pointer script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script pointerScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("pointermask: parse pointer script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("pointermask: parse pointer script: no steps")
	}
	for _, st := range script.Steps {
		switch st.Action {
		case "move", "frame", "wait":
		default:
			return nil, fmt.Errorf("pointermask: parse pointer script: unknown action %q", st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the script by one frame: it records every move up to the
// next frame boundary, then runs e.Update once.
func (r *ScriptRunner) Step(e *Engine) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
	} else {
		for r.cursor < len(r.steps) {
			st := r.steps[r.cursor]
			r.cursor++
			if st.Action == "move" {
				e.PointerMoved(st.X, st.Y)
				continue
			}
			if st.Action == "wait" && st.Frames > 1 {
				r.waitCount = st.Frames - 1 // this frame counts as one
			}
			break
		}
	}
	e.Update()
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

// Run steps the script to completion.
func (r *ScriptRunner) Run(e *Engine) {
	for !r.done {
		r.Step(e)
	}
}
