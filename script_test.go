package pointermask

import "testing"

func TestLoadScriptRejectsBadInput(t *testing.T) {
	if _, err := LoadScript([]byte(`not json`)); err == nil {
		t.Error("malformed JSON accepted")
	}
	if _, err := LoadScript([]byte(`{"steps":[]}`)); err == nil {
		t.Error("empty script accepted")
	}
	if _, err := LoadScript([]byte(`{"steps":[{"action":"teleport","x":1,"y":2}]}`)); err == nil {
		t.Error("unknown action accepted")
	}
}

func TestScriptDrivesEngine(t *testing.T) {
	eng, el := newTestElement(t, leftHalfOpaque())

	r, err := LoadScript([]byte(`{"steps":[
		{"action":"move","x":25,"y":50},
		{"action":"frame"},
		{"action":"move","x":75,"y":50},
		{"action":"frame"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	r.Run(eng)

	if !r.Done() {
		t.Error("Done = false after Run")
	}
	got := eventTypes(el.events)
	want := []EventType{EventMaskEnter, EventMaskLeave}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestScriptMovesWithoutFrameCoalesce(t *testing.T) {
	eng, el := newTestElement(t, leftHalfOpaque())
	passes := el.boxCalls

	r, err := LoadScript([]byte(`{"steps":[
		{"action":"move","x":75,"y":50},
		{"action":"move","x":90,"y":50},
		{"action":"move","x":25,"y":50},
		{"action":"frame"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	r.Run(eng)

	if got := el.boxCalls - passes; got != 1 {
		t.Errorf("hit-test passes = %d for a same-frame move burst, want 1", got)
	}
	if len(el.events) != 1 || el.events[0].BufferX != 25 {
		t.Errorf("events = %v, want one enter from the last move", el.events)
	}
}

func TestScriptWaitElapsesFrames(t *testing.T) {
	eng := NewEngine(Config{Loader: &syncLoader{}})

	r, err := LoadScript([]byte(`{"steps":[{"action":"wait","frames":3}]}`))
	if err != nil {
		t.Fatal(err)
	}

	steps := 0
	for !r.Done() {
		r.Step(eng)
		steps++
		if steps > 10 {
			t.Fatal("script did not finish")
		}
	}
	if steps != 3 {
		t.Errorf("wait of 3 frames took %d steps", steps)
	}
}

func TestScriptStepAfterDoneIsNoop(t *testing.T) {
	eng, el := newTestElement(t, leftHalfOpaque())

	r, err := LoadScript([]byte(`{"steps":[{"action":"move","x":25,"y":50},{"action":"frame"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	r.Run(eng)
	events := len(el.events)

	r.Step(eng)
	r.Step(eng)

	if len(el.events) != events {
		t.Error("stepping a finished script produced new events")
	}
}
