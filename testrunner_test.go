package corkboard

import (
	"strings"
	"testing"
)

// runScript steps the runner and consumes injected input frame by frame
// until it is done. Returns the number of frames used.
func runScript(t *testing.T, s *Scene, r *TestRunner) int {
	t.Helper()
	for frames := 1; frames <= 1000; frames++ {
		r.step(s)
		frame(s)
		s.processInjectedInput()
		frame(s)
		if r.Done() {
			return frames
		}
	}
	t.Fatal("script did not finish in 1000 frames")
	return 0
}

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "press", "x": 1, "y": 2, "button": "right"},
		{"action": "move", "x": 3, "y": 4},
		{"action": "release", "x": 3, "y": 4},
		{"action": "wait", "frames": 2},
		{"action": "expect", "node": "card0", "x": 100, "y": 100}
	]}`)
	r, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	if len(r.steps) != 5 {
		t.Errorf("steps = %d, want 5", len(r.steps))
	}
	if r.Done() {
		t.Error("new runner should not be done")
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `{nope`, "parse test script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "fly"}]}`, "unknown action"},
		{"unknown button", `{"steps": [{"action": "press", "button": "thumb"}]}`, "unknown button"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRunnerDragAndExpect(t *testing.T) {
	s, _ := newTestScene(2)
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 110, "fromY": 110, "toX": 310, "toY": 210, "frames": 8},
		{"action": "expect", "node": "card1", "x": 300, "y": 200},
		{"action": "expect", "node": "card0", "x": 100, "y": 100}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(r)
	runScript(t, s, r)

	if len(r.Failures()) != 0 {
		t.Errorf("Failures = %v", r.Failures())
	}
}

func TestRunnerExpectFailures(t *testing.T) {
	s, _ := newTestScene(1)
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "press", "x": 110, "y": 110},
		{"action": "expect", "node": "card0", "x": 100, "y": 100},
		{"action": "release", "x": 110, "y": 110},
		{"action": "expect", "node": "card0", "x": 5, "y": 5},
		{"action": "expect", "node": "nobody", "x": 0, "y": 0},
		{"action": "expect", "node": "surface", "x": 0, "y": 0}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r)

	want := []string{"still dragging", "want (5, 5)", "not found", "no movable"}
	got := r.Failures()
	if len(got) != len(want) {
		t.Fatalf("Failures = %v, want %d", got, len(want))
	}
	for i, w := range want {
		if !strings.Contains(got[i].Error(), w) {
			t.Errorf("failure %d = %q, want it to mention %q", i, got[i], w)
		}
	}
}

func TestRunnerCancelStep(t *testing.T) {
	s, _ := newTestScene(1)
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "press", "x": 110, "y": 110},
		{"action": "move", "x": 150, "y": 170},
		{"action": "cancel"},
		{"action": "expect", "node": "card0", "x": 140, "y": 160}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r)
	if len(r.Failures()) != 0 {
		t.Errorf("Failures = %v", r.Failures())
	}
}

func TestRunnerRightClickIgnored(t *testing.T) {
	s, _ := newTestScene(1)
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "press", "x": 110, "y": 110, "button": "secondary"},
		{"action": "move", "x": 400, "y": 400},
		{"action": "release", "x": 400, "y": 400},
		{"action": "expect", "node": "card0", "x": 100, "y": 100}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r)
	if len(r.Failures()) != 0 {
		t.Errorf("Failures = %v", r.Failures())
	}
}

func TestRunnerWait(t *testing.T) {
	s := NewScene()
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "wait", "frames": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if frames := runScript(t, s, r); frames != 4 {
		t.Errorf("frames = %d, want 4", frames)
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewScene()
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 1, "y": 1},
		{"action": "click", "x": 2, "y": 2}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	r.step(s)
	if s.PendingInput() != 2 {
		t.Fatalf("PendingInput = %d, want 2", s.PendingInput())
	}
	// Queue not drained: the runner holds.
	r.step(s)
	if s.PendingInput() != 2 || r.cursor != 1 {
		t.Errorf("runner advanced with input pending: cursor=%d pending=%d", r.cursor, s.PendingInput())
	}
}
