package corkboard

import (
	"encoding/json"
	"fmt"
	"math"
)

// testStep represents a single action in a scenario script.
type testStep struct {
	Action string  `json:"action"`
	Node   string  `json:"node,omitempty"`
	Button string  `json:"button,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a scenario script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// expectTolerance absorbs float noise from interpolated drags.
const expectTolerance = 1e-6

// TestRunner sequences injected pointer input across frames and checks card
// positions. Attach to a Scene via SetTestRunner.
//
// Supported actions: press, move, release, cancel, click, drag, wait, and
// expect (asserts that the Movable of the named node is at x, y and idle).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []error
}

// LoadTestScript parses a JSON scenario script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "move", "release", "cancel", "click", "drag", "wait", "expect":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if _, err := parseButton(st.Button); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before input processing each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the expect steps that did not hold.
func (r *TestRunner) Failures() []error {
	return r.failures
}

// step advances the runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		button, _ := parseButton(st.Button)
		s.InjectPressButton(st.X, st.Y, button)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "cancel":
		s.InjectCancel()
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect":
		if err := r.expect(s, st); err != nil {
			r.failures = append(r.failures, err)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) expect(s *Scene, st testStep) error {
	n := s.FindNode(st.Node)
	if n == nil {
		return fmt.Errorf("step %d: node %q not found", r.cursor-1, st.Node)
	}
	m := n.Movable()
	if m == nil {
		return fmt.Errorf("step %d: node %q has no movable", r.cursor-1, st.Node)
	}
	if id, dragging := m.Dragging(); dragging {
		return fmt.Errorf("step %d: node %q still dragging pointer %d", r.cursor-1, st.Node, id)
	}
	p := m.Position()
	if math.Abs(p.X-st.X) > expectTolerance || math.Abs(p.Y-st.Y) > expectTolerance {
		return fmt.Errorf("step %d: node %q at (%v, %v), want (%v, %v)",
			r.cursor-1, st.Node, p.X, p.Y, st.X, st.Y)
	}
	return nil
}

func parseButton(name string) (MouseButton, error) {
	switch name {
	case "", "primary", "left":
		return MouseButtonPrimary, nil
	case "secondary", "right":
		return MouseButtonSecondary, nil
	case "auxiliary", "middle":
		return MouseButtonAuxiliary, nil
	}
	return MouseButtonNone, fmt.Errorf("unknown button %q", name)
}

// FindNode returns the first node in the tree with the given name or key.
func (s *Scene) FindNode(name string) *Node {
	return findNode(s.root, name)
}

func findNode(n *Node, name string) *Node {
	if n.Name == name || (n.Key != "" && n.Key == name) {
		return n
	}
	for _, c := range n.children {
		if found := findNode(c, name); found != nil {
			return found
		}
	}
	return nil
}
