package corkboard

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree and the host side of
// the pointer pipeline: polling, hit testing, capture, and dispatch.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the screen before the tree is drawn.
	ClearColor Color

	// Input state
	handlers     handlerRegistry
	captured     [maxPointers]*Node
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	focused      bool

	// Dispatch state
	lostQueue   []lostCapture
	dispatching int
	flushing    bool

	// Scripted input
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	// Debug overlay
	debugLines []string
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	s := &Scene{
		root:       root,
		focused:    true,
		ClearColor: Color{0.945, 0.961, 0.976, 1}, // slate-100
	}
	root.scene = s
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update runs scripted steps, processes one frame of pointer input, and
// projects Movable positions into node placement.
func (s *Scene) Update() {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	// Hit testing needs this frame's placement.
	updateWorldTransform(s.root, 0, 0, false)
	s.processInput()
	updateWorldTransform(s.root, 0, 0, false)
}

// Draw clears the screen and draws the tree in paint order.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.toRGBA())
	s.drawNode(screen, s.root)
	if s.debug {
		s.drawDebugOverlay(screen)
	}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and every
// dispatched pointer event is shown in an on-screen overlay.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool
