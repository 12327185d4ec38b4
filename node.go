package corkboard

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// nodeIDCounter is a plain counter (no atomic, the scene is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. Containers group children; nodes with a
// size and a fill are drawn as cards. A node with a Movable has its position
// driven by the pointer.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Key  string // stable application key (card uuid); empty for containers

	// Hierarchy
	Parent   *Node
	children []*Node
	scene    *Scene // non-nil while reachable from a scene root

	// Local offset from the parent and size
	X, Y          float64
	Width, Height float64

	// Computed (unexported, updated during traversal)
	worldX, worldY float64
	transformDirty bool

	// Visibility & interaction
	Visible      bool
	Interactable bool
	ZIndex       int

	// Appearance
	Color       Color
	BorderColor Color
	Label       *Label

	// Metadata
	UserData any

	// Hit testing
	HitShape HitShape

	// Drag controller; position is projected into X/Y each frame.
	movable *Movable

	// Per-node callbacks (nil by default). They run before the Movable sees
	// the event.
	OnPointerDown        func(PointerEvent)
	OnPointerMove        func(PointerEvent)
	OnPointerUp          func(PointerEvent)
	OnPointerCancel      func(PointerEvent)
	OnLostPointerCapture func(PointerEvent)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Color = Color{1, 1, 1, 1}
	n.Visible = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewCard creates an interactable, filled rectangle of the given size with a
// matching hit rect.
func NewCard(name string, width, height float64) *Node {
	n := &Node{Name: name, Width: width, Height: height}
	nodeDefaults(n)
	n.Interactable = true
	n.HitShape = HitRect{Width: width, Height: height}
	n.BorderColor = Color{0.886, 0.910, 0.941, 1} // slate-200
	return n
}

// Movable returns the node's drag controller, or nil.
func (n *Node) Movable() *Movable {
	return n.movable
}

// SetMovable attaches a drag controller. If the node is already part of a
// scene the controller is mounted immediately; the previous controller, if
// any, is unmounted and its drag, if any, ended.
func (n *Node) SetMovable(m *Movable) {
	if m == n.movable {
		return
	}
	n.dropMovable()
	n.movable = m
	if m == nil {
		return
	}
	if m.Name == "" {
		m.Name = n.Name
	}
	if n.scene != nil {
		m.OnMounted(nodeHandle{scene: n.scene, node: n})
	}
	n.syncMovable()
}

// dropMovable detaches the node's Movable. Events for this node no longer
// reach it, so a drag it is running ends as if capture were lost.
func (n *Node) dropMovable() {
	m := n.movable
	if m == nil {
		return
	}
	n.movable = nil
	m.LostPointerCapture()
	m.OnMounted(nil)
}

// Scene returns the scene the node is attached to, or nil.
func (n *Node) Scene() *Scene {
	return n.scene
}

// syncMovable projects the Movable's position into the node's local offset.
func (n *Node) syncMovable() {
	if n.movable == nil {
		return
	}
	p := n.movable.Position()
	if p.X != n.X || p.Y != n.Y {
		n.X, n.Y = p.X, p.Y
		n.transformDirty = true
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("corkboard: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("corkboard: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if n.scene != nil {
		attachSubtree(child, n.scene)
	}
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node. Captures held inside the
// child's subtree are revoked and its Movables are unmounted.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("corkboard: child's parent is not this node")
	}
	if child.scene != nil {
		detachSubtree(child)
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// BringToFront raises the node above all of its siblings. Stacking only; the
// sibling order in Children is unchanged.
func (n *Node) BringToFront() {
	if n.Parent == nil {
		return
	}
	top := n.ZIndex
	for _, c := range n.Parent.children {
		if c != n && c.ZIndex >= top {
			top = c.ZIndex + 1
		}
	}
	n.SetZIndex(top)
}

// --- Mounting ---

func attachSubtree(n *Node, s *Scene) {
	n.scene = s
	if n.movable != nil {
		n.movable.OnMounted(nodeHandle{scene: s, node: n})
	}
	for _, c := range n.children {
		attachSubtree(c, s)
	}
}

// detachSubtree revokes captures while the subtree is still attached, so the
// lost-capture events reach nodes whose scene is still set, then unmounts.
func detachSubtree(n *Node) {
	s := n.scene
	s.revokeCaptures(n)
	s.forgetSubtree(n)
	clearScene(n)
}

func clearScene(n *Node) {
	n.scene = nil
	if n.movable != nil {
		n.movable.OnMounted(nil)
	}
	for _, c := range n.children {
		clearScene(c)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.Label = nil
	n.UserData = nil
	n.dropMovable()
	n.OnPointerDown = nil
	n.OnPointerMove = nil
	n.OnPointerUp = nil
	n.OnPointerCancel = nil
	n.OnLostPointerCapture = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
