package corkboard

// updateWorldTransform recomputes world offsets for n and its subtree.
// parentRecomputed forces recomputation of this node even if it's not dirty.
// Movable positions are projected into X/Y first so the hit test and the
// renderer see the same placement.
func updateWorldTransform(n *Node, parentX, parentY float64, parentRecomputed bool) {
	n.syncMovable()
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldX = parentX + n.X
		n.worldY = parentY + n.Y
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldX, n.worldY, recompute)
	}
}

// SetPosition sets the node's local X and Y and marks it dirty. Nodes with
// a Movable are overwritten by the Movable's position on the next update.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldPosition returns the node's top-left corner in world space as of the
// last update.
func (n *Node) WorldPosition() Vec2 {
	return Vec2{n.worldX, n.worldY}
}

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return wx - n.worldX, wy - n.worldY
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return lx + n.worldX, ly + n.worldY
}

// WorldBounds returns the node's rectangle in world space.
func (n *Node) WorldBounds() Rect {
	return Rect{X: n.worldX, Y: n.worldY, Width: n.Width, Height: n.Height}
}
