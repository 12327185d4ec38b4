package corkboard

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image scaled and tinted to draw solid rectangles.
var whitePixel *ebiten.Image

func solidPixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

const (
	cardBorderWidth = 1
	cardShadow      = 2 // shadow-sm offset
	cardShadowDrag  = 6 // lifted while dragging
)

var cardShadowColor = Color{0, 0, 0, 0.12}

// drawNode walks the tree in paint order (DFS, ZIndex-sorted) and draws every
// visible card. Containers draw nothing themselves.
func (s *Scene) drawNode(dst *ebiten.Image, n *Node) {
	if !n.Visible {
		return
	}
	if n.Width > 0 && n.Height > 0 {
		drawCard(dst, n)
	}
	if len(n.children) == 0 {
		return
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	for _, child := range n.sortedChildren {
		s.drawNode(dst, child)
	}
}

// drawCard draws shadow, border, fill, and label for a sized node.
func drawCard(dst *ebiten.Image, n *Node) {
	x, y, w, h := n.worldX, n.worldY, n.Width, n.Height

	shadow := float64(cardShadow)
	if n.movable != nil {
		if _, dragging := n.movable.Dragging(); dragging {
			shadow = cardShadowDrag
		}
	}
	fillRect(dst, x+shadow/2, y+shadow, w, h, cardShadowColor)
	fillRect(dst, x, y, w, h, n.BorderColor)
	fillRect(dst, x+cardBorderWidth, y+cardBorderWidth,
		w-2*cardBorderWidth, h-2*cardBorderWidth, n.Color)

	if n.Label != nil {
		drawLabel(dst, n.Label, x, y, w)
	}
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, c Color) {
	if w <= 0 || h <= 0 || c.A <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	dst.DrawImage(solidPixel(), &op)
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Insertion sort; stable, so equal ZIndex keeps insertion order.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}
