package corkboard

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const debugOverlayLines = 8

// debugEvent records a dispatched event for the overlay and the logger.
func (s *Scene) debugEvent(evt PointerEvent) {
	target := "<none>"
	if evt.Node != nil {
		target = evt.Node.Name
	}
	line := fmt.Sprintf("%-18s p%d %-9s (%.0f,%.0f) -> %s",
		evt.Type, evt.PointerID, evt.Button, evt.ClientX, evt.ClientY, target)
	s.debugLines = append(s.debugLines, line)
	if len(s.debugLines) > debugOverlayLines {
		s.debugLines = s.debugLines[len(s.debugLines)-debugOverlayLines:]
	}
	Logger().Debug("pointer event",
		slog.String("type", evt.Type.String()),
		slog.Int("pointer", evt.PointerID),
		slog.String("button", evt.Button.String()),
		slog.String("target", target))
}

// drawDebugOverlay prints FPS/TPS, per-card drag state, captures, and the
// most recent pointer events in the top-left corner.
func (s *Scene) drawDebugOverlay(screen *ebiten.Image) {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	s.writeDragStates(&b, s.root)
	for id, n := range s.captured {
		if n != nil {
			fmt.Fprintf(&b, "capture p%d -> %s\n", id, n.Name)
		}
	}
	for _, line := range s.debugLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	ebitenutil.DebugPrint(screen, b.String())
}

func (s *Scene) writeDragStates(b *strings.Builder, n *Node) {
	if m := n.movable; m != nil {
		p := m.Position()
		if id, ok := m.Dragging(); ok {
			fmt.Fprintf(b, "%s: dragging p%d (%.0f,%.0f)\n", n.Name, id, p.X, p.Y)
		} else {
			fmt.Fprintf(b, "%s: idle (%.0f,%.0f)\n", n.Name, p.X, p.Y)
		}
	}
	for _, c := range n.children {
		s.writeDragStates(b, c)
	}
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("corkboard debug: %s on disposed node %q", op, n.Name))
	}
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("tree depth exceeds threshold",
			slog.Int("depth", depth), slog.Int("threshold", debugMaxTreeDepth),
			slog.String("node", n.Name))
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns if a node has more than debugMaxChildCount children.
func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("child count exceeds threshold",
			slog.Int("children", len(n.children)), slog.Int("threshold", debugMaxChildCount),
			slog.String("node", n.Name))
	}
}
