package tui

import (
	"fmt"

	"github.com/phanxgames/corkboard"
)

// Terminals report a single mouse; it is pointer 0.
const mousePointer = 0

// captureTable is the terminal's pointer capture state. Lost-capture
// notifications are queued and delivered by the model once the event that
// caused them has been fully handled.
type captureTable struct {
	owner *card
	lost  []*card
}

func (t *captureTable) set(pointerID int, c *card) error {
	if pointerID != mousePointer {
		return fmt.Errorf("tui: capture pointer %d: %w", pointerID, corkboard.ErrPointerOutOfRange)
	}
	prev := t.owner
	t.owner = c
	if prev != nil && prev != c {
		t.lost = append(t.lost, prev)
	}
	return nil
}

func (t *captureTable) release(pointerID int, c *card) error {
	if pointerID != mousePointer {
		return fmt.Errorf("tui: release pointer %d: %w", pointerID, corkboard.ErrPointerOutOfRange)
	}
	if t.owner != c {
		return fmt.Errorf("tui: release pointer %d: %w", pointerID, corkboard.ErrNotCaptured)
	}
	t.owner = nil
	t.lost = append(t.lost, c)
	return nil
}

// releaseImplicit drops capture after pointerup or pointercancel.
func (t *captureTable) releaseImplicit() {
	if t.owner != nil {
		t.lost = append(t.lost, t.owner)
		t.owner = nil
	}
}

// cardHandle is the PointerCapturer handed to a card's Movable.
type cardHandle struct {
	table *captureTable
	card  *card
}

func (h cardHandle) SetPointerCapture(pointerID int) error {
	return h.table.set(pointerID, h.card)
}

func (h cardHandle) ReleasePointerCapture(pointerID int) error {
	return h.table.release(pointerID, h.card)
}
