package corkboard

import (
	"errors"
	"fmt"
)

// PointerCapturer is the host capability used by a Movable to bind a pointer
// to its element. Both calls are fallible; callers treat them as best-effort.
type PointerCapturer interface {
	SetPointerCapture(pointerID int) error
	ReleasePointerCapture(pointerID int) error
}

var (
	// ErrNotMounted is reported when capture is requested before the element
	// has a host handle.
	ErrNotMounted = errors.New("corkboard: element is not mounted")

	// ErrPointerOutOfRange is returned for pointer ids the host does not track.
	ErrPointerOutOfRange = errors.New("corkboard: pointer id out of range")

	// ErrNotCaptured is returned when releasing a pointer the node does not hold.
	ErrNotCaptured = errors.New("corkboard: pointer not captured by node")

	// ErrDetached is returned when a handle outlives its node's attachment.
	ErrDetached = errors.New("corkboard: node is not attached to the scene")
)

// nodeHandle is the mount handle a Scene gives to a node's Movable. It stays
// bound to the scene it was issued by; after detach every call fails with
// ErrDetached.
type nodeHandle struct {
	scene *Scene
	node  *Node
}

func (h nodeHandle) SetPointerCapture(pointerID int) error {
	if h.node.scene != h.scene {
		return ErrDetached
	}
	return h.scene.CapturePointer(pointerID, h.node)
}

func (h nodeHandle) ReleasePointerCapture(pointerID int) error {
	if h.node.scene != h.scene {
		return ErrDetached
	}
	return h.scene.ReleasePointer(pointerID, h.node)
}

// CapturePointer routes all events for pointerID to node until released. If
// another node held the capture, it receives lostpointercapture.
func (s *Scene) CapturePointer(pointerID int, node *Node) error {
	if pointerID < 0 || pointerID >= maxPointers {
		return fmt.Errorf("capture pointer %d: %w", pointerID, ErrPointerOutOfRange)
	}
	if node == nil || node.scene != s {
		return fmt.Errorf("capture pointer %d: %w", pointerID, ErrDetached)
	}
	prev := s.captured[pointerID]
	if prev == node {
		return nil
	}
	s.captured[pointerID] = node
	if prev != nil {
		s.queueLostCapture(prev, pointerID)
	}
	return nil
}

// ReleasePointer stops routing events for pointerID to node. The node
// receives lostpointercapture once the current dispatch finishes.
func (s *Scene) ReleasePointer(pointerID int, node *Node) error {
	if pointerID < 0 || pointerID >= maxPointers {
		return fmt.Errorf("release pointer %d: %w", pointerID, ErrPointerOutOfRange)
	}
	if node == nil || s.captured[pointerID] != node {
		return fmt.Errorf("release pointer %d: %w", pointerID, ErrNotCaptured)
	}
	s.captured[pointerID] = nil
	s.queueLostCapture(node, pointerID)
	return nil
}

// CapturedBy returns the node holding capture for pointerID, or nil.
func (s *Scene) CapturedBy(pointerID int) *Node {
	if pointerID < 0 || pointerID >= maxPointers {
		return nil
	}
	return s.captured[pointerID]
}

// releaseImplicit drops capture after pointerup or pointercancel, the way a
// browser does. No error when nothing was captured.
func (s *Scene) releaseImplicit(pointerID int) {
	if n := s.captured[pointerID]; n != nil {
		s.captured[pointerID] = nil
		s.queueLostCapture(n, pointerID)
	}
}

// revokeCaptures drops every capture held by node or its descendants. Used
// when a subtree is detached from the scene.
func (s *Scene) revokeCaptures(root *Node) {
	for id, n := range s.captured {
		if n != nil && isAncestor(root, n) {
			s.captured[id] = nil
			s.queueLostCapture(n, id)
		}
	}
}

type lostCapture struct {
	node      *Node
	pointerID int
}

func (s *Scene) queueLostCapture(n *Node, pointerID int) {
	s.lostQueue = append(s.lostQueue, lostCapture{node: n, pointerID: pointerID})
	if s.dispatching == 0 && !s.flushing {
		s.flushLostCaptures()
	}
}

// flushLostCaptures delivers queued lostpointercapture events. Delivery can
// queue more (a handler may capture or release again); those are drained in
// the same loop.
func (s *Scene) flushLostCaptures() {
	s.flushing = true
	defer func() { s.flushing = false }()
	for len(s.lostQueue) > 0 {
		lc := s.lostQueue[0]
		copy(s.lostQueue, s.lostQueue[1:])
		s.lostQueue = s.lostQueue[:len(s.lostQueue)-1]
		s.dispatch(lc.node, PointerEvent{
			Type:      EventLostPointerCapture,
			PointerID: lc.pointerID,
			Button:    MouseButtonNone,
		})
	}
}
