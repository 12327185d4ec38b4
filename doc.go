// Package corkboard is a kanban-style board of freely draggable cards for
// [Ebitengine].
//
// The interesting part is [Movable], a per-element drag controller. It
// captures a pointer on press, tracks the pointer's displacement from where
// the press started, and keeps an absolute logical position:
//
//	position = positionOrigin + (pointer - clickOrigin)
//
// A Movable is either idle or dragging exactly one owner pointer. Events for
// other pointers are ignored. pointerup and pointercancel from the owner, and
// lostpointercapture from the host, bring it back to idle.
//
// # Quick start
//
// The simplest way to get started is [Run] with a [Board]:
//
//	scene := corkboard.NewScene()
//	cfg := corkboard.DefaultConfig()
//	if _, err := corkboard.NewBoard(scene, cfg.Board); err != nil {
//		log.Fatal(err)
//	}
//	corkboard.Run(scene, corkboard.RunConfig{
//		Title: "Board", Width: 1024, Height: 768,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Hosts
//
// [Scene] is the ebiten host: it polls mouse and touch state each frame,
// turns it into pointerdown/pointermove/pointerup events, cancels held
// pointers when the window loses focus, routes captured pointers, and sends
// lostpointercapture when a node loses capture. Package tui drives the same
// Movable from terminal mouse events.
//
// Any other host only needs to deliver [PointerEvent] values to
// [Movable.HandlePointerEvent] from a single goroutine and hand the Movable a
// [PointerCapturer] through [Movable.OnMounted].
//
// [Ebitengine]: https://ebitengine.org
package corkboard
