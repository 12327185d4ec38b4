// Package tui is a terminal host for corkboard cards. It turns bubbletea
// mouse messages into pointer events for each card's Movable and draws the
// cards as bordered boxes, so the same drag controller runs in a terminal.
package tui

import (
	"log/slog"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/corkboard"
)

// Pixel size of one terminal cell when a pixel board config is reused.
const (
	cellWidth  = 8
	cellHeight = 16
)

// Card is one card on the terminal board. Position and drag state live in
// Movable, in cell units.
type Card struct {
	Key     string
	Title   string
	Text    string
	Color   string // hex background; empty = terminal default
	Width   int    // cells, including the border
	Height  int    // rows, including the border
	Movable *corkboard.Movable
}

type card struct {
	Card
}

// Model is the bubbletea model for the terminal board.
type Model struct {
	cards   []*card // paint order, topmost last
	capture captureTable

	down   bool
	button corkboard.MouseButton
	target *card // card that received pointerdown
	lastX  float64
	lastY  float64

	width  int
	height int
}

// New builds a model for the given cards and mounts each card's Movable on
// the terminal capture table.
func New(cards []Card) *Model {
	m := &Model{width: 80, height: 24}
	for _, c := range cards {
		if c.Movable == nil {
			c.Movable = corkboard.NewMovable(corkboard.DefaultPosition)
		}
		if c.Movable.Name == "" {
			c.Movable.Name = c.Title
		}
		cc := &card{Card: c}
		cc.Movable.OnMounted(cardHandle{table: &m.capture, card: cc})
		m.cards = append(m.cards, cc)
	}
	return m
}

// CardsFromConfig converts a pixel board configuration into terminal cards,
// scaling positions and sizes to cells.
func CardsFromConfig(cfg corkboard.BoardConfig, keys func() string) []Card {
	contents := cfg.Cards
	if len(contents) == 0 {
		contents = make([]corkboard.CardConfig, cfg.CardCount)
		for i := range contents {
			contents[i] = corkboard.CardConfig{Title: "card.title", Text: "card.text"}
		}
	}
	w := max(int(math.Round(cfg.CardWidth/cellWidth)), 8)
	h := max(int(math.Round(cfg.CardHeight/cellHeight)), 4)

	out := make([]Card, len(contents))
	for i, cc := range contents {
		start := corkboard.Vec2{
			X: math.Round((cfg.StartX + float64(i)*cfg.Cascade) / cellWidth),
			Y: math.Round((cfg.StartY + float64(i)*cfg.Cascade) / cellHeight),
		}
		out[i] = Card{
			Key:     keys(),
			Title:   cc.Title,
			Text:    cc.Text,
			Color:   cc.Color,
			Width:   w,
			Height:  h,
			Movable: corkboard.NewMovable(start),
		}
	}
	return out
}

// Cards returns the cards in paint order, topmost last.
func (m *Model) Cards() []Card {
	out := make([]Card, len(m.cards))
	for i, c := range m.cards {
		out[i] = c.Card
	}
	return out
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.cancel()
		}
	case tea.BlurMsg:
		corkboard.Logger().Debug("terminal lost focus")
		m.cancel()
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y := float64(msg.X), float64(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		button, ok := pointerButton(msg.Button)
		if !ok || m.down {
			return
		}
		m.down = true
		m.button = button
		m.lastX, m.lastY = x, y
		target := m.targetFor(x, y)
		m.target = target
		if target != nil && button == corkboard.MouseButtonPrimary {
			m.raise(target)
		}
		m.dispatch(target, corkboard.PointerEvent{
			Type: corkboard.EventPointerDown, PointerID: mousePointer, Button: button,
			ClientX: x, ClientY: y,
		})

	case tea.MouseActionMotion:
		if x == m.lastX && y == m.lastY {
			return
		}
		m.lastX, m.lastY = x, y
		m.dispatch(m.targetFor(x, y), corkboard.PointerEvent{
			Type: corkboard.EventPointerMove, PointerID: mousePointer, Button: corkboard.MouseButtonNone,
			ClientX: x, ClientY: y,
		})

	case tea.MouseActionRelease:
		if !m.down {
			return
		}
		if x != m.lastX || y != m.lastY {
			m.lastX, m.lastY = x, y
			m.dispatch(m.targetFor(x, y), corkboard.PointerEvent{
				Type: corkboard.EventPointerMove, PointerID: mousePointer, Button: corkboard.MouseButtonNone,
				ClientX: x, ClientY: y,
			})
		}
		m.down = false
		m.target = nil
		m.dispatch(m.targetFor(x, y), corkboard.PointerEvent{
			Type: corkboard.EventPointerUp, PointerID: mousePointer, Button: m.button,
			ClientX: x, ClientY: y,
		})
		m.capture.releaseImplicit()
		m.flush()
	}
}

// cancel aborts a held mouse pointer: pointercancel goes to the capturing
// card, or to the card that received pointerdown.
func (m *Model) cancel() {
	if !m.down {
		return
	}
	target := m.capture.owner
	if target == nil {
		target = m.target
	}
	m.down = false
	m.target = nil
	m.dispatch(target, corkboard.PointerEvent{
		Type: corkboard.EventPointerCancel, PointerID: mousePointer, Button: m.button,
		ClientX: m.lastX, ClientY: m.lastY,
	})
	m.capture.releaseImplicit()
	m.flush()
}

func (m *Model) dispatch(c *card, evt corkboard.PointerEvent) {
	if c != nil {
		c.Movable.HandlePointerEvent(evt)
	}
	m.flush()
}

// flush delivers queued lostpointercapture notifications. Delivery may queue
// more; they are drained in the same loop.
func (m *Model) flush() {
	for len(m.capture.lost) > 0 {
		c := m.capture.lost[0]
		m.capture.lost = m.capture.lost[1:]
		c.Movable.HandlePointerEvent(corkboard.PointerEvent{
			Type:      corkboard.EventLostPointerCapture,
			PointerID: mousePointer,
			Button:    corkboard.MouseButtonNone,
		})
	}
}

// targetFor returns the capturing card, or the topmost card drawn under the
// cell.
func (m *Model) targetFor(x, y float64) *card {
	if m.capture.owner != nil {
		return m.capture.owner
	}
	return m.cardAt(x, y)
}

func (m *Model) cardAt(x, y float64) *card {
	for i := len(m.cards) - 1; i >= 0; i-- {
		c := m.cards[i]
		cx, cy := m.screenPosition(c)
		if x >= float64(cx) && x < float64(cx+c.Width) &&
			y >= float64(cy) && y < float64(cy+c.Height) {
			return c
		}
	}
	return nil
}

// raise moves c to the top of the paint order.
func (m *Model) raise(c *card) {
	for i, other := range m.cards {
		if other == c {
			copy(m.cards[i:], m.cards[i+1:])
			m.cards[len(m.cards)-1] = c
			return
		}
	}
}

func pointerButton(b tea.MouseButton) (corkboard.MouseButton, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return corkboard.MouseButtonPrimary, true
	case tea.MouseButtonRight:
		return corkboard.MouseButtonSecondary, true
	case tea.MouseButtonMiddle:
		return corkboard.MouseButtonAuxiliary, true
	}
	corkboard.Logger().Debug("mouse button ignored", slog.Int("button", int(b)))
	return corkboard.MouseButtonNone, false
}
