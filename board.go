package corkboard

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Card is one draggable card on a board.
type Card struct {
	Key     string
	Node    *Node
	Movable *Movable
}

// Board is a surface holding draggable cards. The surface is a container at
// the scene origin; card placement is the card Movable's position offset from
// the surface.
type Board struct {
	Surface *Node
	cards   []*Card
	byKey   map[string]*Card
}

// NewBoard builds the surface and its cards from cfg and attaches the surface
// to the scene root. Every card gets its own Movable; cards raise themselves
// to the front when pressed.
func NewBoard(scene *Scene, cfg BoardConfig) (*Board, error) {
	b := &Board{
		Surface: NewContainer("surface"),
		byKey:   make(map[string]*Card),
	}

	contents := cfg.Cards
	if len(contents) == 0 {
		contents = make([]CardConfig, cfg.CardCount)
		for i := range contents {
			contents[i] = CardConfig{Title: "card.title", Text: "card.text"}
		}
	}

	for i, cc := range contents {
		fill, err := parseHexColor(cc.Color)
		if err != nil {
			return nil, fmt.Errorf("board: card %d: %w", i, err)
		}
		start := Vec2{
			X: cfg.StartX + float64(i)*cfg.Cascade,
			Y: cfg.StartY + float64(i)*cfg.Cascade,
		}
		b.AddCard(cc.Title, cc.Text, fill, cfg.CardWidth, cfg.CardHeight, start)
	}

	scene.Root().AddChild(b.Surface)
	Logger().Info("board created", slog.Int("cards", len(b.cards)))
	return b, nil
}

// AddCard creates a card at the given initial position and adds it to the
// surface.
func (b *Board) AddCard(title, text string, fill Color, width, height float64, start Vec2) *Card {
	key := uuid.NewString()
	node := NewCard(fmt.Sprintf("card%d", len(b.cards)), width, height)
	node.Key = key
	node.Color = fill
	node.Label = NewLabel(title, text)
	node.OnPointerDown = func(evt PointerEvent) {
		if evt.Button == MouseButtonPrimary {
			node.BringToFront()
		}
	}

	m := NewMovable(start)
	node.SetMovable(m)

	c := &Card{Key: key, Node: node, Movable: m}
	b.cards = append(b.cards, c)
	b.byKey[key] = c
	b.Surface.AddChild(node)
	return c
}

// RemoveCard detaches a card from the surface. Any drag in progress on it is
// ended by the resulting capture loss. Returns false for unknown keys.
func (b *Board) RemoveCard(key string) bool {
	c, ok := b.byKey[key]
	if !ok {
		return false
	}
	c.Node.RemoveFromParent()
	delete(b.byKey, key)
	for i, other := range b.cards {
		if other == c {
			b.cards = append(b.cards[:i], b.cards[i+1:]...)
			break
		}
	}
	return true
}

// Cards returns the cards in creation order. The returned slice MUST NOT be mutated.
func (b *Board) Cards() []*Card {
	return b.cards
}

// Card returns the card with the given key, or nil.
func (b *Board) Card(key string) *Card {
	return b.byKey[key]
}
