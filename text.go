package corkboard

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("corkboard: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

var (
	defaultFontsOnce sync.Once
	defaultTitle     *TTFFont
	defaultBody      *TTFFont
	defaultFontsErr  error
)

// DefaultFonts returns the Go fonts used for card titles (bold, 20px, like
// text-xl) and card bodies (regular, 16px, like text-base).
func DefaultFonts() (title, body *TTFFont, err error) {
	defaultFontsOnce.Do(func() {
		defaultTitle, defaultFontsErr = LoadTTFFont(gobold.TTF, 20)
		if defaultFontsErr != nil {
			return
		}
		defaultBody, defaultFontsErr = LoadTTFFont(goregular.TTF, 16)
	})
	return defaultTitle, defaultBody, defaultFontsErr
}

// --- Label ---

// Label is the typography of a card: a title over a wrapped body.
type Label struct {
	Title      string
	Body       string
	TitleColor Color
	BodyColor  Color
	TitleFont  Font
	BodyFont   Font
	Padding    float64
}

// NewLabel creates a label with slate title/body colors and default padding.
func NewLabel(title, body string) *Label {
	return &Label{
		Title:      title,
		Body:       body,
		TitleColor: Color{0.118, 0.161, 0.231, 1}, // slate-800
		BodyColor:  Color{0.278, 0.333, 0.412, 1}, // slate-600
		Padding:    16,
	}
}

// wrapText breaks s into lines no wider than width, splitting on spaces.
// A single word wider than width gets its own line.
func wrapText(s string, f Font, width float64) []string {
	if f == nil || width <= 0 {
		return []string{s}
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			candidate := cur + " " + w
			if cw, _ := f.MeasureString(candidate); cw > width {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = candidate
		}
		lines = append(lines, cur)
	}
	return lines
}

// drawLabel renders the label inside the card rectangle at (x, y).
func drawLabel(dst *ebiten.Image, l *Label, x, y, width float64) {
	titleFont, titleOK := l.TitleFont.(*TTFFont)
	bodyFont, bodyOK := l.BodyFont.(*TTFFont)
	if !titleOK || !bodyOK {
		t, b, err := DefaultFonts()
		if err != nil {
			return
		}
		if !titleOK {
			titleFont = t
		}
		if !bodyOK {
			bodyFont = b
		}
	}

	cx := x + l.Padding
	cy := y + l.Padding
	inner := width - 2*l.Padding

	if l.Title != "" {
		// my-2
		cy += 8
		drawLine(dst, l.Title, titleFont, cx, cy, l.TitleColor)
		cy += titleFont.LineHeight() + 8
	}
	for _, line := range wrapText(l.Body, bodyFont, inner) {
		drawLine(dst, line, bodyFont, cx, cy, l.BodyColor)
		cy += bodyFont.LineHeight() * 1.5 / 1.2 // leading-normal
	}
}

func drawLine(dst *ebiten.Image, s string, f *TTFFont, x, y float64, c Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	text.Draw(dst, s, f.face, op)
}
