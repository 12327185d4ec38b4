package corkboard

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// monoFont measures every rune as 10px wide.
type monoFont struct{}

func (monoFont) MeasureString(s string) (float64, float64) {
	return float64(len([]rune(s))) * 10, 16
}

func (monoFont) LineHeight() float64 { return 16 }

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width float64
		want  []string
	}{
		{"fits", "card text", 200, []string{"card text"}},
		{"wraps", "aaa bbb ccc", 70, []string{"aaa bbb", "ccc"}},
		{"long word alone", "tiny enormousword x", 60, []string{"tiny", "enormousword", "x"}},
		{"newlines kept", "a\n\nb", 200, []string{"a", "", "b"}},
		{"no width", "aaa bbb", 0, []string{"aaa bbb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.in, monoFont{}, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("wrapText = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadTTFFontInvalidData(t *testing.T) {
	if _, err := LoadTTFFont([]byte("not a TTF file"), 16); err == nil {
		t.Error("expected error for invalid TTF data")
	}
}

func TestLoadTTFFont(t *testing.T) {
	f, err := LoadTTFFont(goregular.TTF, 16)
	if err != nil {
		t.Fatalf("LoadTTFFont: %v", err)
	}
	if f.LineHeight() <= 0 {
		t.Errorf("LineHeight = %v, want > 0", f.LineHeight())
	}
	short, _ := f.MeasureString("card")
	long, _ := f.MeasureString("card.title card.text")
	if short <= 0 || long <= short {
		t.Errorf("MeasureString widths short=%v long=%v", short, long)
	}
}

func TestNewLabelDefaults(t *testing.T) {
	l := NewLabel("card.title", "card.text")
	if l.Title != "card.title" || l.Body != "card.text" {
		t.Errorf("Label = %+v", l)
	}
	if l.Padding != 16 {
		t.Errorf("Padding = %v, want 16", l.Padding)
	}
}
