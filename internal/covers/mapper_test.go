package covers

import (
	"reflect"
	"testing"
)

func TestMapVisualPaletteFollowsSentiment(t *testing.T) {
	cases := []struct {
		name      string
		sentiment float64
		palette   []string
	}{
		{"positive", 0.5, warmPalette},
		{"negative", -0.5, coolPalette},
		{"neutral", 0.1, neutralPalette},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := MapVisual(&Analysis{Sentiment: tc.sentiment})
			if !reflect.DeepEqual(v.Palette, tc.palette) {
				t.Fatalf("expected palette %v, got %v", tc.palette, v.Palette)
			}
		})
	}
}

func TestMapVisualBackgroundTint(t *testing.T) {
	if got := MapVisual(&Analysis{Sentiment: 0.4}).Background; got != "#FFF5F0" {
		t.Fatalf("expected warm tint, got %s", got)
	}
	if got := MapVisual(&Analysis{Sentiment: -0.4}).Background; got != "#F0F5FF" {
		t.Fatalf("expected cool tint, got %s", got)
	}
	if got := MapVisual(&Analysis{}).Background; got != "#F8F9FA" {
		t.Fatalf("expected neutral tint, got %s", got)
	}
}

func TestMapVisualClampsRanges(t *testing.T) {
	low := MapVisual(&Analysis{})
	if low.Complexity != 15 {
		t.Fatalf("expected floor complexity 15, got %d", low.Complexity)
	}
	if low.Layers != 4 {
		t.Fatalf("expected floor layers 4, got %d", low.Layers)
	}
	if low.Stroke != 0.5 {
		t.Fatalf("expected floor stroke 0.5, got %v", low.Stroke)
	}

	high := MapVisual(&Analysis{
		FreqVariance: 500,
		Entropy:      40,
		Rhythm:       Rhythm{AvgSentenceLength: 90},
	})
	if high.Complexity != 35 {
		t.Fatalf("expected ceiling complexity 35, got %d", high.Complexity)
	}
	if high.Layers != 10 {
		t.Fatalf("expected ceiling layers 10, got %d", high.Layers)
	}
	if high.Stroke != 5 {
		t.Fatalf("expected ceiling stroke 5, got %v", high.Stroke)
	}

	mid := MapVisual(&Analysis{Entropy: 9})
	if mid.Layers != 6 {
		t.Fatalf("expected layers 6 for entropy 9, got %d", mid.Layers)
	}
}

func TestMapVisualBrightness(t *testing.T) {
	if got := MapVisual(&Analysis{}).Brightness; got != 0.5 {
		t.Fatalf("expected neutral brightness 0.5, got %v", got)
	}
	if got := MapVisual(&Analysis{Sentiment: -1}).Brightness; got != 1 {
		t.Fatalf("expected full brightness for extreme sentiment, got %v", got)
	}
}

func TestMapVisualStyleFromKeywords(t *testing.T) {
	tech := MapVisual(&Analysis{Keywords: []WordCount{
		{Word: "database", Count: 4},
		{Word: "server", Count: 3},
		{Word: "forest", Count: 2},
	}})
	if tech.Style != StyleGeometric {
		t.Fatalf("expected geometric style, got %s", tech.Style)
	}

	nature := MapVisual(&Analysis{Keywords: []WordCount{
		{Word: "river", Count: 5},
		{Word: "mountain", Count: 2},
	}})
	if nature.Style != StyleOrganic {
		t.Fatalf("expected organic style, got %s", nature.Style)
	}

	plain := MapVisual(&Analysis{Keywords: []WordCount{
		{Word: "history", Count: 5},
	}})
	if plain.Style != StyleMixed {
		t.Fatalf("expected mixed style, got %s", plain.Style)
	}
}

func TestMapVisualCarriesSeed(t *testing.T) {
	v := MapVisual(&Analysis{Seed: 42, Entropy: 6})
	if v.Seed != 42 {
		t.Fatalf("expected seed carried through, got %d", v.Seed)
	}
	if v.Entropy != 6 {
		t.Fatalf("expected entropy carried through, got %v", v.Entropy)
	}
}
