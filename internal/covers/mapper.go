package covers

// Style selects which family of shapes the renderer draws.
type Style string

const (
	StyleGeometric Style = "geometric"
	StyleOrganic   Style = "organic"
	StyleMixed     Style = "mixed"
)

var (
	warmPalette    = []string{"#FF6B6B", "#FF8E53", "#FFA500", "#FFD700"}
	coolPalette    = []string{"#4169E1", "#1E90FF", "#00CED1", "#7B68EE"}
	neutralPalette = []string{"#FF6B9D", "#C44569", "#A8E6CF", "#FFD93D"}
)

// techWords and natureWords steer the shape style: technical vocabulary
// leans angular, natural vocabulary leans flowing.
var techWords = map[string]struct{}{
	"code": {}, "data": {}, "system": {}, "algorithm": {}, "computer": {},
	"network": {}, "api": {}, "server": {}, "database": {}, "software": {},
	"program": {}, "python": {},
}

var natureWords = map[string]struct{}{
	"tree": {}, "water": {}, "sky": {}, "earth": {}, "plant": {},
	"animal": {}, "nature": {}, "forest": {}, "ocean": {}, "mountain": {},
	"flower": {}, "river": {},
}

// Visual is the complete set of rendering properties derived from an
// Analysis. It is everything the artist needs; the analysis itself stays
// out of the drawing code.
type Visual struct {
	Palette    []string
	Background string
	Style      Style
	Complexity int
	Layers     int
	Stroke     float64
	Brightness float64
	Entropy    float64
	Seed       int64
}

// MapVisual translates text features into visual properties. Warm palettes
// follow positive sentiment, complexity follows frequency variance, layer
// depth follows entropy, and stroke weight follows sentence length.
func MapVisual(a *Analysis) Visual {
	return Visual{
		Palette:    paletteFor(a.Sentiment),
		Background: backgroundFor(a.Sentiment),
		Style:      styleFor(a.Keywords),
		Complexity: int(clamp(a.FreqVariance, 15, 35)),
		Layers:     int(clamp(a.Entropy/1.5, 4, 10)),
		Stroke:     clamp(a.Rhythm.AvgSentenceLength/5, 0.5, 5),
		Brightness: 0.5 + abs(a.Sentiment)*0.5,
		Entropy:    a.Entropy,
		Seed:       a.Seed,
	}
}

func paletteFor(sentiment float64) []string {
	switch {
	case sentiment > 0.3:
		return warmPalette
	case sentiment < -0.3:
		return coolPalette
	default:
		return neutralPalette
	}
}

func backgroundFor(sentiment float64) string {
	switch {
	case sentiment > 0.2:
		return "#FFF5F0"
	case sentiment < -0.2:
		return "#F0F5FF"
	default:
		return "#F8F9FA"
	}
}

func styleFor(keywords []WordCount) Style {
	var tech, nature int
	for _, kw := range keywords {
		if _, ok := techWords[kw.Word]; ok {
			tech++
		}
		if _, ok := natureWords[kw.Word]; ok {
			nature++
		}
	}
	switch {
	case tech > nature:
		return StyleGeometric
	case nature > tech:
		return StyleOrganic
	default:
		return StyleMixed
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
