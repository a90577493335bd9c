package covers

// valence maps sentiment-bearing words to a polarity in [-1, 1]. The list is
// intentionally small; it only needs to tilt the palette warm or cool, not
// classify text.
var valence = map[string]float64{
	"amazing":    0.8,
	"awful":      -0.8,
	"bad":        -0.5,
	"beautiful":  0.8,
	"bleak":      -0.7,
	"boring":     -0.5,
	"brilliant":  0.9,
	"broken":     -0.5,
	"calm":       0.4,
	"cruel":      -0.8,
	"dark":       -0.3,
	"dead":       -0.7,
	"delight":    0.8,
	"despair":    -0.9,
	"devastated": -0.9,
	"dread":      -0.7,
	"dull":       -0.4,
	"excellent":  0.9,
	"exciting":   0.7,
	"failure":    -0.6,
	"fear":       -0.6,
	"fun":        0.6,
	"gentle":     0.5,
	"gloom":      -0.6,
	"good":       0.5,
	"great":      0.7,
	"grief":      -0.8,
	"grim":       -0.6,
	"happy":      0.8,
	"hate":       -0.9,
	"hope":       0.5,
	"horrible":   -0.9,
	"hurt":       -0.6,
	"incredible": 0.9,
	"joy":        0.9,
	"kind":       0.6,
	"lonely":     -0.6,
	"loss":       -0.5,
	"love":       0.8,
	"lovely":     0.8,
	"miserable":  -0.8,
	"nice":       0.5,
	"pain":       -0.7,
	"peaceful":   0.6,
	"pleasant":   0.6,
	"poor":       -0.4,
	"sad":        -0.7,
	"terrible":   -0.8,
	"tragedy":    -0.8,
	"ugly":       -0.6,
	"warm":       0.5,
	"wonderful":  0.9,
	"worst":      -0.9,
	"wrong":      -0.4,
}

// sentimentPolarity averages the valence of every sentiment-bearing word in
// the token stream. Text with no such words is neutral.
func sentimentPolarity(words []string) float64 {
	var sum float64
	var matched int
	for _, w := range words {
		if v, ok := valence[w]; ok {
			sum += v
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	return sum / float64(matched)
}
