package covers

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	markupPattern   = regexp.MustCompile("[#*`\\[\\](){}]")
	wordPattern     = regexp.MustCompile(`\b[a-z]+\b`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
)

// stopWords are excluded from keyword density so that glue words never
// dominate the top keywords.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "from": {}, "as": {}, "is": {}, "was": {},
	"are": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "should": {}, "could": {}, "may": {},
	"might": {}, "must": {}, "can": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "i": {}, "you": {}, "he": {}, "she": {},
	"it": {}, "we": {}, "they": {},
}

// WordCount pairs a token with its occurrence count.
type WordCount struct {
	Word  string
	Count int
}

// Rhythm summarises sentence structure.
type Rhythm struct {
	AvgSentenceLength float64
	Variance          float64
	Sentences         int
}

// Analysis holds every quantified feature of a post body. All fields are
// derived solely from the input text, so equal text always produces an
// equal Analysis.
type Analysis struct {
	Words        int
	UniqueRatio  float64
	FreqVariance float64
	TopWords     []WordCount
	Keywords     []WordCount
	Sentiment    float64
	Entropy      float64
	Rhythm       Rhythm
	Hash         string
	Seed         int64
}

// Analyze reduces markdown text to its feature vector. Markup punctuation is
// stripped before tokenizing so heading markers and link syntax do not count
// as words.
func Analyze(text string) *Analysis {
	clean := markupPattern.ReplaceAllString(strings.ToLower(text), " ")
	words := wordPattern.FindAllString(clean, -1)

	a := &Analysis{
		Words:     len(words),
		Sentiment: sentimentPolarity(words),
	}

	counts, order := countWords(words)
	if len(words) > 0 {
		a.UniqueRatio = float64(len(counts)) / float64(len(words))
	}
	a.FreqVariance = variance(countValues(counts, order))
	a.TopWords = topCounts(counts, order, 10)
	a.Entropy = entropy(counts, len(words))
	a.Keywords = keywordDensity(words)
	a.Rhythm = sentenceRhythm(text)

	sum := sha256.Sum256([]byte(text))
	a.Hash = hex.EncodeToString(sum[:])
	a.Seed = int64(binary.BigEndian.Uint64(sum[:8]))

	return a
}

// countWords tallies tokens and remembers first-seen order so that ranking
// ties resolve the same way on every run.
func countWords(words []string) (map[string]int, []string) {
	counts := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	for _, w := range words {
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}
	return counts, order
}

func countValues(counts map[string]int, order []string) []float64 {
	values := make([]float64, 0, len(order))
	for _, w := range order {
		values = append(values, float64(counts[w]))
	}
	return values
}

func topCounts(counts map[string]int, order []string, n int) []WordCount {
	ranked := make([]WordCount, 0, len(order))
	for _, w := range order {
		ranked = append(ranked, WordCount{Word: w, Count: counts[w]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// keywordDensity ranks content-bearing words: stop words and short tokens
// are dropped, then the five most frequent survivors win.
func keywordDensity(words []string) []WordCount {
	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if len(w) <= 3 {
			continue
		}
		filtered = append(filtered, w)
	}
	counts, order := countWords(filtered)
	return topCounts(counts, order, 5)
}

// entropy is the Shannon entropy of the word distribution in bits. Rich,
// varied vocabulary scores high; repetitive text scores low.
func entropy(counts map[string]int, total int) float64 {
	if total == 0 {
		return 0
	}
	var e float64
	for _, c := range counts {
		p := float64(c) / float64(total)
		e -= p * math.Log2(p)
	}
	return e
}

func sentenceRhythm(text string) Rhythm {
	var lengths []float64
	for _, s := range sentencePattern.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		lengths = append(lengths, float64(len(strings.Fields(s))))
	}
	return Rhythm{
		AvgSentenceLength: mean(lengths),
		Variance:          variance(lengths),
		Sentences:         len(lengths),
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var v float64
	for _, x := range xs {
		d := x - m
		v += d * d
	}
	return v / float64(len(xs))
}
