// Package tension implements the narrative tension index (NTI) and the
// pacing controller that steers scene generation toward a target tension
// curve.
package tension

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

// SentimentFunc returns a compound emotional valence in [-1, +1] for a
// block of text. Implementations must be deterministic.
type SentimentFunc func(text string) float64

// Scorer computes the narrative tension index for a block of prose.
// It is stateless after construction and safe for concurrent use.
type Scorer struct {
	sentiment SentimentFunc
}

// NewScorer returns a Scorer backed by the VADER sentiment lexicon.
func NewScorer() *Scorer {
	analyzer := govader.NewSentimentIntensityAnalyzer()
	return NewScorerWith(func(text string) float64 {
		if strings.TrimSpace(text) == "" {
			return 0
		}
		return analyzer.PolarityScores(text).Compound
	})
}

// NewScorerWith returns a Scorer using a custom sentiment function.
func NewScorerWith(fn SentimentFunc) *Scorer {
	return &Scorer{sentiment: fn}
}

// conditional and interruption markers are counted as case-insensitive
// substrings, not deduplicated.
var (
	conditionalMarkers = []string{
		"if", "maybe", "perhaps", "could", "might",
		"possibly", "uncertain", "unclear", "wonder",
	}
	interruptionMarkers = []string{
		"suddenly", "before", "just then", "interrupted",
	}
)

// Score computes the narrative tension index:
//
//	NTI = max(0, (1 - uncertainty) * (1 - sentiment))
//
// rounded to two decimals. High tension means the text reads both
// uncertain and emotionally negative; values above ~2.0 are extreme.
// Score is total over any string input.
func (s *Scorer) Score(text string) float64 {
	sentiment := s.sentiment(text)
	nti := (1 - uncertainty(text)) * (1 - sentiment)
	nti = math.Max(0, nti)
	return math.Round(nti*100) / 100
}

// uncertainty estimates narrative uncertainty in [0, 1] from linguistic
// markers: questions, conditional language, interruptions, and a
// cliffhanger ending.
func uncertainty(text string) float64 {
	lower := strings.ToLower(text)
	count := float64(sentenceCount(text))

	questions := float64(strings.Count(text, "?"))

	var conditionals float64
	for _, m := range conditionalMarkers {
		conditionals += float64(strings.Count(lower, m))
	}

	var interruptions float64
	for _, m := range interruptionMarkers {
		interruptions += float64(strings.Count(lower, m))
	}

	trimmed := strings.TrimSpace(text)
	cliffhanger := strings.HasSuffix(trimmed, "?") ||
		strings.HasSuffix(trimmed, "...") ||
		strings.HasSuffix(trimmed, "…")

	u := questions/count*0.4 + conditionals/count*0.3 + interruptions/count*0.2
	if cliffhanger {
		u += 0.1
	}
	return math.Min(1, u)
}

// sentenceCount splits on sentence terminators and floors at 1 so density
// calculations never divide by zero.
func sentenceCount(text string) int {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	n := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			n++
		}
	}
	if n < 1 {
		n = 1
	}
	return n
}
