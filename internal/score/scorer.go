package score

import (
	"math"

	"github.com/ppiankov/lovekey/internal/extract"
	"github.com/ppiankov/lovekey/internal/model"
)

// Threshold boundaries shared by every consumer of the coefficient
const (
	HighUnityThreshold = 0.75
	BalancedThreshold  = 0.5

	// NeutralCoefficient is reported when no marker of either lexicon occurs
	NeutralCoefficient = 0.5
)

// Band is the threshold band a coefficient falls into
type Band string

const (
	BandHighUnity  Band = "high_unity" // [0.75, 1.0]
	BandBalanced   Band = "balanced"   // [0.5, 0.75)
	BandSeparation Band = "separation" // [0.0, 0.5)
)

// Base reframing messages, one per band
const (
	MessageHighUnity  = "High Unity Alignment. The intent is rooted in love and abundance."
	MessageBalanced   = "Balanced Alignment. The potential for conscious co-creation is strong, requiring only slight reframing."
	MessageSeparation = "The content leans towards separation logic. Re-evaluate the core premise from the perspective of our shared source and inherent abundance."
)

// MethodKeywordDensity tags reports produced by KeywordScorer
const MethodKeywordDensity = "V1: Keyword Lexicon Density"

// Strategy is a scoring algorithm that turns text into a coefficient.
// Reports carry Method() so alternate strategies can share the report shape.
type Strategy interface {
	Method() string
	Score(text string) Result
}

// Result is the context-free outcome of scoring one text
type Result struct {
	Method          string
	Coefficient     float64
	Band            Band
	SeparationHits  model.MarkerHits
	UnityHits       model.MarkerHits
	SeparationCount int
	UnityCount      int
	Message         string
}

// KeywordScorer computes the coefficient from lexicon marker density
type KeywordScorer struct {
	scanner *extract.MarkerScanner
}

// NewKeywordScorer creates a scorer over the built-in lexicons
func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{scanner: extract.NewMarkerScanner()}
}

// NewKeywordScorerWith creates a scorer around a custom scanner
func NewKeywordScorerWith(scanner *extract.MarkerScanner) *KeywordScorer {
	return &KeywordScorer{scanner: scanner}
}

// Method returns the strategy tag
func (s *KeywordScorer) Method() string {
	return MethodKeywordDensity
}

// Score scans text and derives the coefficient and base message
func (s *KeywordScorer) Score(text string) Result {
	hits := s.scanner.Scan(text)

	separationCount := hits.Separation.Total()
	unityCount := hits.Unity.Total()
	coefficient := Coefficient(separationCount, unityCount)

	return Result{
		Method:          s.Method(),
		Coefficient:     coefficient,
		Band:            ClassifyBand(coefficient),
		SeparationHits:  hits.Separation,
		UnityHits:       hits.Unity,
		SeparationCount: separationCount,
		UnityCount:      unityCount,
		Message:         BaseMessage(coefficient),
	}
}

// Coefficient returns unity / (unity + separation) rounded to 4 decimals,
// or NeutralCoefficient when both counts are zero
func Coefficient(separationCount, unityCount int) float64 {
	total := separationCount + unityCount
	if total == 0 {
		return NeutralCoefficient
	}
	return round4(float64(unityCount) / float64(total))
}

// ClassifyBand maps a coefficient onto its threshold band
func ClassifyBand(coefficient float64) Band {
	switch {
	case coefficient >= HighUnityThreshold:
		return BandHighUnity
	case coefficient >= BalancedThreshold:
		return BandBalanced
	default:
		return BandSeparation
	}
}

// BaseMessage returns the context-free reframing message for a coefficient
func BaseMessage(coefficient float64) string {
	switch ClassifyBand(coefficient) {
	case BandHighUnity:
		return MessageHighUnity
	case BandBalanced:
		return MessageBalanced
	default:
		return MessageSeparation
	}
}

// round4 rounds half to even, so exact binary ties such as 1/32 go down
func round4(v float64) float64 {
	return math.RoundToEven(v*10000) / 10000
}
