package extract

import (
	"strings"

	"github.com/ppiankov/lovekey/internal/lexicon"
	"github.com/ppiankov/lovekey/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkerScanner counts lexicon markers in text.
//
// Markers are matched as raw, non-overlapping substrings of the
// lower-cased text. There is no word-boundary check, so a marker embedded
// in a longer word is counted too ("end" inside "endless").
type MarkerScanner struct {
	separation *lexicon.Lexicon
	unity      *lexicon.Lexicon
}

// Hits holds the per-lexicon marker counts of one scan
type Hits struct {
	Separation model.MarkerHits
	Unity      model.MarkerHits
}

// NewMarkerScanner creates a scanner over the built-in lexicons
func NewMarkerScanner() *MarkerScanner {
	return NewMarkerScannerWith(lexicon.Separation, lexicon.Unity)
}

// NewMarkerScannerWith creates a scanner over custom lexicons
func NewMarkerScannerWith(separation, unity *lexicon.Lexicon) *MarkerScanner {
	return &MarkerScanner{
		separation: separation,
		unity:      unity,
	}
}

// Scan counts every marker of both lexicons in text
func (s *MarkerScanner) Scan(text string) Hits {
	folded := Fold(text)

	return Hits{
		Separation: countMarkers(folded, s.separation),
		Unity:      countMarkers(folded, s.unity),
	}
}

// Fold lower-cases text for case-insensitive matching
func Fold(text string) string {
	// Casers keep state and must not be shared across goroutines
	return cases.Lower(language.Und).String(text)
}

func countMarkers(folded string, lex *lexicon.Lexicon) model.MarkerHits {
	hits := make(model.MarkerHits)
	lex.Each(func(marker string) {
		hits.Add(marker, strings.Count(folded, marker))
	})
	return hits
}
