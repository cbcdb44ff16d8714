package contextual

import (
	"strings"

	"github.com/ppiankov/lovekey/internal/extract"
	"github.com/ppiankov/lovekey/internal/model"
)

// MinDetectionScore is the indicator density below which a text is
// classified as unknown
const MinDetectionScore = 0.1

// Indicator word lists per content category
var (
	FictionIndicators = []string{
		"chapter", "protagonist", "character", "plot", "story", "novel",
		"narrative", "scene", "dialogue", "narrator", "fiction",
	}
	HorrorIndicators = []string{
		"horror", "terror", "fear", "scream", "blood", "death", "monster",
		"nightmare", "haunted", "ghost", "zombie", "vampire", "demon",
	}
	ComedyIndicators = []string{
		"comedy", "humor", "joke", "funny", "satire", "parody", "irony",
		"sarcasm", "wit", "amusing", "hilarious", "laugh",
	}
	TechnicalIndicators = []string{
		"function", "class", "method", "algorithm", "implementation",
		"documentation", "api", "code", "syntax", "compile", "debug",
	}
	AcademicIndicators = []string{
		"abstract", "methodology", "hypothesis", "research", "study",
		"analysis", "conclusion", "bibliography", "citation", "peer-reviewed",
	}
	ArtisticIndicators = []string{
		"artistic", "creative", "expression", "art", "poetry", "prose",
		"metaphor", "symbolism", "imagery", "aesthetic",
	}
)

type category struct {
	contentType model.ContentType
	indicators  []string
}

// Evaluation order doubles as the tie-break: the earliest category wins
var categories = []category{
	{model.ContentFiction, FictionIndicators},
	{model.ContentHorror, HorrorIndicators},
	{model.ContentComedy, ComedyIndicators},
	{model.ContentTechnical, TechnicalIndicators},
	{model.ContentAcademic, AcademicIndicators},
	{model.ContentArtistic, ArtisticIndicators},
}

// Detector classifies text into a content type
type Detector struct{}

// NewDetector creates a new detector
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the content context of text. A non-empty user context is
// trusted outright and no scanning takes place.
func (d *Detector) Detect(text string, user *model.UserContext) model.ContentContext {
	if !user.IsZero() {
		return fromUserContext(user)
	}

	folded := extract.Fold(text)

	contentType, confidence := detectContentType(folded)
	genre := detectGenre(folded, contentType)

	return model.ContentContext{
		ContentType:     contentType,
		Genre:           genre,
		Intent:          detectIntent(contentType),
		CreativeLicense: HasCreativeLicense(contentType, genre),
		Confidence:      confidence,
	}
}

// Scores returns the indicator density of every category, keyed by type
func (d *Detector) Scores(text string) map[model.ContentType]float64 {
	folded := extract.Fold(text)
	scores := make(map[model.ContentType]float64, len(categories))
	for _, c := range categories {
		scores[c.contentType] = indicatorScore(folded, c.indicators)
	}
	return scores
}

func detectContentType(folded string) (model.ContentType, float64) {
	best := model.ContentUnknown
	bestScore := 0.0

	for _, c := range categories {
		s := indicatorScore(folded, c.indicators)
		if s > bestScore {
			best = c.contentType
			bestScore = s
		}
	}

	if bestScore < MinDetectionScore {
		return model.ContentUnknown, 0.0
	}
	if bestScore > 1.0 {
		bestScore = 1.0
	}
	return best, bestScore
}

// indicatorScore is the fraction of distinct indicators present in text
func indicatorScore(folded string, indicators []string) float64 {
	if len(indicators) == 0 {
		return 0.0
	}

	matches := 0
	for _, ind := range indicators {
		if strings.Contains(folded, ind) {
			matches++
		}
	}
	return float64(matches) / float64(len(indicators))
}

func containsAny(folded string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(folded, ind) {
			return true
		}
	}
	return false
}

func detectGenre(folded string, contentType model.ContentType) string {
	if contentType != model.ContentFiction && contentType != model.ContentArtistic {
		return ""
	}
	if containsAny(folded, HorrorIndicators) {
		return "horror"
	}
	if containsAny(folded, ComedyIndicators) {
		return "comedy"
	}
	return ""
}

func detectIntent(contentType model.ContentType) string {
	switch contentType {
	case model.ContentFiction, model.ContentArtistic, model.ContentHorror:
		return "artistic"
	case model.ContentTechnical:
		return "educational"
	case model.ContentAcademic:
		return "research"
	}
	return ""
}

// HasCreativeLicense reports whether suggestions must be suppressed for a
// content type / genre pair
func HasCreativeLicense(contentType model.ContentType, genre string) bool {
	if contentType.IsCreative() {
		return true
	}
	switch strings.ToLower(genre) {
	case "horror", "comedy", "satire":
		return true
	}
	return false
}

func fromUserContext(user *model.UserContext) model.ContentContext {
	return model.ContentContext{
		ContentType:     model.ParseContentType(user.Type),
		Genre:           user.Genre,
		Intent:          user.Intent,
		CreativeLicense: user.CreativeLicense,
		Confidence:      1.0,
		Metadata:        user.Metadata(),
	}
}
