package contextual

import (
	"fmt"
	"strings"

	"github.com/ppiankov/lovekey/internal/model"
	"github.com/ppiankov/lovekey/internal/score"
)

// Reframing thresholds. Business and technical text gets the looser bar.
const (
	ProfessionalReframingThreshold = 0.5
	GeneralReframingThreshold      = 0.3

	// LowConfidenceThreshold triggers the "provide explicit context" notes
	LowConfidenceThreshold = 0.5
)

// Contextualizer applies content context to a coefficient
type Contextualizer struct {
	detector *Detector
}

// NewContextualizer creates a contextualizer with the default detector
func NewContextualizer() *Contextualizer {
	return &Contextualizer{detector: NewDetector()}
}

// Detector returns the underlying detector
func (c *Contextualizer) Detector() *Detector {
	return c.detector
}

// Analyze detects the context of text and contextualizes coefficient
func (c *Contextualizer) Analyze(coefficient float64, text string, user *model.UserContext) model.ContextInfo {
	return c.Contextualize(coefficient, c.detector.Detect(text, user))
}

// Contextualize builds the context block for an already detected context
func (c *Contextualizer) Contextualize(coefficient float64, ctx model.ContentContext) model.ContextInfo {
	return model.ContextInfo{
		RawCoefficient:           coefficient,
		Context:                  ctx,
		Interpretation:           Interpret(coefficient, ctx),
		Notes:                    Notes(coefficient, ctx),
		ReframingAppropriate:     ShouldSuggestReframing(coefficient, ctx),
		CreativeLicenseRespected: ctx.CreativeLicense,
	}
}

type flavor int

const (
	flavorArtistic flavor = iota
	flavorHorror
	flavorComedy
)

// creativeFlavor names the genre that a creative-license message speaks to
func creativeFlavor(ctx model.ContentContext) flavor {
	genre := strings.ToLower(ctx.Genre)
	switch {
	case ctx.ContentType == model.ContentHorror || genre == "horror":
		return flavorHorror
	case ctx.ContentType == model.ContentComedy || ctx.ContentType == model.ContentSatire,
		genre == "comedy" || genre == "satire":
		return flavorComedy
	}
	return flavorArtistic
}

// Interpret renders the context-aware reading of a coefficient
func Interpret(coefficient float64, ctx model.ContentContext) string {
	if ctx.CreativeLicense {
		switch creativeFlavor(ctx) {
		case flavorHorror:
			return fmt.Sprintf("Unity Coefficient: %.2f (Genre: Horror Fiction)\n"+
				"Low coefficient expected for this genre. Creative license respected.", coefficient)
		case flavorComedy:
			return fmt.Sprintf("Unity Coefficient: %.2f (Genre: Comedy/Satire)\n"+
				"Coefficient reflects comedic/satirical intent. Creative expression honored.", coefficient)
		default:
			return fmt.Sprintf("Unity Coefficient: %.2f (Artistic Expression)\n"+
				"Creative license recognized. No restrictions applied.", coefficient)
		}
	}

	switch score.ClassifyBand(coefficient) {
	case score.BandHighUnity:
		return fmt.Sprintf("Unity Coefficient: %.2f - High unity alignment", coefficient)
	case score.BandBalanced:
		return fmt.Sprintf("Unity Coefficient: %.2f - Balanced alignment", coefficient)
	default:
		return fmt.Sprintf("Unity Coefficient: %.2f - Separation-leaning patterns detected", coefficient)
	}
}

// Notes returns short qualitative observations about the analysis
func Notes(coefficient float64, ctx model.ContentContext) []string {
	notes := make([]string, 0, 6)

	if ctx.CreativeLicense {
		notes = append(notes,
			"✓ Creative license respected",
			"✓ No restrictions applied",
			"✓ Artistic expression honored",
		)

		switch creativeFlavor(ctx) {
		case flavorHorror:
			notes = append(notes, "Note: Horror genre naturally employs separation themes for emotional impact")
		case flavorComedy:
			notes = append(notes, "Note: Comedy/satire often uses contrast and conflict for humorous effect")
		}
	} else {
		switch score.ClassifyBand(coefficient) {
		case score.BandSeparation:
			notes = append(notes,
				"Observation: Content shows separation-based patterns",
				"Suggestion: Alternative framing available if desired",
			)
		case score.BandHighUnity:
			notes = append(notes,
				"Observation: Strong unity consciousness present",
				"Recognition: Content promotes collaborative awareness",
			)
		}
	}

	if ctx.Confidence < LowConfidenceThreshold {
		notes = append(notes,
			fmt.Sprintf("Note: Context detection confidence is %.0f%%", ctx.Confidence*100),
			"Tip: You can provide explicit context for more accurate analysis",
		)
	}

	return notes
}

// ShouldSuggestReframing decides whether a rewording may be offered.
// Creative content never gets one.
func ShouldSuggestReframing(coefficient float64, ctx model.ContentContext) bool {
	if ctx.CreativeLicense {
		return false
	}

	switch ctx.ContentType {
	case model.ContentBusiness, model.ContentTechnical:
		return coefficient < ProfessionalReframingThreshold
	}
	return coefficient < GeneralReframingThreshold
}

// ComposeReframing rewrites the base message using the context block
func ComposeReframing(base string, info model.ContextInfo) string {
	if info.Context.CreativeLicense {
		return fmt.Sprintf("%s\n\n"+
			"Creative Expression Recognized:\n"+
			"Your artistic vision is respected. No reframing suggested.\n"+
			"The consciousness patterns detected are appropriate for %s content.",
			info.Interpretation, info.Context.ContentType)
	}

	if info.ReframingAppropriate {
		return fmt.Sprintf("%s\n\n"+
			"Observation: %s\n\n"+
			"Note: This is informational only. You have complete sovereignty "+
			"over your expression. Alternative framings are available if desired.",
			info.Interpretation, base)
	}

	return fmt.Sprintf("%s\n\n%s", info.Interpretation, base)
}
