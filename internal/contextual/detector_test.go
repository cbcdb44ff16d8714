package contextual

import (
	"testing"

	"github.com/ppiankov/lovekey/internal/model"
	"github.com/stretchr/testify/assert"
)

const (
	horrorText = `Chapter 1: The Nightmare Begins

The blood-soaked corridor stretched endlessly before her. Sarah's heart
pounded with terror as the monster's footsteps echoed closer. Death seemed
inevitable. Fear consumed every thought. The nightmare had become reality.`

	comedyText = `The politician's promises were so ridiculous, even his own lies started
laughing at him. It was a comedy of errors, a satirical masterpiece of
incompetence and absurdity.`

	technicalText = `This function implements the binary search algorithm to find elements
in a sorted array. The algorithm divides the search space in half with
each iteration, achieving O(log n) time complexity.`

	businessText = `We need to dominate the competition and crush our rivals. This is a
zero-sum game where we must win at all costs. Our enemies in the market
will not show mercy, so neither should we.`
)

func TestDetector_Horror(t *testing.T) {
	ctx := NewDetector().Detect(horrorText, nil)

	assert.Equal(t, model.ContentHorror, ctx.ContentType)
	assert.InDelta(t, 6.0/13.0, ctx.Confidence, 1e-9)
	assert.Equal(t, "artistic", ctx.Intent)
	assert.Empty(t, ctx.Genre)
	assert.True(t, ctx.CreativeLicense)
	assert.Nil(t, ctx.Metadata)
}

func TestDetector_Comedy(t *testing.T) {
	ctx := NewDetector().Detect(comedyText, nil)

	assert.Equal(t, model.ContentComedy, ctx.ContentType)
	assert.InDelta(t, 2.0/12.0, ctx.Confidence, 1e-9)
	assert.Empty(t, ctx.Intent)
	assert.True(t, ctx.CreativeLicense)
}

func TestDetector_Technical(t *testing.T) {
	ctx := NewDetector().Detect(technicalText, nil)

	assert.Equal(t, model.ContentTechnical, ctx.ContentType)
	assert.Equal(t, "educational", ctx.Intent)
	assert.False(t, ctx.CreativeLicense)
	assert.InDelta(t, 2.0/11.0, ctx.Confidence, 1e-9)
}

func TestDetector_UnknownBelowFloor(t *testing.T) {
	for _, text := range []string{"", businessText, "The violent storm destroyed everything in its path."} {
		ctx := NewDetector().Detect(text, nil)
		assert.Equal(t, model.ContentUnknown, ctx.ContentType, "text %q", text)
		assert.Equal(t, 0.0, ctx.Confidence)
		assert.False(t, ctx.CreativeLicense)
		assert.Empty(t, ctx.Intent)
	}
}

func TestDetector_GenreRefinement(t *testing.T) {
	tests := []struct {
		text        string
		contentType model.ContentType
		genre       string
	}{
		{"Chapter one of the novel: the ghost story", model.ContentFiction, "horror"},
		{"The protagonist tells a funny story in this chapter", model.ContentFiction, "comedy"},
		{"The poetry is full of metaphor and imagery", model.ContentArtistic, ""},
		{"The poetry is full of metaphor, imagery, and a haunted joke", model.ContentArtistic, "horror"},
	}

	for _, tt := range tests {
		ctx := NewDetector().Detect(tt.text, nil)
		assert.Equal(t, tt.contentType, ctx.ContentType, "text %q", tt.text)
		assert.Equal(t, tt.genre, ctx.Genre, "text %q", tt.text)
		assert.Equal(t, "artistic", ctx.Intent)
		assert.True(t, ctx.CreativeLicense)
	}
}

func TestDetector_UserContextOverrides(t *testing.T) {
	user := &model.UserContext{Type: "fiction", Genre: "adventure", CreativeLicense: true}
	ctx := NewDetector().Detect("The violent storm destroyed everything in its path.", user)

	assert.Equal(t, model.ContentFiction, ctx.ContentType)
	assert.Equal(t, "adventure", ctx.Genre)
	assert.True(t, ctx.CreativeLicense)
	assert.Equal(t, 1.0, ctx.Confidence)
	assert.Equal(t, "fiction", ctx.Metadata["type"])
}

func TestDetector_UserContextTrustedVerbatim(t *testing.T) {
	// No scanning happens: horror text declared as business stays business,
	// and creative license is taken as supplied
	user := &model.UserContext{Type: "business"}
	ctx := NewDetector().Detect(horrorText, user)

	assert.Equal(t, model.ContentBusiness, ctx.ContentType)
	assert.False(t, ctx.CreativeLicense)
	assert.Empty(t, ctx.Intent)
}

func TestDetector_UserContextUnknownType(t *testing.T) {
	ctx := NewDetector().Detect("text", &model.UserContext{Type: "limerick", Intent: "fun"})

	assert.Equal(t, model.ContentUnknown, ctx.ContentType)
	assert.Equal(t, "fun", ctx.Intent)
	assert.Equal(t, 1.0, ctx.Confidence)
}

func TestDetector_EmptyUserContextFallsBackToDetection(t *testing.T) {
	ctx := NewDetector().Detect(technicalText, &model.UserContext{})

	assert.Equal(t, model.ContentTechnical, ctx.ContentType)
	assert.Less(t, ctx.Confidence, 1.0)
}

func TestDetector_Scores(t *testing.T) {
	scores := NewDetector().Scores(horrorText)

	assert.Len(t, scores, 6)
	assert.InDelta(t, 6.0/13.0, scores[model.ContentHorror], 1e-9)
	assert.InDelta(t, 1.0/11.0, scores[model.ContentFiction], 1e-9)
}

func TestHasCreativeLicense(t *testing.T) {
	assert.True(t, HasCreativeLicense(model.ContentSatire, ""))
	assert.True(t, HasCreativeLicense(model.ContentArtistic, ""))
	assert.True(t, HasCreativeLicense(model.ContentUnknown, "horror"))
	assert.True(t, HasCreativeLicense(model.ContentBusiness, "satire"))
	assert.False(t, HasCreativeLicense(model.ContentBusiness, ""))
	assert.False(t, HasCreativeLicense(model.ContentTechnical, "adventure"))
}
