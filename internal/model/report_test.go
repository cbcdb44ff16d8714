package model

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport_Structure(t *testing.T) {
	report, err := NewReport(0.75, "V1: Keyword Lexicon Density",
		MarkerHits{"fear": 1}, MarkerHits{"love": 3}, "Test reframing", nil)
	require.NoError(t, err)

	assert.Equal(t, 0.75, report.Coefficient())
	assert.Equal(t, "V1: Keyword Lexicon Density", report.AnalysisMethod())
	assert.Equal(t, MarkerHits{"fear": 1}, report.SeparationHits())
	assert.Equal(t, MarkerHits{"love": 3}, report.UnityHits())
	assert.Equal(t, "Test reframing", report.ConsciousReframing())
	assert.Nil(t, report.ContextInfo())
}

func TestNewReport_CoefficientBounds(t *testing.T) {
	for _, c := range []float64{1.5, -0.1, math.NaN(), math.Inf(1)} {
		_, err := NewReport(c, "Test", nil, nil, "Test", nil)
		if !errors.Is(err, ErrCoefficientOutOfRange) {
			t.Errorf("Expected ErrCoefficientOutOfRange for %v, got %v", c, err)
		}
	}

	for _, c := range []float64{0, 0.5, 1} {
		_, err := NewReport(c, "Test", nil, nil, "Test", nil)
		assert.NoError(t, err, "coefficient %v", c)
	}
}

func TestNewReport_IsolatedFromCallerMutation(t *testing.T) {
	sep := MarkerHits{"fear": 2}
	info := &ContextInfo{Notes: []string{"a"}, Context: ContentContext{Metadata: map[string]string{"type": "fiction"}}}

	report, err := NewReport(0.2, "Test", sep, MarkerHits{}, "msg", info)
	require.NoError(t, err)

	sep["fear"] = 99
	info.Notes[0] = "changed"
	info.Context.Metadata["type"] = "changed"

	assert.Equal(t, 2, report.SeparationHits()["fear"])
	assert.Equal(t, "a", report.ContextInfo().Notes[0])
	assert.Equal(t, "fiction", report.ContextInfo().Context.Metadata["type"])

	got := report.UnityHits()
	got["love"] = 1
	assert.Empty(t, report.UnityHits())
}

func TestReport_JSONFieldNames(t *testing.T) {
	report, err := NewReport(0.5, "Test", nil, nil, "neutral", nil)
	require.NoError(t, err)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"coefficient", "analysis_method", "separation_hits", "unity_hits", "conscious_reframing"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "context_info")
	assert.Equal(t, "{}", string(raw["separation_hits"]))
	assert.Equal(t, "{}", string(raw["unity_hits"]))
}

func TestReport_JSONRoundTrip(t *testing.T) {
	info := &ContextInfo{
		RawCoefficient: 0.25,
		Context: ContentContext{
			ContentType: ContentBusiness,
			Confidence:  1,
			Metadata:    map[string]string{"type": "business"},
		},
		Interpretation:       "Unity Coefficient: 0.25 - Separation-leaning patterns detected",
		Notes:                []string{"Observation: Content shows separation-based patterns"},
		ReframingAppropriate: true,
	}
	original, err := NewReport(0.25, "Test", MarkerHits{"enemy": 3}, MarkerHits{"will": 1}, "msg", info)
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.Document(), decoded.Document())
}

func TestReport_UnmarshalRejectsOutOfRange(t *testing.T) {
	var r Report
	err := json.Unmarshal([]byte(`{"coefficient":1.5,"analysis_method":"x","separation_hits":{},"unity_hits":{},"conscious_reframing":""}`), &r)
	assert.True(t, errors.Is(err, ErrCoefficientOutOfRange))
}

func TestParseContentType(t *testing.T) {
	tests := map[string]ContentType{
		"fiction":   ContentFiction,
		"Horror":    ContentHorror,
		" satire ":  ContentSatire,
		"business":  ContentBusiness,
		"":          ContentUnknown,
		"limerick":  ContentUnknown,
		"technical": ContentTechnical,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseContentType(raw), "input %q", raw)
	}
}

func TestUserContext_IsZeroAndMetadata(t *testing.T) {
	var nilCtx *UserContext
	assert.True(t, nilCtx.IsZero())
	assert.True(t, (&UserContext{}).IsZero())
	assert.Nil(t, nilCtx.Metadata())

	uc := &UserContext{Type: "fiction", Genre: "adventure", CreativeLicense: true}
	assert.False(t, uc.IsZero())
	assert.Equal(t, map[string]string{
		"type":             "fiction",
		"genre":            "adventure",
		"creative_license": "true",
	}, uc.Metadata())
}

func TestMarkerHits(t *testing.T) {
	h := MarkerHits{}
	h.Add("love", 2)
	h.Add("fear", 0)
	h.Add("peace", 2)
	h.Add("unity", 5)

	assert.Equal(t, 9, h.Total())
	assert.NotContains(t, h, "fear")
	assert.Equal(t, []MarkerCount{
		{Marker: "unity", Count: 5},
		{Marker: "love", Count: 2},
		{Marker: "peace", Count: 2},
	}, h.Ranked())

	var nilHits MarkerHits
	assert.NotNil(t, nilHits.Clone())
	assert.Equal(t, 0, nilHits.Total())
}
