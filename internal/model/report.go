package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrCoefficientOutOfRange is returned when a report is built with a
// coefficient outside [0, 1]
var ErrCoefficientOutOfRange = errors.New("coefficient out of range [0, 1]")

// Report is the immutable result of one analysis.
// Build it with NewReport; the zero value is not a valid report.
type Report struct {
	coefficient        float64
	analysisMethod     string
	separationHits     MarkerHits
	unityHits          MarkerHits
	consciousReframing string
	contextInfo        *ContextInfo
}

// ContextInfo is the contextual analysis block attached to a report
type ContextInfo struct {
	RawCoefficient           float64        `json:"raw_coefficient"`
	Context                  ContentContext `json:"context"`
	Interpretation           string         `json:"interpretation"`
	Notes                    []string       `json:"notes"`
	ReframingAppropriate     bool           `json:"reframing_appropriate"`
	CreativeLicenseRespected bool           `json:"creative_license_respected"`
}

// ReportDocument is the wire shape of a Report
type ReportDocument struct {
	Coefficient        float64      `json:"coefficient" jsonschema:"minimum=0,maximum=1,description=Unity coefficient from 0 (separation) to 1 (unity)"`
	AnalysisMethod     string       `json:"analysis_method" jsonschema:"description=The scoring strategy that produced the coefficient"`
	SeparationHits     MarkerHits   `json:"separation_hits" jsonschema:"description=Separation markers found and their counts"`
	UnityHits          MarkerHits   `json:"unity_hits" jsonschema:"description=Unity markers found and their counts"`
	ConsciousReframing string       `json:"conscious_reframing" jsonschema:"description=Human-readable interpretation and reframing observation"`
	ContextInfo        *ContextInfo `json:"context_info,omitempty" jsonschema:"description=Present only when context analysis ran"`
}

// NewReport validates its inputs and builds a Report.
// Hit maps are copied; a nil context block means context analysis did not run.
func NewReport(coefficient float64, method string, separation, unity MarkerHits, reframing string, info *ContextInfo) (*Report, error) {
	if math.IsNaN(coefficient) || coefficient < 0 || coefficient > 1 {
		return nil, fmt.Errorf("new report: %w: %v", ErrCoefficientOutOfRange, coefficient)
	}

	r := &Report{
		coefficient:        coefficient,
		analysisMethod:     method,
		separationHits:     separation.Clone(),
		unityHits:          unity.Clone(),
		consciousReframing: reframing,
	}
	if info != nil {
		r.contextInfo = info.clone()
	}
	return r, nil
}

// Coefficient returns the unity coefficient in [0, 1]
func (r *Report) Coefficient() float64 { return r.coefficient }

// AnalysisMethod returns the scoring strategy tag
func (r *Report) AnalysisMethod() string { return r.analysisMethod }

// SeparationHits returns a copy of the separation hit map
func (r *Report) SeparationHits() MarkerHits { return r.separationHits.Clone() }

// UnityHits returns a copy of the unity hit map
func (r *Report) UnityHits() MarkerHits { return r.unityHits.Clone() }

// ConsciousReframing returns the final message
func (r *Report) ConsciousReframing() string { return r.consciousReframing }

// ContextInfo returns a copy of the context block, or nil when context
// analysis was not requested
func (r *Report) ContextInfo() *ContextInfo {
	if r.contextInfo == nil {
		return nil
	}
	return r.contextInfo.clone()
}

// Document returns the serializable view of the report
func (r *Report) Document() ReportDocument {
	return ReportDocument{
		Coefficient:        r.coefficient,
		AnalysisMethod:     r.analysisMethod,
		SeparationHits:     r.SeparationHits(),
		UnityHits:          r.UnityHits(),
		ConsciousReframing: r.consciousReframing,
		ContextInfo:        r.ContextInfo(),
	}
}

// MarshalJSON implements json.Marshaler
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Document())
}

// UnmarshalJSON implements json.Unmarshaler and applies the same
// validation as NewReport
func (r *Report) UnmarshalJSON(data []byte) error {
	var doc ReportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	built, err := NewReport(doc.Coefficient, doc.AnalysisMethod, doc.SeparationHits, doc.UnityHits, doc.ConsciousReframing, doc.ContextInfo)
	if err != nil {
		return err
	}
	*r = *built
	return nil
}

func (c *ContextInfo) clone() *ContextInfo {
	out := *c
	if c.Notes != nil {
		out.Notes = append([]string(nil), c.Notes...)
	}
	if c.Context.Metadata != nil {
		out.Context.Metadata = make(map[string]string, len(c.Context.Metadata))
		for k, v := range c.Context.Metadata {
			out.Context.Metadata[k] = v
		}
	}
	return &out
}

// LLMSuggestion contains an optional LLM-generated rewording.
// It is produced after scoring and never changes the report.
type LLMSuggestion struct {
	Enabled               bool     `json:"enabled"`
	Provider              string   `json:"provider,omitempty"`
	Model                 string   `json:"model,omitempty"`
	Suggestion            string   `json:"suggestion,omitempty"`
	OriginalCoefficient   float64  `json:"original_coefficient"`
	SuggestionCoefficient float64  `json:"suggestion_coefficient,omitempty"`
	Warnings              []string `json:"warnings,omitempty"`
}
