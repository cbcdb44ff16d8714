package model

import "strings"

// ContentType categorizes the kind of text being analyzed
type ContentType string

const (
	ContentFiction      ContentType = "fiction"
	ContentHorror       ContentType = "horror"
	ContentComedy       ContentType = "comedy"
	ContentSatire       ContentType = "satire"
	ContentTechnical    ContentType = "technical"
	ContentBusiness     ContentType = "business"
	ContentPersonal     ContentType = "personal"
	ContentAcademic     ContentType = "academic"
	ContentSpiritual    ContentType = "spiritual"
	ContentArtistic     ContentType = "artistic"
	ContentJournalistic ContentType = "journalistic"
	ContentUnknown      ContentType = "unknown"
)

// ContentTypes lists every known content type in declaration order
var ContentTypes = []ContentType{
	ContentFiction, ContentHorror, ContentComedy, ContentSatire,
	ContentTechnical, ContentBusiness, ContentPersonal, ContentAcademic,
	ContentSpiritual, ContentArtistic, ContentJournalistic, ContentUnknown,
}

// ParseContentType maps a raw type string onto the enumeration.
// Unrecognized values degrade to ContentUnknown.
func ParseContentType(raw string) ContentType {
	candidate := ContentType(strings.ToLower(strings.TrimSpace(raw)))
	for _, ct := range ContentTypes {
		if ct == candidate {
			return ct
		}
	}
	return ContentUnknown
}

func (c ContentType) String() string {
	return string(c)
}

// IsCreative reports whether the type carries creative license on its own
func (c ContentType) IsCreative() bool {
	switch c {
	case ContentFiction, ContentHorror, ContentComedy, ContentSatire, ContentArtistic:
		return true
	}
	return false
}

// UserContext is an explicit, caller-supplied description of the text.
// When present it replaces heuristic detection entirely.
type UserContext struct {
	Type            string `json:"type,omitempty" yaml:"type,omitempty"`
	Genre           string `json:"genre,omitempty" yaml:"genre,omitempty"`
	Intent          string `json:"intent,omitempty" yaml:"intent,omitempty"`
	CreativeLicense bool   `json:"creative_license,omitempty" yaml:"creative_license,omitempty"`
}

// IsZero reports whether no field was supplied
func (u *UserContext) IsZero() bool {
	return u == nil || *u == UserContext{}
}

// Metadata returns the supplied fields as a flat map
func (u *UserContext) Metadata() map[string]string {
	if u.IsZero() {
		return nil
	}

	meta := make(map[string]string)
	if u.Type != "" {
		meta["type"] = u.Type
	}
	if u.Genre != "" {
		meta["genre"] = u.Genre
	}
	if u.Intent != "" {
		meta["intent"] = u.Intent
	}
	if u.CreativeLicense {
		meta["creative_license"] = "true"
	}
	return meta
}

// ContentContext is the detected (or user-declared) context of a text
type ContentContext struct {
	ContentType     ContentType       `json:"content_type"`
	Genre           string            `json:"genre,omitempty"`
	Intent          string            `json:"intent,omitempty"`
	CreativeLicense bool              `json:"creative_license"`
	Confidence      float64           `json:"confidence"` // 0.0 to 1.0
	Metadata        map[string]string `json:"metadata,omitempty"`
}
