// Package types provides type definitions for structured data used throughout the tenabot system.
package types

import (
	"encoding/json"
	"strings"
)

// ProfileRecord is the structured professional profile extracted from an
// uploaded resume. It is the extraction output and the renderer input.
// Records are treated as immutable once extraction has produced them.
type ProfileRecord struct {
	Phone    FlexString `json:"phone,omitempty"`
	Email    FlexString `json:"email,omitempty"`
	LinkedIn FlexString `json:"linkedin,omitempty"`
	GitHub   FlexString `json:"github,omitempty"`

	// PositionInferred is the primary role or career target inferred from the resume.
	PositionInferred FlexString `json:"position_inferred"`
	// EducationLevel is the highest attained credential, free text.
	EducationLevel FlexString `json:"education_level"`

	Skills      FlexList         `json:"skills"`
	CoreValues  FlexList         `json:"core_values"`
	WorkHistory []WorkEntry      `json:"work_history"`
	Education   []EducationEntry `json:"full_education"`
}

// WorkEntry represents a single job entry in the work history.
type WorkEntry struct {
	Title     FlexString `json:"title"`
	Company   FlexString `json:"company"`
	StartDate FlexString `json:"start_date"`
	EndDate   FlexString `json:"end_date"` // may be the literal "Present"
	Summary   FlexString `json:"summary"`
}

// EducationEntry represents a formal education entry.
type EducationEntry struct {
	Institution    FlexString `json:"institution"`
	Degree         FlexString `json:"degree"`
	FieldOfStudy   FlexString `json:"field_of_study"`
	GraduationDate FlexString `json:"graduation_date"`
}

// FlexString is a string field tolerant of upstream type drift. Generative
// backends occasionally emit numbers, booleans, nulls, or the literal string
// "None" where a string was requested; all of those decode to the empty
// string (semantically absent) instead of failing the unmarshal.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	str, ok := v.(string)
	if !ok {
		// number, bool, null, or nested structure: treat as absent
		*s = ""
		return nil
	}
	str = strings.TrimSpace(str)
	if strings.EqualFold(str, "none") {
		str = ""
	}
	*s = FlexString(str)
	return nil
}

// String returns the underlying string value.
func (s FlexString) String() string { return string(s) }

// IsEmpty reports whether the field is semantically absent.
func (s FlexString) IsEmpty() bool { return strings.TrimSpace(string(s)) == "" }

// FlexList is an ordered list of items coerced to text. Scalar items of the
// wrong type (numbers, booleans) are kept as their text form so the renderer
// can apply its own cleaning rules; nulls become empty strings; nested
// objects and arrays are dropped. Mixed-type lists never fail to decode.
type FlexList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *FlexList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// a scalar where a list was expected is treated as an empty list
		*l = nil
		return nil
	}
	items := make([]string, 0, len(raw))
	for _, r := range raw {
		items = append(items, coerceToText(r))
	}
	*l = items
	return nil
}

// coerceToText renders a raw JSON scalar as text. Uses json.Number to keep
// the model's original numeric literal (no float re-formatting).
func coerceToText(raw json.RawMessage) string {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		// null, object, array
		return ""
	}
}

// HasRequiredFields reports whether the record carries the two fields the
// extraction contract marks as required.
func (p *ProfileRecord) HasRequiredFields() bool {
	return !p.PositionInferred.IsEmpty() && !p.EducationLevel.IsEmpty()
}
