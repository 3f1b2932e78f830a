// Package schema defines the extraction contract: the exact shape of the
// structured profile the generative backend must return. One field table
// drives both the Gemini response schema and the JSON Schema document used
// to validate the returned payload.
package schema

import (
	"encoding/json"

	"github.com/google/generative-ai-go/genai"
)

// RootKey is the single named root object wrapping the profile. Structured
// output backends require an object root rather than a bare record, and the
// wrapper also disambiguates responses that omit it (see extraction).
const RootKey = "resume_data"

// contactMaxLengths bounds the free-text contact fields.
var contactMaxLengths = map[string]int{
	"phone":    50,
	"email":    150,
	"linkedin": 255,
	"github":   255,
}

// requiredFields are the profile fields the contract marks as required.
var requiredFields = []string{"position_inferred", "education_level", "skills", "core_values", "work_history", "full_education"}

// ResponseSchema returns the genai schema descriptor sent with the
// extraction request. Construction is a static transform and cannot fail.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{RootKey},
		Properties: map[string]*genai.Schema{
			RootKey: profileSchema(),
		},
	}
}

func profileSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: requiredFields,
		Properties: map[string]*genai.Schema{
			"phone":    {Type: genai.TypeString, Nullable: true, Description: "Contact phone number."},
			"email":    {Type: genai.TypeString, Nullable: true, Description: "Contact email address."},
			"linkedin": {Type: genai.TypeString, Nullable: true, Description: "LinkedIn profile URL."},
			"github":   {Type: genai.TypeString, Nullable: true, Description: "GitHub profile URL."},
			"position_inferred": {
				Type:        genai.TypeString,
				Description: "The primary job role or career target inferred from the resume.",
			},
			"education_level": {
				Type:        genai.TypeString,
				Description: "Highest education level, e.g., 'Master', 'BSc in Computer Science'.",
			},
			"skills": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of 10-15 most important technical and soft skills.",
			},
			"core_values": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of 3-5 core professional values/traits inferred from the text.",
			},
			"work_history": {
				Type:        genai.TypeArray,
				Items:       workEntrySchema(),
				Description: "Detailed list of work experiences, most relevant first.",
			},
			"full_education": {
				Type:        genai.TypeArray,
				Items:       educationEntrySchema(),
				Description: "All formal education entries.",
			},
		},
	}
}

func workEntrySchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"title", "company", "start_date", "end_date", "summary"},
		Properties: map[string]*genai.Schema{
			"title":      {Type: genai.TypeString, Description: "Job title, e.g., 'Software Engineer'."},
			"company":    {Type: genai.TypeString, Description: "Employer name."},
			"start_date": {Type: genai.TypeString, Description: "Start date, e.g., '01/2020'."},
			"end_date":   {Type: genai.TypeString, Description: "End date, or 'Present'."},
			"summary":    {Type: genai.TypeString, Description: "2-3 key accomplishments/responsibilities."},
		},
	}
}

func educationEntrySchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"institution", "degree", "field_of_study", "graduation_date"},
		Properties: map[string]*genai.Schema{
			"institution":     {Type: genai.TypeString},
			"degree":          {Type: genai.TypeString},
			"field_of_study":  {Type: genai.TypeString},
			"graduation_date": {Type: genai.TypeString},
		},
	}
}

// ContractJSON returns the JSON Schema document used to validate payloads
// returned by the backend. Every object level forbids unrecognized fields
// so the backend cannot silently introduce divergent shapes. The document
// accepts both the wrapped and the unwrapped root (the backend wavers
// between the two across integrations).
func ContractJSON() []byte {
	scalar := func(desc string, maxLen int) map[string]any {
		s := map[string]any{
			// tolerate upstream type drift; the data model coerces
			"type":        []string{"string", "number", "boolean", "null"},
			"description": desc,
		}
		if maxLen > 0 {
			s["maxLength"] = maxLen
		}
		return s
	}
	looseList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": []string{"string", "number", "boolean", "null"}},
	}
	workEntry := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"title":      scalar("", 0),
			"company":    scalar("", 0),
			"start_date": scalar("", 0),
			"end_date":   scalar("", 0),
			"summary":    scalar("", 0),
		},
	}
	educationEntry := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"institution":     scalar("", 0),
			"degree":          scalar("", 0),
			"field_of_study":  scalar("", 0),
			"graduation_date": scalar("", 0),
		},
	}
	profile := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"phone":             scalar("Contact phone number.", contactMaxLengths["phone"]),
			"email":             scalar("Contact email address.", contactMaxLengths["email"]),
			"linkedin":          scalar("LinkedIn profile URL.", contactMaxLengths["linkedin"]),
			"github":            scalar("GitHub profile URL.", contactMaxLengths["github"]),
			"position_inferred": scalar("Primary role or career target.", 0),
			"education_level":   scalar("Highest attained credential.", 0),
			"skills":            looseList,
			"core_values":       looseList,
			"work_history":      map[string]any{"type": "array", "items": workEntry},
			"full_education":    map[string]any{"type": "array", "items": educationEntry},
		},
	}
	root := map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"title":   "ResumeExtraction",
		"oneOf": []any{
			map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []string{RootKey},
				"properties":           map[string]any{RootKey: profile},
			},
			profile,
		},
	}

	data, err := json.Marshal(root)
	if err != nil {
		// the document is built from static literals; Marshal cannot fail
		panic(err)
	}
	return data
}
