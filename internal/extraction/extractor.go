package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nazrawi/tenabot/internal/llm"
	"github.com/nazrawi/tenabot/internal/schema"
	"github.com/nazrawi/tenabot/internal/types"
)

// systemInstruction frames the extraction task for the model.
const systemInstruction = "You are a professional Resume Parsing and Tailoring AI. " +
	"Your primary goal is to extract structured JSON data from the resume. " +
	"If a job description is provided, prioritize and emphasize skills, " +
	"experience, and achievements that are most relevant to that description. " +
	"Ensure the output strictly adheres to the provided JSON schema."

// Orchestrator performs a single schema-constrained extraction per call.
// It never retries; retry policy, if any, belongs to the pipeline.
type Orchestrator struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewOrchestrator creates an Orchestrator around an LLM client.
func NewOrchestrator(client llm.Client) *Orchestrator {
	return &Orchestrator{client: client, tier: llm.TierAdvanced}
}

// Extract sends resumeText (optionally biased toward jobDescription) to the
// generative backend and decodes the response into a ProfileRecord.
func (o *Orchestrator) Extract(ctx context.Context, resumeText, jobDescription string) (*types.ProfileRecord, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &Error{Message: "resume text is empty"}
	}

	parts := buildEnvelope(resumeText, jobDescription)

	raw, err := o.client.GenerateStructured(ctx, systemInstruction, parts, schema.ResponseSchema(), o.tier)
	if err != nil {
		return nil, &Error{Message: "generative backend call failed", Cause: err}
	}

	return decodeRecord([]byte(raw))
}

// buildEnvelope assembles the prompt content: the bias block, when present,
// is placed ahead of the resume text so tailoring directives take priority.
func buildEnvelope(resumeText, jobDescription string) []string {
	var sb strings.Builder
	if bias := strings.TrimSpace(jobDescription); bias != "" {
		sb.WriteString("--- TARGET JOB DESCRIPTION ---\n")
		sb.WriteString(bias)
		sb.WriteString("\n\n")
	}
	sb.WriteString("--- RESUME TO ANALYZE ---\n")
	sb.WriteString(resumeText)
	return []string{sb.String()}
}

// decodeRecord validates the raw payload against the contract, resolves the
// wrapper shape, and decodes the profile.
//
// The backend's root shape wavers across integrations: sometimes the record
// arrives wrapped under the contract's root key, sometimes bare. The two
// shapes are resolved by one explicit rule here, nowhere else.
func decodeRecord(raw []byte) (*types.ProfileRecord, error) {
	if err := schema.Validate(raw); err != nil {
		if _, ok := err.(*schema.ValidationError); ok {
			return nil, &Error{Message: "response violates the extraction contract", Cause: err}
		}
		return nil, &Error{Message: "response is not valid JSON", Cause: err}
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, &Error{Message: "response is not a JSON object", Cause: err}
	}

	body := raw
	if wrapped, ok := root[schema.RootKey]; ok {
		body = wrapped
	}

	var record types.ProfileRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, &Error{Message: "failed to decode profile record", Cause: err}
	}

	if !record.HasRequiredFields() {
		return nil, &Error{Message: fmt.Sprintf(
			"required fields missing after parsing (position_inferred=%q, education_level=%q)",
			record.PositionInferred, record.EducationLevel,
		)}
	}

	return &record, nil
}
