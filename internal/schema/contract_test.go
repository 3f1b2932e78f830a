package schema

import (
	"encoding/json"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSchema_WrapsProfileInSingleRoot(t *testing.T) {
	s := ResponseSchema()
	require.Equal(t, genai.TypeObject, s.Type)
	require.Equal(t, []string{RootKey}, s.Required)
	require.Len(t, s.Properties, 1)

	profile := s.Properties[RootKey]
	require.NotNil(t, profile)
	assert.Equal(t, genai.TypeObject, profile.Type)
	assert.Contains(t, profile.Required, "position_inferred")
	assert.Contains(t, profile.Required, "education_level")

	work := profile.Properties["work_history"]
	require.NotNil(t, work)
	assert.Equal(t, genai.TypeArray, work.Type)
	assert.Equal(t, genai.TypeObject, work.Items.Type)
	assert.Contains(t, work.Items.Required, "end_date")
}

func TestContractJSON_ForbidsUnrecognizedFields(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(ContractJSON(), &doc))

	alternatives, ok := doc["oneOf"].([]any)
	require.True(t, ok)
	require.Len(t, alternatives, 2)
	for _, alt := range alternatives {
		obj := alt.(map[string]any)
		assert.Equal(t, false, obj["additionalProperties"])
	}
}

func TestValidate_AcceptsWrappedAndUnwrappedRoots(t *testing.T) {
	profile := `{
		"position_inferred": "Backend Developer",
		"education_level": "BSc",
		"skills": ["Go"],
		"core_values": [],
		"work_history": [],
		"full_education": []
	}`

	assert.NoError(t, Validate([]byte(profile)))
	assert.NoError(t, Validate([]byte(`{"resume_data": `+profile+`}`)))
}

func TestValidate_ToleratesUpstreamTypeDrift(t *testing.T) {
	payload := `{
		"phone": 251954988574,
		"position_inferred": "Backend Developer",
		"education_level": null,
		"skills": ["Go", 1.5, null],
		"core_values": [true],
		"work_history": [{"title": "Engineer", "company": null, "start_date": 2020, "end_date": "Present", "summary": "x"}],
		"full_education": []
	}`
	assert.NoError(t, Validate([]byte(payload)))
}

func TestValidate_RejectsDivergentShapes(t *testing.T) {
	payload := `{
		"position_inferred": "Backend Developer",
		"education_level": "BSc",
		"skills": [],
		"core_values": [],
		"work_history": [],
		"full_education": [],
		"invented_field": "surprise"
	}`
	err := Validate([]byte(payload))
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}
