package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"activeStudyCategory",
		"companies",
		"earnedBadges",
		"studyPlans",
		"studyProgress",
		"userName",
	}, Names())
}

func TestAllSchemas_ValidJSON(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			content, err := Schema(name)
			require.NoError(t, err)

			var v interface{}
			assert.NoError(t, json.Unmarshal([]byte(content), &v), "schema should be valid JSON")
		})
	}
}

func TestSchema_Unknown(t *testing.T) {
	_, err := Schema("notes")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Path, "notes")
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		content   string
		wantError bool
	}{
		{
			name:    "companies valid",
			key:     "companies",
			content: `[{"id":1,"name":"Acme","role":"Software Engineer","location":"Remote","packageRange":"10-20 LPA","status":"Interview","appliedDate":"2025-10-06T09:00:00Z","lastUpdated":"2025-10-06T09:00:00Z"}]`,
		},
		{
			name:      "companies unknown status",
			key:       "companies",
			content:   `[{"id":1,"name":"Acme","role":"SE","location":"Remote","packageRange":"10-20 LPA","status":"Ghosted","appliedDate":"x","lastUpdated":"x"}]`,
			wantError: true,
		},
		{
			name:    "companies empty",
			key:     "companies",
			content: `[]`,
		},
		{
			name:    "study progress valid",
			key:     "studyProgress",
			content: `{"dsa":[{"id":1,"name":"Arrays","completed":true}],"os":[]}`,
		},
		{
			name:      "study progress wrong completed type",
			key:       "studyProgress",
			content:   `{"dsa":[{"id":1,"name":"Arrays","completed":"yes"}]}`,
			wantError: true,
		},
		{
			name:      "study progress array root",
			key:       "studyProgress",
			content:   `[1,2,3]`,
			wantError: true,
		},
		{
			name:    "plans valid",
			key:     "studyPlans",
			content: `[{"id":5,"title":"Oct","topics":["dsa"],"startDate":"2025-10-06","endDate":"2025-10-06","duration":1,"dailyTasks":[{"day":1,"date":"2025-10-06","task":"x","completed":false,"isMockDay":false}]}]`,
		},
		{
			name:      "plans bad date",
			key:       "studyPlans",
			content:   `[{"id":5,"title":"Oct","topics":["dsa"],"startDate":"06/10/2025","endDate":"2025-10-06","duration":1,"dailyTasks":[]}]`,
			wantError: true,
		},
		{
			name:      "plans without topics",
			key:       "studyPlans",
			content:   `[{"id":5,"title":"Oct","topics":[],"startDate":"2025-10-06","endDate":"2025-10-06","duration":1,"dailyTasks":[]}]`,
			wantError: true,
		},
		{
			name:    "badges valid",
			key:     "earnedBadges",
			content: `[{"type":"Bronze","category":"DSA","name":"DSA Bronze"}]`,
		},
		{
			name:      "badges unknown tier",
			key:       "earnedBadges",
			content:   `[{"type":"Platinum","category":"DSA","name":"DSA Platinum"}]`,
			wantError: true,
		},
		{
			name:    "user name",
			key:     "userName",
			content: `"Asha"`,
		},
		{
			name:      "user name not a string",
			key:       "userName",
			content:   `42`,
			wantError: true,
		},
		{
			name:      "active category empty",
			key:       "activeStudyCategory",
			content:   `""`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key, tt.content)
			if tt.wantError {
				require.Error(t, err)
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.Errors)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateKey_MalformedJSON(t *testing.T) {
	err := ValidateKey("studyProgress", "{ invalid json }")
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSONString_BrokenSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}
