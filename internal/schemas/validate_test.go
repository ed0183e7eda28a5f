package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSeed = `{
  "applications": [
    {"id": 1, "student_id": 11, "job_id": 7, "status": "applied",
     "job_description": "Backend engineer",
     "student": {"id": 11, "name": "Ann", "email": "ann@student.io", "skills": "Java"}},
    {"id": 2, "student_id": 12, "job_id": 7, "student": null}
  ],
  "users": [{"id": 1, "name": "Bob", "email": "bob@x.com"}]
}`

func TestValidateSeed_Valid(t *testing.T) {
	assert.NoError(t, ValidateSeed([]byte(validSeed)))
	assert.NoError(t, ValidateSeed([]byte(`{}`)))
}

func TestValidateSeed_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		seed  string
		field string
	}{
		{"unknown status", `{"applications": [{"id": 1, "student_id": 1, "job_id": 1, "status": "bogus"}]}`, "applications.0.status"},
		{"negative job id", `{"applications": [{"id": 1, "student_id": 1, "job_id": -4}]}`, "applications.0.job_id"},
		{"missing job id", `{"applications": [{"id": 1, "student_id": 1}]}`, "applications.0"},
		{"zero application id", `{"applications": [{"id": 0, "student_id": 1, "job_id": 1}]}`, "applications.0.id"},
		{"malformed user email", `{"users": [{"id": 1, "name": "Bob", "email": "not-an-email"}]}`, "users.0.email"},
		{"missing user name", `{"users": [{"id": 1, "email": "bob@x.com"}]}`, "users.0"},
		{"unknown top-level key", `{"interviews": []}`, "(root)"},
		{"string id", `{"users": [{"id": "1", "name": "Bob", "email": "bob@x.com"}]}`, "users.0.id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeed([]byte(tt.seed))
			require.Error(t, err)

			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type, got %T", err)
			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateSeed_MalformedJSON(t *testing.T) {
	err := ValidateSeed([]byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "seed", loadErr.Name)
}

func TestValidateJSONString(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	assert.NoError(t, ValidateJSONString(schemaContent, `{"name": "test"}`))

	err := ValidateJSONString(schemaContent, `{"name": 42}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}

func TestSchemaLoadError(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema (string schema)")
}
