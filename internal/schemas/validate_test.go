package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = []byte(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["id", "name"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"name": {"type": "string"},
		"score": {"type": "integer", "minimum": 0}
	}
}`)

func TestValidateBytes_Valid(t *testing.T) {
	doc := []byte(`{"id": "a", "name": "Alpha", "score": 10}`)

	assert.NoError(t, ValidateBytes("test", testSchema, doc))
}

func TestValidateBytes_MissingRequiredField(t *testing.T) {
	doc := []byte(`{"id": "a"}`)

	err := ValidateBytes("test", testSchema, doc)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Errors)
	assert.Contains(t, err.Error(), "name")
}

func TestValidateBytes_WrongType(t *testing.T) {
	doc := []byte(`{"id": "a", "name": "Alpha", "score": "high"}`)

	err := ValidateBytes("test", testSchema, doc)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateBytes_UnparsableDocument(t *testing.T) {
	err := ValidateBytes("test", testSchema, []byte("{broken"))

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "test", loadErr.Name)
}

func TestValidationError_EmptyMessage(t *testing.T) {
	err := &ValidationError{}
	assert.Equal(t, "schema validation failed", err.Error())
}
