package schema

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remix-pwa/pwa-client/domain/entities"
)

type copyInput struct {
	Text string `json:"text"`
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestGenerateSchema_Struct(t *testing.T) {
	data, err := GenerateSchema(copyInput{})
	require.NoError(t, err)

	m := decode(t, data)
	assert.Equal(t, "object", m["type"])
	props, ok := m["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "text")
	assert.Equal(t, []any{"text"}, m["required"])
}

func TestGenerateSchema_ClientResponseUsesWireShape(t *testing.T) {
	data, err := GenerateSchema(entities.ClientResponse{})
	require.NoError(t, err)

	props, ok := decode(t, data)["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "status")
	assert.Contains(t, props, "message")
}

func TestGenerateSchema_Scalars(t *testing.T) {
	data, err := GenerateSchema(true)
	require.NoError(t, err)
	assert.Equal(t, "boolean", decode(t, data)["type"])

	data, err = GenerateSchema([]string{})
	require.NoError(t, err)
	assert.Equal(t, "array", decode(t, data)["type"])
}

func TestGenerateSchema_Nil(t *testing.T) {
	_, err := GenerateSchema(nil)
	assert.Error(t, err)
}

func TestGenerateSchemaFromType_Interface(t *testing.T) {
	data, err := GenerateSchemaFromType(reflect.TypeOf((*error)(nil)).Elem())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
