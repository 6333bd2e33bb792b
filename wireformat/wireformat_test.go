package wireformat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorDetail_Error(t *testing.T) {
	tests := []struct {
		name   string
		detail *ErrorDetail
		want   string
	}{
		{"nil", nil, ""},
		{"internal has no prefix", &ErrorDetail{Message: "boom", Type: "internal"}, "boom"},
		{"typed", &ErrorDetail{Message: "no clipboard", Type: "capability"}, "capability: no clipboard"},
		{"with code", &ErrorDetail{Message: "denied", Type: "rejected", Code: "get_language"}, "rejected: denied [get_language]"},
		{
			"wrapped",
			&ErrorDetail{Message: "outer", Type: "response", Wrapped: &ErrorDetail{Message: "inner", Type: "rejected"}},
			"response: outer: rejected: inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.detail.Error())
		})
	}
}

func TestResponseWire_JSONShape(t *testing.T) {
	data, err := json.Marshal(ResponseWire{Status: "success", Message: "Copied to clipboard!"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","message":"Copied to clipboard!"}`, string(data))
}

func TestResultWire_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(ResultWire{RequestID: "r1", Operation: "is_online"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"request_id":"r1","operation":"is_online"}`, string(data))
}
