package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Expected Amount
	}{
		{Name: "number", Input: `50000`, Expected: 50000},
		{Name: "fraction", Input: `12500.5`, Expected: 12500.5},
		{Name: "numeric string", Input: `"50000"`, Expected: 50000},
		{Name: "padded string", Input: `" 7500 "`, Expected: 7500},
		{Name: "empty string", Input: `""`, Expected: 0},
		{Name: "null", Input: `null`, Expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tc.Input), &a))
			assert.Equal(t, tc.Expected, a)
		})
	}
}

func TestAmount_UnmarshalJSONInvalid(t *testing.T) {
	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`"lima puluh ribu"`), &a))
	assert.Error(t, json.Unmarshal([]byte(`true`), &a))
}
