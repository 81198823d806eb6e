package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalMarshal(t *testing.T) {
	tests := []struct {
		in   Decimal
		want string
	}{
		{0, "0"},
		{25, "25"},
		{9.8, "9.8"},
		{54.3, "54.3"},
		{0.97234, "0.97234"},
		{100, "100"},
	}

	for _, tt := range tests {
		out, err := json.Marshal(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(out))
	}
}

func TestRecordOmitsAbsentKEVFields(t *testing.T) {
	rec := VulnerabilityRecord{
		CveID:          "CVE-2024-0001",
		CompositeScore: 54.3,
		Status:         StatusActive,
	}

	out, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.NotContains(t, decoded, "kevDateAdded")
	assert.NotContains(t, decoded, "kevDueDate")
	assert.Equal(t, "CVE-2024-0001", decoded["cveId"])
	assert.Equal(t, 54.3, decoded["compositeScore"])
}
