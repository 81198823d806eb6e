package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelvuln/sentinel-backend/database"
	"github.com/sentinelvuln/sentinel-backend/model"
)

func TestCursorRoundTrip(t *testing.T) {
	key := model.IndexKey{CveID: "CVE-2024-1234", Score: 54.3}

	token := EncodeCursor(database.SortByScore, key)
	require.NotEmpty(t, token)

	decoded := DecodeCursor(token, database.SortByScore)
	require.NotNil(t, decoded)
	assert.Equal(t, key, *decoded)
}

func TestCursorRoundTripDateOrdering(t *testing.T) {
	key := model.IndexKey{CveID: "CVE-2024-1234", Published: "2024-06-01T00:00:00Z"}

	token := EncodeCursor(database.SortByDate, key)
	decoded := DecodeCursor(token, database.SortByDate)
	require.NotNil(t, decoded)
	assert.Equal(t, key, *decoded)
}

func TestDecodeCursorMalformed(t *testing.T) {
	assert.Nil(t, DecodeCursor("", database.SortByScore))
	assert.Nil(t, DecodeCursor("not!!base64", database.SortByScore))
	// Valid base64 but not a JSON payload.
	assert.Nil(t, DecodeCursor("Z2FyYmFnZQ==", database.SortByScore))
}

func TestDecodeCursorRejectsForeignOrdering(t *testing.T) {
	token := EncodeCursor(database.SortByScore, model.IndexKey{CveID: "CVE-2024-1", Score: 90})
	assert.Nil(t, DecodeCursor(token, database.SortByDate))
}
