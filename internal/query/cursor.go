// Package query translates read-API parameters into store queries and
// aggregations.
package query

import (
	"encoding/base64"
	"encoding/json"

	"github.com/sentinelvuln/sentinel-backend/database"
	"github.com/sentinelvuln/sentinel-backend/model"
)

// cursorPayload is the serialized resume position. The sort tag keeps a
// cursor from one ordering out of the other.
type cursorPayload struct {
	Sort string         `json:"sort"`
	Key  model.IndexKey `json:"key"`
}

// EncodeCursor wraps an index key into an opaque transportable token.
func EncodeCursor(sort database.SortOrder, key model.IndexKey) string {
	raw, err := json.Marshal(cursorPayload{Sort: string(sort), Key: key})
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeCursor recovers the resume key. Any malformed or mismatched token
// decodes to nil - the query simply starts from the beginning.
func DecodeCursor(token string, sort database.SortOrder) *model.IndexKey {
	if token == "" {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil
	}
	var payload cursorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	if payload.Sort != string(sort) {
		return nil
	}
	return &payload.Key
}
