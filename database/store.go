// Package database - storage access for vulnerability records
package database

import (
	"context"
	"fmt"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/sentinelvuln/sentinel-backend/model"
)

// SortOrder selects one of the two secondary orderings over the ACTIVE
// partition.
type SortOrder string

// Supported orderings.
const (
	SortByScore SortOrder = "score"
	SortByDate  SortOrder = "date"
)

// VulnStore is the storage capability the ingestion pipeline and the query
// engine are built against. It is constructed once per process and injected;
// no component reaches for a global handle.
type VulnStore interface {
	// Get returns the record for the exact CVE ID, or nil when absent.
	Get(ctx context.Context, cveID string) (*model.VulnerabilityRecord, error)

	// QueryIndex returns up to limit records in the chosen descending
	// ordering, resuming after the given key. The returned key is non-nil
	// only when more records remain past this page.
	QueryIndex(ctx context.Context, sort SortOrder, after *model.IndexKey, limit int) ([]model.VulnerabilityRecord, *model.IndexKey, error)

	// Scan walks the full table in cveId order. kevOnly pushes an
	// actively-exploited filter into the scan. The returned ID is non-empty
	// only when more records remain.
	Scan(ctx context.Context, afterID string, limit int, kevOnly bool) ([]model.VulnerabilityRecord, string, error)

	// BulkUpsert fully overwrites records keyed by cveId and reports how
	// many were written.
	BulkUpsert(ctx context.Context, records []model.VulnerabilityRecord) (int, error)
}

// ArangoStore implements VulnStore on top of the vulnerability collection.
type ArangoStore struct {
	db DBConnection
}

var _ VulnStore = (*ArangoStore)(nil)

// NewArangoStore wraps an initialized database connection.
func NewArangoStore(db DBConnection) *ArangoStore {
	return &ArangoStore{db: db}
}

// Get implements the exact-key lookup.
func (s *ArangoStore) Get(ctx context.Context, cveID string) (*model.VulnerabilityRecord, error) {
	query := `
		FOR v IN vulnerability
			FILTER v.cveId == @cveId
			LIMIT 1
			RETURN v
	`
	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"cveId": cveID},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if cursor.HasMore() {
		var rec model.VulnerabilityRecord
		if _, err := cursor.ReadDocument(ctx, &rec); err != nil {
			return nil, err
		}
		return &rec, nil
	}

	return nil, nil
}

// QueryIndex pages through one of the descending orderings with keyset
// continuation on (sort field, cveId) so a resumed query neither skips nor
// repeats records.
func (s *ArangoStore) QueryIndex(ctx context.Context, sort SortOrder, after *model.IndexKey, limit int) ([]model.VulnerabilityRecord, *model.IndexKey, error) {
	var query string
	bindVars := map[string]interface{}{
		"status": model.StatusActive,
		// One extra row tells us whether another page exists.
		"limit": limit + 1,
	}

	switch sort {
	case SortByDate:
		query = `
			FOR v IN vulnerability
				FILTER v.status == @status
		`
		if after != nil {
			query += `
				FILTER v.publishedDate < @published
					OR (v.publishedDate == @published AND v.cveId > @cveId)
			`
			bindVars["published"] = after.Published
			bindVars["cveId"] = after.CveID
		}
		query += `
				SORT v.publishedDate DESC, v.cveId ASC
				LIMIT @limit
				RETURN v
		`
	default:
		query = `
			FOR v IN vulnerability
				FILTER v.status == @status
		`
		if after != nil {
			query += `
				FILTER v.compositeScore < @score
					OR (v.compositeScore == @score AND v.cveId > @cveId)
			`
			bindVars["score"] = after.Score
			bindVars["cveId"] = after.CveID
		}
		query += `
				SORT v.compositeScore DESC, v.cveId ASC
				LIMIT @limit
				RETURN v
		`
	}

	records, err := s.readAll(ctx, query, bindVars)
	if err != nil {
		return nil, nil, err
	}

	var next *model.IndexKey
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		next = &model.IndexKey{CveID: last.CveID}
		if sort == SortByDate {
			next.Published = last.PublishedDate
		} else {
			next.Score = float64(last.CompositeScore)
		}
	}

	return records, next, nil
}

// Scan walks the table in cveId order, optionally restricted to KEV records.
func (s *ArangoStore) Scan(ctx context.Context, afterID string, limit int, kevOnly bool) ([]model.VulnerabilityRecord, string, error) {
	query := `
		FOR v IN vulnerability
	`
	bindVars := map[string]interface{}{
		"limit": limit + 1,
	}
	if afterID != "" {
		query += `
			FILTER v.cveId > @afterId
		`
		bindVars["afterId"] = afterID
	}
	if kevOnly {
		query += `
			FILTER v.isKEV == true
		`
	}
	query += `
			SORT v.cveId ASC
			LIMIT @limit
			RETURN v
	`

	records, err := s.readAll(ctx, query, bindVars)
	if err != nil {
		return nil, "", err
	}

	nextID := ""
	if len(records) > limit {
		records = records[:limit]
		nextID = records[len(records)-1].CveID
	}

	return records, nextID, nil
}

// BulkUpsert replaces each record wholesale, keyed by cveId.
func (s *ArangoStore) BulkUpsert(ctx context.Context, records []model.VulnerabilityRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	query := `
		FOR rec IN @records
			UPSERT { cveId: rec.cveId }
				INSERT rec
				REPLACE rec
			IN vulnerability
	`
	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"records": records},
	})
	if err != nil {
		return 0, fmt.Errorf("bulk upsert failed: %w", err)
	}
	defer cursor.Close()

	return len(records), nil
}

func (s *ArangoStore) readAll(ctx context.Context, query string, bindVars map[string]interface{}) ([]model.VulnerabilityRecord, error) {
	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var records []model.VulnerabilityRecord
	for cursor.HasMore() {
		var rec model.VulnerabilityRecord
		if _, err := cursor.ReadDocument(ctx, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}
