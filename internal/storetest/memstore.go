// Package storetest provides an in-memory VulnStore used by tests across
// the query, ingest and API packages.
package storetest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sentinelvuln/sentinel-backend/database"
	"github.com/sentinelvuln/sentinel-backend/model"
)

// MemStore keeps records in a map and reproduces the store's keyset
// pagination semantics.
type MemStore struct {
	mu      sync.Mutex
	records map[string]model.VulnerabilityRecord

	// FailAll makes every call return an error, for error-path tests.
	FailAll bool
}

var _ database.VulnStore = (*MemStore)(nil)

var errStoreDown = errors.New("store unavailable")

// New returns an empty MemStore.
func New() *MemStore {
	return &MemStore{records: make(map[string]model.VulnerabilityRecord)}
}

// Seed inserts records directly, bypassing BulkUpsert.
func (s *MemStore) Seed(records ...model.VulnerabilityRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.records[rec.CveID] = rec
	}
}

// Len reports the number of stored records.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Get implements database.VulnStore.
func (s *MemStore) Get(_ context.Context, cveID string) (*model.VulnerabilityRecord, error) {
	if s.FailAll {
		return nil, errStoreDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[cveID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// QueryIndex implements database.VulnStore.
func (s *MemStore) QueryIndex(_ context.Context, sortOrder database.SortOrder, after *model.IndexKey, limit int) ([]model.VulnerabilityRecord, *model.IndexKey, error) {
	if s.FailAll {
		return nil, nil, errStoreDown
	}

	ordered := s.ordered(sortOrder)

	start := 0
	if after != nil {
		for i, rec := range ordered {
			if pastKey(rec, sortOrder, after) {
				start = i
				break
			}
			start = len(ordered)
		}
	}

	end := start + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	page := ordered[start:end]

	var next *model.IndexKey
	if end < len(ordered) && len(page) > 0 {
		last := page[len(page)-1]
		next = &model.IndexKey{CveID: last.CveID}
		if sortOrder == database.SortByDate {
			next.Published = last.PublishedDate
		} else {
			next.Score = float64(last.CompositeScore)
		}
	}

	return page, next, nil
}

// Scan implements database.VulnStore.
func (s *MemStore) Scan(_ context.Context, afterID string, limit int, kevOnly bool) ([]model.VulnerabilityRecord, string, error) {
	if s.FailAll {
		return nil, "", errStoreDown
	}

	s.mu.Lock()
	all := make([]model.VulnerabilityRecord, 0, len(s.records))
	for _, rec := range s.records {
		if kevOnly && !rec.IsKEV {
			continue
		}
		if afterID != "" && rec.CveID <= afterID {
			continue
		}
		all = append(all, rec)
	}
	s.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CveID < all[j].CveID })

	nextID := ""
	if len(all) > limit {
		all = all[:limit]
		nextID = all[len(all)-1].CveID
	}

	return all, nextID, nil
}

// BulkUpsert implements database.VulnStore.
func (s *MemStore) BulkUpsert(_ context.Context, records []model.VulnerabilityRecord) (int, error) {
	if s.FailAll {
		return 0, errStoreDown
	}
	s.Seed(records...)
	return len(records), nil
}

func (s *MemStore) ordered(sortOrder database.SortOrder) []model.VulnerabilityRecord {
	s.mu.Lock()
	all := make([]model.VulnerabilityRecord, 0, len(s.records))
	for _, rec := range s.records {
		if rec.Status == model.StatusActive {
			all = append(all, rec)
		}
	}
	s.mu.Unlock()

	if sortOrder == database.SortByDate {
		sort.Slice(all, func(i, j int) bool {
			if all[i].PublishedDate != all[j].PublishedDate {
				return all[i].PublishedDate > all[j].PublishedDate
			}
			return all[i].CveID < all[j].CveID
		})
	} else {
		sort.Slice(all, func(i, j int) bool {
			if all[i].CompositeScore != all[j].CompositeScore {
				return all[i].CompositeScore > all[j].CompositeScore
			}
			return all[i].CveID < all[j].CveID
		})
	}

	return all
}

// pastKey reports whether rec sorts strictly after the resume key.
func pastKey(rec model.VulnerabilityRecord, sortOrder database.SortOrder, after *model.IndexKey) bool {
	if sortOrder == database.SortByDate {
		if rec.PublishedDate != after.Published {
			return rec.PublishedDate < after.Published
		}
		return rec.CveID > after.CveID
	}
	if float64(rec.CompositeScore) != after.Score {
		return float64(rec.CompositeScore) < after.Score
	}
	return rec.CveID > after.CveID
}
