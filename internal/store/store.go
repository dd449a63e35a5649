// Package store provides a collection/id keyed document store with
// interchangeable backends (MySQL, SQLite, in-memory). Documents are
// JSON; callers own the mapping to typed records.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get and Update for a missing document.
var ErrNotFound = errors.New("document not found")

// Store is the persistence contract shared by every backend. Set is a
// whole-record upsert, Update is a merge patch, Delete is idempotent,
// GetAll is unfiltered and GetWhere applies a conjunctive equality
// filter on top-level string fields.
type Store interface {
	Set(ctx context.Context, collection, id string, doc any) error
	Get(ctx context.Context, collection, id string) ([]byte, error)
	GetAll(ctx context.Context, collection string) ([][]byte, error)
	GetWhere(ctx context.Context, collection string, filter map[string]string) ([][]byte, error)
	Update(ctx context.Context, collection, id string, patch map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

// matchesFilter reports whether every filter field is present in the
// document as an equal string value.
func matchesFilter(raw []byte, filter map[string]string) (bool, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, fmt.Errorf("decode document: %w", err)
	}
	for field, want := range filter {
		got, ok := doc[field].(string)
		if !ok || got != want {
			return false, nil
		}
	}
	return true, nil
}

// filterDocs applies matchesFilter over a full collection scan. Backends
// share this rather than pushing predicates into their query language.
func filterDocs(docs [][]byte, filter map[string]string) ([][]byte, error) {
	matched := make([][]byte, 0, len(docs))
	for _, raw := range docs {
		ok, err := matchesFilter(raw, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, raw)
		}
	}
	return matched, nil
}

// mergePatch overlays patch fields onto an existing document.
func mergePatch(raw []byte, patch map[string]any) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	for field, value := range patch {
		doc[field] = value
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return merged, nil
}
