package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Collection names. These match the document shapes persisted by earlier
// deployments, so renaming one breaks existing data.
const (
	Users         = "users"
	Members       = "members"
	Registry      = "registry"
	Todos         = "todos"
	MinuteTracker = "minuteTracker"
)

const DateLayout = "2006-01-02"

// Timestamp fields are declared per collection instead of being guessed
// from field-name suffixes. Writes are validated against this schema so
// a stored timestamp always parses back losslessly.
var (
	timeFields = map[string][]string{
		Users:         {"createdAt"},
		Members:       {"createdAt"},
		Todos:         {"createdAt"},
		MinuteTracker: {"createdAt"},
	}
	dateFields = map[string][]string{
		Registry:      {"date"},
		Todos:         {"dueDate"},
		MinuteTracker: {"date"},
	}
)

// encodeDoc marshals a record and validates its timestamp fields.
func encodeDoc(collection string, doc any) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := validateTimestamps(collection, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func validateTimestamps(collection string, raw []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	for _, field := range timeFields[collection] {
		if err := checkField(doc, field, time.RFC3339); err != nil {
			return err
		}
	}
	for _, field := range dateFields[collection] {
		if err := checkField(doc, field, DateLayout); err != nil {
			return err
		}
	}
	return nil
}

func checkField(doc map[string]any, field, layout string) error {
	v, ok := doc[field]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("field %s: expected a %q string, got %T", field, layout, v)
	}
	if s == "" {
		return nil
	}
	if _, err := time.Parse(layout, s); err != nil {
		return fmt.Errorf("field %s: %w", field, err)
	}
	return nil
}
