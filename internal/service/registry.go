package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Thimira-N/todo-cabin/internal/model"
	"github.com/Thimira-N/todo-cabin/internal/store"
)

const markTimeLayout = "15:04"

// RegistryService tracks per-member attendance. One entry exists per
// (date, member); marking in and out both upsert onto that entry, so a
// mark never erases the opposite mark.
type RegistryService struct {
	store store.Store
}

func NewRegistryService(st store.Store) *RegistryService { return &RegistryService{store: st} }

func entryID(date, memberID string) string { return date + "-" + memberID }

// All returns every registry entry owned by the team.
func (s *RegistryService) All(ctx context.Context, userID string) ([]model.RegistryEntry, error) {
	return s.query(ctx, map[string]string{"userId": userID})
}

// EntriesForDate returns the team's entries for one calendar date.
func (s *RegistryService) EntriesForDate(ctx context.Context, date, userID string) ([]model.RegistryEntry, error) {
	return s.query(ctx, map[string]string{"userId": userID, "date": date})
}

// MarkIn records an arrival time. An empty date means today, an empty
// at means the current clock in HH:mm; an explicit at lets the caller
// replay an optimistic update.
func (s *RegistryService) MarkIn(ctx context.Context, date, memberID, userID, memberName, at string) (*model.RegistryEntry, error) {
	return s.mark(ctx, date, memberID, userID, memberName, at, true)
}

// MarkOut records a departure time. Same defaulting rules as MarkIn.
func (s *RegistryService) MarkOut(ctx context.Context, date, memberID, userID, memberName, at string) (*model.RegistryEntry, error) {
	return s.mark(ctx, date, memberID, userID, memberName, at, false)
}

func (s *RegistryService) mark(ctx context.Context, date, memberID, userID, memberName, at string, in bool) (*model.RegistryEntry, error) {
	if date == "" {
		date = time.Now().Format(store.DateLayout)
	}
	if at == "" {
		at = time.Now().Format(markTimeLayout)
	}
	id := entryID(date, memberID)

	entry := model.RegistryEntry{
		MemberID: memberID,
		Date:     date,
		UserID:   userID,
	}
	raw, err := s.store.Get(ctx, store.Registry, id)
	if err == nil {
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("decode registry entry: %w", err)
		}
		if entry.UserID != userID {
			return nil, store.ErrNotFound
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	entry.ID = id
	entry.MemberName = memberName
	if in {
		entry.MarkIn = at
	} else {
		entry.MarkOut = at
	}

	if err := s.store.Set(ctx, store.Registry, id, entry); err != nil {
		return nil, fmt.Errorf("save registry entry: %w", err)
	}
	return &entry, nil
}

// DeleteAllForMember removes every entry referencing the member. Called
// from the member-delete cascade.
func (s *RegistryService) DeleteAllForMember(ctx context.Context, memberID, userID string) error {
	entries, err := s.query(ctx, map[string]string{"userId": userID, "memberId": memberID})
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := s.store.Delete(ctx, store.Registry, e.ID); err != nil {
			return fmt.Errorf("delete registry entry %s: %w", e.ID, err)
		}
	}
	return nil
}

func (s *RegistryService) query(ctx context.Context, filter map[string]string) ([]model.RegistryEntry, error) {
	docs, err := s.store.GetWhere(ctx, store.Registry, filter)
	if err != nil {
		return nil, fmt.Errorf("query registry: %w", err)
	}
	entries := make([]model.RegistryEntry, 0, len(docs))
	for _, raw := range docs {
		var e model.RegistryEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode registry entry: %w", err)
		}
		entries = append(entries, e)
	}
	// ISO dates sort correctly as strings.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].MemberName < entries[j].MemberName
	})
	return entries, nil
}
