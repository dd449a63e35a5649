package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Thimira-N/todo-cabin/internal/model"
	"github.com/Thimira-N/todo-cabin/internal/store"
)

var (
	ErrNoMembersSelected = errors.New("select at least one member")
	ErrTaskIndex         = errors.New("task index out of range")
)

const defaultEstimatedMinutes = 480 // one working day

// MinuteTrackerService manages per-day task logs. Each entry holds an
// ordered task list per participating member; a member's list never
// shrinks below one slot.
type MinuteTrackerService struct {
	store store.Store
}

func NewMinuteTrackerService(st store.Store) *MinuteTrackerService {
	return &MinuteTrackerService{store: st}
}

// List returns the team's entries, most recent date first.
func (s *MinuteTrackerService) List(ctx context.Context, userID string) ([]model.MinuteTrackerEntry, error) {
	docs, err := s.store.GetWhere(ctx, store.MinuteTracker, map[string]string{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("query minute tracker: %w", err)
	}
	entries := make([]model.MinuteTrackerEntry, 0, len(docs))
	for _, raw := range docs {
		var e model.MinuteTrackerEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode minute tracker entry: %w", err)
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// Recent returns at most n of the newest entries.
func (s *MinuteTrackerService) Recent(ctx context.Context, userID string, n int) ([]model.MinuteTrackerEntry, error) {
	entries, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// EntriesByMember returns the entries whose member set includes the
// given member.
func (s *MinuteTrackerService) EntriesByMember(ctx context.Context, memberID, userID string) ([]model.MinuteTrackerEntry, error) {
	entries, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	matched := entries[:0]
	for _, e := range entries {
		if slices.Contains(e.Members, memberID) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Add creates a tracked day. Every selected member starts with one task
// slot holding the template text, or an empty slot without a template.
func (s *MinuteTrackerService) Add(ctx context.Context, userID string, req model.MinuteCreateRequest) (*model.MinuteTrackerEntry, error) {
	if len(req.Members) == 0 {
		return nil, ErrNoMembersSelected
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format(store.DateLayout)
	}
	minutes := req.EstimatedMinutes
	if minutes <= 0 {
		minutes = defaultEstimatedMinutes
	}

	tasks := make(map[string][]string, len(req.Members))
	for _, memberID := range req.Members {
		if req.Template != "" {
			tasks[memberID] = []string{req.Template}
		} else {
			tasks[memberID] = []string{""}
		}
	}

	e := model.MinuteTrackerEntry{
		ID:               uuid.NewString(),
		Date:             date,
		Members:          slices.Clone(req.Members),
		Tasks:            tasks,
		Priority:         priority,
		EstimatedMinutes: minutes,
		UserID:           userID,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.store.Set(ctx, store.MinuteTracker, e.ID, e); err != nil {
		return nil, fmt.Errorf("create minute tracker entry: %w", err)
	}
	return &e, nil
}

// Update re-saves the entry with the given fields; zero-valued fields
// keep their stored value.
func (s *MinuteTrackerService) Update(ctx context.Context, userID, entryID string, req model.MinuteUpdateRequest) (*model.MinuteTrackerEntry, error) {
	e, err := s.get(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	if req.Date != "" {
		e.Date = req.Date
	}
	if req.Members != nil {
		e.Members = req.Members
	}
	if req.Tasks != nil {
		e.Tasks = req.Tasks
	}
	if req.Priority != "" {
		if !req.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		e.Priority = req.Priority
	}
	if req.EstimatedMinutes > 0 {
		e.EstimatedMinutes = req.EstimatedMinutes
	}
	if err := s.store.Set(ctx, store.MinuteTracker, e.ID, e); err != nil {
		return nil, fmt.Errorf("save minute tracker entry: %w", err)
	}
	return e, nil
}

// AddTask appends an empty task slot for the member.
func (s *MinuteTrackerService) AddTask(ctx context.Context, userID, entryID, memberID string) (*model.MinuteTrackerEntry, error) {
	e, err := s.get(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	if e.Tasks == nil {
		e.Tasks = make(map[string][]string)
	}
	e.Tasks[memberID] = append(e.Tasks[memberID], "")
	if err := s.store.Set(ctx, store.MinuteTracker, e.ID, e); err != nil {
		return nil, fmt.Errorf("save minute tracker entry: %w", err)
	}
	return e, nil
}

// UpdateTask replaces the task text at the given index.
func (s *MinuteTrackerService) UpdateTask(ctx context.Context, userID, entryID, memberID string, index int, value string) (*model.MinuteTrackerEntry, error) {
	e, err := s.get(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	tasks := e.Tasks[memberID]
	if index < 0 || index >= len(tasks) {
		return nil, ErrTaskIndex
	}
	tasks[index] = value
	if err := s.store.Set(ctx, store.MinuteTracker, e.ID, e); err != nil {
		return nil, fmt.Errorf("save minute tracker entry: %w", err)
	}
	return e, nil
}

// RemoveTask splices the task at the given index out of the member's
// list. A member always keeps at least one slot, so removing the last
// remaining task is a no-op.
func (s *MinuteTrackerService) RemoveTask(ctx context.Context, userID, entryID, memberID string, index int) (*model.MinuteTrackerEntry, error) {
	e, err := s.get(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	tasks := e.Tasks[memberID]
	if len(tasks) <= 1 {
		return e, nil
	}
	if index < 0 || index >= len(tasks) {
		return nil, ErrTaskIndex
	}
	e.Tasks[memberID] = append(tasks[:index], tasks[index+1:]...)
	if err := s.store.Set(ctx, store.MinuteTracker, e.ID, e); err != nil {
		return nil, fmt.Errorf("save minute tracker entry: %w", err)
	}
	return e, nil
}

// Duplicate clones an entry onto today's date with a fresh id and every
// member's tasks reset to a single empty slot.
func (s *MinuteTrackerService) Duplicate(ctx context.Context, userID, entryID string) (*model.MinuteTrackerEntry, error) {
	src, err := s.get(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	tasks := make(map[string][]string, len(src.Tasks))
	for memberID := range src.Tasks {
		tasks[memberID] = []string{""}
	}
	dup := model.MinuteTrackerEntry{
		ID:               uuid.NewString(),
		Date:             time.Now().Format(store.DateLayout),
		Members:          slices.Clone(src.Members),
		Tasks:            tasks,
		Priority:         src.Priority,
		EstimatedMinutes: src.EstimatedMinutes,
		UserID:           userID,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.store.Set(ctx, store.MinuteTracker, dup.ID, dup); err != nil {
		return nil, fmt.Errorf("create minute tracker entry: %w", err)
	}
	return &dup, nil
}

func (s *MinuteTrackerService) Delete(ctx context.Context, userID, entryID string) error {
	if _, err := s.get(ctx, entryID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.store.Delete(ctx, store.MinuteTracker, entryID); err != nil {
		return fmt.Errorf("delete minute tracker entry: %w", err)
	}
	return nil
}

func (s *MinuteTrackerService) get(ctx context.Context, entryID, userID string) (*model.MinuteTrackerEntry, error) {
	raw, err := s.store.Get(ctx, store.MinuteTracker, entryID)
	if err != nil {
		return nil, err
	}
	var e model.MinuteTrackerEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("decode minute tracker entry: %w", err)
	}
	if e.UserID != userID {
		return nil, store.ErrNotFound
	}
	return &e, nil
}
