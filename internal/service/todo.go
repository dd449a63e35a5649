package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Thimira-N/todo-cabin/internal/model"
	"github.com/Thimira-N/todo-cabin/internal/store"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidPriority = errors.New("priority must be low, medium or high")
)

type TodoService struct {
	store store.Store
}

func NewTodoService(st store.Store) *TodoService { return &TodoService{store: st} }

func (s *TodoService) List(ctx context.Context, userID string) ([]model.TodoItem, error) {
	docs, err := s.store.GetWhere(ctx, store.Todos, map[string]string{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	todos := make([]model.TodoItem, 0, len(docs))
	for _, raw := range docs {
		var t model.TodoItem
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		todos = append(todos, t)
	}
	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
	return todos, nil
}

func (s *TodoService) Add(ctx context.Context, userID string, req model.TodoRequest) (*model.TodoItem, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	t := model.TodoItem{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    priority,
		DueDate:     req.DueDate,
		CreatedAt:   time.Now().UTC(),
		UserID:      userID,
	}
	if err := s.store.Set(ctx, store.Todos, t.ID, t); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return &t, nil
}

// Update re-saves the whole record; the completed toggle goes through
// here as well.
func (s *TodoService) Update(ctx context.Context, userID, todoID string, req model.TodoRequest) (*model.TodoItem, error) {
	t, err := s.get(ctx, todoID, userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	t.Title = strings.TrimSpace(req.Title)
	t.Description = req.Description
	t.Completed = req.Completed
	if req.Priority != "" {
		t.Priority = req.Priority
	}
	t.DueDate = req.DueDate
	if err := s.store.Set(ctx, store.Todos, t.ID, t); err != nil {
		return nil, fmt.Errorf("save todo: %w", err)
	}
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	if _, err := s.get(ctx, todoID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.store.Delete(ctx, store.Todos, todoID); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

func (s *TodoService) get(ctx context.Context, todoID, userID string) (*model.TodoItem, error) {
	raw, err := s.store.Get(ctx, store.Todos, todoID)
	if err != nil {
		return nil, err
	}
	var t model.TodoItem
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode todo: %w", err)
	}
	if t.UserID != userID {
		return nil, store.ErrNotFound
	}
	return &t, nil
}
