package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Thimira-N/todo-cabin/internal/model"
	"github.com/Thimira-N/todo-cabin/internal/store"
)

func TestTodoService_AddDefaults(t *testing.T) {
	svc := NewTodoService(store.NewMemoryStore())
	ctx := context.Background()

	todo, err := svc.Add(ctx, "u1", model.TodoRequest{Title: "  Pack supplies  "})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if todo.Title != "Pack supplies" {
		t.Errorf("title = %q", todo.Title)
	}
	if todo.Priority != model.PriorityMedium {
		t.Errorf("priority = %q, want default medium", todo.Priority)
	}
	if todo.Completed {
		t.Error("new todo marked completed")
	}
}

func TestTodoService_AddValidation(t *testing.T) {
	svc := NewTodoService(store.NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.Add(ctx, "u1", model.TodoRequest{Title: "  "}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("err = %v, want ErrTitleRequired", err)
	}
	if _, err := svc.Add(ctx, "u1", model.TodoRequest{Title: "x", Priority: "urgent"}); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("err = %v, want ErrInvalidPriority", err)
	}
}

func TestTodoService_ToggleCompleted(t *testing.T) {
	svc := NewTodoService(store.NewMemoryStore())
	ctx := context.Background()

	todo, err := svc.Add(ctx, "u1", model.TodoRequest{Title: "Pack supplies", Priority: model.PriorityHigh})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, err := svc.Update(ctx, "u1", todo.ID, model.TodoRequest{
		Title:     todo.Title,
		Completed: true,
		Priority:  todo.Priority,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed {
		t.Error("completed not toggled")
	}
	if updated.Priority != model.PriorityHigh {
		t.Errorf("priority = %q, lost on re-save", updated.Priority)
	}
	if !updated.CreatedAt.Equal(todo.CreatedAt) {
		t.Error("createdAt changed on update")
	}
}

func TestTodoService_ListScopedToOwner(t *testing.T) {
	svc := NewTodoService(store.NewMemoryStore())
	ctx := context.Background()

	svc.Add(ctx, "u1", model.TodoRequest{Title: "mine"})
	svc.Add(ctx, "u2", model.TodoRequest{Title: "theirs"})

	todos, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 1 || todos[0].Title != "mine" {
		t.Errorf("todos = %+v", todos)
	}
}

func TestTodoService_Delete(t *testing.T) {
	svc := NewTodoService(store.NewMemoryStore())
	ctx := context.Background()

	todo, _ := svc.Add(ctx, "u1", model.TodoRequest{Title: "Pack supplies"})
	if err := svc.Delete(ctx, "u1", todo.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, "u1", todo.ID); err != nil {
		t.Errorf("repeat delete: %v, want nil", err)
	}
	todos, _ := svc.List(ctx, "u1")
	if len(todos) != 0 {
		t.Errorf("todos = %+v, want empty", todos)
	}
}

func TestTodoService_UpdateCrossTenant(t *testing.T) {
	svc := NewTodoService(store.NewMemoryStore())
	ctx := context.Background()

	todo, _ := svc.Add(ctx, "u1", model.TodoRequest{Title: "mine"})
	if _, err := svc.Update(ctx, "u2", todo.ID, model.TodoRequest{Title: "stolen"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
