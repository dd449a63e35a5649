package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thimira-N/todo-cabin/internal/logger"
	"github.com/Thimira-N/todo-cabin/internal/model"
	"github.com/Thimira-N/todo-cabin/internal/service"
	"github.com/Thimira-N/todo-cabin/internal/store"
)

type TodoHandler struct{ todos *service.TodoService }

func NewTodoHandler(todos *service.TodoService) *TodoHandler { return &TodoHandler{todos: todos} }

// GET /api/todos
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todos.List(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		logger.Error("list todos failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load todos"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// POST /api/todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req model.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	t, err := h.todos.Add(c.Request.Context(), c.GetString("user_id"), req)
	if errors.Is(err, service.ErrTitleRequired) || errors.Is(err, service.ErrInvalidPriority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("create todo failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create todo"})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PUT /api/todos/:id
func (h *TodoHandler) Update(c *gin.Context) {
	var req model.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	t, err := h.todos.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		logger.Error("update todo failed", "todo_id", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update todo"})
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /api/todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	if err := h.todos.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		logger.Error("delete todo failed", "todo_id", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
