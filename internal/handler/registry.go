package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Thimira-N/todo-cabin/internal/logger"
	"github.com/Thimira-N/todo-cabin/internal/model"
	"github.com/Thimira-N/todo-cabin/internal/service"
	"github.com/Thimira-N/todo-cabin/internal/store"
)

type RegistryHandler struct{ registry *service.RegistryService }

func NewRegistryHandler(registry *service.RegistryService) *RegistryHandler {
	return &RegistryHandler{registry: registry}
}

// GET /api/registry?date=2024-01-01 — date defaults to today.
func (h *RegistryHandler) ForDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(store.DateLayout)
	}
	entries, err := h.registry.EntriesForDate(c.Request.Context(), date, c.GetString("user_id"))
	if err != nil {
		logger.Error("load registry entries failed", "date", date, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load registry entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GET /api/registry/all
func (h *RegistryHandler) All(c *gin.Context) {
	entries, err := h.registry.All(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		logger.Error("load registry entries failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load registry entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// POST /api/registry/mark-in
func (h *RegistryHandler) MarkIn(c *gin.Context) {
	h.mark(c, true)
}

// POST /api/registry/mark-out
func (h *RegistryHandler) MarkOut(c *gin.Context) {
	h.mark(c, false)
}

func (h *RegistryHandler) mark(c *gin.Context, in bool) {
	var req model.MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	userID := c.GetString("user_id")

	var (
		entry *model.RegistryEntry
		err   error
	)
	if in {
		entry, err = h.registry.MarkIn(c.Request.Context(), req.Date, req.MemberID, userID, req.MemberName, req.Time)
	} else {
		entry, err = h.registry.MarkOut(c.Request.Context(), req.Date, req.MemberID, userID, req.MemberName, req.Time)
	}
	if err != nil {
		logger.Error("mark failed", "member_id", req.MemberID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save mark"})
		return
	}
	c.JSON(http.StatusOK, entry)
}
