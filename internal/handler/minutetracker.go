package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Thimira-N/todo-cabin/internal/logger"
	"github.com/Thimira-N/todo-cabin/internal/model"
	"github.com/Thimira-N/todo-cabin/internal/service"
	"github.com/Thimira-N/todo-cabin/internal/store"
)

type MinuteTrackerHandler struct {
	tracker *service.MinuteTrackerService
	members *service.MemberService
}

func NewMinuteTrackerHandler(tracker *service.MinuteTrackerService, members *service.MemberService) *MinuteTrackerHandler {
	return &MinuteTrackerHandler{tracker: tracker, members: members}
}

// GET /api/minutes — optional ?member= filter and ?limit= for recents.
func (h *MinuteTrackerHandler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	var (
		entries []model.MinuteTrackerEntry
		err     error
	)
	switch {
	case c.Query("member") != "":
		entries, err = h.tracker.EntriesByMember(ctx, c.Query("member"), userID)
	case c.Query("limit") != "":
		var limit int
		if limit, err = strconv.Atoi(c.Query("limit")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		entries, err = h.tracker.Recent(ctx, userID, limit)
	default:
		entries, err = h.tracker.List(ctx, userID)
	}
	if err != nil {
		logger.Error("list minute tracker failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// POST /api/minutes
func (h *MinuteTrackerHandler) Create(c *gin.Context) {
	var req model.MinuteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	e, err := h.tracker.Add(c.Request.Context(), c.GetString("user_id"), req)
	if errors.Is(err, service.ErrNoMembersSelected) || errors.Is(err, service.ErrInvalidPriority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("create minute tracker entry failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create entry"})
		return
	}
	c.JSON(http.StatusCreated, e)
}

// PUT /api/minutes/:id
func (h *MinuteTrackerHandler) Update(c *gin.Context) {
	var req model.MinuteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	e, err := h.tracker.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if h.respondEntry(c, e, err) {
		logger.Error("update minute tracker entry failed", "entry_id", c.Param("id"), "err", err)
	}
}

// DELETE /api/minutes/:id
func (h *MinuteTrackerHandler) Delete(c *gin.Context) {
	if err := h.tracker.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		logger.Error("delete minute tracker entry failed", "entry_id", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/minutes/:id/duplicate
func (h *MinuteTrackerHandler) Duplicate(c *gin.Context) {
	e, err := h.tracker.Duplicate(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	if err != nil {
		logger.Error("duplicate minute tracker entry failed", "entry_id", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to duplicate entry"})
		return
	}
	c.JSON(http.StatusCreated, e)
}

// POST /api/minutes/:id/members/:memberId/tasks
func (h *MinuteTrackerHandler) AddTask(c *gin.Context) {
	e, err := h.tracker.AddTask(c.Request.Context(), c.GetString("user_id"), c.Param("id"), c.Param("memberId"))
	if h.respondEntry(c, e, err) {
		logger.Error("add task failed", "entry_id", c.Param("id"), "err", err)
	}
}

// PUT /api/minutes/:id/members/:memberId/tasks/:index
func (h *MinuteTrackerHandler) UpdateTask(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task index"})
		return
	}
	var req model.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	e, err := h.tracker.UpdateTask(c.Request.Context(), c.GetString("user_id"), c.Param("id"), c.Param("memberId"), index, req.Value)
	if h.respondEntry(c, e, err) {
		logger.Error("update task failed", "entry_id", c.Param("id"), "err", err)
	}
}

// DELETE /api/minutes/:id/members/:memberId/tasks/:index
func (h *MinuteTrackerHandler) RemoveTask(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task index"})
		return
	}
	e, err := h.tracker.RemoveTask(c.Request.Context(), c.GetString("user_id"), c.Param("id"), c.Param("memberId"), index)
	if h.respondEntry(c, e, err) {
		logger.Error("remove task failed", "entry_id", c.Param("id"), "err", err)
	}
}

// GET /api/minutes/export — xlsx download of every tracked entry.
func (h *MinuteTrackerHandler) Export(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	entries, err := h.tracker.List(ctx, userID)
	if err != nil {
		logger.Error("export minute tracker failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load entries"})
		return
	}
	members, err := h.members.List(ctx, userID)
	if err != nil {
		logger.Error("export minute tracker failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load members"})
		return
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}

	f, err := service.BuildWorkbook(entries, func(id string) string { return names[id] })
	if err != nil {
		logger.Error("build workbook failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("minute-tracker-%s.xlsx", time.Now().Format(store.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		logger.Error("write workbook failed", "err", err)
	}
}

// respondEntry writes the common entry/error responses and reports
// whether the caller should log err as unexpected.
func (h *MinuteTrackerHandler) respondEntry(c *gin.Context, e *model.MinuteTrackerEntry, err error) bool {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return false
	case errors.Is(err, service.ErrTaskIndex), errors.Is(err, service.ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request failed"})
		return true
	}
	c.JSON(http.StatusOK, e)
	return false
}
