package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thimira-N/todo-cabin/internal/logger"
	"github.com/Thimira-N/todo-cabin/internal/model"
	"github.com/Thimira-N/todo-cabin/internal/service"
)

type MemberHandler struct{ members *service.MemberService }

func NewMemberHandler(members *service.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

// GET /api/members
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.members.List(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		logger.Error("list members failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load members"})
		return
	}
	c.JSON(http.StatusOK, members)
}

// POST /api/members
func (h *MemberHandler) Create(c *gin.Context) {
	var req model.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	m, err := h.members.Add(c.Request.Context(), req.Name, c.GetString("user_id"))
	if errors.Is(err, service.ErrMemberNameRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("create member failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create member"})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// DELETE /api/members/:id — also removes the member's registry entries.
func (h *MemberHandler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")
	memberID := c.Param("id")
	if err := h.members.DeleteWithEntries(c.Request.Context(), memberID, userID); err != nil {
		logger.Error("delete member failed", "member_id", memberID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete member"})
		return
	}
	logger.Info("member.deleted", "member_id", memberID, "uid", userID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
