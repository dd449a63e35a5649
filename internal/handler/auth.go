package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thimira-N/todo-cabin/internal/logger"
	"github.com/Thimira-N/todo-cabin/internal/middleware"
	"github.com/Thimira-N/todo-cabin/internal/model"
	"github.com/Thimira-N/todo-cabin/internal/service"
	"github.com/Thimira-N/todo-cabin/internal/store"
)

type AuthHandler struct{ auth *service.AuthService }

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	u, err := h.auth.Register(c.Request.Context(), req.TeamName, req.Password)
	switch {
	case errors.Is(err, service.ErrTeamNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrTeamNameInvalid), errors.Is(err, service.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		logger.Error("register failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	logger.Info("register.ok", "uid", u.ID, "team", u.TeamName)

	token, err := middleware.NewToken(u.ID, u.TeamName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, model.LoginResponse{Token: token, User: u.Session()})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.TeamName, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		logger.Warn("login.failed", "team", req.TeamName)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("login failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	logger.Info("login.ok", "uid", u.ID, "team", u.TeamName)

	token, err := middleware.NewToken(u.ID, u.TeamName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, model.LoginResponse{Token: token, User: u.Session()})
}

// Me bootstraps a session: given a valid token it returns the team
// account so the client can decide between the login and main views.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.auth.CurrentUser(c.Request.Context(), c.GetString("user_id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "account no longer exists"})
		return
	}
	if err != nil {
		logger.Error("load current user failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load account"})
		return
	}
	c.JSON(http.StatusOK, u.Session())
}
