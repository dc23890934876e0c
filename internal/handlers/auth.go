package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(baseLog *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:         baseLog.With("handler", "AuthHandler"),
		authService: authService,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	user, token, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "registration failed", err)
		return
	}
	RespondOK(c, gin.H{"user": user, "token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	user, token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	RespondOK(c, gin.H{"user": user, "token": token})
}
