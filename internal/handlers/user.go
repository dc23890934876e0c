package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(baseLog *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         baseLog.With("handler", "UserHandler"),
		userService: userService,
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "user not found", err)
		return
	}
	RespondOK(c, gin.H{"user": user})
}

type updateAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// UpdateAPIKey stores the user's own OpenRouter key. An empty key
// clears it, so generation falls back to the server key.
func (h *UserHandler) UpdateAPIKey(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req updateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.userService.UpdateOpenRouterKey(c.Request.Context(), userID, strings.TrimSpace(req.APIKey)); err != nil {
		h.log.Error("UpdateAPIKey failed", "error", err, "user_id", userID)
		RespondError(c, http.StatusInternalServerError, "could not update API key", err)
		return
	}
	RespondOK(c, gin.H{"updated": true})
}
