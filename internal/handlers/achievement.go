package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/services"
)

type AchievementHandler struct {
	log                *logger.Logger
	achievementService services.AchievementService
}

func NewAchievementHandler(baseLog *logger.Logger, achievementService services.AchievementService) *AchievementHandler {
	return &AchievementHandler{
		log:                baseLog.With("handler", "AchievementHandler"),
		achievementService: achievementService,
	}
}

func (h *AchievementHandler) ListUserAchievements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	achievements, err := h.achievementService.ListUserAchievements(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("ListUserAchievements failed", "error", err, "user_id", userID)
		RespondError(c, http.StatusInternalServerError, "could not load achievements", err)
		return
	}
	RespondOK(c, gin.H{"achievements": achievements})
}
