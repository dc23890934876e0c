package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/services"
)

type ProgressHandler struct {
	log             *logger.Logger
	progressService services.ProgressService
}

func NewProgressHandler(baseLog *logger.Logger, progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:             baseLog.With("handler", "ProgressHandler"),
		progressService: progressService,
	}
}

func (h *ProgressHandler) GetCourseProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid course id", err)
		return
	}
	progress, err := h.progressService.GetProgress(c.Request.Context(), userID, courseID)
	if err != nil {
		h.log.Error("GetCourseProgress failed", "error", err, "course_id", courseID)
		RespondError(c, http.StatusInternalServerError, "could not load progress", err)
		return
	}
	RespondOK(c, gin.H{"progress": progress})
}

func (h *ProgressHandler) ListProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	progress, err := h.progressService.ListProgress(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("ListProgress failed", "error", err, "user_id", userID)
		RespondError(c, http.StatusInternalServerError, "could not load progress", err)
		return
	}
	RespondOK(c, gin.H{"progress": progress})
}

func (h *ProgressHandler) MarkStepComplete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid course id", err)
		return
	}
	stepID, err := strconv.Atoi(c.Param("stepId"))
	if err != nil || stepID < 1 {
		RespondError(c, http.StatusBadRequest, "invalid step id", err)
		return
	}
	progress, err := h.progressService.MarkStepComplete(c.Request.Context(), userID, courseID, stepID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "could not mark step complete", err)
		return
	}
	RespondOK(c, gin.H{"progress": progress})
}
