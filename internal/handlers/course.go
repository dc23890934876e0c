package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(baseLog *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           baseLog.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

func (h *CourseHandler) ListPublicCourses(c *gin.Context) {
	courses, err := h.courseService.GetPublicCourses(c.Request.Context())
	if err != nil {
		h.log.Error("ListPublicCourses failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "could not load courses", err)
		return
	}
	RespondOK(c, gin.H{"courses": courses})
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid course id", err)
		return
	}
	var viewer *uuid.UUID
	if userID, ok := currentUserID(c); ok {
		viewer = &userID
	}
	courseResult, err := h.courseService.GetCourse(c.Request.Context(), courseID, viewer)
	if err != nil {
		RespondError(c, http.StatusNotFound, "course not found", err)
		return
	}
	RespondOK(c, courseResult)
}

func (h *CourseHandler) ListUserCourses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courses, err := h.courseService.GetUserCourses(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("ListUserCourses failed", "error", err, "user_id", userID)
		RespondError(c, http.StatusInternalServerError, "could not load courses", err)
		return
	}
	RespondOK(c, gin.H{"courses": courses})
}

func (h *CourseHandler) DeleteUserCourse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid course id", err)
		return
	}
	if err := h.courseService.DeleteUserCourse(c.Request.Context(), courseID, userID); err != nil {
		RespondError(c, http.StatusNotFound, "course not found", err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
