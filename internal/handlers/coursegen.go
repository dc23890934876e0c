package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/repotutor/repotutor-backend/internal/llm"
	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/services"
	"github.com/repotutor/repotutor-backend/internal/source"
	"github.com/repotutor/repotutor-backend/internal/types"
)

type CourseGenHandler struct {
	log               *logger.Logger
	generationService services.GenerationService
}

func NewCourseGenHandler(baseLog *logger.Logger, generationService services.GenerationService) *CourseGenHandler {
	return &CourseGenHandler{
		log:               baseLog.With("handler", "CourseGenHandler"),
		generationService: generationService,
	}
}

type generateCourseRequest struct {
	SourceURL  string `json:"sourceUrl"`
	SourceType string `json:"sourceType"`
	Context    string `json:"context"`
	Model      string `json:"model"`
	IsPublic   bool   `json:"isPublic"`
}

// Generate runs the full pipeline synchronously and returns the stored
// course. Anonymous callers are allowed; their courses have no owner.
func (h *CourseGenHandler) Generate(c *gin.Context) {
	var req generateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	req.SourceURL = strings.TrimSpace(req.SourceURL)
	if req.SourceURL == "" {
		RespondError(c, http.StatusBadRequest, "sourceUrl is required", nil)
		return
	}
	if req.Model == "" {
		RespondError(c, http.StatusBadRequest, "model is required", nil)
		return
	}
	kind, err := types.ParseSourceKind(req.SourceType)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid sourceType", err)
		return
	}

	input := services.GenerateCourseInput{
		SourceURL: req.SourceURL,
		Kind:      kind,
		Context:   req.Context,
		Model:     req.Model,
		IsPublic:  req.IsPublic,
	}
	if userID, ok := currentUserID(c); ok {
		input.UserID = &userID
	}

	courseResult, err := h.generationService.GenerateCourse(c.Request.Context(), input)
	if err != nil {
		h.respondGenerateError(c, err)
		return
	}
	RespondOK(c, courseResult)
}

func (h *CourseGenHandler) respondGenerateError(c *gin.Context, err error) {
	var llmErr *llm.Error
	if errors.As(err, &llmErr) {
		h.log.Error("generation failed at LLM stage", "type", string(llmErr.Kind), "error", llmErr.Message)
		c.JSON(http.StatusBadGateway, llmErr)
		return
	}
	var fetchErr *source.FetchError
	if errors.As(err, &fetchErr) {
		h.log.Error("generation failed at fetch stage", "url", fetchErr.URL, "error", err)
		RespondError(c, http.StatusBadGateway, fmt.Sprintf("could not fetch source material from %s", fetchErr.URL), err)
		return
	}
	h.log.Error("generation failed", "error", err)
	RespondError(c, http.StatusInternalServerError, "course generation failed", err)
}
