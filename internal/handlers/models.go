package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/services"
)

type ModelsHandler struct {
	log           *logger.Logger
	modelsService services.ModelsService
}

func NewModelsHandler(baseLog *logger.Logger, modelsService services.ModelsService) *ModelsHandler {
	return &ModelsHandler{
		log:           baseLog.With("handler", "ModelsHandler"),
		modelsService: modelsService,
	}
}

func (h *ModelsHandler) ListModels(c *gin.Context) {
	models, err := h.modelsService.List(c.Request.Context())
	if err != nil {
		h.log.Error("ListModels failed", "error", err)
		RespondError(c, http.StatusBadGateway, "could not load model catalog", err)
		return
	}
	RespondOK(c, gin.H{"models": models})
}
