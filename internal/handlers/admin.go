package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/prompts"
	"github.com/repotutor/repotutor-backend/internal/types"
)

// AdminHandler exposes the system prompt store to allow-listed admins.
type AdminHandler struct {
	log         *logger.Logger
	promptStore *prompts.Store
}

func NewAdminHandler(baseLog *logger.Logger, promptStore *prompts.Store) *AdminHandler {
	return &AdminHandler{
		log:         baseLog.With("handler", "AdminHandler"),
		promptStore: promptStore,
	}
}

func (h *AdminHandler) ListPrompts(c *gin.Context) {
	all := h.promptStore.All()
	out := make(map[string]string, len(all))
	for kind, prompt := range all {
		out[string(kind)] = prompt
	}
	RespondOK(c, gin.H{"prompts": out})
}

type updatePromptRequest struct {
	Prompt string `json:"prompt"`
}

func (h *AdminHandler) UpdatePrompt(c *gin.Context) {
	kind, err := types.ParseSourceKind(c.Param("type"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid prompt type", err)
		return
	}
	var req updatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		RespondError(c, http.StatusBadRequest, "prompt must not be empty", nil)
		return
	}
	if err := h.promptStore.Set(kind, req.Prompt); err != nil {
		RespondError(c, http.StatusBadRequest, "could not update prompt", err)
		return
	}
	h.log.Info("system prompt updated", "type", string(kind))
	RespondOK(c, gin.H{"type": string(kind), "prompt": req.Prompt})
}

func (h *AdminHandler) ResetPrompt(c *gin.Context) {
	kind, err := types.ParseSourceKind(c.Param("type"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid prompt type", err)
		return
	}
	prompt, err := h.promptStore.Reset(kind)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "could not reset prompt", err)
		return
	}
	h.log.Info("system prompt reset", "type", string(kind))
	RespondOK(c, gin.H{"type": string(kind), "prompt": prompt})
}
