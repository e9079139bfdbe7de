package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zjy19901124/rallyroo-rc-store/internal/http/middleware"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/settings"
	"github.com/zjy19901124/rallyroo-rc-store/internal/shared/apperr"
)

type SettingsHandler struct {
	Repo *settings.Repo
}

func NewSettingsHandler(repo *settings.Repo) *SettingsHandler {
	return &SettingsHandler{Repo: repo}
}

// GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.Repo.Get(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": s})
}
