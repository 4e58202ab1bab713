package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
)

// ActivityHandler — только чтение: журнал append-only, пишут в него
// сервисы, а не клиенты.
type ActivityHandler struct {
	Repo *repositories.ActivityRepository
}

func NewActivityHandler(repo *repositories.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{Repo: repo}
}

func (h *ActivityHandler) List(c *gin.Context) {
	p := pageParams(c)
	entries, total, err := h.Repo.List(c.Request.Context(), tenantFrom(c), c.Query("entity_type"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "ok", entries, models.NewPageMeta(p, total))
}
