package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/services"
)

type WebhookHandler struct {
	Service *services.WebhookService
}

func NewWebhookHandler(service *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{Service: service}
}

// @Summary      Приём лида с выставки
// @Description  Атомарно создаёт контакт (с дедупликацией), лид и запись в журнале
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Param        event  body      models.LeadCapturedPayload  true  "Событие сканирования"
// @Success      201  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Router       /webhooks/fairex/lead-captured [post]
func (h *WebhookHandler) LeadCaptured(c *gin.Context) {
	var payload models.LeadCapturedPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	log.Printf("[webhook][lead-captured] tenant=%d exhibition=%v", payload.TenantID, payload.ExhibitionID)

	result, err := h.Service.HandleLeadCaptured(c.Request.Context(), &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, result.Message, result)
}
