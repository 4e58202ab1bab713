package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/services"
)

type InteractionHandler struct {
	Service *services.InteractionService
}

func NewInteractionHandler(service *services.InteractionService) *InteractionHandler {
	return &InteractionHandler{Service: service}
}

func (h *InteractionHandler) Create(c *gin.Context) {
	var in models.Interaction
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	// Автора фиксируем из токена
	uid := userFrom(c)
	in.CreatedBy = &uid

	if err := h.Service.Create(c.Request.Context(), tenantFrom(c), &in); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "interaction created", in)
}

func (h *InteractionHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, err := h.Service.GetByID(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if in == nil {
		respondNotFound(c, "interaction")
		return
	}
	respondOK(c, http.StatusOK, "ok", in)
}

func (h *InteractionHandler) List(c *gin.Context) {
	f := models.InteractionFilter{
		ContactID:    qInt64(c, "contact_id"),
		LeadID:       qInt64(c, "lead_id"),
		OccurredFrom: qTime(c, "occurred_from"),
		OccurredTo:   qTime(c, "occurred_to"),
		Search:       c.Query("search"),
	}
	if s := c.Query("channel"); s != "" {
		ch := models.InteractionChannel(s)
		f.Channel = &ch
	}
	if s := c.Query("direction"); s != "" {
		d := models.InteractionDirection(s)
		f.Direction = &d
	}
	p := pageParams(c)
	sortBy, order := sortParams(c)

	items, total, err := h.Service.List(c.Request.Context(), tenantFrom(c), f, sortBy, order, p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "ok", items, models.NewPageMeta(p, total))
}

func (h *InteractionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.Service.Delete(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, "interaction")
		return
	}
	c.Status(http.StatusNoContent)
}
