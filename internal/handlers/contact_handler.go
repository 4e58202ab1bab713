package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/services"
)

type ContactHandler struct {
	Service *services.ContactService
}

func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{Service: service}
}

// @Summary      Создать контакт
// @Tags         Contacts
// @Accept       json
// @Produce      json
// @Param        contact  body      models.Contact  true  "Контакт"
// @Success      201  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.Service.Create(c.Request.Context(), tenantFrom(c), &contact); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "contact created", contact)
}

func (h *ContactHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	contact, err := h.Service.GetByID(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if contact == nil {
		respondNotFound(c, "contact")
		return
	}
	respondOK(c, http.StatusOK, "ok", contact)
}

func (h *ContactHandler) List(c *gin.Context) {
	f := models.ContactFilter{
		CompanyID:   qInt64(c, "company_id"),
		CreatedFrom: qTime(c, "created_from"),
		CreatedTo:   qTime(c, "created_to"),
		Search:      c.Query("search"),
	}
	if s := c.Query("source"); s != "" {
		src := models.ContactSource(s)
		f.Source = &src
	}
	p := pageParams(c)
	sortBy, order := sortParams(c)

	contacts, total, err := h.Service.List(c.Request.Context(), tenantFrom(c), f, sortBy, order, p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "ok", contacts, models.NewPageMeta(p, total))
}

func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body models.ContactUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	contact, err := h.Service.Update(c.Request.Context(), tenantFrom(c), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	if contact == nil {
		respondNotFound(c, "contact")
		return
	}
	respondOK(c, http.StatusOK, "contact updated", contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
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
		respondNotFound(c, "contact")
		return
	}
	c.Status(http.StatusNoContent)
}
