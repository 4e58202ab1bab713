package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/services"
)

type LeadHandler struct {
	Service *services.LeadService
}

func NewLeadHandler(service *services.LeadService) *LeadHandler {
	return &LeadHandler{Service: service}
}

// @Summary      Создать лид
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        lead  body      models.Lead  true  "Лид"
// @Success      201  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		respondBindError(c, err)
		return
	}
	// Владельца по умолчанию проставляем из токена
	if lead.OwnerID == nil {
		uid := userFrom(c)
		lead.OwnerID = &uid
	}
	if err := h.Service.Create(c.Request.Context(), tenantFrom(c), &lead); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "lead created", lead)
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	lead, err := h.Service.GetByID(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if lead == nil {
		respondNotFound(c, "lead")
		return
	}
	respondOK(c, http.StatusOK, "ok", lead)
}

func (h *LeadHandler) List(c *gin.Context) {
	f := models.LeadFilter{
		OwnerID:     qInt64(c, "owner_id"),
		ContactID:   qInt64(c, "contact_id"),
		CreatedFrom: qTime(c, "created_from"),
		CreatedTo:   qTime(c, "created_to"),
		Search:      c.Query("search"),
	}
	if s := c.Query("status"); s != "" {
		st := models.LeadStatus(s)
		f.Status = &st
	}
	if s := c.Query("stage"); s != "" {
		st := models.LeadStage(s)
		f.Stage = &st
	}
	if s := c.Query("source"); s != "" {
		src := models.ContactSource(s)
		f.Source = &src
	}
	p := pageParams(c)
	sortBy, order := sortParams(c)

	leads, total, err := h.Service.List(c.Request.Context(), tenantFrom(c), f, sortBy, order, p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "ok", leads, models.NewPageMeta(p, total))
}

func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body models.LeadUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	lead, err := h.Service.Update(c.Request.Context(), tenantFrom(c), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	if lead == nil {
		respondNotFound(c, "lead")
		return
	}
	respondOK(c, http.StatusOK, "lead updated", lead)
}

func (h *LeadHandler) Delete(c *gin.Context) {
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
		respondNotFound(c, "lead")
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateLeadStatusRequest — только для Swagger
type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required" example:"qualified"`
}

func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	lead, err := h.Service.UpdateStatus(c.Request.Context(), tenantFrom(c), id, models.LeadStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	if lead == nil {
		respondNotFound(c, "lead")
		return
	}
	respondOK(c, http.StatusOK, "status updated", lead)
}

// AssignLeadRequest — только для Swagger
type AssignLeadRequest struct {
	OwnerID int64 `json:"owner_id" binding:"required"`
}

func (h *LeadHandler) Assign(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AssignLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	lead, err := h.Service.Assign(c.Request.Context(), tenantFrom(c), id, req.OwnerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if lead == nil {
		respondNotFound(c, "lead")
		return
	}
	respondOK(c, http.StatusOK, "lead assigned", lead)
}

// AddTagRequest — только для Swagger
type AddTagRequest struct {
	Name string `json:"name" binding:"required" example:"hot"`
}

func (h *LeadHandler) AddTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AddTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	tags, err := h.Service.AddTag(c.Request.Context(), tenantFrom(c), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "tag linked", gin.H{"tags": tags})
}

func (h *LeadHandler) RemoveTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	name := strings.TrimSpace(c.Param("tagName"))
	if name == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "invalid tag name"})
		return
	}
	removed, err := h.Service.RemoveTag(c.Request.Context(), tenantFrom(c), id, name)
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "tag link")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LeadHandler) Stats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context(), tenantFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "ok", stats)
}
