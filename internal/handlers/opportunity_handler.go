package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/services"
)

type OpportunityHandler struct {
	Service *services.OpportunityService
}

func NewOpportunityHandler(service *services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{Service: service}
}

func (h *OpportunityHandler) Create(c *gin.Context) {
	var opp models.Opportunity
	if err := c.ShouldBindJSON(&opp); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.Service.Create(c.Request.Context(), tenantFrom(c), &opp); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "opportunity created", opp)
}

func (h *OpportunityHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	opp, err := h.Service.GetByID(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if opp == nil {
		respondNotFound(c, "opportunity")
		return
	}
	respondOK(c, http.StatusOK, "ok", opp)
}

func (h *OpportunityHandler) List(c *gin.Context) {
	f := models.OpportunityFilter{
		PipelineID: qInt64(c, "pipeline_id"),
		StageID:    qInt64(c, "stage_id"),
		CompanyID:  qInt64(c, "company_id"),
		CloseFrom:  qTime(c, "close_from"),
		CloseTo:    qTime(c, "close_to"),
		Search:     c.Query("search"),
	}
	if s := c.Query("status"); s != "" {
		st := models.OpportunityStatus(s)
		f.Status = &st
	}
	p := pageParams(c)
	sortBy, order := sortParams(c)

	opps, total, err := h.Service.List(c.Request.Context(), tenantFrom(c), f, sortBy, order, p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "ok", opps, models.NewPageMeta(p, total))
}

func (h *OpportunityHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body models.OpportunityUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	opp, err := h.Service.Update(c.Request.Context(), tenantFrom(c), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	if opp == nil {
		respondNotFound(c, "opportunity")
		return
	}
	respondOK(c, http.StatusOK, "opportunity updated", opp)
}

func (h *OpportunityHandler) Delete(c *gin.Context) {
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
		respondNotFound(c, "opportunity")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OpportunityHandler) Stats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context(), tenantFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "ok", stats)
}
