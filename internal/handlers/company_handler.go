package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/services"
)

type CompanyHandler struct {
	Service *services.CompanyService
}

func NewCompanyHandler(service *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{Service: service}
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var company models.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.Service.Create(c.Request.Context(), tenantFrom(c), &company); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "company created", company)
}

func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	company, err := h.Service.GetByID(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if company == nil {
		respondNotFound(c, "company")
		return
	}
	respondOK(c, http.StatusOK, "ok", company)
}

func (h *CompanyHandler) List(c *gin.Context) {
	f := models.CompanyFilter{Search: c.Query("search")}
	p := pageParams(c)
	sortBy, order := sortParams(c)

	companies, total, err := h.Service.List(c.Request.Context(), tenantFrom(c), f, sortBy, order, p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "ok", companies, models.NewPageMeta(p, total))
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body models.CompanyUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	company, err := h.Service.Update(c.Request.Context(), tenantFrom(c), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	if company == nil {
		respondNotFound(c, "company")
		return
	}
	respondOK(c, http.StatusOK, "company updated", company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
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
		respondNotFound(c, "company")
		return
	}
	c.Status(http.StatusNoContent)
}
