package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/services"
)

type PipelineHandler struct {
	Service *services.PipelineService
}

func NewPipelineHandler(service *services.PipelineService) *PipelineHandler {
	return &PipelineHandler{Service: service}
}

func (h *PipelineHandler) Create(c *gin.Context) {
	var pipeline models.Pipeline
	if err := c.ShouldBindJSON(&pipeline); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.Service.Create(c.Request.Context(), tenantFrom(c), &pipeline); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "pipeline created", pipeline)
}

func (h *PipelineHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pipeline, err := h.Service.GetByID(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if pipeline == nil {
		respondNotFound(c, "pipeline")
		return
	}
	respondOK(c, http.StatusOK, "ok", pipeline)
}

func (h *PipelineHandler) List(c *gin.Context) {
	pipelines, err := h.Service.List(c.Request.Context(), tenantFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "ok", pipelines)
}

// RenamePipelineRequest — только для Swagger
type RenamePipelineRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *PipelineHandler) Rename(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req RenamePipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	pipeline, err := h.Service.Rename(c.Request.Context(), tenantFrom(c), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	if pipeline == nil {
		respondNotFound(c, "pipeline")
		return
	}
	respondOK(c, http.StatusOK, "pipeline renamed", pipeline)
}

func (h *PipelineHandler) Delete(c *gin.Context) {
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
		respondNotFound(c, "pipeline")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PipelineHandler) AddStage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var stage models.PipelineStage
	if err := c.ShouldBindJSON(&stage); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.Service.AddStage(c.Request.Context(), tenantFrom(c), id, &stage); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "stage added", stage)
}

func (h *PipelineHandler) DeleteStage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	stageID, ok := pathID(c, "stageId")
	if !ok {
		return
	}
	deleted, err := h.Service.DeleteStage(c.Request.Context(), tenantFrom(c), id, stageID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, "stage")
		return
	}
	c.Status(http.StatusNoContent)
}
