package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.Service.Summary(c.Request.Context(), tenantFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "ok", summary)
}

func (h *ReportHandler) SummaryPDF(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.Service.SummaryPDF(c.Request.Context(), tenantFrom(c), &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="crm_summary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
