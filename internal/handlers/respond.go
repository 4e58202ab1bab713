package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/middleware"
	"github.com/garvthakre/kf12/internal/models"
)

// Единый конверт ответа: {success, message, data?, errors?}.

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondList(c *gin.Context, message string, items interface{}, meta models.PageMeta) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    items,
		"meta":    meta,
	})
}

// respondError разносит типовые ошибки в статус-коды; внутренние детали
// наружу не уходят (логируются здесь).
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch apperrors.KindOf(err) {
	case apperrors.KindUnauthorized:
		status = http.StatusUnauthorized
		msg = err.Error()
	case apperrors.KindValidation, apperrors.KindConflict:
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	case apperrors.KindNotFound:
		status = http.StatusNotFound
		msg = err.Error()
	default:
		log.Printf("[http] internal error: %v", err)
	}

	body := gin.H{"success": false, "message": msg}
	if f := apperrors.FieldOf(err); f != "" {
		body["errors"] = []gin.H{{"field": f, "message": msg}}
	}
	c.JSON(status, body)
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": err.Error()})
}

func respondNotFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": what + " not found"})
}

// ---- параметры запроса

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "invalid " + name})
		return 0, false
	}
	return id, true
}

func tenantFrom(c *gin.Context) int64 {
	return c.GetInt64(middleware.CtxTenantID)
}

func userFrom(c *gin.Context) int64 {
	return c.GetInt64(middleware.CtxUserID)
}

func pageParams(c *gin.Context) models.PageParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return models.PageParams{Page: page, Limit: limit}
}

func sortParams(c *gin.Context) (sortBy, order string) {
	return c.Query("sort_by"), c.Query("order")
}

func qInt64(c *gin.Context, key string) *int64 {
	s := c.Query(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// qTime принимает RFC3339 либо короткую дату.
func qTime(c *gin.Context, key string) *time.Time {
	s := c.Query(key)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}
