package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/services"
)

type TaskHandler struct {
	Service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.Service.Create(c.Request.Context(), tenantFrom(c), &task); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "task created", task)
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.Service.GetByID(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		respondNotFound(c, "task")
		return
	}
	respondOK(c, http.StatusOK, "ok", task)
}

// List отдаёт задачи в фиксированном порядке: приоритет, затем дедлайн
// (пустые в конце), затем свежесть. Клиентская сортировка не принимается.
func (h *TaskHandler) List(c *gin.Context) {
	f := models.TaskFilter{
		AssigneeID: qInt64(c, "assignee_id"),
		LeadID:     qInt64(c, "lead_id"),
		DueFrom:    qTime(c, "due_from"),
		DueTo:      qTime(c, "due_to"),
		Search:     c.Query("search"),
	}
	if s := c.Query("status"); s != "" {
		st := models.TaskStatus(s)
		f.Status = &st
	}
	if s := c.Query("priority"); s != "" {
		pr := models.TaskPriority(s)
		f.Priority = &pr
	}
	p := pageParams(c)

	tasks, total, err := h.Service.List(c.Request.Context(), tenantFrom(c), f, p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "ok", tasks, models.NewPageMeta(p, total))
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body models.TaskUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	task, err := h.Service.Update(c.Request.Context(), tenantFrom(c), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		respondNotFound(c, "task")
		return
	}
	respondOK(c, http.StatusOK, "task updated", task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
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
		respondNotFound(c, "task")
		return
	}
	c.Status(http.StatusNoContent)
}
