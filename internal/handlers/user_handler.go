package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/authz"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/services"
)

type UserHandler struct {
	Service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// CreateUserRequest — только для Swagger
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" example:"agent"`
}

// @Summary      Создать пользователя
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user  body      CreateUserRequest  true  "Новый пользователь"
// @Success      201   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Role != "" && !authz.Valid(req.Role) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "unknown role"})
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: true,
	}
	if err := h.Service.Create(c.Request.Context(), tenantFrom(c), &user, req.Password); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "user created", user)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.Service.GetByID(c.Request.Context(), tenantFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondNotFound(c, "user")
		return
	}
	respondOK(c, http.StatusOK, "ok", user)
}

func (h *UserHandler) List(c *gin.Context) {
	p := pageParams(c)
	users, total, err := h.Service.List(c.Request.Context(), tenantFrom(c), p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "ok", users, models.NewPageMeta(p, total))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body models.UserUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	if body.Role != nil && !authz.Valid(*body.Role) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "unknown role"})
		return
	}
	user, err := h.Service.Update(c.Request.Context(), tenantFrom(c), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondNotFound(c, "user")
		return
	}
	respondOK(c, http.StatusOK, "user updated", user)
}
