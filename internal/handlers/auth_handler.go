package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/garvthakre/kf12/internal/middleware"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
	"github.com/garvthakre/kf12/internal/services"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	users  *repositories.UserRepository
	auth   services.AuthService
	secret []byte
}

func NewAuthHandler(users *repositories.UserRepository, auth services.AuthService, secret []byte) *AuthHandler {
	return &AuthHandler{users: users, auth: auth, secret: secret}
}

// @Summary      Выдача токена
// @Description  Аутентифицирует пользователя в рамках tenant'а и возвращает токен доступа
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      models.TokenRequest  true  "Данные для входа"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	email := strings.TrimSpace(req.Username)
	log.Printf("[auth][token] attempt email=%q tenant=%d", email, req.TenantID)

	user, err := h.users.GetByEmailAndTenant(c.Request.Context(), email, req.TenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}
	if !h.auth.CheckPassword(user.PasswordHash, strings.TrimSpace(req.Password)) {
		log.Printf("[auth][token] bcrypt mismatch for userID=%d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	claims := &middleware.Claims{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		log.Printf("[auth][token] sign failed for userID=%d: err=%v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}
	log.Printf("[auth][token] success userID=%d tenant=%d", user.ID, user.TenantID)

	respondOK(c, http.StatusOK, "token issued", gin.H{
		"token":      signed,
		"expires_at": claims.ExpiresAt.Time,
		"user":       user, // PasswordHash помечен json:"-", наружу не уйдёт
	})
}

// @Summary      Текущий пользователь
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), userFrom(c))
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
