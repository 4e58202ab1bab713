package services

import (
	"context"
	"strings"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/authz"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
)

type UserService interface {
	Create(ctx context.Context, tenantID int64, u *models.User, plainPassword string) error
	GetByID(ctx context.Context, tenantID, id int64) (*models.User, error)
	List(ctx context.Context, tenantID int64, p models.PageParams) ([]models.User, int, error)
	Update(ctx context.Context, tenantID, id int64, u models.UserUpdate) (*models.User, error)
}

type userService struct {
	repo *repositories.UserRepository
	auth AuthService
}

func NewUserService(repo *repositories.UserRepository, auth AuthService) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) Create(ctx context.Context, tenantID int64, u *models.User, plainPassword string) error {
	if strings.TrimSpace(plainPassword) == "" {
		return apperrors.Validation("password", "password is required")
	}
	if u.Role == "" {
		u.Role = authz.RoleAgent
	}
	hash, err := s.auth.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	u.TenantID = tenantID
	u.PasswordHash = hash
	u.IsActive = true
	return s.repo.Create(ctx, u)
}

func (s *userService) GetByID(ctx context.Context, tenantID, id int64) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	// чужой tenant неотличим от несуществующего
	if u.TenantID != tenantID {
		return nil, nil
	}
	return u, nil
}

func (s *userService) List(ctx context.Context, tenantID int64, p models.PageParams) ([]models.User, int, error) {
	return s.repo.List(ctx, tenantID, p)
}

func (s *userService) Update(ctx context.Context, tenantID, id int64, u models.UserUpdate) (*models.User, error) {
	var passwordHash *string
	if u.Password != nil && strings.TrimSpace(*u.Password) != "" {
		h, err := s.auth.HashPassword(*u.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &h
	}
	return s.repo.Update(ctx, tenantID, id, u, passwordHash)
}
