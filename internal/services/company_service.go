package services

import (
	"context"
	"strings"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
)

type CompanyService struct {
	repo *repositories.CompanyRepository
}

func NewCompanyService(repo *repositories.CompanyRepository) *CompanyService {
	return &CompanyService{repo: repo}
}

func (s *CompanyService) Create(ctx context.Context, tenantID int64, c *models.Company) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.Validation("name", "name is required")
	}
	c.TenantID = tenantID
	return s.repo.Create(ctx, c)
}

func (s *CompanyService) GetByID(ctx context.Context, tenantID, id int64) (*models.Company, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *CompanyService) List(ctx context.Context, tenantID int64, f models.CompanyFilter, sortBy, order string, p models.PageParams) ([]models.Company, int, error) {
	return s.repo.List(ctx, tenantID, f, sortBy, order, p)
}

func (s *CompanyService) Update(ctx context.Context, tenantID, id int64, u models.CompanyUpdate) (*models.Company, error) {
	return s.repo.Update(ctx, tenantID, id, u)
}

func (s *CompanyService) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	return s.repo.Delete(ctx, tenantID, id)
}
