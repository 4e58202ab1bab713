package services

import (
	"context"
	"strings"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
)

type PipelineService struct {
	repo *repositories.PipelineRepository
}

func NewPipelineService(repo *repositories.PipelineRepository) *PipelineService {
	return &PipelineService{repo: repo}
}

func (s *PipelineService) Create(ctx context.Context, tenantID int64, p *models.Pipeline) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.Validation("name", "name is required")
	}
	p.TenantID = tenantID
	return s.repo.Create(ctx, p)
}

func (s *PipelineService) GetByID(ctx context.Context, tenantID, id int64) (*models.Pipeline, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *PipelineService) List(ctx context.Context, tenantID int64) ([]models.Pipeline, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *PipelineService) Rename(ctx context.Context, tenantID, id int64, name string) (*models.Pipeline, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("name", "name is required")
	}
	ok, err := s.repo.Rename(ctx, tenantID, id, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *PipelineService) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	return s.repo.Delete(ctx, tenantID, id)
}

// AddStage — позиция назначается в репозитории (max+1), win probability 0..100.
func (s *PipelineService) AddStage(ctx context.Context, tenantID, pipelineID int64, st *models.PipelineStage) error {
	if strings.TrimSpace(st.Name) == "" {
		return apperrors.Validation("name", "name is required")
	}
	if st.WinProbability < 0 || st.WinProbability > 100 {
		return apperrors.Validation("win_probability", "win probability must be between 0 and 100")
	}
	pl, err := s.repo.GetByID(ctx, tenantID, pipelineID)
	if err != nil {
		return err
	}
	if pl == nil {
		return apperrors.NotFound("pipeline")
	}
	st.TenantID = tenantID
	st.PipelineID = pipelineID
	return s.repo.AddStage(ctx, st)
}

func (s *PipelineService) DeleteStage(ctx context.Context, tenantID, pipelineID, stageID int64) (bool, error) {
	return s.repo.DeleteStage(ctx, tenantID, pipelineID, stageID)
}
