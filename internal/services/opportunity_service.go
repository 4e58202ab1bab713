package services

import (
	"context"
	"strings"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
)

type OpportunityService struct {
	repo         *repositories.OpportunityRepository
	pipelineRepo *repositories.PipelineRepository
}

func NewOpportunityService(repo *repositories.OpportunityRepository, pipelineRepo *repositories.PipelineRepository) *OpportunityService {
	return &OpportunityService{repo: repo, pipelineRepo: pipelineRepo}
}

func (s *OpportunityService) Create(ctx context.Context, tenantID int64, o *models.Opportunity) error {
	if strings.TrimSpace(o.Name) == "" {
		return apperrors.Validation("name", "name is required")
	}
	o.TenantID = tenantID
	if o.Status == "" {
		o.Status = models.OpportunityOpen
	}
	if o.Currency == "" {
		o.Currency = models.DefaultCurrency
	}
	if err := s.checkStage(ctx, tenantID, o.PipelineID, o.StageID); err != nil {
		return err
	}
	return s.repo.Create(ctx, o)
}

// checkStage — stage обязан принадлежать указанному pipeline того же tenant.
func (s *OpportunityService) checkStage(ctx context.Context, tenantID, pipelineID, stageID int64) error {
	stages, err := s.pipelineRepo.ListStages(ctx, tenantID, pipelineID)
	if err != nil {
		return err
	}
	for _, st := range stages {
		if st.ID == stageID {
			return nil
		}
	}
	return apperrors.Validation("stage_id", "stage does not belong to the pipeline")
}

func (s *OpportunityService) GetByID(ctx context.Context, tenantID, id int64) (*models.Opportunity, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *OpportunityService) List(ctx context.Context, tenantID int64, f models.OpportunityFilter, sortBy, order string, p models.PageParams) ([]models.Opportunity, int, error) {
	return s.repo.List(ctx, tenantID, f, sortBy, order, p)
}

func (s *OpportunityService) Update(ctx context.Context, tenantID, id int64, u models.OpportunityUpdate) (*models.Opportunity, error) {
	if u.Status != nil {
		switch *u.Status {
		case models.OpportunityOpen, models.OpportunityWon, models.OpportunityLost, models.OpportunityAbandoned:
		default:
			return nil, apperrors.Validation("status", "unknown opportunity status")
		}
	}
	if u.PipelineID != nil || u.StageID != nil {
		current, err := s.repo.GetByID(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, nil
		}
		pipelineID := current.PipelineID
		stageID := current.StageID
		if u.PipelineID != nil {
			pipelineID = *u.PipelineID
		}
		if u.StageID != nil {
			stageID = *u.StageID
		}
		if err := s.checkStage(ctx, tenantID, pipelineID, stageID); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, tenantID, id, u)
}

func (s *OpportunityService) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *OpportunityService) Stats(ctx context.Context, tenantID int64) (*models.OpportunityStats, error) {
	return s.repo.Stats(ctx, tenantID)
}
