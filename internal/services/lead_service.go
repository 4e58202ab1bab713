package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
)

type LeadService struct {
	db       *sql.DB
	repo     *repositories.LeadRepository
	tagRepo  *repositories.TagRepository
	userRepo *repositories.UserRepository
}

func NewLeadService(db *sql.DB, repo *repositories.LeadRepository, tagRepo *repositories.TagRepository, userRepo *repositories.UserRepository) *LeadService {
	return &LeadService{db: db, repo: repo, tagRepo: tagRepo, userRepo: userRepo}
}

func (s *LeadService) Create(ctx context.Context, tenantID int64, l *models.Lead) error {
	l.TenantID = tenantID
	if l.Status == "" {
		l.Status = models.LeadStatusNew
	}
	if l.Stage == "" {
		l.Stage = models.LeadStageLead
	}
	if l.Source == "" {
		l.Source = models.ContactSourceManual
	}
	if l.Score < 0 {
		l.Score = 0
	}
	if l.Score > 100 {
		l.Score = 100
	}
	if strings.TrimSpace(l.Title) == "" {
		return apperrors.Validation("title", "title is required")
	}
	return repositories.WithTenantTx(ctx, s.db, tenantID, func(tx *sql.Tx) error {
		return s.repo.WithTx(tx).Create(ctx, l)
	})
}

func (s *LeadService) GetByID(ctx context.Context, tenantID, id int64) (*models.Lead, error) {
	l, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil || l == nil {
		return nil, err
	}
	tags, err := s.tagRepo.ListForLead(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	l.Tags = tags
	return l, nil
}

func (s *LeadService) List(ctx context.Context, tenantID int64, f models.LeadFilter, sortBy, order string, p models.PageParams) ([]models.Lead, int, error) {
	return s.repo.List(ctx, tenantID, f, sortBy, order, p)
}

func (s *LeadService) Update(ctx context.Context, tenantID, id int64, u models.LeadUpdate) (*models.Lead, error) {
	if u.Score != nil && (*u.Score < 0 || *u.Score > 100) {
		return nil, apperrors.Validation("score", "score must be between 0 and 100")
	}
	if u.Status != nil && !validLeadStatus(*u.Status) {
		return nil, apperrors.Validation("status", "unknown lead status")
	}
	if u.Stage != nil && !validLeadStage(*u.Stage) {
		return nil, apperrors.Validation("stage", "unknown lead stage")
	}
	return s.repo.Update(ctx, tenantID, id, u)
}

func (s *LeadService) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *LeadService) UpdateStatus(ctx context.Context, tenantID, id int64, to models.LeadStatus) (*models.Lead, error) {
	if !validLeadStatus(to) {
		return nil, apperrors.Validation("status", "unknown lead status")
	}
	ok, err := s.repo.UpdateStatus(ctx, tenantID, id, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return s.GetByID(ctx, tenantID, id)
}

// Assign — смена владельца; владелец должен быть активным пользователем
// того же tenant.
func (s *LeadService) Assign(ctx context.Context, tenantID, id, ownerID int64) (*models.Lead, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.TenantID != tenantID || !owner.IsActive {
		return nil, apperrors.Validation("owner_id", "owner does not exist or is not active")
	}
	ok, err := s.repo.UpdateOwner(ctx, tenantID, id, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return s.GetByID(ctx, tenantID, id)
}

// AddTag — upsert тега по имени + идемпотентная связка, в одной транзакции.
func (s *LeadService) AddTag(ctx context.Context, tenantID, leadID int64, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("name", "tag name is required")
	}
	var tags []string
	err := repositories.WithTenantTx(ctx, s.db, tenantID, func(tx *sql.Tx) error {
		leads := s.repo.WithTx(tx)
		tagsRepo := s.tagRepo.WithTx(tx)

		lead, err := leads.GetByID(ctx, tenantID, leadID)
		if err != nil {
			return err
		}
		if lead == nil {
			return apperrors.NotFound("lead")
		}
		tag, err := tagsRepo.UpsertByName(ctx, tenantID, name)
		if err != nil {
			return err
		}
		if err := tagsRepo.Link(ctx, tenantID, leadID, tag.ID); err != nil {
			return err
		}
		tags, err = tagsRepo.ListForLead(ctx, tenantID, leadID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *LeadService) RemoveTag(ctx context.Context, tenantID, leadID int64, name string) (bool, error) {
	return s.tagRepo.Unlink(ctx, tenantID, leadID, name)
}

func (s *LeadService) Stats(ctx context.Context, tenantID int64) (*repositories.LeadStats, error) {
	return s.repo.Stats(ctx, tenantID)
}

func validLeadStatus(st models.LeadStatus) bool {
	switch st {
	case models.LeadStatusNew, models.LeadStatusWorking, models.LeadStatusQualified,
		models.LeadStatusUnqualified, models.LeadStatusConverted:
		return true
	}
	return false
}

func validLeadStage(st models.LeadStage) bool {
	switch st {
	case models.LeadStageLead, models.LeadStageMQL, models.LeadStageSQL:
		return true
	}
	return false
}
