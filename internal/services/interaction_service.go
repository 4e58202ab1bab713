package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
)

type InteractionService struct {
	db   *sql.DB
	repo *repositories.InteractionRepository
}

func NewInteractionService(db *sql.DB, repo *repositories.InteractionRepository) *InteractionService {
	return &InteractionService{db: db, repo: repo}
}

func (s *InteractionService) Create(ctx context.Context, tenantID int64, in *models.Interaction) error {
	if !validChannel(in.Channel) {
		return apperrors.Validation("channel", "unknown interaction channel")
	}
	if in.Direction != models.DirectionIn && in.Direction != models.DirectionOut {
		return apperrors.Validation("direction", "direction must be 'in' or 'out'")
	}
	in.TenantID = tenantID
	if in.OccurredAt.IsZero() {
		in.OccurredAt = time.Now()
	}
	return repositories.WithTenantTx(ctx, s.db, tenantID, func(tx *sql.Tx) error {
		return s.repo.WithTx(tx).Create(ctx, in)
	})
}

func (s *InteractionService) GetByID(ctx context.Context, tenantID, id int64) (*models.Interaction, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *InteractionService) List(ctx context.Context, tenantID int64, f models.InteractionFilter, sortBy, order string, p models.PageParams) ([]models.Interaction, int, error) {
	return s.repo.List(ctx, tenantID, f, sortBy, order, p)
}

func (s *InteractionService) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	return s.repo.Delete(ctx, tenantID, id)
}

func validChannel(ch models.InteractionChannel) bool {
	switch ch {
	case models.ChannelChat, models.ChannelEmail, models.ChannelSMS, models.ChannelWhatsapp,
		models.ChannelCall, models.ChannelMeeting, models.ChannelNote:
		return true
	}
	return false
}
