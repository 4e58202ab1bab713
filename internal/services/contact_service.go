package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
)

type ContactService struct {
	db   *sql.DB
	repo *repositories.ContactRepository
}

func NewContactService(db *sql.DB, repo *repositories.ContactRepository) *ContactService {
	return &ContactService{db: db, repo: repo}
}

// Create — прямое создание (API/агент): дубликат по email-или-phone — это
// конфликт, а не слияние. Слияние делает только ingestion-путь (ResolveOrCreate).
func (s *ContactService) Create(ctx context.Context, tenantID int64, c *models.Contact) error {
	c.TenantID = tenantID
	if c.Source == "" {
		c.Source = models.ContactSourceManual
	}
	return repositories.WithTenantTx(ctx, s.db, tenantID, func(tx *sql.Tx) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.FindByEmailOrPhone(ctx, tenantID, c.Email, c.Phone)
		if err != nil {
			return err
		}
		if existing != nil {
			field := "email"
			if c.Email == "" || (existing.Phone != "" && existing.Phone == c.Phone) {
				field = "phone"
			}
			return apperrors.Conflict(field, "contact with this "+field+" already exists")
		}
		return repo.Create(ctx, c)
	})
}

// ResolveOrCreate — дедуп для ingestion-путей: матч по email ИЛИ phone
// переиспользует существующий контакт (с дозаполнением пустых полей),
// иначе создаётся новый с переданным source.
func (s *ContactService) ResolveOrCreate(ctx context.Context, repo *repositories.ContactRepository, tenantID int64, c *models.Contact) (int64, error) {
	existing, err := repo.FindByEmailOrPhone(ctx, tenantID, c.Email, c.Phone)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		if needsBackfill(existing, c) {
			if err := repo.Backfill(ctx, tenantID, existing.ID, c.FirstName, c.LastName, c.KfVisitorID); err != nil {
				return 0, err
			}
		}
		return existing.ID, nil
	}

	c.TenantID = tenantID
	if c.Source == "" {
		c.Source = models.ContactSourceManual
	}
	if err := repo.Create(ctx, c); err != nil {
		return 0, err
	}
	return c.ID, nil
}

func needsBackfill(existing, incoming *models.Contact) bool {
	if existing.FirstName == "" && strings.TrimSpace(incoming.FirstName) != "" {
		return true
	}
	if existing.LastName == "" && strings.TrimSpace(incoming.LastName) != "" {
		return true
	}
	if existing.KfVisitorID == "" && strings.TrimSpace(incoming.KfVisitorID) != "" {
		return true
	}
	return false
}

func (s *ContactService) GetByID(ctx context.Context, tenantID, id int64) (*models.Contact, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *ContactService) List(ctx context.Context, tenantID int64, f models.ContactFilter, sortBy, order string, p models.PageParams) ([]models.Contact, int, error) {
	return s.repo.List(ctx, tenantID, f, sortBy, order, p)
}

func (s *ContactService) Update(ctx context.Context, tenantID, id int64, u models.ContactUpdate) (*models.Contact, error) {
	return s.repo.Update(ctx, tenantID, id, u)
}

func (s *ContactService) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	return s.repo.Delete(ctx, tenantID, id)
}
