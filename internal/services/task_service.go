package services

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
)

type TaskService struct {
	db       *sql.DB
	repo     *repositories.TaskRepository
	userRepo *repositories.UserRepository
	email    EmailService
}

func NewTaskService(db *sql.DB, repo *repositories.TaskRepository, userRepo *repositories.UserRepository, email EmailService) *TaskService {
	return &TaskService{db: db, repo: repo, userRepo: userRepo, email: email}
}

func (s *TaskService) Create(ctx context.Context, tenantID int64, t *models.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return apperrors.Validation("title", "title is required")
	}
	t.TenantID = tenantID
	if t.Status == "" {
		t.Status = models.TaskStatusOpen
	}
	if t.Priority == "" {
		t.Priority = models.PriorityNormal
	}
	if !validTaskPriority(t.Priority) {
		return apperrors.Validation("priority", "unknown task priority")
	}
	err := repositories.WithTenantTx(ctx, s.db, tenantID, func(tx *sql.Tx) error {
		return s.repo.WithTx(tx).Create(ctx, t)
	})
	if err != nil {
		return err
	}
	s.notifyAssignee(ctx, tenantID, t)
	return nil
}

// notifyAssignee — после коммита, best-effort: сбой почты не валит запрос.
func (s *TaskService) notifyAssignee(ctx context.Context, tenantID int64, t *models.Task) {
	if s.email == nil || t.AssigneeID == nil {
		return
	}
	assignee, err := s.userRepo.GetByID(ctx, *t.AssigneeID)
	if err != nil || assignee == nil || assignee.TenantID != tenantID {
		return
	}
	if err := s.email.SendTaskAssigned(assignee.Email, t.Title, t.DueAt); err != nil {
		log.Printf("[task][notify] warning: failed to email assignee %s: %v", assignee.Email, err)
	}
}

func (s *TaskService) GetByID(ctx context.Context, tenantID, id int64) (*models.Task, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *TaskService) List(ctx context.Context, tenantID int64, f models.TaskFilter, p models.PageParams) ([]models.Task, int, error) {
	return s.repo.List(ctx, tenantID, f, p)
}

func (s *TaskService) Update(ctx context.Context, tenantID, id int64, u models.TaskUpdate) (*models.Task, error) {
	if u.Priority != nil && !validTaskPriority(*u.Priority) {
		return nil, apperrors.Validation("priority", "unknown task priority")
	}
	if u.Status != nil && !validTaskStatus(*u.Status) {
		return nil, apperrors.Validation("status", "unknown task status")
	}
	return s.repo.Update(ctx, tenantID, id, u)
}

func (s *TaskService) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	return s.repo.Delete(ctx, tenantID, id)
}

func validTaskPriority(p models.TaskPriority) bool {
	switch p {
	case models.PriorityLow, models.PriorityNormal, models.PriorityHigh, models.PriorityUrgent:
		return true
	}
	return false
}

func validTaskStatus(st models.TaskStatus) bool {
	switch st {
	case models.TaskStatusOpen, models.TaskStatusInProgress, models.TaskStatusDone, models.TaskStatusCanceled:
		return true
	}
	return false
}
