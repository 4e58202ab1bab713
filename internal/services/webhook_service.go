package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
)

// WebhookService превращает внешнее событие сканирования посетителя в
// тройку contact + lead + activity log под одной транзакцией: либо видно
// всё, либо ничего.
type WebhookService struct {
	db       *sql.DB
	tenants  *repositories.TenantRepository
	contacts *ContactService
	leads    *repositories.LeadRepository
	activity *repositories.ActivityRepository
	email    EmailService
	notifyTo string
	telegram *TelegramService
}

func NewWebhookService(
	db *sql.DB,
	tenants *repositories.TenantRepository,
	contacts *ContactService,
	leads *repositories.LeadRepository,
	activity *repositories.ActivityRepository,
	email EmailService,
	notifyTo string,
	telegram *TelegramService,
) *WebhookService {
	return &WebhookService{
		db:       db,
		tenants:  tenants,
		contacts: contacts,
		leads:    leads,
		activity: activity,
		email:    email,
		notifyTo: notifyTo,
		telegram: telegram,
	}
}

func (s *WebhookService) HandleLeadCaptured(ctx context.Context, p *models.LeadCapturedPayload) (*models.LeadCapturedResult, error) {
	// 1. Валидация tenant — до любых записей.
	tenant, err := s.tenants.GetByID(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperrors.Validation("tenant_id", "unknown tenant")
	}

	scanTime := time.Now()
	if p.ScanTime != nil {
		scanTime = *p.ScanTime
	}

	var lead models.Lead
	var contactID *int64

	// 2–6. Одна единица работы: привязка tenant + контакт + лид + аудит.
	err = repositories.WithTenantTx(ctx, s.db, p.TenantID, func(tx *sql.Tx) error {
		contactRepo := s.contacts.repo.WithTx(tx)
		leadRepo := s.leads.WithTx(tx)
		activityRepo := s.activity.WithTx(tx)

		// 3. Контакт: дедуп по email/phone; без обоих contact_id остаётся null.
		if strings.TrimSpace(p.Visitor.Email) != "" || strings.TrimSpace(p.Visitor.Phone) != "" {
			incoming := &models.Contact{
				FirstName:   strings.TrimSpace(p.Visitor.FirstName),
				LastName:    strings.TrimSpace(p.Visitor.LastName),
				Email:       strings.TrimSpace(p.Visitor.Email),
				Phone:       strings.TrimSpace(p.Visitor.Phone),
				KfVisitorID: strings.TrimSpace(p.Visitor.KfVisitorID),
				Source:      models.ContactSourceFairex,
				Dob:         parseDob(p.Visitor.Dob),
			}
			id, err := s.contacts.ResolveOrCreate(ctx, contactRepo, p.TenantID, incoming)
			if err != nil {
				return err
			}
			contactID = &id
		}

		// 4. Лид: фиксированные new/lead/0, источник fairex.
		lead = models.Lead{
			TenantID:     p.TenantID,
			ContactID:    contactID,
			Title:        visitorTitle(p.Visitor),
			Status:       models.LeadStatusNew,
			Stage:        models.LeadStageLead,
			Score:        0,
			Source:       models.ContactSourceFairex,
			ExhibitionID: p.ExhibitionID,
			JoinID:       p.JoinID,
			UTMSource:    p.UTMSource,
			UTMMedium:    p.UTMMedium,
			UTMCampaign:  p.UTMCampaign,
			Notes:        p.Notes,
		}
		if lead.Notes == "" {
			lead.Notes = fmt.Sprintf("Captured via FairEx scan at %s", scanTime.UTC().Format(time.RFC3339))
		}
		if err := leadRepo.Create(ctx, &lead); err != nil {
			return err
		}

		// 5. Аудит: снапшот входящего контекста.
		after, err := json.Marshal(map[string]interface{}{
			"exhibition_id": p.ExhibitionID,
			"join_id":       p.JoinID,
			"context":       p.Context,
		})
		if err != nil {
			return err
		}
		return activityRepo.Append(ctx, &models.ActivityLog{
			TenantID:   p.TenantID,
			EntityType: "lead",
			EntityID:   lead.ID,
			Action:     "lead_captured",
			After:      after,
			OccurredAt: scanTime,
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(&lead, p)

	return &models.LeadCapturedResult{
		LeadID:    lead.ID,
		ContactID: contactID,
		Message:   "lead captured",
	}, nil
}

// notify — после коммита, best-effort: сбой уведомления не откатывает лид.
// Письмо уходит на общий notify_email из конфига: owner у свежезахваченного
// лида ещё не назначен.
func (s *WebhookService) notify(lead *models.Lead, p *models.LeadCapturedPayload) {
	contactName := strings.TrimSpace(p.Visitor.FirstName + " " + p.Visitor.LastName)

	if err := s.telegram.NotifyLeadCaptured(lead.Title, contactName, p.ExhibitionID); err != nil {
		log.Printf("[webhook][notify] warning: telegram failed: %v", err)
	}

	if s.email == nil || s.notifyTo == "" {
		return
	}
	if err := s.email.SendLeadCaptured(s.notifyTo, lead.Title, contactName); err != nil {
		log.Printf("[webhook][notify] warning: email failed: %v", err)
	}
}

func visitorTitle(v models.VisitorPayload) string {
	name := strings.TrimSpace(strings.TrimSpace(v.FirstName) + " " + strings.TrimSpace(v.LastName))
	if name == "" {
		return "FairEx visitor"
	}
	return name
}

func parseDob(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
