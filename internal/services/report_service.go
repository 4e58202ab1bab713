package services

import (
	"context"
	"io"
	"time"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/pdf"
	"github.com/garvthakre/kf12/internal/repositories"
)

type ReportService struct {
	tenants *repositories.TenantRepository
	leads   *repositories.LeadRepository
	opps    *repositories.OpportunityRepository
	gen     pdf.Generator
}

func NewReportService(
	tenants *repositories.TenantRepository,
	leads *repositories.LeadRepository,
	opps *repositories.OpportunityRepository,
	gen pdf.Generator,
) *ReportService {
	return &ReportService{tenants: tenants, leads: leads, opps: opps, gen: gen}
}

type Summary struct {
	Leads         *repositories.LeadStats  `json:"leads"`
	Opportunities *models.OpportunityStats `json:"opportunities"`
	GeneratedAt   time.Time                `json:"generated_at"`
}

func (s *ReportService) Summary(ctx context.Context, tenantID int64) (*Summary, error) {
	leadStats, err := s.leads.Stats(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	oppStats, err := s.opps.Stats(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Leads:         leadStats,
		Opportunities: oppStats,
		GeneratedAt:   time.Now(),
	}, nil
}

// SummaryPDF пишет готовый PDF-отчёт в w.
func (s *ReportService) SummaryPDF(ctx context.Context, tenantID int64, w io.Writer) error {
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return apperrors.NotFound("tenant")
	}
	sum, err := s.Summary(ctx, tenantID)
	if err != nil {
		return err
	}
	return s.gen.GenerateSummary(pdf.SummaryData{
		TenantName:  tenant.Name,
		GeneratedAt: sum.GeneratedAt,

		LeadsTotal:     sum.Leads.Total,
		LeadsNew:       sum.Leads.New,
		LeadsWorking:   sum.Leads.Working,
		LeadsQualified: sum.Leads.Qualified,
		LeadsConverted: sum.Leads.Converted,
		LeadsLast7:     sum.Leads.CreatedLast7,
		LeadsLast30:    sum.Leads.CreatedLast30,

		OppsOpen:   sum.Opportunities.OpenCount,
		OppsWon:    sum.Opportunities.WonCount,
		OppsLost:   sum.Opportunities.LostCount,
		OpenAmount: sum.Opportunities.OpenAmount,
		WonAmount:  sum.Opportunities.WonAmount,
		LostAmount: sum.Opportunities.LostAmount,
		Currency:   models.DefaultCurrency,
	}, w)
}
