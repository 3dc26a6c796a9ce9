package services

import (
	"github.com/sjperalta/frontdesk-api/internal/clock"
	"github.com/sjperalta/frontdesk-api/internal/config"
	"github.com/sjperalta/frontdesk-api/internal/jobs"
	"github.com/sjperalta/frontdesk-api/internal/metrics"
	"github.com/sjperalta/frontdesk-api/internal/repository"
	"github.com/sjperalta/frontdesk-api/pkg/logger"

	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Bill       *BillService
	Split      *SplitService
	Settlement *SettlementService
	Lineage    *LineageService
	Report     *ReportService
	Audit      *AuditService
	Email      *EmailService
	Job        *JobService
}

// NewServices creates all service instances
func NewServices(
	repos *repository.Repositories,
	worker *jobs.Worker,
	cfg *config.Config,
	db *gorm.DB,
	ledgerMetrics *metrics.LedgerMetrics,
	clk clock.Clock,
) (*Services, error) {
	numbers, err := NewNumberGenerator(cfg.NodeID, cfg.BillPrefix, cfg.ReceiptPrefix)
	if err != nil {
		return nil, err
	}

	frontOffice := NewFrontOffice(repos.Stay, repos.Room, repos.PaymentMode)
	emailSvc := NewEmailService(cfg)
	auditSvc := NewAuditService(repos.Audit)

	deps := &LedgerDeps{
		DB:           db,
		Bills:        repos.Bill,
		Charges:      repos.Charge,
		Advances:     repos.Advance,
		Stays:        frontOffice,
		Rooms:        frontOffice,
		PaymentModes: frontOffice,
		Calculator:   NewBalanceCalculator(clk),
		Numbers:      numbers,
		Audit:        auditSvc,
		Email:        emailSvc,
		Worker:       worker,
		Metrics:      ledgerMetrics,
		Clock:        clk,
	}

	billSvc := NewBillService(deps)
	lineageSvc := NewLineageService(deps)
	reportSvc := NewReportService(billSvc, lineageSvc, clk)

	if cfg.StatementLogoPath != "" {
		logo, err := LoadLetterhead(cfg.StatementLogoPath)
		if err != nil {
			logger.Warn("Statements will print without a letterhead", "path", cfg.StatementLogoPath, "error", err)
		} else {
			reportSvc.SetLetterhead(logo)
		}
	}

	return &Services{
		Bill:       billSvc,
		Split:      NewSplitService(deps),
		Settlement: NewSettlementService(deps),
		Lineage:    lineageSvc,
		Report:     reportSvc,
		Audit:      auditSvc,
		Email:      emailSvc,
		Job:        NewJobService(worker, repos.Bill, billSvc, emailSvc),
	}, nil
}
