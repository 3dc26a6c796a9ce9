package handlers

import (
	"github.com/sjperalta/frontdesk-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health     *HealthHandler
	Bill       *BillHandler
	Settlement *SettlementHandler
	Report     *ReportHandler
	Audit      *AuditHandler
	Job        *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(),
		Bill:       NewBillHandler(svcs.Bill, svcs.Split, svcs.Lineage),
		Settlement: NewSettlementHandler(svcs.Bill, svcs.Settlement),
		Report:     NewReportHandler(svcs.Report),
		Audit:      NewAuditHandler(svcs.Audit),
		Job:        NewJobHandler(svcs.Job),
	}
}
