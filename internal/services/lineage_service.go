package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/frontdesk-api/internal/metrics"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/sjperalta/frontdesk-api/pkg/logger"

	"gorm.io/gorm"
)

// Lineage is a root bill followed by its splits in sequence order
type Lineage struct {
	RootBillNo string        `json:"root_bill_no"`
	Bills      []models.Bill `json:"bills"`
}

// TotalAmount sums the totals across the lineage
func (l *Lineage) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range l.Bills {
		total = total.Add(l.Bills[i].TotalAmount)
	}
	return total
}

// BalanceAmount sums the balances across the lineage
func (l *Lineage) BalanceAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range l.Bills {
		total = total.Add(l.Bills[i].BalanceAmount)
	}
	return total
}

type LineageService struct {
	deps *LedgerDeps
}

func NewLineageService(deps *LedgerDeps) *LineageService {
	return &LineageService{deps: deps}
}

// GetRelatedBills resolves the root of any bill and returns it with all of
// its splits. Balances are recomputed on the returned copies and never
// written back. Only a missing starting bill is an error.
func (s *LineageService) GetRelatedBills(ctx context.Context, billNo string) (*Lineage, error) {
	start := time.Now()
	lineage, err := s.resolve(ctx, billNo)
	s.deps.observe(metrics.OperationLineage, start, err)
	return lineage, err
}

func (s *LineageService) resolve(ctx context.Context, billNo string) (*Lineage, error) {
	d := s.deps

	bill, err := d.findBill(ctx, billNo, ErrBillNotFound)
	if err != nil {
		return nil, err
	}

	rootNo := bill.RootBillNo()
	lineage := &Lineage{RootBillNo: rootNo}

	if rootNo == bill.BillNo {
		lineage.Bills = append(lineage.Bills, *bill)
	} else {
		root, err := d.Bills.FindByBillNo(ctx, rootNo)
		switch {
		case err == nil:
			lineage.Bills = append(lineage.Bills, *root)
		case errors.Is(err, gorm.ErrRecordNotFound):
			logger.Warn("lineage root missing", "bill_no", billNo, "root_bill_no", rootNo)
		default:
			return nil, err
		}
	}

	splits, err := d.Bills.FindSplits(ctx, rootNo)
	if err != nil {
		return nil, err
	}
	lineage.Bills = append(lineage.Bills, splits...)

	for i := range lineage.Bills {
		b := &lineage.Bills[i]
		stay, err := d.stayFor(ctx, b)
		if err != nil {
			logger.Warn("stay lookup failed, using bill total", "bill_no", b.BillNo, "error", err)
			stay = nil
		}
		if _, err := d.Calculator.Recalculate(ctx, b, BasisFor(b, stay)); err != nil {
			return nil, err
		}
	}

	return lineage, nil
}
