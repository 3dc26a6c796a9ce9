package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sjperalta/frontdesk-api/internal/metrics"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/sjperalta/frontdesk-api/internal/repository"
	"github.com/sjperalta/frontdesk-api/pkg/logger"

	"gorm.io/gorm"
)

// BillDetail is a bill with the charges and advances it owns
type BillDetail struct {
	models.BillResponse
	RoomNo   string           `json:"room_no"`
	Advances []models.Advance `json:"advances"`
}

type BillService struct {
	deps *LedgerDeps
}

func NewBillService(deps *LedgerDeps) *BillService {
	return &BillService{deps: deps}
}

// GenerateBill turns everything posted to an active folio into a new bill.
// The bill row, the reparented charges and advances and the audit entry
// commit together.
func (s *BillService) GenerateBill(ctx context.Context, folioNo string, actor models.Actor) (*models.Bill, error) {
	start := time.Now()
	bill, err := s.generate(ctx, folioNo, actor)
	s.deps.observe(metrics.OperationGenerate, start, err)
	if err != nil {
		return nil, err
	}

	s.deps.Metrics.BillGenerated()
	logger.Info("bill generated",
		"bill_no", bill.BillNo,
		"folio_no", folioNo,
		"total", bill.TotalAmount.StringFixed(2),
		"status", bill.SettlementStatus,
	)
	return bill, nil
}

func (s *BillService) generate(ctx context.Context, folioNo string, actor models.Actor) (*models.Bill, error) {
	d := s.deps

	stay, err := d.Stays.ResolveStayRateAndGuest(ctx, folioNo)
	if err != nil {
		if errors.Is(err, ErrFolioNotFound) {
			return nil, notFound(ErrFolioNotFound, "folio %s", folioNo)
		}
		return nil, err
	}
	if !stay.Active {
		return nil, notFound(ErrFolioNotFound, "folio %s is not an active stay", folioNo)
	}

	var bill *models.Bill
	err = d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		charges, err := d.Charges.WithTx(tx).ListForFolio(ctx, folioNo)
		if err != nil {
			return fmt.Errorf("list folio charges: %w", err)
		}
		advances, err := d.Advances.WithTx(tx).ListForFolio(ctx, folioNo)
		if err != nil {
			return fmt.Errorf("list folio advances: %w", err)
		}

		advanceTotal := models.SumAdvances(advances)
		bill = &models.Bill{
			BillNo:        d.Numbers.NextBillNo(),
			FolioNo:       folioNo,
			GuestName:     stay.GuestName,
			RoomID:        stay.RoomID,
			TotalAmount:   models.SumCharges(charges),
			AdvanceAmount: advanceTotal,
			PaidAmount:    advanceTotal,
		}
		if _, err := d.Calculator.Recalculate(ctx, bill, BasisFor(bill, stay)); err != nil {
			return err
		}
		if err := d.Bills.WithTx(tx).Create(ctx, bill); err != nil {
			return createFailed("create bill", bill.BillNo, err)
		}

		chargeIDs := make([]uint, len(charges))
		for i, c := range charges {
			chargeIDs[i] = c.ID
		}
		moved, err := d.Charges.WithTx(tx).ReparentFromFolio(ctx, folioNo, chargeIDs, bill.BillNo)
		if err != nil {
			return fmt.Errorf("reparent charges: %w", err)
		}
		if moved != int64(len(chargeIDs)) {
			return inconsistent("moved %d of %d charges from folio %s", moved, len(chargeIDs), folioNo)
		}

		advanceIDs := make([]uint, len(advances))
		for i, a := range advances {
			advanceIDs[i] = a.ID
		}
		moved, err = d.Advances.WithTx(tx).ReparentFromFolio(ctx, folioNo, advanceIDs, bill.BillNo)
		if err != nil {
			return fmt.Errorf("reparent advances: %w", err)
		}
		if moved != int64(len(advanceIDs)) {
			return inconsistent("moved %d of %d advances from folio %s", moved, len(advanceIDs), folioNo)
		}

		details := fmt.Sprintf("Bill %s generated from folio %s: %d charges totalling %s, advances %s",
			bill.BillNo, folioNo, len(charges), bill.TotalAmount.StringFixed(2), advanceTotal.StringFixed(2))
		return d.Audit.Log(ctx, tx, actor, models.AuditActionGenerate, bill.BillNo, details)
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// GetBill returns a bill with its charges and advances
func (s *BillService) GetBill(ctx context.Context, billNo string) (*BillDetail, error) {
	d := s.deps
	bill, err := d.findBill(ctx, billNo, ErrBillNotFound)
	if err != nil {
		return nil, err
	}

	charges, err := d.Charges.ListForBill(ctx, billNo)
	if err != nil {
		return nil, err
	}
	advances, err := d.Advances.ListForBill(ctx, billNo)
	if err != nil {
		return nil, err
	}

	resp := bill.ToResponse()
	resp.Charges = make([]models.ChargeResponse, len(charges))
	for i := range charges {
		resp.Charges[i] = charges[i].ToResponse()
	}

	return &BillDetail{
		BillResponse: resp,
		RoomNo:       d.roomNumber(ctx, bill.RoomID),
		Advances:     advances,
	}, nil
}

// ListByFolio returns every bill generated for a folio, splits included
func (s *BillService) ListByFolio(ctx context.Context, folioNo string) ([]models.Bill, error) {
	return s.deps.Bills.FindByFolio(ctx, folioNo)
}

// GetSettlementStatus returns the cashier view of a bill
func (s *BillService) GetSettlementStatus(ctx context.Context, billNo string) (*models.BillSettlementView, error) {
	d := s.deps
	bill, err := d.Bills.FindByBillNoWithNotes(ctx, billNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(ErrBillNotFound, "bill %s", billNo)
		}
		return nil, err
	}

	view := bill.ToSettlementView(d.roomNumber(ctx, bill.RoomID))
	return &view, nil
}

// ListPendingSettlements returns PENDING and PARTIAL bills, oldest first
func (s *BillService) ListPendingSettlements(ctx context.Context, query *repository.ListQuery) ([]models.BillSettlementView, int64, error) {
	d := s.deps
	bills, total, err := d.Bills.ListOpen(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	rooms := make(map[uint]string)
	views := make([]models.BillSettlementView, len(bills))
	for i := range bills {
		roomNo, ok := rooms[bills[i].RoomID]
		if !ok {
			roomNo = d.roomNumber(ctx, bills[i].RoomID)
			rooms[bills[i].RoomID] = roomNo
		}
		views[i] = bills[i].ToSettlementView(roomNo)
	}
	return views, total, nil
}

// RefreshPendingBalances re-runs the balance calculator over every open bill
// and persists the ones whose balance or status moved. It returns how many
// bills changed.
func (s *BillService) RefreshPendingBalances(ctx context.Context) (int, error) {
	d := s.deps
	start := time.Now()

	query := repository.NewListQuery()
	query.PerPage = 0
	bills, _, err := d.Bills.ListOpen(ctx, query)
	if err != nil {
		d.observe(metrics.OperationRefresh, start, err)
		return 0, err
	}

	changed := 0
	for i := range bills {
		updated, err := s.refreshBill(ctx, &bills[i])
		if err != nil {
			logger.Warn("balance refresh failed", "bill_no", bills[i].BillNo, "error", err)
			continue
		}
		if updated {
			changed++
		}
	}

	d.observe(metrics.OperationRefresh, start, nil)
	d.Metrics.BalancesRefreshed(changed)
	logger.Info("open bill balances refreshed", "checked", len(bills), "changed", changed)
	return changed, nil
}

func (s *BillService) refreshBill(ctx context.Context, snapshot *models.Bill) (bool, error) {
	d := s.deps
	stay, err := d.stayFor(ctx, snapshot)
	if err != nil {
		return false, err
	}

	changed := false
	err = d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := d.lockBill(ctx, tx, snapshot.BillNo, ErrBillNotFound)
		if err != nil {
			return err
		}
		changed, err = d.Calculator.Recalculate(ctx, bill, BasisFor(bill, stay))
		if err != nil || !changed {
			return err
		}
		return d.Bills.WithTx(tx).Update(ctx, bill)
	})
	return changed, err
}
