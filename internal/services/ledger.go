package services

import (
	"context"
	"errors"
	"time"

	"github.com/sjperalta/frontdesk-api/internal/clock"
	"github.com/sjperalta/frontdesk-api/internal/jobs"
	"github.com/sjperalta/frontdesk-api/internal/metrics"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/sjperalta/frontdesk-api/internal/repository"
	"github.com/sjperalta/frontdesk-api/pkg/logger"

	"gorm.io/gorm"
)

// LedgerDeps bundles what the bill, split, settlement and lineage services share
type LedgerDeps struct {
	DB           *gorm.DB
	Bills        repository.BillRepository
	Charges      repository.ChargeRepository
	Advances     repository.AdvanceRepository
	Stays        StayResolver
	Rooms        RoomResolver
	PaymentModes PaymentModeResolver
	Calculator   *BalanceCalculator
	Numbers      *NumberGenerator
	Audit        *AuditService
	Email        *EmailService
	Worker       *jobs.Worker
	Metrics      *metrics.LedgerMetrics
	Clock        clock.Clock
}

// findBill loads a bill and turns a missing row into the given not-found sentinel
func (d *LedgerDeps) findBill(ctx context.Context, billNo string, missing error) (*models.Bill, error) {
	bill, err := d.Bills.FindByBillNo(ctx, billNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(missing, "bill %s", billNo)
		}
		return nil, err
	}
	return bill, nil
}

// lockBill row-locks a bill inside tx
func (d *LedgerDeps) lockBill(ctx context.Context, tx *gorm.DB, billNo string, missing error) (*models.Bill, error) {
	bill, err := d.Bills.WithTx(tx).FindByBillNoForUpdate(ctx, billNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(missing, "bill %s", billNo)
		}
		return nil, err
	}
	return bill, nil
}

// stayFor returns the stay context used to pick a bill's rate basis. Split
// bills never use the stay rate, and a folio without a stay record yields nil.
// Must be called outside a transaction.
func (d *LedgerDeps) stayFor(ctx context.Context, bill *models.Bill) (*StayContext, error) {
	if bill.IsSplitBill {
		return nil, nil
	}
	stay, err := d.Stays.ResolveStayRateAndGuest(ctx, bill.FolioNo)
	if err != nil {
		if errors.Is(err, ErrFolioNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return stay, nil
}

func (d *LedgerDeps) roomNumber(ctx context.Context, roomID uint) string {
	roomNo, err := d.Rooms.ResolveRoomNumber(ctx, roomID)
	if err != nil {
		logger.Warn("room lookup failed", "room_id", roomID, "error", err)
		return ""
	}
	return roomNo
}

func (d *LedgerDeps) observe(operation string, start time.Time, err error) {
	kind := ""
	if err != nil {
		kind = string(KindOf(err))
	}
	d.Metrics.ObserveOperation(operation, start, kind)
}
