package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/frontdesk-api/internal/metrics"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/sjperalta/frontdesk-api/pkg/logger"

	"gorm.io/gorm"
)

// SplitRequest selects charges to move from a bill into a new split bill
type SplitRequest struct {
	BillNo    string
	ChargeIDs []uint
	Narration *string
}

// SplitResult describes both bills after a split
type SplitResult struct {
	Original       models.BillResponse `json:"original"`
	NewBill        models.BillResponse `json:"new_bill"`
	MovedAmount    decimal.Decimal     `json:"moved_amount"`
	MovedCount     int                 `json:"moved_count"`
	RemainingCount int64               `json:"remaining_count"`
}

type SplitService struct {
	deps *LedgerDeps
}

func NewSplitService(deps *LedgerDeps) *SplitService {
	return &SplitService{deps: deps}
}

// Split moves the selected charges into a new bill under the same root.
// Splitting a split files the new bill under the root, not under the source.
func (s *SplitService) Split(ctx context.Context, req SplitRequest, actor models.Actor) (*SplitResult, error) {
	start := time.Now()
	result, err := s.split(ctx, req, actor)
	s.deps.observe(metrics.OperationSplit, start, err)
	if err != nil {
		return nil, err
	}

	s.deps.Metrics.BillSplit()
	logger.Info("bill split",
		"bill_no", req.BillNo,
		"new_bill_no", result.NewBill.BillNo,
		"sequence", result.NewBill.SplitSequence,
		"moved", result.MovedAmount.StringFixed(2),
	)
	return result, nil
}

func (s *SplitService) split(ctx context.Context, req SplitRequest, actor models.Actor) (*SplitResult, error) {
	d := s.deps

	source, err := d.findBill(ctx, req.BillNo, ErrOriginalBillNotFound)
	if err != nil {
		return nil, err
	}

	ids := uniqueIDs(req.ChargeIDs)
	if len(ids) == 0 {
		return nil, invalid(ErrNoTransactionsSelected, "bill %s", req.BillNo)
	}

	stay, err := d.stayFor(ctx, source)
	if err != nil {
		return nil, err
	}

	var result *SplitResult
	err = d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Root first, then source, so concurrent splits in one lineage
		// take locks in the same order.
		rootNo := source.RootBillNo()
		if rootNo != source.BillNo {
			if _, err := d.lockBill(ctx, tx, rootNo, ErrOriginalBillNotFound); err != nil {
				if KindOf(err) == KindNotFound {
					return inconsistent("split %s names missing root %s", source.BillNo, rootNo)
				}
				return err
			}
		}
		original, err := d.lockBill(ctx, tx, source.BillNo, ErrOriginalBillNotFound)
		if err != nil {
			return err
		}

		charges, err := d.Charges.WithTx(tx).FindByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("load selected charges: %w", err)
		}
		if err := checkSelection(ids, charges, original.BillNo); err != nil {
			return err
		}

		count, err := d.Bills.WithTx(tx).CountSplits(ctx, rootNo)
		if err != nil {
			return fmt.Errorf("count splits: %w", err)
		}

		moved := models.SumCharges(charges)
		newBill := &models.Bill{
			BillNo:         d.Numbers.NextBillNo(),
			FolioNo:        original.FolioNo,
			GuestName:      original.GuestName,
			RoomID:         original.RoomID,
			TotalAmount:    moved,
			AdvanceAmount:  decimal.Zero,
			PaidAmount:     decimal.Zero,
			IsSplitBill:    true,
			OriginalBillNo: rootNo,
			SplitSequence:  int(count) + 1,
			Narration:      req.Narration,
		}
		if _, err := d.Calculator.Recalculate(ctx, newBill, BasisFor(newBill, nil)); err != nil {
			return err
		}
		if err := d.Bills.WithTx(tx).Create(ctx, newBill); err != nil {
			return createFailed("create split bill", newBill.BillNo, err)
		}

		reparented, err := d.Charges.WithTx(tx).Reparent(ctx, ids, original.BillNo, newBill.BillNo)
		if err != nil {
			return fmt.Errorf("reparent charges: %w", err)
		}
		if reparented != int64(len(ids)) {
			return inconsistent("moved %d of %d charges from bill %s", reparented, len(ids), original.BillNo)
		}

		original.TotalAmount = original.TotalAmount.Sub(moved)
		if _, err := d.Calculator.Recalculate(ctx, original, BasisFor(original, stay)); err != nil {
			return err
		}
		if err := d.Bills.WithTx(tx).Update(ctx, original); err != nil {
			return fmt.Errorf("update original bill: %w", err)
		}

		remaining, err := d.Charges.WithTx(tx).CountForBill(ctx, original.BillNo)
		if err != nil {
			return fmt.Errorf("count remaining charges: %w", err)
		}

		details := fmt.Sprintf("Bill %s split into %s (sequence %d under %s): %d charges totalling %s",
			original.BillNo, newBill.BillNo, newBill.SplitSequence, rootNo, len(ids), moved.StringFixed(2))
		if err := d.Audit.Log(ctx, tx, actor, models.AuditActionSplit, original.BillNo, details); err != nil {
			return err
		}

		result = &SplitResult{
			Original:       original.ToResponse(),
			NewBill:        newBill.ToResponse(),
			MovedAmount:    moved,
			MovedCount:     len(ids),
			RemainingCount: remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// checkSelection verifies every selected id resolved to a charge owned by billNo
func checkSelection(ids []uint, charges []models.Charge, billNo string) error {
	found := make(map[uint]bool, len(charges))
	var foreign []string
	for _, c := range charges {
		found[c.ID] = true
		if c.BillNo != billNo {
			foreign = append(foreign, fmt.Sprint(c.ID))
		}
	}

	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, fmt.Sprint(id))
		}
	}

	if len(missing) > 0 {
		return notFound(ErrTransactionNotFound, "charges %s do not exist", strings.Join(missing, ", "))
	}
	if len(foreign) > 0 {
		return notFound(ErrTransactionNotFound, "charges %s are not on bill %s", strings.Join(foreign, ", "), billNo)
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
