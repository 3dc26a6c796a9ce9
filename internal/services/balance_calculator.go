package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/frontdesk-api/internal/clock"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/sjperalta/frontdesk-api/internal/statemachine"
)

// RateBasis is what a bill's balance is measured against.
// It is either Contracted (the stay's agreed room rate) or Fallback (the bill total).
type RateBasis interface {
	Amount() decimal.Decimal
	isRateBasis()
}

// Contracted is the agreed room rate of the stay
type Contracted struct {
	Rate decimal.Decimal
}

func (c Contracted) Amount() decimal.Decimal { return c.Rate }
func (Contracted) isRateBasis()              {}

// Fallback is the bill's own total, used when no rate can be resolved
type Fallback struct {
	Total decimal.Decimal
}

func (f Fallback) Amount() decimal.Decimal { return f.Total }
func (Fallback) isRateBasis()              {}

// BasisFor picks the basis for a bill. Split bills always use their own total;
// other bills use the stay's rate when one is known and positive.
func BasisFor(bill *models.Bill, stay *StayContext) RateBasis {
	if bill.IsSplitBill || !stay.HasContractedRate() {
		return Fallback{Total: bill.TotalAmount}
	}
	return Contracted{Rate: *stay.Rate}
}

// Reduction returns what is subtracted from the basis.
// The contracted path subtracts only the advance; payments recorded through
// settlement count only on the fallback path.
func Reduction(basis RateBasis, bill *models.Bill) decimal.Decimal {
	switch basis.(type) {
	case Contracted:
		return bill.AdvanceAmount
	default:
		return bill.PaidAmount
	}
}

// Balance returns max(0, basis - reduction)
func Balance(basis RateBasis, bill *models.Bill) decimal.Decimal {
	balance := basis.Amount().Sub(Reduction(basis, bill))
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// StatusFor derives the settlement status from balance and paid amount
func StatusFor(balance, paid decimal.Decimal) string {
	switch {
	case !balance.IsPositive():
		return models.SettlementStatusSettled
	case paid.IsPositive():
		return models.SettlementStatusPartial
	default:
		return models.SettlementStatusPending
	}
}

// BalanceCalculator applies the balance rules to a bill in memory
type BalanceCalculator struct {
	clock clock.Clock
}

// NewBalanceCalculator creates a new balance calculator
func NewBalanceCalculator(clk clock.Clock) *BalanceCalculator {
	return &BalanceCalculator{clock: clk}
}

// Recalculate sets BalanceAmount and SettlementStatus on the bill and reports
// whether either changed. SettlementDate is stamped the first time the bill
// becomes SETTLED.
func (c *BalanceCalculator) Recalculate(ctx context.Context, bill *models.Bill, basis RateBasis) (bool, error) {
	prevBalance := bill.BalanceAmount
	prevStatus := bill.SettlementStatus

	bill.BalanceAmount = Balance(basis, bill)
	target := StatusFor(bill.BalanceAmount, bill.PaidAmount)

	if err := statemachine.NewSettlementFSM(bill, c.clock).MoveTo(ctx, target); err != nil {
		return false, err
	}

	return !prevBalance.Equal(bill.BalanceAmount) || prevStatus != bill.SettlementStatus, nil
}
