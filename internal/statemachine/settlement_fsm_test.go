package statemachine

import (
	"context"
	"testing"
	"time"

	"github.com/sjperalta/frontdesk-api/internal/clock"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementFSM_NewBillStartsPending(t *testing.T) {
	bill := &models.Bill{BillNo: "BL-1"}
	sfsm := NewSettlementFSM(bill, clock.NewFakeClock(time.Now()))

	assert.Equal(t, models.SettlementStatusPending, sfsm.Current())
	assert.True(t, sfsm.Can(EventMarkSettled))
	assert.False(t, sfsm.Can(EventMarkPending))
}

func TestSettlementFSM_SettleStampsDateOnce(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clk := clock.NewFakeClock(start)

	bill := &models.Bill{BillNo: "BL-1", SettlementStatus: models.SettlementStatusPartial}
	sfsm := NewSettlementFSM(bill, clk)

	require.NoError(t, sfsm.MoveTo(ctx, models.SettlementStatusSettled))
	assert.Equal(t, models.SettlementStatusSettled, bill.SettlementStatus)
	require.NotNil(t, bill.SettlementDate)
	assert.True(t, bill.SettlementDate.Equal(start))

	// Re-entering SETTLED later keeps the first date
	clk.Advance(2 * time.Hour)
	require.NoError(t, sfsm.MoveTo(ctx, models.SettlementStatusPartial))
	require.NoError(t, sfsm.MoveTo(ctx, models.SettlementStatusSettled))
	assert.True(t, bill.SettlementDate.Equal(start))
}

func TestSettlementFSM_ReopeningKeepsSettlementDate(t *testing.T) {
	ctx := context.Background()
	settledAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bill := &models.Bill{
		BillNo:           "BL-1",
		SettlementStatus: models.SettlementStatusSettled,
		SettlementDate:   &settledAt,
	}
	sfsm := NewSettlementFSM(bill, clock.NewFakeClock(settledAt.Add(time.Hour)))

	require.NoError(t, sfsm.MoveTo(ctx, models.SettlementStatusPending))
	assert.Equal(t, models.SettlementStatusPending, bill.SettlementStatus)
	require.NotNil(t, bill.SettlementDate)
	assert.True(t, bill.SettlementDate.Equal(settledAt))
}

func TestSettlementFSM_MoveToSameStateIsNoop(t *testing.T) {
	bill := &models.Bill{BillNo: "BL-1", SettlementStatus: models.SettlementStatusPartial}
	sfsm := NewSettlementFSM(bill, clock.NewFakeClock(time.Now()))

	require.NoError(t, sfsm.MoveTo(context.Background(), models.SettlementStatusPartial))
	assert.Equal(t, models.SettlementStatusPartial, bill.SettlementStatus)
	assert.Nil(t, bill.SettlementDate)
}

func TestSettlementFSM_UnknownStatus(t *testing.T) {
	bill := &models.Bill{BillNo: "BL-1"}
	sfsm := NewSettlementFSM(bill, clock.NewFakeClock(time.Now()))

	err := sfsm.MoveTo(context.Background(), "REFUNDED")
	assert.Error(t, err)
	assert.Equal(t, models.SettlementStatusPending, sfsm.Current())
}
