package services

import (
	"sync"
	"testing"
	"time"

	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettle_AccumulatesPayments(t *testing.T) {
	f := newLedgerFixture(t)
	bill, _ := f.billWithCharges("F-500", "700")
	cash := f.paymentMode("Cash", true)

	view, err := f.settlements.Settle(f.ctx, SettleRequest{BillNo: bill.BillNo, Amount: money("100"), PaymentModeID: cash.ID}, testActor)
	require.NoError(t, err)
	assertMoney(t, "100", view.PaidAmount)
	assertMoney(t, "600", view.BalanceAmount)
	assert.Equal(t, models.SettlementStatusPartial, view.SettlementStatus)
	assert.Nil(t, view.SettlementDate)
	require.NotNil(t, view.LastPaymentDate)
	assert.NotEmpty(t, view.RoomNo)

	// Same amount again is a second payment, not a duplicate
	view, err = f.settlements.Settle(f.ctx, SettleRequest{BillNo: bill.BillNo, Amount: money("100"), PaymentModeID: cash.ID}, testActor)
	require.NoError(t, err)
	assertMoney(t, "200", view.PaidAmount)
	assertMoney(t, "500", view.BalanceAmount)
	require.Len(t, view.PaymentNotes, 2)
	assert.Contains(t, view.PaymentNotesText, "Cash")

	stored := f.reload(bill.BillNo)
	assertMoney(t, "200", stored.PaidAmount)
	assertMoney(t, "0", stored.AdvanceAmount)
	assertBillInvariants(t, stored)
	assert.Equal(t, int64(2), f.count(&models.AuditLog{}, "action = ?", models.AuditActionSettle))
}

func TestSettle_FullPaymentStampsDateOnce(t *testing.T) {
	f := newLedgerFixture(t)
	bill, _ := f.billWithCharges("F-510", "700")
	cash := f.paymentMode("Cash", true)

	view, err := f.settlements.Settle(f.ctx, SettleRequest{BillNo: bill.BillNo, Amount: money("700"), PaymentModeID: cash.ID}, testActor)
	require.NoError(t, err)
	assertMoney(t, "0", view.BalanceAmount)
	assert.Equal(t, models.SettlementStatusSettled, view.SettlementStatus)
	require.NotNil(t, view.SettlementDate)
	settledOn := *view.SettlementDate
	assert.True(t, settledOn.Equal(f.clock.Now()))

	// Overpayment keeps the balance at zero and the original date
	f.clock.Advance(2 * time.Hour)
	view, err = f.settlements.Settle(f.ctx, SettleRequest{BillNo: bill.BillNo, Amount: money("50"), PaymentModeID: cash.ID}, testActor)
	require.NoError(t, err)
	assertMoney(t, "750", view.PaidAmount)
	assertMoney(t, "0", view.BalanceAmount)
	assert.True(t, view.SettlementDate.Equal(settledOn))
	assert.True(t, view.LastPaymentDate.Equal(f.clock.Now()))
}

func TestSettle_ContractedRateIgnoresSettlementsInReduction(t *testing.T) {
	f := newLedgerFixture(t)
	f.stay("F-520", ratePtr("1000"), true)
	f.charge("F-520", "1000")
	f.advance("F-520", "200")
	bill, err := f.bills.GenerateBill(f.ctx, "F-520", testActor)
	require.NoError(t, err)
	cash := f.paymentMode("Cash", true)

	view, err := f.settlements.Settle(f.ctx, SettleRequest{BillNo: bill.BillNo, Amount: money("300"), PaymentModeID: cash.ID}, testActor)
	require.NoError(t, err)

	// rate 1000 minus advance 200; the 300 settlement does not reduce it
	assertMoney(t, "500", view.PaidAmount)
	assertMoney(t, "800", view.BalanceAmount)
	assert.Equal(t, models.SettlementStatusPartial, view.SettlementStatus)
}

func TestSettle_Validation(t *testing.T) {
	f := newLedgerFixture(t)
	bill, _ := f.billWithCharges("F-530", "100")
	cash := f.paymentMode("Cash", true)
	retired := f.paymentMode("Cheque", false)

	tests := []struct {
		name    string
		req     SettleRequest
		wantErr error
		kind    ErrorKind
	}{
		{"zero amount", SettleRequest{BillNo: bill.BillNo, Amount: money("0"), PaymentModeID: cash.ID}, ErrInvalidAmount, KindValidation},
		{"negative amount", SettleRequest{BillNo: bill.BillNo, Amount: money("-5"), PaymentModeID: cash.ID}, ErrInvalidAmount, KindValidation},
		{"sub-cent amount", SettleRequest{BillNo: bill.BillNo, Amount: money("0.004"), PaymentModeID: cash.ID}, ErrInvalidAmount, KindValidation},
		{"three decimals", SettleRequest{BillNo: bill.BillNo, Amount: money("10.125"), PaymentModeID: cash.ID}, ErrInvalidAmount, KindValidation},
		{"unknown mode", SettleRequest{BillNo: bill.BillNo, Amount: money("5"), PaymentModeID: 9999}, ErrInvalidPaymentMode, KindNotFound},
		{"inactive mode", SettleRequest{BillNo: bill.BillNo, Amount: money("5"), PaymentModeID: retired.ID}, ErrInvalidPaymentMode, KindNotFound},
		{"unknown bill", SettleRequest{BillNo: "BL-missing", Amount: money("5"), PaymentModeID: cash.ID}, ErrBillNotFound, KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.settlements.Settle(f.ctx, tt.req, testActor)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}

	stored := f.reload(bill.BillNo)
	assertMoney(t, "0", stored.PaidAmount)
	assert.Equal(t, int64(0), f.count(&models.PaymentNote{}, ""))
	assert.Equal(t, int64(0), f.count(&models.Advance{}, "kind = ?", models.AdvanceKindSettlement))
}

func TestSettle_RecordsReceiptSeparately(t *testing.T) {
	f := newLedgerFixture(t)
	f.stay("F-540", nil, true)
	f.charge("F-540", "500")
	f.advance("F-540", "100")
	bill, err := f.bills.GenerateBill(f.ctx, "F-540", testActor)
	require.NoError(t, err)
	card := f.paymentMode("Card", true)

	_, err = f.settlements.Settle(f.ctx, SettleRequest{
		BillNo:        bill.BillNo,
		Amount:        money("150"),
		PaymentModeID: card.ID,
		Metadata: PaymentMetadata{
			CardNumber:      "4111 1111 1111 4242",
			CardHolder:      " J Doe ",
			OnlineReference: "TX-991",
			Notes:           "front desk",
		},
	}, testActor)
	require.NoError(t, err)

	history, err := f.settlements.PaymentHistory(f.ctx, bill.BillNo)
	require.NoError(t, err)
	assertMoney(t, "100", history.AdvanceAmount)
	assertMoney(t, "250", history.PaidAmount)
	assertMoney(t, "150", history.ReceiptTotal)
	require.Len(t, history.Advances, 1)
	require.Len(t, history.Receipts, 1)
	require.Len(t, history.Notes, 1)

	receipt := history.Receipts[0]
	assert.Regexp(t, `^RC-[0-9A-F]{12}$`, receipt.ReceiptNo)
	assert.Equal(t, models.AdvanceKindSettlement, receipt.Kind)
	assert.Equal(t, "4242", receipt.CardLast4)
	assert.Equal(t, "J Doe", receipt.CardHolder)
	assert.Equal(t, "TX-991", receipt.OnlineReference)
	assert.Equal(t, "RES-F-540", receipt.ReservationNo)
	assert.Equal(t, "front desk; card ending 4242; ref TX-991", receipt.Narration)

	note := history.Notes[0]
	assert.Equal(t, receipt.ReceiptNo, note.ReceiptNo)
	assert.Equal(t, "Card", note.PaymentModeName)

	// The receipt stays out of the billed advance
	assertMoney(t, "100", f.reload(bill.BillNo).AdvanceAmount)
}

func TestSettle_SplitBill(t *testing.T) {
	f := newLedgerFixture(t)
	root, charges := f.billWithCharges("F-550", "80", "20")
	result, err := f.splits.Split(f.ctx, SplitRequest{BillNo: root.BillNo, ChargeIDs: []uint{charges[1].ID}}, testActor)
	require.NoError(t, err)
	cash := f.paymentMode("Cash", true)

	view, err := f.settlements.Settle(f.ctx, SettleRequest{BillNo: result.NewBill.BillNo, Amount: money("20"), PaymentModeID: cash.ID}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.SettlementStatusSettled, view.SettlementStatus)
	assert.True(t, view.IsSplitBill)

	// Split receipts still carry the guest's reservation
	history, err := f.settlements.PaymentHistory(f.ctx, result.NewBill.BillNo)
	require.NoError(t, err)
	require.Len(t, history.Receipts, 1)
	assert.Equal(t, "RES-F-550", history.Receipts[0].ReservationNo)

	assert.Equal(t, models.SettlementStatusPending, f.reload(root.BillNo).SettlementStatus)
}

func TestSettle_ConcurrentPaymentsAllLand(t *testing.T) {
	f := newLedgerFixture(t)
	bill, _ := f.billWithCharges("F-560", "1000")
	cash := f.paymentMode("Cash", true)

	const payers = 5
	var wg sync.WaitGroup
	errs := make(chan error, payers)
	for i := 0; i < payers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.settlements.Settle(f.ctx, SettleRequest{BillNo: bill.BillNo, Amount: money("100"), PaymentModeID: cash.ID}, testActor)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stored := f.reload(bill.BillNo)
	assertMoney(t, "500", stored.PaidAmount)
	assertMoney(t, "500", stored.BalanceAmount)
	assert.Equal(t, int64(payers), f.count(&models.PaymentNote{}, "bill_no = ?", bill.BillNo))
}

func TestPaymentHistory_NotFound(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.settlements.PaymentHistory(f.ctx, "BL-missing")
	assert.ErrorIs(t, err, ErrBillNotFound)
}

func TestCardLast4(t *testing.T) {
	assert.Equal(t, "4242", cardLast4("4111-1111-1111-4242"))
	assert.Equal(t, "12", cardLast4("12"))
	assert.Equal(t, "", cardLast4("n/a"))
}

func TestNoteText(t *testing.T) {
	assert.Equal(t, "", noteText(PaymentMetadata{}, ""))
	assert.Equal(t, "card ending 4242", noteText(PaymentMetadata{}, "4242"))
	assert.Equal(t, "late checkout; ref ABC", noteText(PaymentMetadata{Notes: " late checkout ", OnlineReference: "ABC"}, ""))
}
