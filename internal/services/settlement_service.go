package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/frontdesk-api/internal/metrics"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/sjperalta/frontdesk-api/pkg/logger"

	"gorm.io/gorm"
)

// PaymentMetadata is optional detail captured with a settlement payment
type PaymentMetadata struct {
	CardNumber      string
	CardHolder      string
	OnlineReference string
	Notes           string
}

// SettleRequest records one payment against a bill
type SettleRequest struct {
	BillNo        string
	Amount        decimal.Decimal
	PaymentModeID uint
	Metadata      PaymentMetadata
}

// PaymentHistory lists everything received against a bill. Receipts are the
// settlement audit copies; Advances are guest advances absorbed at billing.
type PaymentHistory struct {
	BillNo        string               `json:"bill_no"`
	AdvanceAmount decimal.Decimal      `json:"advance_amount"`
	PaidAmount    decimal.Decimal      `json:"paid_amount"`
	ReceiptTotal  decimal.Decimal      `json:"receipt_total"`
	Notes         []models.PaymentNote `json:"payment_notes"`
	NotesText     string               `json:"payment_notes_text"`
	Receipts      []models.Advance     `json:"receipts"`
	Advances      []models.Advance     `json:"advances"`
}

type SettlementService struct {
	deps *LedgerDeps
}

func NewSettlementService(deps *LedgerDeps) *SettlementService {
	return &SettlementService{deps: deps}
}

// Settle adds a payment to a bill. Every call records a new payment; there
// is no deduplication.
func (s *SettlementService) Settle(ctx context.Context, req SettleRequest, actor models.Actor) (*models.BillSettlementView, error) {
	start := time.Now()
	view, note, guestEmail, err := s.settle(ctx, req, actor)
	s.deps.observe(metrics.OperationSettle, start, err)
	if err != nil {
		return nil, err
	}

	s.deps.Metrics.SettlementRecorded(req.Amount)
	logger.Info("settlement recorded",
		"bill_no", view.BillNo,
		"receipt_no", note.ReceiptNo,
		"amount", req.Amount.StringFixed(2),
		"balance", view.BalanceAmount.StringFixed(2),
		"status", view.SettlementStatus,
	)

	s.queueReceipt(view, note, guestEmail)
	return view, nil
}

func (s *SettlementService) settle(ctx context.Context, req SettleRequest, actor models.Actor) (*models.BillSettlementView, *models.PaymentNote, string, error) {
	d := s.deps

	// amounts are stored with two decimals
	if !req.Amount.IsPositive() || !req.Amount.Equal(req.Amount.Round(2)) {
		return nil, nil, "", invalid(ErrInvalidAmount, "got %s", req.Amount.String())
	}

	snapshot, err := d.findBill(ctx, req.BillNo, ErrBillNotFound)
	if err != nil {
		return nil, nil, "", err
	}

	modeName, err := d.PaymentModes.ResolvePaymentModeName(ctx, req.PaymentModeID)
	if err != nil {
		if errors.Is(err, ErrInvalidPaymentMode) {
			return nil, nil, "", notFound(ErrInvalidPaymentMode, "payment mode %d", req.PaymentModeID)
		}
		return nil, nil, "", err
	}

	stay, err := d.stayFor(ctx, snapshot)
	if err != nil {
		return nil, nil, "", err
	}
	guestEmail, reservationNo := s.guestContact(ctx, snapshot, stay)
	roomNo := d.roomNumber(ctx, snapshot.RoomID)

	var bill *models.Bill
	var note *models.PaymentNote
	err = d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err = d.lockBill(ctx, tx, req.BillNo, ErrBillNotFound)
		if err != nil {
			return err
		}

		now := d.Clock.Now()
		receiptNo := d.Numbers.NextReceiptNo()
		last4 := cardLast4(req.Metadata.CardNumber)
		text := noteText(req.Metadata, last4)

		bill.PaidAmount = bill.PaidAmount.Add(req.Amount)
		bill.LastPaymentDate = &now

		note = &models.PaymentNote{
			BillNo:          bill.BillNo,
			ReceiptNo:       receiptNo,
			Amount:          req.Amount,
			PaymentModeID:   req.PaymentModeID,
			PaymentModeName: modeName,
			Text:            text,
			RecordedAt:      now,
		}
		if err := d.Bills.WithTx(tx).AppendPaymentNote(ctx, note); err != nil {
			return fmt.Errorf("append payment note: %w", err)
		}

		// Audit copy of the payment. It is already counted in PaidAmount and
		// must stay out of AdvanceAmount.
		receipt := &models.Advance{
			ReceiptNo:       receiptNo,
			Kind:            models.AdvanceKindSettlement,
			FolioNo:         bill.FolioNo,
			ReservationNo:   reservationNo,
			BillNo:          bill.BillNo,
			Amount:          req.Amount,
			PaymentModeID:   req.PaymentModeID,
			Narration:       text,
			CardLast4:       last4,
			CardHolder:      strings.TrimSpace(req.Metadata.CardHolder),
			OnlineReference: strings.TrimSpace(req.Metadata.OnlineReference),
			ReceivedAt:      now,
		}
		if err := d.Advances.WithTx(tx).Create(ctx, receipt); err != nil {
			return createFailed("create settlement receipt", receipt.ReceiptNo, err)
		}

		if _, err := d.Calculator.Recalculate(ctx, bill, BasisFor(bill, stay)); err != nil {
			return err
		}
		if err := d.Bills.WithTx(tx).Update(ctx, bill); err != nil {
			return fmt.Errorf("update bill: %w", err)
		}

		notes, err := d.Bills.WithTx(tx).FindPaymentNotes(ctx, bill.BillNo)
		if err != nil {
			return fmt.Errorf("load payment notes: %w", err)
		}
		bill.PaymentNotes = notes

		details := fmt.Sprintf("Payment %s of %s via %s on bill %s, balance %s",
			receiptNo, req.Amount.StringFixed(2), modeName, bill.BillNo, bill.BalanceAmount.StringFixed(2))
		return d.Audit.Log(ctx, tx, actor, models.AuditActionSettle, bill.BillNo, details)
	})
	if err != nil {
		return nil, nil, "", err
	}

	view := bill.ToSettlementView(roomNo)
	return &view, note, guestEmail, nil
}

// guestContact finds the guest email and reservation for a bill. Split bills
// skip the stay for their rate basis but still belong to the same guest.
func (s *SettlementService) guestContact(ctx context.Context, bill *models.Bill, stay *StayContext) (string, string) {
	if stay == nil && bill.IsSplitBill {
		resolved, err := s.deps.Stays.ResolveStayRateAndGuest(ctx, bill.FolioNo)
		if err == nil {
			stay = resolved
		}
	}
	if stay == nil {
		return "", ""
	}
	return stay.GuestEmail, stay.ReservationNo
}

func (s *SettlementService) queueReceipt(view *models.BillSettlementView, note *models.PaymentNote, guestEmail string) {
	d := s.deps
	if d.Worker == nil || d.Email == nil || guestEmail == "" {
		return
	}
	bill := &models.Bill{
		BillNo:           view.BillNo,
		GuestName:        view.GuestName,
		PaidAmount:       view.PaidAmount,
		BalanceAmount:    view.BalanceAmount,
		SettlementStatus: view.SettlementStatus,
	}
	receipt := NewSettlementReceipt(bill, note, guestEmail)
	d.Worker.EnqueueAsync("settlement_receipt_email", func(ctx context.Context) error {
		return d.Email.SendSettlementReceipt(ctx, receipt)
	})
}

// PaymentHistory returns the payment trail of a bill
func (s *SettlementService) PaymentHistory(ctx context.Context, billNo string) (*PaymentHistory, error) {
	d := s.deps
	bill, err := d.findBill(ctx, billNo, ErrBillNotFound)
	if err != nil {
		return nil, err
	}

	notes, err := d.Bills.FindPaymentNotes(ctx, billNo)
	if err != nil {
		return nil, err
	}
	all, err := d.Advances.ListForBill(ctx, billNo)
	if err != nil {
		return nil, err
	}

	history := &PaymentHistory{
		BillNo:        bill.BillNo,
		AdvanceAmount: bill.AdvanceAmount,
		PaidAmount:    bill.PaidAmount,
		Notes:         notes,
		NotesText:     models.FormatPaymentNotes(notes),
		Receipts:      []models.Advance{},
		Advances:      []models.Advance{},
	}
	for _, a := range all {
		if a.IsSettlementReceipt() {
			history.Receipts = append(history.Receipts, a)
		} else {
			history.Advances = append(history.Advances, a)
		}
	}
	history.ReceiptTotal = models.SumAdvances(history.Receipts)
	return history, nil
}

// cardLast4 keeps only the last four digits of whatever card number was given
func cardLast4(card string) string {
	var digits []rune
	for _, r := range card {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return string(digits)
}

func noteText(meta PaymentMetadata, last4 string) string {
	var parts []string
	if n := strings.TrimSpace(meta.Notes); n != "" {
		parts = append(parts, n)
	}
	if last4 != "" {
		parts = append(parts, "card ending "+last4)
	}
	if ref := strings.TrimSpace(meta.OnlineReference); ref != "" {
		parts = append(parts, "ref "+ref)
	}
	return strings.Join(parts, "; ")
}
