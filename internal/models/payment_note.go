package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentNote is one append-only entry in a bill's settlement trail.
// Rows are only ever inserted.
type PaymentNote struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	BillNo          string          `gorm:"size:40;not null;index" json:"bill_no"`
	ReceiptNo       string          `gorm:"size:60;not null" json:"receipt_no"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentModeID   uint            `gorm:"not null" json:"payment_mode_id"`
	PaymentModeName string          `gorm:"size:80;not null" json:"payment_mode_name"`
	Text            string          `gorm:"type:text" json:"text"`
	RecordedAt      time.Time       `gorm:"not null;index" json:"recorded_at"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TableName specifies the table name for PaymentNote
func (PaymentNote) TableName() string {
	return "bill_payment_notes"
}

// paymentNoteLayout is the timestamp layout legacy front-office screens print.
const paymentNoteLayout = "2006-01-02 15:04"

// Line renders the note the way the legacy concatenated notes field did.
func (n PaymentNote) Line() string {
	line := fmt.Sprintf("[%s] Paid %s via %s",
		n.RecordedAt.Format(paymentNoteLayout), n.Amount.StringFixed(2), n.PaymentModeName)
	if text := strings.TrimSpace(n.Text); text != "" {
		line += " - " + text
	}
	return line
}

// FormatPaymentNotes joins notes oldest first, one per line.
func FormatPaymentNotes(notes []PaymentNote) string {
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, n.Line())
	}
	return strings.Join(lines, "\n")
}
