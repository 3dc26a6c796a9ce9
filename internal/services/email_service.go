package services

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/sjperalta/frontdesk-api/internal/config"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/sjperalta/frontdesk-api/pkg/logger"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

// mailer is the part of the resend client the service uses
type mailer interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type EmailService struct {
	config *config.Config
	mailer mailer
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config: cfg,
		mailer: client.Emails,
	}
}

// Enabled reports whether receipt mails will actually be sent
func (s *EmailService) Enabled() bool {
	return s.config.EmailEnabled()
}

// SettlementReceipt is the data rendered into the receipt email
type SettlementReceipt struct {
	BillNo        string
	GuestName     string
	GuestEmail    string
	ReceiptNo     string
	Amount        string
	PaymentMode   string
	RecordedAt    string
	PaidAmount    string
	BalanceAmount string
	Status        string
	Settled       bool
}

// NewSettlementReceipt builds receipt data from a bill after a settlement
func NewSettlementReceipt(bill *models.Bill, note *models.PaymentNote, guestEmail string) SettlementReceipt {
	return SettlementReceipt{
		BillNo:        bill.BillNo,
		GuestName:     bill.GuestName,
		GuestEmail:    guestEmail,
		ReceiptNo:     note.ReceiptNo,
		Amount:        note.Amount.StringFixed(2),
		PaymentMode:   note.PaymentModeName,
		RecordedAt:    note.RecordedAt.Format("02/01/2006 15:04"),
		PaidAmount:    bill.PaidAmount.StringFixed(2),
		BalanceAmount: bill.BalanceAmount.StringFixed(2),
		Status:        bill.SettlementStatus,
		Settled:       bill.IsSettled(),
	}
}

// checkEmailPreconditions reports whether an email can be sent. A false
// result with a nil error means sending is simply turned off.
func (s *EmailService) checkEmailPreconditions(to, operation string) (bool, error) {
	if s.config.ResendAPIKey == "" && s.config.FromEmail == "" {
		logger.Debug("email disabled, skipping", "operation", operation)
		return false, nil
	}
	if !s.config.EmailEnabled() {
		return false, fmt.Errorf("email is not configured for %s: RESEND_API_KEY and FROM_EMAIL are required", operation)
	}
	if strings.TrimSpace(to) == "" {
		return false, errors.New("email address is empty")
	}
	return true, nil
}

// SendSettlementReceipt emails the guest a receipt for one settlement payment
func (s *EmailService) SendSettlementReceipt(ctx context.Context, receipt SettlementReceipt) error {
	ok, err := s.checkEmailPreconditions(receipt.GuestEmail, "settlement receipt")
	if !ok {
		return err
	}

	body, err := s.renderTemplate("settlement_receipt.html", receipt)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Payment receipt %s for bill %s", receipt.ReceiptNo, receipt.BillNo)
	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{receipt.GuestEmail},
		Subject: subject,
		Html:    body,
	}
	if _, err := s.mailer.Send(params); err != nil {
		logger.Error("failed to send email", "to", receipt.GuestEmail, "bill_no", receipt.BillNo, "error", err)
		return err
	}

	logger.Info("email sent", "to", receipt.GuestEmail, "subject", subject)
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
