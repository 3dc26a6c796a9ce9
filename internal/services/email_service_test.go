package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/frontdesk-api/internal/config"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMailer struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (m *mockMailer) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.sent = append(m.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func TestEmailService_checkEmailPreconditions(t *testing.T) {
	// Email turned off entirely
	service := NewEmailService(&config.Config{})
	ok, err := service.checkEmailPreconditions("guest@example.com", "test operation")
	assert.False(t, ok)
	assert.NoError(t, err)

	// Half configured
	service = NewEmailService(&config.Config{FromEmail: "frontdesk@example.com"})
	ok, err = service.checkEmailPreconditions("guest@example.com", "test operation")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")

	// Configured, no recipient
	service = NewEmailService(&config.Config{ResendAPIKey: "re_test", FromEmail: "frontdesk@example.com"})
	ok, err = service.checkEmailPreconditions("  ", "test operation")
	assert.False(t, ok)
	assert.EqualError(t, err, "email address is empty")

	ok, err = service.checkEmailPreconditions("guest@example.com", "test operation")
	assert.True(t, ok)
	assert.NoError(t, err)
}

func TestEmailService_SendSettlementReceipt(t *testing.T) {
	cfg := &config.Config{ResendAPIKey: "re_test", FromEmail: "frontdesk@example.com"}
	mock := &mockMailer{}
	service := &EmailService{config: cfg, mailer: mock}

	bill := &models.Bill{
		BillNo:           "BL-100",
		GuestName:        "Ana Guest",
		PaidAmount:       decimal.NewFromInt(700),
		BalanceAmount:    decimal.Zero,
		SettlementStatus: models.SettlementStatusSettled,
	}
	note := &models.PaymentNote{
		ReceiptNo:       "RC-ABC",
		Amount:          decimal.NewFromInt(700),
		PaymentModeName: "Cash",
		RecordedAt:      time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC),
	}

	err := service.SendSettlementReceipt(context.Background(), NewSettlementReceipt(bill, note, "ana@example.com"))
	require.NoError(t, err)
	require.Len(t, mock.sent, 1)

	sent := mock.sent[0]
	assert.Equal(t, []string{"ana@example.com"}, sent.To)
	assert.Equal(t, "frontdesk@example.com", sent.From)
	assert.Contains(t, sent.Subject, "RC-ABC")
	assert.Contains(t, sent.Html, "BL-100")
	assert.Contains(t, sent.Html, "700.00")
	assert.Contains(t, sent.Html, "fully settled")
}

func TestEmailService_SendSettlementReceipt_SkipsWhenDisabled(t *testing.T) {
	mock := &mockMailer{}
	service := &EmailService{config: &config.Config{}, mailer: mock}

	err := service.SendSettlementReceipt(context.Background(), SettlementReceipt{GuestEmail: "ana@example.com"})
	assert.NoError(t, err)
	assert.Empty(t, mock.sent)
}

func TestEmailService_SendSettlementReceipt_PropagatesSendError(t *testing.T) {
	cfg := &config.Config{ResendAPIKey: "re_test", FromEmail: "frontdesk@example.com"}
	service := &EmailService{config: cfg, mailer: &mockMailer{err: errors.New("rate limited")}}

	err := service.SendSettlementReceipt(context.Background(), SettlementReceipt{
		BillNo:     "BL-1",
		ReceiptNo:  "RC-1",
		GuestEmail: "ana@example.com",
	})
	assert.EqualError(t, err, "rate limited")
}
