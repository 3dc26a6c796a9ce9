package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/frontdesk-api/internal/clock"
	"github.com/sjperalta/frontdesk-api/internal/database"
	"github.com/sjperalta/frontdesk-api/internal/metrics"
	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/sjperalta/frontdesk-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

var testActor = models.Actor{UserID: 7, IP: "10.0.0.1", UserAgent: "go-test"}

type ledgerFixture struct {
	t     *testing.T
	ctx   context.Context
	db    *gorm.DB
	repos *repository.Repositories
	clock *clock.FakeClock
	deps  *LedgerDeps

	bills       *BillService
	splits      *SplitService
	settlements *SettlementService
	lineage     *LineageService

	seq int
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	db, err := database.Connect("sqlite::memory:", "test")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repos := repository.NewRepositories(db)
	clk := clock.NewFakeClock(time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC))
	numbers, err := NewNumberGenerator(1, "BL", "RC")
	require.NoError(t, err)

	frontOffice := NewFrontOffice(repos.Stay, repos.Room, repos.PaymentMode)
	deps := &LedgerDeps{
		DB:           db,
		Bills:        repos.Bill,
		Charges:      repos.Charge,
		Advances:     repos.Advance,
		Stays:        frontOffice,
		Rooms:        frontOffice,
		PaymentModes: frontOffice,
		Calculator:   NewBalanceCalculator(clk),
		Numbers:      numbers,
		Audit:        NewAuditService(repos.Audit),
		Metrics:      metrics.NewLedgerMetrics(prometheus.NewRegistry()),
		Clock:        clk,
	}

	return &ledgerFixture{
		t:           t,
		ctx:         context.Background(),
		db:          db,
		repos:       repos,
		clock:       clk,
		deps:        deps,
		bills:       NewBillService(deps),
		splits:      NewSplitService(deps),
		settlements: NewSettlementService(deps),
		lineage:     NewLineageService(deps),
	}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ratePtr(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, money(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

// stay checks a guest into a new room. rate may be nil.
func (f *ledgerFixture) stay(folioNo string, rate *decimal.Decimal, active bool) *models.Stay {
	f.t.Helper()
	f.seq++
	room := &models.Room{RoomNo: fmt.Sprintf("%d", 100+f.seq), Status: "OCCUPIED"}
	require.NoError(f.t, f.db.Create(room).Error)

	stay := &models.Stay{
		FolioNo:       folioNo,
		ReservationNo: "RES-" + folioNo,
		GuestName:     "Guest " + folioNo,
		GuestEmail:    "guest-" + folioNo + "@example.com",
		RoomID:        room.ID,
		RoomRate:      rate,
		Active:        active,
		CheckInAt:     f.clock.Now().Add(-48 * time.Hour),
	}
	require.NoError(f.t, f.db.Create(stay).Error)
	return stay
}

func (f *ledgerFixture) charge(folioNo, amount string) *models.Charge {
	f.t.Helper()
	c := &models.Charge{
		FolioNo:       folioNo,
		AccountHeadID: 1,
		Amount:        money(amount),
		Description:   "Room charge",
		PostedAt:      f.clock.Now(),
	}
	require.NoError(f.t, f.repos.Charge.Create(f.ctx, c))
	return c
}

func (f *ledgerFixture) advance(folioNo, amount string) *models.Advance {
	f.t.Helper()
	f.seq++
	a := &models.Advance{
		ReceiptNo:     fmt.Sprintf("ADV-%d", f.seq),
		Kind:          models.AdvanceKindGuest,
		FolioNo:       folioNo,
		Amount:        money(amount),
		PaymentModeID: 1,
		ReceivedAt:    f.clock.Now(),
	}
	require.NoError(f.t, f.repos.Advance.Create(f.ctx, a))
	return a
}

func (f *ledgerFixture) paymentMode(name string, active bool) *models.PaymentMode {
	f.t.Helper()
	m := &models.PaymentMode{Name: name, Active: active}
	require.NoError(f.t, f.db.Create(m).Error)
	return m
}

// billWithCharges checks in a guest without a rate, posts the charges and
// generates the bill.
func (f *ledgerFixture) billWithCharges(folioNo string, amounts ...string) (*models.Bill, []*models.Charge) {
	f.t.Helper()
	f.stay(folioNo, nil, true)
	charges := make([]*models.Charge, len(amounts))
	for i, a := range amounts {
		charges[i] = f.charge(folioNo, a)
	}
	bill, err := f.bills.GenerateBill(f.ctx, folioNo, testActor)
	require.NoError(f.t, err)
	return bill, charges
}

func (f *ledgerFixture) reload(billNo string) *models.Bill {
	f.t.Helper()
	bill, err := f.repos.Bill.FindByBillNo(f.ctx, billNo)
	require.NoError(f.t, err)
	return bill
}

func (f *ledgerFixture) count(model interface{}, where string, args ...interface{}) int64 {
	f.t.Helper()
	var n int64
	q := f.db.Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(f.t, q.Count(&n).Error)
	return n
}

// assertBillInvariants checks the balance and status rules on a persisted bill
func assertBillInvariants(t *testing.T, b *models.Bill) {
	t.Helper()
	assert.False(t, b.BalanceAmount.IsNegative(), "bill %s has negative balance", b.BillNo)
	switch {
	case b.BalanceAmount.IsZero():
		assert.Equal(t, models.SettlementStatusSettled, b.SettlementStatus, b.BillNo)
		assert.NotNil(t, b.SettlementDate, b.BillNo)
	case b.PaidAmount.IsZero():
		assert.Equal(t, models.SettlementStatusPending, b.SettlementStatus, b.BillNo)
	default:
		assert.Equal(t, models.SettlementStatusPartial, b.SettlementStatus, b.BillNo)
	}
}
