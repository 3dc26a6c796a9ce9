package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sjperalta/frontdesk-api/internal/clock"
	"github.com/sjperalta/frontdesk-api/internal/models"
)

// Settlement events
const (
	EventMarkPending = "mark_pending"
	EventMarkPartial = "mark_partial"
	EventMarkSettled = "mark_settled"
)

var eventForStatus = map[string]string{
	models.SettlementStatusPending: EventMarkPending,
	models.SettlementStatusPartial: EventMarkPartial,
	models.SettlementStatusSettled: EventMarkSettled,
}

// SettlementFSM wraps a bill with its settlement state machine.
// The target state is always derived from the bill's amounts; the machine
// only guards the transition and stamps the settlement date.
type SettlementFSM struct {
	bill  *models.Bill
	fsm   *fsm.FSM
	clock clock.Clock
}

// NewSettlementFSM creates a new settlement state machine. A bill without a
// status (not yet persisted) starts as PENDING.
func NewSettlementFSM(bill *models.Bill, clk clock.Clock) *SettlementFSM {
	sfsm := &SettlementFSM{
		bill:  bill,
		clock: clk,
	}

	initial := bill.SettlementStatus
	if initial == "" {
		initial = models.SettlementStatusPending
	}

	sfsm.fsm = fsm.NewFSM(
		initial,
		fsm.Events{
			{Name: EventMarkPending, Src: []string{models.SettlementStatusPartial, models.SettlementStatusSettled}, Dst: models.SettlementStatusPending},
			{Name: EventMarkPartial, Src: []string{models.SettlementStatusPending, models.SettlementStatusSettled}, Dst: models.SettlementStatusPartial},
			{Name: EventMarkSettled, Src: []string{models.SettlementStatusPending, models.SettlementStatusPartial}, Dst: models.SettlementStatusSettled},
		},
		fsm.Callbacks{
			"enter_" + models.SettlementStatusSettled: func(_ context.Context, _ *fsm.Event) {
				sfsm.stampSettlementDate()
			},
		},
	)

	return sfsm
}

// MoveTo transitions the bill to the given status. Moving to the current
// status is a no-op.
func (s *SettlementFSM) MoveTo(ctx context.Context, status string) error {
	event, ok := eventForStatus[status]
	if !ok {
		return fmt.Errorf("unknown settlement status: %s", status)
	}

	if s.fsm.Current() != status {
		if err := s.fsm.Event(ctx, event); err != nil {
			return fmt.Errorf("failed to move bill %s to %s: %w", s.bill.BillNo, status, err)
		}
	}

	if status == models.SettlementStatusSettled {
		s.stampSettlementDate()
	}

	s.bill.SettlementStatus = s.fsm.Current()
	return nil
}

// settlement date is set once and never cleared
func (s *SettlementFSM) stampSettlementDate() {
	if s.bill.SettlementDate != nil {
		return
	}
	now := s.clock.Now()
	s.bill.SettlementDate = &now
}

// Current returns the current state
func (s *SettlementFSM) Current() string {
	return s.fsm.Current()
}

// Can checks if a transition is possible
func (s *SettlementFSM) Can(event string) bool {
	return s.fsm.Can(event)
}
