package services

import (
	"context"

	"github.com/sjperalta/frontdesk-api/internal/jobs"
	"github.com/sjperalta/frontdesk-api/internal/repository"
)

// BalanceRefreshJob names the recurring and on-demand balance refresh
const BalanceRefreshJob = "balance_refresh"

// JobStatus is the worker snapshot plus the backlog the balance refresh walks
type JobStatus struct {
	jobs.WorkerStats
	OpenBills    int64 `json:"open_bills"`
	ReceiptMails bool  `json:"receipt_mails_enabled"`
}

type balanceRefresher interface {
	RefreshPendingBalances(ctx context.Context) (int, error)
}

type JobService struct {
	worker    *jobs.Worker
	bills     repository.BillRepository
	refresher balanceRefresher
	email     *EmailService
}

func NewJobService(worker *jobs.Worker, bills repository.BillRepository, refresher balanceRefresher, email *EmailService) *JobService {
	return &JobService{worker: worker, bills: bills, refresher: refresher, email: email}
}

func (s *JobService) GetStatus(ctx context.Context) (*JobStatus, error) {
	query := repository.NewListQuery()
	query.PerPage = 1
	_, open, err := s.bills.ListOpen(ctx, query)
	if err != nil {
		return nil, err
	}
	return &JobStatus{
		WorkerStats:  s.worker.GetStats(),
		OpenBills:    open,
		ReceiptMails: s.email != nil && s.email.Enabled(),
	}, nil
}

// RunBalanceRefresh refreshes every balance now, after the scheduled run
func (s *JobService) RunBalanceRefresh(ctx context.Context) error {
	_, err := s.refresher.RefreshPendingBalances(ctx)
	return err
}

// QueueBalanceRefresh puts an out-of-schedule refresh on the worker queue,
// e.g. after bulk rate corrections. It returns the queue length afterwards.
func (s *JobService) QueueBalanceRefresh() int {
	s.worker.Enqueue(BalanceRefreshJob, s.RunBalanceRefresh)
	return s.worker.GetStats().QueueLength
}
