package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sjperalta/frontdesk-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs fire-and-forget ledger side effects (receipt emails) and the
// scheduled balance refresh.
type Worker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	queue    chan namedJob
	asyncSem chan struct{}
	stats    WorkerStats
	statsMu  sync.RWMutex
	closed   bool
	closeMu  sync.Mutex

	// schedulers stop before queued work is drained
	schedCtx    context.Context
	schedCancel context.CancelFunc
	schedWG     sync.WaitGroup
}

type namedJob struct {
	name string
	run  Job
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int                    `json:"active_jobs"`
	CompletedJobs int64                  `json:"completed_jobs"`
	FailedJobs    int64                  `json:"failed_jobs"`
	QueueLength   int                    `json:"queue_length"`
	MaxConcurrent int                    `json:"max_concurrent"`
	Schedules     map[string]ScheduleRun `json:"schedules"`
}

// ScheduleRun describes the last run of a scheduled job
type ScheduleRun struct {
	Interval  string    `json:"interval"`
	LastRunAt time.Time `json:"last_run_at"`
	LastError string    `json:"last_error,omitempty"`
	Runs      int64     `json:"runs"`
}

// NewWorker creates a worker with N queue processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	schedCtx, schedCancel := context.WithCancel(ctx)
	asyncLimit := numWorkers * 2
	if asyncLimit < 4 {
		asyncLimit = 4
	}

	w := &Worker{
		ctx:         ctx,
		cancel:      cancel,
		queue:       make(chan namedJob, 100),
		asyncSem:    make(chan struct{}, asyncLimit),
		schedCtx:    schedCtx,
		schedCancel: schedCancel,
		stats: WorkerStats{
			MaxConcurrent: asyncLimit,
			Schedules:     make(map[string]ScheduleRun),
		},
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to the queue. When the queue is full the job runs on
// the caller's goroutine.
func (w *Worker) Enqueue(name string, job Job) {
	w.closeMu.Lock()
	if w.closed {
		w.closeMu.Unlock()
		logger.Warn("worker closed, dropping job", "job", name)
		return
	}
	select {
	case w.queue <- namedJob{name: name, run: job}:
		w.closeMu.Unlock()
	default:
		w.closeMu.Unlock()
		logger.Warn("worker queue full, running job synchronously", "job", name)
		w.run("sync", name, job)
	}
}

// EnqueueAsync runs a job in its own goroutine, bounded by a semaphore
func (w *Worker) EnqueueAsync(name string, job Job) {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()
	if w.closed {
		logger.Warn("worker closed, dropping job", "job", name)
		return
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.asyncSem <- struct{}{}
		defer func() { <-w.asyncSem }()
		w.run("async", name, job)
	}()
}

func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	source := fmt.Sprintf("worker-%d", workerID)
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.run(source, job.name, job.run)
		}
	}
}

// run executes a job with panic recovery and bookkeeping
func (w *Worker) run(source, name string, job Job) (err error) {
	w.trackJobStart()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			logger.Error("job failed", "source", source, "job", name, "error", err)
			w.trackJobFailure()
		} else {
			logger.Debug("job completed", "source", source, "job", name, "duration", time.Since(start))
		}
		w.trackJobEnd()
	}()
	return job(w.ctx)
}

// ScheduleEvery runs a job at fixed intervals. The first run happens after
// one interval.
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, job, false)
}

// ScheduleEveryImmediate runs a job once at startup, then at fixed intervals
func (w *Worker) ScheduleEveryImmediate(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, job, true)
}

func (w *Worker) schedule(name string, interval time.Duration, job Job, immediate bool) {
	w.statsMu.Lock()
	w.stats.Schedules[name] = ScheduleRun{Interval: interval.String()}
	w.statsMu.Unlock()

	w.schedWG.Add(1)
	go func() {
		defer w.schedWG.Done()
		if immediate {
			w.runScheduled(name, job)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.schedCtx.Done():
				return
			case <-ticker.C:
				w.runScheduled(name, job)
			}
		}
	}()
}

func (w *Worker) runScheduled(name string, job Job) {
	err := w.run("scheduler", name, job)

	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	run := w.stats.Schedules[name]
	run.LastRunAt = time.Now()
	run.Runs++
	run.LastError = ""
	if err != nil {
		run.LastError = err.Error()
	}
	w.stats.Schedules[name] = run
}

// Shutdown stops accepting work, cancels running jobs and waits for them
func (w *Worker) Shutdown() {
	w.close()
	w.cancel()
	w.schedWG.Wait()
	w.wg.Wait()
}

// Drain stops the schedulers, then waits for queued and async jobs to
// finish without cancelling them.
func (w *Worker) Drain() {
	w.schedCancel()
	w.schedWG.Wait()
	w.close()
	w.wg.Wait()
}

func (w *Worker) close() {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.Schedules = make(map[string]ScheduleRun, len(w.stats.Schedules))
	for k, v := range w.stats.Schedules {
		stats.Schedules[k] = v
	}
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

// CompletedJobs counts finished jobs, failed ones included
func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}
