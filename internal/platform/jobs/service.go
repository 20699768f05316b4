package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"corecrew/internal/platform/storage"
)

const (
	JobPayrollGenerate = "payroll_generate"

	CollectionKey = "jobRuns"
	MaxRuns       = 100

	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type Run struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Details     json.RawMessage `json:"details,omitempty"`
	Error       string          `json:"error,omitempty"`
	StartedAt   time.Time       `json:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

type RunFunc func(context.Context) (any, error)

// Observer receives one call per finished job.
type Observer interface {
	ObserveJob(jobType, status string)
}

type Service struct {
	runs     *storage.Collection[Run]
	observer Observer
	logger   *slog.Logger
	queue    chan job
	now      func() time.Time
	wg       sync.WaitGroup
}

type job struct {
	Type string
	Run  RunFunc
}

func New(ctx context.Context, store *storage.Store, observer Observer, logger *slog.Logger) (*Service, error) {
	runs, err := storage.OpenCollection(ctx, store, CollectionKey, func() []Run { return []Run{} })
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		runs:     runs,
		observer: observer,
		logger:   logger,
		queue:    make(chan job, 128),
		now:      time.Now,
	}, nil
}

// Start runs the worker until ctx is done.
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.worker(ctx)
	}()
}

// Schedule enqueues jobType every interval until ctx is done. A zero
// interval disables the schedule.
func (s *Service) Schedule(ctx context.Context, interval time.Duration, jobType string, run RunFunc) {
	if interval <= 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Enqueue(jobType, run)
			}
		}
	}()
}

// Wait blocks until the worker and schedulers have exited.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) Enqueue(jobType string, run RunFunc) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		s.logger.Warn("job queue full", "jobType", jobType)
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run RunFunc) (Run, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// List returns recorded runs newest first, optionally filtered by type.
func (s *Service) List(jobType string, limit int) []Run {
	all := s.runs.Snapshot()
	out := []Run{}
	for idx := len(all) - 1; idx >= 0 && (limit <= 0 || len(out) < limit); idx-- {
		if jobType != "" && all[idx].Type != jobType {
			continue
		}
		out = append(out, all[idx])
	}
	return out
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				s.logger.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (Run, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Run{}, err
	}
	run := Run{ID: id.String(), Type: j.Type, Status: StatusRunning, StartedAt: s.now().UTC()}
	if err := s.record(ctx, run); err != nil {
		s.logger.Warn("job run insert failed", "err", err)
	}

	details, runErr := j.Run(ctx)
	run.Status = StatusCompleted
	if runErr != nil {
		run.Status = StatusFailed
		run.Error = runErr.Error()
	}
	if details != nil {
		detailsJSON, marshalErr := json.Marshal(details)
		if marshalErr != nil {
			s.logger.Warn("job details marshal failed", "err", marshalErr)
			detailsJSON = []byte("{}")
		}
		run.Details = detailsJSON
	}
	completed := s.now().UTC()
	run.CompletedAt = &completed
	if err := s.record(ctx, run); err != nil {
		s.logger.Warn("job run update failed", "err", err)
	}
	if s.observer != nil {
		s.observer.ObserveJob(j.Type, run.Status)
	}
	s.logger.Info("job finished", "jobType", j.Type, "runId", run.ID, "status", run.Status)
	return run, runErr
}

// record inserts run or replaces the entry with the same id, keeping the
// newest MaxRuns entries.
func (s *Service) record(ctx context.Context, run Run) error {
	return s.runs.Mutate(ctx, func(items []Run) ([]Run, error) {
		for idx := range items {
			if items[idx].ID == run.ID {
				items[idx] = run
				return items, nil
			}
		}
		items = append(items, run)
		if len(items) > MaxRuns {
			items = items[len(items)-MaxRuns:]
		}
		return items, nil
	})
}
