package leave

import (
	"context"
	"strings"
	"time"

	"corecrew/internal/platform/events"
	"corecrew/internal/platform/storage"
)

// Register owns the leave request collection.
type Register struct {
	col    *storage.Collection[Request]
	events events.Publisher
	now    func() time.Time
}

type Option func(*Register)

func WithClock(now func() time.Time) Option {
	return func(r *Register) { r.now = now }
}

func Open(ctx context.Context, store *storage.Store, pub events.Publisher, seed func() []Request, opts ...Option) (*Register, error) {
	if seed == nil {
		seed = func() []Request { return []Request{} }
	}
	col, err := storage.OpenCollection(ctx, store, CollectionKey, seed)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		pub = events.Discard{}
	}
	r := &Register{col: col, events: pub, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Register) List() []Request {
	return r.col.Snapshot()
}

func (r *Register) ListForEmployee(employeeID int) []Request {
	out := []Request{}
	for _, req := range r.col.Snapshot() {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out
}

func (r *Register) Get(id int) (Request, error) {
	for _, req := range r.col.Snapshot() {
		if req.ID == id {
			return req, nil
		}
	}
	return Request{}, ErrLeaveRequestNotFound
}

func (r *Register) PendingCount() int {
	count := 0
	for _, req := range r.col.Snapshot() {
		if req.Status == StatusPending {
			count++
		}
	}
	return count
}

// Submit records a Pending request with the inclusive day count.
func (r *Register) Submit(ctx context.Context, in NewRequest) (Request, error) {
	days, err := DaysBetween(in.StartDate, in.EndDate)
	if err != nil {
		return Request{}, err
	}
	if strings.TrimSpace(in.LeaveType) == "" {
		in.LeaveType = TypeAnnual
	}
	var created Request
	err = r.col.Mutate(ctx, func(items []Request) ([]Request, error) {
		created = Request{
			ID:           nextID(items),
			EmployeeID:   in.EmployeeID,
			EmployeeName: in.EmployeeName,
			LeaveType:    in.LeaveType,
			StartDate:    in.StartDate,
			EndDate:      in.EndDate,
			Days:         days,
			Status:       StatusPending,
			Reason:       in.Reason,
			CreatedAt:    r.now().UTC(),
		}
		return append(items, created), nil
	}, func() {
		r.publish(ctx, events.ActionCreated, created)
	})
	if err != nil {
		return Request{}, err
	}
	return created, nil
}

func (r *Register) Approve(ctx context.Context, id int) (Request, error) {
	return r.decide(ctx, id, StatusApproved, events.ActionApproved)
}

func (r *Register) Reject(ctx context.Context, id int) (Request, error) {
	return r.decide(ctx, id, StatusRejected, events.ActionRejected)
}

func (r *Register) decide(ctx context.Context, id int, status, action string) (Request, error) {
	var decided Request
	err := r.col.Mutate(ctx, func(items []Request) ([]Request, error) {
		idx := indexOf(items, id)
		if idx < 0 {
			return nil, ErrLeaveRequestNotFound
		}
		if items[idx].Status != StatusPending {
			return nil, ErrInvalidTransition
		}
		items[idx].Status = status
		items[idx].DecidedAt = r.now().Format(dateLayout)
		decided = items[idx]
		return items, nil
	}, func() {
		r.publish(ctx, action, decided)
	})
	if err != nil {
		return Request{}, err
	}
	return decided, nil
}

func (r *Register) publish(ctx context.Context, action string, req Request) {
	r.events.Publish(ctx, events.Event{
		Collection: CollectionKey,
		Action:     action,
		EntityID:   req.Key(),
		Summary:    req.EmployeeName + " " + req.LeaveType,
	})
}
