package performance

import (
	"context"
	"time"

	"corecrew/internal/platform/events"
	"corecrew/internal/platform/storage"
)

// Service owns the performance review collection.
type Service struct {
	col    *storage.Collection[Review]
	events events.Publisher
	now    func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func Open(ctx context.Context, store *storage.Store, pub events.Publisher, seed func() []Review, opts ...Option) (*Service, error) {
	if seed == nil {
		seed = func() []Review { return []Review{} }
	}
	col, err := storage.OpenCollection(ctx, store, CollectionKey, seed)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		pub = events.Discard{}
	}
	s := &Service{col: col, events: pub, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) List() []Review {
	return s.col.Snapshot()
}

func (s *Service) ListForEmployee(employeeID int) []Review {
	out := []Review{}
	for _, r := range s.col.Snapshot() {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Service) Get(id int) (Review, error) {
	for _, r := range s.col.Snapshot() {
		if r.ID == id {
			return r, nil
		}
	}
	return Review{}, ErrReviewNotFound
}

func (s *Service) Add(ctx context.Context, in NewReview) (Review, error) {
	if in.Status == "" {
		in.Status = StatusInProgress
	}
	if in.ReviewDate == "" {
		in.ReviewDate = s.now().Format(dateLayout)
	}
	if in.Goals == nil {
		in.Goals = []Goal{}
	}
	if err := validate(in.Rating, in.Status, in.Goals); err != nil {
		return Review{}, err
	}
	var created Review
	err := s.col.Mutate(ctx, func(items []Review) ([]Review, error) {
		created = Review{
			ID:           nextID(items),
			EmployeeID:   in.EmployeeID,
			EmployeeName: in.EmployeeName,
			Position:     in.Position,
			Department:   in.Department,
			Rating:       in.Rating,
			Status:       in.Status,
			ReviewDate:   in.ReviewDate,
			Goals:        in.Goals,
			Notes:        in.Notes,
		}
		return append(items, created), nil
	}, func() {
		s.publish(ctx, events.ActionCreated, created)
	})
	if err != nil {
		return Review{}, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int, patch Patch) (Review, error) {
	var updated Review
	err := s.col.Mutate(ctx, func(items []Review) ([]Review, error) {
		idx := indexOf(items, id)
		if idx < 0 {
			return nil, ErrReviewNotFound
		}
		next := patch.apply(items[idx])
		if err := validate(next.Rating, next.Status, next.Goals); err != nil {
			return nil, err
		}
		items[idx] = next
		updated = next
		return items, nil
	}, func() {
		s.publish(ctx, events.ActionUpdated, updated)
	})
	if err != nil {
		return Review{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	var removed Review
	err := s.col.Mutate(ctx, func(items []Review) ([]Review, error) {
		idx := indexOf(items, id)
		if idx < 0 {
			return nil, ErrReviewNotFound
		}
		removed = items[idx]
		return append(items[:idx], items[idx+1:]...), nil
	}, func() {
		s.publish(ctx, events.ActionDeleted, removed)
	})
	if err != nil {
		return err
	}
	return nil
}

func (s *Service) Summary() Summary {
	return buildSummary(s.col.Snapshot())
}

func (s *Service) publish(ctx context.Context, action string, r Review) {
	s.events.Publish(ctx, events.Event{
		Collection: CollectionKey,
		Action:     action,
		EntityID:   r.Key(),
		Summary:    r.EmployeeName,
	})
}
