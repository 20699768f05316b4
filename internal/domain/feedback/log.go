package feedback

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"corecrew/internal/platform/events"
	"corecrew/internal/platform/storage"
)

// Log owns the feedback collection. Entries are immutable apart from IsRead.
type Log struct {
	col    *storage.Collection[Feedback]
	events events.Publisher
	now    func() time.Time
	newID  func() (string, error)
}

type Option func(*Log)

func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

func Open(ctx context.Context, store *storage.Store, pub events.Publisher, opts ...Option) (*Log, error) {
	col, err := storage.OpenCollection(ctx, store, CollectionKey, func() []Feedback { return []Feedback{} })
	if err != nil {
		return nil, err
	}
	if pub == nil {
		pub = events.Discard{}
	}
	l := &Log{col: col, events: pub, now: time.Now, newID: newTimeOrderedID}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func newTimeOrderedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (l *Log) Add(ctx context.Context, employeeID, rating int, message, author string) (Feedback, error) {
	if rating < MinRating || rating > MaxRating {
		return Feedback{}, ErrInvalidRating
	}
	id, err := l.newID()
	if err != nil {
		return Feedback{}, err
	}
	entry := Feedback{
		ID:         id,
		EmployeeID: employeeID,
		Rating:     rating,
		Message:    message,
		CreatedAt:  l.now().UTC(),
		CreatedBy:  author,
		IsRead:     false,
	}
	err = l.col.Mutate(ctx, func(items []Feedback) ([]Feedback, error) {
		return append(items, entry), nil
	}, func() {
		l.events.Publish(ctx, events.Event{Collection: CollectionKey, Action: events.ActionCreated, EntityID: entry.ID, Summary: author})
	})
	if err != nil {
		return Feedback{}, err
	}
	return entry, nil
}

// MarkRead flips IsRead once. Marking an already read entry writes nothing.
func (l *Log) MarkRead(ctx context.Context, id string) (Feedback, error) {
	var marked Feedback
	err := l.col.Mutate(ctx, func(items []Feedback) ([]Feedback, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if items[i].IsRead {
				marked = items[i]
				return nil, storage.ErrUnchanged
			}
			items[i].IsRead = true
			marked = items[i]
			return items, nil
		}
		return nil, ErrFeedbackNotFound
	}, func() {
		l.events.Publish(ctx, events.Event{Collection: CollectionKey, Action: events.ActionRead, EntityID: id})
	})
	if err != nil {
		return Feedback{}, err
	}
	return marked, nil
}

func (l *Log) List() []Feedback {
	return l.col.Snapshot()
}

// ListForEmployee keeps insertion order.
func (l *Log) ListForEmployee(employeeID int) []Feedback {
	out := []Feedback{}
	for _, f := range l.col.Snapshot() {
		if f.EmployeeID == employeeID {
			out = append(out, f)
		}
	}
	return out
}

func (l *Log) Stats(employeeID int) Stats {
	stats := Stats{EmployeeID: employeeID}
	total := 0
	for _, f := range l.ListForEmployee(employeeID) {
		stats.Count++
		total += f.Rating
		if !f.IsRead {
			stats.Unread++
		}
	}
	if stats.Count > 0 {
		stats.AverageRating = math.Round(float64(total)/float64(stats.Count)*10) / 10
	}
	return stats
}
