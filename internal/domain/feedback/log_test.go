package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	"corecrew/internal/platform/storage"
)

func openLog(t *testing.T, opts ...Option) (*Log, *storage.Store) {
	t.Helper()
	store := storage.New(storage.NewMemoryKV())
	l, err := Open(context.Background(), store, nil, opts...)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	return l, store
}

func TestAddSetsDerivedFields(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	l, _ := openLog(t, WithClock(func() time.Time { return fixed }))

	f, err := l.Add(context.Background(), 2, 4, "Great launch", "Jane Manager")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if f.ID == "" || f.IsRead || !f.CreatedAt.Equal(fixed) || f.CreatedBy != "Jane Manager" {
		t.Fatalf("unexpected feedback %+v", f)
	}
}

func TestAddRejectsRatingOutOfRange(t *testing.T) {
	l, _ := openLog(t)
	for _, rating := range []int{0, 6, -1} {
		if _, err := l.Add(context.Background(), 1, rating, "x", "y"); !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
	if len(l.List()) != 0 {
		t.Fatal("expected rejected feedback not to be stored")
	}
}

func TestIDsAreUniqueAndTimeOrdered(t *testing.T) {
	l, _ := openLog(t)
	ctx := context.Background()
	first, _ := l.Add(ctx, 1, 3, "a", "x")
	second, _ := l.Add(ctx, 1, 3, "b", "x")
	if first.ID == second.ID {
		t.Fatal("expected distinct ids")
	}
	if first.ID > second.ID {
		t.Fatalf("expected time-ordered ids, got %s then %s", first.ID, second.ID)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	l, _ := openLog(t)
	ctx := context.Background()
	f, _ := l.Add(ctx, 1, 5, "Thanks", "Lead")

	once, err := l.MarkRead(ctx, f.ID)
	if err != nil || !once.IsRead {
		t.Fatalf("expected read, got %+v, %v", once, err)
	}
	twice, err := l.MarkRead(ctx, f.ID)
	if err != nil {
		t.Fatalf("second mark read: %v", err)
	}
	if twice != once {
		t.Fatalf("expected nothing else to change, got %+v vs %+v", twice, once)
	}
}

func TestMarkReadUnknownID(t *testing.T) {
	l, _ := openLog(t)
	if _, err := l.MarkRead(context.Background(), "missing"); !errors.Is(err, ErrFeedbackNotFound) {
		t.Fatalf("expected ErrFeedbackNotFound, got %v", err)
	}
}

func TestListForEmployeeKeepsInsertionOrder(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	l, _ := openLog(t, WithClock(func() time.Time {
		tick++
		return base.Add(-time.Duration(tick) * time.Hour)
	}))
	ctx := context.Background()
	_, _ = l.Add(ctx, 7, 2, "first", "a")
	_, _ = l.Add(ctx, 8, 5, "other", "a")
	_, _ = l.Add(ctx, 7, 4, "second", "a")

	got := l.ListForEmployee(7)
	if len(got) != 2 || got[0].Message != "first" || got[1].Message != "second" {
		t.Fatalf("expected insertion order, got %+v", got)
	}
	if empty := l.ListForEmployee(99); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestStats(t *testing.T) {
	l, _ := openLog(t)
	ctx := context.Background()
	a, _ := l.Add(ctx, 3, 5, "a", "x")
	_, _ = l.Add(ctx, 3, 4, "b", "x")
	_, _ = l.Add(ctx, 3, 4, "c", "x")
	_, _ = l.MarkRead(ctx, a.ID)

	stats := l.Stats(3)
	if stats.Count != 3 || stats.Unread != 2 || stats.AverageRating != 4.3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestFeedbackSurvivesReopen(t *testing.T) {
	l, store := openLog(t)
	ctx := context.Background()
	f, _ := l.Add(ctx, 1, 3, "persist me", "x")
	_, _ = l.MarkRead(ctx, f.ID)

	reopened, err := Open(ctx, store, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	list := reopened.List()
	if len(list) != 1 || list[0].ID != f.ID || !list[0].IsRead {
		t.Fatalf("expected persisted feedback, got %+v", list)
	}
}
