package audit

import (
	"context"
	"strconv"
	"testing"
	"time"

	"corecrew/internal/platform/events"
	"corecrew/internal/platform/storage"
)

func openTrail(t *testing.T) (*Trail, *storage.Store) {
	t.Helper()
	store := storage.New(storage.NewMemoryKV())
	trail, err := Open(context.Background(), store, nil)
	if err != nil {
		t.Fatalf("open trail: %v", err)
	}
	return trail, store
}

func TestRecordCapsAtMaxEntries(t *testing.T) {
	ctx := context.Background()
	trail, store := openTrail(t)
	for i := 0; i < MaxEntries+5; i++ {
		if err := trail.Record(ctx, events.Event{Collection: "employees", Action: events.ActionUpdated, EntityID: strconv.Itoa(i), At: time.Now()}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	if trail.Count(Filter{}) != MaxEntries {
		t.Fatalf("expected %d entries, got %d", MaxEntries, trail.Count(Filter{}))
	}
	newest := trail.List(Filter{}, 1, 0)
	if len(newest) != 1 || newest[0].EntityID != strconv.Itoa(MaxEntries+4) {
		t.Fatalf("expected newest entry first, got %+v", newest)
	}

	reopened, err := Open(ctx, store, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Count(Filter{}) != MaxEntries {
		t.Fatalf("expected persisted entries, got %d", reopened.Count(Filter{}))
	}
}

func TestListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	trail, _ := openTrail(t)
	_ = trail.Record(ctx, events.Event{Collection: "employees", Action: events.ActionCreated, EntityID: "1"})
	_ = trail.Record(ctx, events.Event{Collection: "payrollData", Action: events.ActionProcessed, EntityID: "5"})
	_ = trail.Record(ctx, events.Event{Collection: "employees", Action: events.ActionDeleted, EntityID: "1"})

	got := trail.List(Filter{Collection: "employees"}, 10, 0)
	if len(got) != 2 || got[0].Action != events.ActionDeleted {
		t.Fatalf("unexpected filtered entries %+v", got)
	}
	page := trail.List(Filter{}, 1, 1)
	if len(page) != 1 || page[0].Collection != "payrollData" {
		t.Fatalf("unexpected page %+v", page)
	}
	if out := trail.List(Filter{}, 10, 10); len(out) != 0 {
		t.Fatalf("expected empty page past the end, got %+v", out)
	}
}

func TestRunConsumesBrokerEvents(t *testing.T) {
	trail, _ := openTrail(t)
	broker := events.NewBroker()
	ch, cancel := broker.Subscribe("audit", 8)

	done := make(chan struct{})
	go func() {
		trail.Run(context.Background(), ch)
		close(done)
	}()
	broker.Publish(context.Background(), events.Event{Collection: "feedbacks", Action: events.ActionRead, EntityID: "abc"})
	cancel()
	<-done

	if trail.Count(Filter{Collection: "feedbacks"}) != 1 {
		t.Fatalf("expected broker event recorded, got %d", trail.Count(Filter{}))
	}
}
