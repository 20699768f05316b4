package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"corecrew/internal/platform/events"
	"corecrew/internal/platform/storage"
)

const (
	CollectionKey = "auditEvents"
	MaxEntries    = 500
)

type Entry struct {
	ID         string `json:"id"`
	Collection string `json:"collection"`
	Action     string `json:"action"`
	EntityID   string `json:"entityId"`
	Summary    string `json:"summary,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
	At         string `json:"at"`
}

type Filter struct {
	Collection string
	Action     string
}

// Trail keeps the most recent change events, oldest first.
type Trail struct {
	col    *storage.Collection[Entry]
	logger *slog.Logger
}

func Open(ctx context.Context, store *storage.Store, logger *slog.Logger) (*Trail, error) {
	col, err := storage.OpenCollection(ctx, store, CollectionKey, func() []Entry { return []Entry{} })
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Trail{col: col, logger: logger}, nil
}

func (t *Trail) Record(ctx context.Context, evt events.Event) error {
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	entry := Entry{
		ID:         id.String(),
		Collection: evt.Collection,
		Action:     evt.Action,
		EntityID:   evt.EntityID,
		Summary:    evt.Summary,
		RequestID:  evt.RequestID,
		At:         evt.At.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	return t.col.Mutate(ctx, func(items []Entry) ([]Entry, error) {
		items = append(items, entry)
		if len(items) > MaxEntries {
			items = items[len(items)-MaxEntries:]
		}
		return items, nil
	})
}

// Run records events from ch until it is closed or ctx is done.
func (t *Trail) Run(ctx context.Context, ch <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			if err := t.Record(ctx, evt); err != nil {
				t.logger.Warn("audit record failed", "collection", evt.Collection, "action", evt.Action, "err", err)
			}
		}
	}
}

func (t *Trail) Count(filter Filter) int {
	return len(t.filtered(filter))
}

// List returns matching entries newest first.
func (t *Trail) List(filter Filter, limit, offset int) []Entry {
	matched := t.filtered(filter)
	out := []Entry{}
	for idx := len(matched) - 1 - offset; idx >= 0 && (limit <= 0 || len(out) < limit); idx-- {
		out = append(out, matched[idx])
	}
	return out
}

func (t *Trail) filtered(filter Filter) []Entry {
	out := []Entry{}
	for _, e := range t.col.Snapshot() {
		if filter.Collection != "" && e.Collection != filter.Collection {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		out = append(out, e)
	}
	return out
}
