package settings

import (
	"context"
	"errors"
	"testing"

	"corecrew/internal/platform/storage"
)

func TestOpenSeedsDefaults(t *testing.T) {
	store := storage.New(storage.NewMemoryKV())
	s, err := Open(context.Background(), store, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got := s.Get()
	if got.Company.Name != "Core Crew Connect" || got.Security.PasswordExpiryDays != 90 || got.Notifications.DailyReports {
		t.Fatalf("unexpected defaults %+v", got)
	}
	var stored Settings
	if found, err := store.Load(context.Background(), CollectionKey, &stored); err != nil || !found {
		t.Fatalf("expected defaults persisted, found=%v err=%v", found, err)
	}
}

func TestUpdateReplacesOnlySuppliedSections(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemoryKV())
	s, _ := Open(ctx, store, nil)

	system := System{Language: "fr", DateFormat: "DD/MM/YYYY", Timezone: "UTC+1", Theme: "dark"}
	updated, err := s.Update(ctx, Patch{System: &system})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.System != system || updated.Company.Name != "Core Crew Connect" {
		t.Fatalf("unexpected settings %+v", updated)
	}

	reopened, err := Open(ctx, store, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Get().System.Theme != "dark" {
		t.Fatalf("expected persisted theme, got %+v", reopened.Get().System)
	}
}

func TestUpdateRejectsInvalidSecurity(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(ctx, storage.New(storage.NewMemoryKV()), nil)
	bad := Security{PasswordExpiryDays: 0, SessionTimeoutMinutes: 30, LoginAttempts: 5}
	if _, err := s.Update(ctx, Patch{Security: &bad}); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
	if s.Get().Security.PasswordExpiryDays != 90 {
		t.Fatalf("expected rejected update to leave settings unchanged")
	}
}
