package settings

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"corecrew/internal/platform/events"
	"corecrew/internal/platform/storage"
)

// Service holds the single settings document.
type Service struct {
	mu     sync.RWMutex
	store  *storage.Store
	doc    Settings
	events events.Publisher
}

func Open(ctx context.Context, store *storage.Store, pub events.Publisher) (*Service, error) {
	doc, err := storage.LoadOrSeed(ctx, store, CollectionKey, Defaults)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		pub = events.Discard{}
	}
	return &Service{store: store, doc: doc, events: pub}, nil
}

func (s *Service) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

func (s *Service) Update(ctx context.Context, patch Patch) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc
	if patch.Company != nil {
		next.Company = *patch.Company
	}
	if patch.Notifications != nil {
		next.Notifications = *patch.Notifications
	}
	if patch.Security != nil {
		next.Security = *patch.Security
	}
	if patch.System != nil {
		next.System = *patch.System
	}
	if err := Validate(next); err != nil {
		return Settings{}, err
	}
	if err := s.store.Save(ctx, CollectionKey, next); err != nil {
		return Settings{}, err
	}
	s.doc = next
	s.events.Publish(ctx, events.Event{Collection: CollectionKey, Action: events.ActionUpdated, EntityID: CollectionKey, Summary: sections(patch)})
	return next, nil
}

func Validate(doc Settings) error {
	if strings.TrimSpace(doc.Company.Name) == "" {
		return fmt.Errorf("%w: company name is required", ErrInvalidSettings)
	}
	if doc.Security.PasswordExpiryDays <= 0 {
		return fmt.Errorf("%w: passwordExpiryDays must be positive", ErrInvalidSettings)
	}
	if doc.Security.SessionTimeoutMinutes <= 0 {
		return fmt.Errorf("%w: sessionTimeoutMinutes must be positive", ErrInvalidSettings)
	}
	if doc.Security.LoginAttempts <= 0 {
		return fmt.Errorf("%w: loginAttempts must be positive", ErrInvalidSettings)
	}
	return nil
}

func sections(p Patch) string {
	var names []string
	if p.Company != nil {
		names = append(names, "company")
	}
	if p.Notifications != nil {
		names = append(names, "notifications")
	}
	if p.Security != nil {
		names = append(names, "security")
	}
	if p.System != nil {
		names = append(names, "system")
	}
	return strings.Join(names, ",")
}
