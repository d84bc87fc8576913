package services

import (
	"context"
	"time"

	"medscan_gateway/pkg/logging"
)

// ConsentService tracks the one-time data-use notice per session. The
// flag is session-scoped: it expires with the TTL and the notice shows
// again.
type ConsentService struct {
	store ConsentStore
	ttl   time.Duration
}

func NewConsentService(store ConsentStore, ttl time.Duration) *ConsentService {
	return &ConsentService{store: store, ttl: ttl}
}

// Needed reports whether the notice must be shown. A store failure
// errs on showing it again.
func (s *ConsentService) Needed(ctx context.Context, sessionID string) bool {
	has, err := s.store.HasConsent(ctx, sessionID)
	if err != nil {
		logging.Logger.Error("fail reading consent flag", "error", err)
		return true
	}
	return !has
}

func (s *ConsentService) Grant(ctx context.Context, sessionID string) error {
	return s.store.SetConsent(ctx, sessionID, s.ttl)
}
