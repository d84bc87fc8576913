package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConsentNeededForNewSession(t *testing.T) {
	svc := NewConsentService(newFakeConsentStore(), time.Hour)

	require.True(t, svc.Needed(context.Background(), "session-1"))
}

func TestConsentNotNeededAfterGrant(t *testing.T) {
	svc := NewConsentService(newFakeConsentStore(), time.Hour)

	require.NoError(t, svc.Grant(context.Background(), "session-1"))
	require.False(t, svc.Needed(context.Background(), "session-1"))
	require.True(t, svc.Needed(context.Background(), "session-2"))
}

func TestConsentStoreFailureShowsNoticeAgain(t *testing.T) {
	store := newFakeConsentStore()
	store.err = errors.New("redis down")
	svc := NewConsentService(store, time.Hour)

	require.True(t, svc.Needed(context.Background(), "session-1"))
}
