package session

import (
	"context"
	"testing"
	"time"

	"github.com/Kerubo0/Rafiki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, models.ContextWelcome, sess.Context)

	got, err := store.Get(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, sess.SessionID, got.SessionID)

	require.NoError(t, store.Delete(ctx, sess.SessionID))
	_, err = store.Get(ctx, sess.SessionID)
	assert.Equal(t, ErrNotFound, err)
	assert.Equal(t, ErrNotFound, store.Delete(ctx, sess.SessionID))
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	_, err := store.Get(context.Background(), "nope")
	assert.Equal(t, ErrNotFound, err)
}

func TestMemoryStoreUpdateIsApplied(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	updated, err := store.Update(ctx, sess.SessionID, func(s *models.Session) {
		s.Context = models.ContextBookingName
		s.Entities[models.EntityServiceType] = models.ServicePassport
		s.History = append(s.History, models.HistoryEntry{Role: "user", Content: "book a passport"})
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContextBookingName, updated.Context)

	got, err := store.Get(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.ContextBookingName, got.Context)
	assert.Equal(t, models.ServicePassport, got.Entities[models.EntityServiceType])
	assert.Len(t, got.History, 1)
}

func TestMemoryStoreUpdateAbortedRequest(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	sess, err := store.Create(context.Background())
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Update(cancelled, sess.SessionID, func(s *models.Session) {
		s.Context = models.ContextBookingName
	})
	require.Error(t, err)

	got, err := store.Get(context.Background(), sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.ContextWelcome, got.Context, "aborted update must not be persisted")
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_, err = store.Get(ctx, sess.SessionID)
	assert.Equal(t, ErrNotFound, err)
}

func TestMemoryStoreSnapshotsAreIsolated(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	// Mutating a returned snapshot must not leak into the store.
	sess.Entities["service_type"] = "passport"

	got, err := store.Get(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Empty(t, got.Entities)
}
