package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"SellerLens/internal/api/config"
	"SellerLens/internal/pkg/newsletter"
	"SellerLens/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscriberService(t *testing.T, providerURL string) SubscriberService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.NewsletterConfig{}
	if providerURL != "" {
		cfg.URL = providerURL
		cfg.ApiKey = "test-key"
		cfg.ListID = "list-1"
	}
	return NewSubscriberService(repository.NewSubscriberRepository(db), newsletter.NewClient(cfg))
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	svc := newSubscriberService(t, "")

	t.Run("should normalize and store the email", func(t *testing.T) {
		require.NoError(t, svc.Subscribe(ctx, "  Alice@Example.COM  "))

		rows, total, err := svc.ListSubscribers(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "alice@example.com", rows[0].Email)
		assert.True(t, rows[0].IsActive)
		assert.Nil(t, rows[0].SyncedAt)
	})

	t.Run("should be idempotent for repeat subscriptions", func(t *testing.T) {
		require.NoError(t, svc.Subscribe(ctx, "alice@example.com"))

		_, total, err := svc.ListSubscribers(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("should reject blank email", func(t *testing.T) {
		assert.ErrorIs(t, svc.Subscribe(ctx, "   "), ErrParamInvalid)
	})
}

func TestUnsubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("should deactivate locally even without a provider", func(t *testing.T) {
		svc := newSubscriberService(t, "")
		require.NoError(t, svc.Subscribe(ctx, "bob@example.com"))

		require.NoError(t, svc.Unsubscribe(ctx, "bob@example.com"))

		rows, _, err := svc.ListSubscribers(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.False(t, rows[0].IsActive)
	})

	t.Run("should return not found for unknown email", func(t *testing.T) {
		svc := newSubscriberService(t, "")
		assert.ErrorIs(t, svc.Unsubscribe(ctx, "nobody@example.com"), ErrSubscriberNotFound)
	})

	t.Run("should tolerate provider 404 on removal", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		svc := newSubscriberService(t, server.URL)
		require.NoError(t, svc.Subscribe(ctx, "carol@example.com"))
		assert.NoError(t, svc.Unsubscribe(ctx, "carol@example.com"))
	})
}

func TestSyncPending(t *testing.T) {
	ctx := context.Background()

	t.Run("should skip when provider is not configured", func(t *testing.T) {
		svc := newSubscriberService(t, "")
		require.NoError(t, svc.Subscribe(ctx, "dave@example.com"))

		synced, err := svc.SyncPending(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, synced)
	})

	t.Run("should push pending members and mark them synced", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		svc := newSubscriberService(t, server.URL)
		require.NoError(t, svc.Subscribe(ctx, "erin@example.com"))
		require.NoError(t, svc.Subscribe(ctx, "frank@example.com"))

		synced, err := svc.SyncPending(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, synced)
		assert.Equal(t, 2, calls)

		// 第二轮没有待同步的
		synced, err = svc.SyncPending(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, synced)
	})

	t.Run("should leave failed members queued for retry", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		svc := newSubscriberService(t, server.URL)
		require.NoError(t, svc.Subscribe(ctx, "grace@example.com"))

		synced, err := svc.SyncPending(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, synced)
		assert.Positive(t, calls)
	})
}
