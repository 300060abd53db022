package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomline/admin-api/internal/models"
)

type mockSummaryStore struct {
	summaryFunc func(ctx context.Context) (*models.DashboardSummary, error)
	calls       int
}

func (m *mockSummaryStore) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	m.calls++
	return m.summaryFunc(ctx)
}

type mockSummaryCache struct {
	getFunc func(ctx context.Context) (*models.DashboardSummary, error)
	setFunc func(ctx context.Context, data *models.DashboardSummary) error
	sets    int
}

func (m *mockSummaryCache) Get(ctx context.Context) (*models.DashboardSummary, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return nil, nil
}

func (m *mockSummaryCache) Set(ctx context.Context, data *models.DashboardSummary) error {
	m.sets++
	if m.setFunc != nil {
		return m.setFunc(ctx, data)
	}
	return nil
}

func TestDashboardSummary(t *testing.T) {
	fresh := &models.DashboardSummary{TotalOrders: 10, PendingOrders: 3, TotalProducts: 50}

	t.Run("cache hit skips the store", func(t *testing.T) {
		cached := &models.DashboardSummary{TotalOrders: 9}
		store := &mockSummaryStore{summaryFunc: func(ctx context.Context) (*models.DashboardSummary, error) {
			return fresh, nil
		}}
		cache := &mockSummaryCache{getFunc: func(ctx context.Context) (*models.DashboardSummary, error) {
			return cached, nil
		}}
		svc := NewDashboardService(store, cache)

		got, err := svc.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, cached, got)
		assert.Equal(t, 0, store.calls)
	})

	t.Run("cache miss computes and stores", func(t *testing.T) {
		store := &mockSummaryStore{summaryFunc: func(ctx context.Context) (*models.DashboardSummary, error) {
			return fresh, nil
		}}
		cache := &mockSummaryCache{}
		svc := NewDashboardService(store, cache)

		got, err := svc.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fresh, got)
		assert.Equal(t, 1, store.calls)
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("cache errors degrade to a direct read", func(t *testing.T) {
		store := &mockSummaryStore{summaryFunc: func(ctx context.Context) (*models.DashboardSummary, error) {
			return fresh, nil
		}}
		cache := &mockSummaryCache{
			getFunc: func(ctx context.Context) (*models.DashboardSummary, error) {
				return nil, errors.New("redis down")
			},
			setFunc: func(ctx context.Context, data *models.DashboardSummary) error {
				return errors.New("redis down")
			},
		}
		svc := NewDashboardService(store, cache)

		got, err := svc.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fresh, got)
	})

	t.Run("nil cache works", func(t *testing.T) {
		store := &mockSummaryStore{summaryFunc: func(ctx context.Context) (*models.DashboardSummary, error) {
			return fresh, nil
		}}
		svc := NewDashboardService(store, nil)

		got, err := svc.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fresh, got)
	})

	t.Run("store error propagates", func(t *testing.T) {
		dbErr := errors.New("timeout")
		store := &mockSummaryStore{summaryFunc: func(ctx context.Context) (*models.DashboardSummary, error) {
			return nil, dbErr
		}}
		svc := NewDashboardService(store, nil)

		_, err := svc.Summary(context.Background())
		assert.ErrorIs(t, err, dbErr)
	})
}
