package infrastructure

import (
	"context"
	"errors"
	"testing"

	"partybets/domain/entities"
	"partybets/domain/testhelpers"
	"partybets/infrastructure/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedSummaryCache_Get(t *testing.T) {
	ctx := context.Background()
	summary := &entities.PartySummary{PartyID: 1, TotalPot: 10}

	inner := new(testhelpers.MockSummaryCache)
	inner.On("Get", mock.Anything, int64(1)).Return(summary, nil).Once()
	inner.On("Get", mock.Anything, int64(2)).Return(nil, nil).Once()
	inner.On("Get", mock.Anything, int64(3)).Return(nil, errors.New("redis down")).Once()

	metrics := observability.NewMetricsProvider()
	cache := NewInstrumentedSummaryCache(inner, metrics)

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, summary, got)

	got, err = cache.Get(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = cache.Get(ctx, 3)
	assert.Error(t, err)

	inner.AssertExpectations(t)

	// One series each for hit, miss and error
	count, err := testutil.GatherAndCount(metrics.Registry(), "partybets_summary_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
