package observability

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"partybets/domain/entities"
	"partybets/domain/events"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsProvider_HandleEvent(t *testing.T) {
	mp := NewMetricsProvider()
	ctx := context.Background()

	require.NoError(t, mp.HandleEvent(ctx, events.BetCreatedEvent{PartyID: 1, BetID: 1}))
	require.NoError(t, mp.HandleEvent(ctx, events.WagerPlacedEvent{PartyID: 1, BetID: 1, Amount: 20}))
	require.NoError(t, mp.HandleEvent(ctx, events.WagerPlacedEvent{PartyID: 1, BetID: 1, Amount: 30}))
	require.NoError(t, mp.HandleEvent(ctx, events.BetStatusChangedEvent{PartyID: 1, BetID: 1, OldStatus: entities.BetStatusOpen, NewStatus: entities.BetStatusClosed}))
	require.NoError(t, mp.HandleEvent(ctx, events.BetSettledEvent{
		PartyID:  1,
		BetID:    1,
		TotalPot: 50,
		Results:  []*entities.PayoutResult{{UserName: "Alice"}, {UserName: "Bob"}},
	}))

	assert.Equal(t, 1.0, testutil.ToFloat64(mp.betsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(mp.wagersPlaced))
	assert.Equal(t, 50.0, testutil.ToFloat64(mp.wageredUnits))
	assert.Equal(t, 1.0, testutil.ToFloat64(mp.betTransitions.WithLabelValues("closed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(mp.settlements))
	assert.Equal(t, 50.0, testutil.ToFloat64(mp.settledPot))
	assert.Equal(t, 2.0, testutil.ToFloat64(mp.eventsPublished.WithLabelValues(string(events.EventTypeWagerPlaced))))
}

func TestMetricsProvider_Handler(t *testing.T) {
	mp := NewMetricsProvider()
	mp.RecordCacheLookup(CacheResultHit)
	mp.RecordCacheLookup(CacheResultMiss)
	mp.RecordCacheLookup(CacheResultMiss)

	rec := httptest.NewRecorder()
	mp.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `partybets_summary_cache_lookups_total{result="miss"} 2`)
	assert.Contains(t, string(body), `partybets_summary_cache_lookups_total{result="hit"} 1`)
}
