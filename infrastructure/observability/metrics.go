package observability

import (
	"context"
	"net/http"

	"partybets/domain/events"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// MetricsProvider owns the Prometheus registry and the service's instruments
type MetricsProvider struct {
	registry *prometheus.Registry

	betsCreated     prometheus.Counter
	betTransitions  *prometheus.CounterVec
	settlements     prometheus.Counter
	settledPot      prometheus.Counter
	wagersPlaced    prometheus.Counter
	wageredUnits    prometheus.Counter
	eventsPublished *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
}

// NewMetricsProvider creates the instruments on a fresh registry
func NewMetricsProvider() *MetricsProvider {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mp := &MetricsProvider{
		registry: registry,
		betsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      BetsCreatedTotal,
			Help:      "Number of bets opened",
		}),
		betTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      BetTransitionsTotal,
			Help:      "Number of bet lifecycle transitions by new status",
		}, []string{LabelStatus}),
		settlements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      SettlementsTotal,
			Help:      "Number of per-user settlement records created",
		}),
		settledPot: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      SettledPotUnitsTotal,
			Help:      "Sum of pots of settled bets",
		}),
		wagersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      WagersPlacedTotal,
			Help:      "Number of wagers placed",
		}),
		wageredUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      WageredUnitsTotal,
			Help:      "Sum of wager amounts",
		}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      EventsPublishedTotal,
			Help:      "Number of committed domain events by type",
		}, []string{LabelEventType}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      SummaryCacheLookupsTotal,
			Help:      "Summary cache lookups by result",
		}, []string{LabelResult}),
	}

	registry.MustRegister(
		mp.betsCreated,
		mp.betTransitions,
		mp.settlements,
		mp.settledPot,
		mp.wagersPlaced,
		mp.wageredUnits,
		mp.eventsPublished,
		mp.cacheLookups,
	)

	return mp
}

// Registry exposes the registry for tests and extra collectors
func (mp *MetricsProvider) Registry() *prometheus.Registry {
	return mp.registry
}

// Handler serves the registry in the Prometheus exposition format
func (mp *MetricsProvider) Handler() http.Handler {
	return promhttp.HandlerFor(mp.registry, promhttp.HandlerOpts{})
}

// HandleEvent records a committed domain event
func (mp *MetricsProvider) HandleEvent(ctx context.Context, event events.Event) error {
	mp.eventsPublished.WithLabelValues(string(event.Type())).Inc()

	switch e := event.(type) {
	case events.BetCreatedEvent:
		mp.betsCreated.Inc()
	case events.WagerPlacedEvent:
		mp.wagersPlaced.Inc()
		mp.wageredUnits.Add(float64(e.Amount))
	case events.BetStatusChangedEvent:
		mp.betTransitions.WithLabelValues(string(e.NewStatus)).Inc()
	case events.BetSettledEvent:
		mp.settlements.Add(float64(len(e.Results)))
		mp.settledPot.Add(float64(e.TotalPot))
	default:
		log.WithField("eventType", event.Type()).Debug("No metrics for event type")
	}

	return nil
}

// RecordCacheLookup counts one summary cache lookup
func (mp *MetricsProvider) RecordCacheLookup(result string) {
	mp.cacheLookups.WithLabelValues(result).Inc()
}
