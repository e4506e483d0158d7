package observability

// Metric name prefixes
const (
	MetricNamespace = "partybets"
)

// Metric names
const (
	// Bet metrics
	BetsCreatedTotal     = "bets_created_total"
	BetTransitionsTotal  = "bet_transitions_total"
	SettlementsTotal     = "settlements_total"
	SettledPotUnitsTotal = "settled_pot_units_total"

	// Wager metrics
	WagersPlacedTotal = "wagers_placed_total"
	WageredUnitsTotal = "wagered_units_total"

	// Event metrics
	EventsPublishedTotal = "events_published_total"

	// Cache metrics
	SummaryCacheLookupsTotal = "summary_cache_lookups_total"
)

// Label keys
const (
	LabelEventType = "event_type"
	LabelStatus    = "status"
	LabelResult    = "result"
)

// Cache lookup results
const (
	CacheResultHit   = "hit"
	CacheResultMiss  = "miss"
	CacheResultError = "error"
)
