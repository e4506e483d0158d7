package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"partybets/application"
	"partybets/bot/announce"
	"partybets/config"
	"partybets/database"
	"partybets/domain/interfaces"
	"partybets/infrastructure"
	"partybets/infrastructure/observability"
	"partybets/web"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// eventPublisher is a publisher local handlers can be registered on
type eventPublisher interface {
	interfaces.EventPublisher
	application.EventSubscriber
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	cfg.ApplyLogging()

	log.WithField("environment", cfg.Environment).Info("Starting partybets...")

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	// Initialize event publishing
	var publisher eventPublisher
	if cfg.NATSEnabled() {
		log.Info("Connecting to NATS...")
		natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer func() {
			if err := natsClient.Close(); err != nil {
				log.WithError(err).Error("Error closing NATS connection")
			}
		}()

		natsPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
		if err := natsPublisher.EnsurePartyEventStream(); err != nil {
			return fmt.Errorf("failed to ensure party event stream: %w", err)
		}
		if err := subscribeSettlementAudit(natsClient); err != nil {
			return fmt.Errorf("failed to subscribe settlement audit: %w", err)
		}
		publisher = natsPublisher
	} else {
		log.Info("NATS_SERVERS not set, events stay in-process")
		publisher = infrastructure.NewLocalEventPublisher()
	}

	// Initialize unit of work factory
	uowFactory := infrastructure.NewUnitOfWorkFactory(db, publisher)

	// Initialize metrics
	metrics := observability.NewMetricsProvider()

	// Initialize summary cache
	var summaryCache interfaces.SummaryCache
	if cfg.CacheEnabled() {
		log.WithField("addr", cfg.RedisAddr).Info("Connecting to Redis...")
		redisClient, err := infrastructure.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer closeRedis(redisClient)

		summaryCache = infrastructure.NewInstrumentedSummaryCache(
			infrastructure.NewRedisSummaryCache(redisClient, cfg.SummaryCacheTTL),
			metrics,
		)
	}

	app := application.NewPartyApp(uowFactory, summaryCache)
	hub := web.NewHub(func(r *http.Request) bool { return true })
	defer hub.Close()

	subs := application.Subscribers{
		Broadcaster: hub,
		Recorder:    metrics,
	}
	if cfg.DiscordEnabled() {
		session, err := announce.NewDiscordSession(cfg.DiscordToken)
		if err != nil {
			return err
		}
		subs.Announcer = announce.NewDiscordAnnouncer(session, cfg.DiscordChannelID)
		log.WithField("channelID", cfg.DiscordChannelID).Info("Settled bets will be announced on Discord")
	}
	application.RegisterApplicationSubscriptions(uowFactory, app, subs)

	// Start HTTP server
	server := web.NewHTTPServer(cfg.HTTPAddr, web.NewServer(app, hub, metrics.Handler()).Routes())
	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("HTTP API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for context cancellation
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}

	// Cleanup resources
	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown did not complete cleanly")
	}

	log.Info("Shutdown completed")
	return nil
}

// subscribeSettlementAudit logs every settlement that reaches the stream
func subscribeSettlementAudit(client *infrastructure.NATSClient) error {
	return client.Subscribe(infrastructure.SubjectBetSettled, func(data []byte) error {
		var envelope infrastructure.EventEnvelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			return fmt.Errorf("failed to decode event envelope: %w", err)
		}
		log.WithFields(log.Fields{
			"eventID": envelope.EventID,
			"partyID": envelope.PartyID,
			"source":  envelope.SourceService,
		}).Info("Settlement recorded on event stream")
		return nil
	})
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		log.WithError(err).Error("Error closing Redis connection")
	}
}
