package web

import (
	"context"
	"net/http"
	"time"

	"partybets/bot/scoreboard"
	"partybets/domain/entities"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// PartyAPI is the set of use cases the HTTP layer exposes
type PartyAPI interface {
	CreateParty(ctx context.Context, name string) (*entities.Party, error)
	GetParty(ctx context.Context, partyID int64) (*entities.Party, error)
	ListParties(ctx context.Context) ([]*entities.Party, error)
	CreateBet(ctx context.Context, partyID int64, question string, options []string, creatorName string) (*entities.BetDetail, error)
	PlaceWager(ctx context.Context, partyID, betID int64, userName string, optionID, amount int64) (*entities.Wager, error)
	CloseBet(ctx context.Context, partyID, betID int64, creds entities.Credentials) (*entities.Bet, error)
	SettleBet(ctx context.Context, partyID, betID, winningOptionID int64, creds entities.Credentials) (*entities.BetResolution, error)
	GetBetDetail(ctx context.Context, partyID, betID int64) (*entities.BetDetail, error)
	ListBets(ctx context.Context, partyID int64) ([]*entities.Bet, error)
	ListBetSettlements(ctx context.Context, partyID, betID int64) ([]*entities.Settlement, error)
	GetPartySummary(ctx context.Context, partyID int64) (*entities.PartySummary, error)
	GetPaymentPlan(ctx context.Context, partyID int64) ([]*entities.Transfer, error)
}

// LeaderboardRenderer draws a party summary as a PNG
type LeaderboardRenderer interface {
	GenerateLeaderboard(partyName string, summary *entities.PartySummary) ([]byte, error)
}

// Server holds the dependencies of the HTTP API
type Server struct {
	app            PartyAPI
	hub            *Hub
	leaderboard    LeaderboardRenderer
	metricsHandler http.Handler
}

// NewServer creates an API server. hub and metricsHandler may be nil.
func NewServer(app PartyAPI, hub *Hub, metricsHandler http.Handler) *Server {
	return &Server{
		app:            app,
		hub:            hub,
		leaderboard:    scoreboard.NewImageGenerator(),
		metricsHandler: metricsHandler,
	}
}

// Routes builds the chi router for every endpoint
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(requestLogger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if s.metricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", s.metricsHandler)
	}
	if s.hub != nil {
		router.Get("/ws", s.hub.HandleWS)
	}

	router.Route("/api/parties", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(30 * time.Second))
		r.Use(withCredentials)

		r.Post("/", s.handleCreateParty)
		r.Get("/", s.handleListParties)

		r.Route("/{partyID}", func(r chi.Router) {
			r.Get("/", s.handleGetParty)
			r.Get("/summary", s.handleGetSummary)
			r.Get("/payments", s.handleGetPayments)
			r.Get("/leaderboard.png", s.handleLeaderboard)

			r.Get("/bets", s.handleListBets)
			r.Post("/bets", s.handleCreateBet)
			r.Route("/bets/{betID}", func(r chi.Router) {
				r.Get("/", s.handleGetBet)
				r.Post("/wagers", s.handlePlaceWager)
				r.Post("/close", s.handleCloseBet)
				r.Post("/settle", s.handleSettleBet)
				r.Get("/settlements", s.handleListSettlements)
			})
		})
	})

	return router
}

// NewHTTPServer wraps handler in a server with sane timeouts
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
