package web

import (
	"net/http"

	"partybets/domain/entities"

	log "github.com/sirupsen/logrus"
)

// CreatePartyRequest is the body of POST /api/parties
type CreatePartyRequest struct {
	Name string `json:"name"`
}

// CreateBetRequest is the body of POST /api/parties/{partyID}/bets
type CreateBetRequest struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	CreatorName string   `json:"creatorName"`
}

// PlaceWagerRequest is the body of POST .../bets/{betID}/wagers
type PlaceWagerRequest struct {
	UserName string `json:"userName"`
	OptionID int64  `json:"optionId"`
	Amount   int64  `json:"amount"`
}

// SettleBetRequest is the body of POST .../bets/{betID}/settle
type SettleBetRequest struct {
	WinningOptionID int64 `json:"winningOptionId"`
}

func (s *Server) handleCreateParty(w http.ResponseWriter, r *http.Request) {
	var req CreatePartyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}

	party, err := s.app.CreateParty(r.Context(), req.Name)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, party)
}

func (s *Server) handleListParties(w http.ResponseWriter, r *http.Request) {
	parties, err := s.app.ListParties(r.Context())
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	if parties == nil {
		parties = []*entities.Party{}
	}
	respondWithJSON(w, http.StatusOK, parties)
}

func (s *Server) handleGetParty(w http.ResponseWriter, r *http.Request) {
	partyID, err := int64Param(r, "partyID")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	party, err := s.app.GetParty(r.Context(), partyID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, party)
}

func (s *Server) handleListBets(w http.ResponseWriter, r *http.Request) {
	partyID, err := int64Param(r, "partyID")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	bets, err := s.app.ListBets(r.Context(), partyID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	if bets == nil {
		bets = []*entities.Bet{}
	}
	respondWithJSON(w, http.StatusOK, bets)
}

func (s *Server) handleCreateBet(w http.ResponseWriter, r *http.Request) {
	partyID, err := int64Param(r, "partyID")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var req CreateBetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}

	creatorName := req.CreatorName
	if creatorName == "" {
		creatorName = credentialsFrom(r.Context()).CreatorName
	}

	detail, err := s.app.CreateBet(r.Context(), partyID, req.Question, req.Options, creatorName)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, detail)
}

func (s *Server) handleGetBet(w http.ResponseWriter, r *http.Request) {
	partyID, betID, err := betParams(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	detail, err := s.app.GetBetDetail(r.Context(), partyID, betID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

func (s *Server) handlePlaceWager(w http.ResponseWriter, r *http.Request) {
	partyID, betID, err := betParams(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var req PlaceWagerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}

	wager, err := s.app.PlaceWager(r.Context(), partyID, betID, req.UserName, req.OptionID, req.Amount)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, wager)
}

func (s *Server) handleCloseBet(w http.ResponseWriter, r *http.Request) {
	partyID, betID, err := betParams(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	bet, err := s.app.CloseBet(r.Context(), partyID, betID, credentialsFrom(r.Context()))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, bet)
}

func (s *Server) handleSettleBet(w http.ResponseWriter, r *http.Request) {
	partyID, betID, err := betParams(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var req SettleBetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}

	resolution, err := s.app.SettleBet(r.Context(), partyID, betID, req.WinningOptionID, credentialsFrom(r.Context()))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resolution)
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	partyID, betID, err := betParams(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	settlements, err := s.app.ListBetSettlements(r.Context(), partyID, betID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	if settlements == nil {
		settlements = []*entities.Settlement{}
	}
	respondWithJSON(w, http.StatusOK, settlements)
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	partyID, err := int64Param(r, "partyID")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	summary, err := s.app.GetPartySummary(r.Context(), partyID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	if summary.Users == nil {
		summary.Users = []*entities.NetPosition{}
	}
	respondWithJSON(w, http.StatusOK, summary)
}

func (s *Server) handleGetPayments(w http.ResponseWriter, r *http.Request) {
	partyID, err := int64Param(r, "partyID")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	transfers, err := s.app.GetPaymentPlan(r.Context(), partyID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	if transfers == nil {
		transfers = []*entities.Transfer{}
	}
	respondWithJSON(w, http.StatusOK, transfers)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	partyID, err := int64Param(r, "partyID")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	party, err := s.app.GetParty(r.Context(), partyID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	summary, err := s.app.GetPartySummary(r.Context(), partyID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	png, err := s.leaderboard.GenerateLeaderboard(party.Name, summary)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.WithError(err).Warn("Failed to write leaderboard image")
	}
}

func betParams(r *http.Request) (int64, int64, error) {
	partyID, err := int64Param(r, "partyID")
	if err != nil {
		return 0, 0, err
	}
	betID, err := int64Param(r, "betID")
	if err != nil {
		return 0, 0, err
	}
	return partyID, betID, nil
}
