package entities

import (
	"github.com/shopspring/decimal"
)

// NetPosition is a user's aggregated win or loss across settled bets in a party
type NetPosition struct {
	UserName  string          `json:"userName"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PartySummary is the derived net view of a party
type PartySummary struct {
	PartyID  int64          `json:"partyId"`
	Users    []*NetPosition `json:"users"`
	TotalPot int64          `json:"totalPot"`
}

// Transfer is one payment instruction produced by debt minimization
type Transfer struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Winners returns the positions with a positive net amount
func (s *PartySummary) Winners() []*NetPosition {
	var winners []*NetPosition
	for _, u := range s.Users {
		if u.NetAmount.IsPositive() {
			winners = append(winners, u)
		}
	}
	return winners
}
