package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is the immutable payout record for one user on one settled bet
type Settlement struct {
	ID           int64           `db:"id" json:"id"`
	BetID        int64           `db:"bet_id" json:"betId"`
	UserName     string          `db:"user_name" json:"userName"`
	TotalWagered int64           `db:"total_wagered" json:"totalWagered"`
	Payout       decimal.Decimal `db:"payout_cents" json:"payout"`
	NetWinLoss   decimal.Decimal `db:"net_cents" json:"netWinLoss"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
}

// PayoutResult is one participant's outcome on a bet before it is persisted
type PayoutResult struct {
	UserName     string          `json:"userName"`
	TotalWagered int64           `json:"totalWagered"`
	Payout       decimal.Decimal `json:"payout"`
	NetWinLoss   decimal.Decimal `json:"netWinLoss"`
}

// IsWinner checks if the participant came out ahead
func (r *PayoutResult) IsWinner() bool {
	return r.NetWinLoss.IsPositive()
}

// ToSettlement converts a payout result into a settlement record for the bet
func (r *PayoutResult) ToSettlement(betID int64) *Settlement {
	return &Settlement{
		BetID:        betID,
		UserName:     r.UserName,
		TotalWagered: r.TotalWagered,
		Payout:       r.Payout,
		NetWinLoss:   r.NetWinLoss,
	}
}
