package entities

import (
	"time"
)

// Wager is one user's stake on one option of one bet
type Wager struct {
	ID        int64     `db:"id" json:"id"`
	BetID     int64     `db:"bet_id" json:"betId"`
	UserName  string    `db:"user_name" json:"userName"`
	OptionID  int64     `db:"option_id" json:"optionId"`
	Amount    int64     `db:"amount" json:"amount"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// TotalWagered sums the amounts of the given wagers
func TotalWagered(wagers []*Wager) int64 {
	var total int64
	for _, w := range wagers {
		total += w.Amount
	}
	return total
}
