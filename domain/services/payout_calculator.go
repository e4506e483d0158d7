package services

import (
	"sort"

	"partybets/domain/entities"
	"partybets/domain/utils"

	"github.com/shopspring/decimal"
)

// participantStake accumulates one user's wagers on a bet
type participantStake struct {
	userName     string
	totalWagered int64
	onWinning    int64
}

// CalculatePayouts splits the total pool among users who backed the winning option,
// in proportion to their stake on it. Users are returned winners first.
func CalculatePayouts(wagers []*entities.Wager, winningOptionID int64) []*entities.PayoutResult {
	var totalPool, winningPool int64
	stakes := make([]*participantStake, 0)
	byUser := make(map[string]*participantStake)

	for _, w := range wagers {
		totalPool += w.Amount
		if w.OptionID == winningOptionID {
			winningPool += w.Amount
		}

		stake, exists := byUser[w.UserName]
		if !exists {
			stake = &participantStake{userName: w.UserName}
			byUser[w.UserName] = stake
			stakes = append(stakes, stake)
		}
		stake.totalWagered += w.Amount
		if w.OptionID == winningOptionID {
			stake.onWinning += w.Amount
		}
	}

	results := make([]*entities.PayoutResult, 0, len(stakes))
	for _, stake := range stakes {
		wagered := utils.FromUnits(stake.totalWagered)
		payout := decimal.Zero

		// Nobody picked the winner: everyone loses their stake
		if winningPool > 0 {
			payout = decimal.NewFromInt(stake.onWinning).
				Mul(decimal.NewFromInt(totalPool)).
				DivRound(decimal.NewFromInt(winningPool), utils.MoneyPlaces)
		}

		results = append(results, &entities.PayoutResult{
			UserName:     stake.userName,
			TotalWagered: stake.totalWagered,
			Payout:       payout,
			NetWinLoss:   payout.Sub(wagered),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].NetWinLoss.GreaterThan(results[j].NetWinLoss)
	})

	return results
}

// TotalPayout sums the payouts of the given results
func TotalPayout(results []*entities.PayoutResult) decimal.Decimal {
	total := decimal.Zero
	for _, r := range results {
		total = total.Add(r.Payout)
	}
	return total
}
