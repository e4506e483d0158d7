package services

import (
	"sort"

	"partybets/domain/entities"

	"github.com/shopspring/decimal"
)

// SummarizeParty sums each user's net result across the party's settlements.
// Users without a settlement are left out. Ties on net amount are ordered by name.
func SummarizeParty(partyID int64, settlements []*entities.Settlement, totalPot int64) *entities.PartySummary {
	positions := make([]*entities.NetPosition, 0)
	byUser := make(map[string]*entities.NetPosition)

	for _, s := range settlements {
		pos, exists := byUser[s.UserName]
		if !exists {
			pos = &entities.NetPosition{UserName: s.UserName, NetAmount: decimal.Zero}
			byUser[s.UserName] = pos
			positions = append(positions, pos)
		}
		pos.NetAmount = pos.NetAmount.Add(s.NetWinLoss)
	}

	sortPositions(positions)

	return &entities.PartySummary{
		PartyID:  partyID,
		Users:    positions,
		TotalPot: totalPot,
	}
}

// TotalPot sums every wager amount regardless of bet status
func TotalPot(wagers []*entities.Wager) int64 {
	return entities.TotalWagered(wagers)
}

func sortPositions(positions []*entities.NetPosition) {
	sort.Slice(positions, func(i, j int) bool {
		if c := positions[i].NetAmount.Cmp(positions[j].NetAmount); c != 0 {
			return c > 0
		}
		return positions[i].UserName < positions[j].UserName
	})
}
