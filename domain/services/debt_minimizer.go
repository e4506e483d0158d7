package services

import (
	"sort"

	"partybets/domain/entities"
	"partybets/domain/utils"
)

type balance struct {
	userName string
	cents    int64
}

// MinimizeDebts turns net positions into payment instructions by repeatedly matching
// the largest debtor with the largest creditor. Positive net amounts are owed money,
// negative ones owe. If the positions do not sum to zero the residual is absorbed by
// the position with the largest magnitude.
func MinimizeDebts(positions []*entities.NetPosition) []*entities.Transfer {
	balances := collectBalances(positions)
	absorbResidual(balances)

	var debtors, creditors []*balance
	for _, b := range balances {
		switch {
		case b.cents < 0:
			debtors = append(debtors, &balance{userName: b.userName, cents: -b.cents})
		case b.cents > 0:
			creditors = append(creditors, b)
		}
	}

	transfers := make([]*entities.Transfer, 0)
	for len(debtors) > 0 && len(creditors) > 0 {
		sortBalances(debtors)
		sortBalances(creditors)

		debtor, creditor := debtors[0], creditors[0]
		amount := min(debtor.cents, creditor.cents)

		transfers = append(transfers, &entities.Transfer{
			From:   debtor.userName,
			To:     creditor.userName,
			Amount: utils.FromCents(amount),
		})

		debtor.cents -= amount
		creditor.cents -= amount
		if debtor.cents == 0 {
			debtors = debtors[1:]
		}
		if creditor.cents == 0 {
			creditors = creditors[1:]
		}
	}

	return transfers
}

// collectBalances converts positions to cents, merging repeated names in first-seen order
func collectBalances(positions []*entities.NetPosition) []*balance {
	balances := make([]*balance, 0, len(positions))
	byUser := make(map[string]*balance)
	for _, p := range positions {
		b, exists := byUser[p.UserName]
		if !exists {
			b = &balance{userName: p.UserName}
			byUser[p.UserName] = b
			balances = append(balances, b)
		}
		b.cents += utils.ToCents(p.NetAmount)
	}
	return balances
}

func absorbResidual(balances []*balance) {
	var sum int64
	for _, b := range balances {
		sum += b.cents
	}
	if sum == 0 || len(balances) == 0 {
		return
	}

	var largest *balance
	for _, b := range balances {
		if largest == nil || abs(b.cents) > abs(largest.cents) ||
			(abs(b.cents) == abs(largest.cents) && b.userName < largest.userName) {
			largest = b
		}
	}
	largest.cents -= sum
}

// sortBalances orders by amount descending, then name ascending
func sortBalances(balances []*balance) {
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].cents != balances[j].cents {
			return balances[i].cents > balances[j].cents
		}
		return balances[i].userName < balances[j].userName
	})
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
