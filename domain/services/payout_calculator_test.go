package services

import (
	"math/rand"
	"testing"

	"partybets/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	optionChiefs = int64(1)
	optionEagles = int64(2)
)

func wager(user string, optionID, amount int64) *entities.Wager {
	return &entities.Wager{UserName: user, OptionID: optionID, Amount: amount}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculatePayouts(t *testing.T) {
	type expected struct {
		user         string
		totalWagered int64
		payout       string
		net          string
	}

	tests := []struct {
		name     string
		wagers   []*entities.Wager
		winner   int64
		expected []expected
	}{
		{
			name: "chiefs win with a hedged bettor",
			wagers: []*entities.Wager{
				wager("Alice", optionChiefs, 10),
				wager("Alice", optionEagles, 5),
				wager("Bob", optionChiefs, 20),
				wager("Carol", optionEagles, 15),
			},
			winner: optionChiefs,
			expected: []expected{
				{user: "Bob", totalWagered: 20, payout: "33.33", net: "13.33"},
				{user: "Alice", totalWagered: 15, payout: "16.67", net: "1.67"},
				{user: "Carol", totalWagered: 15, payout: "0", net: "-15"},
			},
		},
		{
			name: "two winners split the pool",
			wagers: []*entities.Wager{
				wager("Alice", 1, 10),
				wager("Bob", 1, 20),
				wager("Carol", 2, 30),
			},
			winner: 1,
			expected: []expected{
				{user: "Bob", totalWagered: 20, payout: "40", net: "20"},
				{user: "Alice", totalWagered: 10, payout: "20", net: "10"},
				{user: "Carol", totalWagered: 30, payout: "0", net: "-30"},
			},
		},
		{
			name: "nobody picked the winner",
			wagers: []*entities.Wager{
				wager("Alice", 1, 10),
				wager("Bob", 2, 20),
			},
			winner: 3,
			expected: []expected{
				{user: "Alice", totalWagered: 10, payout: "0", net: "-10"},
				{user: "Bob", totalWagered: 20, payout: "0", net: "-20"},
			},
		},
		{
			name: "everyone on the winner breaks even",
			wagers: []*entities.Wager{
				wager("Alice", 1, 7),
				wager("Bob", 1, 13),
				wager("Alice", 1, 3),
			},
			winner: 1,
			expected: []expected{
				{user: "Alice", totalWagered: 10, payout: "10", net: "0"},
				{user: "Bob", totalWagered: 13, payout: "13", net: "0"},
			},
		},
		{
			name: "zero amount wager does not crash",
			wagers: []*entities.Wager{
				wager("Alice", 1, 0),
				wager("Bob", 2, 10),
			},
			winner: 1,
			expected: []expected{
				{user: "Alice", totalWagered: 0, payout: "0", net: "0"},
				{user: "Bob", totalWagered: 10, payout: "0", net: "-10"},
			},
		},
		{
			name:     "no wagers",
			wagers:   nil,
			winner:   1,
			expected: []expected{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := CalculatePayouts(tt.wagers, tt.winner)
			require.Len(t, results, len(tt.expected))

			for i, exp := range tt.expected {
				assert.Equal(t, exp.user, results[i].UserName)
				assert.Equal(t, exp.totalWagered, results[i].TotalWagered)
				assert.True(t, dec(exp.payout).Equal(results[i].Payout), "payout for %s: got %s", exp.user, results[i].Payout)
				assert.True(t, dec(exp.net).Equal(results[i].NetWinLoss), "net for %s: got %s", exp.user, results[i].NetWinLoss)
			}
		})
	}
}

func TestCalculatePayouts_HedgingUsesOnlyWinningStake(t *testing.T) {
	wagers := []*entities.Wager{
		wager("Alice", 1, 10),
		wager("Alice", 2, 10),
		wager("Bob", 2, 20),
	}

	results := CalculatePayouts(wagers, 1)
	require.Len(t, results, 2)

	// Alice owns the whole winning pool of 10 and collects the 40 pool
	assert.Equal(t, "Alice", results[0].UserName)
	assert.Equal(t, int64(20), results[0].TotalWagered)
	assert.True(t, dec("40").Equal(results[0].Payout))
	assert.True(t, dec("20").Equal(results[0].NetWinLoss))
}

func TestCalculatePayouts_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	users := []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace"}

	for round := 0; round < 200; round++ {
		var wagers []*entities.Wager
		var totalPool, winningPool int64
		winner := int64(rng.Intn(4) + 1)

		count := rng.Intn(20) + 1
		for i := 0; i < count; i++ {
			w := wager(users[rng.Intn(len(users))], int64(rng.Intn(4)+1), int64(rng.Intn(100)+1))
			wagers = append(wagers, w)
			totalPool += w.Amount
			if w.OptionID == winner {
				winningPool += w.Amount
			}
		}

		results := CalculatePayouts(wagers, winner)

		for i := 1; i < len(results); i++ {
			assert.False(t, results[i].NetWinLoss.GreaterThan(results[i-1].NetWinLoss), "results must be non-increasing by net")
		}

		var wagered int64
		for _, r := range results {
			wagered += r.TotalWagered
			assert.True(t, r.NetWinLoss.Equal(r.Payout.Sub(decimal.NewFromInt(r.TotalWagered))))
		}
		assert.Equal(t, totalPool, wagered)

		if winningPool == 0 {
			assert.True(t, TotalPayout(results).IsZero())
			continue
		}

		tolerance := decimal.NewFromFloat(0.005).Mul(decimal.NewFromInt(int64(len(results))))
		drift := TotalPayout(results).Sub(decimal.NewFromInt(totalPool)).Abs()
		assert.True(t, drift.LessThanOrEqual(tolerance), "payouts drift %s from pool %d", drift, totalPool)
	}
}

func TestCalculatePayouts_Deterministic(t *testing.T) {
	wagers := []*entities.Wager{
		wager("Alice", 1, 5),
		wager("Bob", 1, 5),
		wager("Carol", 2, 5),
	}

	first := CalculatePayouts(wagers, 1)
	second := CalculatePayouts(wagers, 1)

	require.Len(t, first, 3)
	for i := range first {
		assert.Equal(t, first[i].UserName, second[i].UserName)
	}
	// Equal nets keep input order
	assert.Equal(t, "Alice", first[0].UserName)
	assert.Equal(t, "Bob", first[1].UserName)
}
