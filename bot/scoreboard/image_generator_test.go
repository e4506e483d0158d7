package scoreboard

import (
	"bytes"
	"image/png"
	"testing"

	"partybets/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLeaderboard(t *testing.T) {
	gen := NewImageGenerator()

	tests := []struct {
		name    string
		summary *entities.PartySummary
	}{
		{
			name:    "empty party",
			summary: &entities.PartySummary{PartyID: 1},
		},
		{
			name: "winners and losers",
			summary: &entities.PartySummary{
				PartyID:  1,
				TotalPot: 50,
				Users: []*entities.NetPosition{
					{UserName: "Bob", NetAmount: decimal.RequireFromString("13.33")},
					{UserName: "Alice", NetAmount: decimal.RequireFromString("1.67")},
					{UserName: "Dan", NetAmount: decimal.Zero},
					{UserName: "Carol", NetAmount: decimal.RequireFromString("-15")},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := gen.GenerateLeaderboard("Super Bowl Night", tt.summary)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, 380, img.Bounds().Dx())
			assert.GreaterOrEqual(t, img.Bounds().Dy(), 160)
		})
	}
}

func TestGenerateLeaderboard_GrowsWithRows(t *testing.T) {
	gen := NewImageGenerator()

	users := make([]*entities.NetPosition, 0, 12)
	for i := 0; i < 12; i++ {
		users = append(users, &entities.NetPosition{UserName: "guest", NetAmount: decimal.NewFromInt(int64(12 - i))})
	}

	data, err := gen.GenerateLeaderboard("Big Party", &entities.PartySummary{PartyID: 2, Users: users})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 30+25+30+12*26+15, img.Bounds().Dy())
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "Alice", truncateName("Alice"))
	assert.Equal(t, "ABCDEFGHIJKLMNO", truncateName("ABCDEFGHIJKLMNO"))
	assert.Equal(t, "ABCDEFGHIJKLMN…", truncateName("ABCDEFGHIJKLMNOP"))
	assert.Equal(t, "ÉÉÉÉÉÉÉÉÉÉÉÉÉÉ…", truncateName("ÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉ"))
}
