package announce

import (
	"fmt"
	"strings"

	"partybets/domain/entities"
	"partybets/domain/events"
	"partybets/domain/utils"

	"github.com/bwmarrin/discordgo"
)

// Embed colors
const (
	ColorSettled = 0x2ECC71
	ColorNoWin   = 0x95A5A6
)

// maxEmbedResults keeps the payout list under Discord's field length limit
const maxEmbedResults = 20

// getMedalForRank returns the appropriate medal emoji or rank number
func getMedalForRank(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}

// formatResult renders one payout line, bold for winners
func formatResult(rank int, r *entities.PayoutResult) string {
	line := fmt.Sprintf("%s %s staked %s, paid %s (%s)",
		getMedalForRank(rank),
		r.UserName,
		utils.FormatMoney(utils.FromUnits(r.TotalWagered)),
		utils.FormatMoney(r.Payout),
		utils.FormatNet(r.NetWinLoss),
	)
	if r.IsWinner() {
		return "**" + line + "**"
	}
	return line
}

// BuildSettlementEmbed creates the embed announcing a settled bet
func BuildSettlementEmbed(event events.BetSettledEvent) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🎲 Bet settled",
		Description: event.Question,
		Color:       ColorSettled,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Winner", Value: event.WinningLabel, Inline: true},
			{Name: "Pot", Value: utils.FormatMoney(utils.FromUnits(event.TotalPot)), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Bet #%d", event.BetID),
		},
	}

	if len(event.Results) == 0 {
		embed.Color = ColorNoWin
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Payouts",
			Value: "Nobody wagered on this bet",
		})
		return embed
	}

	anyWinner := false
	lines := make([]string, 0, len(event.Results))
	for i, r := range event.Results {
		if r.IsWinner() {
			anyWinner = true
		}
		if i < maxEmbedResults {
			lines = append(lines, formatResult(i+1, r))
		}
	}
	if extra := len(event.Results) - maxEmbedResults; extra > 0 {
		lines = append(lines, fmt.Sprintf("…and %d more", extra))
	}
	if !anyWinner {
		embed.Color = ColorNoWin
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Payouts",
		Value: strings.Join(lines, "\n"),
	})

	return embed
}
