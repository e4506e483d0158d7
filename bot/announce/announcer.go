package announce

import (
	"context"
	"fmt"

	"partybets/domain/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// MessageSender is the part of a discordgo session the announcer needs
type MessageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordAnnouncer posts settled bets to one Discord channel
type DiscordAnnouncer struct {
	sender    MessageSender
	channelID string
}

// NewDiscordSession creates a bot session for REST calls
func NewDiscordSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	return session, nil
}

// NewDiscordAnnouncer creates an announcer that posts to channelID
func NewDiscordAnnouncer(sender MessageSender, channelID string) *DiscordAnnouncer {
	return &DiscordAnnouncer{
		sender:    sender,
		channelID: channelID,
	}
}

// AnnounceSettlement posts the payouts of a settled bet
func (a *DiscordAnnouncer) AnnounceSettlement(ctx context.Context, event events.BetSettledEvent) error {
	msg := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{BuildSettlementEmbed(event)},
	}

	if _, err := a.sender.ChannelMessageSendComplex(a.channelID, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to announce settlement of bet %d: %w", event.BetID, err)
	}

	log.WithFields(log.Fields{
		"partyID":   event.PartyID,
		"betID":     event.BetID,
		"channelID": a.channelID,
	}).Info("Announced bet settlement")
	return nil
}
