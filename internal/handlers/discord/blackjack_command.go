package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/pitboss-bot/pitboss/internal/models"
	"github.com/pitboss-bot/pitboss/internal/services/blackjack"
	"github.com/pitboss-bot/pitboss/internal/services/messaging"
)

// BlackjackCommand handles the /blackjack command
type BlackjackCommand struct {
	BaseCommand
	blackjackService blackjack.Service
	messagingService messaging.Service
}

// NewBlackjackCommand creates a new blackjack command handler
func NewBlackjackCommand(blackjackService blackjack.Service, messagingService messaging.Service) *BlackjackCommand {
	minWager := float64(1)

	return &BlackjackCommand{
		BaseCommand: BaseCommand{
			Name:        "blackjack",
			Description: "Play a hand of blackjack against the house",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "wager",
					Description: "Chips to put on the table",
					Required:    true,
					MinValue:    &minWager,
				},
			},
		},
		blackjackService: blackjackService,
		messagingService: messagingService,
	}
}

// Handle deals a new hand for the invoking player
func (c *BlackjackCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	userID, username := actorFromInteraction(i)

	wager := i.ApplicationCommandData().Options[0].IntValue()

	dealOutput, err := c.blackjackService.Deal(ctx, &blackjack.DealInput{
		ChannelID: i.ChannelID,
		Player:    models.Participant{ID: userID, Name: username},
		Wager:     wager,
	})
	if err != nil {
		return respondServiceError(s, i, c.messagingService, err)
	}

	session := dealOutput.Session

	// A natural on either side settles the hand before any player action
	if session.State == models.BlackjackStateSettled {
		return RespondWithEmbed(s, i, c.settledEmbed(ctx, session))
	}

	return RespondWithEmbedAndButtons(s, i, blackjackEmbed(session), blackjackButtons(session.ID, true))
}

// HandleComponent resolves hit, stand and double button presses
func (c *BlackjackCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, action, targetID string) error {
	ctx := context.Background()
	userID, _ := actorFromInteraction(i)

	var session *models.BlackjackSession
	var err error

	switch action {
	case actionBlackjackHit:
		var output *blackjack.HitOutput
		output, err = c.blackjackService.Hit(ctx, &blackjack.HitInput{
			SessionID: targetID,
			PlayerID:  userID,
		})
		if output != nil {
			session = output.Session
		}
	case actionBlackjackStand:
		var output *blackjack.StandOutput
		output, err = c.blackjackService.Stand(ctx, &blackjack.StandInput{
			SessionID: targetID,
			PlayerID:  userID,
		})
		if output != nil {
			session = output.Session
		}
	case actionBlackjackDouble:
		var output *blackjack.DoubleOutput
		output, err = c.blackjackService.Double(ctx, &blackjack.DoubleInput{
			SessionID: targetID,
			PlayerID:  userID,
		})
		if output != nil {
			session = output.Session
		}
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown action: %s", action))
	}

	if err != nil {
		return respondServiceError(s, i, c.messagingService, err)
	}

	if session.State == models.BlackjackStateSettled {
		return UpdateWithEmbedAndButtons(s, i, c.settledEmbed(ctx, session), nil)
	}

	// Doubling is only open on the first two cards
	canDouble := len(session.PlayerHand) == 2
	return UpdateWithEmbedAndButtons(s, i, blackjackEmbed(session), blackjackButtons(session.ID, canDouble))
}

// settledEmbed decorates the final hand display with outcome flavor text
func (c *BlackjackCommand) settledEmbed(ctx context.Context, session *models.BlackjackSession) *discordgo.MessageEmbed {
	embed := blackjackEmbed(session)

	msgOutput, err := c.messagingService.GetBlackjackOutcomeMessage(ctx, &messaging.GetBlackjackOutcomeMessageInput{
		PlayerName: session.Player.Name,
		Outcome:    session.Outcome,
		Payout:     payoutFor(session),
		Wager:      session.Wager,
	})
	if err == nil {
		embed.Title = msgOutput.Title
		embed.Description = msgOutput.Message
	}

	return embed
}

// payoutFor is the amount credited at settlement, zero on a loss
func payoutFor(session *models.BlackjackSession) int64 {
	switch session.Outcome {
	case models.BlackjackOutcomePlayerNatural:
		return (3*session.Wager + 1) / 2
	case models.BlackjackOutcomePlayerWin:
		return session.Wager
	default:
		return 0
	}
}
