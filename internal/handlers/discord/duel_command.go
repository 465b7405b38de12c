package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/pitboss-bot/pitboss/internal/models"
	"github.com/pitboss-bot/pitboss/internal/services/duel"
	"github.com/pitboss-bot/pitboss/internal/services/messaging"
)

// countdownInterval is how often the challenge message's remaining-time
// display is redrawn
const countdownInterval = 5 * time.Second

// DuelCommand handles the /duel command
type DuelCommand struct {
	BaseCommand
	duelService      duel.Service
	messagingService messaging.Service
}

// NewDuelCommand creates a new duel command handler
func NewDuelCommand(duelService duel.Service, messagingService messaging.Service) *DuelCommand {
	minWager := float64(1)

	return &DuelCommand{
		BaseCommand: BaseCommand{
			Name:        "duel",
			Description: "Challenge another player to rock-paper-scissors for chips",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "opponent",
					Description: "Who to call out",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "wager",
					Description: "Chips each side puts up",
					Required:    true,
					MinValue:    &minWager,
				},
			},
		},
		duelService:      duelService,
		messagingService: messagingService,
	}
}

// Handle opens a challenge against the chosen opponent
func (c *DuelCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	userID, username := actorFromInteraction(i)

	data := i.ApplicationCommandData()
	opponent := data.Options[0].UserValue(s)
	wager := data.Options[1].IntValue()

	challengeOutput, err := c.duelService.Challenge(ctx, &duel.ChallengeInput{
		ChannelID:  i.ChannelID,
		Challenger: models.Participant{ID: userID, Name: username},
		Challenged: models.Participant{ID: opponent.ID, Name: opponent.Username},
		Wager:      wager,
	})
	if err != nil {
		return respondServiceError(s, i, c.messagingService, err)
	}

	session := challengeOutput.Session

	callout := fmt.Sprintf("%s challenges %s!", username, opponent.Username)
	if msgOutput, msgErr := c.messagingService.GetDuelChallengeMessage(ctx, &messaging.GetDuelChallengeMessageInput{
		ChallengerName: username,
		ChallengedName: opponent.Username,
		Wager:          wager,
	}); msgErr == nil {
		callout = msgOutput.Message
	}

	embed := duelChallengeEmbed(session, time.Now(), callout)
	if err := RespondWithEmbedAndButtons(s, i, embed, duelChallengeButtons(session.ID)); err != nil {
		return err
	}

	go c.refreshCountdown(s, i, session.ID, callout)
	return nil
}

// refreshCountdown redraws the challenge message's remaining time until the
// challenge leaves its pending state
func (c *DuelCommand) refreshCountdown(s *discordgo.Session, i *discordgo.InteractionCreate, sessionID, callout string) {
	ticker := time.NewTicker(countdownInterval)
	defer ticker.Stop()

	ctx := context.Background()

	for range ticker.C {
		getOutput, err := c.duelService.GetSession(ctx, &duel.GetSessionInput{
			SessionID: sessionID,
		})
		if err != nil || getOutput.Session.State != models.DuelStateChallengePending {
			return
		}

		embed := duelChallengeEmbed(getOutput.Session, time.Now(), callout)
		components := []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: duelChallengeButtons(sessionID)},
		}

		_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds:     &[]*discordgo.MessageEmbed{embed},
			Components: &components,
		})
		if err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("countdown redraw failed")
			return
		}
	}
}

// HandleComponent resolves accept, decline and choice button presses
func (c *DuelCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, action, targetID string) error {
	ctx := context.Background()
	userID, _ := actorFromInteraction(i)

	switch action {
	case actionDuelAccept:
		acceptOutput, err := c.duelService.Accept(ctx, &duel.AcceptInput{
			SessionID: targetID,
			PlayerID:  userID,
		})
		if err != nil {
			return respondServiceError(s, i, c.messagingService, err)
		}

		session := acceptOutput.Session
		return UpdateWithEmbedAndButtons(s, i, duelChoicesEmbed(session), duelChoiceButtons(session.ID))

	case actionDuelDecline:
		declineOutput, err := c.duelService.Decline(ctx, &duel.DeclineInput{
			SessionID: targetID,
			PlayerID:  userID,
		})
		if err != nil {
			return respondServiceError(s, i, c.messagingService, err)
		}

		return UpdateWithEmbedAndButtons(s, i, c.declinedEmbed(declineOutput.Session), nil)

	case actionDuelRock, actionDuelPaper, actionDuelScissors:
		return c.handleChoice(ctx, s, i, action, targetID, userID)

	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown action: %s", action))
	}
}

func (c *DuelCommand) handleChoice(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, action, sessionID, userID string) error {
	choice := models.DuelChoiceRock
	switch action {
	case actionDuelPaper:
		choice = models.DuelChoicePaper
	case actionDuelScissors:
		choice = models.DuelChoiceScissors
	}

	submitOutput, err := c.duelService.SubmitChoice(ctx, &duel.SubmitChoiceInput{
		SessionID: sessionID,
		PlayerID:  userID,
		Choice:    choice,
	})
	if err != nil {
		return respondServiceError(s, i, c.messagingService, err)
	}

	session := submitOutput.Session

	if submitOutput.Resolved {
		return UpdateWithEmbedAndButtons(s, i, c.settledEmbed(ctx, session), nil)
	}

	// One choice in, one to go; redraw the lock-in status
	return UpdateWithEmbedAndButtons(s, i, duelChoicesEmbed(session), duelChoiceButtons(session.ID))
}

// declinedEmbed renders a refused or uncoverable challenge
func (c *DuelCommand) declinedEmbed(session *models.DuelSession) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Duel declined",
		Description: fmt.Sprintf("%s walks away. %s's %d chips are returned.", session.Challenged.Name, session.Challenger.Name, session.Wager),
		Color:       colorWarning,
	}
}

// settledEmbed renders the resolved duel with its reveal
func (c *DuelCommand) settledEmbed(ctx context.Context, session *models.DuelSession) *discordgo.MessageEmbed {
	tie := session.WinnerID == ""

	winnerName, loserName := session.Challenger.Name, session.Challenged.Name
	if session.WinnerID == session.Challenged.ID {
		winnerName, loserName = session.Challenged.Name, session.Challenger.Name
	}

	title := "Duel settled"
	description := ""
	if msgOutput, err := c.messagingService.GetDuelOutcomeMessage(ctx, &messaging.GetDuelOutcomeMessageInput{
		WinnerName: winnerName,
		LoserName:  loserName,
		Tie:        tie,
		Pot:        2 * session.Wager,
	}); err == nil {
		title = msgOutput.Title
		description = msgOutput.Message
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       colorFelt,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   session.Challenger.Name,
				Value:  string(session.Choices[session.Challenger.ID]),
				Inline: true,
			},
			{
				Name:   session.Challenged.Name,
				Value:  string(session.Choices[session.Challenged.ID]),
				Inline: true,
			},
		},
	}
}
