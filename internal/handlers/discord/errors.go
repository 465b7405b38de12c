package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/pitboss-bot/pitboss/internal/registry"
	"github.com/pitboss-bot/pitboss/internal/services/blackjack"
	"github.com/pitboss-bot/pitboss/internal/services/draft"
	"github.com/pitboss-bot/pitboss/internal/services/duel"
	"github.com/pitboss-bot/pitboss/internal/services/ledger"
	"github.com/pitboss-bot/pitboss/internal/services/messaging"
	"github.com/pitboss-bot/pitboss/internal/turngate"
)

// errorTypeFor maps service rejections onto messaging error categories
func errorTypeFor(err error) messaging.ErrorType {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return messaging.ErrorTypeInsufficientFunds
	case errors.Is(err, turngate.ErrWrongActor),
		errors.Is(err, duel.ErrNotInDuel):
		return messaging.ErrorTypeWrongActor
	case errors.Is(err, registry.ErrAlreadyActive),
		errors.Is(err, draft.ErrAlreadyJoined):
		return messaging.ErrorTypeAlreadyActive
	case errors.Is(err, turngate.ErrExpired),
		errors.Is(err, blackjack.ErrSessionNotFound),
		errors.Is(err, blackjack.ErrAlreadyResolved),
		errors.Is(err, duel.ErrSessionNotFound),
		errors.Is(err, duel.ErrAlreadyResolved),
		errors.Is(err, duel.ErrChoiceAlreadyMade),
		errors.Is(err, draft.ErrLobbyNotFound):
		return messaging.ErrorTypeExpired
	default:
		return messaging.ErrorTypeInvalidSelection
	}
}

// respondServiceError turns a service rejection into an ephemeral notice
func respondServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, messagingService messaging.Service, err error) error {
	msgOutput, msgErr := messagingService.GetErrorMessage(context.Background(), &messaging.GetErrorMessageInput{
		ErrorType: errorTypeFor(err),
	})
	if msgErr != nil {
		return RespondWithError(s, i, err.Error())
	}

	return RespondWithError(s, i, msgOutput.Message)
}
