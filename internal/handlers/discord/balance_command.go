package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/pitboss-bot/pitboss/internal/services/ledger"
)

// BalanceCommand handles the /balance command
type BalanceCommand struct {
	BaseCommand
	ledgerService ledger.Service
}

// NewBalanceCommand creates a new balance command handler
func NewBalanceCommand(ledgerService ledger.Service) *BalanceCommand {
	return &BalanceCommand{
		BaseCommand: BaseCommand{
			Name:        "balance",
			Description: "Check your chip balance",
		},
		ledgerService: ledgerService,
	}
}

// Handle reports the invoking user's balance, opening their account on
// first use
func (c *BalanceCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	userID, username := actorFromInteraction(i)

	balanceOutput, err := c.ledgerService.GetBalance(ctx, &ledger.GetBalanceInput{
		ParticipantID: userID,
	})
	if err != nil {
		return RespondWithError(s, i, fmt.Sprintf("Could not read your balance: %v", err))
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("%s, you have %d chips.", username, balanceOutput.Balance))
}

// HandleComponent is a no-op; the balance command has no components
func (c *BalanceCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, action, targetID string) error {
	return RespondWithError(s, i, fmt.Sprintf("Unknown action: %s", action))
}
