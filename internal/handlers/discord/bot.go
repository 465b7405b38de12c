package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/pitboss-bot/pitboss/internal/models"
	"github.com/pitboss-bot/pitboss/internal/services/blackjack"
	"github.com/pitboss-bot/pitboss/internal/services/draft"
	"github.com/pitboss-bot/pitboss/internal/services/duel"
	"github.com/pitboss-bot/pitboss/internal/services/ledger"
	"github.com/pitboss-bot/pitboss/internal/services/messaging"
)

// Component action IDs. Custom IDs on the wire are "<action>:<session ID>".
const (
	actionBlackjackHit    = "blackjack_hit"
	actionBlackjackStand  = "blackjack_stand"
	actionBlackjackDouble = "blackjack_double"

	actionDuelAccept   = "duel_accept"
	actionDuelDecline  = "duel_decline"
	actionDuelRock     = "duel_rock"
	actionDuelPaper    = "duel_paper"
	actionDuelScissors = "duel_scissors"

	actionDraftJoin       = "draft_join"
	actionDraftLeave      = "draft_leave"
	actionDraftCaptains   = "draft_captains"
	actionDraftCoinHeads  = "draft_coin_heads"
	actionDraftCoinTails  = "draft_coin_tails"
	actionDraftSideBlue   = "draft_side_blue"
	actionDraftSideRed    = "draft_side_red"
	actionDraftSideRandom = "draft_side_random"
	actionDraftPick       = "draft_pick"
)

// componentID joins an action with its target session or lobby
func componentID(action, targetID string) string {
	return action + ":" + targetID
}

// parseComponentID splits a custom ID back into action and target
func parseComponentID(customID string) (string, string) {
	action, targetID, _ := strings.Cut(customID, ":")
	return action, targetID
}

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Token is the Discord bot token
	Token string

	// ApplicationID is the bot's application ID
	ApplicationID string

	// GuildID scopes command registration to one guild when set
	GuildID string

	// Service dependencies
	BlackjackService blackjack.Service
	DuelService      duel.Service
	DraftService     draft.Service
	LedgerService    ledger.Service
	MessagingService messaging.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.BlackjackService == nil || cfg.DuelService == nil || cfg.DraftService == nil {
		return nil, errors.New("game services cannot be nil")
	}

	if cfg.LedgerService == nil {
		return nil, errors.New("ledger service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	handlers := []CommandHandler{
		NewBlackjackCommand(b.config.BlackjackService, b.config.MessagingService),
		NewDuelCommand(b.config.DuelService, b.config.MessagingService),
		NewDraftCommand(b.config.DraftService, b.config.MessagingService),
		NewBalanceCommand(b.config.LedgerService),
	}

	for _, h := range handlers {
		if err := b.registerCommand(h); err != nil {
			return fmt.Errorf("failed to register %s command: %w", h.GetName(), err)
		}
	}

	log.Info().Msg("bot is running")
	return nil
}

// Stop removes registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for name, id := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, id); err != nil {
			log.Warn().Err(err).Str("command", name).Msg("failed to delete command")
		}
	}

	return b.session.Close()
}

// Session exposes the underlying Discord session for display side effects
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

func (b *Bot) registerCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	created, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return err
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = created.ID
	log.Info().Str("command", cmd.GetName()).Str("id", created.ID).Msg("registered command")

	return nil
}

// handleInteraction routes slash commands and component interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Error().Err(err).Str("command", name).Msg("command failed")
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Error().Err(err).Msg("component interaction failed")
		}
	}
}

// handleComponentInteraction dispatches by the custom ID's action prefix
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	action, targetID := parseComponentID(i.MessageComponentData().CustomID)

	var command string
	switch {
	case strings.HasPrefix(action, "blackjack_"):
		command = "blackjack"
	case strings.HasPrefix(action, "duel_"):
		command = "duel"
	case strings.HasPrefix(action, "draft_"):
		command = "draft"
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown action: %s", action))
	}

	h, ok := b.commands[command]
	if !ok {
		return fmt.Errorf("no handler registered for %s", command)
	}

	return h.HandleComponent(s, i, action, targetID)
}

// NotifyBlackjackTimeout posts the settled hand after an idle player was
// forced to stand
func (b *Bot) NotifyBlackjackTimeout(session *models.BlackjackSession) {
	embed := blackjackEmbed(session)
	embed.Description = fmt.Sprintf("%s took too long and stands by default.", session.Player.Name)

	if _, err := b.session.ChannelMessageSendEmbed(session.ChannelID, embed); err != nil {
		log.Error().Err(err).Str("channel_id", session.ChannelID).Msg("failed to post timeout notice")
	}
}

// NotifyDuelTimeout posts the expiry notice after an unanswered challenge
// was refunded
func (b *Bot) NotifyDuelTimeout(session *models.DuelSession) {
	message := fmt.Sprintf("%s never answered the call. %s's %d chips are returned.",
		session.Challenged.Name, session.Challenger.Name, session.Wager)

	if _, err := b.session.ChannelMessageSend(session.ChannelID, message); err != nil {
		log.Error().Err(err).Str("channel_id", session.ChannelID).Msg("failed to post timeout notice")
	}
}
