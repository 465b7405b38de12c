package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pitboss-bot/pitboss/internal/cards"
	"github.com/pitboss-bot/pitboss/internal/models"
)

// renderHand formats a hand as card glyphs with its running total
func renderHand(h cards.Hand) string {
	if len(h) == 0 {
		return "—"
	}

	labels := make([]string, 0, len(h))
	for _, c := range h {
		labels = append(labels, c.String())
	}

	value := fmt.Sprintf("%d", h.Value())
	if h.IsSoft() {
		value = "soft " + value
	}
	if h.IsBust() {
		value += " (bust)"
	}

	return fmt.Sprintf("%s  (%s)", strings.Join(labels, "  "), value)
}

// renderHiddenDealerHand shows only the dealer's up card
func renderHiddenDealerHand(h cards.Hand) string {
	if len(h) == 0 {
		return "—"
	}
	return fmt.Sprintf("%s  🂠", h[0].String())
}

// blackjackEmbed renders a blackjack session. The dealer's hole card stays
// hidden until the player's turn is over.
func blackjackEmbed(session *models.BlackjackSession) *discordgo.MessageEmbed {
	dealerLine := renderHiddenDealerHand(session.DealerHand)
	color := colorFelt

	if session.State == models.BlackjackStateSettled {
		dealerLine = renderHand(session.DealerHand)
		if session.Outcome == models.BlackjackOutcomeDealerWin {
			color = colorLoss
		}
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Blackjack — %d chips on the table", session.Wager),
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf("%s's hand", session.Player.Name),
				Value: renderHand(session.PlayerHand),
			},
			{
				Name:  "Dealer's hand",
				Value: dealerLine,
			},
		},
	}
}

// blackjackButtons builds the action row for a player's turn
func blackjackButtons(sessionID string, canDouble bool) []discordgo.MessageComponent {
	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Hit",
			Style:    discordgo.PrimaryButton,
			CustomID: componentID(actionBlackjackHit, sessionID),
		},
		discordgo.Button{
			Label:    "Stand",
			Style:    discordgo.SecondaryButton,
			CustomID: componentID(actionBlackjackStand, sessionID),
		},
	}

	if canDouble {
		buttons = append(buttons, discordgo.Button{
			Label:    "Double Down",
			Style:    discordgo.DangerButton,
			CustomID: componentID(actionBlackjackDouble, sessionID),
		})
	}

	return buttons
}

// duelChallengeEmbed renders a pending challenge with its countdown
func duelChallengeEmbed(session *models.DuelSession, now time.Time, callout string) *discordgo.MessageEmbed {
	remaining := session.Deadline.Sub(now).Round(time.Second)
	if remaining < 0 {
		remaining = 0
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Duel — %d chips a side", session.Wager),
		Description: callout,
		Color:       colorWarning,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Time to respond",
				Value: fmt.Sprintf("%.0f seconds", remaining.Seconds()),
			},
		},
	}
}

// duelChallengeButtons builds the accept and decline row
func duelChallengeButtons(sessionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Accept",
			Style:    discordgo.SuccessButton,
			CustomID: componentID(actionDuelAccept, sessionID),
		},
		discordgo.Button{
			Label:    "Decline",
			Style:    discordgo.DangerButton,
			CustomID: componentID(actionDuelDecline, sessionID),
		},
	}
}

// duelChoiceButtons builds the symbol row for the choices phase
func duelChoiceButtons(sessionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Rock",
			Style:    discordgo.SecondaryButton,
			CustomID: componentID(actionDuelRock, sessionID),
			Emoji:    &discordgo.ComponentEmoji{Name: "🪨"},
		},
		discordgo.Button{
			Label:    "Paper",
			Style:    discordgo.SecondaryButton,
			CustomID: componentID(actionDuelPaper, sessionID),
			Emoji:    &discordgo.ComponentEmoji{Name: "📄"},
		},
		discordgo.Button{
			Label:    "Scissors",
			Style:    discordgo.SecondaryButton,
			CustomID: componentID(actionDuelScissors, sessionID),
			Emoji:    &discordgo.ComponentEmoji{Name: "✂️"},
		},
	}
}

// duelChoicesEmbed renders the choices phase without revealing picks
func duelChoicesEmbed(session *models.DuelSession) *discordgo.MessageEmbed {
	status := func(id string) string {
		if _, ok := session.Choices[id]; ok {
			return "locked in"
		}
		return "choosing..."
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Duel — %d chips a side", session.Wager),
		Description: "Both duelists pick in secret. First symbol stands.",
		Color:       colorFelt,
		Fields: []*discordgo.MessageEmbedField{
			{Name: session.Challenger.Name, Value: status(session.Challenger.ID), Inline: true},
			{Name: session.Challenged.Name, Value: status(session.Challenged.ID), Inline: true},
		},
	}
}

// lobbyEmbed renders a draft lobby's roster and teams for its current phase
func lobbyEmbed(lobby *models.DraftLobby) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Team Draft — %d/%d players", len(lobby.Roster), lobby.Capacity),
		Color: colorFelt,
	}

	switch lobby.Phase {
	case models.DraftPhaseAwaitingPlayers:
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Roster",
			Value: renderRoster(lobby.Roster),
		})
	case models.DraftPhaseComplete:
		embed.Title = "Team Draft — teams locked"
		embed.Fields = append(embed.Fields, teamField(lobby.Teams[0]), teamField(lobby.Teams[1]))
	default:
		embed.Fields = append(embed.Fields, teamField(lobby.Teams[0]), teamField(lobby.Teams[1]))
		if pool := lobby.Unassigned(); len(pool) > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Available",
				Value: renderRoster(pool),
			})
		}
	}

	return embed
}

func renderRoster(roster []models.Participant) string {
	if len(roster) == 0 {
		return "—"
	}

	names := make([]string, 0, len(roster))
	for _, p := range roster {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

func teamField(team models.DraftTeam) *discordgo.MessageEmbedField {
	name := fmt.Sprintf("Captain %s", team.Captain.Name)
	if team.Side != "" {
		name = fmt.Sprintf("%s (%s side)", name, team.Side)
	}

	value := "no picks yet"
	if len(team.Members) > 0 {
		value = renderRoster(team.Members)
	}

	return &discordgo.MessageEmbedField{
		Name:   name,
		Value:  value,
		Inline: true,
	}
}
