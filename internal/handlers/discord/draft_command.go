package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/pitboss-bot/pitboss/internal/models"
	"github.com/pitboss-bot/pitboss/internal/services/draft"
	"github.com/pitboss-bot/pitboss/internal/services/messaging"
)

// DraftCommand handles the /draft command
type DraftCommand struct {
	BaseCommand
	draftService     draft.Service
	messagingService messaging.Service
}

// NewDraftCommand creates a new draft command handler
func NewDraftCommand(draftService draft.Service, messagingService messaging.Service) *DraftCommand {
	minCapacity := float64(4)

	return &DraftCommand{
		BaseCommand: BaseCommand{
			Name:        "draft",
			Description: "Team draft lobby commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Open a new draft lobby",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "capacity",
							Description: "Roster size (default 10)",
							MinValue:    &minCapacity,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "rehearsal",
							Description: "Fill open seats with stand-ins to walk through the flow",
						},
					},
				},
			},
		},
		draftService:     draftService,
		messagingService: messagingService,
	}
}

// Handle opens a lobby for the invoking user
func (c *DraftCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	userID, username := actorFromInteraction(i)

	data := i.ApplicationCommandData()
	if data.Options[0].Name != "start" {
		return RespondWithError(s, i, fmt.Sprintf("Unknown subcommand: %s", data.Options[0].Name))
	}

	var capacity int
	var rehearsal bool
	for _, opt := range data.Options[0].Options {
		switch opt.Name {
		case "capacity":
			capacity = int(opt.IntValue())
		case "rehearsal":
			rehearsal = opt.BoolValue()
		}
	}

	createOutput, err := c.draftService.CreateLobby(ctx, &draft.CreateLobbyInput{
		ChannelID:         i.ChannelID,
		Creator:           models.Participant{ID: userID, Name: username},
		Capacity:          capacity,
		FillWithSynthetic: rehearsal,
	})
	if err != nil {
		return respondServiceError(s, i, c.messagingService, err)
	}

	lobby := createOutput.Lobby
	embed := c.phaseEmbed(ctx, lobby)

	return RespondWithEmbedAndButtons(s, i, embed, c.componentsFor(lobby))
}

// HandleComponent resolves lobby buttons and select menus
func (c *DraftCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, action, targetID string) error {
	ctx := context.Background()
	userID, username := actorFromInteraction(i)

	var lobby *models.DraftLobby
	var err error

	switch action {
	case actionDraftJoin:
		var output *draft.JoinOutput
		output, err = c.draftService.Join(ctx, &draft.JoinInput{
			LobbyID:     targetID,
			Participant: models.Participant{ID: userID, Name: username},
		})
		if output != nil {
			lobby = output.Lobby
		}

	case actionDraftLeave:
		var output *draft.LeaveOutput
		output, err = c.draftService.Leave(ctx, &draft.LeaveInput{
			LobbyID:       targetID,
			ParticipantID: userID,
		})
		if output != nil {
			lobby = output.Lobby
		}

	case actionDraftCaptains:
		values := i.MessageComponentData().Values
		if len(values) != 2 {
			return RespondWithError(s, i, "Pick exactly two captains.")
		}
		var output *draft.SelectCaptainsOutput
		output, err = c.draftService.SelectCaptains(ctx, &draft.SelectCaptainsInput{
			LobbyID:         targetID,
			ActorID:         userID,
			FirstCaptainID:  values[0],
			SecondCaptainID: values[1],
		})
		if output != nil {
			lobby = output.Lobby
		}

	case actionDraftCoinHeads, actionDraftCoinTails:
		call := models.CoinFaceHeads
		if action == actionDraftCoinTails {
			call = models.CoinFaceTails
		}
		var output *draft.CallCoinOutput
		output, err = c.draftService.CallCoin(ctx, &draft.CallCoinInput{
			LobbyID: targetID,
			ActorID: userID,
			Call:    call,
		})
		if output != nil {
			lobby = output.Lobby
		}

	case actionDraftSideBlue, actionDraftSideRed, actionDraftSideRandom:
		side := models.TeamSideBlue
		switch action {
		case actionDraftSideRed:
			side = models.TeamSideRed
		case actionDraftSideRandom:
			side = models.TeamSideRandom
		}
		var output *draft.ChooseSideOutput
		output, err = c.draftService.ChooseSide(ctx, &draft.ChooseSideInput{
			LobbyID: targetID,
			ActorID: userID,
			Side:    side,
		})
		if output != nil {
			lobby = output.Lobby
		}

	case actionDraftPick:
		values := i.MessageComponentData().Values
		if len(values) != 1 {
			return RespondWithError(s, i, "Pick exactly one player.")
		}
		var output *draft.PickOutput
		output, err = c.draftService.Pick(ctx, &draft.PickInput{
			LobbyID: targetID,
			ActorID: userID,
			PickID:  values[0],
		})
		if output != nil {
			lobby = output.Lobby
		}

	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown action: %s", action))
	}

	if err != nil {
		return respondServiceError(s, i, c.messagingService, err)
	}

	return UpdateWithEmbedAndButtons(s, i, c.phaseEmbed(ctx, lobby), c.componentsFor(lobby))
}

// phaseEmbed renders the lobby with the current phase's announcement text
func (c *DraftCommand) phaseEmbed(ctx context.Context, lobby *models.DraftLobby) *discordgo.MessageEmbed {
	embed := lobbyEmbed(lobby)

	msgOutput, err := c.messagingService.GetDraftPhaseMessage(ctx, &messaging.GetDraftPhaseMessageInput{
		Phase:     lobby.Phase,
		ActorName: c.phaseActorName(lobby),
	})
	if err == nil {
		embed.Description = msgOutput.Message
	}

	return embed
}

// phaseActorName names the participant whose move the current phase waits on
func (c *DraftCommand) phaseActorName(lobby *models.DraftLobby) string {
	switch lobby.Phase {
	case models.DraftPhaseCaptainSelection:
		for _, p := range lobby.Roster {
			if p.ID == lobby.CreatorID {
				return p.Name
			}
		}
	case models.DraftPhaseCoinFlip, models.DraftPhaseSideChoice:
		return lobby.Teams[0].Captain.Name
	case models.DraftPhaseDrafting:
		return lobby.Teams[lobby.CurrentPicker].Captain.Name
	}
	return ""
}

// componentsFor builds the action row appropriate to the lobby's phase
func (c *DraftCommand) componentsFor(lobby *models.DraftLobby) []discordgo.MessageComponent {
	switch lobby.Phase {
	case models.DraftPhaseAwaitingPlayers:
		return []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Join",
				Style:    discordgo.SuccessButton,
				CustomID: componentID(actionDraftJoin, lobby.ID),
			},
			discordgo.Button{
				Label:    "Leave",
				Style:    discordgo.SecondaryButton,
				CustomID: componentID(actionDraftLeave, lobby.ID),
			},
		}

	case models.DraftPhaseCaptainSelection:
		minValues := 2
		options := make([]discordgo.SelectMenuOption, 0, len(lobby.Roster))
		for _, p := range lobby.Roster {
			options = append(options, discordgo.SelectMenuOption{
				Label: p.Name,
				Value: p.ID,
			})
		}
		return []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    componentID(actionDraftCaptains, lobby.ID),
				Placeholder: "Choose two captains",
				MinValues:   &minValues,
				MaxValues:   2,
				Options:     options,
			},
		}

	case models.DraftPhaseCoinFlip:
		return []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Heads",
				Style:    discordgo.PrimaryButton,
				CustomID: componentID(actionDraftCoinHeads, lobby.ID),
			},
			discordgo.Button{
				Label:    "Tails",
				Style:    discordgo.PrimaryButton,
				CustomID: componentID(actionDraftCoinTails, lobby.ID),
			},
		}

	case models.DraftPhaseSideChoice:
		return []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Blue side",
				Style:    discordgo.PrimaryButton,
				CustomID: componentID(actionDraftSideBlue, lobby.ID),
			},
			discordgo.Button{
				Label:    "Red side",
				Style:    discordgo.DangerButton,
				CustomID: componentID(actionDraftSideRed, lobby.ID),
			},
			discordgo.Button{
				Label:    "Flip for it",
				Style:    discordgo.SecondaryButton,
				CustomID: componentID(actionDraftSideRandom, lobby.ID),
			},
		}

	case models.DraftPhaseDrafting:
		pool := lobby.Unassigned()
		options := make([]discordgo.SelectMenuOption, 0, len(pool))
		for _, p := range pool {
			options = append(options, discordgo.SelectMenuOption{
				Label: p.Name,
				Value: p.ID,
			})
		}
		return []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    componentID(actionDraftPick, lobby.ID),
				Placeholder: fmt.Sprintf("Captain %s picks", lobby.Teams[lobby.CurrentPicker].Captain.Name),
				Options:     options,
			},
		}

	default:
		return nil
	}
}
