package messaging

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/pitboss-bot/pitboss/internal/models"
)

// service implements the Service interface
type service struct {
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	source := rand.NewSource(time.Now().UnixNano())

	return &service{
		rand: rand.New(source),
	}, nil
}

// GetBlackjackOutcomeMessage returns a title and message for a settled hand
func (s *service) GetBlackjackOutcomeMessage(ctx context.Context, input *GetBlackjackOutcomeMessageInput) (*GetBlackjackOutcomeMessageOutput, error) {
	var titles, messages []string

	switch input.Outcome {
	case models.BlackjackOutcomePlayerNatural:
		titles = []string{
			"BLACKJACK!",
			"Natural 21!",
			"The house weeps!",
		}
		messages = []string{
			fmt.Sprintf("%s flips a natural 21 and rakes in %d chips!", input.PlayerName, input.Payout),
			fmt.Sprintf("Dealt perfection! %s cashes %d chips on a natural!", input.PlayerName, input.Payout),
			fmt.Sprintf("%s didn't even need a hit. Natural blackjack pays %d!", input.PlayerName, input.Payout),
		}

	case models.BlackjackOutcomePlayerWin:
		titles = []string{
			"Winner!",
			"The house pays out!",
			"Cha-ching!",
		}
		messages = []string{
			fmt.Sprintf("%s beats the dealer and collects %d chips!", input.PlayerName, input.Payout),
			fmt.Sprintf("The dealer folds under pressure! %d chips to %s!", input.Payout, input.PlayerName),
			fmt.Sprintf("%s reads the table like a book. %d chips richer!", input.PlayerName, input.Payout),
			fmt.Sprintf("Another satisfied customer! %s walks away with %d chips.", input.PlayerName, input.Payout),
		}

	case models.BlackjackOutcomeDealerWin:
		titles = []string{
			"The house wins!",
			"Busted!",
			"Ouch.",
		}
		messages = []string{
			fmt.Sprintf("The dealer takes %s's %d chips. The house always wins!", input.PlayerName, input.Wager),
			fmt.Sprintf("%s donates %d chips to the house. How generous!", input.PlayerName, input.Wager),
			fmt.Sprintf("Tough table tonight. %s is down %d chips.", input.PlayerName, input.Wager),
			fmt.Sprintf("%s's chips? The dealer's chips now. All %d of them.", input.PlayerName, input.Wager),
		}

	case models.BlackjackOutcomePush:
		titles = []string{
			"Push!",
			"Dead even!",
			"Stalemate!",
		}
		messages = []string{
			fmt.Sprintf("%s and the dealer tie. Everyone keeps their chips.", input.PlayerName),
			fmt.Sprintf("A push! %s's wager slides right back across the felt.", input.PlayerName),
			fmt.Sprintf("Nobody wins, nobody cries. %s breaks even.", input.PlayerName),
		}

	default:
		titles = []string{"Hand over"}
		messages = []string{fmt.Sprintf("%s's hand is settled.", input.PlayerName)}
	}

	return &GetBlackjackOutcomeMessageOutput{
		Title:   titles[s.rand.Intn(len(titles))],
		Message: messages[s.rand.Intn(len(messages))],
	}, nil
}

// GetDuelChallengeMessage returns the call-out text for a new challenge
func (s *service) GetDuelChallengeMessage(ctx context.Context, input *GetDuelChallengeMessageInput) (*GetDuelChallengeMessageOutput, error) {
	messages := []string{
		fmt.Sprintf("%s slams %d chips on the table and calls out %s! Accept or walk away?", input.ChallengerName, input.Wager, input.ChallengedName),
		fmt.Sprintf("A challenger appears! %s wants %s's %d chips in a duel!", input.ChallengerName, input.ChallengedName, input.Wager),
		fmt.Sprintf("%s challenges %s to a duel for %d chips a side. Blink and you forfeit!", input.ChallengerName, input.ChallengedName, input.Wager),
		fmt.Sprintf("It's on! %s has %d chips riding on beating %s!", input.ChallengerName, input.Wager, input.ChallengedName),
	}

	return &GetDuelChallengeMessageOutput{
		Message: messages[s.rand.Intn(len(messages))],
	}, nil
}

// GetDuelOutcomeMessage returns a title and message for a settled duel
func (s *service) GetDuelOutcomeMessage(ctx context.Context, input *GetDuelOutcomeMessageInput) (*GetDuelOutcomeMessageOutput, error) {
	var titles, messages []string

	if input.Tie {
		titles = []string{
			"Tie!",
			"Great minds...",
			"Nobody wins!",
		}
		messages = []string{
			"Same pick, same brain. Wagers returned to both duelists.",
			"A perfect mirror match! Everyone gets their chips back.",
			"The duel ends in a draw. Both stakes refunded.",
		}
	} else {
		titles = []string{
			"Victory!",
			"Duel settled!",
			"Flawless!",
		}
		messages = []string{
			fmt.Sprintf("%s crushes %s and scoops the %d-chip pot!", input.WinnerName, input.LoserName, input.Pot),
			fmt.Sprintf("%s called it perfectly! %d chips change hands.", input.WinnerName, input.Pot),
			fmt.Sprintf("%s never stood a chance. %s takes %d chips!", input.LoserName, input.WinnerName, input.Pot),
			fmt.Sprintf("The pot goes to %s! %s will want a rematch.", input.WinnerName, input.LoserName),
		}
	}

	return &GetDuelOutcomeMessageOutput{
		Title:   titles[s.rand.Intn(len(titles))],
		Message: messages[s.rand.Intn(len(messages))],
	}, nil
}

// GetDraftPhaseMessage returns the announcement text for a phase transition
func (s *service) GetDraftPhaseMessage(ctx context.Context, input *GetDraftPhaseMessageInput) (*GetDraftPhaseMessageOutput, error) {
	var messages []string

	switch input.Phase {
	case models.DraftPhaseAwaitingPlayers:
		messages = []string{
			"A new draft lobby is open! Jump in before the seats fill up.",
			"Lobby's open! Claim a spot and settle in.",
		}
	case models.DraftPhaseCaptainSelection:
		messages = []string{
			fmt.Sprintf("Lobby's full! %s, pick your two captains.", input.ActorName),
			fmt.Sprintf("All seats taken. %s now anoints the captains.", input.ActorName),
		}
	case models.DraftPhaseCoinFlip:
		messages = []string{
			fmt.Sprintf("Captains chosen! %s, call the coin: heads or tails?", input.ActorName),
			fmt.Sprintf("Time for the flip. %s calls it in the air!", input.ActorName),
		}
	case models.DraftPhaseSideChoice:
		messages = []string{
			fmt.Sprintf("%s wins the flip and picks a side!", input.ActorName),
			fmt.Sprintf("The coin has spoken. %s, choose your side.", input.ActorName),
		}
	case models.DraftPhaseDrafting:
		messages = []string{
			fmt.Sprintf("The draft begins! %s is on the clock.", input.ActorName),
			fmt.Sprintf("Snake draft time. First pick goes to %s!", input.ActorName),
		}
	case models.DraftPhaseComplete:
		messages = []string{
			"Teams locked in! Good luck out there.",
			"The draft is complete. May the better team win!",
		}
	default:
		messages = []string{"The lobby moves on."}
	}

	return &GetDraftPhaseMessageOutput{
		Message: messages[s.rand.Intn(len(messages))],
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	var messages []string

	switch input.ErrorType {
	case ErrorTypeInsufficientFunds:
		messages = []string{
			"Your chip stack can't cover that. Try a smaller wager!",
			"The pit boss checked your balance. It said no.",
			"Not enough chips! Maybe start with something you can afford.",
		}
	case ErrorTypeWrongActor:
		messages = []string{
			"Hands off! It's not your turn.",
			"Nice try, but this move belongs to someone else.",
			"Patience. You'll get your turn.",
		}
	case ErrorTypeAlreadyActive:
		messages = []string{
			"One game at a time, high roller. Finish what you started.",
			"You've already got chips on a table. Settle that first.",
		}
	case ErrorTypeExpired:
		messages = []string{
			"Too slow! That one's already settled.",
			"The moment has passed. The table moved on without you.",
		}
	case ErrorTypeInvalidSelection:
		messages = []string{
			"That's not a valid pick. Check the table and try again.",
			"The pit boss squints at your selection and shakes his head.",
		}
	default:
		messages = []string{
			"Something went sideways. Give it another shot.",
		}
	}

	return &GetErrorMessageOutput{
		Message: messages[s.rand.Intn(len(messages))],
	}, nil
}
