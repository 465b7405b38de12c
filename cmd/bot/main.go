package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/pitboss-bot/pitboss/internal/common/clock"
	"github.com/pitboss-bot/pitboss/internal/common/uuid"
	"github.com/pitboss-bot/pitboss/internal/config"
	"github.com/pitboss-bot/pitboss/internal/handlers/discord"
	"github.com/pitboss-bot/pitboss/internal/logging"
	"github.com/pitboss-bot/pitboss/internal/models"
	"github.com/pitboss-bot/pitboss/internal/registry"
	ledgerRepo "github.com/pitboss-bot/pitboss/internal/repositories/ledger"
	rotationRepo "github.com/pitboss-bot/pitboss/internal/repositories/rotation"
	"github.com/pitboss-bot/pitboss/internal/rng"
	blackjackService "github.com/pitboss-bot/pitboss/internal/services/blackjack"
	draftService "github.com/pitboss-bot/pitboss/internal/services/draft"
	duelService "github.com/pitboss-bot/pitboss/internal/services/duel"
	ledgerService "github.com/pitboss-bot/pitboss/internal/services/ledger"
	messagingService "github.com/pitboss-bot/pitboss/internal/services/messaging"
	rotationService "github.com/pitboss-bot/pitboss/internal/services/rotation"
)

// reapInterval is how often idle lobbies and duels are swept
const reapInterval = 5 * time.Minute

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	logCfg, err := config.LoadLog()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load log config")
	}
	logging.Init(logCfg)

	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to Redis")
	}

	balanceRepo, err := ledgerRepo.NewRedis(&ledgerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create ledger repository")
	}

	rotationBookkeeping, err := rotationRepo.NewRedis(&rotationRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create rotation repository")
	}

	systemClock := &clock.DefaultClock{}
	idGenerator := uuid.New()
	random := rng.New(&rng.Config{})
	sessionRegistry := registry.New()

	ledgerSvc, err := ledgerService.New(&ledgerService.Config{
		StartingBalance: cfg.StartingBalance,
		LedgerRepo:      balanceRepo,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create ledger service")
	}

	messagingSvc, err := messagingService.NewService(&messagingService.ServiceConfig{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create messaging service")
	}

	// The bot is created after the services, so timeout callbacks reach it
	// through this variable
	var bot *discord.Bot

	blackjackSvc, err := blackjackService.New(&blackjackService.Config{
		TurnTimeout: cfg.BlackjackTurnTimeout,
		OnTimeout: func(session *models.BlackjackSession) {
			if bot != nil {
				bot.NotifyBlackjackTimeout(session)
			}
		},
		Ledger:        ledgerSvc,
		Registry:      sessionRegistry,
		Random:        random,
		Clock:         systemClock,
		UUIDGenerator: idGenerator,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create blackjack service")
	}

	duelSvc, err := duelService.New(&duelService.Config{
		ChallengeTimeout: cfg.DuelChallengeTimeout,
		IdleTimeout:      cfg.DuelIdleTimeout,
		OnTimeout: func(session *models.DuelSession) {
			if bot != nil {
				bot.NotifyDuelTimeout(session)
			}
		},
		Ledger:        ledgerSvc,
		Registry:      sessionRegistry,
		Clock:         systemClock,
		UUIDGenerator: idGenerator,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create duel service")
	}

	draftSvc, err := draftService.New(&draftService.Config{
		DefaultCapacity:    cfg.DraftCapacity,
		IdleTimeout:        cfg.DraftIdleTimeout,
		AllowSyntheticFill: cfg.DraftSyntheticFill,
		Random:             random,
		Clock:              systemClock,
		UUIDGenerator:      idGenerator,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create draft service")
	}

	bot, err = discord.New(&discord.Config{
		Token:            cfg.DiscordToken,
		ApplicationID:    cfg.ApplicationID,
		GuildID:          cfg.GuildID,
		BlackjackService: blackjackSvc,
		DuelService:      duelSvc,
		DraftService:     draftSvc,
		LedgerService:    ledgerSvc,
		MessagingService: messagingSvc,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Discord bot")
	}

	if err := bot.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start Discord bot")
	}

	ctx, stop := context.WithCancel(context.Background())

	go reapIdleSessions(ctx, draftSvc, duelSvc)

	if cfg.RotationEnabled() {
		roleAssigner, err := discord.NewRoleAssigner(&discord.RoleAssignerConfig{
			Session: bot.Session(),
			GuildID: cfg.GuildID,
			RoleID:  cfg.RotationRoleID,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create role assigner")
		}

		rotationSvc, err := rotationService.New(&rotationService.Config{
			CandidateIDs: cfg.RotationCandidateIDs,
			Weekday:      cfg.RotationWeekday,
			RotationRepo: rotationBookkeeping,
			RoleAssigner: roleAssigner,
			Random:       random,
			Clock:        systemClock,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create rotation service")
		}

		go func() {
			if err := rotationSvc.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("rotation scheduler stopped")
			}
		}()
	} else {
		log.Info().Msg("rotation disabled: missing candidates, role or guild")
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	stop()

	if err := bot.Stop(); err != nil {
		log.Error().Err(err).Msg("error stopping bot")
	}

	log.Info().Msg("bot has been shut down")
}

// reapIdleSessions periodically sweeps abandoned draft lobbies and stalled
// duels
func reapIdleSessions(ctx context.Context, drafts draftService.Service, duels duelService.Service) {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			lobbyOutput, err := drafts.ReapIdle(ctx, &draftService.ReapIdleInput{})
			if err != nil {
				log.Error().Err(err).Msg("idle lobby sweep failed")
			} else {
				for _, lobby := range lobbyOutput.Reaped {
					log.Info().Str("lobby_id", lobby.ID).Str("channel_id", lobby.ChannelID).
						Msg("reaped idle draft lobby")
				}
			}

			duelOutput, err := duels.ReapIdle(ctx, &duelService.ReapIdleInput{})
			if err != nil {
				log.Error().Err(err).Msg("idle duel sweep failed")
			} else {
				for _, session := range duelOutput.Reaped {
					log.Info().Str("session_id", session.ID).Str("channel_id", session.ChannelID).
						Msg("reaped stalled duel")
				}
			}
		}
	}
}
