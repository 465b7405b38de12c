package config

import (
	"testing"
	"time"
)

func TestLoadBotDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")

	cfg, err := LoadBot()
	if err != nil {
		t.Fatalf("LoadBot() error = %v", err)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("RedisAddr = %q, want localhost:6379", cfg.RedisAddr)
	}
	if cfg.StartingBalance != 5000 {
		t.Fatalf("StartingBalance = %d, want 5000", cfg.StartingBalance)
	}
	if cfg.BlackjackTurnTimeout != 60*time.Second {
		t.Fatalf("BlackjackTurnTimeout = %v, want 60s", cfg.BlackjackTurnTimeout)
	}
	if cfg.DuelChallengeTimeout != 45*time.Second {
		t.Fatalf("DuelChallengeTimeout = %v, want 45s", cfg.DuelChallengeTimeout)
	}
	if cfg.DuelIdleTimeout != 30*time.Minute {
		t.Fatalf("DuelIdleTimeout = %v, want 30m", cfg.DuelIdleTimeout)
	}
	if cfg.DraftIdleTimeout != 30*time.Minute {
		t.Fatalf("DraftIdleTimeout = %v, want 30m", cfg.DraftIdleTimeout)
	}
	if cfg.RotationEnabled() {
		t.Fatal("RotationEnabled() = true without candidates or role")
	}
}

func TestLoadBotRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	_, err := LoadBot()
	if err == nil {
		t.Fatal("LoadBot() expected error, got nil")
	}
}

func TestLoadBotRotationSettings(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("GUILD_ID", "guild-1")
	t.Setenv("ROTATION_CANDIDATE_IDS", "user-1,user-2,user-3,user-4")
	t.Setenv("ROTATION_ROLE_ID", "role-1")
	t.Setenv("ROTATION_WEEKDAY", "1")

	cfg, err := LoadBot()
	if err != nil {
		t.Fatalf("LoadBot() error = %v", err)
	}
	if len(cfg.RotationCandidateIDs) != 4 {
		t.Fatalf("RotationCandidateIDs = %v, want 4 entries", cfg.RotationCandidateIDs)
	}
	if cfg.RotationWeekday != time.Monday {
		t.Fatalf("RotationWeekday = %v, want Monday", cfg.RotationWeekday)
	}
	if !cfg.RotationEnabled() {
		t.Fatal("RotationEnabled() = false with full rotation settings")
	}
}
