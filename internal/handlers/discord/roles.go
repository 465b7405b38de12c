package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// RoleAssigner applies the rotation's featured role through the Discord API
type RoleAssigner struct {
	session *discordgo.Session
	guildID string
	roleID  string
}

// RoleAssignerConfig holds configuration for the role assigner
type RoleAssignerConfig struct {
	// Session is an open Discord session
	Session *discordgo.Session

	// GuildID is the guild the role lives in
	GuildID string

	// RoleID is the role to grant and revoke
	RoleID string
}

// NewRoleAssigner creates a role assigner for one guild role
func NewRoleAssigner(cfg *RoleAssignerConfig) (*RoleAssigner, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	if cfg.GuildID == "" || cfg.RoleID == "" {
		return nil, errors.New("guild ID and role ID cannot be empty")
	}

	return &RoleAssigner{
		session: cfg.Session,
		guildID: cfg.GuildID,
		roleID:  cfg.RoleID,
	}, nil
}

// ApplyRole grants the role to each participant
func (r *RoleAssigner) ApplyRole(ctx context.Context, participantIDs []string) error {
	for _, id := range participantIDs {
		if err := r.session.GuildMemberRoleAdd(r.guildID, id, r.roleID); err != nil {
			return fmt.Errorf("failed to grant role to %s: %w", id, err)
		}
	}
	return nil
}

// RemoveRole revokes the role from each participant
func (r *RoleAssigner) RemoveRole(ctx context.Context, participantIDs []string) error {
	for _, id := range participantIDs {
		if err := r.session.GuildMemberRoleRemove(r.guildID, id, r.roleID); err != nil {
			return fmt.Errorf("failed to revoke role from %s: %w", id, err)
		}
	}
	return nil
}
