package discord

import (
	"testing"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func noop(ctx *CommandContext) error { return nil }

// TestCommandCreation verifies that commands can be created with the builder pattern
func TestCommandCreation(t *testing.T) {
	cmd := NewCommand("warn", "Advierte a un usuario", "mod", noop)

	if cmd.Name != "warn" {
		t.Errorf("Name = %v, want %v", cmd.Name, "warn")
	}
	if cmd.Category != "mod" {
		t.Errorf("Category = %v, want %v", cmd.Category, "mod")
	}
	if cmd.Run == nil {
		t.Error("Run function is nil")
	}
	if cmd.GuildOnly {
		t.Error("GuildOnly should default to false")
	}
}

func TestToApplicationCommand(t *testing.T) {
	option := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "usuario",
		Description: "Usuario",
		Required:    true,
	}

	appCmd := NewCommand("warn", "Advierte", "mod", noop).
		WithOptions(option).
		WithUserPermissions(discordgo.PermissionModerateMembers).
		ToApplicationCommand()

	if len(appCmd.Options) != 1 {
		t.Fatalf("Options length = %v, want 1", len(appCmd.Options))
	}
	if appCmd.DefaultMemberPermissions == nil || *appCmd.DefaultMemberPermissions != discordgo.PermissionModerateMembers {
		t.Errorf("DefaultMemberPermissions = %v", appCmd.DefaultMemberPermissions)
	}
	if appCmd.DMPermission == nil || *appCmd.DMPermission {
		t.Error("moderation commands must not be usable in DMs")
	}

	public := NewCommand("ping", "Pong", "util", noop).ToApplicationCommand()
	if public.DefaultMemberPermissions != nil || public.DMPermission != nil {
		t.Error("public commands must not carry permission defaults")
	}
}

func TestAllowed(t *testing.T) {
	cmd := NewCommand("ban", "Banea", "mod", noop).
		WithUserPermissions(discordgo.PermissionBanMembers)

	tests := []struct {
		name  string
		perms int64
		want  bool
	}{
		{"none", 0, false},
		{"other", discordgo.PermissionKickMembers, false},
		{"exact", discordgo.PermissionBanMembers, true},
		{"admin", discordgo.PermissionAdministrator, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cmd.Allowed(tt.perms); got != tt.want {
				t.Errorf("Allowed(%d) = %v, want %v", tt.perms, got, tt.want)
			}
		})
	}

	if !NewCommand("ping", "Pong", "util", noop).Allowed(0) {
		t.Error("commands without permissions are open to everyone")
	}
}

func TestCommandName(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Name: "mod",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "warn", Type: discordgo.ApplicationCommandOptionSubCommand},
		},
	}
	if got := commandName(data); got != "mod.warn" {
		t.Errorf("commandName = %q, want mod.warn", got)
	}

	plain := discordgo.ApplicationCommandInteractionData{Name: "ping"}
	if got := commandName(plain); got != "ping" {
		t.Errorf("commandName = %q, want ping", got)
	}
}

func TestMemberRefFromUser(t *testing.T) {
	ref := MemberRefFromUser(&discordgo.User{ID: "1", Username: "pancy"})
	if ref.ID != "1" || ref.DisplayName != "pancy" {
		t.Errorf("unexpected ref %+v", ref)
	}

	ref = MemberRefFromUser(&discordgo.User{ID: "1", Username: "pancy", GlobalName: "Pancy"})
	if ref.DisplayName != "Pancy" {
		t.Errorf("DisplayName = %q, want Pancy", ref.DisplayName)
	}

	if MemberRefFromUser(nil).ID != "" {
		t.Error("nil user must give an empty ref")
	}
}

func TestFindTextChannel(t *testing.T) {
	channels := []*discordgo.Channel{
		{ID: "1", Name: "mod-logs", Type: discordgo.ChannelTypeGuildVoice},
		{ID: "2", Name: "general", Type: discordgo.ChannelTypeGuildText},
		{ID: "3", Name: "Mod-Logs", Type: discordgo.ChannelTypeGuildText},
	}
	if ch := findTextChannel(channels, "mod-logs"); ch == nil || ch.ID != "3" {
		t.Errorf("findTextChannel = %+v, want channel 3", ch)
	}
	if findTextChannel(channels, "audit") != nil {
		t.Error("missing channel must return nil")
	}
}

func TestAuditEmbed(t *testing.T) {
	record := models.AuditRecord{
		ID:        "abc",
		Action:    "Warn",
		Target:    "<@1>",
		Moderator: models.MemberRef{ID: "2", DisplayName: "mod"},
		Channel:   models.ChannelRef{ID: "9", Name: "general"},
		Timestamp: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	embed := auditEmbed(record)
	if embed.Color != auditColor {
		t.Errorf("Color = %x", embed.Color)
	}
	if len(embed.Fields) != 4 {
		t.Fatalf("Fields = %d, want 4", len(embed.Fields))
	}
	if embed.Fields[3].Value != "Sin razón especificada" {
		t.Errorf("Reason = %q", embed.Fields[3].Value)
	}
	if embed.Footer == nil || embed.Footer.Text != "Canal: #general | ID: abc" {
		t.Errorf("Footer = %+v", embed.Footer)
	}
}
