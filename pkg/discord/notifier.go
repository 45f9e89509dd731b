package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

const auditColor = 0xFFA500

// Notifier delivers moderation output through a discordgo session
type Notifier struct {
	session      *discordgo.Session
	auditChannel string
}

// NewNotifier creates a Notifier posting audit records to the text channel
// named auditChannel in each guild
func NewNotifier(session *discordgo.Session, auditChannel string) *Notifier {
	return &Notifier{session: session, auditChannel: auditChannel}
}

// SendDirect opens a DM with member and sends text
func (n *Notifier) SendDirect(member models.MemberRef, text string) error {
	ch, err := n.session.UserChannelCreate(member.ID)
	if err != nil {
		return err
	}
	_, err = n.session.ChannelMessageSend(ch.ID, text)
	return err
}

// SendToAuditChannel posts the record as an embed. Guilds without the audit
// channel are skipped silently.
func (n *Notifier) SendToAuditChannel(community string, record models.AuditRecord) error {
	if community == "" || n.auditChannel == "" {
		return nil
	}

	var channels []*discordgo.Channel
	if guild, err := n.session.State.Guild(community); err == nil {
		channels = guild.Channels
	} else {
		channels, err = n.session.GuildChannels(community)
		if err != nil {
			return err
		}
	}

	ch := findTextChannel(channels, n.auditChannel)
	if ch == nil {
		logger.Debug(fmt.Sprintf("El servidor %s no tiene canal '%s'", community, n.auditChannel), "ModLog")
		return nil
	}

	_, err := n.session.ChannelMessageSendEmbed(ch.ID, auditEmbed(record))
	return err
}

// Announce sends text to a channel
func (n *Notifier) Announce(channelID, text string) error {
	_, err := n.session.ChannelMessageSend(channelID, text)
	return err
}

func findTextChannel(channels []*discordgo.Channel, name string) *discordgo.Channel {
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && strings.EqualFold(ch.Name, name) {
			return ch
		}
	}
	return nil
}

func auditEmbed(record models.AuditRecord) *discordgo.MessageEmbed {
	moderator := "Sistema"
	if record.Moderator.ID != "" {
		moderator = fmt.Sprintf("%s (%s)", record.Moderator.Mention(), record.Moderator)
	}
	reason := record.Reason
	if reason == "" {
		reason = "Sin razón especificada"
	}

	embed := &discordgo.MessageEmbed{
		Title: "🛡️ " + record.Action,
		Color: auditColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Acción", Value: record.Action, Inline: true},
			{Name: "Usuario", Value: record.Target, Inline: true},
			{Name: "Moderador", Value: moderator, Inline: true},
			{Name: "Razón", Value: reason},
		},
		Timestamp: record.Timestamp.Format(time.RFC3339),
	}
	if record.Channel.ID != "" {
		footer := "Canal: <#" + record.Channel.ID + ">"
		if record.Channel.Name != "" {
			footer = "Canal: #" + record.Channel.Name
		}
		embed.Footer = &discordgo.MessageEmbedFooter{Text: footer + " | ID: " + record.ID}
	}
	return embed
}
