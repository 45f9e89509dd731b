package events

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// RegisterPresenceEvents forwards activity changes to the presence watcher
func RegisterPresenceEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnPresenceUpdate(func(s *discordgo.Session, p *discordgo.PresenceUpdate) {
		if p.User == nil || p.User.ID == "" {
			return
		}

		member := models.MemberRef{ID: p.User.ID, DisplayName: p.User.Username}
		if m, err := s.State.Member(p.GuildID, p.User.ID); err == nil && m.User != nil {
			member = discord.MemberRefFromUser(m.User)
		}

		for _, d := range client.Engine.ObservePresence(member, activityNames(p.Activities)) {
			if d.Err != nil {
				logger.Debug(fmt.Sprintf("Aviso de presencia a %s no entregado: %v", d.Observer, d.Err), "Watcher")
			}
		}
	})
}

// activityNames lists the public activities; custom statuses use their text
func activityNames(activities []*discordgo.Activity) []string {
	names := make([]string, 0, len(activities))
	for _, a := range activities {
		if a == nil {
			continue
		}
		name := a.Name
		if a.Type == discordgo.ActivityTypeCustom && a.State != "" {
			name = a.State
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
