package listeners

import (
	"context"
	"fmt"

	"guildbot/internal/core/domain"
	"guildbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// VoiceJoin greets a user connecting to a voice channel in the guild's
// system channel. The dispatcher only forwards fresh joins, never moves or
// disconnects.
func VoiceJoin(sender port.Sender, loc port.Localizer) *domain.Listener {
	return &domain.Listener{
		Name:        "voicejoin",
		Description: "Greet users joining a voice channel",
		Trigger:     domain.TriggerVoiceState,
		Kinds: []domain.ArgKind{
			domain.KindContext,
			domain.KindUser,
			domain.KindGuild,
			domain.KindChannelID,
		},
		Run: func(ctx context.Context, bag *domain.Bag) error {
			c, err := bag.Ctx()
			if err != nil {
				return err
			}
			user, err := bag.User()
			if err != nil {
				return err
			}
			guild, err := bag.Guild()
			if err != nil {
				return err
			}
			channelID, err := bag.ChannelID()
			if err != nil {
				return err
			}

			if guild == nil || guild.SystemChannelID == "" {
				log.Debug().Str("channelId", channelID).Msg("no system channel to greet in")
				return nil
			}

			_, err = sender.SendMessage(ctx, guild.SystemChannelID, &domain.OutboundMessage{
				Content: loc.Translate("listeners.voice.join", c.Locale, map[string]string{
					"user":       user.Username,
					"channel_id": channelID,
				}),
			})
			if err != nil {
				return fmt.Errorf("failed to send voice greeting: %w", err)
			}

			return nil
		},
	}
}
