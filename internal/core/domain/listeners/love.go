package listeners

import (
	"context"
	"fmt"
	"strconv"

	"guildbot/internal/core/domain"
	"guildbot/internal/core/port"
	"guildbot/internal/core/service"

	"github.com/rs/zerolog/log"
)

// Love replies to the "!love" chat trigger. Replies are cooldown-limited per
// user so a burst of triggers produces a single response, and the running
// counter feeds the reply text.
func Love(cooldown *service.Cooldown, sender port.Sender, loc port.Localizer) *domain.Listener {
	return &domain.Listener{
		Name:        "love",
		Description: "Reply to the love chat trigger",
		Trigger:     domain.TriggerMessage,
		Kinds: []domain.ArgKind{
			domain.KindContext,
			domain.KindUser,
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
			channelID, err := bag.ChannelID()
			if err != nil {
				return err
			}

			count, ok := cooldown.Allow(user.ID)
			if !ok {
				log.Debug().Str("userId", user.ID).Msg("love trigger suppressed by cooldown")
				return nil
			}

			key := "listeners.love.reply"
			params := map[string]string{"user": user.Username}
			if count > 1 {
				key = "listeners.love.reply_counter"
				params["counter"] = strconv.Itoa(count)
			}

			_, err = sender.SendMessage(ctx, channelID,
				&domain.OutboundMessage{Content: loc.Translate(key, c.Locale, params)})
			if err != nil {
				return fmt.Errorf("failed to send love reply: %w", err)
			}

			return nil
		},
	}
}
