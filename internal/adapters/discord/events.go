package discord

import (
	"context"
	"strconv"

	"guildbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

func (b *Bot) registerHandlers(ctx context.Context, dispatcher Dispatcher) {
	b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.park(i.Interaction, i.Type)

		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			data := i.ApplicationCommandData()
			dispatcher.HandleCommand(ctx, &domain.CommandInvoked{
				EventID:   i.ID,
				Name:      data.Name,
				Options:   toOptions(data.Options),
				User:      toUser(interactionUser(i)),
				Guild:     b.guild(i.GuildID),
				ChannelID: i.ChannelID,
			})
		case discordgo.InteractionMessageComponent:
			data := i.MessageComponentData()
			messageID := ""
			if i.Message != nil {
				messageID = i.Message.ID
			}
			dispatcher.HandleComponent(ctx, &domain.ComponentInteracted{
				EventID:   i.ID,
				CustomID:  data.CustomID,
				MessageID: messageID,
				User:      toUser(interactionUser(i)),
				Guild:     b.guild(i.GuildID),
				ChannelID: i.ChannelID,
			})
		case discordgo.InteractionModalSubmit:
			data := i.ModalSubmitData()
			dispatcher.HandleModal(ctx, &domain.ModalSubmitted{
				EventID:   i.ID,
				CustomID:  data.CustomID,
				Fields:    modalFields(data.Components),
				User:      toUser(interactionUser(i)),
				Guild:     b.guild(i.GuildID),
				ChannelID: i.ChannelID,
			})
		default:
			log.Debug().Int("type", int(i.Type)).Msg("ignoring interaction type")
		}
	})

	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil {
			return
		}

		dispatcher.HandleMessage(ctx, &domain.ChatMessage{
			MessageID: m.ID,
			ChannelID: m.ChannelID,
			Content:   m.Content,
			Author:    toUser(m.Author),
			Guild:     b.guild(m.GuildID),
		})
	})

	b.session.AddHandler(func(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
		user, err := s.User(v.UserID)
		if err != nil {
			log.Warn().Err(err).Str("userId", v.UserID).Msg("failed to resolve voice state user")
			return
		}

		oldChannel := ""
		if v.BeforeUpdate != nil {
			oldChannel = v.BeforeUpdate.ChannelID
		}

		dispatcher.HandleVoiceState(ctx, &domain.PresenceChanged{
			User:         toUser(user),
			Guild:        b.guild(v.GuildID),
			OldChannelID: oldChannel,
			NewChannelID: v.ChannelID,
		})
	})
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}

	return i.User
}

func toUser(u *discordgo.User) *domain.User {
	if u == nil {
		return nil
	}

	return &domain.User{ID: u.ID, Username: u.Username, Bot: u.Bot}
}

func (b *Bot) guild(guildID string) *domain.Guild {
	if guildID == "" {
		return nil
	}

	g, err := b.session.State.Guild(guildID)
	if err != nil {
		return &domain.Guild{ID: guildID}
	}

	return &domain.Guild{ID: g.ID, Name: g.Name, SystemChannelID: g.SystemChannelID}
}

func toOptions(options []*discordgo.ApplicationCommandInteractionDataOption) []domain.Option {
	out := make([]domain.Option, 0, len(options))
	for _, o := range options {
		opt := domain.Option{Name: o.Name, Options: toOptions(o.Options)}

		switch o.Type {
		case discordgo.ApplicationCommandOptionString:
			opt.Value = o.StringValue()
		case discordgo.ApplicationCommandOptionInteger:
			opt.Value = strconv.FormatInt(o.IntValue(), 10)
		}

		out = append(out, opt)
	}

	return out
}

func modalFields(components []discordgo.MessageComponent) map[string]string {
	fields := make(map[string]string)

	for _, component := range components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}

		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				fields[input.CustomID] = input.Value
			}
		}
	}

	return fields
}
