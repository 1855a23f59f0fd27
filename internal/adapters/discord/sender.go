package discord

import (
	"context"
	"fmt"

	"guildbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

// threadArchiveMinutes is the auto-archive window for poll setup threads.
const threadArchiveMinutes = 1440

func (b *Bot) DeferAck(ctx context.Context, eventID string) error {
	p, err := b.parked(eventID)
	if err != nil {
		return err
	}

	responseType := discordgo.InteractionResponseDeferredChannelMessageWithSource
	if p.kind != discordgo.InteractionApplicationCommand {
		responseType = discordgo.InteractionResponseDeferredMessageUpdate
	}

	return b.session.InteractionRespond(p.interaction,
		&discordgo.InteractionResponse{Type: responseType}, discordgo.WithContext(ctx))
}

func (b *Bot) EditResponse(ctx context.Context, eventID string, response *domain.Response) error {
	p, err := b.parked(eventID)
	if err != nil {
		return err
	}

	edit := &discordgo.WebhookEdit{}

	switch response.Kind {
	case domain.ResponseText:
		edit.Content = &response.Text
	case domain.ResponseEmbed:
		embeds := []*discordgo.MessageEmbed{toEmbed(response.Embed)}
		edit.Embeds = &embeds
	case domain.ResponseMessage:
		edit.Content = &response.Message.Content
		if response.Message.Embed != nil {
			embeds := []*discordgo.MessageEmbed{toEmbed(response.Message.Embed)}
			edit.Embeds = &embeds
		}
		if len(response.Message.Components) > 0 {
			components := toComponents(response.Message.Components)
			edit.Components = &components
		}
	default:
		return fmt.Errorf("cannot edit response with kind %d", response.Kind)
	}

	_, err = b.session.InteractionResponseEdit(p.interaction, edit, discordgo.WithContext(ctx))

	return err
}

func (b *Bot) DeleteResponse(ctx context.Context, eventID string) error {
	p, err := b.parked(eventID)
	if err != nil {
		return err
	}

	return b.session.InteractionResponseDelete(p.interaction, discordgo.WithContext(ctx))
}

func (b *Bot) SendMessage(ctx context.Context, channelID string,
	message *domain.OutboundMessage) (string, error) {
	send := &discordgo.MessageSend{Content: message.Content}
	if message.Embed != nil {
		send.Embeds = []*discordgo.MessageEmbed{toEmbed(message.Embed)}
	}
	if len(message.Components) > 0 {
		send.Components = toComponents(message.Components)
	}

	sent, err := b.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}

	return sent.ID, nil
}

func (b *Bot) EditMessage(ctx context.Context, channelID, messageID string,
	message *domain.OutboundMessage) error {
	edit := &discordgo.MessageEdit{Channel: channelID, ID: messageID}

	if message.Content != "" {
		edit.Content = &message.Content
	}
	if message.Embed != nil {
		embeds := []*discordgo.MessageEmbed{toEmbed(message.Embed)}
		edit.Embeds = &embeds
	}
	components := toComponents(message.Components)
	edit.Components = &components

	_, err := b.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx))

	return err
}

func (b *Bot) CreateThread(ctx context.Context, channelID, name string) (string, error) {
	thread, err := b.session.ThreadStart(channelID, name,
		discordgo.ChannelTypeGuildPublicThread, threadArchiveMinutes, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}

	return thread.ID, nil
}

func (b *Bot) OpenModal(ctx context.Context, eventID string, modal *domain.Modal) error {
	p, err := b.parked(eventID)
	if err != nil {
		return err
	}

	rows := make([]discordgo.MessageComponent, 0, len(modal.Inputs))
	for _, input := range modal.Inputs {
		style := discordgo.TextInputShort
		if input.Paragraph {
			style = discordgo.TextInputParagraph
		}

		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    input.CustomID,
				Label:       input.Label,
				Style:       style,
				Placeholder: input.Placeholder,
				Required:    input.Required,
				MinLength:   input.MinLength,
				MaxLength:   input.MaxLength,
			},
		}})
	}

	return b.session.InteractionRespond(p.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   modal.CustomID,
			Title:      modal.Title,
			Components: rows,
		},
	}, discordgo.WithContext(ctx))
}

func (b *Bot) SetActivity(_ context.Context, text string) error {
	return b.session.UpdateGameStatus(0, text)
}

func toEmbed(embed *domain.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       embed.Title,
		Description: embed.Description,
		Color:       embed.Color,
	}

	for _, field := range embed.Fields {
		value := field.Value
		if value == "" {
			// Discord rejects empty field values.
			value = "​"
		}

		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  value,
			Inline: field.Inline,
		})
	}

	if embed.Footer != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: embed.Footer}
	}

	return out
}

func toComponents(rows []domain.ActionRow) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		buttons := make([]discordgo.MessageComponent, 0, len(row.Buttons))
		for _, button := range row.Buttons {
			buttons = append(buttons, discordgo.Button{
				CustomID: button.CustomID,
				Label:    button.Label,
				Style:    toButtonStyle(button.Style),
				Disabled: button.Disabled,
			})
		}

		out = append(out, discordgo.ActionsRow{Components: buttons})
	}

	return out
}

func toButtonStyle(style domain.ButtonStyle) discordgo.ButtonStyle {
	switch style {
	case domain.ButtonSecondary:
		return discordgo.SecondaryButton
	case domain.ButtonSuccess:
		return discordgo.SuccessButton
	case domain.ButtonDanger:
		return discordgo.DangerButton
	default:
		return discordgo.PrimaryButton
	}
}
