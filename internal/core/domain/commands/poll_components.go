package commands

import (
	"context"
	"fmt"
	"strings"

	"guildbot/internal/core/domain"
	"guildbot/internal/core/service"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// ComponentListener routes clicks on the poll management and vote buttons.
// Custom IDs carry the poll ID (and the choice value for votes), so button
// handlers never depend on which thread the click came from.
func (p *PollCommand) ComponentListener() *domain.Listener {
	return &domain.Listener{
		Name:        "poll:",
		Description: "Poll management and vote buttons",
		Trigger:     domain.TriggerComponent,
		Kinds: []domain.ArgKind{
			domain.KindContext,
			domain.KindUser,
			domain.KindChannelID,
		},
		Run: p.handleComponent,
	}
}

func (p *PollCommand) handleComponent(ctx context.Context, bag *domain.Bag) error {
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

	action, pollID, choice, err := parseComponentID(c.CustomID)
	if err != nil {
		return err
	}

	// Opening a modal is itself the interaction response, so the add-option
	// button must not be acknowledged first.
	if action == "option" {
		return p.sender.OpenModal(ctx, c.EventID, p.optionModal(pollID, c.Locale))
	}

	if err := p.sender.DeferAck(ctx, c.EventID); err != nil {
		log.Warn().Err(err).Str("customId", c.CustomID).Msg("failed to defer acknowledgement")
	}

	switch action {
	case "start":
		locale := c.Locale
		err = p.polls.Start(ctx, pollID, 0, func(closeCtx context.Context, id uuid.UUID) {
			p.render.Update(closeCtx, id, locale)
			p.render.PublishResults(closeCtx, id, locale)
		})
	case "stop":
		err = p.polls.Close(ctx, pollID)
	case "cancel":
		err = p.polls.Cancel(ctx, pollID)
	case "vote":
		err = p.polls.Vote(ctx, pollID, user.ID, choice)
	default:
		return fmt.Errorf("unknown poll component action %q", action)
	}

	if err != nil {
		if resp, ok := p.userMessage(err, c.Locale); ok {
			if _, sendErr := p.sender.SendMessage(ctx, channelID,
				&domain.OutboundMessage{Content: resp.Text}); sendErr != nil {
				log.Warn().Err(sendErr).Msg("failed to send rejection message")
			}
			return nil
		}
		return err
	}

	p.render.Update(ctx, pollID, c.Locale)
	if action == "stop" {
		p.render.PublishResults(ctx, pollID, c.Locale)
	}

	return nil
}

func parseComponentID(customID string) (action string, pollID uuid.UUID, choice string, err error) {
	parts := strings.Split(customID, ":")
	if len(parts) < 3 || parts[0] != "poll" {
		return "", uuid.Nil, "", fmt.Errorf("malformed poll component id %q", customID)
	}

	id, err := uuid.FromString(parts[2])
	if err != nil {
		return "", uuid.Nil, "", fmt.Errorf("malformed poll id in %q: %w", customID, err)
	}

	if parts[1] == "vote" {
		if len(parts) < 4 {
			return "", uuid.Nil, "", fmt.Errorf("vote component id %q is missing a choice", customID)
		}
		return "vote", id, parts[3], nil
	}

	return parts[1], id, "", nil
}

func (p *PollCommand) optionModal(pollID uuid.UUID, locale string) *domain.Modal {
	return &domain.Modal{
		CustomID: service.OptionModalID(pollID),
		Title:    p.loc.Translate("commands.poll.modal.title", locale, nil),
		Inputs: []domain.ModalInput{
			{
				CustomID:    "option_label",
				Label:       p.loc.Translate("commands.poll.modal.label", locale, nil),
				Placeholder: p.loc.Translate("commands.poll.modal.label_placeholder", locale, nil),
				Required:    true,
				MinLength:   1,
				MaxLength:   domain.MaxChoiceLabelLen,
			},
			{
				CustomID:    "option_description",
				Label:       p.loc.Translate("commands.poll.modal.description", locale, nil),
				Placeholder: p.loc.Translate("commands.poll.modal.description_placeholder", locale, nil),
				MaxLength:   domain.MaxChoiceDescriptionLen,
				Paragraph:   true,
			},
		},
	}
}

// ModalListener receives the submitted add-option form.
func (p *PollCommand) ModalListener() *domain.Listener {
	return &domain.Listener{
		Name:        "poll-option:",
		Description: "Save a submitted poll option",
		Trigger:     domain.TriggerModal,
		Kinds: []domain.ArgKind{
			domain.KindContext,
			domain.KindChannelID,
			domain.KindModalSubmitData,
		},
		Run: p.handleOptionModal,
	}
}

func (p *PollCommand) handleOptionModal(ctx context.Context, bag *domain.Bag) error {
	c, err := bag.Ctx()
	if err != nil {
		return err
	}
	channelID, err := bag.ChannelID()
	if err != nil {
		return err
	}
	data, err := bag.Modal()
	if err != nil {
		return err
	}

	rawID := strings.TrimPrefix(data.CustomID, "poll-option:")
	pollID, err := uuid.FromString(rawID)
	if err != nil {
		return fmt.Errorf("malformed poll id in modal %q: %w", data.CustomID, err)
	}

	if err := p.sender.DeferAck(ctx, c.EventID); err != nil {
		log.Warn().Err(err).Str("customId", data.CustomID).Msg("failed to defer acknowledgement")
	}

	label := data.Fields["option_label"]
	description := data.Fields["option_description"]

	if err := p.addChoice(ctx, pollID, label, description, c.Locale); err != nil {
		if resp, ok := p.userMessage(err, c.Locale); ok {
			if _, sendErr := p.sender.SendMessage(ctx, channelID,
				&domain.OutboundMessage{Content: resp.Text}); sendErr != nil {
				log.Warn().Err(sendErr).Msg("failed to send rejection message")
			}
			return nil
		}
		return err
	}

	return nil
}
