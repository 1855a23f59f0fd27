package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"guildbot/internal/core/domain"

	"github.com/gofrs/uuid/v5"
)

func (p *PollCommand) create(ctx context.Context, bag *domain.Bag,
	options []domain.Option) (*domain.Response, error) {
	c, err := bag.Ctx()
	if err != nil {
		return nil, err
	}
	user, err := bag.User()
	if err != nil {
		return nil, err
	}
	channelID, err := bag.ChannelID()
	if err != nil {
		return nil, err
	}

	nameOpt := domain.FindOption(options, "name")
	if nameOpt == nil {
		return domain.TextResponse(p.loc.Translate("commands.poll.create.missing_name", c.Locale, nil)), nil
	}

	description := ""
	if opt := domain.FindOption(options, "description"); opt != nil {
		description = opt.Value
	}

	kind := domain.SingleChoice
	if opt := domain.FindOption(options, "kind"); opt != nil {
		parsed, err := domain.ParsePollKind(opt.Value)
		if err != nil {
			return domain.TextResponse(p.loc.Translate("commands.poll.create.bad_kind", c.Locale, nil)), nil
		}
		kind = parsed
	}

	threadID, err := p.sender.CreateThread(ctx, channelID, nameOpt.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to create setup thread: %w", err)
	}

	poll, err := p.polls.Create(ctx, nameOpt.Value, description, kind, user.ID, threadID)
	if err != nil {
		return domain.TextResponse(p.loc.Translate("commands.poll.error.save_failed", c.Locale, nil)), nil
	}

	messageID, err := p.render.Send(ctx, poll, c.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to send setup presentation: %w", err)
	}

	// Bounded wait for the first setup interaction, tied to the process
	// lifetime so shutdown drains it. The wait ends on delivery, timeout,
	// or shutdown; the outcome is informational only.
	go func() {
		err := p.awaiter.Await(p.runCtx, messageID, p.setupTimeout)
		logSetupWait(err, poll.ID.String())
	}()

	return domain.TextResponse(p.loc.Translate("commands.poll.create.response", c.Locale,
		map[string]string{"thread_id": threadID})), nil
}

// pollHere resolves the poll attached to the invoking channel's thread.
func (p *PollCommand) pollHere(ctx context.Context, bag *domain.Bag) (*domain.Poll, *domain.Ctx, *domain.Response, error) {
	c, err := bag.Ctx()
	if err != nil {
		return nil, nil, nil, err
	}
	channelID, err := bag.ChannelID()
	if err != nil {
		return nil, nil, nil, err
	}

	poll, err := p.polls.PollByThread(ctx, channelID)
	if err != nil {
		if resp, ok := p.userMessage(err, c.Locale); ok {
			return nil, c, resp, nil
		}
		return nil, nil, nil, err
	}

	return poll, c, nil, nil
}

func (p *PollCommand) option(ctx context.Context, bag *domain.Bag,
	options []domain.Option) (*domain.Response, error) {
	poll, c, resp, err := p.pollHere(ctx, bag)
	if err != nil || resp != nil {
		return resp, err
	}

	labelOpt := domain.FindOption(options, "label")
	if labelOpt == nil {
		return domain.TextResponse(p.loc.Translate("commands.poll.option.missing_label", c.Locale, nil)), nil
	}

	description := ""
	if opt := domain.FindOption(options, "description"); opt != nil {
		description = opt.Value
	}

	if err := p.addChoice(ctx, poll.ID, labelOpt.Value, description, c.Locale); err != nil {
		if resp, ok := p.userMessage(err, c.Locale); ok {
			return resp, nil
		}
		return domain.TextResponse(p.loc.Translate("commands.poll.error.save_failed", c.Locale, nil)), nil
	}

	return domain.TextResponse(p.loc.Translate("commands.poll.option.response", c.Locale,
		map[string]string{"label": labelOpt.Value})), nil
}

func (p *PollCommand) addChoice(ctx context.Context, pollID uuid.UUID,
	label, description, locale string) error {
	if err := p.polls.AddChoice(ctx, pollID, Slugify(label), label, description); err != nil {
		return err
	}

	p.render.Update(ctx, pollID, locale)

	return nil
}

func (p *PollCommand) start(ctx context.Context, bag *domain.Bag,
	options []domain.Option) (*domain.Response, error) {
	poll, c, resp, err := p.pollHere(ctx, bag)
	if err != nil || resp != nil {
		return resp, err
	}

	var timer time.Duration
	if opt := domain.FindOption(options, "timer"); opt != nil {
		minutes, err := strconv.Atoi(opt.Value)
		if err != nil || minutes < 0 {
			return domain.TextResponse(p.loc.Translate("commands.poll.start.bad_timer", c.Locale, nil)), nil
		}
		timer = time.Duration(minutes) * time.Minute
	}

	locale := c.Locale
	err = p.polls.Start(ctx, poll.ID, timer, func(closeCtx context.Context, id uuid.UUID) {
		p.render.Update(closeCtx, id, locale)
		p.render.PublishResults(closeCtx, id, locale)
	})
	if err != nil {
		if resp, ok := p.userMessage(err, c.Locale); ok {
			return resp, nil
		}
		return domain.TextResponse(p.loc.Translate("commands.poll.error.save_failed", c.Locale, nil)), nil
	}

	p.render.Update(ctx, poll.ID, c.Locale)

	return domain.TextResponse(p.loc.Translate("commands.poll.start.response", c.Locale, nil)), nil
}

func (p *PollCommand) stop(ctx context.Context, bag *domain.Bag,
	_ []domain.Option) (*domain.Response, error) {
	poll, c, resp, err := p.pollHere(ctx, bag)
	if err != nil || resp != nil {
		return resp, err
	}

	if err := p.polls.Close(ctx, poll.ID); err != nil {
		if resp, ok := p.userMessage(err, c.Locale); ok {
			return resp, nil
		}
		return domain.TextResponse(p.loc.Translate("commands.poll.error.save_failed", c.Locale, nil)), nil
	}

	p.render.Update(ctx, poll.ID, c.Locale)
	p.render.PublishResults(ctx, poll.ID, c.Locale)

	return domain.TextResponse(p.loc.Translate("commands.poll.stop.response", c.Locale, nil)), nil
}

func (p *PollCommand) vote(ctx context.Context, bag *domain.Bag,
	options []domain.Option) (*domain.Response, error) {
	poll, c, resp, err := p.pollHere(ctx, bag)
	if err != nil || resp != nil {
		return resp, err
	}

	user, err := bag.User()
	if err != nil {
		return nil, err
	}

	choiceOpt := domain.FindOption(options, "choice")
	if choiceOpt == nil {
		return domain.TextResponse(p.loc.Translate("commands.poll.vote.missing_choice", c.Locale, nil)), nil
	}

	if err := p.polls.Vote(ctx, poll.ID, user.ID, choiceOpt.Value); err != nil {
		if resp, ok := p.userMessage(err, c.Locale); ok {
			return resp, nil
		}
		return domain.TextResponse(p.loc.Translate("commands.poll.error.save_failed", c.Locale, nil)), nil
	}

	p.render.Update(ctx, poll.ID, c.Locale)

	return domain.TextResponse(p.loc.Translate("commands.poll.vote.response", c.Locale, nil)), nil
}

func (p *PollCommand) help(_ context.Context, bag *domain.Bag,
	_ []domain.Option) (*domain.Response, error) {
	c, err := bag.Ctx()
	if err != nil {
		return nil, err
	}

	return domain.TextResponse(p.loc.Translate("commands.poll.help", c.Locale, nil)), nil
}
