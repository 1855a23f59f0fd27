package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"guildbot/internal/core/domain"
	"guildbot/internal/core/port"
	"guildbot/internal/core/service"

	"github.com/rs/zerolog/log"
)

// PollCommand is the poll command group. The top-level runner acts as a
// second-level registry: the first parsed option names the subcommand, which
// is looked up in a static table and invoked with a re-narrowed view of the
// same ambient bag.
type PollCommand struct {
	polls        *service.PollService
	render       *service.Renderer
	sender       port.Sender
	loc          port.Localizer
	awaiter      *service.Awaiter
	setupTimeout time.Duration
	runCtx       context.Context

	subs map[string]subcommand
}

type subcommand struct {
	kinds []domain.ArgKind
	run   func(ctx context.Context, bag *domain.Bag, options []domain.Option) (*domain.Response, error)
}

func NewPollCommand(ctx context.Context, polls *service.PollService, render *service.Renderer,
	sender port.Sender, loc port.Localizer, awaiter *service.Awaiter,
	setupTimeout time.Duration) *PollCommand {
	p := &PollCommand{
		polls:        polls,
		render:       render,
		sender:       sender,
		loc:          loc,
		awaiter:      awaiter,
		setupTimeout: setupTimeout,
		runCtx:       ctx,
	}

	p.subs = map[string]subcommand{
		"create": {
			kinds: []domain.ArgKind{domain.KindContext, domain.KindUser, domain.KindChannelID},
			run:   p.create,
		},
		"option": {
			kinds: []domain.ArgKind{domain.KindContext, domain.KindChannelID},
			run:   p.option,
		},
		"start": {
			kinds: []domain.ArgKind{domain.KindContext, domain.KindChannelID},
			run:   p.start,
		},
		"stop": {
			kinds: []domain.ArgKind{domain.KindContext, domain.KindChannelID},
			run:   p.stop,
		},
		"vote": {
			kinds: []domain.ArgKind{domain.KindContext, domain.KindUser, domain.KindChannelID},
			run:   p.vote,
		},
		"help": {
			kinds: []domain.ArgKind{domain.KindContext},
			run:   p.help,
		},
	}

	return p
}

// Command builds the registrable descriptor for the group.
func (p *PollCommand) Command() *domain.Command {
	return &domain.Command{
		Name:        "poll",
		Description: "Create and run polls",
		Scope:       domain.ScopeGuild,
		Kinds: []domain.ArgKind{
			domain.KindOptions,
			domain.KindContext,
			domain.KindUser,
			domain.KindChannelID,
		},
		Run:         p.run,
		Fingerprint: pollFingerprint(),
	}
}

func (p *PollCommand) run(ctx context.Context, bag *domain.Bag) (*domain.Response, error) {
	c, err := bag.Ctx()
	if err != nil {
		return nil, err
	}
	options, err := bag.Options()
	if err != nil {
		return nil, err
	}

	if len(options) == 0 {
		return p.help(ctx, bag, nil)
	}

	sub, ok := p.subs[options[0].Name]
	if !ok {
		// Unmatched subcommand is fatal to this invocation only.
		return domain.TextResponse(p.loc.Translate("commands.poll.unknown", c.Locale,
			map[string]string{"name": options[0].Name})), nil
	}

	narrowed, err := bag.Narrow(sub.kinds)
	if err != nil {
		return nil, err
	}

	return sub.run(ctx, narrowed, options[0].Options)
}

// userMessage maps a lifecycle error to a translated user-facing reply.
// Unexpected errors propagate to the dispatcher instead.
func (p *PollCommand) userMessage(err error, locale string) (*domain.Response, bool) {
	var key string

	switch {
	case errors.Is(err, domain.ErrWrongStage):
		key = "commands.poll.error.wrong_stage"
	case errors.Is(err, domain.ErrDuplicateChoice):
		key = "commands.poll.error.duplicate_choice"
	case errors.Is(err, domain.ErrUnknownChoice):
		key = "commands.poll.error.unknown_choice"
	case errors.Is(err, domain.ErrNotEnoughChoices):
		key = "commands.poll.error.not_enough_choices"
	case errors.Is(err, domain.ErrLabelTooLong):
		key = "commands.poll.error.label_too_long"
	case errors.Is(err, domain.ErrDescriptionTooLong):
		key = "commands.poll.error.description_too_long"
	case errors.Is(err, domain.ErrPollNotFound):
		key = "commands.poll.error.not_found"
	default:
		return nil, false
	}

	return domain.TextResponse(p.loc.Translate(key, locale, nil)), true
}

// Slugify derives a stable machine value from a choice label.
func Slugify(label string) string {
	slug := strings.ToLower(strings.TrimSpace(label))
	slug = strings.Join(strings.Fields(slug), "-")

	return slug
}

func pollFingerprint() *domain.Fingerprint {
	return &domain.Fingerprint{
		Name:        "poll",
		Description: "Create and run polls",
		Options: []domain.FingerprintOption{
			{
				Name:        "create",
				Description: "Create a poll and open its setup thread",
				Type:        domain.OptionSubCommand,
				Options: []domain.FingerprintOption{
					{
						Name:        "name",
						Description: "The name of the poll",
						Type:        domain.OptionString,
						Required:    true,
					},
					{
						Name:        "description",
						Description: "The description of the poll",
						Type:        domain.OptionString,
					},
					{
						Name:        "kind",
						Description: "The kind of poll",
						Type:        domain.OptionString,
						Choices: []domain.FingerprintChoice{
							{Name: "Single choice", Value: string(domain.SingleChoice)},
							{Name: "Multiple choice", Value: string(domain.MultipleChoice)},
						},
					},
				},
			},
			{
				Name:        "option",
				Description: "Add a voting option (inside the setup thread)",
				Type:        domain.OptionSubCommand,
				Options: []domain.FingerprintOption{
					{
						Name:        "label",
						Description: "The display name of the option",
						Type:        domain.OptionString,
						Required:    true,
					},
					{
						Name:        "description",
						Description: "The description of the option",
						Type:        domain.OptionString,
					},
				},
			},
			{
				Name:        "start",
				Description: "Open the poll for voting (inside the setup thread)",
				Type:        domain.OptionSubCommand,
				Options: []domain.FingerprintOption{{
					Name:        "timer",
					Description: "Minutes until the poll closes automatically",
					Type:        domain.OptionInteger,
				}},
			},
			{
				Name:        "stop",
				Description: "Close the poll (inside the setup thread)",
				Type:        domain.OptionSubCommand,
			},
			{
				Name:        "vote",
				Description: "Vote for an option (inside the poll thread)",
				Type:        domain.OptionSubCommand,
				Options: []domain.FingerprintOption{{
					Name:        "choice",
					Description: "The option value to vote for",
					Type:        domain.OptionString,
					Required:    true,
				}},
			},
			{
				Name:        "help",
				Description: "Show poll usage",
				Type:        domain.OptionSubCommand,
			},
		},
	}
}

func logSetupWait(err error, pollID string) {
	switch {
	case err == nil:
		log.Debug().Str("pollId", pollID).Msg("setup interaction received")
	case errors.Is(err, service.ErrAwaitTimeout):
		log.Warn().Str("pollId", pollID).Msg("no setup interaction before timeout")
	default:
		log.Debug().Err(err).Str("pollId", pollID).Msg("setup wait cancelled")
	}
}
