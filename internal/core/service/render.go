package service

import (
	"context"
	"fmt"
	"strings"

	"guildbot/internal/core/domain"
	"guildbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

const (
	barCells   = 10
	filledCell = "█"
	emptyCell  = "░"

	colorSetup  = 0xfdd835
	colorVoting = 0x43a047
	colorClosed = 0x546e7a
)

// CustomID builders for the poll components. The dispatcher routes on the
// "poll:" and "poll-option:" prefixes.
func AddOptionID(pollID uuid.UUID) string { return "poll:option:" + pollID.String() }
func StartID(pollID uuid.UUID) string     { return "poll:start:" + pollID.String() }
func StopID(pollID uuid.UUID) string      { return "poll:stop:" + pollID.String() }
func CancelID(pollID uuid.UUID) string    { return "poll:cancel:" + pollID.String() }
func VoteID(pollID uuid.UUID, choice string) string {
	return "poll:vote:" + pollID.String() + ":" + choice
}
func OptionModalID(pollID uuid.UUID) string { return "poll-option:" + pollID.String() }

// Renderer builds the poll presentation from entity state and keeps the
// platform message in step with it. Delivery is best-effort: a failed edit
// is logged and never rolls back the entity mutation.
type Renderer struct {
	store  port.PollStore
	sender port.Sender
	loc    port.Localizer
}

func NewRenderer(store port.PollStore, sender port.Sender, loc port.Localizer) *Renderer {
	return &Renderer{store: store, sender: sender, loc: loc}
}

// Build is a pure function of the current poll state and is safe to call
// repeatedly.
func (r *Renderer) Build(poll *domain.Poll, choices []domain.PollChoice,
	tally domain.Tally, locale string) *domain.Embed {
	embed := &domain.Embed{
		Title:       poll.Name,
		Description: poll.Description,
	}

	switch poll.Stage {
	case domain.StageSetup:
		embed.Color = colorSetup
		embed.Footer = r.loc.Translate("poll.embed.footer.setup", locale, nil)

		for _, c := range choices {
			embed.Fields = append(embed.Fields, domain.EmbedField{
				Name:  c.Label,
				Value: c.Description,
			})
		}
	case domain.StageVoting:
		embed.Color = colorVoting
		embed.Footer = r.loc.Translate("poll.embed.footer.voting", locale, nil)
		embed.Fields = tallyFields(choices, tally)
	case domain.StageClosed:
		embed.Color = colorClosed
		embed.Footer = r.loc.Translate("poll.embed.footer.closed", locale, map[string]string{
			"total": fmt.Sprintf("%d", tally.Total),
		})
		embed.Fields = tallyFields(choices, tally)
	}

	return embed
}

func tallyFields(choices []domain.PollChoice, tally domain.Tally) []domain.EmbedField {
	labels := make(map[string]string, len(choices))
	for _, c := range choices {
		labels[c.Value] = c.Label
	}

	fields := make([]domain.EmbedField, 0, len(tally.Entries))
	for _, entry := range tally.Entries {
		label := labels[entry.Value]
		if label == "" {
			label = entry.Value
		}

		fields = append(fields, domain.EmbedField{
			Name:  label,
			Value: ProgressBar(tally.Percentage(entry.Votes)),
		})
	}

	return fields
}

// ProgressBar renders an integer percentage as a ten-cell bar, one filled
// cell per full ten percent.
func ProgressBar(percentage int) string {
	filled := percentage / barCells
	if filled > barCells {
		filled = barCells
	}

	return strings.Repeat(filledCell, filled) +
		strings.Repeat(emptyCell, barCells-filled) +
		fmt.Sprintf(" %d%%", percentage)
}

// Components returns the interactive controls matching the poll stage:
// setup management buttons, one vote button per choice while voting, and
// nothing once closed.
func (r *Renderer) Components(poll *domain.Poll, choices []domain.PollChoice,
	locale string) []domain.ActionRow {
	switch poll.Stage {
	case domain.StageSetup:
		return []domain.ActionRow{{Buttons: []domain.Button{
			{
				CustomID: AddOptionID(poll.ID),
				Label:    r.loc.Translate("poll.button.add_option", locale, nil),
				Style:    domain.ButtonSecondary,
			},
			{
				CustomID: StartID(poll.ID),
				Label:    r.loc.Translate("poll.button.start", locale, nil),
				Style:    domain.ButtonPrimary,
				Disabled: len(choices) < domain.MinChoicesToStart,
			},
			{
				CustomID: CancelID(poll.ID),
				Label:    r.loc.Translate("poll.button.cancel", locale, nil),
				Style:    domain.ButtonDanger,
			},
		}}}
	case domain.StageVoting:
		var rows []domain.ActionRow
		row := domain.ActionRow{}
		for _, c := range choices {
			row.Buttons = append(row.Buttons, domain.Button{
				CustomID: VoteID(poll.ID, c.Value),
				Label:    c.Label,
				Style:    domain.ButtonPrimary,
			})
			if len(row.Buttons) == 5 {
				rows = append(rows, row)
				row = domain.ActionRow{}
			}
		}
		if len(row.Buttons) > 0 {
			rows = append(rows, row)
		}

		rows = append(rows, domain.ActionRow{Buttons: []domain.Button{{
			CustomID: StopID(poll.ID),
			Label:    r.loc.Translate("poll.button.stop", locale, nil),
			Style:    domain.ButtonDanger,
		}}})

		return rows
	default:
		return nil
	}
}

// Send delivers the presentation to the poll thread, persists the message
// reference so later updates can find it, and returns that reference.
func (r *Renderer) Send(ctx context.Context, poll *domain.Poll, locale string) (string, error) {
	choices, err := r.store.Choices(ctx, poll.ID)
	if err != nil {
		return "", err
	}

	tally, err := r.store.Tally(ctx, poll.ID)
	if err != nil {
		return "", err
	}

	messageID, err := r.sender.SendMessage(ctx, poll.ThreadID, &domain.OutboundMessage{
		Embed:      r.Build(poll, choices, tally, locale),
		Components: r.Components(poll, choices, locale),
	})
	if err != nil {
		return "", fmt.Errorf("failed to deliver poll presentation: %w", err)
	}

	return messageID, r.OnSent(ctx, poll, messageID)
}

// OnSent records the delivered message reference on the poll entity. The
// setup presentation and the final results are tracked separately.
func (r *Renderer) OnSent(ctx context.Context, poll *domain.Poll, messageID string) error {
	if poll.Stage == domain.StageClosed {
		return r.store.SetResultsMessage(ctx, poll.ID, messageID)
	}

	return r.store.SetSetupMessage(ctx, poll.ID, messageID)
}

// PublishResults posts the final tally as a fresh message in the poll
// thread once the poll is closed, and records it as the results message.
// Best-effort, like Update.
func (r *Renderer) PublishResults(ctx context.Context, pollID uuid.UUID, locale string) {
	poll, err := r.store.Poll(ctx, pollID)
	if err != nil {
		log.Error().Err(err).Str("pollId", pollID.String()).Msg("failed to load poll for results")
		return
	}

	if poll.Stage != domain.StageClosed {
		log.Debug().Str("pollId", pollID.String()).Msg("poll is not closed, no results to publish")
		return
	}

	if _, err := r.Send(ctx, poll, locale); err != nil {
		log.Error().Err(err).Str("pollId", pollID.String()).Msg("failed to publish poll results")
	}
}

// Update re-renders the presentation after a recognized mutation. Failures
// are logged and swallowed: presentation is eventually consistent with the
// entity, not transactional with it.
func (r *Renderer) Update(ctx context.Context, pollID uuid.UUID, locale string) {
	poll, err := r.store.Poll(ctx, pollID)
	if err != nil {
		log.Error().Err(err).Str("pollId", pollID.String()).Msg("failed to load poll for re-render")
		return
	}

	if poll.SetupMessageID == "" {
		log.Debug().Str("pollId", pollID.String()).Msg("no presentation message to update")
		return
	}

	choices, err := r.store.Choices(ctx, poll.ID)
	if err != nil {
		log.Error().Err(err).Str("pollId", pollID.String()).Msg("failed to load choices for re-render")
		return
	}

	tally, err := r.store.Tally(ctx, poll.ID)
	if err != nil {
		log.Error().Err(err).Str("pollId", pollID.String()).Msg("failed to load tally for re-render")
		return
	}

	err = r.sender.EditMessage(ctx, poll.ThreadID, poll.SetupMessageID, &domain.OutboundMessage{
		Embed:      r.Build(poll, choices, tally, locale),
		Components: r.Components(poll, choices, locale),
	})
	if err != nil {
		log.Error().Err(err).Str("pollId", pollID.String()).Msg("failed to update poll presentation")
	}
}
