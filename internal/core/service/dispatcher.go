package service

import (
	"context"
	"strings"
	"time"

	"guildbot/internal/core/domain"
	"guildbot/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Dispatcher routes inbound platform events to registered descriptors. Each
// event runs through the same sequence: resolve the descriptor, acknowledge
// best-effort, narrow the ambient capability bag to the declared kinds,
// invoke, and realize the outcome into a platform action. Events are
// independent; the dispatcher holds no cross-event mutable state.
type Dispatcher struct {
	registry *domain.Registry
	sender   port.Sender
	guilds   port.GuildStore
	awaiter  *Awaiter
	loc      port.Localizer
	fallback string
	timeout  time.Duration
}

func NewDispatcher(registry *domain.Registry, sender port.Sender, guilds port.GuildStore,
	awaiter *Awaiter, loc port.Localizer, fallbackLocale string, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		sender:   sender,
		guilds:   guilds,
		awaiter:  awaiter,
		loc:      loc,
		fallback: fallbackLocale,
		timeout:  timeout,
	}
}

func (d *Dispatcher) locale(ctx context.Context, guild *domain.Guild) string {
	if guild == nil {
		return d.fallback
	}

	locale, err := d.guilds.Locale(ctx, guild.ID)
	if err != nil || locale == "" {
		return d.fallback
	}

	return locale
}

// HandleCommand dispatches a slash-command invocation.
func (d *Dispatcher) HandleCommand(ctx context.Context, ev *domain.CommandInvoked) {
	l := log.With().
		Str("eventId", ev.EventID).
		Str("command", ev.Name).
		Logger()

	cmd, err := d.registry.Command(ev.Name)
	if err != nil {
		l.Debug().Msg("no handler for command")
		return
	}

	if err := d.sender.DeferAck(ctx, ev.EventID); err != nil {
		l.Warn().Err(err).Msg("failed to defer acknowledgement")
	}

	locale := d.locale(ctx, ev.Guild)

	bag := domain.NewBag(
		domain.CtxValue(&domain.Ctx{EventID: ev.EventID, Locale: locale}),
		domain.OptionsValue(ev.Options),
		domain.GuildValue(ev.Guild),
		domain.UserValue(ev.User),
		domain.InteractionIDValue(ev.EventID),
		domain.ChannelIDValue(ev.ChannelID),
	)

	narrowed, err := bag.Narrow(cmd.Kinds)
	if err != nil {
		l.Error().Err(err).Msg("failed to narrow capability bag")
		d.failed(ctx, ev.EventID, locale, l)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	l.Info().Msg("handling command")

	response, err := cmd.Run(ctx, narrowed)
	if err != nil {
		l.Error().Err(err).Msg("command handler failed")
		d.failed(ctx, ev.EventID, locale, l)
		return
	}

	d.realize(ctx, ev.EventID, response, l)
}

// failed leaves the deferred placeholder in an error state instead of
// spinning forever. The edit runs on a detached context: the failure may be
// the handler's own deadline.
func (d *Dispatcher) failed(ctx context.Context, eventID, locale string, l zerolog.Logger) {
	resp := domain.TextResponse(d.loc.Translate("commands.error.generic", locale, nil))
	if err := d.sender.EditResponse(context.WithoutCancel(ctx), eventID, resp); err != nil {
		l.Warn().Err(err).Msg("failed to edit placeholder with error notice")
	}
}

// HandleComponent dispatches a component interaction. A pending setup wait
// keyed by the interacted message is released first, then the interaction is
// routed by custom-id prefix.
func (d *Dispatcher) HandleComponent(ctx context.Context, ev *domain.ComponentInteracted) {
	l := log.With().
		Str("eventId", ev.EventID).
		Str("customId", ev.CustomID).
		Logger()

	if d.awaiter != nil && d.awaiter.Resolve(ev.MessageID) {
		l.Debug().Str("messageId", ev.MessageID).Msg("released pending setup wait")
	}

	listener, err := d.registry.ListenerByPrefix(domain.TriggerComponent, ev.CustomID)
	if err != nil {
		l.Debug().Msg("no handler for component interaction")
		return
	}

	bag := domain.NewBag(
		domain.CtxValue(&domain.Ctx{
			EventID:  ev.EventID,
			CustomID: ev.CustomID,
			Locale:   d.locale(ctx, ev.Guild),
		}),
		domain.GuildValue(ev.Guild),
		domain.UserValue(ev.User),
		domain.InteractionIDValue(ev.EventID),
		domain.ChannelIDValue(ev.ChannelID),
	)

	d.invokeListener(ctx, listener, bag, l)
}

// HandleModal dispatches a modal submission by custom-id prefix.
func (d *Dispatcher) HandleModal(ctx context.Context, ev *domain.ModalSubmitted) {
	l := log.With().
		Str("eventId", ev.EventID).
		Str("customId", ev.CustomID).
		Logger()

	listener, err := d.registry.ListenerByPrefix(domain.TriggerModal, ev.CustomID)
	if err != nil {
		l.Debug().Msg("no handler for modal submission")
		return
	}

	bag := domain.NewBag(
		domain.CtxValue(&domain.Ctx{
			EventID:  ev.EventID,
			CustomID: ev.CustomID,
			Locale:   d.locale(ctx, ev.Guild),
		}),
		domain.GuildValue(ev.Guild),
		domain.UserValue(ev.User),
		domain.InteractionIDValue(ev.EventID),
		domain.ChannelIDValue(ev.ChannelID),
		domain.ModalValue(&domain.ModalData{CustomID: ev.CustomID, Fields: ev.Fields}),
	)

	d.invokeListener(ctx, listener, bag, l)
}

// HandleMessage fans a chat message out to every message listener whose
// trigger word opens it.
func (d *Dispatcher) HandleMessage(ctx context.Context, ev *domain.ChatMessage) {
	if ev.Author == nil || ev.Author.Bot {
		return
	}

	for _, listener := range d.registry.ListenersFor(domain.TriggerMessage) {
		// match the whole trigger word, not a prefix of a longer one
		trigger := "!" + listener.Name
		if ev.Content != trigger && !strings.HasPrefix(ev.Content, trigger+" ") {
			continue
		}

		l := log.With().
			Str("messageId", ev.MessageID).
			Str("listener", listener.Name).
			Logger()

		bag := domain.NewBag(
			domain.CtxValue(&domain.Ctx{EventID: ev.MessageID, Locale: d.locale(ctx, ev.Guild)}),
			domain.GuildValue(ev.Guild),
			domain.UserValue(ev.Author),
			domain.ChannelIDValue(ev.ChannelID),
			domain.MessageValue(ev),
		)

		d.invokeListener(ctx, listener, bag, l)
	}
}

// HandleVoiceState dispatches voice channel joins. Moves, disconnects and
// bot state changes are dropped here so listeners only see fresh joins.
func (d *Dispatcher) HandleVoiceState(ctx context.Context, ev *domain.PresenceChanged) {
	if ev.User == nil || ev.User.Bot {
		return
	}
	if ev.NewChannelID == "" || ev.OldChannelID != "" {
		return
	}

	for _, listener := range d.registry.ListenersFor(domain.TriggerVoiceState) {
		l := log.With().
			Str("channelId", ev.NewChannelID).
			Str("listener", listener.Name).
			Logger()

		bag := domain.NewBag(
			domain.CtxValue(&domain.Ctx{Locale: d.locale(ctx, ev.Guild)}),
			domain.GuildValue(ev.Guild),
			domain.UserValue(ev.User),
			domain.ChannelIDValue(ev.NewChannelID),
		)

		d.invokeListener(ctx, listener, bag, l)
	}
}

func (d *Dispatcher) invokeListener(ctx context.Context, listener *domain.Listener,
	bag *domain.Bag, l zerolog.Logger) {
	narrowed, err := bag.Narrow(listener.Kinds)
	if err != nil {
		l.Error().Err(err).Msg("failed to narrow capability bag")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := listener.Run(ctx, narrowed); err != nil {
		l.Error().Err(err).Msg("listener failed")
	}
}

func (d *Dispatcher) realize(ctx context.Context, eventID string, response *domain.Response,
	l zerolog.Logger) {
	if response == nil {
		response = domain.NoResponse()
	}

	switch response.Kind {
	case domain.ResponseNone:
		if err := d.sender.DeleteResponse(ctx, eventID); err != nil {
			l.Warn().Err(err).Msg("failed to delete deferred response")
		}
	default:
		if err := d.sender.EditResponse(ctx, eventID, response); err != nil {
			l.Error().Err(err).Msg("failed to edit deferred response")
		}
	}
}
