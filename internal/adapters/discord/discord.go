package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"guildbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Dispatcher is the slice of the core the transport layer drives.
type Dispatcher interface {
	HandleCommand(ctx context.Context, ev *domain.CommandInvoked)
	HandleComponent(ctx context.Context, ev *domain.ComponentInteracted)
	HandleModal(ctx context.Context, ev *domain.ModalSubmitted)
	HandleMessage(ctx context.Context, ev *domain.ChatMessage)
	HandleVoiceState(ctx context.Context, ev *domain.PresenceChanged)
}

const pendingTTL = 15 * time.Minute

type pendingInteraction struct {
	interaction *discordgo.Interaction
	kind        discordgo.InteractionType
	seen        time.Time
}

// Bot wraps the gateway session. Inbound events are translated to domain
// events and handed to the dispatcher; interactions are parked in a pending
// map so the Sender can address follow-up responses by event ID.
type Bot struct {
	session  *discordgo.Session
	registry *domain.Registry

	mutex   sync.Mutex
	pending map[string]*pendingInteraction
}

func New(token string, registry *domain.Registry) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentMessageContent

	return &Bot{
		session:  session,
		registry: registry,
		pending:  make(map[string]*pendingInteraction),
	}, nil
}

// Start opens the gateway, performs the one-shot command registration
// (global scope once, guild scope per connected guild), and sets the
// activity text. It returns once the session is live.
func (b *Bot) Start(ctx context.Context, dispatcher Dispatcher, activity string) error {
	ready := make(chan struct{})
	b.session.AddHandlerOnce(func(_ *discordgo.Session, _ *discordgo.Ready) {
		close(ready)
	})

	b.registerHandlers(ctx, dispatcher)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway session: %w", err)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := b.declareCommands(); err != nil {
		return err
	}

	if activity != "" {
		if err := b.session.UpdateGameStatus(0, activity); err != nil {
			log.Warn().Err(err).Msg("failed to set activity")
		}
	}

	go b.evictPending(ctx)

	log.Info().Int("guilds", len(b.session.State.Guilds)).Msg("gateway session live")

	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// declareCommands pushes the registry's fingerprints to the platform. This
// is a startup-time reconciliation: commands registered later are not
// declared without a restart.
func (b *Bot) declareCommands() error {
	appID := b.session.State.User.ID

	global := toApplicationCommands(b.registry.Fingerprints(domain.ScopeGlobal))
	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, "", global); err != nil {
		return fmt.Errorf("failed to declare global commands: %w", err)
	}
	log.Info().Int("count", len(global)).Msg("declared global commands")

	perGuild := toApplicationCommands(b.registry.Fingerprints(domain.ScopeGuild))
	for _, guild := range b.session.State.Guilds {
		if _, err := b.session.ApplicationCommandBulkOverwrite(appID, guild.ID, perGuild); err != nil {
			log.Error().Err(err).Str("guildId", guild.ID).Msg("failed to declare guild commands")
			continue
		}
		log.Info().Str("guildId", guild.ID).Int("count", len(perGuild)).
			Msg("declared guild commands")
	}

	return nil
}

func (b *Bot) park(i *discordgo.Interaction, kind discordgo.InteractionType) {
	b.mutex.Lock()
	b.pending[i.ID] = &pendingInteraction{interaction: i, kind: kind, seen: time.Now()}
	b.mutex.Unlock()
}

func (b *Bot) parked(eventID string) (*pendingInteraction, error) {
	b.mutex.Lock()
	p, ok := b.pending[eventID]
	b.mutex.Unlock()

	if !ok {
		return nil, fmt.Errorf("no pending interaction for event %q", eventID)
	}

	return p, nil
}

func (b *Bot) evictPending(ctx context.Context) {
	t := time.NewTicker(pendingTTL)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			cutoff := time.Now().Add(-pendingTTL)
			b.mutex.Lock()
			for id, p := range b.pending {
				if p.seen.Before(cutoff) {
					delete(b.pending, id)
				}
			}
			b.mutex.Unlock()
		case <-ctx.Done():
			log.Debug().Msg("stopping pending interaction eviction")
			return
		}
	}
}
