package port

import (
	"context"

	"guildbot/internal/core/domain"
)

type Sender interface {
	// DeferAck shows the platform's "processing" indicator for the event.
	// Best-effort: callers log a failure and continue.
	DeferAck(ctx context.Context, eventID string) error
	// EditResponse replaces the deferred placeholder with the handler outcome.
	EditResponse(ctx context.Context, eventID string, response *domain.Response) error
	// DeleteResponse removes the deferred placeholder.
	DeleteResponse(ctx context.Context, eventID string) error
	// SendMessage posts a message to a channel and returns the new message ID.
	SendMessage(ctx context.Context, channelID string, message *domain.OutboundMessage) (string, error)
	// EditMessage replaces the content of an existing message.
	EditMessage(ctx context.Context, channelID, messageID string, message *domain.OutboundMessage) error
	// CreateThread opens a thread under the channel and returns its ID.
	CreateThread(ctx context.Context, channelID, name string) (string, error)
	// OpenModal presents a form in response to a component interaction.
	OpenModal(ctx context.Context, eventID string, modal *domain.Modal) error
	// SetActivity updates the bot's presence text.
	SetActivity(ctx context.Context, text string) error
}
