package port

import (
	"context"

	"guildbot/internal/core/domain"

	"github.com/gofrs/uuid/v5"
)

// PollStore is the system of record for the poll lifecycle. Constraint
// violations surface as the matching domain sentinel errors; the composite
// vote key makes repeated identical casts a no-op.
type PollStore interface {
	CreatePoll(ctx context.Context, poll *domain.Poll) error
	Poll(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	// PollByThread resolves the poll attached to a setup thread.
	PollByThread(ctx context.Context, threadID string) (*domain.Poll, error)
	SetStage(ctx context.Context, id uuid.UUID, stage domain.PollStage) error
	SetSetupMessage(ctx context.Context, id uuid.UUID, messageID string) error
	SetResultsMessage(ctx context.Context, id uuid.UUID, messageID string) error

	AddChoice(ctx context.Context, choice *domain.PollChoice) error
	Choices(ctx context.Context, pollID uuid.UUID) ([]domain.PollChoice, error)

	// CastVote records a vote; an identical existing row is left untouched.
	CastVote(ctx context.Context, vote *domain.PollVote) error
	// RetractVotes removes every vote the user holds on the poll.
	RetractVotes(ctx context.Context, pollID uuid.UUID, userID string) error
	Votes(ctx context.Context, pollID uuid.UUID) ([]domain.PollVote, error)
	// Tally counts votes per choice in choice creation order.
	Tally(ctx context.Context, pollID uuid.UUID) (domain.Tally, error)
}

// GuildStore persists per-guild preferences.
type GuildStore interface {
	Locale(ctx context.Context, guildID string) (string, error)
	SetLocale(ctx context.Context, guildID, locale string) error
}
