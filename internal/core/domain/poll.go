package domain

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
)

type PollKind string

const (
	SingleChoice   PollKind = "single_choice"
	MultipleChoice PollKind = "multiple_choice"
)

func ParsePollKind(s string) (PollKind, error) {
	switch PollKind(s) {
	case SingleChoice, MultipleChoice:
		return PollKind(s), nil
	default:
		return "", fmt.Errorf("invalid poll kind %q", s)
	}
}

// PollStage is the position of a poll in its lifecycle. The machine moves
// strictly forward: setup -> voting -> closed.
type PollStage string

const (
	StageSetup  PollStage = "setup"
	StageVoting PollStage = "voting"
	StageClosed PollStage = "closed"
)

const (
	MaxChoiceLabelLen       = 25
	MaxChoiceDescriptionLen = 365
	MinChoicesToStart       = 2
)

// Poll is the persisted lifecycle entity. Closure is a stage transition,
// never a row deletion.
type Poll struct {
	ID               uuid.UUID
	Name             string
	Description      string
	Kind             PollKind
	Stage            PollStage
	ThreadID         string
	SetupMessageID   string
	ResultsMessageID string
	StartedAt        *time.Time
	EndedAt          *time.Time
	CreatedAt        time.Time
	CreatedBy        string
}

// PollChoice belongs to exactly one poll; Value is the stable machine
// identifier, unique within the poll.
type PollChoice struct {
	PollID      uuid.UUID
	Value       string
	Label       string
	Description string
	CreatedAt   time.Time
}

// Validate enforces the construction limits on a choice. Uniqueness of the
// value is enforced at the storage boundary.
func (c *PollChoice) Validate() error {
	if c.Value == "" {
		return fmt.Errorf("choice value must not be empty")
	}
	if c.Label == "" {
		return fmt.Errorf("choice label must not be empty")
	}
	if len(c.Label) > MaxChoiceLabelLen {
		return fmt.Errorf("%w: %d > %d", ErrLabelTooLong, len(c.Label), MaxChoiceLabelLen)
	}
	if len(c.Description) > MaxChoiceDescriptionLen {
		return fmt.Errorf("%w: %d > %d", ErrDescriptionTooLong, len(c.Description), MaxChoiceDescriptionLen)
	}

	return nil
}

// PollVote is one (user, poll, choice) row. The composite key is the
// idempotence guarantee: casting the same vote twice stays one row.
type PollVote struct {
	PollID      uuid.UUID
	ChoiceValue string
	UserID      string
	VotedAt     time.Time
}

// TallyEntry is the live count for one choice, in choice creation order.
type TallyEntry struct {
	Value string
	Label string
	Votes int
}

type Tally struct {
	Entries []TallyEntry
	Total   int
}

// Percentage returns the integer share of the total for the given count,
// rounded half away from zero. A zero total yields zero for every entry so
// an empty poll renders without a division fault.
func (t Tally) Percentage(votes int) int {
	if t.Total == 0 {
		return 0
	}

	return int(float64(votes)/float64(t.Total)*100 + 0.5)
}
