package service

import (
	"context"
	"fmt"
	"time"

	"guildbot/internal/core/domain"
	"guildbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// PollService drives the poll lifecycle: setup -> voting -> closed. Every
// mutating operation checks the stage first, so a closed poll can never gain
// choices or votes regardless of which handler asked. runCtx is the process
// lifetime; armed timers outlive the request that started them and die with
// the process, not with the handler.
type PollService struct {
	store  port.PollStore
	runCtx context.Context
}

func NewPollService(ctx context.Context, store port.PollStore) *PollService {
	return &PollService{store: store, runCtx: ctx}
}

// Create persists a new poll in the setup stage, attached to its thread.
func (s *PollService) Create(ctx context.Context, name, description string, kind domain.PollKind,
	createdBy, threadID string) (*domain.Poll, error) {
	if name == "" {
		return nil, fmt.Errorf("poll name must not be empty")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate poll id: %w", err)
	}

	poll := &domain.Poll{
		ID:          id,
		Name:        name,
		Description: description,
		Kind:        kind,
		Stage:       domain.StageSetup,
		ThreadID:    threadID,
		CreatedAt:   time.Now(),
		CreatedBy:   createdBy,
	}

	if err := s.store.CreatePoll(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to save poll: %w", err)
	}

	log.Info().Str("pollId", poll.ID.String()).Str("name", name).Msg("poll created")

	return poll, nil
}

// Poll loads a poll by ID.
func (s *PollService) Poll(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	return s.store.Poll(ctx, id)
}

// PollByThread loads the poll attached to a setup thread.
func (s *PollService) PollByThread(ctx context.Context, threadID string) (*domain.Poll, error) {
	return s.store.PollByThread(ctx, threadID)
}

// Choices lists the poll's choices in creation order.
func (s *PollService) Choices(ctx context.Context, pollID uuid.UUID) ([]domain.PollChoice, error) {
	return s.store.Choices(ctx, pollID)
}

// Tally returns the current counts per choice.
func (s *PollService) Tally(ctx context.Context, pollID uuid.UUID) (domain.Tally, error) {
	return s.store.Tally(ctx, pollID)
}

// AddChoice appends a choice to a poll still in setup. The value must be
// unique within the poll; the storage constraint is the final arbiter.
func (s *PollService) AddChoice(ctx context.Context, pollID uuid.UUID,
	value, label, description string) error {
	poll, err := s.store.Poll(ctx, pollID)
	if err != nil {
		return err
	}

	if poll.Stage != domain.StageSetup {
		return fmt.Errorf("%w: cannot add a choice while %s", domain.ErrWrongStage, poll.Stage)
	}

	choice := &domain.PollChoice{
		PollID:      pollID,
		Value:       value,
		Label:       label,
		Description: description,
		CreatedAt:   time.Now(),
	}

	if err := choice.Validate(); err != nil {
		return err
	}

	if err := s.store.AddChoice(ctx, choice); err != nil {
		return err
	}

	log.Info().Str("pollId", pollID.String()).Str("value", value).Msg("choice added")

	return nil
}

// Start moves a poll from setup to voting and stamps the start time. A poll
// with fewer than two choices has nothing to decide and is rejected. A
// positive timer arms an automatic close on expiry.
func (s *PollService) Start(ctx context.Context, pollID uuid.UUID, timer time.Duration,
	onClose func(context.Context, uuid.UUID)) error {
	poll, err := s.store.Poll(ctx, pollID)
	if err != nil {
		return err
	}

	if poll.Stage != domain.StageSetup {
		return fmt.Errorf("%w: cannot start while %s", domain.ErrWrongStage, poll.Stage)
	}

	choices, err := s.store.Choices(ctx, pollID)
	if err != nil {
		return err
	}

	if len(choices) < domain.MinChoicesToStart {
		return domain.ErrNotEnoughChoices
	}

	if err := s.store.SetStage(ctx, pollID, domain.StageVoting); err != nil {
		return err
	}

	log.Info().Str("pollId", pollID.String()).Dur("timer", timer).Msg("poll started")

	if timer > 0 {
		go s.closeAfter(pollID, timer, onClose)
	}

	return nil
}

// closeAfter selects on the process-lifetime context, never the request
// context: the request ends long before the timer fires.
func (s *PollService) closeAfter(pollID uuid.UUID, timer time.Duration,
	onClose func(context.Context, uuid.UUID)) {
	t := time.NewTimer(timer)
	defer t.Stop()

	select {
	case <-t.C:
		if err := s.Close(s.runCtx, pollID); err != nil {
			log.Error().Err(err).Str("pollId", pollID.String()).Msg("timed close failed")
			return
		}
		if onClose != nil {
			onClose(s.runCtx, pollID)
		}
	case <-s.runCtx.Done():
		log.Debug().Str("pollId", pollID.String()).Msg("stopping poll timer")
	}
}

// Close moves a poll from voting to its terminal closed stage and stamps the
// end time. No further mutation is permitted afterwards.
func (s *PollService) Close(ctx context.Context, pollID uuid.UUID) error {
	poll, err := s.store.Poll(ctx, pollID)
	if err != nil {
		return err
	}

	if poll.Stage != domain.StageVoting {
		return fmt.Errorf("%w: cannot close while %s", domain.ErrWrongStage, poll.Stage)
	}

	if err := s.store.SetStage(ctx, pollID, domain.StageClosed); err != nil {
		return err
	}

	log.Info().Str("pollId", pollID.String()).Msg("poll closed")

	return nil
}

// Cancel abandons a poll that never left setup. The row is kept; closure is
// a stage transition, not removal.
func (s *PollService) Cancel(ctx context.Context, pollID uuid.UUID) error {
	poll, err := s.store.Poll(ctx, pollID)
	if err != nil {
		return err
	}

	if poll.Stage != domain.StageSetup {
		return fmt.Errorf("%w: cannot cancel while %s", domain.ErrWrongStage, poll.Stage)
	}

	if err := s.store.SetStage(ctx, pollID, domain.StageClosed); err != nil {
		return err
	}

	log.Info().Str("pollId", pollID.String()).Msg("poll cancelled during setup")

	return nil
}

// Vote records a user's vote on a poll in the voting stage. Single-choice
// polls retract the user's previous vote first, so at most one choice per
// user ever stands. Multiple-choice votes accumulate per choice and
// re-casting the same one is a no-op.
func (s *PollService) Vote(ctx context.Context, pollID uuid.UUID, userID, choiceValue string) error {
	poll, err := s.store.Poll(ctx, pollID)
	if err != nil {
		return err
	}

	if poll.Stage != domain.StageVoting {
		return fmt.Errorf("%w: cannot vote while %s", domain.ErrWrongStage, poll.Stage)
	}

	choices, err := s.store.Choices(ctx, pollID)
	if err != nil {
		return err
	}

	known := false
	for _, c := range choices {
		if c.Value == choiceValue {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", domain.ErrUnknownChoice, choiceValue)
	}

	if poll.Kind == domain.SingleChoice {
		if err := s.store.RetractVotes(ctx, pollID, userID); err != nil {
			return err
		}
	}

	vote := &domain.PollVote{
		PollID:      pollID,
		ChoiceValue: choiceValue,
		UserID:      userID,
		VotedAt:     time.Now(),
	}

	if err := s.store.CastVote(ctx, vote); err != nil {
		return err
	}

	log.Debug().Str("pollId", pollID.String()).Str("choice", choiceValue).Msg("vote cast")

	return nil
}
