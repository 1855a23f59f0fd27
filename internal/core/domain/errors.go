package domain

import "errors"

var (
	ErrDuplicateKind       = errors.New("duplicate argument kind in declaration")
	ErrDuplicateDescriptor = errors.New("descriptor name already registered")
	ErrCommandNotFound     = errors.New("command not found")
	ErrListenerNotFound    = errors.New("listener not found")

	ErrPollNotFound       = errors.New("poll not found")
	ErrDuplicateChoice    = errors.New("choice value already exists for this poll")
	ErrDuplicateVote      = errors.New("vote already recorded")
	ErrUnknownChoice      = errors.New("unknown choice value")
	ErrWrongStage         = errors.New("operation not permitted in current poll stage")
	ErrNotEnoughChoices   = errors.New("poll needs at least two choices to start")
	ErrLabelTooLong       = errors.New("choice label exceeds maximum length")
	ErrDescriptionTooLong = errors.New("choice description exceeds maximum length")
)
