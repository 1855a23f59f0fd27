package domain

import "context"

// Scope classifies where a command is declared on the platform.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeGuild
)

func (s Scope) String() string {
	if s == ScopeGuild {
		return "guild"
	}
	return "global"
}

// Trigger classifies which event stream a listener subscribes to.
type Trigger int

const (
	TriggerMessage Trigger = iota
	TriggerReaction
	TriggerVoiceState
	TriggerModal
	TriggerComponent
)

func (t Trigger) String() string {
	switch t {
	case TriggerMessage:
		return "message"
	case TriggerReaction:
		return "reaction"
	case TriggerVoiceState:
		return "voice_state"
	case TriggerModal:
		return "modal"
	case TriggerComponent:
		return "component"
	default:
		return "unknown"
	}
}

// OptionType mirrors the platform's command option types, as far as this bot
// uses them.
type OptionType int

const (
	OptionString OptionType = iota + 1
	OptionInteger
	OptionSubCommand
)

// Fingerprint is the serialized payload used to declare a command to the
// platform at startup. Listener descriptors carry none.
type Fingerprint struct {
	Name        string
	Description string
	Options     []FingerprintOption
}

type FingerprintOption struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
	Choices     []FingerprintChoice
	Options     []FingerprintOption
}

type FingerprintChoice struct {
	Name  string
	Value string
}

// CommandRunner executes a command against its narrowed capability bag and
// yields the outcome the dispatcher realizes into a platform action.
type CommandRunner func(ctx context.Context, bag *Bag) (*Response, error)

// ListenerRunner executes a listener. Listeners act through their injected
// collaborators and produce no dispatcher-visible response.
type ListenerRunner func(ctx context.Context, bag *Bag) error

// Command is the immutable registration record for one slash command.
// Construct via the Registry; never mutate after registration.
type Command struct {
	Name        string
	Description string
	Scope       Scope
	Kinds       []ArgKind
	Run         CommandRunner
	Fingerprint *Fingerprint
}

// Listener is the immutable registration record for one event listener. For
// modal and component listeners the name doubles as the custom-id prefix the
// dispatcher matches against; for message listeners it is the chat trigger
// word.
type Listener struct {
	Name        string
	Description string
	Trigger     Trigger
	Kinds       []ArgKind
	Run         ListenerRunner
}
