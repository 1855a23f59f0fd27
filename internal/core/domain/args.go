package domain

import (
	"fmt"
	"sort"

	"github.com/gofrs/uuid/v5"
)

// ArgKind identifies one category of contextual value a handler can request.
// The numeric order is significant: declared kinds are stored sorted by it so
// bag construction and diagnostics stay deterministic.
type ArgKind int

const (
	KindNone ArgKind = iota
	KindOptions
	KindContext
	KindGuild
	KindUser
	KindInteractionID
	KindChannelID
	KindModalSubmitData
	KindMessage
	KindPollID
	KindPollStage
)

func (k ArgKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindOptions:
		return "options"
	case KindContext:
		return "context"
	case KindGuild:
		return "guild"
	case KindUser:
		return "user"
	case KindInteractionID:
		return "interaction_id"
	case KindChannelID:
		return "channel_id"
	case KindModalSubmitData:
		return "modal_submit_data"
	case KindMessage:
		return "message"
	case KindPollID:
		return "poll_id"
	case KindPollStage:
		return "poll_stage"
	default:
		return fmt.Sprintf("arg_kind(%d)", int(k))
	}
}

// SortKinds returns a sorted copy of kinds, or an error if a kind appears
// more than once. Duplicate declarations are a wiring defect, not a runtime
// condition.
func SortKinds(kinds []ArgKind) ([]ArgKind, error) {
	sorted := make([]ArgKind, len(kinds))
	copy(sorted, kinds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKind, sorted[i])
		}
	}

	return sorted, nil
}

// Ctx carries the ambient metadata of the inbound event: the platform event
// ID used to address responses, the component or modal custom ID when
// present, and the resolved locale for the originating guild.
type Ctx struct {
	EventID  string
	CustomID string
	Locale   string
}

// ModalData is the submitted content of a modal, keyed by input custom ID.
type ModalData struct {
	CustomID string
	Fields   map[string]string
}

// Value is a closed sum over every payload a handler can request. Exactly
// one payload field is populated, determined by the kind.
type Value struct {
	kind      ArgKind
	options   []Option
	ctx       *Ctx
	guild     *Guild
	user      *User
	eventID   string
	channelID string
	modal     *ModalData
	message   *ChatMessage
	pollID    uuid.UUID
	pollStage PollStage
}

func (v Value) Kind() ArgKind { return v.kind }

func OptionsValue(options []Option) Value { return Value{kind: KindOptions, options: options} }
func CtxValue(ctx *Ctx) Value             { return Value{kind: KindContext, ctx: ctx} }
func GuildValue(guild *Guild) Value       { return Value{kind: KindGuild, guild: guild} }
func UserValue(user *User) Value          { return Value{kind: KindUser, user: user} }
func InteractionIDValue(id string) Value  { return Value{kind: KindInteractionID, eventID: id} }
func ChannelIDValue(id string) Value      { return Value{kind: KindChannelID, channelID: id} }
func ModalValue(data *ModalData) Value    { return Value{kind: KindModalSubmitData, modal: data} }
func MessageValue(msg *ChatMessage) Value { return Value{kind: KindMessage, message: msg} }
func PollIDValue(id uuid.UUID) Value      { return Value{kind: KindPollID, pollID: id} }
func PollStageValue(s PollStage) Value    { return Value{kind: KindPollStage, pollStage: s} }

// Bag is the per-event capability container. It is assembled once by the
// transport-facing layer, narrowed per handler, and discarded after the
// invocation. It is not safe for concurrent mutation.
type Bag struct {
	values map[ArgKind]Value
}

func NewBag(values ...Value) *Bag {
	b := &Bag{values: make(map[ArgKind]Value, len(values))}
	for _, v := range values {
		b.Set(v)
	}

	return b
}

func (b *Bag) Set(v Value) {
	if v.kind == KindNone {
		return
	}
	b.values[v.kind] = v
}

func (b *Bag) Has(kind ArgKind) bool {
	_, ok := b.values[kind]
	return ok
}

func (b *Bag) Len() int { return len(b.values) }

// Kinds returns the kinds present in the bag in declaration order.
func (b *Bag) Kinds() []ArgKind {
	kinds := make([]ArgKind, 0, len(b.values))
	for k := range b.values {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	return kinds
}

// Narrow produces a sub-bag containing exactly the requested kinds. A
// requested kind missing from the bag is a wiring defect and fails loudly,
// never substitutes a default. KindNone requests nothing and is skipped.
func (b *Bag) Narrow(kinds []ArgKind) (*Bag, error) {
	narrowed := &Bag{values: make(map[ArgKind]Value, len(kinds))}

	for _, kind := range kinds {
		if kind == KindNone {
			continue
		}

		v, ok := b.values[kind]
		if !ok {
			return nil, &MissingKindError{Kind: kind}
		}

		narrowed.values[kind] = v
	}

	return narrowed, nil
}

func (b *Bag) lookup(kind ArgKind) (Value, error) {
	v, ok := b.values[kind]
	if !ok {
		return Value{}, &MissingKindError{Kind: kind}
	}

	return v, nil
}

func (b *Bag) Options() ([]Option, error) {
	v, err := b.lookup(KindOptions)
	return v.options, err
}

func (b *Bag) Ctx() (*Ctx, error) {
	v, err := b.lookup(KindContext)
	return v.ctx, err
}

func (b *Bag) Guild() (*Guild, error) {
	v, err := b.lookup(KindGuild)
	return v.guild, err
}

func (b *Bag) User() (*User, error) {
	v, err := b.lookup(KindUser)
	return v.user, err
}

func (b *Bag) InteractionID() (string, error) {
	v, err := b.lookup(KindInteractionID)
	return v.eventID, err
}

func (b *Bag) ChannelID() (string, error) {
	v, err := b.lookup(KindChannelID)
	return v.channelID, err
}

func (b *Bag) Modal() (*ModalData, error) {
	v, err := b.lookup(KindModalSubmitData)
	return v.modal, err
}

func (b *Bag) Message() (*ChatMessage, error) {
	v, err := b.lookup(KindMessage)
	return v.message, err
}

func (b *Bag) PollID() (uuid.UUID, error) {
	v, err := b.lookup(KindPollID)
	return v.pollID, err
}

func (b *Bag) PollStage() (PollStage, error) {
	v, err := b.lookup(KindPollStage)
	return v.pollStage, err
}

// MissingKindError reports a handler requesting a kind the ambient bag does
// not carry, e.g. a modal-only kind declared by a message listener.
type MissingKindError struct {
	Kind ArgKind
}

func (e *MissingKindError) Error() string {
	return fmt.Sprintf("capability bag is missing kind %s", e.Kind)
}
