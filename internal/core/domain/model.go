package domain

// User is the platform user attached to an inbound event.
type User struct {
	ID       string
	Username string
	Bot      bool
}

// Guild is the per-installation scope of the bot. Commands registered with
// ScopeGuild are declared once per guild; ScopeGlobal commands once overall.
type Guild struct {
	ID              string
	Name            string
	SystemChannelID string
}

// Option is one parsed command option. Subcommand invocations arrive as an
// option carrying nested options.
type Option struct {
	Name    string
	Value   string
	Options []Option
}

// FindOption returns the option with the given name, or nil.
func FindOption(options []Option, name string) *Option {
	for i := range options {
		if options[i].Name == name {
			return &options[i]
		}
	}

	return nil
}

// CommandInvoked is a slash-command invocation.
type CommandInvoked struct {
	EventID   string
	Name      string
	Options   []Option
	User      *User
	Guild     *Guild
	ChannelID string
}

// ComponentInteracted is a click on a message component (button, select).
type ComponentInteracted struct {
	EventID   string
	CustomID  string
	MessageID string
	User      *User
	Guild     *Guild
	ChannelID string
}

// ModalSubmitted is a completed modal form.
type ModalSubmitted struct {
	EventID   string
	CustomID  string
	Fields    map[string]string
	User      *User
	Guild     *Guild
	ChannelID string
}

// ChatMessage is a plain message observed in a channel.
type ChatMessage struct {
	MessageID string
	ChannelID string
	Content   string
	Author    *User
	Guild     *Guild
}

// PresenceChanged reports a user moving between voice channels. Either
// channel ID may be empty when the user joined or left entirely.
type PresenceChanged struct {
	User         *User
	Guild        *Guild
	OldChannelID string
	NewChannelID string
}

// Embed is the platform-neutral structured presentation a handler can return.
type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
	Footer      string
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota + 1
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

type Button struct {
	CustomID string
	Label    string
	Style    ButtonStyle
	Disabled bool
}

type ActionRow struct {
	Buttons []Button
}

// OutboundMessage is a raw platform message: free text, an embed, components,
// in any combination.
type OutboundMessage struct {
	Content    string
	Embed      *Embed
	Components []ActionRow
}

// Modal describes a form the bot asks the platform to present.
type Modal struct {
	CustomID string
	Title    string
	Inputs   []ModalInput
}

type ModalInput struct {
	CustomID    string
	Label       string
	Placeholder string
	Required    bool
	MinLength   int
	MaxLength   int
	Paragraph   bool
}

// ResponseKind discriminates the outcome a command handler returns.
type ResponseKind int

const (
	// ResponseNone deletes the deferred placeholder: a deliberate
	// "no comment", not an error.
	ResponseNone ResponseKind = iota
	ResponseText
	ResponseEmbed
	ResponseMessage
)

// Response is the handler outcome the dispatcher realizes into a platform
// action.
type Response struct {
	Kind    ResponseKind
	Text    string
	Embed   *Embed
	Message *OutboundMessage
}

func TextResponse(text string) *Response   { return &Response{Kind: ResponseText, Text: text} }
func EmbedResponse(embed *Embed) *Response { return &Response{Kind: ResponseEmbed, Embed: embed} }
func MessageResponse(msg *OutboundMessage) *Response {
	return &Response{Kind: ResponseMessage, Message: msg}
}
func NoResponse() *Response { return &Response{Kind: ResponseNone} }
