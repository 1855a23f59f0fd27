package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(name string, scope Scope) *Command {
	return &Command{
		Name:        name,
		Description: "test command",
		Scope:       scope,
		Kinds:       []ArgKind{KindContext},
		Fingerprint: &Fingerprint{Name: name, Description: "test command"},
	}
}

func TestRegisterCommandRejectsDuplicateName(t *testing.T) {
	registry := &Registry{}

	require.NoError(t, registry.RegisterCommand(newTestCommand("ping", ScopeGlobal)))

	err := registry.RegisterCommand(newTestCommand("ping", ScopeGuild))
	require.ErrorIs(t, err, ErrDuplicateDescriptor)
	assert.Equal(t, 1, registry.Size())
}

func TestRegisterCommandRejectsEmptyName(t *testing.T) {
	registry := &Registry{}

	err := registry.RegisterCommand(newTestCommand("", ScopeGlobal))
	require.Error(t, err)
}

func TestRegisterCommandRejectsDuplicateKinds(t *testing.T) {
	registry := &Registry{}
	cmd := newTestCommand("ping", ScopeGlobal)
	cmd.Kinds = []ArgKind{KindUser, KindUser}

	err := registry.RegisterCommand(cmd)
	require.ErrorIs(t, err, ErrDuplicateKind)
}

func TestRegisterCommandSortsKinds(t *testing.T) {
	registry := &Registry{}
	cmd := newTestCommand("poll", ScopeGlobal)
	cmd.Kinds = []ArgKind{KindChannelID, KindOptions, KindUser}

	require.NoError(t, registry.RegisterCommand(cmd))

	assert.Equal(t, []ArgKind{KindOptions, KindUser, KindChannelID}, cmd.Kinds)
}

func TestRegisterListenerRejectsDuplicateNameAndTrigger(t *testing.T) {
	registry := &Registry{}

	require.NoError(t, registry.RegisterListener(&Listener{Name: "love", Trigger: TriggerMessage}))

	err := registry.RegisterListener(&Listener{Name: "love", Trigger: TriggerMessage})
	require.ErrorIs(t, err, ErrDuplicateDescriptor)

	// same name on a different trigger is a distinct subscription
	require.NoError(t, registry.RegisterListener(&Listener{Name: "love", Trigger: TriggerReaction}))
}

func TestCommandLookup(t *testing.T) {
	registry := &Registry{}
	require.NoError(t, registry.RegisterCommand(newTestCommand("ping", ScopeGlobal)))

	cmd, err := registry.Command("ping")
	require.NoError(t, err)
	assert.Equal(t, "ping", cmd.Name)

	_, err = registry.Command("pong")
	require.ErrorIs(t, err, ErrCommandNotFound)
}

func TestListenersForFiltersByTrigger(t *testing.T) {
	registry := &Registry{}
	require.NoError(t, registry.RegisterListener(&Listener{Name: "love", Trigger: TriggerMessage}))
	require.NoError(t, registry.RegisterListener(&Listener{Name: "greet", Trigger: TriggerVoiceState}))
	require.NoError(t, registry.RegisterListener(&Listener{Name: "hello", Trigger: TriggerMessage}))

	messages := registry.ListenersFor(TriggerMessage)
	require.Len(t, messages, 2)
	assert.Equal(t, "love", messages[0].Name)
	assert.Equal(t, "hello", messages[1].Name)

	assert.Empty(t, registry.ListenersFor(TriggerModal))
}

func TestListenerByPrefix(t *testing.T) {
	registry := &Registry{}
	require.NoError(t, registry.RegisterListener(&Listener{Name: "poll:", Trigger: TriggerComponent}))
	require.NoError(t, registry.RegisterListener(&Listener{Name: "poll-option:", Trigger: TriggerModal}))

	l, err := registry.ListenerByPrefix(TriggerComponent, "poll:vote:abc:pizza")
	require.NoError(t, err)
	assert.Equal(t, "poll:", l.Name)

	// the component listener must not shadow the modal one
	l, err = registry.ListenerByPrefix(TriggerModal, "poll-option:abc")
	require.NoError(t, err)
	assert.Equal(t, "poll-option:", l.Name)

	_, err = registry.ListenerByPrefix(TriggerComponent, "giveaway:enter")
	require.ErrorIs(t, err, ErrListenerNotFound)
}

func TestFingerprintsPartitionByScope(t *testing.T) {
	registry := &Registry{}
	require.NoError(t, registry.RegisterCommand(newTestCommand("ping", ScopeGlobal)))
	require.NoError(t, registry.RegisterCommand(newTestCommand("poll", ScopeGuild)))

	internal := newTestCommand("maintenance", ScopeGuild)
	internal.Fingerprint = nil
	require.NoError(t, registry.RegisterCommand(internal))

	global := registry.Fingerprints(ScopeGlobal)
	require.Len(t, global, 1)
	assert.Equal(t, "ping", global[0].Name)

	guild := registry.Fingerprints(ScopeGuild)
	require.Len(t, guild, 1)
	assert.Equal(t, "poll", guild[0].Name)
}
