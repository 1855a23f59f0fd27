package domain

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Registry is the append-only collection of command and listener
// descriptors. It is populated once at startup and read-only afterwards, so
// concurrent dispatch needs no locking.
type Registry struct {
	commands  []*Command
	listeners []*Listener
}

// RegisterCommand validates and appends a command descriptor. Duplicate
// names and duplicate declared kinds are rejected: both are wiring defects
// that would otherwise surface as silent last-wins lookups.
func (r *Registry) RegisterCommand(cmd *Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("command name must not be empty")
	}

	for _, existing := range r.commands {
		if existing.Name == cmd.Name {
			return fmt.Errorf("%w: command %q", ErrDuplicateDescriptor, cmd.Name)
		}
	}

	sorted, err := SortKinds(cmd.Kinds)
	if err != nil {
		return fmt.Errorf("command %q: %w", cmd.Name, err)
	}
	cmd.Kinds = sorted

	log.Info().Str("command", cmd.Name).Str("scope", cmd.Scope.String()).
		Msg("adding command to registry")
	r.commands = append(r.commands, cmd)

	return nil
}

// RegisterListener validates and appends a listener descriptor.
func (r *Registry) RegisterListener(l *Listener) error {
	if l.Name == "" {
		return fmt.Errorf("listener name must not be empty")
	}

	for _, existing := range r.listeners {
		if existing.Name == l.Name && existing.Trigger == l.Trigger {
			return fmt.Errorf("%w: listener %q", ErrDuplicateDescriptor, l.Name)
		}
	}

	sorted, err := SortKinds(l.Kinds)
	if err != nil {
		return fmt.Errorf("listener %q: %w", l.Name, err)
	}
	l.Kinds = sorted

	log.Info().Str("listener", l.Name).Str("trigger", l.Trigger.String()).
		Msg("adding listener to registry")
	r.listeners = append(r.listeners, l)

	return nil
}

// Command returns the command descriptor with the given name.
func (r *Registry) Command(name string) (*Command, error) {
	for _, cmd := range r.commands {
		if cmd.Name == name {
			return cmd, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrCommandNotFound, name)
}

// Commands returns every registered command in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)

	return out
}

// ListenersFor returns all listeners subscribed to the given trigger, in
// registration order.
func (r *Registry) ListenersFor(trigger Trigger) []*Listener {
	var out []*Listener
	for _, l := range r.listeners {
		if l.Trigger == trigger {
			out = append(out, l)
		}
	}

	return out
}

// ListenerByPrefix resolves a component or modal custom ID to the listener
// whose name prefixes it.
func (r *Registry) ListenerByPrefix(trigger Trigger, customID string) (*Listener, error) {
	for _, l := range r.listeners {
		if l.Trigger == trigger && strings.HasPrefix(customID, l.Name) {
			return l, nil
		}
	}

	return nil, fmt.Errorf("%w: custom id %q", ErrListenerNotFound, customID)
}

// Fingerprints exports the platform registration payload of every command in
// the given scope. Commands without a fingerprint are not externally
// declarable and are excluded.
func (r *Registry) Fingerprints(scope Scope) []*Fingerprint {
	var out []*Fingerprint
	for _, cmd := range r.commands {
		if cmd.Scope == scope && cmd.Fingerprint != nil {
			out = append(out, cmd.Fingerprint)
		}
	}

	return out
}

// Size reports the total number of registered descriptors.
func (r *Registry) Size() int {
	return len(r.commands) + len(r.listeners)
}
