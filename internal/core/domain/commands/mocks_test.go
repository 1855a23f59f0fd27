package commands

import (
	"context"
	"fmt"
	"sync"

	"guildbot/internal/core/domain"

	"github.com/gofrs/uuid/v5"
)

// MockSender records outbound platform calls for assertions.
type MockSender struct {
	mutex sync.Mutex

	DeferredIDs  []string
	SentMessages []*domain.OutboundMessage
	SentChannels []string
	EditedIDs    []string
	OpenedModals []*domain.Modal
	ThreadNames  []string

	NextMessageID string
	NextThreadID  string
}

func NewMockSender() *MockSender {
	return &MockSender{NextMessageID: "message-1", NextThreadID: "thread-1"}
}

func (m *MockSender) DeferAck(_ context.Context, eventID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.DeferredIDs = append(m.DeferredIDs, eventID)
	return nil
}

func (m *MockSender) EditResponse(_ context.Context, _ string, _ *domain.Response) error {
	return nil
}

func (m *MockSender) DeleteResponse(_ context.Context, _ string) error { return nil }

func (m *MockSender) SendMessage(_ context.Context, channelID string,
	message *domain.OutboundMessage) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.SentChannels = append(m.SentChannels, channelID)
	m.SentMessages = append(m.SentMessages, message)
	return m.NextMessageID, nil
}

func (m *MockSender) EditMessage(_ context.Context, _, messageID string,
	_ *domain.OutboundMessage) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.EditedIDs = append(m.EditedIDs, messageID)
	return nil
}

func (m *MockSender) CreateThread(_ context.Context, _, name string) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.ThreadNames = append(m.ThreadNames, name)
	return m.NextThreadID, nil
}

func (m *MockSender) OpenModal(_ context.Context, _ string, modal *domain.Modal) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.OpenedModals = append(m.OpenedModals, modal)
	return nil
}

func (m *MockSender) SetActivity(_ context.Context, _ string) error { return nil }

// MemoryPollStore mirrors the relational constraints in memory.
type MemoryPollStore struct {
	mutex   sync.Mutex
	polls   map[uuid.UUID]*domain.Poll
	choices map[uuid.UUID][]domain.PollChoice
	votes   map[uuid.UUID][]domain.PollVote
}

func NewMemoryPollStore() *MemoryPollStore {
	return &MemoryPollStore{
		polls:   make(map[uuid.UUID]*domain.Poll),
		choices: make(map[uuid.UUID][]domain.PollChoice),
		votes:   make(map[uuid.UUID][]domain.PollVote),
	}
}

func (s *MemoryPollStore) CreatePoll(_ context.Context, poll *domain.Poll) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	copied := *poll
	s.polls[poll.ID] = &copied
	return nil
}

func (s *MemoryPollStore) Poll(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	poll, ok := s.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	copied := *poll
	return &copied, nil
}

func (s *MemoryPollStore) PollByThread(_ context.Context, threadID string) (*domain.Poll, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, poll := range s.polls {
		if poll.ThreadID == threadID {
			copied := *poll
			return &copied, nil
		}
	}
	return nil, domain.ErrPollNotFound
}

func (s *MemoryPollStore) SetStage(_ context.Context, id uuid.UUID, stage domain.PollStage) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	poll, ok := s.polls[id]
	if !ok {
		return domain.ErrPollNotFound
	}
	poll.Stage = stage
	return nil
}

func (s *MemoryPollStore) SetSetupMessage(_ context.Context, id uuid.UUID, messageID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	poll, ok := s.polls[id]
	if !ok {
		return domain.ErrPollNotFound
	}
	poll.SetupMessageID = messageID
	return nil
}

func (s *MemoryPollStore) SetResultsMessage(_ context.Context, id uuid.UUID, messageID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	poll, ok := s.polls[id]
	if !ok {
		return domain.ErrPollNotFound
	}
	poll.ResultsMessageID = messageID
	return nil
}

func (s *MemoryPollStore) AddChoice(_ context.Context, choice *domain.PollChoice) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, existing := range s.choices[choice.PollID] {
		if existing.Value == choice.Value {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateChoice, choice.Value)
		}
	}
	s.choices[choice.PollID] = append(s.choices[choice.PollID], *choice)
	return nil
}

func (s *MemoryPollStore) Choices(_ context.Context, pollID uuid.UUID) ([]domain.PollChoice, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]domain.PollChoice, len(s.choices[pollID]))
	copy(out, s.choices[pollID])
	return out, nil
}

func (s *MemoryPollStore) CastVote(_ context.Context, vote *domain.PollVote) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, existing := range s.votes[vote.PollID] {
		if existing.UserID == vote.UserID && existing.ChoiceValue == vote.ChoiceValue {
			return nil
		}
	}
	s.votes[vote.PollID] = append(s.votes[vote.PollID], *vote)
	return nil
}

func (s *MemoryPollStore) RetractVotes(_ context.Context, pollID uuid.UUID, userID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	kept := s.votes[pollID][:0]
	for _, vote := range s.votes[pollID] {
		if vote.UserID != userID {
			kept = append(kept, vote)
		}
	}
	s.votes[pollID] = kept
	return nil
}

func (s *MemoryPollStore) Votes(_ context.Context, pollID uuid.UUID) ([]domain.PollVote, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]domain.PollVote, len(s.votes[pollID]))
	copy(out, s.votes[pollID])
	return out, nil
}

func (s *MemoryPollStore) Tally(_ context.Context, pollID uuid.UUID) (domain.Tally, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	tally := domain.Tally{}
	for _, choice := range s.choices[pollID] {
		votes := 0
		for _, vote := range s.votes[pollID] {
			if vote.ChoiceValue == choice.Value {
				votes++
			}
		}
		tally.Entries = append(tally.Entries, domain.TallyEntry{
			Value: choice.Value,
			Label: choice.Label,
			Votes: votes,
		})
		tally.Total += votes
	}
	return tally, nil
}

// MemoryGuildStore is a map-backed guild preference store.
type MemoryGuildStore struct {
	mutex   sync.Mutex
	locales map[string]string
}

func NewMemoryGuildStore() *MemoryGuildStore {
	return &MemoryGuildStore{locales: make(map[string]string)}
}

func (s *MemoryGuildStore) Locale(_ context.Context, guildID string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.locales[guildID], nil
}

func (s *MemoryGuildStore) SetLocale(_ context.Context, guildID, locale string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.locales[guildID] = locale
	return nil
}

// keyLocalizer returns the key so assertions stay copy-independent.
type keyLocalizer struct{}

func (keyLocalizer) Translate(key, _ string, _ map[string]string) string { return key }
func (keyLocalizer) Locales() []string                                   { return []string{"en-US", "pt-BR"} }
