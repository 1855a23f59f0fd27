package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"guildbot/internal/core/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// Store implements the poll and guild persistence ports on Postgres. The
// composite primary key on poll_votes is what makes vote casting idempotent;
// the insert below leans on it with ON CONFLICT DO NOTHING.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (s *Store) CreatePoll(ctx context.Context, poll *domain.Poll) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO polls (id, name, description, kind, stage, thread_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, poll.ID, poll.Name, poll.Description, poll.Kind, poll.Stage, poll.ThreadID,
		poll.CreatedAt, poll.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	return nil
}

const pollColumns = `id, name, description, kind, stage, thread_id, setup_message_id,
	results_message_id, started_at, ended_at, created_at, created_by`

func (s *Store) scanPoll(row *sql.Row) (*domain.Poll, error) {
	var poll domain.Poll
	var startedAt, endedAt sql.NullTime

	err := row.Scan(&poll.ID, &poll.Name, &poll.Description, &poll.Kind, &poll.Stage,
		&poll.ThreadID, &poll.SetupMessageID, &poll.ResultsMessageID,
		&startedAt, &endedAt, &poll.CreatedAt, &poll.CreatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan poll: %w", err)
	}

	if startedAt.Valid {
		poll.StartedAt = &startedAt.Time
	}
	if endedAt.Valid {
		poll.EndedAt = &endedAt.Time
	}

	return &poll, nil
}

func (s *Store) Poll(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	return s.scanPoll(s.db.QueryRowContext(ctx,
		`SELECT `+pollColumns+` FROM polls WHERE id = $1`, id))
}

func (s *Store) PollByThread(ctx context.Context, threadID string) (*domain.Poll, error) {
	return s.scanPoll(s.db.QueryRowContext(ctx,
		`SELECT `+pollColumns+` FROM polls WHERE thread_id = $1
		 ORDER BY created_at DESC LIMIT 1`, threadID))
}

// SetStage advances the lifecycle stage and stamps the matching timestamp.
func (s *Store) SetStage(ctx context.Context, id uuid.UUID, stage domain.PollStage) error {
	var result sql.Result
	var err error

	switch stage {
	case domain.StageVoting:
		result, err = s.db.ExecContext(ctx,
			`UPDATE polls SET stage = $1, started_at = $2 WHERE id = $3`, stage, time.Now(), id)
	case domain.StageClosed:
		result, err = s.db.ExecContext(ctx,
			`UPDATE polls SET stage = $1, ended_at = $2 WHERE id = $3`, stage, time.Now(), id)
	default:
		result, err = s.db.ExecContext(ctx,
			`UPDATE polls SET stage = $1 WHERE id = $2`, stage, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update poll stage: %w", err)
	}

	return requireRow(result)
}

func (s *Store) SetSetupMessage(ctx context.Context, id uuid.UUID, messageID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE polls SET setup_message_id = $1 WHERE id = $2`, messageID, id)
	if err != nil {
		return fmt.Errorf("failed to update setup message: %w", err)
	}

	return requireRow(result)
}

func (s *Store) SetResultsMessage(ctx context.Context, id uuid.UUID, messageID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE polls SET results_message_id = $1 WHERE id = $2`, messageID, id)
	if err != nil {
		return fmt.Errorf("failed to update results message: %w", err)
	}

	return requireRow(result)
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrPollNotFound
	}

	return nil
}

func (s *Store) AddChoice(ctx context.Context, choice *domain.PollChoice) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO poll_choices (poll_id, value, label, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, choice.PollID, choice.Value, choice.Label, choice.Description, choice.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateChoice
	}
	if err != nil {
		return fmt.Errorf("failed to insert choice: %w", err)
	}

	return nil
}

func (s *Store) Choices(ctx context.Context, pollID uuid.UUID) ([]domain.PollChoice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT poll_id, value, label, description, created_at
		FROM poll_choices WHERE poll_id = $1 ORDER BY created_at, value
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	var choices []domain.PollChoice
	for rows.Next() {
		var c domain.PollChoice
		if err := rows.Scan(&c.PollID, &c.Value, &c.Label, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, c)
	}

	return choices, rows.Err()
}

func (s *Store) CastVote(ctx context.Context, vote *domain.PollVote) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO poll_votes (poll_id, choice_value, user_id, voted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, poll_id, choice_value) DO NOTHING
	`, vote.PollID, vote.ChoiceValue, vote.UserID, vote.VotedAt)
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	return nil
}

func (s *Store) RetractVotes(ctx context.Context, pollID uuid.UUID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM poll_votes WHERE poll_id = $1 AND user_id = $2`, pollID, userID)
	if err != nil {
		return fmt.Errorf("failed to retract votes: %w", err)
	}

	return nil
}

func (s *Store) Votes(ctx context.Context, pollID uuid.UUID) ([]domain.PollVote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT poll_id, choice_value, user_id, voted_at
		FROM poll_votes WHERE poll_id = $1 ORDER BY voted_at
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var votes []domain.PollVote
	for rows.Next() {
		var v domain.PollVote
		if err := rows.Scan(&v.PollID, &v.ChoiceValue, &v.UserID, &v.VotedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}

	return votes, rows.Err()
}

func (s *Store) Tally(ctx context.Context, pollID uuid.UUID) (domain.Tally, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.value, c.label, COUNT(v.user_id)
		FROM poll_choices c
		LEFT JOIN poll_votes v ON v.poll_id = c.poll_id AND v.choice_value = c.value
		WHERE c.poll_id = $1
		GROUP BY c.value, c.label, c.created_at
		ORDER BY c.created_at, c.value
	`, pollID)
	if err != nil {
		return domain.Tally{}, fmt.Errorf("failed to query tally: %w", err)
	}
	defer rows.Close()

	var tally domain.Tally
	for rows.Next() {
		var entry domain.TallyEntry
		if err := rows.Scan(&entry.Value, &entry.Label, &entry.Votes); err != nil {
			return domain.Tally{}, fmt.Errorf("failed to scan tally: %w", err)
		}
		tally.Entries = append(tally.Entries, entry)
		tally.Total += entry.Votes
	}

	return tally, rows.Err()
}

func (s *Store) Locale(ctx context.Context, guildID string) (string, error) {
	var locale string
	err := s.db.QueryRowContext(ctx,
		`SELECT locale FROM guilds WHERE id = $1`, guildID).Scan(&locale)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query guild locale: %w", err)
	}

	return locale, nil
}

func (s *Store) SetLocale(ctx context.Context, guildID, locale string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guilds (id, locale) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET locale = EXCLUDED.locale
	`, guildID, locale)
	if err != nil {
		return fmt.Errorf("failed to save guild locale: %w", err)
	}

	return nil
}
