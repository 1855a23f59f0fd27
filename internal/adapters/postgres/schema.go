package postgres

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables the bot needs. Safe to call on every
// startup: all statements use IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS guilds (
    id TEXT PRIMARY KEY,
    locale TEXT NOT NULL DEFAULT 'en-US',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS polls (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    kind TEXT NOT NULL CHECK (kind IN ('single_choice', 'multiple_choice')),
    stage TEXT NOT NULL DEFAULT 'setup' CHECK (stage IN ('setup', 'voting', 'closed')),
    thread_id TEXT NOT NULL,
    setup_message_id TEXT NOT NULL DEFAULT '',
    results_message_id TEXT NOT NULL DEFAULT '',
    started_at TIMESTAMPTZ,
    ended_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    created_by TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_polls_thread_id ON polls(thread_id);
CREATE INDEX IF NOT EXISTS idx_polls_stage ON polls(stage);

CREATE TABLE IF NOT EXISTS poll_choices (
    poll_id UUID NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    value TEXT NOT NULL,
    label TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (poll_id, value)
);

CREATE TABLE IF NOT EXISTS poll_votes (
    poll_id UUID NOT NULL,
    choice_value TEXT NOT NULL,
    user_id TEXT NOT NULL,
    voted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, poll_id, choice_value),
    FOREIGN KEY (poll_id, choice_value)
        REFERENCES poll_choices(poll_id, value) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_poll_votes_poll_id ON poll_votes(poll_id);
`
