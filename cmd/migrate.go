/*
Copyright © 2025 WordSnap Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/wordsnap/wordsnap/internal/infrastructure/config"
)

// migrateCmd applies the database schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

const schema = `
CREATE TABLE IF NOT EXISTS words (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	english          TEXT NOT NULL,
	meaning          TEXT NOT NULL,
	part_of_speech   TEXT NOT NULL DEFAULT 'other',
	example_sentence TEXT NOT NULL DEFAULT '',
	source           TEXT NOT NULL DEFAULT 'manual',
	difficulty       TEXT NOT NULL DEFAULT 'medium',
	mastery_level    INTEGER NOT NULL DEFAULT 0,
	is_bookmarked    BOOLEAN NOT NULL DEFAULT FALSE,
	times_correct    INTEGER NOT NULL DEFAULT 0,
	times_wrong      INTEGER NOT NULL DEFAULT 0,
	last_reviewed_at TIMESTAMPTZ,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_words_user_english ON words (user_id, lower(english));
CREATE INDEX IF NOT EXISTS idx_words_user_mastery ON words (user_id, mastery_level);

CREATE TABLE IF NOT EXISTS quiz_results (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	quiz_type        TEXT NOT NULL,
	total_questions  INTEGER NOT NULL,
	correct_answers  INTEGER NOT NULL,
	score_percentage INTEGER NOT NULL,
	difficulty       TEXT NOT NULL DEFAULT 'mixed',
	completed_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quiz_results_user_completed ON quiz_results (user_id, completed_at DESC);

CREATE TABLE IF NOT EXISTS word_quiz_answers (
	id             TEXT PRIMARY KEY,
	quiz_result_id TEXT NOT NULL REFERENCES quiz_results (id) ON DELETE CASCADE,
	word_id        TEXT NOT NULL,
	user_answer    TEXT NOT NULL DEFAULT '',
	is_correct     BOOLEAN NOT NULL,
	answered_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_word_quiz_answers_result ON word_quiz_answers (quiz_result_id);

CREATE TABLE IF NOT EXISTS user_statistics (
	id                   TEXT PRIMARY KEY,
	user_id              TEXT NOT NULL UNIQUE,
	total_words          INTEGER NOT NULL DEFAULT 0,
	bookmarked_words     INTEGER NOT NULL DEFAULT 0,
	mastered_words       INTEGER NOT NULL DEFAULT 0,
	quizzes_completed    INTEGER NOT NULL DEFAULT 0,
	average_quiz_score   INTEGER NOT NULL DEFAULT 0,
	average_word_mastery INTEGER NOT NULL DEFAULT 0,
	last_studied_at      TIMESTAMPTZ,
	created_at           TIMESTAMPTZ NOT NULL,
	updated_at           TIMESTAMPTZ NOT NULL
);
`

// runMigrations applies the schema to the target database.
func runMigrations() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	log.Println("database migration complete")
	return nil
}
