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
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/wordsnap/wordsnap/internal/infrastructure/config"
)

// seedDictCmd seeds a user's word list from a starter dictionary shipped as a
// SQLite file. Note: go-sqlite3 requires CGO_ENABLED=1 at build time.
var seedDictCmd = &cobra.Command{
	Use:   "seed-dict",
	Short: "Seed a user's word list from a SQLite starter dictionary",
	Long: `Reads rows from the 'dictionary' table of a SQLite file
(word, meaning, pos, example, difficulty) and inserts them as the user's
words. Existing entries are left untouched. Runs migrations first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		userID, _ := cmd.Flags().GetString("user")
		batch, _ := cmd.Flags().GetInt("batch")
		limit, _ := cmd.Flags().GetInt("limit")

		if path == "" {
			return fmt.Errorf("--file is required")
		}
		if userID == "" {
			return fmt.Errorf("--user is required")
		}
		if err := runMigrations(); err != nil {
			return err
		}
		return seedDictionary(cmd.Context(), path, userID, batch, limit)
	},
}

func init() {
	rootCmd.AddCommand(seedDictCmd)

	seedDictCmd.Flags().StringP("file", "f", "", "path to the SQLite dictionary file")
	seedDictCmd.Flags().StringP("user", "u", "", "user id receiving the seeded words")
	seedDictCmd.Flags().Int("batch", 500, "batch insert size")
	seedDictCmd.Flags().Int("limit", 0, "maximum number of words to seed (0 = all)")
}

type dictRecord struct {
	Word       string
	Meaning    string
	Pos        sql.NullString
	Example    sql.NullString
	Difficulty sql.NullString
}

func seedDictionary(ctx context.Context, path, userID string, batchSize, limit int) error {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer sqldb.Close()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	query := `SELECT word, meaning, pos, example, difficulty FROM dictionary`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := sqldb.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("read dictionary: %w", err)
	}
	defer rows.Close()

	records := make([]dictRecord, 0, 1024)
	for rows.Next() {
		var r dictRecord
		if err := rows.Scan(&r.Word, &r.Meaning, &r.Pos, &r.Example, &r.Difficulty); err != nil {
			return err
		}
		r.Word = strings.TrimSpace(r.Word)
		r.Meaning = strings.TrimSpace(r.Meaning)
		if r.Word == "" || r.Meaning == "" {
			continue
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	total := 0
	for batchStart := 0; batchStart < len(records); {
		end := batchStart + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := insertDictBatch(ctx, pool, userID, records[batchStart:end]); err != nil {
			return err
		}
		total += end - batchStart
		log.Printf("seeded %d words", total)
		batchStart = end
	}
	log.Printf("seed complete: %d words in %s", total, time.Since(start))
	return nil
}

func insertDictBatch(ctx context.Context, pool *pgxpool.Pool, userID string, batch []dictRecord) error {
	if len(batch) == 0 {
		return nil
	}
	now := time.Now()
	b := &pgx.Batch{}
	for _, r := range batch {
		pos := "other"
		if r.Pos.Valid && strings.TrimSpace(r.Pos.String) != "" {
			pos = strings.ToLower(strings.TrimSpace(r.Pos.String))
		}
		difficulty := "medium"
		if r.Difficulty.Valid && strings.TrimSpace(r.Difficulty.String) != "" {
			difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty.String))
		}
		example := ""
		if r.Example.Valid {
			example = strings.TrimSpace(r.Example.String)
		}
		b.Queue(`INSERT INTO words (id, user_id, english, meaning, part_of_speech, example_sentence,
				source, difficulty, mastery_level, is_bookmarked, times_correct, times_wrong,
				last_reviewed_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, 'manual', $7, 0, FALSE, 0, 0, NULL, $8, $8)
			ON CONFLICT (user_id, lower(english)) DO NOTHING`,
			uuid.NewString(), userID, r.Word, r.Meaning, pos, example, difficulty, now)
	}
	br := pool.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return err
		}
	}
	return br.Close()
}
