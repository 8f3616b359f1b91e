// Package store persists extracted message catalogs in PostgreSQL so
// repeated extraction runs can be diffed and exported.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"gettext-extractor/internal/catalog"
	"gettext-extractor/internal/textutil"
)

// MessageStore handles persistence of extracted messages in PostgreSQL and
// file export.
type MessageStore struct {
	pool *pgxpool.Pool
}

// New creates a message store on the given connection pool.
func New(pool *pgxpool.Pool) *MessageStore {
	return &MessageStore{pool: pool}
}

// EnsureSchema creates the message table when missing.
func (s *MessageStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS extracted_messages (
    hash        TEXT PRIMARY KEY,
    context     TEXT NOT NULL DEFAULT '',
    text        TEXT NOT NULL,
    text_plural TEXT NOT NULL DEFAULT '',
    comments    TEXT[] NOT NULL DEFAULT '{}',
    refs        TEXT[] NOT NULL DEFAULT '{}',
    flags       TEXT[] NOT NULL DEFAULT '{}',
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	if err != nil {
		return fmt.Errorf("ensure message schema: %w", err)
	}
	return nil
}

// Upsert stores catalog entries, deduplicated by the context+text hash.
// Returns the number of affected rows.
func (s *MessageStore) Upsert(ctx context.Context, messages []*catalog.Message) (int, error) {
	stored := 0
	for _, m := range messages {
		tag, err := s.pool.Exec(ctx, `
INSERT INTO extracted_messages (hash, context, text, text_plural, comments, refs, flags)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (hash) DO UPDATE SET
    text_plural = EXCLUDED.text_plural,
    comments    = EXCLUDED.comments,
    refs        = EXCLUDED.refs,
    flags       = EXCLUDED.flags,
    updated_at  = now()`,
			textutil.Hash(textutil.MessageKey(m.Context, m.Text)),
			m.Context, m.Text, m.TextPlural, m.Comments, m.References, m.Flags)
		if err != nil {
			return stored, fmt.Errorf("upsert message %q: %w", textutil.Truncate(m.Text, 30), err)
		}
		stored += int(tag.RowsAffected())
	}

	log.Info().Int("stored", stored).Msg("Upserted extracted messages")
	return stored, nil
}

// StoredMessage is one persisted catalog entry.
type StoredMessage struct {
	Hash       string   `json:"hash"`
	Context    string   `json:"context,omitempty"`
	Text       string   `json:"text"`
	TextPlural string   `json:"textPlural,omitempty"`
	Comments   []string `json:"comments,omitempty"`
	References []string `json:"references,omitempty"`
	Flags      []string `json:"flags,omitempty"`
}

// GetAll retrieves all stored messages ordered by context and text.
func (s *MessageStore) GetAll(ctx context.Context) ([]StoredMessage, error) {
	rows, err := s.pool.Query(ctx, `
SELECT hash, context, text, text_plural, comments, refs, flags
FROM extracted_messages
ORDER BY context, text`)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []StoredMessage
	for rows.Next() {
		var m StoredMessage
		if err := rows.Scan(&m.Hash, &m.Context, &m.Text, &m.TextPlural, &m.Comments, &m.References, &m.Flags); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}

// ExportTSV writes all stored messages to a TSV file.
func (s *MessageStore) ExportTSV(ctx context.Context, outputPath string) error {
	messages, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create TSV file: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(f, "context\ttext\ttext_plural\tcomments\trefs")
	for _, m := range messages {
		fmt.Fprintf(f, "%s\t%s\t%s\t%s\t%s\n",
			escapeTSV(m.Context), escapeTSV(m.Text), escapeTSV(m.TextPlural),
			escapeTSV(strings.Join(m.Comments, "; ")), strings.Join(m.References, " "))
	}

	log.Info().Int("count", len(messages)).Str("path", outputPath).Msg("Exported messages to TSV")
	return nil
}

// ExportJSON writes all stored messages to a JSON file.
func (s *MessageStore) ExportJSON(ctx context.Context, outputPath string) error {
	messages, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write JSON file: %w", err)
	}

	log.Info().Int("count", len(messages)).Str("path", outputPath).Msg("Exported messages to JSON")
	return nil
}

var tsvEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`)

func escapeTSV(s string) string {
	return tsvEscaper.Replace(s)
}
