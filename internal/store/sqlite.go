package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/Archi82123/friend-daily-bot/internal/domain"
)

// SQLiteRepo implements Repo on an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the database at path, applies PRAGMAs,
// runs migrations, and returns the repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine; one connection avoids lock churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Close() error { return r.db.Close() }

// SavePreference inserts or replaces the row for id.
func (r *SQLiteRepo) SavePreference(ctx context.Context, id domain.SubscriberID, p domain.Preference) error {
	now := time.Now().UTC().Unix()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (chat_id, tz, hour, minute, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			tz         = excluded.tz,
			hour       = excluded.hour,
			minute     = excluded.minute,
			updated_at = excluded.updated_at`,
		int64(id), p.Timezone, p.At.Hour, p.At.Minute, now, now,
	)
	return err
}

// DeletePreference removes the row for id; deleting a missing row is not
// an error.
func (r *SQLiteRepo) DeletePreference(ctx context.Context, id domain.SubscriberID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE chat_id = ?`, int64(id))
	return err
}

// AllPreferences loads every persisted subscription for startup replay.
func (r *SQLiteRepo) AllPreferences(ctx context.Context) (map[domain.SubscriberID]domain.Preference, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT chat_id, tz, hour, minute FROM subscriptions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[domain.SubscriberID]domain.Preference)
	for rows.Next() {
		var (
			chatID       int64
			tz           string
			hour, minute int
		)
		if err := rows.Scan(&chatID, &tz, &hour, &minute); err != nil {
			return nil, err
		}
		out[domain.SubscriberID(chatID)] = domain.Preference{
			Timezone: tz,
			At:       domain.TimeOfDay{Hour: hour, Minute: minute},
		}
	}
	return out, rows.Err()
}
