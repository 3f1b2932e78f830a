package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// GetOrCreateUser looks up a user by Telegram ID, creating the row on
// first contact. Username and first name are refreshed on every call so
// renamed accounts stay current.
func (db *DB) GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (telegram_id, username, first_name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (telegram_id) DO UPDATE SET username = $2, first_name = $3
		 RETURNING id, telegram_id, username, first_name, created_at`,
		telegramID, username, firstName,
	).Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}
	return &u, nil
}

// GetUserByTelegramID returns the user for a Telegram ID, or a
// NotFoundError when they have never registered.
func (db *DB) GetUserByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, telegram_id, username, first_name, created_at
		 FROM users WHERE telegram_id = $1`,
		telegramID,
	).Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: "user", ID: fmt.Sprintf("telegram:%d", telegramID)}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetUser returns a user by primary key.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, telegram_id, username, first_name, created_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: "user", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// UsageCountToday returns how many uploads the user has recorded today.
func (db *DB) UsageCountToday(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(uploads), 0) FROM usage_tracker
		 WHERE user_id = $1 AND day = CURRENT_DATE`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count usage: %w", err)
	}
	return count, nil
}

// RecordUpload increments today's upload counter for the user.
func (db *DB) RecordUpload(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO usage_tracker (user_id, day, uploads)
		 VALUES ($1, CURRENT_DATE, 1)
		 ON CONFLICT (user_id, day) DO UPDATE SET uploads = usage_tracker.uploads + 1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to record upload: %w", err)
	}
	return nil
}
