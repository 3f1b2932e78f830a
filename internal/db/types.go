package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/nazrawi/tenabot/internal/types"
)

// User represents a Telegram user known to the system
type User struct {
	ID         uuid.UUID `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username,omitempty"`
	FirstName  string    `json:"first_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Resume represents an uploaded resume and, once extraction has run, its
// structured profile fields. Processed stays false until the profile has
// been committed.
type Resume struct {
	ID             uuid.UUID           `json:"id"`
	UserID         uuid.UUID           `json:"user_id"`
	FilePath       string              `json:"file_path"`
	JobTitle       string              `json:"job_title"`
	JobDescription string              `json:"job_description,omitempty"`
	Profile        types.ProfileRecord `json:"profile"`
	Processed      bool                `json:"processed"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
