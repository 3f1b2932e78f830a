package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nazrawi/tenabot/internal/types"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// CreateResume records a freshly uploaded resume file for a user. The row
// starts unprocessed with empty profile fields.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, filePath, jobTitle, jobDescription string) (*Resume, error) {
	var r Resume
	r.UserID = userID
	r.FilePath = filePath
	r.JobTitle = jobTitle
	r.JobDescription = jobDescription
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, file_path, job_title, job_description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		userID, filePath, jobTitle, jobDescription,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return &r, nil
}

// FindResume retrieves a resume with its profile fields by ID.
func (db *DB) FindResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	var skills, coreValues, workHistory, education []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, file_path, job_title, job_description,
		        phone, email, linkedin, github, position_inferred, education_level,
		        skills, core_values, work_history, full_education,
		        processed, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.UserID, &r.FilePath, &r.JobTitle, &r.JobDescription,
		&r.Profile.Phone, &r.Profile.Email, &r.Profile.LinkedIn, &r.Profile.GitHub,
		&r.Profile.PositionInferred, &r.Profile.EducationLevel,
		&skills, &coreValues, &workHistory, &education,
		&r.Processed, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Entity: "resume", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	if err := json.Unmarshal(skills, &r.Profile.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}
	if err := json.Unmarshal(coreValues, &r.Profile.CoreValues); err != nil {
		return nil, fmt.Errorf("failed to decode core values: %w", err)
	}
	if err := json.Unmarshal(workHistory, &r.Profile.WorkHistory); err != nil {
		return nil, fmt.Errorf("failed to decode work history: %w", err)
	}
	if err := json.Unmarshal(education, &r.Profile.Education); err != nil {
		return nil, fmt.Errorf("failed to decode education: %w", err)
	}
	return &r, nil
}

// SaveProfile writes the extracted profile fields inside the caller's
// transaction. It does not flip the processed flag; MarkProcessed runs in
// the same transaction so both land or neither does.
func (db *DB) SaveProfile(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, record types.ProfileRecord) error {
	skills, err := json.Marshal(record.Skills)
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}
	coreValues, err := json.Marshal(record.CoreValues)
	if err != nil {
		return fmt.Errorf("failed to encode core values: %w", err)
	}
	workHistory, err := json.Marshal(record.WorkHistory)
	if err != nil {
		return fmt.Errorf("failed to encode work history: %w", err)
	}
	education, err := json.Marshal(record.Education)
	if err != nil {
		return fmt.Errorf("failed to encode education: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE resumes SET
		   phone = $1, email = $2, linkedin = $3, github = $4,
		   position_inferred = $5, education_level = $6,
		   skills = $7, core_values = $8, work_history = $9, full_education = $10,
		   updated_at = NOW()
		 WHERE id = $11`,
		record.Phone.String(), record.Email.String(), record.LinkedIn.String(), record.GitHub.String(),
		record.PositionInferred.String(), record.EducationLevel.String(),
		skills, coreValues, workHistory, education,
		resumeID,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "resume", ID: resumeID.String()}
	}
	return nil
}

// PersistProfile writes the profile fields and the processed flag in one
// transaction. A failure at any point leaves the resume untouched and
// unprocessed.
func (db *DB) PersistProfile(ctx context.Context, resumeID uuid.UUID, record types.ProfileRecord) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := db.SaveProfile(ctx, tx, resumeID, record); err != nil {
		return err
	}
	if err := db.MarkProcessed(ctx, tx, resumeID); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}

// MarkProcessed flips the processed flag inside the caller's transaction.
func (db *DB) MarkProcessed(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID) error {
	tag, err := tx.Exec(ctx,
		`UPDATE resumes SET processed = TRUE, updated_at = NOW() WHERE id = $1`,
		resumeID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark resume processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "resume", ID: resumeID.String()}
	}
	return nil
}
