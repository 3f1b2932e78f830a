package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nazrawi/tenabot/internal/types"
)

func TestNotFoundError(t *testing.T) {
	id := uuid.New()
	err := &NotFoundError{Entity: "resume", ID: id.String()}
	assert.Contains(t, err.Error(), "resume")
	assert.Contains(t, err.Error(), id.String())
}

func TestResumeType(t *testing.T) {
	r := Resume{
		FilePath: "uploads/resume.pdf",
		Profile: types.ProfileRecord{
			PositionInferred: "Engineer",
			Skills:           types.FlexList{"Go"},
		},
	}

	assert.Equal(t, "uploads/resume.pdf", r.FilePath)
	assert.False(t, r.Processed)
	assert.Equal(t, "Engineer", r.Profile.PositionInferred.String())
}
