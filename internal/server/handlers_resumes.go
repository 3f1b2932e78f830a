package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nazrawi/tenabot/internal/pipeline"
	"github.com/nazrawi/tenabot/internal/server/middleware"
	"github.com/nazrawi/tenabot/internal/types"
)

// maxUploadBytes bounds the multipart form; Telegram bots cap documents
// at 20 MB anyway.
const maxUploadBytes = 20 << 20

type uploadRequest struct {
	Filename       string `validate:"required"`
	JobTitle       string `validate:"required,max=200"`
	JobDescription string `validate:"max=4000"`
}

// handleUploadResume accepts a resume file, records it, and launches the
// processing pipeline in the background. The response is 202 with the
// resume ID; delivery happens over Telegram when the run completes.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, HTTPStatus(&ErrUserNotFound{UserID: userID}), "user not found")
		return
	}

	used, err := s.store.UsageCountToday(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to check usage: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if s.maxUploadsPerDay > 0 && used >= s.maxUploadsPerDay {
		limitErr := &ErrUploadLimitExceeded{Limit: s.maxUploadsPerDay}
		respondError(w, HTTPStatus(limitErr), limitErr.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing resume file")
		return
	}
	defer file.Close()

	req := uploadRequest{
		Filename:       header.Filename,
		JobTitle:       strings.TrimSpace(r.FormValue("job_title")),
		JobDescription: strings.TrimSpace(r.FormValue("job_description")),
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid upload request")
		return
	}
	ext := strings.ToLower(filepath.Ext(req.Filename))
	if ext != ".pdf" && ext != ".docx" {
		vErr := &ErrValidation{Field: "resume", Message: "only .pdf and .docx files are supported"}
		respondError(w, HTTPStatus(vErr), vErr.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	userRef := fmt.Sprintf("%d", user.TelegramID)
	sourceRef, err := s.uploads.SaveUpload(userRef, req.Filename, data)
	if err != nil {
		log.Printf("Failed to store upload: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resume, err := s.store.CreateResume(r.Context(), userID, sourceRef, req.JobTitle, req.JobDescription)
	if err != nil {
		log.Printf("Failed to create resume: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := s.store.RecordUpload(r.Context(), userID); err != nil {
		log.Printf("Failed to record upload: %v", err)
	}

	job := pipeline.Job{
		ResumeID:       resume.ID,
		ChatID:         user.TelegramID,
		UserRef:        userRef,
		SourceRef:      sourceRef,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
	}
	// the run outlives the request; detach it from the request context
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		s.runner.Run(ctx, job)
	}()

	respondJSON(w, http.StatusAccepted, map[string]string{
		"id":     resume.ID.String(),
		"status": "processing",
	})
}

type resumeStatusResponse struct {
	ID        string               `json:"id"`
	JobTitle  string               `json:"job_title"`
	Processed bool                 `json:"processed"`
	Profile   *types.ProfileRecord `json:"profile,omitempty"`
}

// handleGetResume reports processing status. Resumes belonging to other
// users are reported as not found rather than forbidden.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	resume, err := s.store.FindResume(r.Context(), resumeID)
	if err != nil || resume.UserID != userID {
		notFound := &ErrResumeNotFound{ResumeID: resumeID}
		respondError(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	resp := resumeStatusResponse{
		ID:        resume.ID.String(),
		JobTitle:  resume.JobTitle,
		Processed: resume.Processed,
	}
	if resume.Processed {
		resp.Profile = &resume.Profile
	}
	respondJSON(w, http.StatusOK, resp)
}
