// Package pipeline provides the high-level orchestration for resume
// processing, from uploaded file to delivered document.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nazrawi/tenabot/internal/delivery"
	"github.com/nazrawi/tenabot/internal/rendering"
	"github.com/nazrawi/tenabot/internal/types"
	"github.com/nazrawi/tenabot/internal/validation"
)

// Stage identifies how far a processing run has advanced. Stages only move
// forward; a run that stops early records the failed stage and reason.
type Stage string

const (
	StagePending       Stage = "pending"
	StageTextExtracted Stage = "text_extracted"
	StageValidated     Stage = "validated"
	StageExtracted     Stage = "extracted"
	StagePersisted     Stage = "persisted"
	StageRendered      Stage = "rendered"
	StageDelivered     Stage = "delivered"
	StageFailed        Stage = "failed"
)

// User-facing notification texts. The validation rejection wording is
// deliberately distinct from the generic failure so users know to upload
// a different document rather than retry the same one. Both name the job
// title the upload was made against.
func msgValidationRejected(jobTitle string) string {
	return fmt.Sprintf("⚠️ The document you uploaded for *%s* doesn't look like a resume. Please upload a resume that includes sections like experience, education, or skills.", displayTitle(jobTitle))
}

func msgProcessingFailed(jobTitle string) string {
	return fmt.Sprintf("❌ Sorry, something went wrong while processing your resume for *%s*. Please try again later.", displayTitle(jobTitle))
}

func displayTitle(jobTitle string) string {
	if jobTitle == "" {
		return "Resume"
	}
	return jobTitle
}

// TextExtractor pulls plain text out of an uploaded file.
type TextExtractor interface {
	ExtractText(sourceRef string) (string, error)
}

// ProfileExtractor turns resume text into a structured profile.
type ProfileExtractor interface {
	Extract(ctx context.Context, resumeText, jobBias string) (*types.ProfileRecord, error)
}

// Store persists the extracted profile. The write is atomic: the profile
// fields and the processed flag commit together or not at all.
type Store interface {
	PersistProfile(ctx context.Context, resumeID uuid.UUID, record types.ProfileRecord) error
}

// Renderer lays out the profile as a document.
type Renderer interface {
	Render(record types.ProfileRecord) (*rendering.RenderedDocument, error)
}

// PDFBackend prints a rendered document body to PDF bytes.
type PDFBackend interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// ArtifactStore keeps a copy of the generated document on disk.
type ArtifactStore interface {
	SavePDF(userRef string, pdf []byte) (string, error)
}

// Notifier delivers documents and status messages to the user.
type Notifier interface {
	SendDocument(ctx context.Context, chatID int64, filename string, document []byte, caption string) error
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Orchestrator wires the processing stages together.
type Orchestrator struct {
	Texts     TextExtractor
	Gate      *validation.Gate
	Profiles  ProfileExtractor
	Store     Store
	Renderer  Renderer
	PDF       PDFBackend
	Artifacts ArtifactStore
	Notifier  Notifier
}

// Job describes one resume to process.
type Job struct {
	ResumeID       uuid.UUID
	ChatID         int64
	UserRef        string
	SourceRef      string
	JobTitle       string
	JobDescription string
}

// Result records where a run ended up. FailedStage is set only when Stage
// is StageFailed; DocumentPath is set once rendering has produced a file.
type Result struct {
	Stage        Stage
	FailedStage  Stage
	Reason       string
	DocumentPath string
}

// Run drives a job through every stage. Persistence is the durability
// boundary: once the profile has committed, rendering or delivery failures
// are logged and reported in the Result but never undo the stored profile.
// Notification sends are best effort; their failures never change the
// outcome.
func (o *Orchestrator) Run(ctx context.Context, job Job) *Result {
	fmt.Printf("[%s] Stage 1/6: Extracting text from %s...\n", job.ResumeID, job.SourceRef)
	text, err := o.Texts.ExtractText(job.SourceRef)
	if err != nil {
		return o.fail(ctx, job, StageTextExtracted, fmt.Sprintf("text extraction failed: %v", err), msgProcessingFailed(job.JobTitle))
	}

	fmt.Printf("[%s] Stage 2/6: Validating document...\n", job.ResumeID)
	if res := o.Gate.Check(text); !res.OK {
		return o.fail(ctx, job, StageValidated, res.Reason, msgValidationRejected(job.JobTitle))
	}

	fmt.Printf("[%s] Stage 3/6: Extracting structured profile...\n", job.ResumeID)
	record, err := o.Profiles.Extract(ctx, text, job.JobDescription)
	if err != nil {
		return o.fail(ctx, job, StageExtracted, fmt.Sprintf("profile extraction failed: %v", err), msgProcessingFailed(job.JobTitle))
	}

	fmt.Printf("[%s] Stage 4/6: Persisting profile...\n", job.ResumeID)
	if err := o.Store.PersistProfile(ctx, job.ResumeID, *record); err != nil {
		return o.fail(ctx, job, StagePersisted, fmt.Sprintf("persistence failed: %v", err), msgProcessingFailed(job.JobTitle))
	}

	fmt.Printf("[%s] Stage 5/6: Rendering document...\n", job.ResumeID)
	docPath, pdf, err := o.render(ctx, job, *record)
	if err != nil {
		// profile is already durable; report the failure without delivery
		fmt.Printf("[%s] Warning: rendering failed after persistence: %v\n", job.ResumeID, err)
		o.notify(ctx, job, msgProcessingFailed(job.JobTitle))
		return &Result{Stage: StagePersisted, Reason: fmt.Sprintf("rendering failed: %v", err)}
	}

	fmt.Printf("[%s] Stage 6/6: Delivering document...\n", job.ResumeID)
	filename := delivery.DocumentFilename(job.JobTitle)
	if err := o.Notifier.SendDocument(ctx, job.ChatID, filename, pdf, delivery.SuccessCaption(job.JobTitle)); err != nil {
		fmt.Printf("[%s] Warning: delivery failed: %v\n", job.ResumeID, err)
		return &Result{Stage: StageRendered, Reason: fmt.Sprintf("delivery failed: %v", err), DocumentPath: docPath}
	}

	fmt.Printf("[%s] Done: document delivered.\n", job.ResumeID)
	return &Result{Stage: StageDelivered, DocumentPath: docPath}
}

func (o *Orchestrator) render(ctx context.Context, job Job, record types.ProfileRecord) (string, []byte, error) {
	doc, err := o.Renderer.Render(record)
	if err != nil {
		return "", nil, err
	}
	pdf, err := o.PDF.RenderPDF(ctx, doc.Body)
	if err != nil {
		return "", nil, err
	}
	path, err := o.Artifacts.SavePDF(job.UserRef, pdf)
	if err != nil {
		return "", nil, err
	}
	return path, pdf, nil
}

func (o *Orchestrator) fail(ctx context.Context, job Job, stage Stage, reason, userMessage string) *Result {
	fmt.Printf("[%s] Failed at %s: %s\n", job.ResumeID, stage, reason)
	o.notify(ctx, job, userMessage)
	return &Result{Stage: StageFailed, FailedStage: stage, Reason: reason}
}

func (o *Orchestrator) notify(ctx context.Context, job Job, text string) {
	if o.Notifier == nil || job.ChatID == 0 {
		return
	}
	if err := o.Notifier.SendMessage(ctx, job.ChatID, text); err != nil {
		fmt.Printf("[%s] Warning: failed to notify user: %v\n", job.ResumeID, err)
	}
}
