package backend

import (
	"context"
	"io"

	"github.com/kyraongithub/compliance-gateway/internal/models"
)

// API is the contract for the compliance backend. The interface exists so
// state machines can be driven against a mock in tests.
type API interface {
	ListAssessments(ctx context.Context) ([]models.Assessment, error)
	CreateAssessment(ctx context.Context, templateID string) (*models.Assessment, error)
	GetAssessment(ctx context.Context, id string) (*models.Assessment, error)
	UpsertSubmission(ctx context.Context, req SubmissionRequest) (*models.Submission, error)
	ReviewSubmission(ctx context.Context, submissionID string, status models.SubmissionStatus, reviewNote string) (*models.Submission, error)
	ListTemplates(ctx context.Context) ([]models.Template, error)
	GetTemplate(ctx context.Context, id string) (*models.TemplateDetail, error)
	UploadTemplate(ctx context.Context, fileName, title string, contents io.Reader) (*models.Template, error)
}

// SubmissionRequest is the upsert payload: the backend keys the write on
// assessment + requirement, overwriting any earlier submission. Both content
// fields are always sent, even when empty, so a save can blank one of them.
type SubmissionRequest struct {
	AssessmentID         string `json:"assessmentId"`
	RequirementID        string `json:"requirementId"`
	ImplementationDetail string `json:"implementationDetail"`
	EvidenceLink         string `json:"evidenceLink"`
}

// TokenSource supplies the bearer token attached to every request.
// *session.Manager satisfies it.
type TokenSource interface {
	Token() string
}
