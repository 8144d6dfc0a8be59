package backend

import (
	"context"
	"errors"
	"io"

	"github.com/kyraongithub/compliance-gateway/internal/models"
)

// Mock implements API for tests. Each call is recorded in Calls; calls
// without a stubbed func fail.
type Mock struct {
	Calls []string

	ListAssessmentsFunc  func(ctx context.Context) ([]models.Assessment, error)
	CreateAssessmentFunc func(ctx context.Context, templateID string) (*models.Assessment, error)
	GetAssessmentFunc    func(ctx context.Context, id string) (*models.Assessment, error)
	UpsertSubmissionFunc func(ctx context.Context, req SubmissionRequest) (*models.Submission, error)
	ReviewSubmissionFunc func(ctx context.Context, submissionID string, status models.SubmissionStatus, reviewNote string) (*models.Submission, error)
	ListTemplatesFunc    func(ctx context.Context) ([]models.Template, error)
	GetTemplateFunc      func(ctx context.Context, id string) (*models.TemplateDetail, error)
	UploadTemplateFunc   func(ctx context.Context, fileName, title string, contents io.Reader) (*models.Template, error)
}

var errNotStubbed = errors.New("backend: mock call not stubbed")

func (m *Mock) ListAssessments(ctx context.Context) ([]models.Assessment, error) {
	m.Calls = append(m.Calls, "ListAssessments")
	if m.ListAssessmentsFunc == nil {
		return nil, errNotStubbed
	}
	return m.ListAssessmentsFunc(ctx)
}

func (m *Mock) CreateAssessment(ctx context.Context, templateID string) (*models.Assessment, error) {
	m.Calls = append(m.Calls, "CreateAssessment")
	if m.CreateAssessmentFunc == nil {
		return nil, errNotStubbed
	}
	return m.CreateAssessmentFunc(ctx, templateID)
}

func (m *Mock) GetAssessment(ctx context.Context, id string) (*models.Assessment, error) {
	m.Calls = append(m.Calls, "GetAssessment")
	if m.GetAssessmentFunc == nil {
		return nil, errNotStubbed
	}
	return m.GetAssessmentFunc(ctx, id)
}

func (m *Mock) UpsertSubmission(ctx context.Context, req SubmissionRequest) (*models.Submission, error) {
	m.Calls = append(m.Calls, "UpsertSubmission")
	if m.UpsertSubmissionFunc == nil {
		return nil, errNotStubbed
	}
	return m.UpsertSubmissionFunc(ctx, req)
}

func (m *Mock) ReviewSubmission(ctx context.Context, submissionID string, status models.SubmissionStatus, reviewNote string) (*models.Submission, error) {
	m.Calls = append(m.Calls, "ReviewSubmission")
	if m.ReviewSubmissionFunc == nil {
		return nil, errNotStubbed
	}
	return m.ReviewSubmissionFunc(ctx, submissionID, status, reviewNote)
}

func (m *Mock) ListTemplates(ctx context.Context) ([]models.Template, error) {
	m.Calls = append(m.Calls, "ListTemplates")
	if m.ListTemplatesFunc == nil {
		return nil, errNotStubbed
	}
	return m.ListTemplatesFunc(ctx)
}

func (m *Mock) GetTemplate(ctx context.Context, id string) (*models.TemplateDetail, error) {
	m.Calls = append(m.Calls, "GetTemplate")
	if m.GetTemplateFunc == nil {
		return nil, errNotStubbed
	}
	return m.GetTemplateFunc(ctx, id)
}

func (m *Mock) UploadTemplate(ctx context.Context, fileName, title string, contents io.Reader) (*models.Template, error) {
	m.Calls = append(m.Calls, "UploadTemplate")
	if m.UploadTemplateFunc == nil {
		return nil, errNotStubbed
	}
	return m.UploadTemplateFunc(ctx, fileName, title, contents)
}

// CallCount returns how many times the named operation was invoked.
func (m *Mock) CallCount(name string) int {
	n := 0
	for _, c := range m.Calls {
		if c == name {
			n++
		}
	}
	return n
}
