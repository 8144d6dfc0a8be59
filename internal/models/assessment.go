package models

type AssessmentStatus string

const (
	AssessmentInProgress AssessmentStatus = "IN_PROGRESS"
	AssessmentSubmitted  AssessmentStatus = "SUBMITTED"
	AssessmentReviewed   AssessmentStatus = "REVIEWED"
)

type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "PENDING"
	SubmissionCompliant SubmissionStatus = "COMPLIANT"
	SubmissionRejected  SubmissionStatus = "REJECTED"
)

// Terminal reports whether a submission has been reviewed, one way or the
// other. A terminal submission can no longer be saved over by its owner.
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionCompliant || s == SubmissionRejected
}

type Assessment struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	TemplateID  string           `json:"templateId"`
	Status      AssessmentStatus `json:"status"`
	Submissions []Submission     `json:"submissions,omitempty"`
	CreatedAt   string           `json:"createdAt,omitempty"`
	UpdatedAt   string           `json:"updatedAt,omitempty"`
}

// SubmissionFor returns the submission for a requirement, or nil. The backend
// keeps at most one submission per requirement per assessment.
func (a *Assessment) SubmissionFor(requirementID string) *Submission {
	for i := range a.Submissions {
		if a.Submissions[i].RequirementID == requirementID {
			return &a.Submissions[i]
		}
	}
	return nil
}

type Submission struct {
	ID                   string           `json:"id"`
	RequirementID        string           `json:"requirementId"`
	ImplementationDetail string           `json:"implementationDetail,omitempty"`
	EvidenceLink         string           `json:"evidenceLink,omitempty"`
	Status               SubmissionStatus `json:"status"`
	ReviewNote           string           `json:"reviewNote,omitempty"`
}
