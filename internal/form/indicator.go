package form

import "github.com/kyraongithub/compliance-gateway/internal/models"

// Indicator is the per-requirement status dot in the requirements panel.
type Indicator int

const (
	// IndicatorNeutral marks a requirement with no data that is not active.
	IndicatorNeutral Indicator = iota
	// IndicatorActive marks the active requirement while it has no data.
	IndicatorActive
	// IndicatorInReview marks data that has not been reviewed yet.
	IndicatorInReview
	IndicatorCompliant
	IndicatorRejected
)

func (i Indicator) String() string {
	switch i {
	case IndicatorActive:
		return "active"
	case IndicatorInReview:
		return "in-review"
	case IndicatorCompliant:
		return "compliant"
	case IndicatorRejected:
		return "rejected"
	default:
		return "neutral"
	}
}

// Indicator derives the dot for a requirement from the edit buffer: no data
// yields the neutral/active pair, reviewed data its verdict, anything else
// the in-review state.
func (m *Machine) Indicator(requirementID string) Indicator {
	entry := m.formData[requirementID]
	hasData := entry.ImplementationDetail != "" || entry.EvidenceLink != ""
	if !hasData {
		if req := m.SelectedRequirement(); req != nil && req.ID == requirementID {
			return IndicatorActive
		}
		return IndicatorNeutral
	}
	switch entry.Status {
	case models.SubmissionCompliant:
		return IndicatorCompliant
	case models.SubmissionRejected:
		return IndicatorRejected
	default:
		return IndicatorInReview
	}
}
