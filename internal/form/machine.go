// Package form is the state machine behind the multi-panel assessment view.
// Server data arrives through the query cache, edits accumulate in local
// buffers, and everything the view shows is derived on demand from the two.
// The machine is driven from a single event loop and is not goroutine-safe.
package form

import (
	"context"

	"go.uber.org/zap"

	"github.com/kyraongithub/compliance-gateway/internal/backend"
	"github.com/kyraongithub/compliance-gateway/internal/cache"
	"github.com/kyraongithub/compliance-gateway/internal/models"
	"github.com/kyraongithub/compliance-gateway/internal/session"
)

// FormEntry is the draft response for one requirement. A zero Status means
// the requirement has never been saved nor seeded.
type FormEntry struct {
	ImplementationDetail string
	EvidenceLink         string
	Status               models.SubmissionStatus
}

// ReviewEntry is the admin's draft verdict for one submission. It is never
// sent anywhere until CompleteReview succeeds.
type ReviewEntry struct {
	ReviewStatus models.SubmissionStatus
	ReviewNote   string
}

type Machine struct {
	api     backend.API
	cache   *cache.Store
	session *session.Manager
	logger  *zap.Logger

	assessmentID string
	assessment   *models.Assessment
	template     *models.TemplateDetail

	selectedCategoryID    string
	selectedRequirementID string
	showReviewPanel       bool

	formData   map[string]FormEntry   // keyed by requirement ID
	reviewData map[string]ReviewEntry // keyed by submission ID
	seeded     bool

	loading   bool
	saving    bool
	reviewing bool
}

func NewMachine(assessmentID string, api backend.API, store *cache.Store, sess *session.Manager, logger *zap.Logger) *Machine {
	return &Machine{
		api:          api,
		cache:        store,
		session:      sess,
		logger:       logger.With(zap.String("component", "form"), zap.String("assessment", assessmentID)),
		assessmentID: assessmentID,
		formData:     make(map[string]FormEntry),
		reviewData:   make(map[string]ReviewEntry),
	}
}

// Load fetches the assessment and its template through the cache and seeds
// the edit buffer from the server submissions. Seeding happens exactly once
// per machine so a refetch never clobbers in-progress edits.
func (m *Machine) Load(ctx context.Context) error {
	if m.loading {
		return ErrActionInFlight
	}
	m.loading = true
	defer func() { m.loading = false }()

	a, err := cache.Fetch(ctx, m.cache, cache.AssessmentKey(m.assessmentID), func(ctx context.Context) (*models.Assessment, error) {
		return m.api.GetAssessment(ctx, m.assessmentID)
	})
	if err != nil {
		return err
	}
	t, err := cache.Fetch(ctx, m.cache, cache.TemplateKey(a.TemplateID), func(ctx context.Context) (*models.TemplateDetail, error) {
		return m.api.GetTemplate(ctx, a.TemplateID)
	})
	if err != nil {
		return err
	}

	m.assessment = a
	m.template = t
	m.seedOnce()
	m.applyGuards()
	return nil
}

// Refresh drops the cached assessment and refetches it. The edit buffer is
// left alone.
func (m *Machine) Refresh(ctx context.Context) error {
	key := cache.AssessmentKey(m.assessmentID)
	m.cache.Invalidate(key)
	a, err := cache.Fetch(ctx, m.cache, key, func(ctx context.Context) (*models.Assessment, error) {
		return m.api.GetAssessment(ctx, m.assessmentID)
	})
	if err != nil {
		return err
	}
	m.assessment = a
	m.seedOnce()
	m.applyGuards()
	return nil
}

func (m *Machine) seedOnce() {
	if m.seeded || m.assessment == nil || m.assessment.Submissions == nil {
		return
	}
	m.seeded = true
	for _, sub := range m.assessment.Submissions {
		status := sub.Status
		if status == "" {
			status = models.SubmissionPending
		}
		m.formData[sub.RequirementID] = FormEntry{
			ImplementationDetail: sub.ImplementationDetail,
			EvidenceLink:         sub.EvidenceLink,
			Status:               status,
		}
	}
}

// applyGuards runs after every state transition. The single reactive effect:
// the review panel closes once the active requirement's status has moved
// past PENDING.
func (m *Machine) applyGuards() {
	if !m.showReviewPanel {
		return
	}
	if st := m.CurrentStatus(); st != "" && st != models.SubmissionPending {
		m.showReviewPanel = false
	}
}

// SelectCategory switches the clause panel. The requirement selection is
// cleared so the first requirement of the new category becomes active.
func (m *Machine) SelectCategory(categoryID string) {
	m.selectedCategoryID = categoryID
	m.selectedRequirementID = ""
	m.applyGuards()
}

func (m *Machine) SelectRequirement(requirementID string) {
	m.selectedRequirementID = requirementID
	m.applyGuards()
}

func (m *Machine) Assessment() *models.Assessment {
	return m.assessment
}

func (m *Machine) Template() *models.TemplateDetail {
	return m.template
}

// SelectedCategory falls back to the first category when nothing is selected
// or the selection no longer exists.
func (m *Machine) SelectedCategory() *models.Category {
	if m.template == nil || len(m.template.Categories) == 0 {
		return nil
	}
	for i := range m.template.Categories {
		if m.template.Categories[i].ID == m.selectedCategoryID {
			return &m.template.Categories[i]
		}
	}
	return &m.template.Categories[0]
}

// SelectedRequirement falls back to the first requirement of the selected
// category. Exactly one requirement is active whenever the template has any.
func (m *Machine) SelectedRequirement() *models.Requirement {
	category := m.SelectedCategory()
	if category == nil || len(category.Requirements) == 0 {
		return nil
	}
	for i := range category.Requirements {
		if category.Requirements[i].ID == m.selectedRequirementID {
			return &category.Requirements[i]
		}
	}
	return &category.Requirements[0]
}

// CurrentSubmission is the server-side submission for the active
// requirement, or nil.
func (m *Machine) CurrentSubmission() *models.Submission {
	req := m.SelectedRequirement()
	if req == nil || m.assessment == nil {
		return nil
	}
	return m.assessment.SubmissionFor(req.ID)
}

// CurrentStatus is the edit-buffer status of the active requirement; ""
// when there is no buffer entry yet.
func (m *Machine) CurrentStatus() models.SubmissionStatus {
	req := m.SelectedRequirement()
	if req == nil {
		return ""
	}
	return m.formData[req.ID].Status
}

func (m *Machine) HasSubmission() bool {
	return m.CurrentSubmission() != nil
}

func (m *Machine) IsPendingSubmission() bool {
	return m.isAdmin() && m.HasSubmission() && m.CurrentStatus() == models.SubmissionPending
}

func (m *Machine) ShowReviewButton() bool {
	return m.isAdmin() && (m.showReviewPanel || m.IsPendingSubmission())
}

// CanReview gates the review panel itself: admins only, and only while the
// panel is open.
func (m *Machine) CanReview() bool {
	return m.isAdmin() && m.showReviewPanel
}

func (m *Machine) ReviewPanelOpen() bool {
	return m.showReviewPanel
}

// SaveAllowed reports whether the save control is visible: it disappears
// once the active requirement has a terminal reviewed status.
func (m *Machine) SaveAllowed() bool {
	return !m.CurrentStatus().Terminal()
}

func (m *Machine) Loading() bool   { return m.loading }
func (m *Machine) Saving() bool    { return m.saving }
func (m *Machine) Reviewing() bool { return m.reviewing }

func (m *Machine) isAdmin() bool {
	return m.session != nil && m.session.IsAdmin()
}

// Entry returns the draft for a requirement; the zero value when none.
func (m *Machine) Entry(requirementID string) FormEntry {
	return m.formData[requirementID]
}

func (m *Machine) SetImplementationDetail(value string) {
	req := m.SelectedRequirement()
	if req == nil {
		return
	}
	entry := m.formData[req.ID]
	entry.ImplementationDetail = value
	m.formData[req.ID] = entry
}

func (m *Machine) SetEvidenceLink(value string) {
	req := m.SelectedRequirement()
	if req == nil {
		return
	}
	entry := m.formData[req.ID]
	entry.EvidenceLink = value
	m.formData[req.ID] = entry
}

func (m *Machine) ToggleReviewPanel() {
	m.showReviewPanel = !m.showReviewPanel
	m.applyGuards()
}

// CurrentReview is the draft verdict for the active requirement's
// submission; the zero value when there is no submission.
func (m *Machine) CurrentReview() ReviewEntry {
	sub := m.CurrentSubmission()
	if sub == nil {
		return ReviewEntry{}
	}
	return m.reviewData[sub.ID]
}

// SetReviewStatus records the chosen verdict. Only the two reviewed states
// are selectable.
func (m *Machine) SetReviewStatus(status models.SubmissionStatus) {
	sub := m.CurrentSubmission()
	if sub == nil || !status.Terminal() {
		return
	}
	entry := m.reviewData[sub.ID]
	entry.ReviewStatus = status
	m.reviewData[sub.ID] = entry
}

func (m *Machine) SetReviewNote(note string) {
	sub := m.CurrentSubmission()
	if sub == nil {
		return
	}
	entry := m.reviewData[sub.ID]
	entry.ReviewNote = note
	m.reviewData[sub.ID] = entry
}

// Save upserts the active requirement's draft. At least one of the two
// content fields must be filled in; validation failures never reach the
// network. On success the assessment is invalidated and refetched; on
// failure the draft stays put so the user can retry without retyping.
func (m *Machine) Save(ctx context.Context) error {
	if m.saving {
		return ErrActionInFlight
	}
	req := m.SelectedRequirement()
	if req == nil {
		return ErrNoRequirement
	}
	entry := m.formData[req.ID]
	if entry.ImplementationDetail == "" && entry.EvidenceLink == "" {
		return ErrEmptyForm
	}

	m.saving = true
	defer func() { m.saving = false }()

	_, err := m.api.UpsertSubmission(ctx, backend.SubmissionRequest{
		AssessmentID:         m.assessmentID,
		RequirementID:        req.ID,
		ImplementationDetail: entry.ImplementationDetail,
		EvidenceLink:         entry.EvidenceLink,
	})
	if err != nil {
		m.logger.Warn("save submission failed", zap.String("requirement", req.ID), zap.Error(err))
		return err
	}

	m.cache.Invalidate(cache.KeyAssessments)
	if err := m.Refresh(ctx); err != nil {
		// The save itself went through; the next read converges.
		m.logger.Warn("assessment refetch failed", zap.Error(err))
	}
	return nil
}

// CompleteReview submits the admin verdict for the active requirement's
// submission. On success the edit-buffer status flips optimistically so the
// indicator reflects the outcome before any refetch lands, and the
// auto-close guard shuts the panel.
func (m *Machine) CompleteReview(ctx context.Context) error {
	if m.reviewing {
		return ErrActionInFlight
	}
	sub := m.CurrentSubmission()
	if sub == nil {
		return ErrNoSubmission
	}
	review := m.reviewData[sub.ID]
	if review.ReviewStatus == "" {
		return ErrNoReviewStatus
	}

	m.reviewing = true
	defer func() { m.reviewing = false }()

	_, err := m.api.ReviewSubmission(ctx, sub.ID, review.ReviewStatus, review.ReviewNote)
	if err != nil {
		m.logger.Warn("review submission failed", zap.String("submission", sub.ID), zap.Error(err))
		return err
	}

	entry := m.formData[sub.RequirementID]
	entry.Status = review.ReviewStatus
	m.formData[sub.RequirementID] = entry

	m.cache.Invalidate(cache.KeyAssessments)
	m.applyGuards()
	return nil
}
