package router

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kyraongithub/compliance-gateway/internal/handler"
	mw "github.com/kyraongithub/compliance-gateway/internal/middleware"
)

func New(
	logger *zap.Logger,
	authH *handler.AuthHandler,
	assessmentH *handler.AssessmentHandler,
	submissionH *handler.SubmissionHandler,
	templateH *handler.TemplateHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery(logger))
	r.Use(mw.Logger(logger))
	r.Use(mw.CORS)

	// Browser redirect into the OAuth dance
	r.Get("/auth/google", authH.GoogleLogin)

	r.Route("/api", func(r chi.Router) {
		// Assessments
		r.Get("/assessments", assessmentH.List)
		r.Post("/assessments", assessmentH.Create)
		r.Get("/assessments/{assessmentId}", assessmentH.Get)

		// Submissions
		r.Put("/submissions", submissionH.Upsert)
		r.Put("/submissions/{submissionId}/review", submissionH.Review)

		// Templates
		r.Get("/templates", templateH.List)
		r.Get("/templates/{templateId}", templateH.Get)
		r.Post("/templates/upload", templateH.Upload)
	})

	return r
}
