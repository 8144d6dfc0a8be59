package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type AssessmentHandler struct {
	proxy *Proxy
}

func NewAssessmentHandler(proxy *Proxy) *AssessmentHandler {
	return &AssessmentHandler{proxy: proxy}
}

func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	h.proxy.Forward(w, r, "/assessments")
}

func (h *AssessmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.proxy.Forward(w, r, "/assessments")
}

func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.proxy.Forward(w, r, "/assessments/"+chi.URLParam(r, "assessmentId"))
}
