package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	proxy *Proxy
}

func NewSubmissionHandler(proxy *Proxy) *SubmissionHandler {
	return &SubmissionHandler{proxy: proxy}
}

// Upsert creates or overwrites the submission keyed by assessment +
// requirement; the backend owns that invariant.
func (h *SubmissionHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	h.proxy.Forward(w, r, "/submissions")
}

// Review records the admin verdict. Authorization is enforced by the
// backend, not here.
func (h *SubmissionHandler) Review(w http.ResponseWriter, r *http.Request) {
	h.proxy.Forward(w, r, "/submissions/"+chi.URLParam(r, "submissionId")+"/review")
}
