package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Max 12MB
const maxUploadBytes = 12 << 20

type TemplateHandler struct {
	proxy *Proxy
}

func NewTemplateHandler(proxy *Proxy) *TemplateHandler {
	return &TemplateHandler{proxy: proxy}
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	h.proxy.Forward(w, r, "/templates")
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.proxy.Forward(w, r, "/templates/"+chi.URLParam(r, "templateId"))
}

// Upload checks that a file part is present, then re-multiparts file + title
// for the backend, which answers 202 and processes asynchronously.
func (h *TemplateHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", header.Filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build upload")
		return
	}
	if _, err := io.Copy(part, file); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	if title := r.FormValue("title"); title != "" {
		mw.WriteField("title", title)
	}
	mw.Close()

	h.proxy.ForwardBody(w, r, http.MethodPost, "/templates/upload", &buf, mw.FormDataContentType())
}
