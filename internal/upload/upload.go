// Package upload manages the template upload flow: local file selection with
// drag-and-drop, a title derived from the filename, and the multipart post
// that kicks off asynchronous processing on the backend.
package upload

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kyraongithub/compliance-gateway/internal/backend"
	"github.com/kyraongithub/compliance-gateway/internal/cache"
	"github.com/kyraongithub/compliance-gateway/internal/models"
)

var (
	ErrNotPDF         = errors.New("upload: only PDF files are accepted")
	ErrNoFile         = errors.New("upload: select a PDF file first")
	ErrUploadInFlight = errors.New("upload: an upload is already in flight")
)

// Flow is driven from a single event loop, like the form machine.
type Flow struct {
	api    backend.API
	cache  *cache.Store
	logger *zap.Logger

	fileName   string
	title      string
	dragActive bool
	pending    bool
}

func NewFlow(api backend.API, store *cache.Store, logger *zap.Logger) *Flow {
	return &Flow{
		api:    api,
		cache:  store,
		logger: logger.With(zap.String("component", "upload")),
	}
}

// SelectFile validates and records a chosen file. Anything but a .pdf
// (case-insensitive) is rejected without touching local state. The first
// selection pre-fills the title from the filename sans extension.
func (f *Flow) SelectFile(name string) error {
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return ErrNotPDF
	}
	f.fileName = name
	if f.title == "" {
		f.title = titleFromFileName(name)
	}
	return nil
}

func (f *Flow) SetTitle(title string) {
	f.title = title
}

func (f *Flow) ClearFile() {
	f.fileName = ""
	f.title = ""
}

func (f *Flow) FileName() string { return f.fileName }
func (f *Flow) Title() string    { return f.title }
func (f *Flow) Pending() bool    { return f.pending }

// Drag-and-drop handlers. Enter and over both mark the zone active; a drop
// routes the dropped file through the same SelectFile validation.

func (f *Flow) DragEnter() { f.dragActive = true }
func (f *Flow) DragOver()  { f.dragActive = true }
func (f *Flow) DragLeave() { f.dragActive = false }

func (f *Flow) Drop(name string) error {
	f.dragActive = false
	return f.SelectFile(name)
}

func (f *Flow) DragActive() bool { return f.dragActive }

// Submit posts the selected file and the effective title (trimmed, falling
// back to the filename-derived default). On success the selection is cleared
// and the template list invalidated so the new PROCESSING entry shows up; on
// failure everything stays put for a retry.
func (f *Flow) Submit(ctx context.Context, contents io.Reader) (*models.Template, error) {
	if f.pending {
		return nil, ErrUploadInFlight
	}
	if f.fileName == "" {
		return nil, ErrNoFile
	}
	title := strings.TrimSpace(f.title)
	if title == "" {
		title = titleFromFileName(f.fileName)
	}

	f.pending = true
	defer func() { f.pending = false }()

	tpl, err := f.api.UploadTemplate(ctx, f.fileName, title, contents)
	if err != nil {
		f.logger.Warn("template upload failed", zap.String("file", f.fileName), zap.Error(err))
		return nil, err
	}

	f.fileName = ""
	f.title = ""
	f.cache.Invalidate(cache.KeyTemplates)
	f.logger.Info("template uploaded, processing started",
		zap.String("id", tpl.ID), zap.String("title", tpl.Title))
	return tpl, nil
}

func titleFromFileName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
