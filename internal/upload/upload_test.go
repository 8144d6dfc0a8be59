package upload

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kyraongithub/compliance-gateway/internal/backend"
	"github.com/kyraongithub/compliance-gateway/internal/cache"
	"github.com/kyraongithub/compliance-gateway/internal/models"
)

func newTestFlow() (*Flow, *backend.Mock, *cache.Store) {
	mock := &backend.Mock{}
	store := cache.New()
	return NewFlow(mock, store, zap.NewNop()), mock, store
}

func TestSelectFileAcceptsPDFCaseInsensitive(t *testing.T) {
	f, _, _ := newTestFlow()

	require.NoError(t, f.SelectFile("report.PDF"))
	assert.Equal(t, "report.PDF", f.FileName())
	assert.Equal(t, "report", f.Title())
}

func TestSelectFileRejectsOtherExtensions(t *testing.T) {
	f, _, _ := newTestFlow()

	err := f.SelectFile("report.docx")
	assert.ErrorIs(t, err, ErrNotPDF)
	assert.Empty(t, f.FileName())
	assert.Empty(t, f.Title())
}

func TestSelectFileKeepsExistingTitle(t *testing.T) {
	f, _, _ := newTestFlow()

	f.SetTitle("ISO 27001")
	require.NoError(t, f.SelectFile("annex-a.pdf"))
	assert.Equal(t, "ISO 27001", f.Title())
}

func TestDragAndDrop(t *testing.T) {
	f, _, _ := newTestFlow()

	f.DragEnter()
	assert.True(t, f.DragActive())
	f.DragLeave()
	assert.False(t, f.DragActive())
	f.DragOver()
	assert.True(t, f.DragActive())

	// A drop routes through the same validation and clears the flag.
	assert.ErrorIs(t, f.Drop("notes.txt"), ErrNotPDF)
	assert.False(t, f.DragActive())
	require.NoError(t, f.Drop("soc2.pdf"))
	assert.Equal(t, "soc2.pdf", f.FileName())
}

func TestSubmitRequiresFile(t *testing.T) {
	f, mock, _ := newTestFlow()

	_, err := f.Submit(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoFile)
	assert.Zero(t, mock.CallCount("UploadTemplate"))
}

func TestSubmitSendsEffectiveTitleAndClearsState(t *testing.T) {
	f, mock, store := newTestFlow()

	fetches := 0
	listTemplates := func(context.Context) ([]models.Template, error) {
		fetches++
		return nil, nil
	}
	_, err := cache.Fetch(context.Background(), store, cache.KeyTemplates, listTemplates)
	require.NoError(t, err)
	require.Equal(t, 1, fetches)

	mock.UploadTemplateFunc = func(_ context.Context, fileName, title string, contents io.Reader) (*models.Template, error) {
		assert.Equal(t, "soc2.pdf", fileName)
		assert.Equal(t, "SOC 2", title)
		data, _ := io.ReadAll(contents)
		assert.Equal(t, "%PDF-", string(data))
		return &models.Template{ID: "t9", Title: title, Status: models.TemplateProcessing}, nil
	}

	require.NoError(t, f.SelectFile("soc2.pdf"))
	f.SetTitle("  SOC 2  ")
	tpl, err := f.Submit(context.Background(), strings.NewReader("%PDF-"))
	require.NoError(t, err)
	assert.Equal(t, models.TemplateProcessing, tpl.Status)

	assert.Empty(t, f.FileName())
	assert.Empty(t, f.Title())

	// The template list was invalidated, so the next read refetches.
	_, err = cache.Fetch(context.Background(), store, cache.KeyTemplates, listTemplates)
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)
}

func TestSubmitFallsBackToFilenameTitle(t *testing.T) {
	f, mock, _ := newTestFlow()

	mock.UploadTemplateFunc = func(_ context.Context, _, title string, _ io.Reader) (*models.Template, error) {
		assert.Equal(t, "gdpr-controls", title)
		return &models.Template{ID: "t1", Title: title, Status: models.TemplateProcessing}, nil
	}

	require.NoError(t, f.SelectFile("gdpr-controls.pdf"))
	f.SetTitle("   ")
	_, err := f.Submit(context.Background(), strings.NewReader("x"))
	require.NoError(t, err)
}

func TestSubmitFailureKeepsSelection(t *testing.T) {
	f, mock, store := newTestFlow()

	primed := 0
	_, err := cache.Fetch(context.Background(), store, cache.KeyTemplates, func(context.Context) ([]models.Template, error) {
		primed++
		return nil, nil
	})
	require.NoError(t, err)

	mock.UploadTemplateFunc = func(context.Context, string, string, io.Reader) (*models.Template, error) {
		return nil, assert.AnError
	}

	require.NoError(t, f.SelectFile("soc2.pdf"))
	_, err = f.Submit(context.Background(), strings.NewReader("x"))
	assert.Error(t, err)

	// Selection and cache both survive so the user can retry.
	assert.Equal(t, "soc2.pdf", f.FileName())
	_, err = cache.Fetch(context.Background(), store, cache.KeyTemplates, func(context.Context) ([]models.Template, error) {
		primed++
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, primed)
}
