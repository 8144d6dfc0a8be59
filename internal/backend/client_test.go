package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyraongithub/compliance-gateway/internal/models"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{BaseURL: srv.URL}, staticToken("tok"))
	require.NoError(t, err)
	return client, srv
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.BaseURL = "http://localhost:3001"
	assert.NoError(t, cfg.Validate())
}

func TestListAssessmentsSendsBearerToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/assessments", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Assessment{{ID: "a1", Status: models.AssessmentInProgress}})
	})

	list, err := client.ListAssessments(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a1", list[0].ID)
}

func TestCreateAssessment(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"templateId": "t1"}, body)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Assessment{ID: "a1", TemplateID: "t1"})
	})

	a, err := client.CreateAssessment(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
}

func TestUpsertSubmissionBodyShape(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/submissions", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// Both content fields are present even when empty.
		assert.Equal(t, map[string]any{
			"assessmentId":         "a1",
			"requirementId":        "r1",
			"implementationDetail": "X",
			"evidenceLink":         "",
		}, body)
		json.NewEncoder(w).Encode(models.Submission{ID: "s1", RequirementID: "r1"})
	})

	sub, err := client.UpsertSubmission(context.Background(), SubmissionRequest{
		AssessmentID:         "a1",
		RequirementID:        "r1",
		ImplementationDetail: "X",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", sub.ID)
}

func TestReviewSubmissionOmitsEmptyNote(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions/s1/review", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(models.Submission{ID: "s1", Status: models.SubmissionCompliant})
	})

	_, err := client.ReviewSubmission(context.Background(), "s1", models.SubmissionCompliant, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "COMPLIANT"}, got)

	_, err = client.ReviewSubmission(context.Background(), "s1", models.SubmissionCompliant, "solid evidence")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "COMPLIANT", "reviewNote": "solid evidence"}, got)
}

func TestGetTemplate(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/templates/t1", r.URL.Path)
		json.NewEncoder(w).Encode(models.TemplateDetail{
			Template:   models.Template{ID: "t1", Status: models.TemplateAvailable},
			Categories: []models.Category{{ID: "c1", Name: "Access"}},
		})
	})

	tpl, err := client.GetTemplate(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, tpl.Categories, 1)
	assert.Equal(t, "c1", tpl.Categories[0].ID)
}

func TestUploadTemplateMultipart(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/templates/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)

		assert.Equal(t, "soc2.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.7", string(data))
		assert.Equal(t, "SOC 2", r.FormValue("title"))

		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(models.Template{ID: "t9", Title: "SOC 2", Status: models.TemplateProcessing})
	})

	tpl, err := client.UploadTemplate(context.Background(), "soc2.pdf", "SOC 2", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	assert.Equal(t, models.TemplateProcessing, tpl.Status)
}

func TestNonSuccessStatusBecomesStatusError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})

	_, err := client.GetAssessment(context.Background(), "missing")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, statusErr.Body, "not found")
}

func TestNoTokenMeansNoAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Template{})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL}, staticToken(""))
	require.NoError(t, err)
	_, err = client.ListTemplates(context.Background())
	require.NoError(t, err)
}
