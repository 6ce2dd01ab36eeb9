package matching

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScorer struct {
	result string
	err    error

	calls   int
	gotMime string
	gotJD   string
	gotFile []byte
}

func (f *fakeScorer) Score(_ context.Context, resume []byte, mimeType, jobDescription string) (string, error) {
	f.calls++
	f.gotFile = resume
	f.gotMime = mimeType
	f.gotJD = jobDescription
	return f.result, f.err
}

func newTestRouter(scorer Scorer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r.Group("/api/v1"), scorer)
	return r
}

func multipartBody(t *testing.T, withFile bool, jobDescription string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if withFile {
		fw, err := mw.CreateFormFile("resume", "resume.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4 fake resume"))
		require.NoError(t, err)
	}
	if jobDescription != "" {
		require.NoError(t, mw.WriteField("job_description", jobDescription))
	}
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func post(t *testing.T, r *gin.Engine, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/match-resume", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestMatchResume_MissingFile(t *testing.T) {
	scorer := &fakeScorer{}
	r := newTestRouter(scorer)

	body, ct := multipartBody(t, false, "Looking for a Go engineer")
	w, resp := post(t, r, body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Resume file and job description are missing.", resp["error"])
	assert.Zero(t, scorer.calls, "scorer must not be called without both inputs")
}

func TestMatchResume_MissingJobDescription(t *testing.T) {
	scorer := &fakeScorer{}
	r := newTestRouter(scorer)

	body, ct := multipartBody(t, true, "")
	w, resp := post(t, r, body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Resume file and job description are missing.", resp["error"])
	assert.Zero(t, scorer.calls)
}

func TestMatchResume_Success(t *testing.T) {
	scorer := &fakeScorer{result: "85"}
	r := newTestRouter(scorer)

	body, ct := multipartBody(t, true, "Looking for a Go engineer")
	w, resp := post(t, r, body, ct)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "85", resp["result"])
	assert.Equal(t, 1, scorer.calls)
	assert.Equal(t, "Looking for a Go engineer", scorer.gotJD)
	assert.Equal(t, []byte("%PDF-1.4 fake resume"), scorer.gotFile)
}

func TestMatchResume_ScorerFailure(t *testing.T) {
	scorer := &fakeScorer{err: errors.New("upstream down")}
	r := newTestRouter(scorer)

	body, ct := multipartBody(t, true, "Looking for a Go engineer")
	w, resp := post(t, r, body, ct)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to process the resume.", resp["error"])
}

func TestCleanScore(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"85", "85"},
		{" 85 \n", "85"},
		{"85/100", "85"},
		{"100", "100"},
		{"150", "100"},
		{"0", "0"},
		{"The score is 85", "The score is 85"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanScore(c.in), "CleanScore(%q)", c.in)
	}
}
