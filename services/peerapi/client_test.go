package peerapi

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logsvc "github.com/baobab-edu/peerreview-cli/services/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL+"/api/v1/", logsvc.NewStdLogger(io.Discard))
	require.NoError(t, err)
	return client
}

func TestFetch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/api/v1/PeerReview/Class/8/1/42/tok":
			w.Write([]byte(`{"id":42}`))
		case "/api/v1/secret":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	ctx := context.Background()

	body, ok := client.Fetch(ctx, "PeerReview/Class/8/1/42/tok")
	require.True(t, ok)
	assert.JSONEq(t, `{"id":42}`, string(body))

	_, ok = client.Fetch(ctx, "secret")
	assert.False(t, ok)

	_, ok = client.Fetch(ctx, "nope")
	assert.False(t, ok)
}

func TestPostForBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "t@test.test", payload["email"])

		w.Write([]byte(`{"token":"{123e4567-e89b-12d3-a456-426614174000}"}`))
	}))

	body, ok := client.PostForBody(context.Background(), "Login", map[string]string{"email": "t@test.test"})
	require.True(t, ok)
	assert.Contains(t, string(body), "123e4567")
}

func TestTimeoutAbortsSlowCalls(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	client.Timeout(50 * time.Millisecond)

	_, ok := client.Fetch(context.Background(), "PeerReview/Class/8/1/42/tok")
	assert.False(t, ok)
}

func TestPostReportsFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	ok := client.Post(context.Background(), "PeerReview/Feedback", map[string]int{"grade": 6})
	assert.False(t, ok)
}

func TestUploadPDF(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "answer.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 test"), 0o644))

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/form-data", mediaType)

		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "answer.pdf", hdr.Filename)
		assert.Equal(t, "application/pdf", hdr.Header.Get("Content-Type"))

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 test", string(content))

		var meta map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("data")), &meta))
		assert.EqualValues(t, 8, meta["website"])
	}))

	ok := client.UploadPDF(context.Background(), "PeerReview/Upload/Pdf",
		map[string]int{"website": 8}, pdfPath)
	assert.True(t, ok)
}

func TestUploadPDFMissingFile(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected when the file is missing")
	}))

	ok := client.UploadPDF(context.Background(), "PeerReview/Upload/Pdf",
		map[string]int{"website": 8}, filepath.Join(t.TempDir(), "missing.pdf"))
	assert.False(t, ok)
}
