package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestS3(t *testing.T, endpoint string) *S3Storage {
	t.Helper()
	s, err := NewS3Storage(context.Background(), S3Config{
		Region:    "us-east-1",
		Endpoint:  endpoint,
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "uploads",
	})
	require.NoError(t, err)
	return s
}

func TestS3Storage_GetURLIsPresignedPathStyle(t *testing.T) {
	s := newTestS3(t, "http://minio.local:9000")

	url, err := s.GetURL(context.Background(), "resume/cv.pdf", 0)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://minio.local:9000/uploads/resume/cv.pdf?"), url)
	assert.Contains(t, url, "X-Amz-Expires=900")
	assert.Contains(t, url, "X-Amz-Signature=")
}

func TestS3Storage_Exists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Path == "/uploads/resume/present.pdf" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := newTestS3(t, server.URL)

	ok, err := s.Exists(context.Background(), "resume/present.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(context.Background(), "resume/missing.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}
