package file

import (
	"context"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) FileService {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)
	return NewFileService(local)
}

func TestUploadResume(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	path, err := svc.UploadResume(ctx, strings.NewReader("%PDF"), "CV.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "resume/"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	_, err = svc.UploadResume(ctx, strings.NewReader("x"), "cv.docx")
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestUploadProfileImage(t *testing.T) {
	svc := newTestService(t)

	path, err := svc.UploadProfileImage(context.Background(), strings.NewReader("png"), "me.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "profileImage/"))

	url, err := svc.GetFileURL(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/uploads/"+path, url)

	_, err = svc.UploadProfileImage(context.Background(), strings.NewReader("gif"), "me.gif")
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestUploadLeaveDocument(t *testing.T) {
	svc := newTestService(t)

	path, err := svc.UploadLeaveDocument(context.Background(), "e-1", strings.NewReader("%PDF"), "note.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "leave/e-1/"))
	require.NoError(t, svc.DeleteFile(context.Background(), path))
}

func TestResolveURL(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.Nil(t, svc.ResolveURL(ctx, nil))
	empty := ""
	assert.Nil(t, svc.ResolveURL(ctx, &empty))

	key := "resume/cv.pdf"
	got := svc.ResolveURL(ctx, &key)
	require.NotNil(t, got)
	assert.Equal(t, "http://localhost/uploads/resume/cv.pdf", *got)

	outside := "../.."
	assert.Nil(t, svc.ResolveURL(ctx, &outside))
}
