package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base)
	require.NoError(t, err)

	header := multipartHeader(t, "Students.CSV", "name,grade\nAsha,5\n")

	rel, err := storage.SaveFileWithPath(header, "bulk")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "bulk"+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(rel, ".csv"))

	data, err := os.ReadFile(storage.fullPath(rel))
	require.NoError(t, err)
	assert.Equal(t, "name,grade\nAsha,5\n", string(data))

	require.NoError(t, storage.DeleteFile(rel))
	_, err = os.Stat(storage.fullPath(rel))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, storage.DeleteFile(rel))
}

func TestLocalStorage_NilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	rel, err := storage.SaveFileWithPath(nil, "bulk")
	require.NoError(t, err)
	assert.Empty(t, rel)
}

func TestLocalStorage_FullPathStaysInBase(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "etc", "passwd"), storage.fullPath("../../etc/passwd"))
}
