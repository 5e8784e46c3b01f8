package files

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestDiskStore_Save(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root)
	require.NoError(t, err)

	fh := makeFileHeader(t, "Cover Image.PNG", []byte("png-bytes"))
	urlPath, err := store.Save(fh, "courses", "course")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(urlPath, "/uploads/courses/course-"), urlPath)
	assert.True(t, strings.HasSuffix(urlPath, ".png"), urlPath)

	onDisk := filepath.Join(root, strings.TrimPrefix(urlPath, "/uploads/"))
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), content)

	// names never collide even for identical uploads
	urlPath2, err := store.Save(fh, "courses", "course")
	require.NoError(t, err)
	assert.NotEqual(t, urlPath, urlPath2)
}

func TestDiskStore_Remove(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root)
	require.NoError(t, err)

	fh := makeFileHeader(t, "hero.png", []byte("png-bytes"))
	urlPath, err := store.Save(fh, "slider", "slider")
	require.NoError(t, err)
	onDisk := filepath.Join(root, strings.TrimPrefix(urlPath, "/uploads/"))

	require.NoError(t, store.Remove(urlPath))
	assert.NoFileExists(t, onDisk)

	// removing an already-removed path is not an error
	assert.NoError(t, store.Remove(urlPath))

	// only upload paths are accepted
	assert.Error(t, store.Remove("/etc/passwd"))
}
