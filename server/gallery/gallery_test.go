package gallery

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}

func testStorage(t *testing.T) *LocalStorage {
	t.Helper()
	storage, err := NewLocalStorage(filepath.Join(t.TempDir(), "uploaded"), quietLogger())
	require.NoError(t, err)
	storage.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return storage
}

func TestSaveNamesByTimestamp(t *testing.T) {
	storage := testStorage(t)

	name, err := storage.Save("Cat.png", strings.NewReader("meow"))
	require.NoError(t, err)
	assert.Equal(t, "1700000000000.png", name)

	name, err = storage.Save("dog.png", strings.NewReader("woof"))
	require.NoError(t, err)
	assert.Equal(t, "1700000000001.png", name, "same millisecond gets the next name")

	b, err := os.ReadFile(filepath.Join(storage.Dir(), "1700000000000.png"))
	require.NoError(t, err)
	assert.Equal(t, "meow", string(b))

	names, err := storage.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"1700000000000.png", "1700000000001.png"}, names)
}

func TestSaveKeepsExtensionCase(t *testing.T) {
	storage := testStorage(t)
	name, err := storage.Save("a.JPG", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "1700000000000.JPG", name)

	for original, want := range map[string]string{
		"a.JPG":      ".JPG",
		"Photo.Jpeg": ".Jpeg",
		"scan.png":   ".png",
		"README":     "",
	} {
		name, err := storage.Save(original, strings.NewReader("x"))
		require.NoError(t, err)
		assert.Equal(t, want, filepath.Ext(name), original)
		assert.FileExists(t, filepath.Join(storage.Dir(), name))
	}
}

func TestSaveIgnoresDirectoriesInName(t *testing.T) {
	storage := testStorage(t)
	name, err := storage.Save("../../etc/evil.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "1700000000000.jpg", name)
	assert.FileExists(t, filepath.Join(storage.Dir(), name))
}

func testRouter(storage *LocalStorage) http.Handler {
	var r chi.Router = chi.NewRouter()
	PopulateGalleryRoutes(&r, storage, quietLogger())
	return r
}

func TestUploadAndList(t *testing.T) {
	storage := testStorage(t)
	router := testRouter(storage)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("imageFile", "cat.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("meow"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/images/add", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/images", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `src="/images/uploaded/1700000000000.jpg"`)
}

func TestUploadWithoutFileRedirects(t *testing.T) {
	storage := testStorage(t)
	router := testRouter(storage)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/images/add", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	names, err := storage.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestImagesWithNoUploads(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(testStorage(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no images")
}
