// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frameit/frameit-backend/internal/config"
)

func testStorage(t *testing.T) *StorageService {
	t.Helper()
	cfg := &config.Config{
		Upload: config.UploadConfig{
			PublicDir:        t.TempDir(),
			MaxModelFileSize: 10 << 20,
			MaxImageSize:     5 << 20,
		},
	}
	svc, err := NewStorageService(cfg)
	require.NoError(t, err)
	return svc
}

// uploadedFile builds a real multipart.FileHeader the way gin hands one to
// a handler.
func uploadedFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func TestSaveModelFileKeepsOriginalName(t *testing.T) {
	svc := testStorage(t)

	name, err := svc.SaveModelFile("aviator", uploadedFile(t, "scene.gltf", []byte(`{"asset":{"version":"2.0"}}`)))
	require.NoError(t, err)
	assert.Equal(t, "scene.gltf", name)

	data, err := os.ReadFile(svc.AbsPath("models/glasses/aviator/scene.gltf"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2.0")
}

func TestSaveModelFileRejectsTraversingModelName(t *testing.T) {
	svc := testStorage(t)

	for _, name := range []string{"../escape", "..", "a/b", `a\b`, ".", ""} {
		_, err := svc.SaveModelFile(name, uploadedFile(t, "scene.gltf", []byte("{}")))
		assert.Error(t, err, "model name %q", name)
	}

	// Nothing may land outside the public root.
	entries, err := os.ReadDir(filepath.Join(svc.PublicDir(), ".."))
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, filepath.Base(svc.PublicDir()), e.Name())
	}
}

func TestSaveTextureFileRejectsTraversingModelName(t *testing.T) {
	svc := testStorage(t)

	_, err := svc.SaveTextureFile("../escape", uploadedFile(t, "frame_basecolor.png", []byte{0x89}))
	assert.Error(t, err)
}

func TestSaveModelFileRejectsUnknownExtension(t *testing.T) {
	svc := testStorage(t)

	_, err := svc.SaveModelFile("aviator", uploadedFile(t, "notes.txt", []byte("x")))
	assert.Error(t, err)
}

func TestSaveTextureFileKeepsOriginalName(t *testing.T) {
	svc := testStorage(t)

	name, err := svc.SaveTextureFile("aviator", uploadedFile(t, "frame_basecolor.png", []byte{0x89, 0x50}))
	require.NoError(t, err)
	assert.Equal(t, "frame_basecolor.png", name)
	assert.FileExists(t, svc.AbsPath("textures/aviator/frame_basecolor.png"))
}

func TestSaveProductImageGeneratesUniqueName(t *testing.T) {
	svc := testStorage(t)
	pattern := regexp.MustCompile(`^images/products/\d{13,}-[A-Za-z0-9]{9}\.jpg$`)

	first, err := svc.SaveProductImage(uploadedFile(t, "photo.JPG", []byte{0xff, 0xd8}))
	require.NoError(t, err)
	assert.Regexp(t, pattern, first)
	assert.FileExists(t, svc.AbsPath(first))

	second, err := svc.SaveProductImage(uploadedFile(t, "photo.JPG", []byte{0xff, 0xd8}))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSaveProductImageRejectsNonImage(t *testing.T) {
	svc := testStorage(t)

	_, err := svc.SaveProductImage(uploadedFile(t, "catalog.pdf", []byte("x")))
	assert.Error(t, err)
}

func TestPublicURLLocalMode(t *testing.T) {
	svc := testStorage(t)

	assert.Equal(t, "/static/images/products/x.jpg", svc.PublicURL("images/products/x.jpg"))
}

func TestPublicURLPrefersCDN(t *testing.T) {
	cfg := &config.Config{
		Upload: config.UploadConfig{PublicDir: t.TempDir()},
		AWS: config.AWSConfig{
			Region:          "us-east-1",
			AccessKeyID:     "AKIATEST",
			SecretAccessKey: "secret",
			S3Bucket:        "frameit-assets",
			CloudFrontURL:   "https://cdn.example.com",
		},
	}
	svc, err := NewStorageService(cfg)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/images/products/x.jpg",
		svc.PublicURL("images/products/x.jpg"))
}

func TestNewStorageServiceCreatesUploadDirectories(t *testing.T) {
	svc := testStorage(t)

	for _, dir := range []string{"models/glasses", "textures", "images/products"} {
		info, err := os.Stat(filepath.Join(svc.PublicDir(), filepath.FromSlash(dir)))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
