// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/frameit/frameit-backend/internal/config"
	"github.com/frameit/frameit-backend/internal/utils"
)

// StorageService writes uploaded assets to the public directory that the
// static routes serve. Model and texture files keep their original
// filenames inside a model-name-keyed directory (GLTF documents reference
// sibling .bin/texture files by name); product images get generated names.
// When AWS credentials are configured every file is also mirrored to S3 for
// CDN serving.
type StorageService struct {
	cfg      *config.Config
	s3Client *s3.S3
}

var modelFileExtensions = []string{".json", ".gltf", ".glb", ".bin"}
var imageFileExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// validModelName rejects names that could place files outside the
// model-name-keyed directories under the public root.
func validModelName(name string) error {
	if name == "" || name == "." || strings.ContainsAny(name, `/\`) ||
		strings.Contains(name, "..") {
		return fmt.Errorf("invalid model name %q", name)
	}
	return nil
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	svc := &StorageService{cfg: cfg}

	if cfg.AWS.AccessKeyID != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.AWS.Region),
			Credentials: credentials.NewStaticCredentials(
				cfg.AWS.AccessKeyID,
				cfg.AWS.SecretAccessKey,
				"",
			),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		svc.s3Client = s3.New(sess)
	}

	// Upload directories must exist before the first multipart request.
	for _, dir := range []string{
		filepath.Join(cfg.Upload.PublicDir, "models", "glasses"),
		filepath.Join(cfg.Upload.PublicDir, "textures"),
		filepath.Join(cfg.Upload.PublicDir, "images", "products"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
		}
	}

	return svc, nil
}

// AbsPath resolves a stored relative asset path under the public root.
func (s *StorageService) AbsPath(rel string) string {
	return filepath.Join(s.cfg.Upload.PublicDir, filepath.FromSlash(rel))
}

// PublicDir is the root handed to the static file routes.
func (s *StorageService) PublicDir() string {
	return s.cfg.Upload.PublicDir
}

// SaveModelFile stores one model file under models/glasses/<modelName>/,
// keeping the original filename. Returns the stored filename.
func (s *StorageService) SaveModelFile(modelName string, fh *multipart.FileHeader) (string, error) {
	if err := validModelName(modelName); err != nil {
		return "", err
	}
	if err := validateExtension(fh.Filename, modelFileExtensions); err != nil {
		return "", err
	}
	if fh.Size > s.cfg.Upload.MaxModelFileSize {
		return "", fmt.Errorf("model file %s exceeds the %d byte limit", fh.Filename, s.cfg.Upload.MaxModelFileSize)
	}

	filename := filepath.Base(fh.Filename)
	rel := fmt.Sprintf("models/glasses/%s/%s", modelName, filename)
	if err := s.save(fh, rel); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveTextureFile stores one texture image under textures/<modelName>/,
// keeping the original filename. Returns the stored filename.
func (s *StorageService) SaveTextureFile(modelName string, fh *multipart.FileHeader) (string, error) {
	if err := validModelName(modelName); err != nil {
		return "", err
	}
	if err := validateExtension(fh.Filename, imageFileExtensions); err != nil {
		return "", err
	}
	if fh.Size > s.cfg.Upload.MaxImageSize {
		return "", fmt.Errorf("texture file %s exceeds the %d byte limit", fh.Filename, s.cfg.Upload.MaxImageSize)
	}

	filename := filepath.Base(fh.Filename)
	rel := fmt.Sprintf("textures/%s/%s", modelName, filename)
	if err := s.save(fh, rel); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveProductImage stores a product image under images/products/ with a
// collision-free generated name. Returns the stored relative path.
func (s *StorageService) SaveProductImage(fh *multipart.FileHeader) (string, error) {
	if err := validateExtension(fh.Filename, imageFileExtensions); err != nil {
		return "", err
	}
	if fh.Size > s.cfg.Upload.MaxImageSize {
		return "", fmt.Errorf("image %s exceeds the %d byte limit", fh.Filename, s.cfg.Upload.MaxImageSize)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	suffix, err := utils.GenerateRandomString(9)
	if err != nil {
		return "", fmt.Errorf("failed to generate image name: %w", err)
	}
	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
	rel := fmt.Sprintf("images/products/%s", filename)
	if err := s.save(fh, rel); err != nil {
		return "", err
	}
	return rel, nil
}

func (s *StorageService) save(fh *multipart.FileHeader, rel string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}

	dst := s.AbsPath(rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}

	if s.s3Client != nil {
		if err := s.mirrorToS3(rel, data, fh.Header.Get("Content-Type")); err != nil {
			// Local copy is authoritative; the mirror is best-effort.
			logrus.WithError(err).WithField("key", rel).Warn("S3 mirror failed")
		}
	}

	return nil
}

func (s *StorageService) mirrorToS3(key string, data []byte, contentType string) error {
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

// CDNURL returns the public URL of a stored asset when a CDN or bucket is
// configured; empty otherwise (the asset is served by the static routes).
func (s *StorageService) CDNURL(key string) string {
	if s.s3Client == nil {
		return ""
	}
	if s.cfg.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.cfg.AWS.CloudFrontURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.cfg.AWS.S3Bucket, s.cfg.AWS.Region, key)
}

// PublicURL is the client-facing URL of a stored asset: the CDN when S3 is
// configured, the local static route otherwise.
func (s *StorageService) PublicURL(rel string) string {
	if u := s.CDNURL(rel); u != "" {
		return u
	}
	return "/static/" + rel
}

func validateExtension(filename string, allowed []string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("file type %s is not allowed", ext)
}
