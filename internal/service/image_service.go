package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"corkboard/internal/authz"
	"corkboard/internal/config"
	"corkboard/internal/models"
	"corkboard/internal/observability"
	"corkboard/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultImageUploadDir       = "/tmp/corkboard/uploads"
	DefaultImageMaxUploadSizeMB = 10
	ThumbnailMaxSize            = 320
	WebPQuality                 = 70
)

type UploadImageInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// UploadResult is an uploaded image with the URLs clients embed in post
// content.
type UploadResult struct {
	Image    *models.Image `json:"image"`
	URL      string        `json:"url"`
	ThumbURL string        `json:"thumb_url"`
}

// ImageService stores uploaded images on disk, deduplicated by content
// hash, with a WebP thumbnail alongside each original.
type ImageService struct {
	repo               repository.ImageRepository
	uploadDir          string
	maxUploadSizeBytes int64
}

func NewImageService(repo repository.ImageRepository, cfg *config.Config) *ImageService {
	uploadDir := DefaultImageUploadDir
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB

	if cfg != nil {
		if cfg.ImageUploadDir != "" {
			uploadDir = cfg.ImageUploadDir
		}
		if cfg.ImageMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
		}
	}

	return &ImageService{
		repo:               repo,
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Upload validates, stores and records an image. Re-uploading identical
// bytes returns the already stored image without writing anything.
func (s *ImageService) Upload(ctx context.Context, actor authz.Actor, in UploadImageInput) (*UploadResult, error) {
	if len(in.Content) == 0 {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Invalid image file")
	}

	sum := sha256.Sum256(in.Content)
	hash := hex.EncodeToString(sum[:])

	existing, err := s.repo.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.ImageUploads.WithLabelValues("deduplicated").Inc()
		return s.result(existing), nil
	}

	ext := formatExtension(format)
	storedRel := hash + "." + ext
	thumbRel := hash + "_thumb.webp"

	if err := writeBytesToFile(filepath.Join(s.uploadDir, storedRel), in.Content); err != nil {
		observability.ImageUploads.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	thumb, err := encodeWebP(resizeToFit(decoded, ThumbnailMaxSize, ThumbnailMaxSize), WebPQuality)
	if err != nil {
		observability.ImageUploads.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}
	if err := writeBytesToFile(filepath.Join(s.uploadDir, thumbRel), thumb); err != nil {
		observability.ImageUploads.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	bounds := decoded.Bounds()
	img := &models.Image{
		Hash:       hash,
		StoredPath: storedRel,
		ThumbPath:  thumbRel,
		MimeType:   formatToMime(format),
		SizeBytes:  int64(len(in.Content)),
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
	}
	if userID, ok := actor.UserID(); ok {
		id := userID
		img.UploaderID = &id
	}
	if err := s.repo.Create(ctx, img); err != nil {
		observability.ImageUploads.WithLabelValues("failed").Inc()
		return nil, err
	}

	observability.ImageUploads.WithLabelValues("stored").Inc()
	return s.result(img), nil
}

func (s *ImageService) result(img *models.Image) *UploadResult {
	return &UploadResult{
		Image:    img,
		URL:      "/media/" + img.StoredPath,
		ThumbURL: "/media/" + img.ThumbPath,
	}
}

// UploadDir is where stored files live; the server mounts it at /media.
func (s *ImageService) UploadDir() string {
	return s.uploadDir
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func formatExtension(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "jpg"
	case "png":
		return "png"
	case "gif":
		return "gif"
	case "webp":
		return "webp"
	default:
		return "bin"
	}
}

func formatToMime(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o640)
}
