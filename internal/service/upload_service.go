package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/academia-crecer/academia-api/internal/dto"
)

var (
	// ErrUploadTooLarge indicates the asset exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the asset is neither image nor video.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
)

// FileStorage abstracts the media upload destination.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// UploadService validates and stores site media: hero photos, about-section
// images, the logo and intro slide assets.
type UploadService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, actor string) (dto.UploadResponse, error)
}

type uploadService struct {
	storage  FileStorage
	activity ActivityRecorder
	maxSize  int64
	logger   zerolog.Logger
}

// NewUploadService constructs an upload service.
func NewUploadService(storage FileStorage, activity ActivityRecorder, maxSizeMB int, logger zerolog.Logger) UploadService {
	if maxSizeMB <= 0 {
		maxSizeMB = 25
	}
	return &uploadService{
		storage:  storage,
		activity: activity,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		logger:   logger.With().Str("component", "upload_service").Logger(),
	}
}

func (s *uploadService) Upload(ctx context.Context, file *multipart.FileHeader, actor string) (dto.UploadResponse, error) {
	if file == nil {
		return dto.UploadResponse{}, errors.New("file is required")
	}

	if file.Size > s.maxSize {
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return dto.UploadResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return dto.UploadResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	// Sniff the real content type instead of trusting the extension.
	mime := mimetype.Detect(buf.Bytes())
	if !isAllowedMedia(mime.String()) {
		s.logger.Warn().Str("mime", mime.String()).Msg("rejected upload type")
		return dto.UploadResponse{}, ErrUploadTypeNotAllowed
	}

	sanitizedName := sanitizeFileName(file.Filename)

	url, err := s.storage.Upload(ctx, sanitizedName, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("store media asset: %w", err)
	}

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			Actor:      actor,
			Action:     "media.uploaded",
			EntityType: "media",
			Metadata: map[string]interface{}{
				"file_name":  sanitizedName,
				"mime_type":  mime.String(),
				"size_bytes": buf.Len(),
			},
		})
	}

	s.logger.Info().Str("file", sanitizedName).Int("size", buf.Len()).Msg("media asset stored")

	return dto.UploadResponse{
		URL:       url,
		FileName:  sanitizedName,
		MimeType:  mime.String(),
		SizeBytes: int64(buf.Len()),
	}, nil
}

func isAllowedMedia(mime string) bool {
	lower := strings.ToLower(strings.TrimSpace(mime))
	return strings.HasPrefix(lower, "image/") || strings.HasPrefix(lower, "video/")
}

func sanitizeFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = fmt.Sprintf("media-%d", time.Now().Unix())
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".bin"
	}
	return base + ext
}
