package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/models"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

var allowedExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".avi": true,
}

// StoredVideo is the result of a successful upload. Path doubles as the
// locator kept on the video entry.
type StoredVideo struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
}

// VideoStore writes uploaded videos to the local storage directory.
type VideoStore struct {
	dir     string
	maxSize int64
	log     *zap.SugaredLogger
}

func NewVideoStore(cfg *config.Config, log *zap.SugaredLogger) *VideoStore {
	return &VideoStore{
		dir:     cfg.VideoStoragePath,
		maxSize: cfg.MaxUploadSize,
		log:     log.With("component", "VideoStore"),
	}
}

// Save checks the extension and size, then copies the file into the storage
// directory as <unix millis>-<base name>.
func (s *VideoStore) Save(file *multipart.FileHeader) (*StoredVideo, error) {
	if file == nil {
		return nil, models.BadRequest("No video file uploaded")
	}

	base := filepath.Base(file.Filename)
	if !allowedExtensions[strings.ToLower(filepath.Ext(base))] {
		return nil, models.BadRequest("Only video files are allowed!")
	}
	if file.Size > s.maxSize {
		return nil, models.NewError(models.ErrTooLarge, fmt.Sprintf("File exceeds the %d byte upload limit", s.maxSize))
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentType := "application/octet-stream"
	if mtype, err := mimetype.DetectReader(src); err == nil {
		contentType = mtype.String()
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	// file.Size is client-reported; cap the copy too.
	written, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	if written > s.maxSize {
		_ = os.Remove(path)
		return nil, models.NewError(models.ErrTooLarge, fmt.Sprintf("File exceeds the %d byte upload limit", s.maxSize))
	}

	s.log.Infow("video stored", "path", path, "size", written, "content_type", contentType)
	return &StoredVideo{
		Path:        path,
		Name:        name,
		ContentType: contentType,
		Size:        written,
	}, nil
}

// URL maps a stored file to its public address under prefix.
func URL(prefix, name string) string {
	return strings.TrimRight(prefix, "/") + "/" + name
}
