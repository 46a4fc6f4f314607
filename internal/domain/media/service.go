package media

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pronet/internal/blob"
	"pronet/internal/domain/account"
)

const MaxFileSize = 100 * 1024 * 1024 // 100 MB

// AllowedMimeTypes defines which file types are accepted. Checked once
// at registration; never re-validated afterwards.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"video/mp4":       true,
	"video/quicktime": true,
	"application/pdf": true,
}

// Service is the media registrar: it validates uploads, writes blobs,
// and records Media rows. It does NOT clean up after itself across the
// blob/record boundary; the caller compensates.
type Service struct {
	repo   Repository
	store  blob.Store
	urlTTL time.Duration
}

func NewService(repo Repository, store blob.Store, urlTTL time.Duration) *Service {
	if urlTTL <= 0 {
		urlTTL = time.Hour
	}
	return &Service{repo: repo, store: store, urlTTL: urlTTL}
}

// Upload registers a batch of files for one owner. The whole batch is
// validated before any byte is written; uploads then fan out
// concurrently and the call waits for all of them. Returned ids follow
// the input order.
//
// On error, ids holds the media records persisted before the failure;
// the caller is responsible for deleting those orphans. A blob-store
// failure leaves no record; a record-store failure after a blob write
// leaves the blob in place (again: caller compensation).
func (s *Service) Upload(ctx context.Context, files []*multipart.FileHeader, ownerID int64, ownerKind account.Kind) ([]string, error) {
	mimes := make([]string, len(files))
	for i, fh := range files {
		mimeType, err := s.validate(fh)
		if err != nil {
			return nil, err
		}
		mimes[i] = mimeType
	}

	ids := make([]string, len(files))
	persisted := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, fh := range files {
		g.Go(func() error {
			id, err := s.uploadOne(gctx, fh, mimes[i], ownerID, ownerKind)
			if err != nil {
				return err
			}
			ids[i] = id
			persisted[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var done []string
		for i := range ids {
			if persisted[i] {
				done = append(done, ids[i])
			}
		}
		return done, err
	}
	return ids, nil
}

// URL returns a signed download URL with a bounded expiry.
func (s *Service) URL(key string) (string, error) {
	return s.store.SignedURL(key, s.urlTTL)
}

// Resolve loads media records for denormalization, preserving order.
func (s *Service) Resolve(ctx context.Context, ids []string) ([]*Media, error) {
	return s.repo.GetByIDs(ctx, ids)
}

// Delete removes blobs and records for the given ids. Partial failures
// are collected instead of aborting the batch, so one stuck blob does
// not leave the remaining ids behind.
func (s *Service) Delete(ctx context.Context, ids []string) error {
	var errs []error
	for _, id := range ids {
		m, err := s.repo.GetByID(ctx, id)
		if errors.Is(err, ErrMediaNotFound) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("media %s: %w", id, err))
			continue
		}

		if err := s.store.Delete(ctx, m.BlobKey); err != nil && !errors.Is(err, blob.ErrBlobNotFound) {
			errs = append(errs, fmt.Errorf("blob %s: %w", m.BlobKey, err))
			// Keep the record so a later sweep can retry the blob.
			continue
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("media %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Service) validate(fh *multipart.FileHeader) (string, error) {
	if fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if fh.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Sniff from the first 512 bytes rather than trusting the header.
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]

	// The sniffer cannot identify every container (QuickTime among
	// them); when it gives up, fall back to the filename extension.
	if mimeType == "application/octet-stream" {
		if byExt := extToMime(strings.ToLower(filepath.Ext(fh.Filename))); byExt != "" {
			mimeType = byExt
		}
	}

	if !AllowedMimeTypes[mimeType] {
		return "", fmt.Errorf("%w: %s", ErrMimeNotAllowed, mimeType)
	}
	return mimeType, nil
}

func (s *Service) uploadOne(ctx context.Context, fh *multipart.FileHeader, mimeType string, ownerID int64, ownerKind account.Kind) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	id := uuid.New().String()
	now := time.Now()
	key := fmt.Sprintf("%d/%02d/%02d/%s%s", now.Year(), now.Month(), now.Day(), id, mimeToExt(mimeType))

	if err := s.store.Put(ctx, key, file, mimeType); err != nil {
		return "", fmt.Errorf("failed to store blob: %w", err)
	}

	m := &Media{
		ID:        id,
		BlobKey:   key,
		MimeType:  mimeType,
		Size:      fh.Size,
		OwnerID:   ownerID,
		OwnerKind: ownerKind,
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return "", fmt.Errorf("failed to save media record: %w", err)
	}
	return id, nil
}

func extToMime(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".pdf":
		return "application/pdf"
	default:
		return ""
	}
}

func mimeToExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	case "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}
