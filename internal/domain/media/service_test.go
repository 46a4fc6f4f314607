package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime/multipart"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"pronet/internal/blob"
	"pronet/internal/domain/account"
)

var (
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, bytes.Repeat([]byte{0x01}, 64)...)
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x02}, 64)...)
	gifBytes  = append([]byte("GIF89a"), bytes.Repeat([]byte{0x03}, 64)...)
)

type registrarFixture struct {
	svc     *Service
	repo    Repository
	store   *blob.LocalStore
	db      *gorm.DB
	blobDir string
}

func newTestRegistrar(t *testing.T) *registrarFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:media_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&Media{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	blobDir := t.TempDir()
	store := blob.NewLocalStore(blobDir, "/api/v1/files", "test-secret")
	repo := NewRepository(db)
	return &registrarFixture{
		svc:     NewService(repo, store, time.Hour),
		repo:    repo,
		store:   store,
		db:      db,
		blobDir: blobDir,
	}
}

func (f *registrarFixture) blobCount(t *testing.T) int {
	t.Helper()
	count := 0
	err := filepath.WalkDir(f.blobDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk blob dir: %v", err)
	}
	return count
}

func (f *registrarFixture) mediaRows(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(&Media{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count media rows: %v", err)
	}
	return count
}

func makeFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("files", name)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}
	return form.File["files"][0]
}

func TestUploadBatchPreservesOrder(t *testing.T) {
	f := newTestRegistrar(t)
	ctx := context.Background()

	files := []*multipart.FileHeader{
		makeFileHeader(t, "a.jpg", jpegBytes),
		makeFileHeader(t, "b.png", pngBytes),
	}

	ids, err := f.svc.Upload(ctx, files, 1, account.KindUser)
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}

	records, err := f.svc.Resolve(ctx, ids)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if records[0].MimeType != "image/jpeg" || records[1].MimeType != "image/png" {
		t.Fatalf("input order not preserved: %s, %s", records[0].MimeType, records[1].MimeType)
	}

	for _, m := range records {
		fh, err := f.store.Open(m.BlobKey)
		if err != nil {
			t.Fatalf("blob missing for media %s: %v", m.ID, err)
		}
		fh.Close()
		if m.OwnerID != 1 || m.OwnerKind != account.KindUser {
			t.Fatalf("unexpected owner on media %s", m.ID)
		}
	}
}

func TestUploadRejectsDisallowedMimeBeforeAnyWrite(t *testing.T) {
	f := newTestRegistrar(t)

	files := []*multipart.FileHeader{
		makeFileHeader(t, "a.jpg", jpegBytes),
		makeFileHeader(t, "anim.gif", gifBytes),
	}

	ids, err := f.svc.Upload(context.Background(), files, 1, account.KindUser)
	if !errors.Is(err, ErrMimeNotAllowed) {
		t.Fatalf("expected ErrMimeNotAllowed, got %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no persisted ids, got %v", ids)
	}
	if n := f.blobCount(t); n != 0 {
		t.Fatalf("validation must precede writes, found %d blobs", n)
	}
	if n := f.mediaRows(t); n != 0 {
		t.Fatalf("expected zero media rows, got %d", n)
	}
}

// QuickTime's "qt  " brand is not in the sniffer's mp4 table, so the
// content sniff alone reports application/octet-stream. The extension
// fallback must still admit the file as video/quicktime.
func TestUploadQuickTimeFallsBackToExtension(t *testing.T) {
	f := newTestRegistrar(t)

	movBytes := append([]byte{
		0x00, 0x00, 0x00, 0x14, 'f', 't', 'y', 'p',
		'q', 't', ' ', ' ', 0x00, 0x00, 0x02, 0x00,
		'q', 't', ' ', ' ',
	}, bytes.Repeat([]byte{0x04}, 64)...)

	files := []*multipart.FileHeader{makeFileHeader(t, "clip.mov", movBytes)}
	ids, err := f.svc.Upload(context.Background(), files, 1, account.KindUser)
	if err != nil {
		t.Fatalf("expected quicktime upload to succeed, got %v", err)
	}

	m, err := f.repo.GetByID(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("failed to load media record: %v", err)
	}
	if m.MimeType != "video/quicktime" {
		t.Fatalf("expected video/quicktime, got %s", m.MimeType)
	}
	if !strings.HasSuffix(m.BlobKey, ".mov") {
		t.Fatalf("expected .mov blob key, got %s", m.BlobKey)
	}

	// An unidentifiable payload with no recognized extension is still
	// rejected.
	junk := []*multipart.FileHeader{makeFileHeader(t, "payload.exe", bytes.Repeat([]byte{0x05}, 64))}
	if _, err := f.svc.Upload(context.Background(), junk, 1, account.KindUser); !errors.Is(err, ErrMimeNotAllowed) {
		t.Fatalf("expected ErrMimeNotAllowed, got %v", err)
	}
}

func TestUploadRejectsEmptyAndOversized(t *testing.T) {
	f := newTestRegistrar(t)
	ctx := context.Background()

	empty := &multipart.FileHeader{Filename: "empty.jpg", Size: 0}
	if _, err := f.svc.Upload(ctx, []*multipart.FileHeader{empty}, 1, account.KindUser); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}

	big := &multipart.FileHeader{Filename: "big.mp4", Size: MaxFileSize + 1}
	if _, err := f.svc.Upload(ctx, []*multipart.FileHeader{big}, 1, account.KindUser); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}

	if n := f.blobCount(t); n != 0 {
		t.Fatalf("expected zero blobs, got %d", n)
	}
}

// failingRepo refuses Create to simulate a record-store outage after
// the blob write already happened.
type failingRepo struct {
	Repository
}

var errRecordStoreDown = errors.New("record store unavailable")

func (f *failingRepo) Create(ctx context.Context, m *Media) error {
	return errRecordStoreDown
}

func TestUploadRecordFailureLeavesBlobForCallerCompensation(t *testing.T) {
	f := newTestRegistrar(t)
	f.svc.repo = &failingRepo{Repository: f.repo}

	files := []*multipart.FileHeader{makeFileHeader(t, "a.jpg", jpegBytes)}
	ids, err := f.svc.Upload(context.Background(), files, 1, account.KindUser)
	if !errors.Is(err, errRecordStoreDown) {
		t.Fatalf("expected record store error, got %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("no media should report as persisted, got %v", ids)
	}

	// The blob was written and must NOT be auto-deleted; cleanup is the
	// caller's compensation step.
	if n := f.blobCount(t); n != 1 {
		t.Fatalf("expected 1 orphaned blob, got %d", n)
	}
}

func TestDeleteRemovesBlobAndRecord(t *testing.T) {
	f := newTestRegistrar(t)
	ctx := context.Background()

	ids, err := f.svc.Upload(ctx, []*multipart.FileHeader{
		makeFileHeader(t, "a.jpg", jpegBytes),
		makeFileHeader(t, "b.png", pngBytes),
	}, 7, account.KindCompany)
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	records, err := f.svc.Resolve(ctx, ids)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if err := f.svc.Delete(ctx, ids); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := f.svc.Resolve(ctx, ids); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected records gone, got %v", err)
	}
	for _, m := range records {
		if _, err := f.store.Open(m.BlobKey); !errors.Is(err, blob.ErrBlobNotFound) {
			t.Fatalf("expected blob %s gone, got %v", m.BlobKey, err)
		}
	}

	// Deleting already-deleted ids is a no-op, not an error.
	if err := f.svc.Delete(ctx, ids); err != nil {
		t.Fatalf("expected idempotent delete, got %v", err)
	}
}

func TestSignedURLCarriesExpiryAndSignature(t *testing.T) {
	f := newTestRegistrar(t)
	u, err := f.svc.URL("2026/09/01/x.jpg")
	if err != nil {
		t.Fatalf("URL returned error: %v", err)
	}
	if !strings.Contains(u, "exp=") || !strings.Contains(u, "sig=") {
		t.Fatalf("signed URL missing parameters: %s", u)
	}
}
