package blob

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	return NewLocalStore(t.TempDir(), "/api/v1/files", "test-secret")
}

func TestPutOpenDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	key := "2026/09/01/abc.txt"
	if err := s.Put(ctx, key, strings.NewReader("hello"), "text/plain"); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	f, err := s.Open(key)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	f.Close()

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := s.Open(key); !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("expected ErrBlobNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, key); !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("expected ErrBlobNotFound on second delete, got %v", err)
	}
}

func TestSignedURLRoundTrip(t *testing.T) {
	s := newTestStore(t)

	key := "2026/09/01/pic.jpg"
	signed, err := s.SignedURL(key, time.Hour)
	if err != nil {
		t.Fatalf("SignedURL returned error: %v", err)
	}

	u, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("signed URL does not parse: %v", err)
	}
	if !strings.HasPrefix(u.Path, "/api/v1/files/") {
		t.Fatalf("unexpected path %q", u.Path)
	}

	if err := s.Verify(key, u.Query().Get("exp"), u.Query().Get("sig")); err != nil {
		t.Fatalf("Verify rejected freshly signed URL: %v", err)
	}
}

func TestVerifyRejectsTamperedAndExpired(t *testing.T) {
	s := newTestStore(t)
	key := "2026/09/01/pic.jpg"

	signed, _ := s.SignedURL(key, time.Hour)
	u, _ := url.Parse(signed)

	if err := s.Verify("2026/09/01/other.jpg", u.Query().Get("exp"), u.Query().Get("sig")); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature for wrong key, got %v", err)
	}

	expired, _ := s.SignedURL(key, -time.Minute)
	eu, _ := url.Parse(expired)
	if err := s.Verify(key, eu.Query().Get("exp"), eu.Query().Get("sig")); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature for expired link, got %v", err)
	}
}

func TestKeyTraversalRejected(t *testing.T) {
	s := newTestStore(t)
	if err := s.Put(context.Background(), "../escape", strings.NewReader("x"), ""); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}
