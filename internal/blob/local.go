package blob

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// LocalStore keeps blobs on the local filesystem and hands out
// HMAC-signed expiring URLs served by Handler. Keys are relative paths
// (YYYY/MM/DD/<name>) generated by the media registrar.
type LocalStore struct {
	baseDir string
	urlPath string // URL prefix the serving handler is mounted on
	secret  []byte
}

func NewLocalStore(baseDir, urlPath, secret string) *LocalStore {
	return &LocalStore{
		baseDir: baseDir,
		urlPath: strings.TrimSuffix(urlPath, "/"),
		secret:  []byte(secret),
	}
}

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	absPath := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return fmt.Errorf("failed to create blob file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(absPath)
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return nil
}

func (s *LocalStore) SignedURL(key string, ttl time.Duration) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	exp := time.Now().Add(ttl).Unix()
	return fmt.Sprintf("%s/%s?exp=%d&sig=%s", s.urlPath, key, exp, s.sign(key, exp)), nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return ErrBlobNotFound
	}
	return err
}

// Open returns the blob file for serving. Callers close it.
func (s *LocalStore) Open(key string) (*os.File, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil, ErrBlobNotFound
	}
	return f, err
}

// Verify checks a signature produced by SignedURL.
func (s *LocalStore) Verify(key string, expStr, sig string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return ErrBadSignature
	}
	if time.Now().Unix() > exp {
		return ErrBadSignature
	}
	if !hmac.Equal([]byte(s.sign(key, exp)), []byte(sig)) {
		return ErrBadSignature
	}
	return nil
}

func (s *LocalStore) sign(key string, exp int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%d", key, exp)
	return hex.EncodeToString(mac.Sum(nil))
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
