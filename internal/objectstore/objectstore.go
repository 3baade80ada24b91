// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package objectstore adapts the platform's blob storage collaborator
(spec.md §4.3): it hands out bounded-lifetime signed upload URLs, downloads
bytes, returns a blob's public URL, and deletes blobs.

The actual signing of a cloud-provider URL (S3, GCS) is the out-of-scope
external collaborator named in spec.md §1 — this package is the adapter
around it. It is grounded on original_source's storage_service.py
(generate_upload_url's path_map namespace table, make_public_and_get_url's
idempotent existence check) with the provider's signing call swapped for
an HMAC-signed local token, since no concrete cloud SDK is available to
wire: the token embeds the bound object key, MIME type, and expiry the
same way a V4 presigned URL does, verified by [Store.VerifyUpload].
*/
package objectstore

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/happydog/core/internal/platform/apperr"
	"github.com/happydog/core/internal/platform/constants"
)

// UploadKind identifies a namespace an uploaded object may land in.
type UploadKind string

const (
	KindUserProfile    UploadKind = "user_profile"
	KindNosePrint      UploadKind = "pet_nose_print"
	KindPostImage      UploadKind = "post_image"
	KindCartoonSource  UploadKind = "cartoon_source_image"
	KindEyeAnalysis    UploadKind = "eye_analysis"
)

// uploadLifetime bounds every signed upload URL this package issues.
const uploadLifetime = 15 * time.Minute

var pathPrefixes = map[UploadKind]string{
	KindUserProfile:   "user_profiles",
	KindNosePrint:     "nose_prints_staging",
	KindPostImage:     "posts",
	KindCartoonSource: "cartoon_sources",
	KindEyeAnalysis:   "eye_analysis_images",
}

// UploadGrant is returned to a caller requesting a new signed upload URL.
type UploadGrant struct {
	UploadURL string
	FilePath  string
	ExpiresAt time.Time
}

// Store is a filesystem-backed implementation of the ObjectStore adapter.
// Root is the base directory blobs are written under; PublicBaseURL is the
// prefix returned by MakePublic for an already-public object.
type Store struct {
	root          string
	publicBaseURL string
	signingKey    []byte
	issuanceLimit *rateLimiterSet
}

// NewStore constructs a [Store] rooted at dir, signing upload tokens with
// signingKey (a server secret, never sent to the client in cleartext).
func NewStore(dir, publicBaseURL string, signingKey []byte) *Store {
	return &Store{
		root:          dir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		signingKey:    signingKey,
		issuanceLimit: newRateLimiterSet(),
	}
}

// GenerateUploadURL mints a signed, PUT-only upload URL bound to exactly
// one object key and one MIME type, matching spec.md §4.3's contract.
// Unknown kinds fail with apperr.ValidationError ("InvalidUploadType").
func (s *Store) GenerateUploadURL(ctx context.Context, userID string, kind UploadKind, filename, contentType string) (*UploadGrant, error) {
	prefix, ok := pathPrefixes[kind]
	if !ok {
		return nil, apperr.ValidationError(fmt.Sprintf("%q is not a valid upload type", kind))
	}

	if !s.issuanceLimit.Allow(userID) {
		return nil, apperr.Overloaded("too many upload URL requests, try again shortly")
	}

	ext := ""
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = filename[idx+1:]
	}

	objectKey := fmt.Sprintf("%s/%s/%s.%s", prefix, userID, uuid.New().String(), ext)
	expiresAt := time.Now().UTC().Add(uploadLifetime)
	token := s.signToken(objectKey, contentType, expiresAt)

	return &UploadGrant{
		UploadURL: fmt.Sprintf("%s/internal/blob-upload/%s?token=%s", s.publicBaseURL, objectKey, token),
		FilePath:  objectKey,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyUpload checks a token minted by GenerateUploadURL against the
// object key and content type a PUT request is presenting.
func (s *Store) VerifyUpload(objectKey, contentType, token string) error {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) < 8 {
		return apperr.Forbidden("invalid or expired upload token")
	}

	expiresUnix := int64(binary.BigEndian.Uint64(raw[:8]))
	mac := raw[8:]

	expected := s.mac(objectKey, contentType, expiresUnix)
	if !hmac.Equal(mac, expected) {
		return apperr.Forbidden("invalid or expired upload token")
	}
	if time.Now().UTC().Unix() > expiresUnix {
		return apperr.Forbidden("invalid or expired upload token")
	}
	return nil
}

func (s *Store) signToken(objectKey, contentType string, expiresAt time.Time) string {
	expiresUnix := expiresAt.Unix()
	mac := s.mac(objectKey, contentType, expiresUnix)

	buf := make([]byte, 8+len(mac))
	binary.BigEndian.PutUint64(buf[:8], uint64(expiresUnix))
	copy(buf[8:], mac)

	return base64.RawURLEncoding.EncodeToString(buf)
}

func (s *Store) mac(objectKey, contentType string, expiresUnix int64) []byte {
	h := hmac.New(sha256.New, s.signingKey)
	fmt.Fprintf(h, "%s|%s|%d", objectKey, contentType, expiresUnix)
	return h.Sum(nil)
}

// Write persists uploaded bytes at key. Called by the internal upload
// handler once VerifyUpload has accepted the PUT; never called directly by
// service code, which only ever reads back through Download/MakePublic.
func (s *Store) Write(ctx context.Context, key string, body io.Reader) error {
	fullPath := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return apperr.Internal(fmt.Errorf("objectstore: mkdir: %w", err))
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return apperr.Internal(fmt.Errorf("objectstore: create: %w", err))
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return apperr.Internal(fmt.Errorf("objectstore: write: %w", err))
	}
	return nil
}

// Exists reports whether key has been written (the upload PUT completed).
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	fullPath := filepath.Join(s.root, filepath.FromSlash(key))
	_, err := os.Stat(fullPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Internal(fmt.Errorf("objectstore: stat: %w", err))
	}
	return true, nil
}

// Download reads the full contents of key. Strongly consistent with the
// most recent Write, per spec.md §4.3.
func (s *Store) Download(ctx context.Context, key string) ([]byte, error) {
	fullPath := filepath.Join(s.root, filepath.FromSlash(key))
	body, err := os.ReadFile(fullPath)
	if os.IsNotExist(err) {
		return nil, apperr.NotFound("Object")
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("objectstore: read: %w", err))
	}
	return body, nil
}

// MakePublic checks that key exists and returns its stable public URL
// (PublicBaseURL + "/public/" + key); it changes nothing about the stored
// blob itself. It is idempotent: calling it twice for the same key returns the
// same URL without error.
func (s *Store) MakePublic(ctx context.Context, key string) (string, error) {
	exists, err := s.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", apperr.NotFound("Object")
	}
	return fmt.Sprintf("%s/public/%s", s.publicBaseURL, key), nil
}

// KeyFromPublicURL recovers the object key embedded in a URL MakePublic
// previously returned, so a caller holding only the denormalized public
// URL (e.g. Post.image_urls) can still request deletion by key.
func (s *Store) KeyFromPublicURL(publicURL string) (string, bool) {
	prefix := s.publicBaseURL + "/public/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(publicURL, prefix), true
}

// Delete removes key. Best-effort: the caller has already deleted the
// controlling document and must not block on media GC, so callers should
// log a failure here and move on rather than surface it to the client.
func (s *Store) Delete(ctx context.Context, key string) error {
	fullPath := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("objectstore: delete %s: %w", key, err)
	}
	return nil
}

// rateLimiterSet bounds signed-URL issuance per caller (spec §5 resource
// model), reusing the teacher's golang.org/x/time/rate building block
// instead of the per-IP middleware limiter (this one keys by user id).
type rateLimiterSet struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newRateLimiterSet() *rateLimiterSet {
	return &rateLimiterSet{limiters: make(map[string]*rate.Limiter)}
}

func (r *rateLimiterSet) Allow(userID string) bool {
	r.mu.Lock()
	limiter, ok := r.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(constants.SignedURLRateLimitRPS), constants.SignedURLRateLimitBurst)
		r.limiters[userID] = limiter
	}
	r.mu.Unlock()
	return limiter.Allow()
}
