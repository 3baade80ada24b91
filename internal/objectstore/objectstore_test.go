// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package objectstore_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happydog/core/internal/objectstore"
	"github.com/happydog/core/internal/platform/apperr"
)

func newTestStore(t *testing.T) *objectstore.Store {
	t.Helper()
	return objectstore.NewStore(t.TempDir(), "https://cdn.happydog.test", []byte("test-signing-key"))
}

/*
TestGenerateUploadURL_UnknownKind ensures an unrecognized upload type is
rejected the way spec.md §4.3 names it: InvalidUploadType.
*/
func TestGenerateUploadURL_UnknownKind(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GenerateUploadURL(context.Background(), "user-1", objectstore.UploadKind("bogus"), "photo.jpg", "image/jpeg")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestGenerateUploadURL_Namespacing checks that every known upload kind
produces a key under its documented namespace prefix.
*/
func TestGenerateUploadURL_Namespacing(t *testing.T) {
	tests := []struct {
		kind   objectstore.UploadKind
		prefix string
	}{
		{objectstore.KindUserProfile, "user_profiles/"},
		{objectstore.KindNosePrint, "nose_prints_staging/"},
		{objectstore.KindPostImage, "posts/"},
		{objectstore.KindCartoonSource, "cartoon_sources/"},
		{objectstore.KindEyeAnalysis, "eye_analysis_images/"},
	}

	store := newTestStore(t)
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			grant, err := store.GenerateUploadURL(context.Background(), "user-1", tt.kind, "photo.jpg", "image/jpeg")
			require.NoError(t, err)
			assert.Contains(t, grant.FilePath, tt.prefix+"user-1/")
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), grant.ExpiresAt, time.Minute)
		})
	}
}

/*
TestVerifyUpload_RoundTrip checks that a token minted for one (key,
content-type) pair verifies, and is rejected for a different content type
or a tampered token.
*/
func TestVerifyUpload_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	grant, err := store.GenerateUploadURL(context.Background(), "user-1", objectstore.KindPostImage, "photo.jpg", "image/jpeg")
	require.NoError(t, err)

	token := tokenFromURL(t, grant.UploadURL)

	assert.NoError(t, store.VerifyUpload(grant.FilePath, "image/jpeg", token))
	assert.Error(t, store.VerifyUpload(grant.FilePath, "image/png", token))
	assert.Error(t, store.VerifyUpload(grant.FilePath, "image/jpeg", token+"x"))
}

func tokenFromURL(t *testing.T, uploadURL string) string {
	t.Helper()
	idx := bytes.LastIndexByte([]byte(uploadURL), '=')
	require.GreaterOrEqual(t, idx, 0)
	return uploadURL[idx+1:]
}

/*
TestWriteDownloadMakePublicDelete exercises the full blob lifecycle against
the filesystem backend.
*/
func TestWriteDownloadMakePublicDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	key := "posts/user-1/some-uuid.jpg"

	_, err := store.Download(ctx, key)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	require.NoError(t, store.Write(ctx, key, bytes.NewReader([]byte("bytes"))))

	body, err := store.Download(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(body))

	url1, err := store.MakePublic(ctx, key)
	require.NoError(t, err)
	url2, err := store.MakePublic(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, url1, url2)

	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key)) // idempotent-ish: missing file is not an error
}
