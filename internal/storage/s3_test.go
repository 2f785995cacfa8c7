package storage

import (
	"alcyxob/fitcoach/internal/config"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", endpointURL("", true))
	assert.Equal(t, "https://minio:9000", endpointURL("minio:9000", true))
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.Equal(t, "http://localhost:9000", endpointURL("http://localhost:9000", true))
}

func TestPhotoObjectKey(t *testing.T) {
	assert.Equal(t, "sessions/abc/progress/week4", PhotoObjectKey("abc", "week4"))
}

// Presigning is computed locally, so no server has to be reachable.
func TestPresignedURLs(t *testing.T) {
	store, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "access",
		SecretAccessKey: "secret",
		BucketName:      "photos",
		UseSSL:          false,
	}, zap.NewNop())
	require.NoError(t, err)

	put, err := store.GeneratePresignedUploadURL(context.Background(), "sessions/s1/progress/start", "image/jpeg", time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(put)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/photos/sessions/s1/progress/start", u.Path)
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))

	get, err := store.GeneratePresignedDownloadURL(context.Background(), "sessions/s1/progress/start", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(get, "http://localhost:9000/photos/"))
	assert.Contains(t, get, "X-Amz-Expires=900")
}

// fakeBucket answers the few S3 calls the store makes, path-style.
type fakeBucket struct {
	mu        sync.Mutex
	objects   map[string]bool
	lifecycle string
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := r.URL.Query()["lifecycle"]; ok && r.Method == http.MethodPut {
		body, _ := io.ReadAll(r.Body)
		b.lifecycle = string(body)
		w.WriteHeader(http.StatusOK)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, "/photos/")
	switch r.Method {
	case http.MethodHead:
		if b.objects[key] {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case http.MethodDelete:
		delete(b.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newFakeBucketStore(t *testing.T) (ExpiringStorage, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string]bool{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	store, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        srv.URL,
		Region:          "us-east-1",
		AccessKeyID:     "access",
		SecretAccessKey: "secret",
		BucketName:      "photos",
	}, zap.NewNop())
	require.NoError(t, err)
	return store, bucket
}

func TestObjectExists(t *testing.T) {
	store, bucket := newFakeBucketStore(t)
	ctx := context.Background()
	key := PhotoObjectKey("s1", "start")

	exists, err := store.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists, "presigning alone does not create the object")

	bucket.mu.Lock()
	bucket.objects[key] = true
	bucket.mu.Unlock()

	exists, err = store.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.DeleteObject(ctx, key))
	exists, err = store.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEnsureSessionPhotoExpiry(t *testing.T) {
	store, bucket := newFakeBucketStore(t)

	require.NoError(t, store.EnsureSessionPhotoExpiry(context.Background(), 2))
	bucket.mu.Lock()
	doc := bucket.lifecycle
	bucket.mu.Unlock()
	assert.Contains(t, doc, "<Prefix>sessions/</Prefix>")
	assert.Contains(t, doc, "<Days>2</Days>")
	assert.Contains(t, doc, "<Status>Enabled</Status>")

	assert.Error(t, store.EnsureSessionPhotoExpiry(context.Background(), 0))
}
