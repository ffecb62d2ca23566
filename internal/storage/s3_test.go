package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, publicURL string) *Store {
	t.Helper()
	s, err := New("http://minio:9000/", "us-east-1", "key", "secret", "mlomp-media", publicURL)
	require.NoError(t, err)
	require.NotNil(t, s)
	s.now = func() time.Time { return time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC) }
	s.newID = func() string { return "0000-1111" }
	return s
}

func TestNewWithoutCredentials(t *testing.T) {
	s, err := New("", "", "", "", "bucket", "")
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New("http://minio:9000", "us-east-1", "k", "s", "", "")
	assert.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	s := newTestStore(t, "")
	assert.Equal(t, "gallery/2026/03/0000-1111-fete-du-village.jpg", s.objectKey("gallery", "Fête du village.JPG"))
}

func TestFileURLAndKeyRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		publicURL string
		wantURL   string
	}{
		{"path style", "", "http://minio:9000/mlomp-media/news/a.jpg"},
		{"cdn", "https://cdn.mlomp.sn/", "https://cdn.mlomp.sn/news/a.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, tt.publicURL)
			url := s.FileURL("news/a.jpg")
			assert.Equal(t, tt.wantURL, url)

			key, ok := s.KeyFromURL(url)
			assert.True(t, ok)
			assert.Equal(t, "news/a.jpg", key)
		})
	}
}

func TestKeyFromForeignURL(t *testing.T) {
	s := newTestStore(t, "https://cdn.mlomp.sn")
	for _, u := range []string{
		"https://images.example.org/photo.jpg",
		"http://minio:9000/other-bucket/a.jpg",
		"https://cdn.mlomp.sn/",
		"",
	} {
		_, ok := s.KeyFromURL(u)
		assert.False(t, ok, u)
	}
}
