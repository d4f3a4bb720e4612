package api

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"sync"
	"time"
)

type exportDownload struct {
	filePath  string
	filename  string
	expiresAt time.Time
}

type exportDownloadStore struct {
	mu    sync.Mutex
	items map[string]exportDownload
}

func newExportDownloadStore() *exportDownloadStore {
	return &exportDownloadStore{
		items: make(map[string]exportDownload),
	}
}

func (s *exportDownloadStore) put(filePath, filename string, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = newRandomToken(24)
	s.items[token] = exportDownload{
		filePath:  filePath,
		filename:  filename,
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

// take consumes a token: a second take of the same token fails.
func (s *exportDownloadStore) take(token string) (exportDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return exportDownload{}, false
	}
	delete(s.items, token)
	if time.Now().After(v.expiresAt) {
		_ = os.Remove(v.filePath)
		return exportDownload{}, false
	}
	return v, true
}

// purgeExpiredLocked drops expired tokens and their never-downloaded
// files.
func (s *exportDownloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
			_ = os.Remove(v.filePath)
		}
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
