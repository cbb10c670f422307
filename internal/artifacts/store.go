// Package artifacts owns generated files between a run and their download.
package artifacts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/storage/object"
	"resume-tailor/internal/shared/telemetry"
	"resume-tailor/internal/shared/util"
)

// ErrNotFound is returned for unknown, released or expired artifacts.
var ErrNotFound = errors.New("artifact not found")

const keyPrefix = "artifacts/"

const (
	reasonReleased = "released"
	reasonExpired  = "expired"
	reasonEvicted  = "evicted"
)

// Artifact describes a stored file.
type Artifact struct {
	ID          string    `json:"id"`
	Key         string    `json:"-"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
}

func (a Artifact) expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt)
}

// Store tracks artifacts saved in an object store. Entries expire after TTL and
// the oldest are evicted once MaxEntries is exceeded. Zero disables either bound.
type Store struct {
	objects    object.ObjectStore
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]Artifact
	order   []string
}

// NewStore constructs a Store over objects.
func NewStore(objects object.ObjectStore, ttl time.Duration, maxEntries int) *Store {
	return &Store{
		objects:    objects,
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[string]Artifact),
	}
}

type victim struct {
	artifact Artifact
	reason   string
}

// Put saves data as a new artifact, then sweeps expired entries and evicts
// the oldest beyond the bound.
func (s *Store) Put(ctx context.Context, fileName, contentType string, data []byte) (Artifact, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Artifact{}, fmt.Errorf("artifact file name: %w", err)
	}
	ext := filepath.Ext(name)
	if ext == "" {
		ext = ".bin"
	}

	id := uuid.NewString()
	key := keyPrefix + id + ext
	size, err := s.objects.Save(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return Artifact{}, fmt.Errorf("save artifact: %w", err)
	}

	now := s.now().UTC()
	art := Artifact{
		ID:          id,
		Key:         key,
		FileName:    name,
		ContentType: contentType,
		SizeBytes:   size,
		CreatedAt:   now,
	}
	if s.ttl > 0 {
		art.ExpiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[id] = art
	s.order = append(s.order, id)
	victims := s.collectExpiredLocked(now)
	for s.maxEntries > 0 && len(s.order) > s.maxEntries {
		oldest := s.order[0]
		victims = append(victims, victim{artifact: s.entries[oldest], reason: reasonEvicted})
		s.removeLocked(oldest)
	}
	live := len(s.entries)
	s.mu.Unlock()

	s.dispose(ctx, victims)
	metrics.SetArtifactsLive(live)
	return art, nil
}

// Open returns the artifact metadata and a reader over its content.
func (s *Store) Open(ctx context.Context, id string) (Artifact, io.ReadCloser, error) {
	s.mu.Lock()
	art, ok := s.entries[id]
	if ok && art.expired(s.now()) {
		s.removeLocked(id)
		s.mu.Unlock()
		s.dispose(ctx, []victim{{artifact: art, reason: reasonExpired}})
		return Artifact{}, nil, ErrNotFound
	}
	s.mu.Unlock()
	if !ok {
		return Artifact{}, nil, ErrNotFound
	}

	rc, err := s.objects.Open(ctx, art.Key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Artifact{}, nil, ErrNotFound
		}
		return Artifact{}, nil, fmt.Errorf("open artifact: %w", err)
	}
	return art, rc, nil
}

// Release deletes an artifact now. Unknown ids return ErrNotFound.
func (s *Store) Release(ctx context.Context, id string) error {
	s.mu.Lock()
	art, ok := s.entries[id]
	if ok {
		s.removeLocked(id)
	}
	live := len(s.entries)
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	metrics.SetArtifactsLive(live)
	metrics.IncArtifactRemoved(reasonReleased)
	if err := s.objects.Delete(ctx, art.Key); err != nil && !errors.Is(err, object.ErrNotFound) {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

// Sweep removes expired artifacts and returns how many were removed.
func (s *Store) Sweep(ctx context.Context) int {
	s.mu.Lock()
	victims := s.collectExpiredLocked(s.now())
	live := len(s.entries)
	s.mu.Unlock()

	s.dispose(ctx, victims)
	metrics.SetArtifactsLive(live)
	return len(victims)
}

// Start sweeps every interval until ctx is done.
func (s *Store) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(ctx); n > 0 {
					telemetry.Info("artifacts.sweep", map[string]any{"removed": n})
				}
			}
		}
	}()
}

// Len returns the number of tracked artifacts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) collectExpiredLocked(now time.Time) []victim {
	var victims []victim
	for _, id := range append([]string(nil), s.order...) {
		if art := s.entries[id]; art.expired(now) {
			victims = append(victims, victim{artifact: art, reason: reasonExpired})
			s.removeLocked(id)
		}
	}
	return victims
}

func (s *Store) removeLocked(id string) {
	delete(s.entries, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store) dispose(ctx context.Context, victims []victim) {
	for _, v := range victims {
		metrics.IncArtifactRemoved(v.reason)
		if err := s.objects.Delete(ctx, v.artifact.Key); err != nil && !errors.Is(err, object.ErrNotFound) {
			telemetry.Warn("artifacts.delete.failed", map[string]any{
				"artifact_id": v.artifact.ID,
				"reason":      v.reason,
				"error":       err.Error(),
			})
		}
	}
}
