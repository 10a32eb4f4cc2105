package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/pkg/redis"
)

var ErrDraftNotFound = errors.New("wizard draft not found")

// DraftStore parks wizard state between requests.
type DraftStore interface {
	Save(ctx context.Context, id string, w *Wizard) error
	Load(ctx context.Context, id string) (*Wizard, error)
	Delete(ctx context.Context, id string) error
}

// NewDraftID returns a fresh session identifier.
func NewDraftID() string {
	return uuid.NewString()
}

type memoryEntry struct {
	wizard    Wizard
	expiresAt time.Time
}

// MemoryStore keeps drafts in process. Used when redis is disabled and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Save(ctx context.Context, id string, w *Wizard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{wizard: copyWizard(w)}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[id] = entry
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*Wizard, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrDraftNotFound
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, ErrDraftNotFound
	}
	w := copyWizard(&entry.wizard)
	return &w, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func copyWizard(w *Wizard) Wizard {
	out := *w
	out.Draft = w.Draft.Clone()
	out.Errors = append([]string{}, w.Errors...)
	if w.Result != nil {
		r := *w.Result
		out.Result = &r
	}
	return out
}

// RedisStore keeps drafts as JSON in redis with a sliding TTL.
type RedisStore struct {
	prefix string
	ttl    time.Duration
}

func NewRedisStore(ttl time.Duration) *RedisStore {
	return &RedisStore{prefix: "wizard:draft:", ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Save(ctx context.Context, id string, w *Wizard) error {
	if err := redis.SaveJSON(ctx, s.key(id), w, s.ttl); err != nil {
		return fmt.Errorf("failed to save wizard draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Wizard, error) {
	var w Wizard
	if err := redis.LoadJSON(ctx, s.key(id), &w); err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to load wizard draft: %w", err)
	}
	if w.Errors == nil {
		w.Errors = []string{}
	}
	if w.Draft.OfficeReviews == nil {
		w.Draft.OfficeReviews = []model.OfficeReview{}
	}
	return &w, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return redis.Delete(ctx, s.key(id))
}
