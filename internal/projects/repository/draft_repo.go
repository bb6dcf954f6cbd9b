package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
)

const (
	draftKeyPrefix  = "pms:draft:project:" // pms:draft:project:{number}
	DefaultDraftTTL = 24 * time.Hour
)

// DraftRepository parks pending project change-sets in Redis between requests.
type DraftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftRepository(client *redis.Client, ttl time.Duration) *DraftRepository {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &DraftRepository{client: client, ttl: ttl}
}

func (r *DraftRepository) key(number int64) string {
	return draftKeyPrefix + strconv.FormatInt(number, 10)
}

// Save replaces the stored draft and refreshes its TTL. An empty draft is deleted.
func (r *DraftRepository) Save(ctx context.Context, d *domain.Draft) error {
	if d.Empty() {
		return r.Delete(ctx, d.ProjectNumber)
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := r.client.Set(ctx, r.key(d.ProjectNumber), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Load returns the stored draft, or an empty one when nothing is parked.
func (r *DraftRepository) Load(ctx context.Context, number int64) (*domain.Draft, error) {
	data, err := r.client.Get(ctx, r.key(number)).Result()
	if errors.Is(err, redis.Nil) {
		return &domain.Draft{ProjectNumber: number, Entries: map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var d domain.Draft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	if d.Entries == nil {
		d.Entries = map[string]string{}
	}
	return &d, nil
}

func (r *DraftRepository) Delete(ctx context.Context, number int64) error {
	if err := r.client.Del(ctx, r.key(number)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// MemoryDraftStore is the in-process counterpart used when Redis is not configured.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[int64]domain.Draft
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[int64]domain.Draft)}
}

func (m *MemoryDraftStore) Save(_ context.Context, d *domain.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.Empty() {
		delete(m.drafts, d.ProjectNumber)
		return nil
	}
	cp := domain.Draft{ProjectNumber: d.ProjectNumber, Entries: make(map[string]string, len(d.Entries)), UpdatedAt: d.UpdatedAt}
	for k, v := range d.Entries {
		cp.Entries[k] = v
	}
	m.drafts[d.ProjectNumber] = cp
	return nil
}

func (m *MemoryDraftStore) Load(_ context.Context, number int64) (*domain.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[number]
	out := &domain.Draft{ProjectNumber: number, Entries: map[string]string{}, UpdatedAt: d.UpdatedAt}
	if ok {
		for k, v := range d.Entries {
			out.Entries[k] = v
		}
	}
	return out, nil
}

func (m *MemoryDraftStore) Delete(_ context.Context, number int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, number)
	return nil
}
