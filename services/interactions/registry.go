package interactions

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrCardNotMounted is returned for a card whose mount was discarded or never
// existed. Actions against it are dropped.
var ErrCardNotMounted = errors.New("card is not mounted")

const defaultMountCacheSize = 64

// Mount is one rendering of a card list. Every page render creates a new
// mount, so overlays from an earlier render never leak into a later one.
type Mount struct {
	ID        string
	View      string
	Cards     []*Card
	CreatedAt time.Time
}

// Registry tracks live mounts. It keeps the most recently used mounts up to a
// fixed size; older ones are unmounted together with their cards.
type Registry struct {
	mu     sync.Mutex
	mounts *lru.Cache[string, *Mount]
	cards  map[string]*Card
}

// NewRegistry returns a registry holding at most size mounts.
func NewRegistry(size int) (*Registry, error) {
	if size <= 0 {
		size = defaultMountCacheSize
	}
	r := &Registry{cards: make(map[string]*Card)}
	cache, err := lru.NewWithEvict[string, *Mount](size, r.onEvict)
	if err != nil {
		return nil, fmt.Errorf("create mount cache: %w", err)
	}
	r.mounts = cache
	return r, nil
}

// onEvict runs synchronously inside Add/Remove, which are only called with
// r.mu held.
func (r *Registry) onEvict(_ string, m *Mount) {
	for _, c := range m.Cards {
		delete(r.cards, c.ID)
	}
}

// Mount creates fresh card instances for entries under view.
func (r *Registry) Mount(view string, entries []Entry) *Mount {
	return r.MountAs(uuid.NewString(), view, entries)
}

// MountAs is Mount with a caller-chosen id. A mount already registered under
// id is replaced.
func (r *Registry) MountAs(id, view string, entries []Entry) *Mount {
	m := &Mount{
		ID:        id,
		View:      view,
		Cards:     make([]*Card, 0, len(entries)),
		CreatedAt: time.Now(),
	}
	for _, e := range entries {
		m.Cards = append(m.Cards, newCard(uuid.NewString(), m.ID, view, e))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.mounts.Remove(m.ID)
	for _, c := range m.Cards {
		r.cards[c.ID] = c
	}
	r.mounts.Add(m.ID, m)
	return m
}

// Card returns a live card and marks its mount as recently used.
func (r *Registry) Card(id string) (*Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cards[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCardNotMounted, id)
	}
	r.mounts.Get(c.MountID)
	return c, nil
}

// Unmount discards a mount and its cards.
func (r *Registry) Unmount(mountID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mounts.Remove(mountID)
}

// Len returns the number of live mounts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mounts.Len()
}
