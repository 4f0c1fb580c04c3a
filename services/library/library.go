// Package library loads the history and watch-later lists and keeps the
// in-memory copy each rendered list works against.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tubewise/models"
)

// Kind selects which library list to show.
type Kind string

const (
	KindHistory    Kind = "history"
	KindWatchLater Kind = "watch-later"
)

// ErrListClosed is returned for a list that is no longer tracked.
var ErrListClosed = errors.New("library list is no longer open")

// ParseKind validates a list name.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindHistory, KindWatchLater:
		return Kind(raw), nil
	}
	return "", fmt.Errorf("unknown library list %q", raw)
}

// Title is the human heading for the list ("History", "Watch Later").
func (k Kind) Title() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(k), "-", " "))
}

// Removable reports whether entries of this list can be deleted.
func (k Kind) Removable() bool {
	return k == KindHistory
}

// Dedupe collapses entries sharing a video id. The surviving entry sits where
// the id first appeared and carries the data of its last occurrence. Entries
// without a video id are dropped.
func Dedupe(items []models.Interaction) []models.Interaction {
	index := make(map[string]int, len(items))
	out := make([]models.Interaction, 0, len(items))
	for _, item := range items {
		key := item.Key()
		if key == "" {
			continue
		}
		if pos, ok := index[key]; ok {
			out[pos] = item
			continue
		}
		index[key] = len(out)
		out = append(out, item)
	}
	return out
}

type libraryAPI interface {
	History(ctx context.Context) ([]models.Interaction, error)
	WatchLater(ctx context.Context) ([]models.Interaction, error)
	DeleteInteraction(ctx context.Context, videoID string) error
}

const defaultOpenLists = 64

// Service fetches library lists and tracks the ones currently rendered.
type Service struct {
	api   libraryAPI
	lists *lru.Cache[string, *List]
}

// NewService creates a service remembering at most openLists rendered lists.
func NewService(api libraryAPI, openLists int) (*Service, error) {
	if openLists <= 0 {
		openLists = defaultOpenLists
	}
	cache, err := lru.New[string, *List](openLists)
	if err != nil {
		return nil, fmt.Errorf("create list cache: %w", err)
	}
	return &Service{api: api, lists: cache}, nil
}

// Load fetches and dedupes a list.
func (s *Service) Load(ctx context.Context, kind Kind) ([]models.Interaction, error) {
	var (
		items []models.Interaction
		err   error
	)
	switch kind {
	case KindHistory:
		items, err = s.api.History(ctx)
	case KindWatchLater:
		items, err = s.api.WatchLater(ctx)
	default:
		return nil, fmt.Errorf("unknown library list %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	return Dedupe(items), nil
}

// Open loads a list and starts tracking it for later removals.
func (s *Service) Open(ctx context.Context, kind Kind) (*List, error) {
	items, err := s.Load(ctx, kind)
	if err != nil {
		return nil, err
	}
	l := &List{ID: uuid.NewString(), Kind: kind, api: s.api, items: items}
	s.lists.Add(l.ID, l)
	return l, nil
}

// List returns a tracked list.
func (s *Service) List(id string) (*List, error) {
	l, ok := s.lists.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrListClosed, id)
	}
	return l, nil
}

// List is the in-memory copy of one rendered library list.
type List struct {
	ID   string
	Kind Kind

	api   libraryAPI
	mu    sync.Mutex
	items []models.Interaction
}

// Items returns a copy of the current entries.
func (l *List) Items() []models.Interaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Interaction, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of entries.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Remove deletes the video's interaction on the backend and, only once that
// succeeded, drops it from the list. On failure the entry stays.
func (l *List) Remove(ctx context.Context, videoID string) error {
	if err := l.api.DeleteInteraction(ctx, videoID); err != nil {
		return fmt.Errorf("delete interaction %s: %w", videoID, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.items[:0]
	for _, item := range l.items {
		if item.Key() != videoID {
			kept = append(kept, item)
		}
	}
	l.items = kept
	return nil
}
