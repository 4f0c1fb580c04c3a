package interactions

import (
	"sync"

	"tubewise/models"
)

// Entry is what a view hands over when mounting a card: the video plus the
// last known backend record, which may be nil (search results carry none).
type Entry struct {
	Video       models.Video
	Interaction *models.Interaction
}

// Card is one mounted instance of a video card. Its overlay starts empty and
// lives until the mount is discarded.
type Card struct {
	ID      string
	MountID string
	View    string
	Video   models.Video

	mu      sync.Mutex
	server  Snapshot
	overlay Patch
}

func newCard(id, mountID, view string, e Entry) *Card {
	return &Card{
		ID:      id,
		MountID: mountID,
		View:    view,
		Video:   e.Video,
		server:  SnapshotFrom(e.Interaction),
	}
}

// State returns the displayed interaction state.
func (c *Card) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Effective(c.server, c.overlay)
}

// Server returns the backend snapshot the card was last given.
func (c *Card) Server() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.server
}

// Overlay returns a copy of the local patch.
func (c *Card) Overlay() Patch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Patch{}.Merge(c.overlay)
}

// Apply merges the patch produced by action into the overlay and returns the
// new displayed state. Concurrent actions on the same card apply in the order
// they acquire the lock.
func (c *Card) Apply(action models.Action) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	patch, err := Next(Effective(c.server, c.overlay), action)
	if err != nil {
		return Snapshot{}, err
	}
	c.overlay = c.overlay.Merge(patch)
	return Effective(c.server, c.overlay), nil
}

// SetServer replaces the backend snapshot. The overlay is kept, so a local
// assertion keeps masking newer server values for the card's lifetime.
func (c *Card) SetServer(s Snapshot) {
	c.mu.Lock()
	c.server = s
	c.mu.Unlock()
}
