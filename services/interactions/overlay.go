// Package interactions implements the optimistic overlay a video card applies
// on top of the backend's interaction state.
//
// The displayed value of each field is overlay.field if set, else the server
// value, else the default (NONE, NOT_WATCHED, false). Overlays are never
// reconciled with the backend's response; they live as long as the card
// instance that owns them.
package interactions

import (
	"errors"
	"fmt"

	"tubewise/models"
)

// ErrUnknownAction is returned for action kinds outside the closed set.
var ErrUnknownAction = errors.New("unknown interaction action")

// Snapshot is a fully resolved interaction state.
type Snapshot struct {
	Like       models.LikeStatus
	Watch      models.WatchStatus
	WatchLater bool
}

// DefaultSnapshot is the state of a video the user never interacted with.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Like:  models.LikeStatusNone,
		Watch: models.WatchStatusNotWatched,
	}
}

// SnapshotFrom resolves a backend record, filling defaults for a nil record or
// empty fields.
func SnapshotFrom(i *models.Interaction) Snapshot {
	s := DefaultSnapshot()
	if i == nil {
		return s
	}
	if i.LikeStatus != "" {
		s.Like = i.LikeStatus
	}
	if i.WatchStatus != "" {
		s.Watch = i.WatchStatus
	}
	s.WatchLater = i.WatchLater
	return s
}

// Patch is a partial interaction state. Nil fields are not overridden.
type Patch struct {
	Like       *models.LikeStatus
	Watch      *models.WatchStatus
	WatchLater *bool
}

// IsEmpty reports whether the patch overrides nothing.
func (p Patch) IsEmpty() bool {
	return p.Like == nil && p.Watch == nil && p.WatchLater == nil
}

// Merge returns p with the fields set in other written over it. Fields other
// leaves unset are kept from p.
func (p Patch) Merge(other Patch) Patch {
	if other.Like != nil {
		v := *other.Like
		p.Like = &v
	}
	if other.Watch != nil {
		v := *other.Watch
		p.Watch = &v
	}
	if other.WatchLater != nil {
		v := *other.WatchLater
		p.WatchLater = &v
	}
	return p
}

// Effective resolves the displayed state: overlay fields win over server ones.
func Effective(server Snapshot, overlay Patch) Snapshot {
	out := server
	if overlay.Like != nil {
		out.Like = *overlay.Like
	}
	if overlay.Watch != nil {
		out.Watch = *overlay.Watch
	}
	if overlay.WatchLater != nil {
		out.WatchLater = *overlay.WatchLater
	}
	return out
}

// Next computes the patch an action produces from the currently displayed
// state. Toggles flip between the asserted value and NONE/false; the mark
// actions set the watch status unconditionally.
func Next(current Snapshot, action models.Action) (Patch, error) {
	var p Patch
	switch action {
	case models.ActionToggleLike:
		v := models.LikeStatusLike
		if current.Like == models.LikeStatusLike {
			v = models.LikeStatusNone
		}
		p.Like = &v
	case models.ActionToggleDislike:
		v := models.LikeStatusDislike
		if current.Like == models.LikeStatusDislike {
			v = models.LikeStatusNone
		}
		p.Like = &v
	case models.ActionToggleWatchLater:
		v := !current.WatchLater
		p.WatchLater = &v
	case models.ActionMarkPartial:
		v := models.WatchStatusPartial
		p.Watch = &v
	case models.ActionMarkFull:
		v := models.WatchStatusFull
		p.Watch = &v
	default:
		return Patch{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return p, nil
}
