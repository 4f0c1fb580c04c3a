package interactions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubewise/models"
)

func likePtr(v models.LikeStatus) *models.LikeStatus    { return &v }
func watchPtr(v models.WatchStatus) *models.WatchStatus { return &v }
func boolPtr(v bool) *bool                              { return &v }

func allSnapshots() []Snapshot {
	var out []Snapshot
	for _, like := range []models.LikeStatus{models.LikeStatusNone, models.LikeStatusLike, models.LikeStatusDislike} {
		for _, watch := range []models.WatchStatus{models.WatchStatusNotWatched, models.WatchStatusPartial, models.WatchStatusFull} {
			for _, later := range []bool{false, true} {
				out = append(out, Snapshot{Like: like, Watch: watch, WatchLater: later})
			}
		}
	}
	return out
}

func apply(t *testing.T, s Snapshot, a models.Action) Snapshot {
	t.Helper()
	p, err := Next(s, a)
	require.NoError(t, err)
	return Effective(s, p)
}

func TestSnapshotFromDefaults(t *testing.T) {
	assert.Equal(t, DefaultSnapshot(), SnapshotFrom(nil))
	assert.Equal(t, DefaultSnapshot(), SnapshotFrom(&models.Interaction{}))

	got := SnapshotFrom(&models.Interaction{LikeStatus: models.LikeStatusDislike, WatchStatus: models.WatchStatusPartial, WatchLater: true})
	assert.Equal(t, Snapshot{Like: models.LikeStatusDislike, Watch: models.WatchStatusPartial, WatchLater: true}, got)
}

func TestEffectivePrecedence(t *testing.T) {
	server := Snapshot{Like: models.LikeStatusLike, Watch: models.WatchStatusFull, WatchLater: true}

	assert.Equal(t, server, Effective(server, Patch{}))

	got := Effective(server, Patch{WatchLater: boolPtr(false)})
	assert.Equal(t, Snapshot{Like: models.LikeStatusLike, Watch: models.WatchStatusFull, WatchLater: false}, got)

	got = Effective(server, Patch{Like: likePtr(models.LikeStatusNone), Watch: watchPtr(models.WatchStatusPartial)})
	assert.Equal(t, Snapshot{Like: models.LikeStatusNone, Watch: models.WatchStatusPartial, WatchLater: true}, got)
}

func TestToggleLikeCycles(t *testing.T) {
	s := DefaultSnapshot()
	s = apply(t, s, models.ActionToggleLike)
	assert.Equal(t, models.LikeStatusLike, s.Like)
	s = apply(t, s, models.ActionToggleLike)
	assert.Equal(t, models.LikeStatusNone, s.Like)

	s = apply(t, s, models.ActionToggleDislike)
	assert.Equal(t, models.LikeStatusDislike, s.Like)
	s = apply(t, s, models.ActionToggleLike)
	assert.Equal(t, models.LikeStatusLike, s.Like, "like replaces dislike")
	s = apply(t, s, models.ActionToggleDislike)
	assert.Equal(t, models.LikeStatusDislike, s.Like, "dislike replaces like")
}

func TestTogglesAreInvolutions(t *testing.T) {
	toggles := []models.Action{models.ActionToggleLike, models.ActionToggleDislike, models.ActionToggleWatchLater}
	for _, start := range allSnapshots() {
		for _, a := range toggles {
			twice := apply(t, apply(t, start, a), a)
			if a == models.ActionToggleWatchLater {
				assert.Equal(t, start, twice, "%s twice from %+v", a, start)
				continue
			}
			// Toggling like/dislike twice returns to start unless start held
			// the opposite status, which the first toggle overwrote.
			opposite := (a == models.ActionToggleLike && start.Like == models.LikeStatusDislike) ||
				(a == models.ActionToggleDislike && start.Like == models.LikeStatusLike)
			if opposite {
				assert.Equal(t, models.LikeStatusNone, twice.Like, "%s twice from %+v", a, start)
			} else {
				assert.Equal(t, start, twice, "%s twice from %+v", a, start)
			}
		}
	}
}

func TestMarksAreIdempotent(t *testing.T) {
	for _, start := range allSnapshots() {
		for _, a := range []models.Action{models.ActionMarkPartial, models.ActionMarkFull} {
			once := apply(t, start, a)
			assert.Equal(t, once, apply(t, once, a))
			assert.Equal(t, start.Like, once.Like)
			assert.Equal(t, start.WatchLater, once.WatchLater)
		}
	}

	full := apply(t, DefaultSnapshot(), models.ActionMarkFull)
	assert.Equal(t, models.WatchStatusPartial, apply(t, full, models.ActionMarkPartial).Watch, "marks move backwards too")
}

func TestNextTouchesOnlyItsField(t *testing.T) {
	p, err := Next(DefaultSnapshot(), models.ActionToggleWatchLater)
	require.NoError(t, err)
	assert.Nil(t, p.Like)
	assert.Nil(t, p.Watch)
	require.NotNil(t, p.WatchLater)
	assert.True(t, *p.WatchLater)

	p, err = Next(DefaultSnapshot(), models.ActionMarkPartial)
	require.NoError(t, err)
	assert.Nil(t, p.Like)
	assert.Nil(t, p.WatchLater)
}

func TestNextRejectsUnknownAction(t *testing.T) {
	p, err := Next(DefaultSnapshot(), models.Action("REWIND"))
	assert.True(t, errors.Is(err, ErrUnknownAction))
	assert.True(t, p.IsEmpty())
}

func TestMergeIsShallow(t *testing.T) {
	base := Patch{Like: likePtr(models.LikeStatusLike), WatchLater: boolPtr(true)}
	merged := base.Merge(Patch{WatchLater: boolPtr(false), Watch: watchPtr(models.WatchStatusFull)})

	assert.Equal(t, models.LikeStatusLike, *merged.Like)
	assert.Equal(t, models.WatchStatusFull, *merged.Watch)
	assert.False(t, *merged.WatchLater)
	assert.True(t, *base.WatchLater, "merge must not alias the receiver's values")
	assert.True(t, Patch{}.IsEmpty())
}
