package models

import "fmt"

// LikeStatus is the like/dislike tri-state of an interaction.
type LikeStatus string

const (
	LikeStatusNone    LikeStatus = "NONE"
	LikeStatusLike    LikeStatus = "LIKE"
	LikeStatusDislike LikeStatus = "DISLIKE"
)

// String returns the wire representation.
func (s LikeStatus) String() string {
	return string(s)
}

// WatchStatus is the watch-progress tri-state of an interaction.
type WatchStatus string

const (
	WatchStatusNotWatched WatchStatus = "NOT_WATCHED"
	WatchStatusPartial    WatchStatus = "PARTIAL"
	WatchStatusFull       WatchStatus = "FULL"
)

// String returns the wire representation.
func (s WatchStatus) String() string {
	return string(s)
}

// Action is a user-triggered interaction mutation. The backend switches on
// these exact strings.
type Action string

const (
	ActionToggleLike       Action = "TOGGLE_LIKE"
	ActionToggleDislike    Action = "TOGGLE_DISLIKE"
	ActionToggleWatchLater Action = "TOGGLE_WATCH_LATER"
	ActionMarkPartial      Action = "MARK_PARTIAL"
	ActionMarkFull         Action = "MARK_FULL"
)

// Actions lists every action kind the backend accepts.
var Actions = []Action{
	ActionToggleLike,
	ActionToggleDislike,
	ActionToggleWatchLater,
	ActionMarkPartial,
	ActionMarkFull,
}

// ParseAction validates a raw action name.
func ParseAction(raw string) (Action, error) {
	for _, a := range Actions {
		if string(a) == raw {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown interaction action %q", raw)
}

// String returns the wire representation.
func (a Action) String() string {
	return string(a)
}

// Interaction is the backend's per (user, video) record. History and
// watch-later listings return these with the video nested.
type Interaction struct {
	InteractionID int64       `json:"interactionId,omitempty"`
	User          *User       `json:"user,omitempty"`
	Video         *Video      `json:"video,omitempty"`
	LikeStatus    LikeStatus  `json:"likeStatus,omitempty"`
	WatchStatus   WatchStatus `json:"watchStatus,omitempty"`
	WatchLater    bool        `json:"watchLater"`
	Clicked       bool        `json:"clicked"`
	LastModified  Timestamp   `json:"lastModified"`
}

// Key returns the video identifier the interaction belongs to, or "" when the
// nested video is missing.
func (i Interaction) Key() string {
	if i.Video == nil {
		return ""
	}
	return i.Video.VideoID
}

// InteractionRequest is the body of POST /interactions.
type InteractionRequest struct {
	UserID  int64  `json:"userId"`
	VideoID string `json:"videoId"`
	Action  Action `json:"action"`
}
