package models

import (
	"encoding/json"
	"testing"
)

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		got, err := ParseAction(string(a))
		if err != nil {
			t.Fatalf("ParseAction(%q) returned error: %v", a, err)
		}
		if got != a {
			t.Fatalf("ParseAction(%q) = %q", a, got)
		}
	}

	for _, raw := range []string{"", "toggle_like", "DELETE", "MARK_NONE"} {
		if _, err := ParseAction(raw); err == nil {
			t.Errorf("ParseAction(%q) expected error", raw)
		}
	}
}

func TestInteractionKey(t *testing.T) {
	var empty Interaction
	if empty.Key() != "" {
		t.Fatalf("expected empty key without video")
	}

	var it Interaction
	payload := `{"interactionId":7,"video":{"videoId":"v1","title":"t"},"likeStatus":"LIKE","watchStatus":"PARTIAL","watchLater":true,"clicked":true,"lastModified":"2024-01-02T03:04:05.678"}`
	if err := json.Unmarshal([]byte(payload), &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if it.Key() != "v1" {
		t.Fatalf("expected key v1, got %q", it.Key())
	}
	if it.LikeStatus != LikeStatusLike || it.WatchStatus != WatchStatusPartial || !it.WatchLater || !it.Clicked {
		t.Fatalf("unexpected interaction %+v", it)
	}
	if it.LastModified.IsZero() {
		t.Fatalf("expected lastModified to decode")
	}
}

func TestInteractionRequestWireFormat(t *testing.T) {
	data, err := json.Marshal(InteractionRequest{UserID: 1, VideoID: "xyz", Action: ActionToggleLike})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"userId":1,"videoId":"xyz","action":"TOGGLE_LIKE"}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}
