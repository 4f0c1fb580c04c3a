package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Video is a recommended or tracked YouTube video as returned by the backend.
// The frontend never mutates it.
type Video struct {
	VideoID         string    `json:"videoId"`
	Title           string    `json:"title"`
	ChannelName     string    `json:"channelName,omitempty"`
	Description     string    `json:"description,omitempty"`
	ThumbnailURL    string    `json:"thumbnailUrl,omitempty"`
	DurationSeconds int       `json:"durationSeconds,omitempty"`
	ViewCount       int64     `json:"viewCount,omitempty"`
	Tags            string    `json:"tags,omitempty"`
	PublishedAt     Timestamp `json:"publishedAt"`
	CreatedAt       Timestamp `json:"createdAt"`
}

// WatchURL returns the public YouTube page for the video.
func (v Video) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.VideoID
}

// localDateTimeLayout is the zone-less layout the backend uses for dates.
const localDateTimeLayout = "2006-01-02T15:04:05"

var timestampLayouts = []string{
	time.RFC3339Nano,
	localDateTimeLayout,
	"2006-01-02",
}

// Timestamp decodes the backend's date values. The backend emits zone-less
// local date-times ("2024-05-01T10:00:00.123"), occasionally RFC 3339, and
// sometimes the numeric array form [2024,5,1,10,0,0,123000000]. Null decodes
// to the zero value.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if data[0] == '[' {
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("decode timestamp array: %w", err)
		}
		return t.fromParts(parts)
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", raw)
}

func (t *Timestamp) fromParts(parts []int) error {
	if len(parts) < 3 {
		return fmt.Errorf("timestamp array needs at least 3 elements, got %d", len(parts))
	}
	// year, month, day, hour, minute, second, nanos
	fields := make([]int, 7)
	copy(fields, parts)
	t.Time = time.Date(fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5], fields[6], time.UTC)
	return nil
}

// MarshalJSON writes the zone-less layout the backend expects.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(localDateTimeLayout))
}
