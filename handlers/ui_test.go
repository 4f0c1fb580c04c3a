package handlers

import (
	"strings"
	"testing"
	"time"

	"tubewise/models"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "00:00"},
		{-3, "00:00"},
		{5, "0:05"},
		{125, "2:05"},
		{3600, "60:00"},
	}
	for _, tc := range tests {
		if got := formatDuration(tc.seconds); got != tc.expected {
			t.Errorf("formatDuration(%d) = %q, expected %q", tc.seconds, got, tc.expected)
		}
	}
}

func TestWatchLabel(t *testing.T) {
	if got := watchLabel(models.WatchStatusNotWatched); got != "NOT WATCHED" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := watchLabel(models.WatchStatusFull); got != "FULL" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestCardFallbacks(t *testing.T) {
	v := models.Video{VideoID: "x"}
	if thumbnailURL(v) != placeholderThumbnail {
		t.Fatalf("expected placeholder thumbnail")
	}
	if describe(v) != "No description available." {
		t.Fatalf("expected description fallback")
	}
	if formatYear(v.PublishedAt) != "" {
		t.Fatalf("expected empty year for zero timestamp")
	}

	v.PublishedAt = models.Timestamp{Time: time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)}
	if formatYear(v.PublishedAt) != "2021" {
		t.Fatalf("unexpected year %q", formatYear(v.PublishedAt))
	}
	if formatDate(v.PublishedAt) != "Mar 4, 2021" {
		t.Fatalf("unexpected date %q", formatDate(v.PublishedAt))
	}
}

func TestAvatarInitial(t *testing.T) {
	tests := map[string]string{
		"":        "U",
		"ada":     "A",
		" élodie": "E",
		"Øyvind":  "O",
	}
	for in, expected := range tests {
		if got := avatarInitial(in); got != expected {
			t.Errorf("avatarInitial(%q) = %q, expected %q", in, got, expected)
		}
	}
}

func TestMarkdownDropsRawHTML(t *testing.T) {
	r, err := NewRenderer("AI Recommender", 1)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if r.partials.Lookup("card") == nil {
		t.Fatalf("card partial not parsed")
	}

	var sb strings.Builder
	page := r.pages["home"]
	data := homePageData{
		Page:       r.Page("/"),
		HasResult:  true,
		AIResponse: "**bold** <script>alert(1)</script>",
	}
	if err := page.ExecuteTemplate(&sb, "base", data); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("expected rendered markdown, got %s", out)
	}
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Fatalf("raw html should not be rendered")
	}
}
