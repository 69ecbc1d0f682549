package videos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"PT45S", 45 * time.Second},
		{"PT5M", 5 * time.Minute},
		{"PT1H2M3S", time.Hour + 2*time.Minute + 3*time.Second},
		{"PT10M30S", 10*time.Minute + 30*time.Second},
		{"P1DT1H", 25 * time.Hour},
	}
	for _, c := range cases {
		got, err := parseISODuration(c.in)
		if err != nil {
			t.Errorf("parseISODuration(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseISODuration(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	for _, bad := range []string{"", "10:00", "PT5"} {
		if _, err := parseISODuration(bad); err == nil {
			t.Errorf("parseISODuration(%q): expected error", bad)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{95 * time.Second, "1:35"},
		{10 * time.Minute, "10:00"},
		{time.Hour + 5*time.Second, "1:00:05"},
	}
	for _, c := range cases {
		if got := formatDuration(c.in); got != c.want {
			t.Errorf("formatDuration(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestYouTubeClient_NoKeyNoCandidates(t *testing.T) {
	c := NewYouTubeClient("")
	got, err := c.Discover(context.Background(), "go concurrency", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates without an API key, got %d", len(got))
	}
}

func TestYouTubeClient_DiscoverFiltersLongVideos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/search"):
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{
						"id":      map[string]any{"videoId": "short1"},
						"snippet": map[string]any{"title": "Go in 10 minutes", "channelTitle": "GoCasts"},
					},
					{
						"id":      map[string]any{"videoId": "long1"},
						"snippet": map[string]any{"title": "Go full course", "channelTitle": "GoCasts"},
					},
				},
			})
		case strings.HasPrefix(r.URL.Path, "/videos"):
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"id": "short1", "contentDetails": map[string]any{"duration": "PT9M58S"}},
					{"id": "long1", "contentDetails": map[string]any{"duration": "PT1H12M"}},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewYouTubeClient("test-key")
	c.baseURL = srv.URL

	got, err := c.Discover(context.Background(), "go tutorial", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate after duration filtering, got %d", len(got))
	}
	v := got[0]
	if v.ID != "short1" {
		t.Errorf("ID: got %q", v.ID)
	}
	if v.Duration != "9:58" {
		t.Errorf("Duration: got %q", v.Duration)
	}
	if v.URL != "https://www.youtube.com/watch?v=short1" {
		t.Errorf("URL: got %q", v.URL)
	}
}

func TestYouTubeClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewYouTubeClient("test-key")
	c.baseURL = srv.URL

	if _, err := c.Discover(context.Background(), "anything", 5); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestFallbackResult(t *testing.T) {
	v := FallbackResult("linear algebra")
	if v.Title != "Intro to linear algebra" {
		t.Errorf("Title: got %q", v.Title)
	}
	if !strings.Contains(v.URL, "search_query=linear+algebra") {
		t.Errorf("URL: got %q", v.URL)
	}
	if v.ID != "" {
		t.Errorf("fallback must not carry a video ID, got %q", v.ID)
	}
}
