package videos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDataAPIBaseURL = "https://www.googleapis.com/youtube/v3"

	// maxCandidateDuration excludes long-form videos from candidates.
	maxCandidateDuration = 20 * time.Minute
)

// YouTubeClient discovers candidates through the YouTube Data API v3.
type YouTubeClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewYouTubeClient creates a discovery client. An empty API key is valid;
// Discover then reports no candidates and callers fall back.
func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		apiKey:  apiKey,
		baseURL: defaultDataAPIBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewYouTubeClientFromEnv reads COURSEGEN_YOUTUBE_API_KEY, falling back to
// YOUTUBE_API_KEY.
func NewYouTubeClientFromEnv() *YouTubeClient {
	key := os.Getenv("COURSEGEN_YOUTUBE_API_KEY")
	if key == "" {
		key = os.Getenv("YOUTUBE_API_KEY")
	}
	return NewYouTubeClient(key)
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Discover searches for candidate videos and filters out items longer than
// the duration ceiling.
func (c *YouTubeClient) Discover(ctx context.Context, query string, limit int) ([]VideoRef, error) {
	if c.apiKey == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	var search searchResponse
	params := url.Values{
		"part":       {"snippet"},
		"type":       {"video"},
		"maxResults": {strconv.Itoa(limit)},
		"q":          {query},
		"key":        {c.apiKey},
	}
	if err := c.getJSON(ctx, "/search", params, &search); err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	if len(search.Items) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	var details videosResponse
	params = url.Values{
		"part": {"contentDetails"},
		"id":   {strings.Join(ids, ",")},
		"key":  {c.apiKey},
	}
	if err := c.getJSON(ctx, "/videos", params, &details); err != nil {
		return nil, fmt.Errorf("fetch video details: %w", err)
	}

	durations := make(map[string]time.Duration, len(details.Items))
	for _, item := range details.Items {
		if d, err := parseISODuration(item.ContentDetails.Duration); err == nil {
			durations[item.ID] = d
		}
	}

	var out []VideoRef
	for _, item := range search.Items {
		id := item.ID.VideoID
		if id == "" {
			continue
		}
		d, ok := durations[id]
		if !ok || d > maxCandidateDuration {
			continue
		}
		out = append(out, VideoRef{
			ID:       id,
			Title:    item.Snippet.Title,
			Channel:  item.Snippet.ChannelTitle,
			Duration: formatDuration(d),
			URL:      "https://www.youtube.com/watch?v=" + id,
		})
	}
	return out, nil
}

func (c *YouTubeClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error (%d)", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// FallbackResult is the deterministic candidate returned when discovery
// yields nothing, pointing at a search results page instead of a video.
func FallbackResult(query string) VideoRef {
	return VideoRef{
		Title:    "Intro to " + query,
		Channel:  "Example Channel",
		Duration: "10:00",
		URL:      "https://www.youtube.com/results?search_query=" + url.QueryEscape(query),
	}
}

// parseISODuration parses the ISO-8601 duration subset the Data API emits
// (e.g. "PT1H2M3S", "PT45S").
func parseISODuration(s string) (time.Duration, error) {
	orig := s
	if !strings.HasPrefix(s, "PT") && !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("invalid duration %q", orig)
	}
	s = strings.TrimPrefix(s, "P")
	s = strings.TrimPrefix(s, "T")

	var total time.Duration
	num := 0
	hasNum := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			num = num*10 + int(c-'0')
			hasNum = true
		case c == 'T':
			// Date/time separator for day-bearing durations.
		case c == 'D':
			total += time.Duration(num) * 24 * time.Hour
			num, hasNum = 0, false
		case c == 'H':
			total += time.Duration(num) * time.Hour
			num, hasNum = 0, false
		case c == 'M':
			total += time.Duration(num) * time.Minute
			num, hasNum = 0, false
		case c == 'S':
			total += time.Duration(num) * time.Second
			num, hasNum = 0, false
		default:
			return 0, fmt.Errorf("invalid duration %q", orig)
		}
	}
	if hasNum {
		return 0, fmt.Errorf("invalid duration %q", orig)
	}
	return total, nil
}

// formatDuration renders a duration as m:ss or h:mm:ss display text.
func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
