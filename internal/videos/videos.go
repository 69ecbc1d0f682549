// Package videos selects supplementary video material for course modules:
// candidate discovery against YouTube and best-effort localization of the
// transcript passage most relevant to a topic.
package videos

import "context"

// VideoRef points at one candidate video. StartSeconds/EndSeconds are set
// only when transcript localization found a confident window; (0, 0) means
// "link to the full video".
type VideoRef struct {
	// ID is the platform video identifier, used for transcript lookup.
	// Empty for fallback results.
	ID string `json:"-"`

	Title    string `json:"title"`
	Channel  string `json:"channel"`
	Duration string `json:"duration"`
	URL      string `json:"link"`

	StartSeconds int `json:"start_seconds,omitempty"`
	EndSeconds   int `json:"end_seconds,omitempty"`
}

// TranscriptSegment is one timed caption line.
type TranscriptSegment struct {
	Text     string
	Start    float64
	Duration float64
}

// Discoverer finds candidate videos for a query.
type Discoverer interface {
	// Discover returns up to limit candidates. An empty slice is a valid
	// outcome; callers substitute a deterministic fallback.
	Discover(ctx context.Context, query string, limit int) ([]VideoRef, error)
}

// TranscriptFetcher retrieves a video's transcript.
type TranscriptFetcher interface {
	// Fetch returns the transcript segments, or an error when no transcript
	// is available. Callers treat any failure as "no transcript".
	Fetch(ctx context.Context, videoID string) ([]TranscriptSegment, error)
}
