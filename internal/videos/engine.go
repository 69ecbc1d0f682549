package videos

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Engine combines candidate discovery with transcript window localization.
// It is stateless and safe for concurrent use.
type Engine struct {
	discoverer  Discoverer
	transcripts TranscriptFetcher
	limit       int
}

// NewEngine creates an Engine. transcripts may be nil to disable
// localization.
func NewEngine(d Discoverer, transcripts TranscriptFetcher) *Engine {
	return &Engine{
		discoverer:  d,
		transcripts: transcripts,
		limit:       5,
	}
}

// Discover returns candidates for a query, substituting the deterministic
// fallback when discovery yields nothing or fails.
func (e *Engine) Discover(ctx context.Context, query string) []VideoRef {
	candidates, err := e.discoverer.Discover(ctx, query, e.limit)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("video discovery failed")
	}
	if len(candidates) == 0 {
		return []VideoRef{FallbackResult(query)}
	}
	return candidates
}

// BestVideo picks the single best candidate for a query and, when a
// transcript is available, narrows it to the most relevant window.
// It always returns a usable reference.
func (e *Engine) BestVideo(ctx context.Context, query string) VideoRef {
	best := e.Discover(ctx, query)[0]

	if e.transcripts == nil || best.ID == "" {
		return best
	}

	segments, err := e.transcripts.Fetch(ctx, best.ID)
	if err != nil {
		// No transcript: link to the full video.
		return best
	}

	start, end := LocalizeWindow(segments, query)
	if end > start {
		best.StartSeconds = start
		best.EndSeconds = end
	}
	return best
}
