package videos

import "strings"

const (
	// windowSize is the number of consecutive segments scored together.
	windowSize = 5

	// maxSilenceSeconds stops window extension after this much consecutive
	// time with no keyword hits.
	maxSilenceSeconds = 45

	// maxSpanSeconds caps the total localized span.
	maxSpanSeconds = 300

	// minSpanSeconds is the floor on the localized span.
	minSpanSeconds = 60

	// minKeywordLen drops short query tokens before scoring.
	minKeywordLen = 3
)

// stopWords are query tokens that carry no topical signal.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"to": true, "of": true, "in": true, "on": true, "for": true,
	"with": true, "is": true, "are": true, "what": true, "how": true,
	"why": true,
}

// LocalizeWindow finds the contiguous transcript window most relevant to
// query via keyword-density scoring. It returns (startSeconds, endSeconds)
// in integer seconds, or (0, 0) when no confident window exists (empty
// transcript, no usable keywords, or zero keyword hits).
func LocalizeWindow(segments []TranscriptSegment, query string) (int, int) {
	if len(segments) == 0 {
		return 0, 0
	}

	keywords := extractKeywords(query)
	if len(keywords) == 0 {
		return 0, 0
	}

	scores := make([]int, len(segments))
	for i, seg := range segments {
		scores[i] = scoreText(seg.Text, keywords)
	}

	win := windowSize
	if win > len(segments) {
		win = len(segments)
	}

	bestStart, bestScore := 0, 0
	sum := 0
	for i := 0; i < win; i++ {
		sum += scores[i]
	}
	bestScore = sum
	for i := win; i < len(segments); i++ {
		sum += scores[i] - scores[i-win]
		if sum > bestScore {
			bestScore = sum
			bestStart = i - win + 1
		}
	}

	if bestScore == 0 {
		return 0, 0
	}

	start := int(segments[bestStart].Start)
	lastIdx := bestStart + win - 1
	end := int(segments[lastIdx].Start + segments[lastIdx].Duration)

	// Extend forward while the silence and span budgets hold.
	silence := 0.0
	for i := lastIdx + 1; i < len(segments); i++ {
		seg := segments[i]
		if scores[i] == 0 {
			silence += seg.Duration
		} else {
			silence = 0
		}
		candidate := int(seg.Start + seg.Duration)
		if silence >= maxSilenceSeconds || candidate-start >= maxSpanSeconds {
			break
		}
		end = candidate
	}

	if end-start < minSpanSeconds {
		end = start + minSpanSeconds
	}

	return start, end
}

// extractKeywords lowercases and tokenizes the query, dropping stop words
// and short tokens.
func extractKeywords(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	var keywords []string
	for _, f := range fields {
		if len(f) < minKeywordLen || stopWords[f] {
			continue
		}
		keywords = append(keywords, f)
	}
	return keywords
}

// scoreText counts keyword occurrences in text, case-insensitive.
func scoreText(text string, keywords []string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, kw := range keywords {
		score += strings.Count(lower, kw)
	}
	return score
}
