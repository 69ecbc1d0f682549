package videos

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultTimedTextBaseURL = "https://video.google.com/timedtext"

// TimedTextClient fetches transcripts from the timedtext caption endpoint.
type TimedTextClient struct {
	baseURL string
	lang    string
	http    *http.Client
}

// NewTimedTextClient creates a transcript client for English captions.
func NewTimedTextClient() *TimedTextClient {
	return &TimedTextClient{
		baseURL: defaultTimedTextBaseURL,
		lang:    "en",
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type timedTextDoc struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

// Fetch retrieves and decodes the caption track for a video. Any failure,
// including an empty track, returns an error; callers treat it as "no
// transcript".
func (c *TimedTextClient) Fetch(ctx context.Context, videoID string) ([]TranscriptSegment, error) {
	params := url.Values{
		"lang": {c.lang},
		"v":    {videoID},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcript unavailable (%d)", resp.StatusCode)
	}

	var doc timedTextDoc
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	if len(doc.Texts) == 0 {
		return nil, fmt.Errorf("empty transcript for video %s", videoID)
	}

	segments := make([]TranscriptSegment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		start, err := strconv.ParseFloat(t.Start, 64)
		if err != nil {
			continue
		}
		dur, err := strconv.ParseFloat(t.Dur, 64)
		if err != nil {
			dur = 0
		}
		segments = append(segments, TranscriptSegment{
			Text:     t.Body,
			Start:    start,
			Duration: dur,
		})
	}
	return segments, nil
}
