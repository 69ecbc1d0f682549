package videos

import "testing"

// flatTranscript builds count segments of dur seconds each, all with the
// given text.
func flatTranscript(count int, dur float64, text string) []TranscriptSegment {
	segs := make([]TranscriptSegment, count)
	for i := range segs {
		segs[i] = TranscriptSegment{
			Text:     text,
			Start:    float64(i) * dur,
			Duration: dur,
		}
	}
	return segs
}

func TestLocalizeWindow_CoversKeywordRun(t *testing.T) {
	// 30 segments of 10s; only segments 10..14 mention the keyword.
	segs := flatTranscript(30, 10, "unrelated chatter about nothing")
	for i := 10; i <= 14; i++ {
		segs[i].Text = "deep dive into recursion with examples"
	}

	start, end := LocalizeWindow(segs, "recursion basics")
	if start != 100 {
		t.Errorf("start: got %d, want 100", start)
	}
	if end <= start {
		t.Fatalf("end %d must exceed start %d", end, start)
	}
	// The window must cover the full keyword run.
	if end < 150 {
		t.Errorf("end %d does not cover the keyword run (ends at 150)", end)
	}
	if end-start < 60 {
		t.Errorf("span %d below 60s floor", end-start)
	}
}

func TestLocalizeWindow_MinimumSpan(t *testing.T) {
	// A short transcript: the floor forces at least 60 seconds.
	segs := flatTranscript(5, 4, "pointers in go explained")
	start, end := LocalizeWindow(segs, "go pointers")
	if start != 0 {
		t.Errorf("start: got %d, want 0", start)
	}
	if end-start < 60 {
		t.Errorf("span %d below 60s floor", end-start)
	}
}

func TestLocalizeWindow_SilenceStopsExtension(t *testing.T) {
	// Keyword run at the start, then a long silent tail. Extension must
	// stop before accumulating 45s of silence.
	segs := flatTranscript(40, 10, "filler filler filler")
	for i := 0; i < 5; i++ {
		segs[i].Text = "sorting algorithms comparison"
	}

	start, end := LocalizeWindow(segs, "sorting algorithms")
	if start != 0 {
		t.Errorf("start: got %d, want 0", start)
	}
	// Window ends at 50s; at most 4 silent 10s segments fit under the 45s
	// silence budget.
	if end > 90 {
		t.Errorf("end %d extended past the silence budget", end)
	}
}

func TestLocalizeWindow_SpanCap(t *testing.T) {
	// Every segment scores, so only the 300s span cap stops extension.
	segs := flatTranscript(100, 10, "graph theory lecture on graph coloring")
	start, end := LocalizeWindow(segs, "graph theory")
	if start != 0 {
		t.Errorf("start: got %d, want 0", start)
	}
	if end-start > 300 {
		t.Errorf("span %d exceeds 300s cap", end-start)
	}
}

func TestLocalizeWindow_NoKeywords(t *testing.T) {
	segs := flatTranscript(10, 10, "anything")
	// Query reduces to nothing after stop-word and length filtering.
	start, end := LocalizeWindow(segs, "the a of in")
	if start != 0 || end != 0 {
		t.Errorf("got (%d, %d), want (0, 0)", start, end)
	}
}

func TestLocalizeWindow_NoHits(t *testing.T) {
	segs := flatTranscript(10, 10, "cooking pasta at home")
	start, end := LocalizeWindow(segs, "quantum entanglement")
	if start != 0 || end != 0 {
		t.Errorf("got (%d, %d), want (0, 0)", start, end)
	}
}

func TestLocalizeWindow_EmptyTranscript(t *testing.T) {
	start, end := LocalizeWindow(nil, "anything at all")
	if start != 0 || end != 0 {
		t.Errorf("got (%d, %d), want (0, 0)", start, end)
	}
}

func TestExtractKeywords(t *testing.T) {
	got := extractKeywords("What is the Go programming language for?")
	want := []string{"programming", "language"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
