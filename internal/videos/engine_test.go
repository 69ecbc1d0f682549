package videos

import (
	"context"
	"errors"
	"testing"
)

type fakeDiscoverer struct {
	refs []VideoRef
	err  error
}

func (f *fakeDiscoverer) Discover(_ context.Context, _ string, _ int) ([]VideoRef, error) {
	return f.refs, f.err
}

type fakeTranscripts struct {
	segments []TranscriptSegment
	err      error
}

func (f *fakeTranscripts) Fetch(_ context.Context, _ string) ([]TranscriptSegment, error) {
	return f.segments, f.err
}

func TestEngine_BestVideoLocalizes(t *testing.T) {
	segs := flatTranscript(20, 10, "other material")
	for i := 5; i <= 9; i++ {
		segs[i].Text = "closures capture variables"
	}

	e := NewEngine(
		&fakeDiscoverer{refs: []VideoRef{{ID: "v1", Title: "Go closures", URL: "https://example/v1"}}},
		&fakeTranscripts{segments: segs},
	)

	v := e.BestVideo(context.Background(), "closures explained")
	if v.ID != "v1" {
		t.Fatalf("ID: got %q", v.ID)
	}
	if v.StartSeconds != 50 {
		t.Errorf("StartSeconds: got %d, want 50", v.StartSeconds)
	}
	if v.EndSeconds <= v.StartSeconds {
		t.Errorf("EndSeconds %d must exceed StartSeconds %d", v.EndSeconds, v.StartSeconds)
	}
}

func TestEngine_NoTranscriptLinksFullVideo(t *testing.T) {
	e := NewEngine(
		&fakeDiscoverer{refs: []VideoRef{{ID: "v1", Title: "Go maps"}}},
		&fakeTranscripts{err: errors.New("no captions")},
	)

	v := e.BestVideo(context.Background(), "maps internals")
	if v.StartSeconds != 0 || v.EndSeconds != 0 {
		t.Errorf("expected zero window, got (%d, %d)", v.StartSeconds, v.EndSeconds)
	}
}

func TestEngine_DiscoveryFailureFallsBack(t *testing.T) {
	e := NewEngine(&fakeDiscoverer{err: errors.New("api down")}, nil)

	v := e.BestVideo(context.Background(), "kubernetes basics")
	if v.Title != "Intro to kubernetes basics" {
		t.Errorf("expected fallback result, got %+v", v)
	}
}

func TestEngine_EmptyDiscoveryFallsBack(t *testing.T) {
	e := NewEngine(&fakeDiscoverer{}, nil)

	refs := e.Discover(context.Background(), "rust ownership")
	if len(refs) != 1 || refs[0].Channel != "Example Channel" {
		t.Errorf("expected single fallback candidate, got %v", refs)
	}
}
