package course

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anand-106/coursegen/internal/llm"
	"github.com/anand-106/coursegen/internal/videos"
)

// fakeFinder returns a canned video for every query and records the
// queries it saw.
type fakeFinder struct {
	mu      sync.Mutex
	queries []string
}

func (f *fakeFinder) BestVideo(_ context.Context, query string) videos.VideoRef {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return videos.VideoRef{
		Title:    "Video for " + query,
		Channel:  "Test Channel",
		Duration: "10:00",
		URL:      "https://www.youtube.com/watch?v=test",
	}
}

func structuredResp(body string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(body)}
}

func TestAssembleFullPackage(t *testing.T) {
	pkg := map[string]any{
		"explanations": map[string]any{
			"Intro": "Getting started.",
			"Usage": "How to use it.\n\n[[VIDEO_1]]",
		},
		"flashcards": []any{
			map[string]any{"front": "F", "back": "B"},
		},
		"quiz": []any{
			quizItem("Which flag enables verbose output?", fourOptions(), float64(1), "The -v flag."),
		},
		"mermaid": "```mermaid\ngraph TD\nA-->B\n```",
	}
	pkgJSON, err := json.Marshal(pkg)
	require.NoError(t, err)

	mock := llm.NewMockProvider(
		structuredResp(`["Intro", "Usage"]`),
		structuredResp(string(pkgJSON)),
	)
	finder := &fakeFinder{}
	a := NewAssembler(llm.NewClient(mock), finder)

	mod := a.Assemble(context.Background(), "Go Basics", "Module 2: Error Handling")

	assert.Equal(t, "Module 2: Error Handling", mod.Title)
	assert.Equal(t, []string{"Intro", "Usage"}, mod.Subtopics)

	require.Len(t, mod.Videos, 2)
	require.NotNil(t, mod.Videos[0])
	require.NotNil(t, mod.Videos[1])

	// The module label is stripped before searching.
	assert.ElementsMatch(t, []string{"Error Handling Intro", "Error Handling Usage"}, finder.queries)

	// Subtopic 0 had a video but no marker, so one is appended; subtopic 1
	// keeps the marker it came with.
	assert.Contains(t, mod.Explanations["Intro"], "[[VIDEO_0]]")
	assert.Contains(t, mod.Explanations["Usage"], "[[VIDEO_1]]")

	require.Len(t, mod.Flashcards, 1)
	assert.Equal(t, "F", mod.Flashcards[0].Front)

	require.Len(t, mod.Quiz, 1)
	assert.Equal(t, 1, mod.Quiz[0].AnswerIndex)

	assert.Equal(t, "graph TD\nA-->B", mod.Mermaid)
}

func TestAssembleStripsMarkersWithoutVideos(t *testing.T) {
	mock := llm.NewMockProvider(
		structuredResp(`["Intro"]`),
		structuredResp(`{"explanations": {"Intro": "Some text.\n\n[[VIDEO_0]]\nMore text."}}`),
	)
	a := NewAssembler(llm.NewClient(mock), nil) // no video binding

	mod := a.Assemble(context.Background(), "Go Basics", "Concurrency")

	require.Len(t, mod.Videos, 1)
	assert.Nil(t, mod.Videos[0])
	assert.NotContains(t, mod.Explanations["Intro"], "[[VIDEO_0]]")
	assert.Contains(t, mod.Explanations["Intro"], "Some text.")
	assert.Contains(t, mod.Explanations["Intro"], "More text.")
}

func TestAssembleStripsDanglingMarkerIndexes(t *testing.T) {
	mock := llm.NewMockProvider(
		structuredResp(`["Intro"]`),
		structuredResp(`{"explanations": {"Intro": "Text [[VIDEO_7]] more."}}`),
	)
	finder := &fakeFinder{}
	a := NewAssembler(llm.NewClient(mock), finder)

	mod := a.Assemble(context.Background(), "Go Basics", "Concurrency")

	assert.NotContains(t, mod.Explanations["Intro"], "[[VIDEO_7]]")
	assert.Contains(t, mod.Explanations["Intro"], "[[VIDEO_0]]")
}

func TestAssembleSweepsMarkersInInventedKeys(t *testing.T) {
	// Explanation keys beyond the planned subtopics still get the
	// dangling-marker sweep.
	mock := llm.NewMockProvider(
		structuredResp(`["Intro"]`),
		structuredResp(`{"explanations": {"Intro": "Text.", "Extra Notes": "See [[VIDEO_3]] for more."}}`),
	)
	a := NewAssembler(llm.NewClient(mock), nil)

	mod := a.Assemble(context.Background(), "Go Basics", "Concurrency")

	assert.NotContains(t, mod.Explanations["Extra Notes"], "[[VIDEO_3]]")
	assert.Contains(t, mod.Explanations["Extra Notes"], "See")
}

func TestAssembleSubtopicFallback(t *testing.T) {
	// Subtopic planning fails, package generation succeeds.
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		structuredResp(`{"explanations": {"Overview": "The big picture."}}`),
	)
	a := NewAssembler(llm.NewClient(mock), nil)

	mod := a.Assemble(context.Background(), "Go Basics", "Concurrency")

	assert.Equal(t, fallbackSubtopics, mod.Subtopics)
	assert.Equal(t, "The big picture.", mod.Explanations["Overview"])
}

func TestAssembleEmptyContentOnTotalFailure(t *testing.T) {
	mock := llm.NewMockProvider() // every call fails
	finder := &fakeFinder{}
	a := NewAssembler(llm.NewClient(mock), finder)

	mod := a.Assemble(context.Background(), "Go Basics", "Module 1: Concurrency")

	// Structure and videos survive even when content generation fails.
	assert.Equal(t, fallbackSubtopics, mod.Subtopics)
	require.Len(t, mod.Videos, len(fallbackSubtopics))
	for _, v := range mod.Videos {
		assert.NotNil(t, v)
	}
	assert.Empty(t, mod.Explanations)
	assert.Empty(t, mod.Flashcards)
	assert.Empty(t, mod.Quiz)
	assert.Empty(t, mod.Mermaid)
}

func TestCleanMermaid(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"graph TD\nA-->B", "graph TD\nA-->B"},
		{"```mermaid\ngraph TD\nA-->B\n```", "graph TD\nA-->B"},
		{"```\ngraph TD\nA-->B\n```", "graph TD\nA-->B"},
		{"  graph TD\nA-->B  ", "graph TD\nA-->B"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanMermaid(tt.in))
	}
}
