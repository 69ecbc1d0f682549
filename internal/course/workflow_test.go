package course

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anand-106/coursegen/internal/llm"
)

func eventCollector() (Emitter, *[]Event) {
	var events []Event
	return func(e Event) { events = append(events, e) }, &events
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

// moduleResponses returns the two canned responses one module assembly
// consumes: subtopic planning, then the content package.
func moduleResponses() []llm.MockResponse {
	return []llm.MockResponse{
		structuredResp(`["Intro", "Practice"]`),
		structuredResp(`{"explanations": {"Intro": "Basics.", "Practice": "Exercises."}}`),
	}
}

func newTestRunner(mock *llm.MockProvider) *Runner {
	client := llm.NewClient(mock)
	return NewRunner(client, NewAssembler(client, nil))
}

func TestRunHappyPath(t *testing.T) {
	responses := []llm.MockResponse{
		structuredResp(`{"valid": true}`),
		{Content: []byte("Title: Go Basics")},
		structuredResp(`["Module 1: Syntax", "Module 2: Types"]`),
	}
	responses = append(responses, moduleResponses()...)
	responses = append(responses, moduleResponses()...)
	mock := llm.NewMockProvider(responses...)

	emit, events := eventCollector()
	course, err := newTestRunner(mock).Run(context.Background(), "teach me go", Options{CourseID: "c-123"}, emit)

	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, "Go Basics", course.Title)
	assert.Equal(t, []string{"Module 1: Syntax", "Module 2: Types"}, course.Topics)
	assert.Empty(t, course.PendingTopics)
	assert.Len(t, course.Modules, 2)

	assert.Equal(t, []EventType{
		EventStatus, EventStatus, EventStatus,
		EventMeta,
		EventModule, EventModule,
		EventComplete,
	}, eventTypes(*events))

	meta, ok := (*events)[3].Data.(Meta)
	require.True(t, ok)
	assert.Equal(t, "Go Basics", meta.Title)
	assert.Equal(t, course.Topics, meta.Topics)

	last := (*events)[len(*events)-1]
	assert.Equal(t, "c-123", last.CourseID)

	ordered := course.ModulesInOrder()
	require.Len(t, ordered, 2)
	assert.Equal(t, "Module 1: Syntax", ordered[0].Title)
	assert.Equal(t, "Module 2: Types", ordered[1].Title)
}

func TestRunRejectsInvalidPrompt(t *testing.T) {
	mock := llm.NewMockProvider(
		structuredResp(`{"valid": false, "reason": "not a learnable subject"}`),
	)

	emit, events := eventCollector()
	course, err := newTestRunner(mock).Run(context.Background(), "asdfgh", Options{}, emit)

	require.NoError(t, err)
	assert.Nil(t, course)

	require.Len(t, *events, 2)
	assert.Equal(t, EventStatus, (*events)[0].Type)
	assert.Equal(t, EventError, (*events)[1].Type)
	assert.Equal(t, CodeInvalidPrompt, (*events)[1].Code)
	assert.Equal(t, "not a learnable subject", (*events)[1].Message)
}

func TestRunRejectsEmptyPromptLocally(t *testing.T) {
	mock := llm.NewMockProvider()

	emit, events := eventCollector()
	course, err := newTestRunner(mock).Run(context.Background(), "   ", Options{}, emit)

	require.NoError(t, err)
	assert.Nil(t, course)
	assert.Equal(t, 0, mock.CallCount())

	last := (*events)[len(*events)-1]
	assert.Equal(t, EventError, last.Type)
	assert.Equal(t, CodeInvalidPrompt, last.Code)
}

func TestRunValidationFailsOpen(t *testing.T) {
	// Every call fails: validation is assumed to pass, the raw prompt
	// becomes the title, and placeholder topics structure the course.
	mock := llm.NewMockProvider()

	emit, events := eventCollector()
	course, err := newTestRunner(mock).Run(context.Background(), "quantum computing", Options{SingleStep: true}, emit)

	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, "quantum computing", course.Title)

	require.Len(t, course.Topics, 5)
	assert.Equal(t, "Module 1: General Concept", course.Topics[0])
	assert.Equal(t, "Module 5: General Concept", course.Topics[4])

	// Single-step: one module generated, the rest stay pending.
	assert.Len(t, course.Modules, 1)
	assert.Equal(t, course.Topics[1:], course.PendingTopics)

	last := (*events)[len(*events)-1]
	assert.Equal(t, EventComplete, last.Type)
}

func TestRunSingleStepKeepsPendingTopics(t *testing.T) {
	responses := []llm.MockResponse{
		structuredResp(`{"valid": true}`),
		{Content: []byte("Go Basics")},
		structuredResp(`["Module 1: Syntax", "Module 2: Types", "Module 3: Funcs"]`),
	}
	responses = append(responses, moduleResponses()...)
	mock := llm.NewMockProvider(responses...)

	emit, events := eventCollector()
	course, err := newTestRunner(mock).Run(context.Background(), "teach me go", Options{SingleStep: true}, emit)

	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Len(t, course.Modules, 1)
	assert.Equal(t, []string{"Module 2: Types", "Module 3: Funcs"}, course.PendingTopics)
	assert.Equal(t, []string{"Module 1: Syntax", "Module 2: Types", "Module 3: Funcs"}, course.Topics)

	moduleEvents := 0
	for _, e := range *events {
		if e.Type == EventModule {
			moduleEvents++
		}
	}
	assert.Equal(t, 1, moduleEvents)
}

func TestRunRecoversPanicToInternalError(t *testing.T) {
	mock := llm.NewMockProvider(
		structuredResp(`{"valid": true}`),
		llm.MockResponse{Content: []byte("Go Basics")},
		structuredResp(`["Module 1: Syntax"]`),
	)
	// A nil assembler panics on the first module.
	runner := NewRunner(llm.NewClient(mock), nil)

	emit, events := eventCollector()
	course, err := runner.Run(context.Background(), "teach me go", Options{}, emit)

	require.Error(t, err)
	assert.Nil(t, course)

	last := (*events)[len(*events)-1]
	assert.Equal(t, EventError, last.Type)
	assert.Equal(t, CodeInternal, last.Code)
}

func TestRunStopsOnCanceledContext(t *testing.T) {
	mock := llm.NewMockProvider(
		structuredResp(`{"valid": true}`),
		llm.MockResponse{Content: []byte("Go Basics")},
		structuredResp(`["Module 1: Syntax"]`),
	)
	ctx, cancel := context.WithCancel(context.Background())

	emit, _ := eventCollector()
	runner := newTestRunner(mock)
	cancel()
	course, err := runner.Run(ctx, "teach me go", Options{}, emit)

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, course)
}

func TestNextModuleConsumesPendingHead(t *testing.T) {
	responses := moduleResponses()
	mock := llm.NewMockProvider(responses...)
	runner := newTestRunner(mock)

	course := &Course{
		Title:         "Go Basics",
		Topics:        []string{"Module 1: Syntax", "Module 2: Types"},
		PendingTopics: []string{"Module 2: Types"},
		Modules:       map[string]*Module{},
	}

	mod, ok := runner.NextModule(context.Background(), course)
	require.True(t, ok)
	assert.Equal(t, "Module 2: Types", mod.Title)
	assert.Empty(t, course.PendingTopics)
	assert.Same(t, mod, course.Modules["Module 2: Types"])

	_, ok = runner.NextModule(context.Background(), course)
	assert.False(t, ok)
}

func TestRunUsesRawPromptWhenTitleCleansToEmpty(t *testing.T) {
	mock := llm.NewMockProvider(
		structuredResp(`{"valid": true}`),
		llm.MockResponse{Content: []byte("Here is the title:")},
	)

	emit, _ := eventCollector()
	course, err := newTestRunner(mock).Run(context.Background(), "teach me go", Options{SingleStep: true}, emit)

	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, "teach me go", course.Title)
}
