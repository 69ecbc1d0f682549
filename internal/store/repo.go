package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]*LLMEvent, error)
}

// CourseRecord is the persisted form of a generated course. Modules is
// the JSON encoding of the domain's topic-to-module map; the store does
// not interpret it.
type CourseRecord struct {
	ID            string
	Prompt        string
	Title         string
	Topics        []string
	PendingTopics []string
	Modules       json.RawMessage
	CreatedAt     time.Time
}

// CourseRepo persists generated courses.
type CourseRepo interface {
	// Save upserts a course record keyed by its ID.
	Save(ctx context.Context, rec *CourseRecord) error

	// Get returns the course with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*CourseRecord, error)

	// List returns all courses, newest first.
	List(ctx context.Context) ([]*CourseRecord, error)
}
