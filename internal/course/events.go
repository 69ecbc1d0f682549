package course

// EventType distinguishes the stream event kinds.
type EventType string

const (
	EventStatus   EventType = "status"
	EventMeta     EventType = "meta"
	EventModule   EventType = "module"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Stable machine-readable error codes carried on error events.
const (
	CodeInvalidPrompt = "INVALID_PROMPT"
	CodeInternal      = "INTERNAL"
)

// Event is one line of the generation stream. Only the fields relevant to
// the event type are set; the rest marshal away.
type Event struct {
	Type     EventType `json:"type"`
	Message  string    `json:"message,omitempty"`
	Code     string    `json:"code,omitempty"`
	Data     any       `json:"data,omitempty"`
	CourseID string    `json:"course_id,omitempty"`
}

// Meta is the payload of the meta event, emitted once planning is done.
type Meta struct {
	Title  string   `json:"title"`
	Topics []string `json:"topics"`
}

// Emitter receives stream events in order. Implementations must not
// retain the event past the call.
type Emitter func(Event)

func statusEvent(msg string) Event {
	return Event{Type: EventStatus, Message: msg}
}

func errorEvent(code, msg string) Event {
	return Event{Type: EventError, Code: code, Message: msg}
}
