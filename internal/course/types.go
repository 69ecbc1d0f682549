// Package course implements the generation pipeline: a state machine that
// turns a free-text prompt into an ordered list of module topics and
// iteratively fills each one with explanations, flashcards, a quiz, a
// diagram, and video bindings, streaming progress to the caller.
package course

import "github.com/anand-106/coursegen/internal/videos"

// Flashcard is one front/back study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// QuizQuestion is one validated multiple-choice question. Options always
// has exactly 4 entries and AnswerIndex is in [0, 3].
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
}

// Module is the generated content for one topic. Videos is index-aligned
// with Subtopics; entries may be nil when no video was bound.
type Module struct {
	Title        string             `json:"module_title"`
	Subtopics    []string           `json:"subtopics"`
	Explanations map[string]string  `json:"explanations"`
	Videos       []*videos.VideoRef `json:"videos"`
	Mermaid      string             `json:"mermaid"`
	Flashcards   []Flashcard        `json:"flashcards"`
	Quiz         []QuizQuestion     `json:"quiz"`
}

// Course is the finalized output record. PendingTopics is retained after
// finalization so a collaborator can request one more module later without
// re-running topic expansion.
type Course struct {
	Title         string             `json:"title"`
	Topics        []string           `json:"topics"`
	PendingTopics []string           `json:"pending_topics"`
	Modules       map[string]*Module `json:"modules"`
}

// ModulesInOrder returns the generated modules ordered by Topics, not by
// generation order.
func (c *Course) ModulesInOrder() []*Module {
	out := make([]*Module, 0, len(c.Modules))
	for _, topic := range c.Topics {
		if m, ok := c.Modules[topic]; ok {
			out = append(out, m)
		}
	}
	return out
}

// State is the orchestrator's working record for one in-flight run. Nodes
// receive a State and return an updated copy; the Runner owns the only
// live value, so no locking is needed within a run.
type State struct {
	RawPrompt       string
	Title           string
	Topics          []string
	Pending         []string
	Modules         map[string]*Module
	IsValid         bool
	ValidationError string
}

// finalize reconstructs the ordered course record from the run state.
func (s State) finalize() *Course {
	return &Course{
		Title:         s.Title,
		Topics:        s.Topics,
		PendingTopics: s.Pending,
		Modules:       s.Modules,
	}
}
