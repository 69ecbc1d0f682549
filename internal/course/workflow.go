package course

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/anand-106/coursegen/internal/llm"
)

// placeholderTopics structures a course when topic expansion fails
// entirely. Five generic modules keep the pipeline moving.
func placeholderTopics() []string {
	topics := make([]string, 5)
	for i := range topics {
		topics[i] = fmt.Sprintf("Module %d: General Concept", i+1)
	}
	return topics
}

// Options controls a generation run.
type Options struct {
	// SingleStep stops after the first module, leaving the rest of the
	// plan in PendingTopics for later NextModule calls.
	SingleStep bool

	// CourseID, when set, is carried on the complete event so stream
	// consumers can address the stored course.
	CourseID string
}

// Runner drives a prompt through the generation pipeline: validate,
// enhance to a title, expand into topics, then generate modules until the
// pending list drains. Each step emits stream events as it lands.
type Runner struct {
	client    *llm.Client
	assembler *Assembler
}

func NewRunner(client *llm.Client, assembler *Assembler) *Runner {
	return &Runner{client: client, assembler: assembler}
}

// Run executes the pipeline for one prompt. A rejected prompt emits an
// error event with code INVALID_PROMPT and returns a nil course with a
// nil error; rejection is an outcome, not a failure. Any panic in the
// pipeline is recovered into an INTERNAL error event.
func (r *Runner) Run(ctx context.Context, prompt string, opts Options, emit Emitter) (c *Course, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Any("panic", rec).Msg("generation pipeline panicked")
			emit(errorEvent(CodeInternal, "internal error during generation"))
			c, err = nil, fmt.Errorf("generation panicked: %v", rec)
		}
	}()

	emit(statusEvent("Validating prompt..."))
	s := r.validate(ctx, State{RawPrompt: prompt})
	if !s.IsValid {
		emit(errorEvent(CodeInvalidPrompt, s.ValidationError))
		return nil, nil
	}

	emit(statusEvent("Prompt validated. Designing your course..."))
	s = r.enhance(ctx, s)
	emit(statusEvent("Planning curriculum for: " + s.Title))

	s = r.expandTopics(ctx, s)
	emit(Event{Type: EventMeta, Data: Meta{Title: s.Title, Topics: s.Topics}})

	for len(s.Pending) > 0 {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		var mod *Module
		s, mod = r.generateNext(ctx, s)
		emit(Event{Type: EventModule, Data: mod})
		if opts.SingleStep {
			break
		}
	}

	course := s.finalize()
	emit(Event{Type: EventComplete, Data: course, CourseID: opts.CourseID})
	return course, nil
}

// NextModule generates one more module for an existing course, consuming
// the head of its pending topics. It reports false when nothing is
// pending.
func (r *Runner) NextModule(ctx context.Context, course *Course) (*Module, bool) {
	if len(course.PendingTopics) == 0 {
		return nil, false
	}
	topic := course.PendingTopics[0]
	course.PendingTopics = course.PendingTopics[1:]

	mod := r.assembler.Assemble(ctx, course.Title, topic)
	if course.Modules == nil {
		course.Modules = map[string]*Module{}
	}
	course.Modules[topic] = mod
	return mod, true
}

type validationVerdict struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// validate asks the model whether the prompt names a learnable subject.
// Validation fails open: when the verdict itself cannot be obtained the
// prompt is assumed valid, so a provider outage never blocks generation.
func (r *Runner) validate(ctx context.Context, s State) State {
	empty := strings.TrimSpace(s.RawPrompt) == ""
	if empty {
		s.IsValid = false
		s.ValidationError = "prompt is empty"
		return s
	}

	res, err := r.client.Invoke(ctx, llm.InvokeSpec{
		System:     validateSystem,
		Human:      validateHuman,
		Vars:       map[string]string{"prompt": s.RawPrompt},
		Structured: true,
		Schema:     validationSchema,
		MaxTokens:  256,
		Purpose:    "prompt-validation",
	})
	if err != nil || !res.Available() {
		s.IsValid = true
		return s
	}

	var verdict validationVerdict
	if jerr := json.Unmarshal(res.Raw, &verdict); jerr != nil {
		s.IsValid = true
		return s
	}

	s.IsValid = verdict.Valid
	if !verdict.Valid {
		s.ValidationError = strings.TrimSpace(verdict.Reason)
		if s.ValidationError == "" {
			s.ValidationError = "prompt does not describe a learnable subject"
		}
	}
	return s
}

// enhance turns the raw prompt into a clean course title. On failure the
// raw prompt itself serves as the title.
func (r *Runner) enhance(ctx context.Context, s State) State {
	res, err := r.client.Invoke(ctx, llm.InvokeSpec{
		System:    enhanceSystem,
		Human:     enhanceHuman,
		Vars:      map[string]string{"prompt": s.RawPrompt},
		MaxTokens: 128,
		Purpose:   "title-enhancement",
	})
	if err != nil || !res.Available() {
		s.Title = strings.TrimSpace(s.RawPrompt)
		return s
	}

	title := CleanTitle(res.Text)
	if title == "" {
		title = strings.TrimSpace(s.RawPrompt)
	}
	s.Title = title
	return s
}

// expandTopics plans the ordered module sequence. The pending list starts
// as a copy of the plan so finalization can still order by Topics after
// Pending drains.
func (r *Runner) expandTopics(ctx context.Context, s State) State {
	topics := r.requestTopics(ctx, s.Title)
	if len(topics) == 0 {
		log.Warn().Str("title", s.Title).Msg("topic expansion failed, using placeholder modules")
		topics = placeholderTopics()
	}
	s.Topics = topics
	s.Pending = append([]string(nil), topics...)
	s.Modules = map[string]*Module{}
	return s
}

func (r *Runner) requestTopics(ctx context.Context, title string) []string {
	res, err := r.client.Invoke(ctx, llm.InvokeSpec{
		System:     topicsSystem,
		Human:      topicsHuman,
		Vars:       map[string]string{"title": title},
		Structured: true,
		Schema:     topicListSchema,
		MaxTokens:  1024,
		Purpose:    "topic-expansion",
	})
	if err != nil || !res.Available() {
		return nil
	}

	var raw []any
	if jerr := json.Unmarshal(res.Raw, &raw); jerr != nil {
		return nil
	}
	topics := make([]string, 0, len(raw))
	for _, v := range raw {
		t, ok := v.(string)
		if !ok {
			continue
		}
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

// generateNext consumes the head of the pending list and assembles its
// module.
func (r *Runner) generateNext(ctx context.Context, s State) (State, *Module) {
	topic := s.Pending[0]
	s.Pending = s.Pending[1:]

	mod := r.assembler.Assemble(ctx, s.Title, topic)
	s.Modules[topic] = mod
	return s, mod
}
