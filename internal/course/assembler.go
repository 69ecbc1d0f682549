package course

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/anand-106/coursegen/internal/llm"
	"github.com/anand-106/coursegen/internal/videos"
)

// VideoFinder locates the best video for a search query. BestVideo never
// fails; the implementation falls back to a deterministic placeholder
// when discovery is unavailable.
type VideoFinder interface {
	BestVideo(ctx context.Context, query string) videos.VideoRef
}

const (
	videoWorkers = 3
	quizLimit    = 6
)

// fallbackSubtopics structures a module when subtopic planning fails.
var fallbackSubtopics = []string{
	"Overview",
	"Core Concepts",
	"Practical Applications",
	"Summary and Review",
}

var videoMarkerPattern = regexp.MustCompile(`\[\[VIDEO_([0-9]+)\]\]`)

// Assembler builds the full content package for one module topic: plan
// subtopics, bind one video per subtopic, then fill explanations,
// flashcards, quiz, and diagram in a single combined model call.
type Assembler struct {
	client *llm.Client
	finder VideoFinder
}

// NewAssembler creates an Assembler. A nil finder disables video binding;
// modules are still generated, with nil video entries.
func NewAssembler(client *llm.Client, finder VideoFinder) *Assembler {
	return &Assembler{client: client, finder: finder}
}

// Assemble builds the module for one topic. It never fails: every layer
// degrades to a deterministic fallback, so in the worst case the module
// carries subtopics, videos, and empty content containers.
func (a *Assembler) Assemble(ctx context.Context, courseTitle, topic string) *Module {
	subject := CleanTopicName(topic)

	subtopics := a.planSubtopics(ctx, topic, courseTitle)
	vids := a.findVideos(ctx, subject, subtopics)

	mod := &Module{
		Title:        topic,
		Subtopics:    subtopics,
		Videos:       vids,
		Explanations: map[string]string{},
		Flashcards:   []Flashcard{},
		Quiz:         []QuizQuestion{},
	}

	pkg, ok := a.generatePackage(ctx, subject, subtopics, vids)
	if !ok {
		log.Warn().Str("topic", topic).Msg("module package generation failed, returning empty content")
		return mod
	}

	mod.Explanations = applyVideoMarkers(pkg.Explanations, subtopics, vids)
	if pkg.Flashcards != nil {
		mod.Flashcards = pkg.Flashcards
	}
	mod.Quiz = FilterQuiz(pkg.Quiz, quizLimit)
	mod.Mermaid = cleanMermaid(pkg.Mermaid)
	return mod
}

func (a *Assembler) planSubtopics(ctx context.Context, topic, courseTitle string) []string {
	res, err := a.client.Invoke(ctx, llm.InvokeSpec{
		System:     subtopicsSystem,
		Human:      subtopicsHuman,
		Vars:       map[string]string{"topic": topic, "title": courseTitle},
		Structured: true,
		Schema:     subtopicListSchema,
		MaxTokens:  1024,
		Purpose:    "subtopic-planning",
	})
	if err != nil || !res.Available() {
		return append([]string(nil), fallbackSubtopics...)
	}

	var raw []any
	if jerr := json.Unmarshal(res.Raw, &raw); jerr != nil {
		return append([]string(nil), fallbackSubtopics...)
	}
	subtopics := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			subtopics = append(subtopics, s)
		}
	}
	if len(subtopics) == 0 {
		return append([]string(nil), fallbackSubtopics...)
	}
	return subtopics
}

// findVideos binds one video per subtopic. Lookups run concurrently with
// a small worker cap; the result slice is index-aligned with subtopics.
func (a *Assembler) findVideos(ctx context.Context, subject string, subtopics []string) []*videos.VideoRef {
	vids := make([]*videos.VideoRef, len(subtopics))
	if a.finder == nil {
		return vids
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(videoWorkers)
	for i, sub := range subtopics {
		g.Go(func() error {
			ref := a.finder.BestVideo(gctx, subject+" "+sub)
			vids[i] = &ref
			return nil
		})
	}
	g.Wait() // workers never return errors
	return vids
}

type modulePackage struct {
	Explanations map[string]string `json:"explanations"`
	Flashcards   []Flashcard       `json:"flashcards"`
	Quiz         []any             `json:"quiz"`
	Mermaid      string            `json:"mermaid"`
}

func (a *Assembler) generatePackage(ctx context.Context, subject string, subtopics []string, vids []*videos.VideoRef) (*modulePackage, bool) {
	res, err := a.client.Invoke(ctx, llm.InvokeSpec{
		System:     packageSystem,
		Human:      packageHuman,
		Vars: map[string]string{
			"topic":         subject,
			"subtopics":     "- " + strings.Join(subtopics, "\n- "),
			"video_context": videoContext(vids),
		},
		Structured: true,
		Schema:     modulePackageSchema,
		MaxTokens:  8192,
		Purpose:    "module-package",
	})
	if err != nil || !res.Available() {
		return nil, false
	}

	var pkg modulePackage
	if jerr := json.Unmarshal(res.Raw, &pkg); jerr != nil {
		log.Warn().Err(jerr).Msg("module package did not decode")
		return nil, false
	}
	return &pkg, true
}

// videoContext renders the bound videos for the package prompt, one line
// per subtopic index.
func videoContext(vids []*videos.VideoRef) string {
	if len(vids) == 0 {
		return "none"
	}
	var b strings.Builder
	for i, v := range vids {
		if i > 0 {
			b.WriteByte('\n')
		}
		if v == nil {
			fmt.Fprintf(&b, "%d: no video", i)
			continue
		}
		fmt.Fprintf(&b, "%d: %s (%s, %s)", i, v.Title, v.Channel, v.Duration)
	}
	return b.String()
}

// applyVideoMarkers reconciles [[VIDEO_i]] markers with the videos that
// were actually bound: a subtopic with a video gets its marker appended
// when the model forgot it, and markers pointing at missing videos are
// stripped.
func applyVideoMarkers(explanations map[string]string, subtopics []string, vids []*videos.VideoRef) map[string]string {
	if explanations == nil {
		return map[string]string{}
	}
	for i, sub := range subtopics {
		text, ok := explanations[sub]
		if !ok {
			continue
		}
		marker := fmt.Sprintf("[[VIDEO_%d]]", i)
		if i < len(vids) && vids[i] != nil && !strings.Contains(text, marker) {
			explanations[sub] = strings.TrimRight(text, "\n") + "\n\n" + marker
		}
	}
	// The model may invent explanation keys beyond the given subtopics;
	// the dangling-marker sweep covers every entry.
	for key, text := range explanations {
		explanations[key] = strings.TrimSpace(stripDanglingMarkers(text, vids))
	}
	return explanations
}

// stripDanglingMarkers removes markers whose index has no bound video.
func stripDanglingMarkers(text string, vids []*videos.VideoRef) string {
	return videoMarkerPattern.ReplaceAllStringFunc(text, func(m string) string {
		idx, err := strconv.Atoi(videoMarkerPattern.FindStringSubmatch(m)[1])
		if err == nil && idx < len(vids) && vids[idx] != nil {
			return m
		}
		return ""
	})
}

// cleanMermaid strips the code fence models wrap diagram source in.
func cleanMermaid(src string) string {
	s := strings.TrimSpace(src)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```mermaid")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
