package course

import (
	"regexp"
	"strings"
)

var (
	titlePrefixPattern = regexp.MustCompile(`(?i)^(course\s+)?title\s*:\s*`)
	topicPrefixPattern = regexp.MustCompile(`(?i)^module\s+([0-9]+|[a-z]+)\s*:\s*`)
)

// asideLeads are openings models use before the actual title. A line
// starting with one of these and containing a colon is treated as
// preamble, with the title following the colon or on the next line.
var asideLeads = []string{"here", "sure", "certainly", "okay", "of course", "absolutely"}

// CleanTitle normalizes raw model output into a plain course title. Models
// asked for "just the title" still wrap it in preamble, label it, or add
// markdown emphasis often enough that every caller needs this.
func CleanTitle(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	lines := strings.Split(s, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if tail, ok := splitAside(line); ok {
			if tail != "" {
				kept = append(kept, tail)
			}
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) == 0 {
		return ""
	}
	title := kept[0]

	title = titlePrefixPattern.ReplaceAllString(title, "")
	title = stripEmphasis(title)
	title = strings.Trim(title, `"'`)
	return strings.TrimSpace(title)
}

// splitAside reports whether the line is conversational preamble. When the
// preamble carries the title after a colon ("Sure, here it is: X"), the
// remainder is returned; a bare lead-in line ("Here is your title:")
// returns an empty remainder.
func splitAside(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, lead := range asideLeads {
		if strings.HasPrefix(lower, lead) && strings.Contains(line, ":") {
			_, tail, _ := strings.Cut(line, ":")
			return strings.TrimSpace(tail), true
		}
	}
	return "", false
}

func stripEmphasis(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '*', '_', '`', '#':
			return -1
		}
		return r
	}, s)
}

// CleanTopicName strips a leading "Module N:" label from a topic so video
// searches and prompts use the subject itself. A topic that is nothing but
// a label is returned unchanged.
func CleanTopicName(topic string) string {
	topic = strings.TrimSpace(topic)
	cleaned := strings.TrimSpace(topicPrefixPattern.ReplaceAllString(topic, ""))
	if cleaned == "" {
		return topic
	}
	return cleaned
}
