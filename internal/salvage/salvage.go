// Package salvage recovers JSON values from noisy model output. Models
// wrap JSON in markdown fences, surround it with prose, leave raw control
// characters inside string literals, and emit invalid escape sequences;
// each recovery step targets one of those failure shapes.
package salvage

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
)

// Parse extracts a JSON value from raw model output. Steps run least
// invasive first and escalate only on failure, so already-valid JSON is
// never altered. Returns false when no step yields a value.
func Parse(text string) (any, bool) {
	cleaned := stripFences(strings.TrimSpace(text))
	if cleaned == "" {
		return nil, false
	}

	if v, ok := salvageSteps(cleaned); ok {
		return v, true
	}

	// Last resort: repair invalid escape sequences, then retry. Applied
	// only after everything else failed so valid escapes are never
	// touched in well-formed output.
	if repaired := repairBackslashes(cleaned); repaired != cleaned {
		if v, ok := salvageSteps(repaired); ok {
			return v, true
		}
	}

	log.Warn().Str("content", head(cleaned, 200)).Msg("failed to parse model output as JSON")
	return nil, false
}

// salvageSteps runs the non-destructive recovery ladder: direct parse,
// lenient parse, then the outermost object or array substring.
func salvageSteps(s string) (any, bool) {
	if v, ok := tryParse(s); ok {
		return v, true
	}
	if sub, ok := enclosed(s, '{', '}'); ok {
		if v, ok := tryParse(sub); ok {
			return v, true
		}
	}
	if sub, ok := enclosed(s, '[', ']'); ok {
		if v, ok := tryParse(sub); ok {
			return v, true
		}
	}
	return nil, false
}

// tryParse attempts a strict decode, then a lenient one that escapes raw
// control characters inside string literals.
func tryParse(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v, true
	}
	lenient := escapeControlChars(s)
	if lenient != s {
		if err := json.Unmarshal([]byte(lenient), &v); err == nil {
			return v, true
		}
	}
	return nil, false
}

// stripFences removes a surrounding markdown code fence.
func stripFences(s string) string {
	if strings.HasPrefix(s, "```json") {
		s = s[7:]
	} else if strings.HasPrefix(s, "```") {
		s = s[3:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// enclosed returns the substring from the first open delimiter to the
// last close delimiter.
func enclosed(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// escapeControlChars escapes raw control characters that appear inside
// string literals. Literal newlines in generated markdown bodies are the
// common case; the JSON grammar forbids them unescaped.
func escapeControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			case c < 0x20:
				switch c {
				case '\n':
					b.WriteString(`\n`)
				case '\r':
					b.WriteString(`\r`)
				case '\t':
					b.WriteString(`\t`)
				default:
					const hex = "0123456789abcdef"
					b.WriteString(`\u00`)
					b.WriteByte(hex[c>>4])
					b.WriteByte(hex[c&0xf])
				}
				continue
			}
		} else if c == '"' {
			inString = true
		}
		b.WriteByte(c)
	}
	return b.String()
}

// repairBackslashes doubles backslashes that do not start a valid JSON
// escape sequence, e.g. the \d of a regex pasted into a string value.
func repairBackslashes(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(s) && validEscape(s[i+1]) {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteString(`\\`)
	}
	return b.String()
}

func validEscape(c byte) bool {
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
		return true
	}
	return false
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
