package salvage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFencedEqualsBare(t *testing.T) {
	bare, ok := Parse(`{"title": "Go Basics", "count": 3}`)
	require.True(t, ok)

	tests := []string{
		"```json\n{\"title\": \"Go Basics\", \"count\": 3}\n```",
		"```\n{\"title\": \"Go Basics\", \"count\": 3}\n```",
		"  ```json\n{\"title\": \"Go Basics\", \"count\": 3}\n```  ",
	}
	for _, in := range tests {
		fenced, ok := Parse(in)
		require.True(t, ok, "input: %q", in)
		assert.Equal(t, bare, fenced)
	}
}

func TestParseValidJSONUnaltered(t *testing.T) {
	// A valid escape in well-formed JSON must survive untouched: the
	// backslash repair only runs after every other step has failed.
	v, ok := Parse(`{"pattern": "a\\d+b", "tab": "x\ty"}`)
	require.True(t, ok)

	obj := v.(map[string]any)
	assert.Equal(t, `a\d+b`, obj["pattern"])
}

func TestParseObjectSurroundedByProse(t *testing.T) {
	v, ok := Parse("Here is the result you asked for:\n{\"valid\": true}\nLet me know if you need more.")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"valid": true}, v)
}

func TestParseArraySurroundedByProse(t *testing.T) {
	v, ok := Parse("The topics are:\n[\"one\", \"two\"]\nEnjoy!")
	require.True(t, ok)
	assert.Equal(t, []any{"one", "two"}, v)
}

func TestParseRecoversRawControlChars(t *testing.T) {
	// A literal newline inside a string value is invalid JSON but common
	// in generated markdown bodies.
	v, ok := Parse("{\"text\": \"line one\nline two\"}")
	require.True(t, ok)

	obj := v.(map[string]any)
	assert.Equal(t, "line one\nline two", obj["text"])
}

func TestParseRepairsInvalidEscapes(t *testing.T) {
	v, ok := Parse(`{"regex": "grep \d+ lines"}`)
	require.True(t, ok)

	obj := v.(map[string]any)
	assert.Equal(t, `grep \d+ lines`, obj["regex"])
}

func TestParseFencedProseAndBadEscapes(t *testing.T) {
	in := "```json\nSure:\n{\"cmd\": \"C:\\Users\\demo\",\n\"note\": \"multi\nline\"}\n```"
	v, ok := Parse(in)
	require.True(t, ok)

	obj := v.(map[string]any)
	assert.Equal(t, `C:\Users\demo`, obj["cmd"])
	assert.Equal(t, "multi\nline", obj["note"])
}

func TestParseFailsOnHopelessInput(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"no json here at all",
		"{not even close]",
		"``````",
	}
	for _, in := range tests {
		_, ok := Parse(in)
		assert.False(t, ok, "input: %q", in)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"{}", "{}"},
		{"```json\n{}", "{}"},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripFences(tt.in), "input: %q", tt.in)
	}
}

func TestRepairBackslashes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a\d`, `a\\d`},
		{`a\n`, `a\n`},
		{`a\\d`, `a\\d`},
		{`a\"b`, `a\"b`},
		{`trailing\`, `trailing\\`},
		{`no escapes`, `no escapes`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, repairBackslashes(tt.in), "input: %q", tt.in)
	}
}

func TestEscapeControlCharsOnlyInsideStrings(t *testing.T) {
	// Formatting whitespace between tokens is legal JSON and stays as-is.
	in := "{\n  \"a\": \"x\ny\"\n}"
	out := escapeControlChars(in)
	assert.Equal(t, "{\n  \"a\": \"x\\ny\"\n}", out)
}
