package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain title", "Python Fundamentals", "Python Fundamentals"},
		{"label prefix", "Title: Python Fundamentals", "Python Fundamentals"},
		{"course label prefix", "Course Title: Python Fundamentals", "Python Fundamentals"},
		{"markdown emphasis", "**Python Fundamentals**", "Python Fundamentals"},
		{"surrounding quotes", `"Python Fundamentals"`, "Python Fundamentals"},
		{"aside on its own line", "Here is a concise title:\nPython Fundamentals", "Python Fundamentals"},
		{"aside and title on one line", "Sure, here is your course title: Python Fundamentals", "Python Fundamentals"},
		{"aside then labeled title", "Sure! Here is a title:\nTitle: *Python Fundamentals*", "Python Fundamentals"},
		{"surrounding whitespace", "  Python Fundamentals \n", "Python Fundamentals"},
		{"empty input", "   ", ""},
		{"only an aside", "Here is the title:", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.raw))
		})
	}
}

func TestCleanTitleAsideRequiresColon(t *testing.T) {
	// A title that happens to start with an aside word but has no colon is
	// kept as-is.
	assert.Equal(t, "Heredity and Genetics", CleanTitle("Heredity and Genetics"))
}

func TestCleanTopicName(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"Module 1: Pointers and Memory", "Pointers and Memory"},
		{"module 12: Goroutines", "Goroutines"},
		{"Module X: Advanced Patterns", "Advanced Patterns"},
		{"Pointers and Memory", "Pointers and Memory"},
		{"Module 3:", "Module 3:"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanTopicName(tt.topic))
	}
}
