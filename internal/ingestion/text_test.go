package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "crlf normalized",
			input: "line one\r\nline two\rline three",
			want:  "line one\nline two\nline three",
		},
		{
			name:  "trailing whitespace trimmed",
			input: "line one   \nline two\t\t",
			want:  "line one\nline two",
		},
		{
			name:  "internal spaces collapsed",
			input: "too    many     spaces",
			want:  "too many spaces",
		},
		{
			name:  "blank runs collapse to two",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "bullet indentation preserved",
			input: "  - first point\n  - second   point",
			want:  "  - first point\n  - second point",
		},
		{
			name:  "unicode bullet preserved",
			input: "    • a bullet",
			want:  "    • a bullet",
		},
		{
			name:  "surrounding blank lines stripped",
			input: "\n\n\ncontent\n\n\n",
			want:  "content",
		},
		{
			name:  "non-bullet indentation dropped",
			input: "    plain indented line",
			want:  "plain indented line",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}
