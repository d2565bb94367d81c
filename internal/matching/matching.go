// Package matching implements case-insensitive, word-boundary-aware keyword
// matching against free text. All functions are pure.
package matching

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Found returns the keywords present in text as whole words or whole
// phrases. Output preserves the input keyword order and is deduplicated
// (case-insensitively).
func Found(text string, keywords []string) []string {
	return partition(text, keywords, true)
}

// Missing returns the keywords not present in text. Together with Found it
// partitions the input list: every keyword lands in exactly one of the two.
func Missing(text string, keywords []string) []string {
	return partition(text, keywords, false)
}

func partition(text string, keywords []string, wantFound bool) []string {
	lower := strings.ToLower(text)
	out := []string{}
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		key := strings.ToLower(strings.TrimSpace(kw))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if containsWord(lower, key) == wantFound {
			out = append(out, kw)
		}
	}
	return out
}

// containsWord reports whether keyword occurs in textLower delimited by
// word boundaries. Both arguments must already be lower-cased. A match
// inside a longer token ("qa" inside "qanything") does not count.
func containsWord(textLower, keyword string) bool {
	for start := 0; ; {
		idx := strings.Index(textLower[start:], keyword)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(keyword)
		if boundaryBefore(textLower, idx) && boundaryAfter(textLower, end) {
			return true
		}
		start = idx + 1
		if start >= len(textLower) {
			return false
		}
	}
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:idx])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, end int) bool {
	if end >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[end:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
