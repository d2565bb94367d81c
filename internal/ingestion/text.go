package ingestion

import "strings"

// CleanText normalizes raw text content while preserving structure: line
// endings become LF, trailing whitespace is trimmed, runs of blank lines
// collapse to at most two, and bullet indentation survives.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := collapseBlankLines(strings.Join(cleaned, "\n"))
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// Keep bullet indentation; it is a format signal the scorer looks for.
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "•") {
		indent := len(line) - len(trimmed)
		return strings.Repeat(" ", indent) + collapseSpaces(trimmed)
	}

	return collapseSpaces(trimmed)
}

func collapseSpaces(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}

func collapseBlankLines(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}
