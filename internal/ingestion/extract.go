// Package ingestion turns resume documents and job-posting URLs into clean
// plain text for the analysis engine. The engine itself never sees document
// formats; only this package does.
package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// TextExtractionError is raised when a document cannot be converted to text.
type TextExtractionError struct {
	Path    string
	Message string
	Cause   error
}

func (e *TextExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text extraction failed for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("text extraction failed for %s: %s", e.Path, e.Message)
}

func (e *TextExtractionError) Unwrap() error {
	return e.Cause
}

// xmlTagPattern strips markup left behind by the DOCX content accessor.
var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// ExtractText reads a resume file and returns cleaned plain text. The format
// is chosen by file extension: .pdf, .docx, or anything else read as plain
// text.
func ExtractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDOCX(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", &TextExtractionError{Path: path, Message: "failed to read file", Cause: err}
		}
		return CleanText(string(data)), nil
	}
}

// ExtractTextFromReader extracts plain text from an in-memory document of
// the named format ("pdf", "docx", or "txt").
func ExtractTextFromReader(r io.Reader, format string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", &TextExtractionError{Path: "(stream)", Message: "failed to read stream", Cause: err}
	}
	switch strings.ToLower(format) {
	case "pdf":
		return extractPDFBytes("(stream)", data)
	case "docx":
		return extractDOCXBytes("(stream)", data)
	default:
		return CleanText(string(data)), nil
	}
}

func extractPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &TextExtractionError{Path: path, Message: "failed to read file", Cause: err}
	}
	return extractPDFBytes(path, data)
}

func extractPDFBytes(path string, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &TextExtractionError{Path: path, Message: "failed to parse PDF", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	text := CleanText(sb.String())
	if text == "" {
		return "", &TextExtractionError{Path: path, Message: "PDF contains no extractable text"}
	}
	return text, nil
}

func extractDOCX(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &TextExtractionError{Path: path, Message: "failed to read file", Cause: err}
	}
	return extractDOCXBytes(path, data)
}

func extractDOCXBytes(path string, data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &TextExtractionError{Path: path, Message: "failed to parse DOCX", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	// The content accessor returns raw document XML; strip the markup and
	// keep paragraph breaks.
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")

	text := CleanText(content)
	if text == "" {
		return "", &TextExtractionError{Path: path, Message: "DOCX contains no extractable text"}
	}
	return text, nil
}
