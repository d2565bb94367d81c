package ingestion

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-analyzer/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the HTTP request fails.
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text could be pulled
	// out of the fetched page.
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// IngestJobURL fetches a job posting URL, extracts the main text, and
// returns it cleaned. When useBrowser is set and the plain fetch yields too
// little content, a headless browser render is tried before giving up.
func IngestJobURL(ctx context.Context, urlStr string, useBrowser, verbose bool) (string, error) {
	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[INGEST] Fetched %s: %d bytes", urlStr, len(result.HTML))
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.JobPostingSelectors())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if fetch.ShouldUseBrowser(text) && useBrowser {
		if verbose {
			log.Printf("[INGEST] Content too short (%d chars), trying browser render", len(text))
		}
		html, berr := fetch.WithBrowser(ctx, urlStr, 60*time.Second, verbose)
		if berr == nil {
			if rendered, rerr := fetch.ExtractMainText(html, fetch.JobPostingSelectors()); rerr == nil && len(rendered) > len(text) {
				text = rendered
			}
		} else if verbose {
			log.Printf("[INGEST] Browser render failed: %v", berr)
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", ErrContentExtractionFailed
	}
	return cleaned, nil
}
