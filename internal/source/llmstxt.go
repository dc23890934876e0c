package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/repotutor/repotutor-backend/internal/logger"
)

// LlmsTxtFetcher retrieves llms.txt / llms-full.txt documents. When the
// given URL does not name the file directly, the well-known paths are
// tried in order, one plain GET each.
type LlmsTxtFetcher struct {
	log        *logger.Logger
	httpClient *http.Client
	extractor  XMLExtractor
}

func NewLlmsTxtFetcher(log *logger.Logger, extractor XMLExtractor) *LlmsTxtFetcher {
	return &LlmsTxtFetcher{
		log:        log.With("service", "LlmsTxtFetcher"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		extractor:  extractor,
	}
}

func (lf *LlmsTxtFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	targetURL := strings.TrimSpace(rawURL)
	if !strings.HasPrefix(targetURL, "http://") && !strings.HasPrefix(targetURL, "https://") {
		targetURL = "https://" + targetURL
	}

	if strings.HasSuffix(targetURL, "llms.txt") || strings.HasSuffix(targetURL, "llms-full.txt") {
		content, err := lf.get(ctx, targetURL)
		if err != nil {
			return "", &FetchError{URL: targetURL, Err: err}
		}
		return lf.render(targetURL, content, true), nil
	}

	base := strings.TrimRight(targetURL, "/")
	candidates := []string{base + "/llms.txt", base + "/llms-full.txt"}
	var lastErr error
	for _, candidate := range candidates {
		content, err := lf.get(ctx, candidate)
		if err != nil {
			lf.log.Debug("llms.txt candidate failed", "url", candidate, "error", err)
			lastErr = err
			continue
		}
		return lf.render(candidate, content, false), nil
	}
	if lastErr == nil {
		lastErr = errors.New("no candidate paths")
	}
	return "", &FetchError{URL: rawURL, Err: fmt.Errorf("could not find llms.txt or llms-full.txt: %w", lastErr)}
}

// render labels the body. Directly supplied URLs get a plain Content
// label; well-known fallback paths are labeled by which file answered.
func (lf *LlmsTxtFetcher) render(fetchedURL, content string, direct bool) string {
	if LooksLikeXML(content) {
		fileType := "llms.txt"
		if strings.HasSuffix(fetchedURL, "llms-full.txt") {
			fileType = "llms-full.txt"
		}
		extracted := lf.extractor.Extract(content)
		return fmt.Sprintf("URL: %s\n\nXML Content Type: %s (XML format)\n\nExtracted Content:\n%s", fetchedURL, fileType, extracted)
	}
	label := "LLMS.TXT Content:"
	if strings.HasSuffix(fetchedURL, "llms-full.txt") {
		label = "LLMS-FULL.TXT Content:"
	}
	if direct {
		label = "Content:"
	}
	return fmt.Sprintf("URL: %s\n\n%s\n%s", fetchedURL, label, content)
}

func (lf *LlmsTxtFetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := lf.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
