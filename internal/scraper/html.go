package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/rohmanhakim/liondine-api/internal/menu"
	"github.com/rohmanhakim/liondine-api/pkg/failure"
	"github.com/rohmanhakim/liondine-api/pkg/hashutil"
)

/*
Responsibilities

- Perform the HTTP request for a meal period's menu page
- Apply headers and timeouts
- Classify responses
- Strip page chrome and extract the menu content as Markdown

Scrape Semantics

- Only successful HTML responses are processed
- Non-HTML content is discarded
- Script, style, and navigation elements never reach the extracted text

The scraper never interprets menu content; it only returns text and a
fingerprint. Understanding the text is the structurer's job.
*/

// removedSelectors are the elements stripped before extraction. The menu
// page carries its data in plain markup; everything else is chrome.
const removedSelectors = "script, style, noscript, nav, header, footer"

var blankRuns = regexp.MustCompile(`\n{3,}`)

type HTMLScraper struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewHTMLScraper(baseURL string, userAgent string, timeout time.Duration, logger *zap.Logger) *HTMLScraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTMLScraper{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (h *HTMLScraper) Scrape(ctx context.Context, meal menu.MealType) (ScrapeResult, failure.ClassifiedError) {
	startTime := time.Now()
	pageURL := h.baseURL + "/" + meal.String()

	body, fetchErr := h.performFetch(ctx, pageURL)
	if fetchErr != nil {
		h.logger.Warn("menu page fetch failed",
			zap.String("url", pageURL),
			zap.String("cause", string(fetchErr.Cause)),
			zap.Error(fetchErr))
		return ScrapeResult{}, fetchErr
	}

	text, extractErr := extractMenuText(body)
	if extractErr != nil {
		h.logger.Warn("menu text extraction failed",
			zap.String("url", pageURL),
			zap.String("cause", string(extractErr.Cause)),
			zap.Error(extractErr))
		return ScrapeResult{}, extractErr
	}

	result := ScrapeResult{
		meal:        meal,
		text:        text,
		contentHash: hashutil.Fingerprint([]byte(text)),
	}

	h.logger.Info("menu page scraped",
		zap.String("url", pageURL),
		zap.Int("textLength", len(text)),
		zap.String("contentHash", result.contentHash),
		zap.Duration("duration", time.Since(startTime)))

	return result, nil
}

func (h *HTMLScraper) performFetch(ctx context.Context, pageURL string) ([]byte, *ScrapeError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &ScrapeError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseNetworkFailure,
		}
	}

	for key, value := range requestHeaders(h.userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			return nil, &ScrapeError{
				Message:   fmt.Sprintf("request timed out: %v", err),
				Retryable: true,
				Cause:     ErrCauseTimeout,
			}
		}
		// Network/transport errors are retryable from the caller's side
		return nil, &ScrapeError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, &ScrapeError{
			Message:   fmt.Sprintf("server error: %d", resp.StatusCode),
			Retryable: true,
			Cause:     ErrCauseUpstreamStatus,
		}
	case resp.StatusCode >= 400:
		return nil, &ScrapeError{
			Message:   fmt.Sprintf("client error: %d", resp.StatusCode),
			Retryable: false,
			Cause:     ErrCauseUpstreamStatus,
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContent(contentType) {
		return nil, &ScrapeError{
			Message:   fmt.Sprintf("non-HTML content type: %s", contentType),
			Retryable: false,
			Cause:     ErrCauseContentTypeInvalid,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ScrapeError{
			Message:   fmt.Sprintf("failed to read response body: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
	}

	return body, nil
}

// extractMenuText strips page chrome and converts the remaining body markup
// to Markdown. Markdown keeps the hall/station/item nesting that flat text
// extraction would collapse, which the structurer prompt relies on.
func extractMenuText(htmlBody []byte) (string, *ScrapeError) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
	if err != nil {
		return "", &ScrapeError{
			Message:   fmt.Sprintf("failed to parse HTML: %v", err),
			Retryable: false,
			Cause:     ErrCauseExtractionFailed,
		}
	}

	doc.Find(removedSelectors).Remove()

	body := doc.Find("body")
	if len(body.Nodes) == 0 {
		return "", &ScrapeError{
			Message:   "document has no body element",
			Retryable: false,
			Cause:     ErrCauseEmptyPage,
		}
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	markdown, err := conv.ConvertNode(body.Nodes[0])
	if err != nil {
		return "", &ScrapeError{
			Message:   fmt.Sprintf("markdown conversion failed: %v", err),
			Retryable: false,
			Cause:     ErrCauseExtractionFailed,
		}
	}

	text := strings.TrimSpace(blankRuns.ReplaceAllString(string(markdown), "\n\n"))
	if text == "" {
		return "", &ScrapeError{
			Message:   "extracted text is empty",
			Retryable: false,
			Cause:     ErrCauseEmptyPage,
		}
	}

	return text, nil
}

func isHTMLContent(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "text/html") ||
		strings.Contains(contentType, "application/xhtml")
}

func isClientTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	var te timeouter
	return errors.As(err, &te) && te.Timeout()
}

func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"DNT":             "1",
		"Connection":      "keep-alive",
	}
}
