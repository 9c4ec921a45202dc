// Package collector extracts scoring facts from product page HTML. It is
// the only package that touches markup; everything downstream consumes the
// facts record it produces. Extraction is heuristic by design: it reads
// what is on the page and reports presence and counts, it never judges.
package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dotcommander/agentlens/internal/facts"
)

const (
	defaultUserAgent = "agentlens/1.0 (+https://github.com/dotcommander/agentlens)"
	fetchTimeout     = 30 * time.Second
	maxBodyBytes     = 10 << 20
)

// Collect parses HTML and extracts the full facts record. pageURL is used
// for canonical matching and carried through to the result.
func Collect(html string, pageURL string) (*facts.ExtractedPageData, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	data := &facts.ExtractedPageData{URL: pageURL}
	data.StructuredData = collectStructuredData(doc)
	data.ProtocolMeta = collectProtocolMeta(doc, pageURL)
	data.ContentQuality = collectContentQuality(doc)
	data.ContentStructure = collectStructure(doc)
	data.TrustSignals = collectTrustSignals(doc, data.ProtocolMeta.Title)
	return data, nil
}

// CollectFile reads a saved page snapshot and extracts facts from it.
func CollectFile(path string, pageURL string) (*facts.ExtractedPageData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return Collect(string(raw), pageURL)
}

// Fetch downloads a live page and extracts facts from it. The body read is
// capped so a misbehaving server cannot exhaust memory.
func Fetch(ctx context.Context, client *http.Client, pageURL string) (*facts.ExtractedPageData, error) {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", pageURL, err)
	}
	return Collect(string(body), pageURL)
}

// normalizeText collapses runs of whitespace into single spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// containsAny reports whether lowered text contains any of the keywords.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
