// Package imagecheck verifies the true format of image URLs by sniffing
// magic bytes. Several agent ingestion pipelines reject WebP images even
// when they carry a .jpg extension, so the check downloads only the first
// bytes of the file and reads the container signature directly.
package imagecheck

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/dotcommander/agentlens/internal/facts"
)

const (
	defaultTimeout = 15 * time.Second
	sniffBytes     = 32
	userAgent      = "agentlens/1.0 (+https://github.com/dotcommander/agentlens)"
)

// Checker probes image URLs.
type Checker struct {
	client *http.Client
}

// New returns a Checker using the given client (a default client with a
// short timeout when nil).
func New(client *http.Client) *Checker {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Checker{client: client}
}

// Verify probes one image URL. An HTTP HEAD with a decisive image
// Content-Type settles the question without a body transfer; otherwise the
// leading bytes are fetched via a range header and the container signature
// is read directly (servers that ignore the range still work because the
// body read is capped). When both probes fail outright it falls back to
// the URL extension heuristic and reports the format as unverified.
func (c *Checker) Verify(ctx context.Context, imageURL string) (*facts.ImageVerification, error) {
	if format, ok := c.headContentType(ctx, imageURL); ok {
		return verificationFor(format), nil
	}

	head, err := c.fetchHead(ctx, imageURL)
	if err != nil {
		if v := FromURLExtension(imageURL); v != nil {
			return v, nil
		}
		return nil, fmt.Errorf("probing %s: %w", imageURL, err)
	}

	return verificationFor(sniffFormat(head)), nil
}

func verificationFor(format string) *facts.ImageVerification {
	return &facts.ImageVerification{
		IsWebP:        format == "webp",
		IsValidFormat: format == "jpeg" || format == "png" || format == "gif",
		Format:        format,
	}
}

// headContentType maps a HEAD response's Content-Type to an image format.
// Generic or missing types are not decisive; the caller falls through to
// byte sniffing.
func (c *Checker) headContentType(ctx context.Context, imageURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", false
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return "", false
	}
	switch mediaType {
	case "image/webp":
		return "webp", true
	case "image/jpeg":
		return "jpeg", true
	case "image/png":
		return "png", true
	case "image/gif":
		return "gif", true
	case "image/avif":
		return "avif", true
	}
	return "", false
}

func (c *Checker) fetchHead(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", sniffBytes-1))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	head, err := io.ReadAll(io.LimitReader(resp.Body, sniffBytes))
	if err != nil {
		return nil, err
	}
	if len(head) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	return head, nil
}

// sniffFormat identifies the image container from its magic bytes. Unknown
// signatures return "unknown".
func sniffFormat(head []byte) string {
	switch {
	case len(head) >= 12 && bytes.Equal(head[0:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WEBP")):
		return "webp"
	case len(head) >= 3 && bytes.Equal(head[0:3], []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case len(head) >= 8 && bytes.Equal(head[0:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return "png"
	case len(head) >= 6 && (bytes.Equal(head[0:6], []byte("GIF87a")) || bytes.Equal(head[0:6], []byte("GIF89a"))):
		return "gif"
	case len(head) >= 12 && bytes.Equal(head[4:8], []byte("ftyp")):
		return "avif"
	default:
		return "unknown"
	}
}

// FromURLExtension infers a verification result from the URL path
// extension alone. Returns nil when the extension is absent or unknown, so
// callers can distinguish "looks fine by name" from "nothing to go on".
func FromURLExtension(imageURL string) *facts.ImageVerification {
	u, err := url.Parse(imageURL)
	if err != nil {
		return nil
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".webp":
		return &facts.ImageVerification{IsWebP: true, Format: "webp"}
	case ".jpg", ".jpeg":
		return &facts.ImageVerification{IsValidFormat: true, Format: "jpeg"}
	case ".png":
		return &facts.ImageVerification{IsValidFormat: true, Format: "png"}
	case ".gif":
		return &facts.ImageVerification{IsValidFormat: true, Format: "gif"}
	default:
		return nil
	}
}

// VerifyAll probes a batch of URLs with a bounded worker pool of the given
// size. Results align with the input slice by index; a URL that could not
// be probed at all yields nil.
func (c *Checker) VerifyAll(ctx context.Context, urls []string, workers int) []*facts.ImageVerification {
	results := make([]*facts.ImageVerification, len(urls))
	if len(urls) == 0 {
		return results
	}

	if workers < 1 {
		workers = 1
	}
	if len(urls) < workers {
		workers = len(urls)
	}

	jobs := make(chan int, len(urls))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				v, err := c.Verify(ctx, urls[i])
				if err != nil {
					v = nil
				}
				results[i] = v
			}
		}()
	}

	for i := range urls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}
