package scoring

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/dotcommander/agentlens/internal/facts"
	"github.com/dotcommander/agentlens/internal/weights"
)

// Title and description optimal bands, in characters.
const (
	titleOptimalMin = 30
	titleOptimalMax = 60
	descOptimalMin  = 100
	descOptimalMax  = 200
)

// outsideBandFraction is the score for a present value outside its optimal
// band.
const outsideBandFraction = 0.7

// ProtocolMetaScorer evaluates head-section metadata: the og:image and its
// format, title and description lengths, canonical URL, and robots
// directive. When Verification is nil the image format falls back to a
// URL-extension heuristic.
type ProtocolMetaScorer struct {
	cfg          *weights.Config
	Verification *facts.ImageVerification
}

func (s *ProtocolMetaScorer) Key() string { return weights.CategoryProtocolMeta }

func (s *ProtocolMetaScorer) Evaluate(data *facts.ExtractedPageData, mctx weights.Context) CategoryScore {
	pm := data.ProtocolMeta
	b := newBuilder(s.cfg, s.Key(), mctx)

	b.addBinary("og_image", pm.HasOGImage,
		"og:image tag present",
		"No og:image tag - agents have no product image to work with")

	s.scoreImageFormat(b, pm)

	s.scoreOptimalBand(b, "title_tag", pm.TitleLength, titleOptimalMin, titleOptimalMax, "Title")
	s.scoreOptimalBand(b, "meta_description", pm.MetaDescriptionLength, descOptimalMin, descOptimalMax, "Meta description")

	b.addBinary("og_title", pm.HasOGTitle,
		"og:title tag present",
		"No og:title tag")
	b.addBinary("og_description", pm.HasOGDescription,
		"og:description tag present",
		"No og:description tag")

	switch {
	case pm.CanonicalURL == "":
		b.add("canonical_url", 0, StatusFail, "No canonical URL declared")
	case pm.CanonicalMatches:
		b.add("canonical_url", 1, StatusPass, "Canonical URL matches the page URL")
	default:
		b.add("canonical_url", outsideBandFraction, StatusWarning, "Canonical URL points elsewhere")
	}

	// A noindex directive removes the page from agent-visible space
	// entirely; the tiny nominal weight understates that, so it is also a
	// critical fail.
	if robotsBlocksIndexing(pm.RobotsDirective) {
		b.factors = append(b.factors, Factor{
			Name:      "robots_indexable",
			Status:    StatusFail,
			Points:    0,
			MaxPoints: b.specs["robots_indexable"].Max,
			Critical:  true,
			Details:   "robots directive contains noindex - the page is invisible to compliant crawlers",
		})
	} else {
		b.add("robots_indexable", 1, StatusPass, "Page is indexable")
	}

	return b.finish()
}

// scoreImageFormat applies the three-way format rule: a verified WebP earns
// zero points and a critical failure (the format cannot be consumed by the
// image pipelines behind most LLM agents), a recognized raster format earns
// full points, and an unverified format earns half points pending
// verification.
func (s *ProtocolMetaScorer) scoreImageFormat(b *builder, pm facts.ProtocolMetaFacts) {
	if !pm.HasOGImage {
		b.add("og_image_format", 0, StatusFail, "No og:image to verify")
		return
	}

	v := s.Verification
	if v == nil {
		v = inferFormatFromURL(pm.OGImageURL)
	}

	switch {
	case v == nil:
		b.add("og_image_format", 0.5, StatusWarning, "Image format could not be determined - verify manually")
	case v.IsWebP:
		b.add("og_image_format", 0, StatusFail, "og:image is WebP - invisible to most LLM image consumers")
	case v.IsValidFormat:
		b.add("og_image_format", 1, StatusPass, fmt.Sprintf("og:image is %s", strings.ToUpper(v.Format)))
	default:
		b.add("og_image_format", 0.5, StatusWarning, "Unrecognized image format - verify manually")
	}
}

// scoreOptimalBand applies the present/optimal pattern: full points inside
// the band, 70% outside it but present, zero when absent.
func (s *ProtocolMetaScorer) scoreOptimalBand(b *builder, name string, length, min, max int, label string) {
	switch {
	case length == 0:
		b.add(name, 0, StatusFail, label+" is missing")
	case length >= min && length <= max:
		b.add(name, 1, StatusPass, fmt.Sprintf("%s length %d is in the optimal %d-%d range", label, length, min, max))
	default:
		b.add(name, outsideBandFraction, StatusWarning, fmt.Sprintf("%s length %d is outside the optimal %d-%d range", label, length, min, max))
	}
}

// robotsBlocksIndexing reports whether a robots directive excludes the page
// from indexing. An empty or unrecognized directive is indexable.
func robotsBlocksIndexing(directive string) bool {
	for _, part := range strings.Split(strings.ToLower(directive), ",") {
		if strings.TrimSpace(part) == "noindex" {
			return true
		}
	}
	return false
}

// inferFormatFromURL is the heuristic fallback when no verification result
// is supplied: classify by the URL path extension. Returns nil when the
// extension is unrecognized or absent.
func inferFormatFromURL(rawURL string) *facts.ImageVerification {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
	switch ext {
	case "webp":
		return &facts.ImageVerification{IsWebP: true, Format: "webp"}
	case "jpg", "jpeg":
		return &facts.ImageVerification{IsValidFormat: true, Format: "jpeg"}
	case "png", "gif":
		return &facts.ImageVerification{IsValidFormat: true, Format: ext}
	default:
		return nil
	}
}
