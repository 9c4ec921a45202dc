// Package recommend turns scored factors into a prioritized action list.
// Every factor with a warning or fail status yields one recommendation;
// ordering is impact tier first, then point gap, then the original
// evaluation order so equal recommendations never reshuffle between runs.
package recommend

import (
	"fmt"
	"sort"

	"github.com/dotcommander/agentlens/internal/report"
	"github.com/dotcommander/agentlens/internal/scoring"
)

// Impact tiers, highest first.
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

// Effort levels for a remediation.
const (
	EffortLow    = "low"
	EffortMedium = "medium"
	EffortHigh   = "high"
)

// Gap thresholds for impact classification of non-critical factors.
const (
	highImpactGap   = 12.0
	mediumImpactGap = 6.0
)

// Recommendation is one prioritized remediation. Rank is 1-based and
// assigned after sorting.
type Recommendation struct {
	Rank     int     `json:"rank"`
	Category string  `json:"category"`
	Factor   string  `json:"factor"`
	Action   string  `json:"action"`
	Impact   string  `json:"impact"`
	Effort   string  `json:"effort"`
	Gap      float64 `json:"gap"`
	Critical bool    `json:"critical"`
}

// rule carries the remediation guidance for one category/factor pair.
type rule struct {
	action string
	effort string
}

// rules is keyed by "category/factor". Factors without an entry fall back
// to a generic medium-effort recommendation naming the factor.
var rules = map[string]rule{
	"structured_data/product_schema":   {"Add Product schema markup (JSON-LD) with name, image, description, brand, and SKU", EffortMedium},
	"structured_data/offer_schema":     {"Add Offer schema with price, currency, and availability so agents can read purchase terms", EffortMedium},
	"structured_data/aggregate_rating_schema": {"Add AggregateRating schema exposing the rating value and review count", EffortLow},
	"structured_data/review_schema":           {"Add Review schema for individual customer reviews", EffortMedium},
	"structured_data/faq_schema":              {"Add FAQPage schema covering common product questions", EffortMedium},
	"structured_data/breadcrumb_schema":       {"Add BreadcrumbList schema so agents can place the product in your catalog hierarchy", EffortLow},
	"structured_data/organization_schema":     {"Add Organization schema identifying the seller", EffortLow},
	"structured_data/image_object_schema":     {"Add ImageObject schema for the primary product image", EffortLow},

	"protocol_meta/og_image":        {"Add an og:image meta tag pointing at the primary product image", EffortLow},
	"protocol_meta/og_image_format": {"Serve the og:image as JPEG or PNG; WebP is rejected by several agent pipelines", EffortMedium},
	"protocol_meta/title_tag":       {"Write a descriptive title tag between 30 and 60 characters", EffortLow},
	"protocol_meta/meta_description": {"Write a meta description between 100 and 200 characters summarizing the product", EffortLow},
	"protocol_meta/og_title":         {"Add an og:title meta tag", EffortLow},
	"protocol_meta/og_description":   {"Add an og:description meta tag", EffortLow},
	"protocol_meta/canonical_url":    {"Add a canonical link element matching the page URL", EffortLow},
	"protocol_meta/robots_indexable": {"Remove the noindex robots directive; agents skip pages they are told not to index", EffortLow},

	"content_quality/description_length":  {"Expand the product description to at least 400 words of substantive copy", EffortHigh},
	"content_quality/description_quality": {"Rewrite the description with concrete features, benefits, and use cases instead of filler", EffortHigh},
	"content_quality/specifications":      {"Publish a full specification table; aim for 20 or more attribute rows", EffortMedium},
	"content_quality/warranty_info":       {"State the warranty terms on the product page", EffortLow},
	"content_quality/compatibility_info":  {"List compatible models, systems, or accessories", EffortMedium},
	"content_quality/dimensions":          {"Publish product dimensions and weight", EffortLow},
	"content_quality/materials_info":      {"Describe the materials the product is made from", EffortLow},
	"content_quality/usage_instructions":  {"Add setup or usage instructions to the page", EffortMedium},
	"content_quality/unique_content":      {"Replace manufacturer boilerplate with original copy", EffortHigh},

	"content_structure/h1_presence":       {"Add a single H1 heading naming the product", EffortLow},
	"content_structure/heading_hierarchy": {"Fix the heading outline: one H1, no skipped heading levels", EffortLow},
	"content_structure/semantic_html":     {"Use semantic elements (main, article, section, nav) instead of generic divs", EffortMedium},
	"content_structure/primary_image_alt": {"Add descriptive alt text to the primary product image", EffortLow},
	"content_structure/alt_text_coverage": {"Add alt text to every product image", EffortLow},
	"content_structure/list_usage":        {"Present feature enumerations as HTML lists", EffortLow},
	"content_structure/table_usage":       {"Present specifications as an HTML table", EffortMedium},
	"content_structure/paragraph_quality": {"Break long text walls into focused paragraphs", EffortMedium},
	"content_structure/content_sections":  {"Organize the page into labeled sections (description, specs, reviews, shipping)", EffortMedium},

	"authority_trust/review_count":   {"Collect and display customer reviews; solicit them post-purchase", EffortHigh},
	"authority_trust/average_rating": {"Display the average customer rating prominently", EffortLow},
	"authority_trust/brand_clarity":  {"Include the brand name in both the H1 and the title tag", EffortLow},
	"authority_trust/seller_info":    {"Identify the seller on the page", EffortLow},
	"authority_trust/return_policy":  {"Link or state the return policy on the product page", EffortLow},
	"authority_trust/shipping_info":  {"State shipping options and timelines", EffortLow},
	"authority_trust/contact_info":   {"Provide seller contact information", EffortLow},
	"authority_trust/trust_badges":   {"Display security or guarantee badges near the buy box", EffortLow},
}

// Recommend builds the prioritized recommendation list for a result.
func Recommend(r report.ScoreResult) []Recommendation {
	var recs []Recommendation
	for _, cs := range r.Ordered() {
		for _, f := range cs.Factors {
			if f.Status != scoring.StatusWarning && f.Status != scoring.StatusFail {
				continue
			}
			recs = append(recs, build(cs.CategoryKey, f))
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := impactRank(recs[i].Impact), impactRank(recs[j].Impact)
		if ri != rj {
			return ri < rj
		}
		return recs[i].Gap > recs[j].Gap
	})
	for i := range recs {
		recs[i].Rank = i + 1
	}
	return recs
}

func build(category string, f scoring.Factor) Recommendation {
	r, ok := rules[category+"/"+f.Name]
	if !ok {
		r = rule{
			action: fmt.Sprintf("Review and improve %s (no specific guidance available)", f.Name),
			effort: EffortMedium,
		}
	}
	return Recommendation{
		Category: category,
		Factor:   f.Name,
		Action:   r.action,
		Impact:   classify(f),
		Effort:   r.effort,
		Gap:      f.Gap(),
		Critical: f.Critical,
	}
}

// classify assigns the impact tier. A failed critical factor is always
// high impact regardless of its gap.
func classify(f scoring.Factor) string {
	if f.Critical && f.Status == scoring.StatusFail {
		return ImpactHigh
	}
	switch gap := f.Gap(); {
	case gap >= highImpactGap:
		return ImpactHigh
	case gap >= mediumImpactGap:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

func impactRank(impact string) int {
	switch impact {
	case ImpactHigh:
		return 0
	case ImpactMedium:
		return 1
	default:
		return 2
	}
}
