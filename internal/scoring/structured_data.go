package scoring

import (
	"github.com/dotcommander/agentlens/internal/facts"
	"github.com/dotcommander/agentlens/internal/weights"
)

// StructuredDataScorer evaluates schema.org JSON-LD coverage. Every factor
// is a binary presence check; none are context sensitive. Product and
// Offer schemas are critical: without them an agent cannot even establish
// what is being sold or for how much.
type StructuredDataScorer struct {
	cfg *weights.Config
}

func (s *StructuredDataScorer) Key() string { return weights.CategoryStructuredData }

func (s *StructuredDataScorer) Evaluate(data *facts.ExtractedPageData, mctx weights.Context) CategoryScore {
	sd := data.StructuredData
	b := newBuilder(s.cfg, s.Key(), mctx)

	b.addBinary("product_schema", sd.HasProductSchema,
		"Product schema present",
		"No Product schema found - agents cannot identify this as a product page")
	b.addBinary("offer_schema", sd.HasOfferSchema,
		"Offer schema present",
		"No Offer schema found - price and availability are invisible to agents")
	b.addBinary("aggregate_rating_schema", sd.HasAggregateRatingSchema,
		"AggregateRating schema present",
		"No AggregateRating schema found")
	b.addBinary("review_schema", sd.HasReviewSchema,
		"Review schema present",
		"No Review schema found")
	b.addBinary("faq_schema", sd.HasFAQSchema,
		"FAQPage schema present",
		"No FAQPage schema found")
	b.addBinary("breadcrumb_schema", sd.HasBreadcrumbSchema,
		"BreadcrumbList schema present",
		"No BreadcrumbList schema found")
	b.addBinary("organization_schema", sd.HasOrganizationSchema,
		"Organization or Brand schema present",
		"No Organization or Brand schema found")
	b.addBinary("image_object_schema", sd.HasImageObjectSchema,
		"ImageObject schema present",
		"No ImageObject schema found")

	return b.finish()
}
