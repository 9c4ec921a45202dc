// Package facts defines the extracted page data record consumed by the
// scoring engine. This package is at the bottom of the dependency graph and
// should not import any other internal packages to avoid circular
// dependencies.
//
// All fields are plain values supplied by the collector (or any other
// producer that honors the same shape). The engine treats the record as
// read-only and never mutates it; a missing or zero fact means the feature
// is absent from the page.
package facts

// ExtractedPageData is a structured snapshot of a retail product page,
// split into the five sections the category scorers consume.
type ExtractedPageData struct {
	URL              string               `json:"url"`
	StructuredData   StructuredDataFacts  `json:"structured_data"`
	ProtocolMeta     ProtocolMetaFacts    `json:"protocol_meta"`
	ContentQuality   ContentQualityFacts  `json:"content_quality"`
	ContentStructure StructureFacts       `json:"content_structure"`
	TrustSignals     TrustSignalFacts     `json:"trust_signals"`
}

// StructuredDataFacts records which schema.org types were found in the
// page's JSON-LD markup.
type StructuredDataFacts struct {
	HasProductSchema         bool `json:"has_product_schema"`
	HasOfferSchema           bool `json:"has_offer_schema"`
	HasAggregateRatingSchema bool `json:"has_aggregate_rating_schema"`
	HasReviewSchema          bool `json:"has_review_schema"`
	HasFAQSchema             bool `json:"has_faq_schema"`
	HasBreadcrumbSchema      bool `json:"has_breadcrumb_schema"`
	HasOrganizationSchema    bool `json:"has_organization_schema"`
	HasImageObjectSchema     bool `json:"has_image_object_schema"`
}

// ProtocolMetaFacts records head-section metadata: title, description,
// Open Graph tags, canonical URL, and the robots directive.
type ProtocolMetaFacts struct {
	Title                 string `json:"title"`
	TitleLength           int    `json:"title_length"`
	MetaDescription       string `json:"meta_description"`
	MetaDescriptionLength int    `json:"meta_description_length"`
	HasOGImage            bool   `json:"has_og_image"`
	OGImageURL            string `json:"og_image_url"`
	HasOGTitle            bool   `json:"has_og_title"`
	HasOGDescription      bool   `json:"has_og_description"`
	CanonicalURL          string `json:"canonical_url"`
	CanonicalMatches      bool   `json:"canonical_matches"`
	RobotsDirective       string `json:"robots_directive"`
}

// ContentQualityFacts records how much substance the product copy carries.
// Sub-scores are pre-computed 0-100 values supplied by the collector.
type ContentQualityFacts struct {
	DescriptionWordCount    int  `json:"description_word_count"`
	DescriptionQualityScore int  `json:"description_quality_score"`
	SpecificationCount      int  `json:"specification_count"`
	HasWarrantyInfo         bool `json:"has_warranty_info"`
	HasCompatibilityInfo    bool `json:"has_compatibility_info"`
	HasDimensions           bool `json:"has_dimensions"`
	HasMaterialsInfo        bool `json:"has_materials_info"`
	HasUsageInstructions    bool `json:"has_usage_instructions"`
	UniqueContentScore      int  `json:"unique_content_score"`
}

// StructureFacts records heading hierarchy, semantic markup, and image
// accessibility facts.
type StructureFacts struct {
	H1Count            int  `json:"h1_count"`
	HeadingLevelSkips  int  `json:"heading_level_skips"`
	SemanticHTMLScore  int  `json:"semantic_html_score"`
	PrimaryImageHasAlt bool `json:"primary_image_has_alt"`
	ImagesWithAlt      int  `json:"images_with_alt"`
	TotalImages        int  `json:"total_images"`
	ListCount          int  `json:"list_count"`
	TableCount         int  `json:"table_count"`
	ParagraphScore     int  `json:"paragraph_score"`
	SectionCount       int  `json:"section_count"`
}

// TrustSignalFacts records review volume, rating, brand placement, and
// merchant trust signals.
type TrustSignalFacts struct {
	ReviewCount     int     `json:"review_count"`
	AverageRating   float64 `json:"average_rating"`
	BrandName       string  `json:"brand_name"`
	BrandInH1       bool    `json:"brand_in_h1"`
	BrandInTitle    bool    `json:"brand_in_title"`
	HasSellerInfo   bool    `json:"has_seller_info"`
	HasReturnPolicy bool    `json:"has_return_policy"`
	HasShippingInfo bool    `json:"has_shipping_info"`
	HasContactInfo  bool    `json:"has_contact_info"`
	HasTrustBadges  bool    `json:"has_trust_badges"`
}

// ImageVerification is the resolved result of probing an image URL for its
// true format. A nil *ImageVerification means verification was not run and
// the scorer falls back to the URL-extension heuristic.
type ImageVerification struct {
	IsWebP        bool   `json:"is_webp"`
	IsValidFormat bool   `json:"is_valid_format"`
	Format        string `json:"format,omitempty"`
}

// Purchase context constants. The context is a caller-supplied selector
// that picks which multiplier table reweights contextual factors.
const (
	ContextWant   = "want"
	ContextNeed   = "need"
	ContextHybrid = "hybrid"
)

// NormalizeContext maps any context string onto a known context.
// Unrecognized values silently resolve to hybrid.
func NormalizeContext(ctx string) string {
	switch ctx {
	case ContextWant, ContextNeed, ContextHybrid:
		return ctx
	default:
		return ContextHybrid
	}
}
