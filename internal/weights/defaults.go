package weights

// Multiplier keys used by contextual factors. Each context table maps these
// keys to positive floats; hybrid maps them all to 1.0.
const (
	KeyDescriptionQuality = "description_quality"
	KeySpecifications     = "specifications"
	KeyWarranty           = "warranty"
	KeyCompatibility      = "compatibility"
	KeyDimensions         = "dimensions"
	KeyMaterials          = "materials"
	KeyUsageInstructions  = "usage_instructions"
	KeyReviewCount        = "review_count"
	KeyRating             = "rating"
	KeyReturnPolicy       = "return_policy"
)

// NeedDimensionsBoost is the flat factor-specific boost applied to the
// dimensions factor under the need context, layered on top of the generic
// multiplier table.
const NeedDimensionsBoost = 1.3

// Default returns the built-in weight configuration. Callers must not
// mutate the returned tables; Load hands out a fresh copy when an override
// file is merged.
func Default() *Config {
	return &Config{
		Categories: []CategoryWeight{
			{Key: CategoryStructuredData, Name: "Structured Data", Weight: 0.25},
			{Key: CategoryProtocolMeta, Name: "Protocol & Meta", Weight: 0.20},
			{Key: CategoryContentQuality, Name: "Content Quality", Weight: 0.25},
			{Key: CategoryContentStructure, Name: "Content Structure", Weight: 0.15},
			{Key: CategoryAuthorityTrust, Name: "Authority & Trust", Weight: 0.15},
		},
		Factors: map[string][]FactorWeight{
			CategoryStructuredData: {
				{Name: "product_schema", Max: 30, Critical: true},
				{Name: "offer_schema", Max: 20, Critical: true},
				{Name: "aggregate_rating_schema", Max: 12},
				{Name: "review_schema", Max: 10},
				{Name: "faq_schema", Max: 8},
				{Name: "breadcrumb_schema", Max: 6},
				{Name: "organization_schema", Max: 8},
				{Name: "image_object_schema", Max: 6},
			},
			CategoryProtocolMeta: {
				{Name: "og_image", Max: 20, Critical: true},
				{Name: "og_image_format", Max: 20, Critical: true},
				{Name: "title_tag", Max: 15},
				{Name: "meta_description", Max: 15},
				{Name: "og_title", Max: 8},
				{Name: "og_description", Max: 7},
				{Name: "canonical_url", Max: 10},
				{Name: "robots_indexable", Max: 5},
			},
			CategoryContentQuality: {
				{Name: "description_length", Max: 20},
				{Name: "description_quality", Max: 15, ContextKey: KeyDescriptionQuality, CapMultiple: 1.5},
				{Name: "specifications", Max: 15, ContextKey: KeySpecifications, CapMultiple: 1.5},
				{Name: "warranty_info", Max: 10, ContextKey: KeyWarranty, CapMultiple: 2.0},
				{Name: "compatibility_info", Max: 10, ContextKey: KeyCompatibility, CapMultiple: 1.5},
				{Name: "dimensions", Max: 10, ContextKey: KeyDimensions, CapMultiple: 1.5},
				{Name: "materials_info", Max: 6, ContextKey: KeyMaterials},
				{Name: "usage_instructions", Max: 8, ContextKey: KeyUsageInstructions},
				{Name: "unique_content", Max: 6},
			},
			CategoryContentStructure: {
				{Name: "h1_presence", Max: 15},
				{Name: "heading_hierarchy", Max: 15},
				{Name: "semantic_html", Max: 10},
				{Name: "primary_image_alt", Max: 15},
				{Name: "alt_text_coverage", Max: 15},
				{Name: "list_usage", Max: 8},
				{Name: "table_usage", Max: 8},
				{Name: "paragraph_quality", Max: 7},
				{Name: "content_sections", Max: 7},
			},
			CategoryAuthorityTrust: {
				{Name: "review_count", Max: 25, ContextKey: KeyReviewCount, CapMultiple: 1.5},
				{Name: "average_rating", Max: 20, ContextKey: KeyRating, CapMultiple: 1.5},
				{Name: "brand_clarity", Max: 15},
				{Name: "seller_info", Max: 10},
				{Name: "return_policy", Max: 10, ContextKey: KeyReturnPolicy},
				{Name: "shipping_info", Max: 8},
				{Name: "contact_info", Max: 6},
				{Name: "trust_badges", Max: 6},
			},
		},
		Multipliers: map[string]Multipliers{
			// Desire-driven purchases weight persuasion and social proof.
			"want": {
				KeyDescriptionQuality: 1.4,
				KeySpecifications:     0.8,
				KeyWarranty:           0.7,
				KeyCompatibility:      0.8,
				KeyDimensions:         0.8,
				KeyMaterials:          1.0,
				KeyUsageInstructions:  1.1,
				KeyReviewCount:        1.3,
				KeyRating:             1.3,
				KeyReturnPolicy:       1.1,
			},
			// Utilitarian purchases weight hard specifications and fit.
			"need": {
				KeyDescriptionQuality: 0.8,
				KeySpecifications:     1.4,
				KeyWarranty:           1.3,
				KeyCompatibility:      1.4,
				KeyDimensions:         1.2,
				KeyMaterials:          1.2,
				KeyUsageInstructions:  1.1,
				KeyReviewCount:        0.9,
				KeyRating:             0.9,
				KeyReturnPolicy:       1.2,
			},
			// Identity table: every key maps to 1.0.
			"hybrid": {
				KeyDescriptionQuality: 1.0,
				KeySpecifications:     1.0,
				KeyWarranty:           1.0,
				KeyCompatibility:      1.0,
				KeyDimensions:         1.0,
				KeyMaterials:          1.0,
				KeyUsageInstructions:  1.0,
				KeyReviewCount:        1.0,
				KeyRating:             1.0,
				KeyReturnPolicy:       1.0,
			},
		},
		Grades: []GradeThreshold{
			{Min: 90, Grade: "A", Description: "Excellent - agents can fully understand and trust this page"},
			{Min: 80, Grade: "B", Description: "Good - minor gaps in machine readability"},
			{Min: 70, Grade: "C", Description: "Fair - agents will miss meaningful product details"},
			{Min: 60, Grade: "D", Description: "Poor - large portions of the page are invisible to agents"},
			{Min: 0, Grade: "F", Description: "Failing - automated consumers cannot reliably interpret this page"},
		},
	}
}
