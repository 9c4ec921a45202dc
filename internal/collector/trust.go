package collector

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dotcommander/agentlens/internal/facts"
)

var (
	sellerKeywords   = []string{"sold by", "seller", "ships from", "merchant"}
	returnKeywords   = []string{"return policy", "returns", "money back", "refund"}
	shippingKeywords = []string{"shipping", "delivery", "dispatched"}
	contactKeywords  = []string{"contact us", "customer service", "support@", "phone:"}
	badgeKeywords    = []string{"secure checkout", "verified", "ssl", "money-back guarantee", "trusted", "satisfaction guaranteed"}
)

// collectTrustSignals reads review volume, rating, and brand placement.
// Structured data is the authoritative source for numbers; visible text
// keywords cover the merchant signals.
func collectTrustSignals(doc *goquery.Document, title string) facts.TrustSignalFacts {
	reviewCount, rating, brand := ratingFromJSONLD(doc)

	if brand == "" {
		brand = strings.TrimSpace(doc.Find(`[itemprop="brand"]`).First().Text())
	}
	if rating == 0 {
		if v, err := strconv.ParseFloat(metaContent(doc, `meta[itemprop="ratingValue"]`), 64); err == nil {
			rating = v
		}
	}
	if reviewCount == 0 {
		if v, err := strconv.Atoi(metaContent(doc, `meta[itemprop="reviewCount"]`)); err == nil {
			reviewCount = v
		}
	}

	h1 := strings.ToLower(normalizeText(doc.Find("h1").First().Text()))
	bodyText := strings.ToLower(normalizeText(doc.Find("body").Text()))
	lowerBrand := strings.ToLower(brand)

	return facts.TrustSignalFacts{
		ReviewCount:     reviewCount,
		AverageRating:   rating,
		BrandName:       brand,
		BrandInH1:       brand != "" && strings.Contains(h1, lowerBrand),
		BrandInTitle:    brand != "" && strings.Contains(strings.ToLower(title), lowerBrand),
		HasSellerInfo:   containsAny(bodyText, sellerKeywords),
		HasReturnPolicy: containsAny(bodyText, returnKeywords),
		HasShippingInfo: containsAny(bodyText, shippingKeywords),
		HasContactInfo:  containsAny(bodyText, contactKeywords),
		HasTrustBadges:  containsAny(bodyText, badgeKeywords),
	}
}

// ratingFromJSONLD pulls reviewCount, ratingValue, and brand name from the
// page's JSON-LD blocks. Values may be numbers or strings in the wild, so
// both encodings are accepted.
func ratingFromJSONLD(doc *goquery.Document) (reviewCount int, rating float64, brand string) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		walkRating(payload, &reviewCount, &rating, &brand)
	})
	return reviewCount, rating, brand
}

func walkRating(node any, reviewCount *int, rating *float64, brand *string) {
	switch v := node.(type) {
	case map[string]any:
		if ar, ok := v["aggregateRating"].(map[string]any); ok {
			if n := asInt(ar["reviewCount"]); n > *reviewCount {
				*reviewCount = n
			}
			if n := asInt(ar["ratingCount"]); n > *reviewCount {
				*reviewCount = n
			}
			if r := asFloat(ar["ratingValue"]); r > 0 {
				*rating = r
			}
		}
		if *brand == "" {
			switch b := v["brand"].(type) {
			case string:
				*brand = b
			case map[string]any:
				if name, ok := b["name"].(string); ok {
					*brand = name
				}
			}
		}
		for _, child := range v {
			walkRating(child, reviewCount, rating, brand)
		}
	case []any:
		for _, item := range v {
			walkRating(item, reviewCount, rating, brand)
		}
	}
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 0
}
