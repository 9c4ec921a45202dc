package collector

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dotcommander/agentlens/internal/facts"
)

// collectStructuredData scans every JSON-LD script block and records which
// schema.org types appear anywhere in them, including nested objects and
// @graph containers. Malformed blocks are skipped, not fatal: a broken
// script simply contributes no types.
func collectStructuredData(doc *goquery.Document) facts.StructuredDataFacts {
	types := make(map[string]bool)
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		walkSchemaTypes(payload, types)
	})

	return facts.StructuredDataFacts{
		HasProductSchema:         types["product"],
		HasOfferSchema:           types["offer"] || types["aggregateoffer"],
		HasAggregateRatingSchema: types["aggregaterating"],
		HasReviewSchema:          types["review"],
		HasFAQSchema:             types["faqpage"],
		HasBreadcrumbSchema:      types["breadcrumblist"],
		HasOrganizationSchema:    types["organization"],
		HasImageObjectSchema:     types["imageobject"],
	}
}

// walkSchemaTypes recursively records every @type value in a JSON-LD
// document. @type may be a string or an array of strings; documents may
// nest objects arbitrarily and wrap node lists in @graph.
func walkSchemaTypes(node any, types map[string]bool) {
	switch v := node.(type) {
	case map[string]any:
		switch t := v["@type"].(type) {
		case string:
			types[strings.ToLower(t)] = true
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok {
					types[strings.ToLower(s)] = true
				}
			}
		}
		for key, child := range v {
			if key == "@type" {
				continue
			}
			walkSchemaTypes(child, types)
		}
	case []any:
		for _, item := range v {
			walkSchemaTypes(item, types)
		}
	}
}
