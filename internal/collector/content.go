package collector

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dotcommander/agentlens/internal/facts"
)

// descriptionSelectors are tried in order; the first non-empty match wins.
var descriptionSelectors = []string{
	`[itemprop="description"]`,
	"#product-description",
	".product-description",
	"#description",
	".description",
}

var (
	warrantyKeywords      = []string{"warranty", "guarantee", "guaranteed for"}
	compatibilityKeywords = []string{"compatible", "compatibility", "works with", "fits "}
	materialKeywords      = []string{"material", "made of", "made from", "stainless", "aluminum", "cotton", "leather", "polyester"}
	usageKeywords         = []string{"how to use", "instructions", "usage", "setup", "getting started", "care guide"}

	// Matches "10 x 20 cm", "5.5 in", "30mm" style measurements.
	dimensionPattern = regexp.MustCompile(`\d+(\.\d+)?\s?(x\s?\d+(\.\d+)?\s?)?(mm|cm|m|in|inch|inches|ft|")\b`)
	numberPattern    = regexp.MustCompile(`\d`)
)

// collectContentQuality extracts the product description and the keyword
// driven substance facts. Sub-scores are computed here so the scorers stay
// pure functions over the record.
func collectContentQuality(doc *goquery.Document) facts.ContentQualityFacts {
	description := findDescription(doc)
	words := strings.Fields(description)
	bodyText := strings.ToLower(normalizeText(doc.Find("body").Text()))

	return facts.ContentQualityFacts{
		DescriptionWordCount:    len(words),
		DescriptionQualityScore: descriptionQuality(description, words),
		SpecificationCount:      countSpecifications(doc),
		HasWarrantyInfo:         containsAny(bodyText, warrantyKeywords),
		HasCompatibilityInfo:    containsAny(bodyText, compatibilityKeywords),
		HasDimensions:           dimensionPattern.MatchString(bodyText),
		HasMaterialsInfo:        containsAny(bodyText, materialKeywords),
		HasUsageInstructions:    containsAny(bodyText, usageKeywords),
		UniqueContentScore:      uniqueContent(words),
	}
}

// findDescription returns the text of the first matching description
// container, falling back to concatenated main-content paragraphs.
func findDescription(doc *goquery.Document) string {
	for _, sel := range descriptionSelectors {
		if text := normalizeText(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	var parts []string
	doc.Find("main p, article p").Each(func(_ int, s *goquery.Selection) {
		if text := normalizeText(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

// countSpecifications counts attribute rows in spec-shaped markup: two-cell
// table rows and definition-list terms.
func countSpecifications(doc *goquery.Document) int {
	count := 0
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Find("td, th").Length() == 2 {
			count++
		}
	})
	count += doc.Find("dl dt").Length()
	return count
}

// descriptionQuality scores the copy 0-100 on cheap proxies for substance:
// enough length, concrete numbers, sentence variety, and not shouting.
func descriptionQuality(description string, words []string) int {
	if len(words) == 0 {
		return 0
	}
	score := 0
	if len(words) >= 50 {
		score += 30
	} else {
		score += len(words) * 30 / 50
	}
	if numberPattern.MatchString(description) {
		score += 25
	}
	if sentences := strings.Count(description, ". ") + 1; sentences >= 5 {
		score += 25
	} else {
		score += sentences * 5
	}
	if upper := strings.ToUpper(description); upper != description {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}

// uniqueContent approximates originality by vocabulary diversity: the share
// of distinct words in the copy, scaled so that typical prose (about half
// distinct) lands near the pass threshold.
func uniqueContent(words []string) int {
	if len(words) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[strings.ToLower(strings.Trim(w, ".,!?:;()"))] = true
	}
	score := len(seen) * 140 / len(words)
	if score > 100 {
		score = 100
	}
	return score
}
