package collector

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dotcommander/agentlens/internal/facts"
)

// semanticElements are the landmarks the semantic-HTML sub-score looks for.
var semanticElements = []string{"main", "article", "section", "nav", "header", "footer", "aside", "figure"}

// sectionSelectors identify labeled content sections on a product page.
var sectionKeywords = []string{"description", "specification", "spec", "review", "shipping", "return", "faq", "feature", "detail"}

// collectStructure runs the heading census and the image, list, and
// paragraph counts.
func collectStructure(doc *goquery.Document) facts.StructureFacts {
	h1Count := doc.Find("h1").Length()
	skips := headingLevelSkips(doc)

	totalImages := 0
	imagesWithAlt := 0
	primaryHasAlt := false
	doc.Find("img").Each(func(i int, img *goquery.Selection) {
		totalImages++
		alt, ok := img.Attr("alt")
		hasAlt := ok && strings.TrimSpace(alt) != ""
		if hasAlt {
			imagesWithAlt++
		}
		if i == 0 {
			primaryHasAlt = hasAlt
		}
	})

	return facts.StructureFacts{
		H1Count:            h1Count,
		HeadingLevelSkips:  skips,
		SemanticHTMLScore:  semanticScore(doc),
		PrimaryImageHasAlt: primaryHasAlt,
		ImagesWithAlt:      imagesWithAlt,
		TotalImages:        totalImages,
		ListCount:          doc.Find("ul, ol").Length(),
		TableCount:         doc.Find("table").Length(),
		ParagraphScore:     paragraphScore(doc),
		SectionCount:       sectionCount(doc),
	}
}

// headingLevelSkips counts downward jumps of more than one level in
// document order (h1 followed by h3 is one skip).
func headingLevelSkips(doc *goquery.Document) int {
	skips := 0
	prev := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		level, err := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(h), "h"))
		if err != nil {
			return
		}
		if prev > 0 && level > prev+1 {
			skips++
		}
		prev = level
	})
	return skips
}

// semanticScore awards an even share per distinct landmark element present.
func semanticScore(doc *goquery.Document) int {
	found := 0
	for _, el := range semanticElements {
		if doc.Find(el).Length() > 0 {
			found++
		}
	}
	return found * 100 / len(semanticElements)
}

// paragraphScore rewards having several paragraphs of readable length.
// Walls of text (very long paragraphs) and fragment-only pages both score
// low.
func paragraphScore(doc *goquery.Document) int {
	total := 0
	readable := 0
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		words := len(strings.Fields(p.Text()))
		if words == 0 {
			return
		}
		total++
		if words >= 10 && words <= 150 {
			readable++
		}
	})
	if total == 0 {
		return 0
	}
	score := readable * 100 / total
	if total < 3 {
		score = score * total / 3
	}
	return score
}

// sectionCount counts distinct labeled sections: semantic sections with a
// heading, plus id/class markers naming a known product page section.
func sectionCount(doc *goquery.Document) int {
	count := 0
	doc.Find("section").Each(func(_ int, s *goquery.Selection) {
		if s.Find("h1, h2, h3, h4").Length() > 0 {
			count++
		}
	})
	seen := make(map[string]bool)
	doc.Find("[id], [class]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		class, _ := s.Attr("class")
		marker := strings.ToLower(id + " " + class)
		for _, kw := range sectionKeywords {
			if strings.Contains(marker, kw) && !seen[kw] {
				seen[kw] = true
				count++
			}
		}
	})
	return count
}
