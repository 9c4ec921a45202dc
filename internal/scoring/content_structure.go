package scoring

import (
	"fmt"

	"github.com/dotcommander/agentlens/internal/facts"
	"github.com/dotcommander/agentlens/internal/weights"
)

// hierarchyViolationPenalty is the fraction of the heading-hierarchy factor
// lost per violation (extra H1 or skipped level).
const hierarchyViolationPenalty = 0.25

// ContentStructureScorer evaluates heading hierarchy, semantic markup, and
// image accessibility. Heading problems split across two factors: H1
// presence is scored on its own, and hierarchy violations lower only the
// hierarchy-validity factor.
type ContentStructureScorer struct {
	cfg *weights.Config
}

func (s *ContentStructureScorer) Key() string { return weights.CategoryContentStructure }

func (s *ContentStructureScorer) Evaluate(data *facts.ExtractedPageData, mctx weights.Context) CategoryScore {
	cs := data.ContentStructure
	b := newBuilder(s.cfg, s.Key(), mctx)

	b.addBinary("h1_presence", cs.H1Count > 0,
		"Page has an H1 heading",
		"No H1 heading - agents cannot identify the page topic")

	violations := cs.HeadingLevelSkips
	if cs.H1Count > 1 {
		violations += cs.H1Count - 1
	}
	hierFrac := 1 - hierarchyViolationPenalty*float64(violations)
	if hierFrac < 0 {
		hierFrac = 0
	}
	switch {
	case violations == 0:
		b.add("heading_hierarchy", 1, StatusPass, "Heading hierarchy is valid")
	case hierFrac > 0:
		b.add("heading_hierarchy", hierFrac, StatusWarning,
			fmt.Sprintf("%d heading hierarchy violations", violations))
	default:
		b.add("heading_hierarchy", 0, StatusFail,
			fmt.Sprintf("%d heading hierarchy violations", violations))
	}

	b.addSubScore("semantic_html", cs.SemanticHTMLScore,
		fmt.Sprintf("Semantic HTML sub-score %d/100", cs.SemanticHTMLScore))

	b.addBinary("primary_image_alt", cs.PrimaryImageHasAlt,
		"Primary image has alt text",
		"Primary image is missing alt text")

	// Coverage is continuous; a page with no images at all is indeterminate
	// rather than failing.
	if cs.TotalImages == 0 {
		b.add("alt_text_coverage", 0.5, StatusUnknown, "No images on the page to evaluate")
	} else {
		ratio := float64(cs.ImagesWithAlt) / float64(cs.TotalImages)
		b.add("alt_text_coverage", ratio, statusFromFraction(ratio, 0.9),
			fmt.Sprintf("%d of %d images have alt text", cs.ImagesWithAlt, cs.TotalImages))
	}

	b.addBinary("list_usage", cs.ListCount > 0,
		fmt.Sprintf("%d lists aid machine parsing", cs.ListCount),
		"No lists - feature enumerations are harder to extract")
	b.addBinary("table_usage", cs.TableCount > 0,
		fmt.Sprintf("%d tables structure the specifications", cs.TableCount),
		"No tables - specifications are not machine-readable")

	b.addSubScore("paragraph_quality", cs.ParagraphScore,
		fmt.Sprintf("Paragraph quality sub-score %d/100", cs.ParagraphScore))

	frac, status := sectionBand(cs.SectionCount)
	b.add("content_sections", frac, status,
		fmt.Sprintf("%d content sections found", cs.SectionCount))

	return b.finish()
}

// sectionBand maps a section count onto its threshold curve.
func sectionBand(count int) (float64, Status) {
	switch {
	case count == 0:
		return 0, StatusFail
	case count < 3:
		return 0.4, StatusWarning
	case count < 5:
		return 0.7, StatusWarning
	default:
		return 1.0, StatusPass
	}
}
