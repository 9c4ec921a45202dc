package scoring

import (
	"fmt"

	"github.com/dotcommander/agentlens/internal/facts"
	"github.com/dotcommander/agentlens/internal/weights"
)

// ContentQualityScorer evaluates the substance of the product copy. Most
// factors here are contextual: how much a buyer cares about specifications
// or warranty depends on whether the purchase is desire- or need-driven.
type ContentQualityScorer struct {
	cfg *weights.Config
}

func (s *ContentQualityScorer) Key() string { return weights.CategoryContentQuality }

func (s *ContentQualityScorer) Evaluate(data *facts.ExtractedPageData, mctx weights.Context) CategoryScore {
	cq := data.ContentQuality
	b := newBuilder(s.cfg, s.Key(), mctx)

	frac, status := descriptionLengthBand(cq.DescriptionWordCount)
	b.add("description_length", frac, status,
		fmt.Sprintf("Description is %d words", cq.DescriptionWordCount))

	b.addSubScore("description_quality", cq.DescriptionQualityScore,
		fmt.Sprintf("Description quality sub-score %d/100", cq.DescriptionQualityScore))

	sfrac, sstatus := specificationBand(cq.SpecificationCount)
	b.add("specifications", sfrac, sstatus,
		fmt.Sprintf("%d specification entries found", cq.SpecificationCount))

	b.addBinary("warranty_info", cq.HasWarrantyInfo,
		"Warranty information present",
		"No warranty information found")
	b.addBinary("compatibility_info", cq.HasCompatibilityInfo,
		"Compatibility information present",
		"No compatibility information found")

	// Dimensions carry a factor-specific flat boost under the need context,
	// layered on top of the generic table multiplier.
	boost := 1.0
	if mctx.Name == facts.ContextNeed {
		boost = weights.NeedDimensionsBoost
	}
	dimFrac := 0.0
	dimStatus := StatusFail
	dimDetails := "No product dimensions found"
	if cq.HasDimensions {
		dimFrac, dimStatus, dimDetails = 1.0, StatusPass, "Product dimensions present"
	}
	b.addBoosted("dimensions", dimFrac, dimStatus, dimDetails, boost)

	b.addBinary("materials_info", cq.HasMaterialsInfo,
		"Materials information present",
		"No materials information found")
	b.addBinary("usage_instructions", cq.HasUsageInstructions,
		"Usage instructions present",
		"No usage instructions found")

	b.addSubScore("unique_content", cq.UniqueContentScore,
		fmt.Sprintf("Unique content sub-score %d/100", cq.UniqueContentScore))

	return b.finish()
}

// descriptionLengthBand maps a word count onto the four-segment piecewise
// curve. Bands increase monotonically; the curve is deliberately not linear
// across the whole range.
func descriptionLengthBand(words int) (float64, Status) {
	switch {
	case words == 0:
		return 0, StatusFail
	case words < 100:
		return 0.25, StatusWarning
	case words < 200:
		return 0.60, StatusWarning
	case words < 400:
		return 0.85, StatusPass
	default:
		return 1.0, StatusPass
	}
}

// specificationBand maps a specification count onto its threshold curve.
func specificationBand(count int) (float64, Status) {
	switch {
	case count == 0:
		return 0, StatusFail
	case count < 5:
		return 0.25, StatusWarning
	case count < 10:
		return 0.50, StatusWarning
	case count < 20:
		return 0.75, StatusPass
	default:
		return 1.0, StatusPass
	}
}
