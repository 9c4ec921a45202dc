package scoring

import (
	"fmt"

	"github.com/dotcommander/agentlens/internal/facts"
	"github.com/dotcommander/agentlens/internal/weights"
)

// AuthorityTrustScorer evaluates social proof and merchant trust signals.
// Review count and rating follow multi-segment curves shaped like the
// description-length curve, and both combine their context multipliers
// with the overshoot cap so strong social proof can compensate for a weak
// category elsewhere.
type AuthorityTrustScorer struct {
	cfg *weights.Config
}

func (s *AuthorityTrustScorer) Key() string { return weights.CategoryAuthorityTrust }

func (s *AuthorityTrustScorer) Evaluate(data *facts.ExtractedPageData, mctx weights.Context) CategoryScore {
	ts := data.TrustSignals
	b := newBuilder(s.cfg, s.Key(), mctx)

	rcFrac, rcStatus := reviewCountBand(ts.ReviewCount)
	b.add("review_count", rcFrac, rcStatus,
		fmt.Sprintf("%d reviews", ts.ReviewCount))

	rFrac, rStatus := ratingBand(ts.AverageRating)
	b.add("average_rating", rFrac, rStatus,
		fmt.Sprintf("Average rating %.1f", ts.AverageRating))

	s.scoreBrandClarity(b, ts)

	b.addBinary("seller_info", ts.HasSellerInfo,
		"Seller information present",
		"No seller information found")
	b.addBinary("return_policy", ts.HasReturnPolicy,
		"Return policy present",
		"No return policy found")
	b.addBinary("shipping_info", ts.HasShippingInfo,
		"Shipping information present",
		"No shipping information found")
	b.addBinary("contact_info", ts.HasContactInfo,
		"Contact information present",
		"No contact information found")
	b.addBinary("trust_badges", ts.HasTrustBadges,
		"Trust badges present",
		"No trust badges found")

	return b.finish()
}

// scoreBrandClarity applies the three-tier brand rule: full credit when the
// detected brand appears in both the primary heading and the title, partial
// when in exactly one, minimal when detected but placed in neither.
func (s *AuthorityTrustScorer) scoreBrandClarity(b *builder, ts facts.TrustSignalFacts) {
	switch {
	case ts.BrandName == "":
		b.add("brand_clarity", 0, StatusFail, "No brand name detected")
	case ts.BrandInH1 && ts.BrandInTitle:
		b.add("brand_clarity", 1, StatusPass,
			fmt.Sprintf("Brand %q appears in both H1 and title", ts.BrandName))
	case ts.BrandInH1 || ts.BrandInTitle:
		b.add("brand_clarity", 0.6, StatusWarning,
			fmt.Sprintf("Brand %q appears in only one of H1 and title", ts.BrandName))
	default:
		b.add("brand_clarity", 0.3, StatusWarning,
			fmt.Sprintf("Brand %q detected but absent from H1 and title", ts.BrandName))
	}
}

// reviewCountBand maps a review count onto its multi-segment curve.
func reviewCountBand(count int) (float64, Status) {
	switch {
	case count == 0:
		return 0, StatusFail
	case count < 10:
		return 0.40, StatusWarning
	case count < 50:
		return 0.70, StatusPass
	case count < 200:
		return 0.85, StatusPass
	default:
		return 1.0, StatusPass
	}
}

// ratingBand maps an average rating onto its curve. A zero rating means no
// rating was found.
func ratingBand(rating float64) (float64, Status) {
	switch {
	case rating <= 0:
		return 0, StatusFail
	case rating < 3.0:
		return 0.25, StatusWarning
	case rating < 4.0:
		return 0.60, StatusWarning
	case rating < 4.5:
		return 0.85, StatusPass
	default:
		return 1.0, StatusPass
	}
}
