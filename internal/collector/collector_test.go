package collector

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"
)

const productPage = `<!DOCTYPE html>
<html>
<head>
<title>Acme Widget Pro 3000 - Precision Hand Tool</title>
<meta name="description" content="The Acme Widget Pro 3000 is a precision hand tool with a hardened steel head and an ergonomic grip, built for long workshop sessions.">
<meta name="robots" content="index, follow">
<meta property="og:image" content="https://cdn.example.com/widget.jpg">
<meta property="og:title" content="Acme Widget Pro 3000">
<meta property="og:description" content="Precision hand tool.">
<link rel="canonical" href="https://shop.example.com/widget">
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@graph": [
    {
      "@type": "Product",
      "name": "Acme Widget Pro 3000",
      "brand": {"@type": "Brand", "name": "Acme"},
      "aggregateRating": {"@type": "AggregateRating", "ratingValue": "4.6", "reviewCount": "128"},
      "offers": {"@type": "Offer", "price": "49.99", "priceCurrency": "USD"}
    },
    {"@type": "BreadcrumbList"},
    {"@type": "Organization", "name": "Acme Corp"}
  ]
}
</script>
</head>
<body>
<main>
<h1>Acme Widget Pro 3000</h1>
<section id="product-description">
<h2>Description</h2>
<p>The Acme Widget Pro 3000 is a precision hand tool designed for hobbyists
and professionals alike. Its hardened steel head resists wear through
thousands of cycles, and the ergonomic grip is made from recycled
polymer. Dimensions are 12 x 4 x 3 cm and it weighs just 180 grams.
Compatible with all Acme quick-change accessories. A 2 year warranty is
included with every purchase. See the instructions below for how to use
the adjustment dial safely.</p>
</section>
<section class="specifications">
<h2>Specifications</h2>
<table>
<tr><th>Weight</th><td>180 g</td></tr>
<tr><th>Head material</th><td>Hardened steel</td></tr>
<tr><th>Grip material</th><td>Recycled polymer</td></tr>
<tr><th>Length</th><td>12 cm</td></tr>
</table>
</section>
<section class="reviews">
<h2>Reviews</h2>
<ul>
<li>Great tool, sturdy grip.</li>
<li>Replaced my old widget immediately.</li>
</ul>
</section>
<section class="shipping">
<h2>Shipping and returns</h2>
<p>Free shipping on orders over $25. Our return policy allows returns
within 30 days for a full refund. Contact us at support@example.com with
any questions. Secure checkout guaranteed. Sold by Acme Corp.</p>
</section>
<img src="widget.jpg" alt="Acme Widget Pro 3000 on a workbench">
<img src="detail.jpg" alt="Close-up of the hardened steel head">
<img src="untagged.jpg">
</main>
</body>
</html>`

func TestCollectStructuredData(t *testing.T) {
	data, err := Collect(productPage, "https://shop.example.com/widget")
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	sd := data.StructuredData
	if !sd.HasProductSchema {
		t.Error("HasProductSchema = false, want true")
	}
	if !sd.HasOfferSchema {
		t.Error("HasOfferSchema = false, want true (nested offers object)")
	}
	if !sd.HasAggregateRatingSchema {
		t.Error("HasAggregateRatingSchema = false, want true")
	}
	if !sd.HasBreadcrumbSchema {
		t.Error("HasBreadcrumbSchema = false, want true (@graph entry)")
	}
	if !sd.HasOrganizationSchema {
		t.Error("HasOrganizationSchema = false, want true")
	}
	if sd.HasFAQSchema {
		t.Error("HasFAQSchema = true, want false")
	}
	if sd.HasReviewSchema {
		t.Error("HasReviewSchema = true, want false")
	}
}

func TestCollectSkipsMalformedJSONLD(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{not json at all</script>
<script type="application/ld+json">{"@type": "Product"}</script>
</head><body></body></html>`

	data, err := Collect(html, "https://shop.example.com/x")
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	if !data.StructuredData.HasProductSchema {
		t.Error("valid block after a malformed one should still be read")
	}
}

func TestCollectProtocolMeta(t *testing.T) {
	data, err := Collect(productPage, "https://shop.example.com/widget")
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	pm := data.ProtocolMeta
	if pm.Title != "Acme Widget Pro 3000 - Precision Hand Tool" {
		t.Errorf("Title = %q", pm.Title)
	}
	if pm.TitleLength != len(pm.Title) {
		t.Errorf("TitleLength = %d, want %d", pm.TitleLength, len(pm.Title))
	}
	if !pm.HasOGImage || pm.OGImageURL != "https://cdn.example.com/widget.jpg" {
		t.Errorf("og:image = %v %q", pm.HasOGImage, pm.OGImageURL)
	}
	if !pm.HasOGTitle || !pm.HasOGDescription {
		t.Error("og:title / og:description not detected")
	}
	if !pm.CanonicalMatches {
		t.Errorf("CanonicalMatches = false for %q vs page URL", pm.CanonicalURL)
	}
	if pm.RobotsDirective != "index, follow" {
		t.Errorf("RobotsDirective = %q", pm.RobotsDirective)
	}
}

func TestMetaLengthsCountRunes(t *testing.T) {
	html := `<html><head>
<title>Café Brûlée Crème Torch Édition Pro</title>
<meta name="description" content="Für die Crème brûlée: ein präziser Küchenbrenner mit regulierbarer Flamme und sicherem Griff.">
</head><body></body></html>`

	data, err := Collect(html, "https://shop.example.com/torch")
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	pm := data.ProtocolMeta
	if want := utf8.RuneCountInString(pm.Title); pm.TitleLength != want {
		t.Errorf("TitleLength = %d, want %d characters", pm.TitleLength, want)
	}
	if pm.TitleLength == len(pm.Title) {
		t.Error("TitleLength equals the byte length of a multibyte title")
	}
	if want := utf8.RuneCountInString(pm.MetaDescription); pm.MetaDescriptionLength != want {
		t.Errorf("MetaDescriptionLength = %d, want %d characters", pm.MetaDescriptionLength, want)
	}
}

func TestCanonicalTrailingSlash(t *testing.T) {
	html := `<html><head><link rel="canonical" href="https://shop.example.com/widget/"></head><body></body></html>`
	data, err := Collect(html, "https://shop.example.com/widget")
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	if !data.ProtocolMeta.CanonicalMatches {
		t.Error("trailing-slash canonical should match the bare page URL")
	}
}

func TestCollectContentQuality(t *testing.T) {
	data, err := Collect(productPage, "https://shop.example.com/widget")
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	cq := data.ContentQuality
	if cq.DescriptionWordCount < 50 {
		t.Errorf("DescriptionWordCount = %d, want the description section text", cq.DescriptionWordCount)
	}
	if cq.SpecificationCount != 4 {
		t.Errorf("SpecificationCount = %d, want 4 table rows", cq.SpecificationCount)
	}
	if !cq.HasWarrantyInfo {
		t.Error("HasWarrantyInfo = false, want true")
	}
	if !cq.HasCompatibilityInfo {
		t.Error("HasCompatibilityInfo = false, want true")
	}
	if !cq.HasDimensions {
		t.Error("HasDimensions = false, want true (12 x 4 x 3 cm)")
	}
	if !cq.HasMaterialsInfo {
		t.Error("HasMaterialsInfo = false, want true")
	}
	if !cq.HasUsageInstructions {
		t.Error("HasUsageInstructions = false, want true")
	}
	if cq.DescriptionQualityScore <= 0 || cq.DescriptionQualityScore > 100 {
		t.Errorf("DescriptionQualityScore = %d, want within (0,100]", cq.DescriptionQualityScore)
	}
}

func TestCollectStructure(t *testing.T) {
	data, err := Collect(productPage, "https://shop.example.com/widget")
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	cs := data.ContentStructure
	if cs.H1Count != 1 {
		t.Errorf("H1Count = %d, want 1", cs.H1Count)
	}
	if cs.HeadingLevelSkips != 0 {
		t.Errorf("HeadingLevelSkips = %d, want 0", cs.HeadingLevelSkips)
	}
	if cs.TotalImages != 3 || cs.ImagesWithAlt != 2 {
		t.Errorf("images = %d with alt of %d, want 2 of 3", cs.ImagesWithAlt, cs.TotalImages)
	}
	if !cs.PrimaryImageHasAlt {
		t.Error("PrimaryImageHasAlt = false, want true")
	}
	if cs.ListCount != 1 {
		t.Errorf("ListCount = %d, want 1", cs.ListCount)
	}
	if cs.TableCount != 1 {
		t.Errorf("TableCount = %d, want 1", cs.TableCount)
	}
	if cs.SectionCount < 4 {
		t.Errorf("SectionCount = %d, want at least the 4 headed sections", cs.SectionCount)
	}
	if cs.SemanticHTMLScore == 0 {
		t.Error("SemanticHTMLScore = 0, want credit for main/section markup")
	}
}

func TestHeadingLevelSkipsDetected(t *testing.T) {
	html := `<html><body><h1>Top</h1><h3>Skipped</h3><h4>Fine</h4><h2>Back up</h2><h5>Skipped again</h5></body></html>`
	data, err := Collect(html, "https://shop.example.com/x")
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	if got := data.ContentStructure.HeadingLevelSkips; got != 2 {
		t.Errorf("HeadingLevelSkips = %d, want 2 (h1->h3 and h2->h5)", got)
	}
}

func TestCollectTrustSignals(t *testing.T) {
	data, err := Collect(productPage, "https://shop.example.com/widget")
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	ts := data.TrustSignals
	if ts.ReviewCount != 128 {
		t.Errorf("ReviewCount = %d, want 128 from JSON-LD", ts.ReviewCount)
	}
	if ts.AverageRating != 4.6 {
		t.Errorf("AverageRating = %v, want 4.6 from JSON-LD", ts.AverageRating)
	}
	if ts.BrandName != "Acme" {
		t.Errorf("BrandName = %q, want Acme", ts.BrandName)
	}
	if !ts.BrandInH1 || !ts.BrandInTitle {
		t.Errorf("brand placement: h1=%v title=%v, want both", ts.BrandInH1, ts.BrandInTitle)
	}
	if !ts.HasReturnPolicy || !ts.HasShippingInfo || !ts.HasContactInfo || !ts.HasSellerInfo || !ts.HasTrustBadges {
		t.Errorf("trust keywords: %+v", ts)
	}
}

func TestDiscoverSnapshots(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(rel, content string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("b/page.html", "<html></html>")
	mustWrite("a/page.htm", "<html></html>")
	mustWrite("notes.txt", "not a snapshot")

	snapshots, err := DiscoverSnapshots(dir, nil)
	if err != nil {
		t.Fatalf("DiscoverSnapshots() error: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("found %d snapshots, want 2", len(snapshots))
	}
	if snapshots[0].RelPath != "a/page.htm" || snapshots[1].RelPath != "b/page.html" {
		t.Errorf("order = %s, %s; want sorted by relative path", snapshots[0].RelPath, snapshots[1].RelPath)
	}
}

func TestCollectFileMissing(t *testing.T) {
	if _, err := CollectFile(filepath.Join(t.TempDir(), "missing.html"), "x"); err == nil {
		t.Error("CollectFile() on a missing file should error")
	}
}
