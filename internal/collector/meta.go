package collector

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/dotcommander/agentlens/internal/facts"
)

// collectProtocolMeta reads the head section: title, meta description,
// Open Graph tags, canonical link, and robots directive.
func collectProtocolMeta(doc *goquery.Document, pageURL string) facts.ProtocolMetaFacts {
	title := normalizeText(doc.Find("head title").First().Text())
	description := metaContent(doc, `meta[name="description"]`)
	ogImage := metaContent(doc, `meta[property="og:image"]`)
	canonical, _ := doc.Find(`head link[rel="canonical"]`).First().Attr("href")
	canonical = strings.TrimSpace(canonical)

	// Lengths are rune counts: the title and description bands are
	// character budgets, and multibyte text must not overstate them.
	return facts.ProtocolMetaFacts{
		Title:                 title,
		TitleLength:           utf8.RuneCountInString(title),
		MetaDescription:       description,
		MetaDescriptionLength: utf8.RuneCountInString(description),
		HasOGImage:            ogImage != "",
		OGImageURL:            ogImage,
		HasOGTitle:            metaContent(doc, `meta[property="og:title"]`) != "",
		HasOGDescription:      metaContent(doc, `meta[property="og:description"]`) != "",
		CanonicalURL:          canonical,
		CanonicalMatches:      canonical != "" && canonicalMatches(canonical, pageURL),
		RobotsDirective:       strings.ToLower(metaContent(doc, `meta[name="robots"]`)),
	}
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// canonicalMatches compares URLs after stripping a single trailing slash,
// since the slash variant of the same path is not a canonical mismatch.
func canonicalMatches(canonical, pageURL string) bool {
	trim := func(u string) string { return strings.TrimSuffix(u, "/") }
	return trim(canonical) == trim(pageURL)
}
