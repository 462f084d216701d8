package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// analyzeSocial extracts share-preview metadata: Open Graph tags, twitter
// card type and the canonical URL. Purely informational, it feeds no issue
// or score. Unparseable markup degrades to an empty analysis.
func analyzeSocial(markup string) SocialAnalysis {
	social := SocialAnalysis{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return social
	}

	social.OGTitle, _ = doc.Find("meta[property='og:title']").Attr("content")
	social.OGDescription, _ = doc.Find("meta[property='og:description']").Attr("content")
	social.OGImage, _ = doc.Find("meta[property='og:image']").Attr("content")
	social.TwitterCard, _ = doc.Find("meta[name='twitter:card']").Attr("content")
	social.Canonical, _ = doc.Find("link[rel='canonical']").Attr("href")

	social.HasOpenGraph = social.OGTitle != "" || social.OGDescription != "" || social.OGImage != ""
	return social
}
