package analyzer

import (
	"strings"

	"golang.org/x/net/html"
)

// textContext is the extractor's single piece of transient state: which
// structural element, if any, the next text token belongs to.
type textContext int

const (
	ctxNone textContext = iota
	ctxTitle
	ctxH1
	ctxH2
	ctxH3
)

// headingContext maps a heading tag name to its context, or ctxNone.
func headingContext(tag string) textContext {
	switch tag {
	case "h1":
		return ctxH1
	case "h2":
		return ctxH2
	case "h3":
		return ctxH3
	}
	return ctxNone
}

// attrValue returns the value of the named attribute and whether it was
// present. Duplicate attributes resolve to the last occurrence.
func attrValue(attrs []html.Attribute, name string) (string, bool) {
	val, found := "", false
	for _, a := range attrs {
		if a.Key == name {
			val, found = a.Val, true
		}
	}
	return val, found
}

// ExtractSignals performs a single forward pass over raw markup and collects
// structural page signals. Malformed markup never fails: unknown tags,
// unterminated elements and missing attributes all degrade to "signal
// absent". The context state deliberately resets on every end tag, so an
// inline tag closing inside a heading ends that heading's text capture early;
// that quirk is covered by tests and kept for output compatibility.
func ExtractSignals(markup string) PageSignals {
	sig := PageSignals{
		Headings: Headings{H1: []string{}, H2: []string{}, H3: []string{}},
	}
	ctx := ctxNone

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// End of input or tokenize error; either way the pass is done.
			return sig
		}

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			// Self-closing tokens behave as their open-tag-only
			// counterparts: they never reset the context.
			tok := z.Token()
			handleOpenTag(&sig, &ctx, tok)

		case html.EndTagToken:
			// Any close event resets the context, matching tag or not.
			ctx = ctxNone

		case html.TextToken:
			handleText(&sig, ctx, z.Token().Data)
		}
	}
}

func handleOpenTag(sig *PageSignals, ctx *textContext, tok html.Token) {
	switch tok.Data {
	case "title":
		*ctx = ctxTitle

	case "meta":
		if name, _ := attrValue(tok.Attr, "name"); name == "description" {
			// First matching tag wins; content is captured verbatim.
			if !sig.HasMetaDesc {
				content, _ := attrValue(tok.Attr, "content")
				sig.MetaDescription = content
				sig.HasMetaDesc = true
			}
		}

	case "h1", "h2", "h3":
		*ctx = headingContext(tok.Data)

	case "img":
		alt, ok := attrValue(tok.Attr, "alt")
		if !ok || strings.TrimSpace(alt) == "" {
			sig.ImagesWithoutAlt++
		}

	case "a":
		if href, _ := attrValue(tok.Attr, "href"); href != "" {
			if strings.HasPrefix(href, "http") {
				sig.Links.External++
			} else {
				sig.Links.Internal++
			}
		}

	case "script":
		if typ, _ := attrValue(tok.Attr, "type"); typ == "application/ld+json" {
			sig.SchemaFound = true
		}

	case "video":
		sig.VideoEmbedCount++

	case "iframe":
		src, _ := attrValue(tok.Attr, "src")
		if strings.Contains(strings.ToLower(src), "youtube") {
			sig.VideoEmbedCount++
		}
	}
}

func handleText(sig *PageSignals, ctx textContext, data string) {
	switch ctx {
	case ctxTitle:
		// Last text token inside a title context wins.
		sig.Title = strings.TrimSpace(data)
	case ctxH1, ctxH2, ctxH3:
		if text := strings.TrimSpace(data); text != "" {
			switch ctx {
			case ctxH1:
				sig.Headings.H1 = append(sig.Headings.H1, text)
			case ctxH2:
				sig.Headings.H2 = append(sig.Headings.H2, text)
			case ctxH3:
				sig.Headings.H3 = append(sig.Headings.H3, text)
			}
		}
	default:
		if text := strings.TrimSpace(data); text != "" {
			sig.VisibleText = append(sig.VisibleText, text)
		}
	}
}
