package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is what the crawler keeps of a product page.
type Page struct {
	URL             string
	Title           string
	DescriptionHTML string
}

// descriptionSelectors are tried in order; the first non-empty match wins.
var descriptionSelectors = []string{
	`[itemprop="description"]`,
	".product__description",
	".product-single__description",
	".product-description",
	"#description",
}

// ParsePage extracts the product title and description markup from a page.
// When no description container is found it falls back to the page's
// headings, paragraphs and list items.
func ParsePage(html string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Page{}, err
	}

	var page Page
	page.Title = firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		strings.TrimSpace(doc.Find("h1").First().Text()),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)

	for _, sel := range descriptionSelectors {
		s := doc.Find(sel).First()
		if s.Length() == 0 {
			continue
		}
		markup, err := s.Html()
		if err != nil {
			return Page{}, err
		}
		if strings.TrimSpace(markup) != "" {
			page.DescriptionHTML = markup
			return page, nil
		}
	}

	var content []string
	doc.Find("h2, p, li").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			content = append(content, text)
		}
	})
	page.DescriptionHTML = strings.Join(content, "\n")
	if page.DescriptionHTML == "" {
		page.DescriptionHTML = metaContent(doc, `meta[name="description"]`)
	}
	return page, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
