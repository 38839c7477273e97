// Package formatter turns free-form product descriptions (supplier HTML,
// marketing copy, run-together "Key: Value" lists) into the structured record
// rendered on the product page.
//
// Every function here is pure and safe for concurrent use. Malformed input
// never produces an error, only a sparser record.
package formatter

import "strings"

// DefaultShortLength is the product-card description length used when the
// caller passes a non-positive limit.
const DefaultShortLength = 100

// FormattedProductData is the structured view of one product description.
type FormattedProductData struct {
	CleanDescription string      `json:"cleanDescription"`
	Specifications   []Spec      `json:"specifications"`
	Features         []string    `json:"features"`
	IncludedItems    []string    `json:"includedItems"`
	Dimensions       []Dimension `json:"dimensions"`
}

// Fallback reports whether the clean description is the title-based template
// rather than a sentence taken from the description.
func (d FormattedProductData) Fallback(title string) bool {
	return d.CleanDescription == fallbackDescription(title)
}

// Format parses rawDescription into a FormattedProductData. title is only used
// for the fallback sentence.
func Format(rawDescription, title string) FormattedProductData {
	text := NormalizeHTML(rawDescription)

	dims := ParseDimensions(text)
	specs := ExtractSpecifications(text)
	if len(dims) > 0 && !hasSpec(specs, keyDimensions, keySize) {
		specs = append([]Spec{availableSizes(dims)}, specs...)
	}

	return FormattedProductData{
		CleanDescription: CleanDescription(text, title),
		Specifications:   specs,
		Features:         ExtractFeatures(text),
		IncludedItems:    ExtractIncludedItems(text),
		Dimensions:       dims,
	}
}

// ShortDescription formats rawDescription and cuts the clean description to
// maxLength runes at a word boundary, adding "..." when it was cut.
func ShortDescription(rawDescription, title string, maxLength int) string {
	return Shorten(Format(rawDescription, title).CleanDescription, maxLength)
}

// Shorten is the truncation half of ShortDescription, for callers that already
// hold a formatted record.
func Shorten(cleanDescription string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultShortLength
	}
	desc := strings.TrimSpace(bracketsReplacer.Replace(cleanDescription))
	return truncateWords(desc, maxLength)
}
