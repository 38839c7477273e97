package formatter

import (
	"regexp"
	"strings"
)

const (
	maxIncludedItems = 6
	minItemLen       = 2
	maxItemLen       = 50
)

var (
	packingIntroPattern = regexp.MustCompile(
		`(?i)(?:packing\s*list|package\s*includes?|what(?:['’]?s|\s+is)?\s*included|in\s*the\s*box)\s*` + sepClass + `\s*`)
	packingEndPattern = regexp.MustCompile(`(?i)\b(?:product\s*image|note|warning|attention)\b|<`)

	itemSplitPattern = regexp.MustCompile(
		`(?i)\s*\*\s*\d+\s*|[,;*` + bulletCharacters + `]+|\s+\d+\s*[x×]\s*`)
	leadingQtyPattern  = regexp.MustCompile(`(?i)^\d+(?:\s*[x×*]\s*|\s+)`)
	trailingQtyPattern = regexp.MustCompile(`(?i)\s*[x×*]\s*\d+\s*$`)
	imageRefPattern    = regexp.MustCompile(`(?i)image`)
)

// ExtractIncludedItems reads the first "package includes"-style list in text
// and returns the item names without their quantities.
func ExtractIncludedItems(text string) []string {
	items := []string{}

	loc := packingIntroPattern.FindStringIndex(text)
	if loc == nil {
		return items
	}
	list := text[loc[1]:]
	if m := packingEndPattern.FindStringIndex(list); m != nil {
		list = list[:m[0]]
	}

	seen := make(map[string]bool)
	for _, part := range itemSplitPattern.Split(list, -1) {
		item := strings.TrimSpace(part)
		item = leadingQtyPattern.ReplaceAllString(item, "")
		item = trailingQtyPattern.ReplaceAllString(item, "")
		item = collapseSpaces(item)

		n := runeLen(item)
		if n <= minItemLen || n >= maxItemLen || imageRefPattern.MatchString(item) {
			continue
		}

		item = cleanValue(item)
		norm := strings.ToLower(item)
		if runeLen(item) <= minItemLen || seen[norm] {
			continue
		}
		seen[norm] = true
		items = append(items, item)

		if len(items) == maxIncludedItems {
			break
		}
	}
	return items
}
