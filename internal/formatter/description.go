package formatter

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxDescriptionLen = 200
	minSentenceLen    = 25
)

var (
	sectionHeaderPattern = regexp.MustCompile(`(?i)\b(?:product\s*information|specifications?|dimensions?)[:\s]*[^.!?]*`)
	productImagePattern  = regexp.MustCompile(`(?is)product\s*image.*`)
	sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)
	adminPrefixPattern   = regexp.MustCompile(`(?i)^(?:note|warning|attention|please|product)`)
	digitPrefixPattern   = regexp.MustCompile(`^\d`)
	mirrorPattern        = regexp.MustCompile(`(?i)mirror`)
)

// CleanDescription picks the first presentable marketing sentence out of
// normalized text. When nothing survives the filters it falls back to a
// sentence built from the title, so the result is never empty.
func CleanDescription(text, title string) string {
	s := sectionHeaderPattern.ReplaceAllString(text, "")
	s = specRunPattern.ReplaceAllString(s, "")
	s = qualifiedDimensionPattern.ReplaceAllString(s, "")
	s = packingTailPattern.ReplaceAllString(s, "")
	if loc := packingIntroPattern.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	s = productImagePattern.ReplaceAllString(s, "")
	s = collapseSpaces(s)

	for _, candidate := range sentenceSplitPattern.Split(s, -1) {
		sentence := strings.TrimSpace(candidate)
		if !presentable(sentence) {
			continue
		}
		if !strings.HasSuffix(sentence, ".") {
			sentence += "."
		}
		return truncateWords(sentence, maxDescriptionLen)
	}

	return fallbackDescription(title)
}

func presentable(sentence string) bool {
	return runeLen(sentence) > minSentenceLen &&
		!adminPrefixPattern.MatchString(sentence) &&
		!digitPrefixPattern.MatchString(sentence) &&
		!strings.Contains(sentence, ":")
}

func fallbackDescription(title string) string {
	productType := "product"
	if mirrorPattern.MatchString(title) {
		productType = "LED mirror"
	}
	name := strings.TrimSpace(title)
	if name == "" {
		name = "product"
	}
	return fmt.Sprintf("Elevate your daily ritual with the %s. Premium craftsmanship meets modern design in this exceptional %s.", name, productType)
}
