package formatter

import (
	"regexp"
	"strings"
)

const (
	maxFeatures      = 6
	minFeatureLen    = 15
	maxFeatureLen    = 150
	bulletCharacters = "•★✓✔►▸"
)

var bulletPattern = regexp.MustCompile(`[` + bulletCharacters + `]\s*([^` + bulletCharacters + `\n]+)`)

// ExtractFeatures collects bullet-point marketing claims. Bullets that are
// really spec lines ("Material: Metal") are left to ExtractSpecifications.
func ExtractFeatures(text string) []string {
	features := []string{}
	seen := make(map[string]bool)

	for _, m := range bulletPattern.FindAllStringSubmatch(text, -1) {
		feature := collapseSpaces(m[1])
		n := runeLen(feature)
		if n <= minFeatureLen || n >= maxFeatureLen {
			continue
		}
		if specLinePattern.MatchString(feature) {
			continue
		}

		norm := strings.ToLower(feature)
		if seen[norm] {
			continue
		}
		seen[norm] = true
		features = append(features, feature)

		if len(features) == maxFeatures {
			break
		}
	}
	return features
}
