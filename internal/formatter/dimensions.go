package formatter

import (
	"regexp"
	"strings"
)

// Dimension is a labelled "W × H unit" size found in a description.
type Dimension struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

const defaultDimensionLabel = "Size"

var (
	// Optional "9 lights –" qualifier, then W x H and an optional unit.
	dimensionPattern = regexp.MustCompile(
		`(?i)(\d+\s*lights?\s*[-–—]\s*)?(\d+(?:\.\d+)?)\s*[x×]\s*(\d+(?:\.\d+)?)\s*(?:(cm|mm|inches|inch|in|m)\b|("))?`)

	qualifiedDimensionPattern = regexp.MustCompile(
		`(?i)\d+\s*lights?\s*[-–—]\s*\d+(?:\.\d+)?\s*[x×]\s*\d+(?:\.\d+)?\s*(?:cm|mm|in)?;?\s*`)

	trailingDashPattern = regexp.MustCompile(`[-–—]\s*$`)
)

var unitLabels = map[string]string{
	"cm":     "cm",
	"mm":     "mm",
	"in":     "in",
	"inch":   "in",
	"inches": "in",
	`"`:      "in",
	"m":      "m",
}

func normalizeUnit(unit string) string {
	if unit == "" {
		return "cm"
	}
	if u, ok := unitLabels[strings.ToLower(unit)]; ok {
		return u
	}
	return unit
}

// ParseDimensions returns every distinct size pattern in text. A label is
// emitted once; later sizes under the same label are ignored.
func ParseDimensions(text string) []Dimension {
	var dims []Dimension
	seen := make(map[string]bool)

	for _, m := range dimensionPattern.FindAllStringSubmatch(text, -1) {
		label := defaultDimensionLabel
		if m[1] != "" {
			if l := cleanValue(trailingDashPattern.ReplaceAllString(m[1], "")); l != "" {
				label = l
			}
		}

		norm := strings.ToLower(label)
		if seen[norm] {
			continue
		}
		seen[norm] = true

		unit := m[4]
		if unit == "" {
			unit = m[5]
		}
		dims = append(dims, Dimension{
			Label: label,
			Value: m[2] + " × " + m[3] + " " + normalizeUnit(unit),
		})
	}
	return dims
}

// availableSizes renders dimensions as a single spec value.
func availableSizes(dims []Dimension) Spec {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = d.Label + ": " + d.Value
	}
	return Spec{Key: keyAvailableSizes, Value: strings.Join(parts, " | ")}
}
