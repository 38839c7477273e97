package formatter

import (
	"regexp"
	"sort"
	"strings"
)

// specKeyMap maps raw description keys (lower case, single spaced) to the
// display key shown on the product page.
var specKeyMap = map[string]string{
	"material":           "Material",
	"materials":          "Material",
	"metal material":     "Material",
	"frame material":     "Frame",
	"color":              "Color",
	"colour":             "Color",
	"size":               "Size",
	"weight":             "Weight",
	"net weight":         "Weight",
	"dimensions":         "Dimensions",
	"dimension":          "Dimensions",
	"product size":       "Dimensions",
	"mirror size":        "Mirror Size",
	"lens size":          "Lens Size",
	"power":              "Power",
	"wattage":            "Power",
	"voltage":            "Voltage",
	"battery":            "Battery",
	"type":               "Type",
	"style":              "Style",
	"shape":              "Shape",
	"finish":             "Finish",
	"magnification":      "Magnification",
	"light source":       "Light Source",
	"bulb type":          "Bulb Type",
	"switch type":        "Switch",
	"suitable locations": "Suitable For",
	"application":        "Use",
	"occasion":           "Occasion",
}

const (
	keyDimensions     = "Dimensions"
	keySize           = "Size"
	keyAvailableSizes = "Available Sizes"
)

// Separator between a key and its value: colon, hyphen, en dash, em dash.
const sepClass = `[:\-–—]`

var (
	// keyAlternation lists every raw key, longest first, so that
	// "mirror size" wins over "size" and "materials" over "material".
	keyAlternation = buildKeyAlternation()

	specKeyPattern  = regexp.MustCompile(`(?i)\b(` + keyAlternation + `)\s*` + sepClass + `\s*`)
	specLinePattern = regexp.MustCompile(`(?i)^(?:` + keyAlternation + `)\s*` + sepClass)
	specRunPattern  = regexp.MustCompile(`(?i)\b(?:` + keyAlternation + `)\s*` + sepClass + `\s*[^.!?]*`)

	noisePattern = regexp.MustCompile(`(?i)\b(?:extra large|upgraded|plugin|new arrival|hot sale|best seller|high quality|premium quality|free shipping|2024|2025|2026)\b`)

	packingStopPattern = regexp.MustCompile(`(?i)\b(?:packing\s*list|package\s*includes?)`)
	packingTailPattern = regexp.MustCompile(`(?is)(?:packing\s*list|package\s*includes?).*`)
)

func buildKeyAlternation() string {
	keys := make([]string, 0, len(specKeyMap))
	for k := range specKeyMap {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, len(keys))
	for i, k := range keys {
		words := strings.Fields(k)
		for j, w := range words {
			words[j] = regexp.QuoteMeta(w)
		}
		parts[i] = strings.Join(words, `\s+`)
	}
	return strings.Join(parts, "|")
}

// canonicalKey resolves a raw key as it appeared in the text.
func canonicalKey(raw string) (string, bool) {
	k, ok := specKeyMap[strings.ToLower(strings.Join(strings.Fields(raw), " "))]
	return k, ok
}
