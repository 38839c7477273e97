package formatter

import "strings"

// Values at or above this length are a run-on paragraph, not a spec.
const maxSpecValueLen = 80

// Spec is one canonical key/value attribute of a product.
type Spec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ExtractSpecifications finds "Key: Value" runs in normalized text. A value
// ends where the next recognised key starts, so specs written on one line
// ("Material: Metal Color: White") are split apart. The first accepted value
// for a canonical key wins.
func ExtractSpecifications(text string) []Spec {
	specs := []Spec{}
	seen := make(map[string]bool)

	locs := specKeyPattern.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range locs {
		key, ok := canonicalKey(text[loc[2]:loc[3]])
		if !ok || seen[key] {
			continue
		}

		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		value := specValue(text[loc[1]:end])
		if value == "" || runeLen(value) >= maxSpecValueLen {
			continue
		}

		specs = append(specs, Spec{Key: key, Value: value})
		seen[key] = true
	}
	return specs
}

// specValue cleans the raw run captured after a key.
func specValue(run string) string {
	if m := packingStopPattern.FindStringIndex(run); m != nil {
		run = run[:m[0]]
	}

	// A colon here belongs to a key we do not know ("Brand: X"); the word
	// before it is that key, not part of our value.
	if c := strings.IndexByte(run, ':'); c >= 0 {
		run = strings.TrimSpace(run[:c])
		if sp := strings.LastIndexByte(run, ' '); sp >= 0 {
			run = run[:sp]
		} else {
			run = ""
		}
	}

	run = dimensionPattern.ReplaceAllString(run, "")
	run = packingTailPattern.ReplaceAllString(run, "")
	return cleanValue(strings.TrimSpace(run))
}

func hasSpec(specs []Spec, keys ...string) bool {
	for _, s := range specs {
		for _, k := range keys {
			if s.Key == k {
				return true
			}
		}
	}
	return false
}
