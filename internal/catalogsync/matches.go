package catalogsync

import (
	"bytes"
	"fmt"
	"io"
	"regexp"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Match links a Shopify variant to the Whop plan created for it.
type Match struct {
	VariantID string
	PlanID    string
}

var matchPattern = regexp.MustCompile(`MATCH: Shopify Variant \((gid://shopify/ProductVariant/\d+)\) -> Whop Plan \((plan_[a-zA-Z0-9]+)\)`)

// String renders the sync log line for m.
func (m Match) String() string {
	return fmt.Sprintf("MATCH: Shopify Variant (%s) -> Whop Plan (%s)", m.VariantID, m.PlanID)
}

// ReadMatches extracts every MATCH line from a sync log. The log may be UTF-8
// or UTF-16 (as written by a Windows shell redirect).
func ReadMatches(r io.Reader) ([]Match, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading sync log: %w", err)
	}
	text, err := decodeLog(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding sync log: %w", err)
	}

	var matches []Match
	for _, m := range matchPattern.FindAllStringSubmatch(text, -1) {
		matches = append(matches, Match{VariantID: m[1], PlanID: m[2]})
	}
	return matches, nil
}

// PlanIDs returns the distinct plan ids of matches in log order.
func PlanIDs(matches []Match) []string {
	seen := make(map[string]bool, len(matches))
	var ids []string
	for _, m := range matches {
		if seen[m.PlanID] {
			continue
		}
		seen[m.PlanID] = true
		ids = append(ids, m.PlanID)
	}
	return ids
}

func decodeLog(raw []byte) (string, error) {
	fallback := unicode.UTF8.NewDecoder()
	if looksUTF16LE(raw) {
		fallback = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(fallback), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// looksUTF16LE guesses BOM-less UTF-16LE from ASCII text: every odd byte of
// the first few characters is zero.
func looksUTF16LE(raw []byte) bool {
	if len(raw) < 4 || bytes.HasPrefix(raw, []byte{0xFF, 0xFE}) || bytes.HasPrefix(raw, []byte{0xFE, 0xFF}) {
		return false
	}
	n := min(len(raw), 64) &^ 1
	for i := 1; i < n; i += 2 {
		if raw[i] != 0 {
			return false
		}
	}
	return true
}
