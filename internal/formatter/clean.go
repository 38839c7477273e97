package formatter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	dashPattern      = regexp.MustCompile(`\s*[-–—]\s*`)
	edgePunctuation  = ",;: \t\n\r"
	bracketsReplacer = strings.NewReplacer("[", "", "]", "", "{", "", "}", "")
)

// cleanValue strips marketing noise and dashes from a captured value and
// title-cases each word. Interior capitals are lowered, so "USB-C" comes out
// as "Usb C".
func cleanValue(v string) string {
	v = noisePattern.ReplaceAllString(v, "")
	v = dashPattern.ReplaceAllString(v, " ")
	v = whitespacePattern.ReplaceAllString(v, " ")
	v = strings.Trim(v, edgePunctuation)
	if v == "" {
		return ""
	}

	words := strings.Split(v, " ")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// truncateWords cuts s to at most limit runes, backing up to the last space
// inside the limit, and appends an ellipsis. Strings that already fit are
// returned unchanged.
func truncateWords(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	cut := string(r[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
