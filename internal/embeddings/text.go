package embeddings

import (
	"strings"

	"mirrow/internal/formatter"
)

// ProductText renders a formatted product as the plain text that gets
// embedded: title first, then the description, then the structured blocks.
func ProductText(title string, data formatter.FormattedProductData) string {
	var sb strings.Builder

	sb.WriteString(title + "\n\n")

	if data.CleanDescription != "" {
		sb.WriteString("Description:\n" + data.CleanDescription + "\n\n")
	}

	if len(data.Specifications) > 0 {
		sb.WriteString("--- Specifications ---\n")
		for _, s := range data.Specifications {
			sb.WriteString(s.Key + ": " + s.Value + "\n")
		}
		sb.WriteString("\n")
	}

	if len(data.Features) > 0 {
		sb.WriteString("--- Features ---\n")
		for _, f := range data.Features {
			sb.WriteString("- " + f + "\n")
		}
		sb.WriteString("\n")
	}

	if len(data.IncludedItems) > 0 {
		sb.WriteString("In the box: " + strings.Join(data.IncludedItems, ", ") + "\n")
	}

	if len(data.Dimensions) > 0 {
		sizes := make([]string, len(data.Dimensions))
		for i, d := range data.Dimensions {
			sizes[i] = d.Label + ": " + d.Value
		}
		sb.WriteString("Sizes: " + strings.Join(sizes, " | ") + "\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}
