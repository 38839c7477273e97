package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		title string
		want  string
	}{
		{
			name: "first marketing sentence",
			text: "Our frameless round mirror adds soft light to any vanity! Order today.",
			want: "Our frameless round mirror adds soft light to any vanity.",
		},
		{
			name: "spec runs and notes skipped",
			text: "Note: handle with care. Material: Aluminium. Our frameless round mirror adds soft light to any vanity!",
			want: "Our frameless round mirror adds soft light to any vanity.",
		},
		{
			name: "administrative and numeric sentences skipped",
			text: "Please allow 2-3 days for delivery. 100% brand new and high quality item. A sculpted brass frame that warms up every hallway.",
			want: "A sculpted brass frame that warms up every hallway.",
		},
		{
			name:  "packing list removed before picking a sentence",
			text:  "Package includes: 1 x Mirror, 2 x screws with extra long threads for walls",
			title: "Halo Vanity Mirror",
			want:  "Elevate your daily ritual with the Halo Vanity Mirror. Premium craftsmanship meets modern design in this exceptional LED mirror.",
		},
		{
			name:  "in the box section is not a description",
			text:  "in the box – 1 x mirror, 2 x hooks, and a soft polishing cloth for smudges",
			title: "x",
			want:  "Elevate your daily ritual with the x. Premium craftsmanship meets modern design in this exceptional product.",
		},
		{
			name: "what's included section dropped after the description",
			text: "A sculpted brass frame that warms up every hallway. What's included: two long mounting rails with a spirit level",
			want: "A sculpted brass frame that warms up every hallway.",
		},
		{
			name:  "fallback for non-mirror product",
			text:  "",
			title: "Brass Candle Holder",
			want:  "Elevate your daily ritual with the Brass Candle Holder. Premium craftsmanship meets modern design in this exceptional product.",
		},
		{
			name:  "fallback with blank title",
			text:  "short",
			title: "  ",
			want:  "Elevate your daily ritual with the product. Premium craftsmanship meets modern design in this exceptional product.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDescription(tt.text, tt.title))
		})
	}
}

func TestCleanDescription_TruncatesLongSentence(t *testing.T) {
	text := strings.Repeat("handcrafted oak frame ", 15)

	got := CleanDescription(text, "")

	require.True(t, strings.HasSuffix(got, "..."), got)
	assert.LessOrEqual(t, runeLen(got), maxDescriptionLen+3)
	body := strings.TrimSuffix(got, "...")
	assert.True(t, strings.HasPrefix(text, body+" "), "cut must land on a word boundary: %q", got)
}
