package formatter

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleDescriptions are shaped like real supplier copy.
var sampleDescriptions = []string{
	"",
	"Material: Metal Color: White Size: Large",
	"Size: 9 lights - 30 x 25 cm",
	`<div><p><strong>Product information:</strong></p><p>Material: Aluminium alloy Color: Silver Shape: Round</p>` +
		`<p>Mirror Size: 9 lights – 30 x 25 cm; 12 lights – 40 x 35 cm</p>` +
		`<p>Packing list: 1 x Mirror, 1 x USB cable, 2 x Screws</p><p>Product image: for reference only</p>` +
		`<ul><li>✓ Three colour temperatures for every makeup look</li><li>✓ Smart touch sensor with memory function</li></ul></div>`,
	"<p>Bring the salon home with a mirror that glows softly around the edges.</p><p>• Anti-fog coating keeps the glass clear • Dimmable warm light</p>",
	"<style>p{}</style><script>track()</script>Hot sale 2025!!! Free shipping",
	"Package includes: mirror*1; hooks*2; cleaning cloth Note: colours may vary",
	"★★★★★ " + strings.Repeat("• The quick brown fox jumps over the lazy dog ", 12),
	"Type: Wall Mounted Style: Modern Finish: Brushed Gold Voltage: 110V-240V Power: 15W Battery: 2000mAh",
	"<p>Dimensions: 60 x 80 cm</p><p>A bathroom centrepiece with a slim aluminium frame and a bright, even glow.</p>",
}

func TestFormat_ConcatenatedSpecs(t *testing.T) {
	got := Format("Material: Metal Color: White Size: Large", "")

	want := []Spec{{"Material", "Metal"}, {"Color", "White"}, {"Size", "Large"}}
	if diff := cmp.Diff(want, got.Specifications); diff != "" {
		t.Errorf("Specifications mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, got.Dimensions)
}

func TestFormat_DimensionsBecomeAvailableSizes(t *testing.T) {
	got := Format("Size: 9 lights - 30 x 25 cm", "")

	require.Len(t, got.Dimensions, 1)
	assert.Equal(t, Dimension{Label: "9 Lights", Value: "30 × 25 cm"}, got.Dimensions[0])
	assert.Equal(t, []Spec{{"Available Sizes", "9 Lights: 30 × 25 cm"}}, got.Specifications)
}

func TestFormat_SizeSpecSuppressesAvailableSizes(t *testing.T) {
	got := Format("Size: Large Color: Grey 40 x 60 cm", "")

	assert.Equal(t, []Spec{{"Size", "Large"}, {"Color", "Grey"}}, got.Specifications)
	assert.Equal(t, []Dimension{{Label: "Size", Value: "40 × 60 cm"}}, got.Dimensions)
}

func TestFormat_EmptyDescriptionFallsBack(t *testing.T) {
	got := Format("", "MIRROW Studio Mirror")

	assert.Contains(t, got.CleanDescription, "MIRROW Studio Mirror")
	assert.Contains(t, got.CleanDescription, "LED mirror")
	assert.True(t, got.Fallback("MIRROW Studio Mirror"))
	assert.Empty(t, got.Specifications)
	assert.Empty(t, got.Features)
	assert.Empty(t, got.IncludedItems)
	assert.Nil(t, got.Dimensions)
}

func TestFormat_FullDescription(t *testing.T) {
	got := Format(sampleDescriptions[3], "Glow Vanity Mirror")

	want := FormattedProductData{
		CleanDescription: got.CleanDescription,
		Specifications: []Spec{
			{"Available Sizes", "9 Lights: 30 × 25 cm | 12 Lights: 40 × 35 cm"},
			{"Material", "Aluminium Alloy"},
			{"Color", "Silver"},
			{"Shape", "Round"},
		},
		Features: []string{
			"Three colour temperatures for every makeup look",
			"Smart touch sensor with memory function",
		},
		IncludedItems: []string{"Mirror", "Usb Cable", "Screws"},
		Dimensions: []Dimension{
			{Label: "9 Lights", Value: "30 × 25 cm"},
			{Label: "12 Lights", Value: "40 × 35 cm"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, got.Fallback("Glow Vanity Mirror"))
}

func TestFormat_Properties(t *testing.T) {
	for _, raw := range sampleDescriptions {
		got := Format(raw, "Sample Mirror")

		assert.NotEmpty(t, got.CleanDescription, "input %q", raw)
		assert.LessOrEqual(t, len(got.Features), maxFeatures)
		assert.LessOrEqual(t, len(got.IncludedItems), maxIncludedItems)

		keys := make(map[string]bool)
		for _, s := range got.Specifications {
			assert.False(t, keys[s.Key], "duplicate key %q for input %q", s.Key, raw)
			keys[s.Key] = true
			assert.NotEmpty(t, s.Value)
		}
		for _, f := range got.Features {
			assert.Greater(t, runeLen(f), minFeatureLen)
			assert.Less(t, runeLen(f), maxFeatureLen)
		}

		if diff := cmp.Diff(got, Format(raw, "Sample Mirror")); diff != "" {
			t.Errorf("Format is not deterministic for %q:\n%s", raw, diff)
		}
	}
}

func TestFormat_Concurrent(t *testing.T) {
	want := make([]FormattedProductData, len(sampleDescriptions))
	for i, raw := range sampleDescriptions {
		want[i] = Format(raw, "Mirror")
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, raw := range sampleDescriptions {
				if diff := cmp.Diff(want[i], Format(raw, "Mirror")); diff != "" {
					t.Errorf("concurrent Format mismatch:\n%s", diff)
				}
			}
		}()
	}
	wg.Wait()
}

func TestFormattedProductData_JSON(t *testing.T) {
	b, err := json.Marshal(Format("", "Lamp"))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"cleanDescription": "Elevate your daily ritual with the Lamp. Premium craftsmanship meets modern design in this exceptional product.",
		"specifications": [],
		"features": [],
		"includedItems": [],
		"dimensions": null
	}`, string(b))
}

func TestShortDescription(t *testing.T) {
	raw := "<p>This illuminated vanity mirror brings studio quality lighting to every corner of your bathroom " +
		"and makes your morning routine feel effortless and calm every single day of the week, season after season, " +
		"with an energy saving panel that lasts for years and a frame that never tarnishes.</p>"
	full := Format(raw, "").CleanDescription
	require.Greater(t, runeLen(full), 80)

	got := ShortDescription(raw, "", 80)

	assert.LessOrEqual(t, runeLen(got), 83)
	require.True(t, strings.HasSuffix(got, "..."), got)
	body := strings.TrimSuffix(got, "...")
	assert.True(t, strings.HasPrefix(full, body+" "), "cut must land on a word boundary: %q", got)
}

func TestShortDescription_FitsUnchanged(t *testing.T) {
	raw := "{Limited} edition brass wall mirror for modern hallways."

	assert.Equal(t, "Limited edition brass wall mirror for modern hallways.", ShortDescription(raw, "", 100))
}

func TestShortDescription_DefaultLength(t *testing.T) {
	got := ShortDescription("", "An Extraordinarily Long Product Title For A Studio Mirror", 0)

	assert.LessOrEqual(t, runeLen(got), DefaultShortLength+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}
