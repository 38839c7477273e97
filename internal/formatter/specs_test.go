package formatter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestExtractSpecifications(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Spec
	}{
		{
			name: "concatenated specs split at next key",
			in:   "Material: Metal Color: White Size: Large",
			want: []Spec{{"Material", "Metal"}, {"Color", "White"}, {"Size", "Large"}},
		},
		{
			name: "dash separators",
			in:   "Colour – Matte Black Finish - Brushed",
			want: []Spec{{"Color", "Matte Black"}, {"Finish", "Brushed"}},
		},
		{
			name: "longest key wins",
			in:   "Mirror Size: 60cm Bulb Type: LED Frame Material: Oak",
			want: []Spec{{"Mirror Size", "60cm"}, {"Bulb Type", "Led"}, {"Frame", "Oak"}},
		},
		{
			name: "first occurrence of a canonical key wins",
			in:   "Color: Black Size: M Colour: Gold",
			want: []Spec{{"Color", "Black"}, {"Size", "M"}},
		},
		{
			name: "noise phrases removed",
			in:   "Color: Premium Quality Warm White 2025 Shape: Round",
			want: []Spec{{"Color", "Warm White"}, {"Shape", "Round"}},
		},
		{
			name: "unknown key after value is cut off",
			in:   "Material: Metal Brand: Acme",
			want: []Spec{{"Material", "Metal"}},
		},
		{
			name: "packing list spillover removed",
			in:   "Voltage: 110-240V Package includes: 1 x Mirror",
			want: []Spec{{"Voltage", "110 240v"}},
		},
		{
			name: "dimension only value dropped",
			in:   "Size: 9 lights - 30 x 25 cm",
			want: []Spec{},
		},
		{
			name: "empty value dropped",
			in:   "Material: Color: Silver",
			want: []Spec{{"Color", "Silver"}},
		},
		{
			name: "canonical vocabulary",
			in:   "Wattage: 12W Suitable Locations: Bathroom Application: Makeup Switch Type: Touch",
			want: []Spec{{"Power", "12w"}, {"Suitable For", "Bathroom"}, {"Use", "Makeup"}, {"Switch", "Touch"}},
		},
		{
			name: "no specs",
			in:   "A beautiful mirror for your home",
			want: []Spec{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSpecifications(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractSpecifications() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractSpecifications_RejectsRunOnValues(t *testing.T) {
	in := "Material: " + strings.Repeat("solid brushed aluminium ", 5)
	assert.Empty(t, ExtractSpecifications(in))
}

func TestCleanValue(t *testing.T) {
	tests := map[string]string{
		"  metal  ":                "Metal",
		"USB-C":                    "Usb C",
		", warm white;":            "Warm White",
		"hot sale Free Shipping":   "",
		"NEW ARRIVAL brushed gold": "Brushed Gold",
		"élégant":                  "Élégant",
	}
	for in, want := range tests {
		assert.Equal(t, want, cleanValue(in), "cleanValue(%q)", in)
	}
}
