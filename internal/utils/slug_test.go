// internal/utils/slug_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Aviator Classic", "aviator-classic"},
		{"punctuation stripped", "Ray-Ban® Wayfarer!", "ray-ban-wayfarer"},
		{"collapses whitespace", "  Round   Metal  ", "round-metal"},
		{"collapses hyphen runs", "retro -- revival", "retro-revival"},
		{"trims leading and trailing hyphens", "-- Cat Eye --", "cat-eye"},
		{"keeps digits", "Model 2024 XL", "model-2024-xl"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}
