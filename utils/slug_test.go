package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Exterior Painting Tips":         "exterior-painting-tips",
		"  Spaces   everywhere  ":        "spaces-everywhere",
		"Cost of painting in 2024?":      "cost-of-painting-in-2024",
		"Texture & POP: what to choose!": "texture-pop-what-to-choose",
		"already-slugged":                "already-slugged",
		"":                               "",
		"!!!":                            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}
