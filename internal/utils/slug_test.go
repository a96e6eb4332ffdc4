package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"The Forest Hiker", "the-forest-hiker"},
		{"The Sea  Explorer!", "the-sea-explorer"},
		{"  Leading & trailing  ", "leading-trailing"},
		{"UPPER", "upper"},
		{"tour 2024", "tour-2024"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}
