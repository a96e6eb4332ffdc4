package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Foo@Example.COM":   "foo@example.com",
		"  user@x.com  ":    "user@x.com",
		"already@lower.com": "already@lower.com",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeEmail(in), "input %q", in)
	}

	// case variants collapse to the same account key
	assert.Equal(t, NormalizeEmail("Foo@x.com"), NormalizeEmail("foo@X.COM"))
}
