package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"categories:*", "categories:active:page:1:limit:10", true},
		{"categories:*", "subcategories:active:page:1:limit:10", false},
		{"categories:active:42", "categories:active:42", true},
		{"categories:active:4?", "categories:active:42", true},
		{"categories:active:[0-3]2", "categories:active:42", false},
		{"*:active:42", "products:active:42", true},
		{"[", "[", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Match(tc.pattern, tc.key), "pattern %q key %q", tc.pattern, tc.key)
	}
}

func TestLikePrefix(t *testing.T) {
	like, exact := likePrefix("products:active:42")
	require.True(t, exact)
	require.Equal(t, "products:active:42", like)

	like, exact = likePrefix("products:*")
	require.False(t, exact)
	require.Equal(t, "products:%", like)

	like, exact = likePrefix("sub_cat%!:?x")
	require.False(t, exact)
	require.Equal(t, "sub!_cat!%!!:%", like)
}
