package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/searchlens/searchlens/internal/core"
)

func TestExpandPositional(t *testing.T) {
	url, err := Expand("Jane Doe", "https://example.com/search?q={}")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/search?q=Jane+Doe", url)
}

func TestExpandPositionalEscaping(t *testing.T) {
	url, err := Expand(`Jane "JD" Doe & Co`, "https://example.com/?q={}")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/?q=Jane+%22JD%22+Doe+%26+Co", url)
}

func TestExpandTrimsWhitespace(t *testing.T) {
	url, err := Expand("  Jane Doe  ", "https://example.com/?q={}")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/?q=Jane+Doe", url)
}

func TestExpandFirstLast(t *testing.T) {
	url, err := Expand("Jane Doe", "https://example.com/?first={first}&last={last}")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/?first=Jane&last=Doe", url)
}

func TestExpandFirstLastMultiTokenSurname(t *testing.T) {
	url, err := Expand("Jane van der Berg", "https://example.com/?first={first}&last={last}")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/?first=Jane&last=van+der+Berg", url)
}

func TestExpandSingleTokenFallsBackToFirstSlot(t *testing.T) {
	url, err := Expand("Madonna", "https://example.com/?first={first}&last={last}")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/?first=Madonna&last=", url)
}

func TestExpandEmptyName(t *testing.T) {
	_, err := Expand("", "https://example.com/?q={}")
	require.ErrorIs(t, err, core.ErrEmptyQuery)

	_, err = Expand("   ", "https://example.com/?q={}")
	require.ErrorIs(t, err, core.ErrEmptyQuery)
}

func TestExpandRejectsMalformedPatterns(t *testing.T) {
	cases := map[string]string{
		"mixed slots":     "https://example.com/?q={}&first={first}",
		"no slot":         "https://example.com/search",
		"two positionals": "https://example.com/?q={}&r={}",
	}
	for name, pattern := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Expand("Jane Doe", pattern)
			require.Error(t, err)
		})
	}
}
