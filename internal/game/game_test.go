package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	t.Run("shorthand keys", func(t *testing.T) {
		g, err := ParseKey("gi")
		require.NoError(t, err)
		assert.Equal(t, Genshin, g)

		g, err = ParseKey("sr")
		require.NoError(t, err)
		assert.Equal(t, StarRail, g)

		g, err = ParseKey("zz")
		require.NoError(t, err)
		assert.Equal(t, ZZZ, g)
	})

	t.Run("full slugs and case folding", func(t *testing.T) {
		g, err := ParseKey(" Genshin ")
		require.NoError(t, err)
		assert.Equal(t, Genshin, g)

		g, err = ParseKey("STARRAIL")
		require.NoError(t, err)
		assert.Equal(t, StarRail, g)
	})

	t.Run("unknown key fails", func(t *testing.T) {
		_, err := ParseKey("honkai3rd")
		assert.Error(t, err)
	})
}

func TestWiring(t *testing.T) {
	// Every game must be fully wired; a missing entry would panic at
	// runtime deep inside a sweep, so pin it here.
	for _, g := range All() {
		assert.NotEmpty(t, g.String())
		assert.NotEmpty(t, g.Key())
		assert.NotEmpty(t, g.Slug())
		assert.NotEmpty(t, g.ActID())
		assert.NotEmpty(t, g.Biz())
		assert.NotEmpty(t, g.SignHost())
		assert.NotEmpty(t, g.RedeemHost())
		assert.Contains(t, g.SignPath("sign"), "/sign")
	}
	assert.Equal(t, "hk4e_global", Genshin.Biz())
	assert.Equal(t, "https://sg-hkrpg-api.hoyolab.com", StarRail.RedeemHost())
}

func TestNormalizeLocale(t *testing.T) {
	l, ok := NormalizeLocale("EN-US")
	assert.True(t, ok)
	assert.Equal(t, "en-us", l)

	l, ok = NormalizeLocale("xx-yy")
	assert.False(t, ok)
	assert.Equal(t, "en-us", l)
}
