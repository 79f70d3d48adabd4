package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForHueEnds(t *testing.T) {
	lo := For(2, 1000000, 100)
	hi := For(999999, 1000000, 100)

	assert.Equal(t, 0.0, lo.Hue, "smallest start maps to hue 0")
	assert.InDelta(t, 1.0, hi.Hue, 1e-5, "largest start maps to hue 1")
	assert.NotEqual(t, lo.Hex(), hi.Hex(), "hue ends must be distinct colors")
}

func TestForHueClamped(t *testing.T) {
	assert.Equal(t, 0.0, For(1, 100, 10).Hue)
	assert.Equal(t, 1.0, For(500, 100, 10).Hue)
}

func TestForOpacityFallsWithSampleCount(t *testing.T) {
	sparse := For(50, 100, 10)
	dense := For(50, 100, 5000)

	assert.Greater(t, sparse.Opacity, dense.Opacity)
	assert.GreaterOrEqual(t, dense.Opacity, minOpacity)
	assert.LessOrEqual(t, sparse.Opacity, maxOpacity)
}

func TestForWidthBounds(t *testing.T) {
	for _, count := range []int{1, 100, 100000} {
		s := For(50, 100, count)
		assert.GreaterOrEqual(t, s.Width, minWidth)
		assert.LessOrEqual(t, s.Width, maxWidth)
	}
}

func TestHero(t *testing.T) {
	h := Hero()
	regular := For(50, 100, 1000)

	assert.True(t, h.Hero)
	assert.Greater(t, h.Width, regular.Width, "hero line is heavier")
	assert.Greater(t, h.Opacity, regular.Opacity, "hero line is more opaque")
	assert.Equal(t, heroHex, h.Hex(), "hero color is neutral")
}

func TestHexFormat(t *testing.T) {
	for _, v := range []int64{2, 333, 999999} {
		hex := For(v, 1000000, 100).Hex()
		require.Len(t, hex, 7)
		require.True(t, strings.HasPrefix(hex, "#"), "hex color %q missing #", hex)
	}
}

func TestForDegenerateInputs(t *testing.T) {
	s := For(5, 2, 0)
	assert.Equal(t, 0.0, s.Hue)
	assert.LessOrEqual(t, s.Opacity, maxOpacity)
}
