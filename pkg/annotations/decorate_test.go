package annotations

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorativeAttrs_Disabled(t *testing.T) {
	assert.Nil(t, decorativeAttrs(Config{Randomize: false}))
}

func TestDecorativeAttrs_Enabled(t *testing.T) {
	attrs := decorativeAttrs(Config{Randomize: true})

	id, ok := attrs["x-random-uuid"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	emoji, ok := attrs["x-random-emoji"].(string)
	require.True(t, ok)
	assert.Contains(t, decorationEmojis, emoji)

	ts, ok := attrs["x-random-ts"].(float64)
	require.True(t, ok)
	assert.Greater(t, ts, 0.0)

	_, ok = attrs["x-random-seed"].(uint32)
	assert.True(t, ok)
}

func TestDecorativeAttrs_PowerRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		attrs := decorativeAttrs(Config{Randomize: true})
		power, ok := attrs["x-random-power"].(int)
		require.True(t, ok)
		require.GreaterOrEqual(t, power, 1)
		require.LessOrEqual(t, power, 9000)
	}
}

func TestDecorativeAttrs_EasterEggFrequency(t *testing.T) {
	const trials = 10000

	hits := 0
	for i := 0; i < trials; i++ {
		attrs := decorativeAttrs(Config{Randomize: true})
		if egg, ok := attrs["x-random-easter-egg"]; ok {
			assert.Equal(t, easterEggMessage, egg)
			hits++
		}
	}

	// ~5% of 10000 trials; bounds are ~7 standard deviations wide
	assert.Greater(t, hits, 350)
	assert.Less(t, hits, 650)
}
