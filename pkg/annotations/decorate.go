package annotations

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Decorative attributes are namespaced under x-random-* and carry no
// semantics; they exist purely for demonstration and traceability.
const (
	decorationPrefix = "x-random-"

	easterEggMessage     = "may_the_force_be_with_you"
	easterEggProbability = 0.05
	maxPower             = 9000
)

var decorationEmojis = []string{"✨", "🔥", "🌈", "🛰️", "🦄", "💫", "🤖", "🍀", "☕"}

// decorativeAttrs generates the random attribute bag, or nil when
// randomization is disabled.
func decorativeAttrs(cfg Config) map[string]any {
	if !cfg.Randomize {
		return nil
	}

	attrs := map[string]any{
		decorationPrefix + "uuid":  uuid.NewString(),
		decorationPrefix + "emoji": decorationEmojis[rand.IntN(len(decorationEmojis))],
		decorationPrefix + "power": rand.IntN(maxPower) + 1,
		decorationPrefix + "ts":    float64(time.Now().UnixNano()) / float64(time.Second),
		decorationPrefix + "seed":  rand.Uint32(),
	}

	if rand.Float64() < easterEggProbability {
		attrs[decorationPrefix+"easter-egg"] = easterEggMessage
	}

	return attrs
}
