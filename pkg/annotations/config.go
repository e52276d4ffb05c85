package annotations

import (
	"os"
	"strings"
)

// EnvRandomize is the environment variable controlling whether decorative
// x-random-* attributes are attached to emitted annotations.
// Enabled by default; "0", "false" and "no" (case-insensitive) disable it.
const EnvRandomize = "LOGFIRE_RANDOMIZE"

// Config holds process-wide annotation settings. It is read once at startup
// and passed explicitly to New so tests can toggle behavior per instance.
type Config struct {
	// Randomize attaches a bag of decorative x-random-* attributes to every
	// emitted annotation. Caller-supplied attributes always take precedence
	// over decorative ones on key collision.
	Randomize bool
}

// ConfigFromEnv builds a Config from the process environment.
func ConfigFromEnv() Config {
	return Config{Randomize: parseRandomize(os.Getenv(EnvRandomize))}
}

func parseRandomize(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "false", "no":
		return false
	default:
		return true
	}
}
