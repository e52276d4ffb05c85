package annotations

import "strconv"

// Value is the evaluation carried by a piece of feedback. It is a closed
// three-way union: numbers are interpreted downstream as scores, strings as
// labels and booleans as assertions. This package passes the raw value
// through without validation or coercion.
type Value interface {
	// String renders the value for the human-readable span message.
	String() string

	raw() any
}

// Score is a numeric evaluation, e.g. a quality rating in [0, 1].
func Score(v float64) Value { return scoreValue(v) }

// Label is a categorical evaluation, e.g. "helpful" or "off-topic".
func Label(v string) Value { return labelValue(v) }

// Assertion is a boolean evaluation, e.g. "factually correct".
func Assertion(v bool) Value { return assertionValue(v) }

type scoreValue float64

func (v scoreValue) raw() any       { return float64(v) }
func (v scoreValue) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

type labelValue string

func (v labelValue) raw() any       { return string(v) }
func (v labelValue) String() string { return strconv.Quote(string(v)) }

type assertionValue bool

func (v assertionValue) raw() any       { return bool(v) }
func (v assertionValue) String() string { return strconv.FormatBool(bool(v)) }
