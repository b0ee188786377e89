// Package ids mints synthetic identifiers for resume entities.
//
// Every component that needs to invent an id takes a Generator so callers
// (and tests) control whether ids are random or deterministic.
package ids

import (
	"strconv"

	"github.com/google/uuid"
)

// Generator produces an identifier for the given prefix, e.g. "work" or
// "skill-ref-2".
type Generator interface {
	New(prefix string) string
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(prefix string) string

// New calls f(prefix).
func (f GeneratorFunc) New(prefix string) string {
	return f(prefix)
}

// UUID returns a generator producing "<prefix>-<uuid v4>" identifiers.
func UUID() Generator {
	return GeneratorFunc(func(prefix string) string {
		return prefix + "-" + uuid.NewString()
	})
}

// Positional returns a generator that uses the prefix itself as the id.
// Callers that already encode a position in the prefix ("custom-item-3")
// get fully deterministic output.
func Positional() Generator {
	return GeneratorFunc(func(prefix string) string {
		return prefix
	})
}

// Sequence returns a generator appending a per-generator counter
// ("work-1", "work-2", ...). It is not safe for concurrent use.
func Sequence() Generator {
	counters := make(map[string]int)
	return GeneratorFunc(func(prefix string) string {
		counters[prefix]++
		return prefix + "-" + strconv.Itoa(counters[prefix])
	})
}
