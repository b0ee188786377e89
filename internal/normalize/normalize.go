// Package normalize maps loosely shaped model output onto canonical resume
// entities. Unlike the strict validators in package contract it never
// fails on missing, extra or malformed fields: each field is looked up
// through an ordered list of synonym keys, blank strings count as absent,
// and entries left with no usable field are dropped.
package normalize

import (
	"time"

	"github.com/jonathan/resume-contract/internal/contract"
	"github.com/jonathan/resume-contract/internal/ids"
	"github.com/jonathan/resume-contract/internal/jsonx"
)

// Normalizer assembles parsed payloads. The entity normalizers themselves
// are pure; the Normalizer only owns the factory that stamps timestamps,
// fills defaults and runs the strict re-walk.
type Normalizer struct {
	factory     *contract.Factory
	factoryOpts []contract.FactoryOption
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithIDs sets the generator used for ids the factory mints.
func WithIDs(gen ids.Generator) Option {
	return func(n *Normalizer) {
		n.factoryOpts = append(n.factoryOpts, contract.WithIDs(gen))
	}
}

// WithClock sets the time source used for source and metadata timestamps.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.factoryOpts = append(n.factoryOpts, contract.WithClock(now))
	}
}

// New returns a Normalizer. Without options it uses random ids and the wall
// clock.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	n.factory = contract.NewFactory(n.factoryOpts...)
	return n
}

// Default is the Normalizer behind the package-level functions.
var Default = New()

// Factory returns the factory the normalizer builds documents with.
func (n *Normalizer) Factory() *contract.Factory {
	return n.factory
}

func object(v any) (*jsonx.Object, bool) {
	return jsonx.AsObject(v)
}

func array(v any) []any {
	items, _ := v.([]any)
	return items
}

// sanitize returns the trimmed string, or "" for blank or non-string values.
func sanitize(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return contract.NormalizeString(s)
}

// sanitizeScalar is sanitize that also accepts numbers.
func sanitizeScalar(v any) string {
	if n, ok := v.(float64); ok {
		return contract.FormatNumber(n)
	}
	return sanitize(v)
}

// pick returns the first non-blank string found under keys.
func pick(obj *jsonx.Object, keys []string) string {
	for _, key := range keys {
		if s := sanitize(obj.Value(key)); s != "" {
			return s
		}
	}
	return ""
}

// pickValue returns the first truthy value found under keys.
func pickValue(obj *jsonx.Object, keys []string) any {
	return contract.FirstTruthy(obj, keys...)
}

// extractText reads a scalar directly, or the first non-blank scalar under
// keys when v is an object.
func extractText(v any, keys []string) string {
	if s := sanitizeScalar(v); s != "" {
		return s
	}
	obj, ok := object(v)
	if !ok {
		return ""
	}
	for _, key := range keys {
		if s := sanitizeScalar(obj.Value(key)); s != "" {
			return s
		}
	}
	return ""
}

// stringArray keeps the text of every element of an array. Non-arrays
// yield an empty list.
func stringArray(v any) []string {
	out := []string{}
	for _, item := range array(v) {
		if s := extractText(item, textKeys); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// listOrSplit accepts an array (see stringArray) or a delimited string.
func listOrSplit(v any) []string {
	if s, ok := v.(string); ok {
		return contract.SplitInlineList(s)
	}
	return stringArray(v)
}

// bulletArray is stringArray with bullet synonyms and list markers removed.
func bulletArray(v any) []string {
	out := []string{}
	for _, item := range array(v) {
		if s := contract.StripListPrefix(extractText(item, bulletKeys)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NormalizeStrings trims every entry and drops blanks. The result is never
// nil.
func NormalizeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := contract.NormalizeString(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
