// Package jvm maps types of the ir graph to JVM internal names, erased
// descriptors and generic signatures.
//
// The Resolver computes internal names of declarations. The Writer emits the
// generic argument structure of a parameterized type and calls back into a
// TypeMapFunc for each argument; the Engine ties both together into the full
// recursive type mapper. None of them hold mutable state, so one instance can
// be shared by concurrent callers over the same immutable graph.
package jvm

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
	"github.com/willhansen/jvmsig/ir"
)

var modeDecoder = schema.NewDecoder()

func init() {
	modeDecoder.IgnoreUnknownKeys(false)
}

// Mode controls how a type is written.
type Mode struct {
	// SkipGenerics writes only the erased class token.
	SkipGenerics bool `schema:"skipGenerics"`

	// BoxPrimitives writes primitive classes as their wrapper classes.
	BoxPrimitives bool `schema:"box"`

	// SkipDeclarationSiteWildcards drops the variance marker a declaration-site
	// variance would otherwise add to an argument.
	SkipDeclarationSiteWildcards bool `schema:"skipWildcards"`

	// SkipDeclarationSiteWildcardsIfPossible drops it only where the wildcard
	// adds nothing: a final class under "out", or the top type under "in".
	SkipDeclarationSiteWildcardsIfPossible bool `schema:"skipWildcardsIfPossible"`
}

// Preset modes.
var (
	ModeDefault         = Mode{}
	ModeSuperType       = Mode{SkipDeclarationSiteWildcards: true}
	ModeGenericArgument = Mode{BoxPrimitives: true}
	ModeErased          = Mode{SkipGenerics: true}
	ModeValueParameter  = Mode{SkipDeclarationSiteWildcardsIfPossible: true}
)

var presets = []struct {
	name string
	mode Mode
}{
	{"default", ModeDefault},
	{"supertype", ModeSuperType},
	{"argument", ModeGenericArgument},
	{"erased", ModeErased},
	{"parameter", ModeValueParameter},
}

// ArgumentMode returns the mode used for the arguments of a type written in m.
// Arguments are always boxed; the if-possible wildcard rule carries through.
func (m Mode) ArgumentMode() Mode {
	return Mode{
		BoxPrimitives:                          true,
		SkipDeclarationSiteWildcardsIfPossible: m.SkipDeclarationSiteWildcardsIfPossible,
	}
}

// String returns the preset name of m, or its query form.
func (m Mode) String() string {
	for _, p := range presets {
		if p.mode == m {
			return p.name
		}
	}
	v := url.Values{}
	set := func(key string, b bool) {
		if b {
			v.Set(key, strconv.FormatBool(b))
		}
	}
	set("skipGenerics", m.SkipGenerics)
	set("box", m.BoxPrimitives)
	set("skipWildcards", m.SkipDeclarationSiteWildcards)
	set("skipWildcardsIfPossible", m.SkipDeclarationSiteWildcardsIfPossible)
	return v.Encode()
}

// ParseMode parses a preset name ("default", "supertype", "argument",
// "erased", "parameter") or a query form such as "box=true&skipWildcards=1".
// A query may start from a preset with "preset=NAME".
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ModeDefault, nil
	}
	if !strings.ContainsAny(s, "=&") {
		return presetMode(s)
	}

	values, err := url.ParseQuery(s)
	if err != nil {
		return Mode{}, ir.Wrap(err, ir.CodeInvalidConfig, "malformed mode query")
	}
	mode := ModeDefault
	if name := values.Get("preset"); name != "" {
		if mode, err = presetMode(name); err != nil {
			return Mode{}, err
		}
		values.Del("preset")
	}
	if err := modeDecoder.Decode(&mode, values); err != nil {
		return Mode{}, ir.Wrap(err, ir.CodeInvalidConfig, "invalid mode query").
			WithDetail("query", s)
	}
	return mode, nil
}

func presetMode(name string) (Mode, error) {
	for _, p := range presets {
		if p.name == name {
			return p.mode, nil
		}
	}
	return Mode{}, ir.Errorf(ir.CodeInvalidConfig, "unknown mode %q", name).
		WithDetail("mode", name)
}
