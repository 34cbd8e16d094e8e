// Package caster implements the type interpreter: the primitive type specs
// (named lookup, casting function, enumeration, pattern) and the combinators
// built on top of them. Every spec implements argtypes.Type and follows one
// contract: a non-match is reported as ok=false, never as an error; errors
// are reserved for transport and environment failures bubbling out of custom
// casters.
package caster

import (
	"context"
	"regexp"
	"strings"

	"promptcast/pkg/argtypes"
)

// Phrase is the behavior of a nil type spec: any non-empty phrase is
// returned unchanged.
func Phrase() argtypes.Type {
	return Func(func(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
		if phrase == "" {
			return nil, false, nil
		}
		return phrase, true, nil
	})
}

// TypeOrDefault returns t, or the plain phrase type when t is nil.
func TypeOrDefault(t argtypes.Type) argtypes.Type {
	if t == nil {
		return Phrase()
	}
	return t
}

type funcType struct {
	fn argtypes.CastFunc
}

// Func wraps an arbitrary casting function as a type spec.
func Func(fn argtypes.CastFunc) argtypes.Type {
	return funcType{fn: fn}
}

func (t funcType) Cast(ctx context.Context, cc *argtypes.CastContext, phrase string) (any, bool, error) {
	return t.fn(ctx, cc, phrase)
}

type namedType struct {
	name string
}

// Named looks the name up in the context's type registry at cast time. An
// unresolved name degrades to the plain phrase behavior.
func Named(name string) argtypes.Type {
	return namedType{name: name}
}

func (t namedType) Cast(ctx context.Context, cc *argtypes.CastContext, phrase string) (any, bool, error) {
	if cc != nil && cc.Resolver != nil {
		if fn, ok := cc.Resolver.Lookup(t.name); ok {
			return fn(ctx, cc, phrase)
		}
	}
	if phrase == "" {
		return nil, false, nil
	}
	return phrase, true, nil
}

type enumType struct {
	groups        [][]string
	caseSensitive bool
}

// Enum matches the phrase case-insensitively against each alias group and
// resolves to the group's canonical first member. Groups must be non-empty.
func Enum(groups ...[]string) argtypes.Type {
	return enumType{groups: groups}
}

// EnumStrict is Enum with case-sensitive matching.
func EnumStrict(groups ...[]string) argtypes.Type {
	return enumType{groups: groups, caseSensitive: true}
}

// Words builds an Enum where every entry is its own single-member group,
// for the common alias-free case.
func Words(words ...string) argtypes.Type {
	groups := make([][]string, len(words))
	for i, w := range words {
		groups[i] = []string{w}
	}
	return enumType{groups: groups}
}

func (t enumType) Cast(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	for _, group := range t.groups {
		if len(group) == 0 {
			continue
		}
		for _, alias := range group {
			if t.matches(phrase, alias) {
				return group[0], true, nil
			}
		}
	}
	return nil, false, nil
}

func (t enumType) matches(phrase, alias string) bool {
	if t.caseSensitive {
		return phrase == alias
	}
	return strings.EqualFold(phrase, alias)
}

type patternType struct {
	re     *regexp.Regexp
	global bool
}

// Pattern applies the regex to the phrase and resolves to a PatternResult.
// Global patterns additionally collect every non-overlapping match across
// the phrase.
func Pattern(re *regexp.Regexp, global bool) argtypes.Type {
	return patternType{re: re, global: global}
}

func (t patternType) Cast(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	m := t.re.FindStringSubmatch(phrase)
	if m == nil {
		return nil, false, nil
	}
	result := &argtypes.PatternResult{
		Match:  m[0],
		Groups: m[1:],
	}
	if t.global {
		result.Matches = t.re.FindAllString(phrase, -1)
	}
	return result, true, nil
}
