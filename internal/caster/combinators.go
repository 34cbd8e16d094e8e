package caster

import (
	"context"
	"fmt"
	"reflect"

	"promptcast/pkg/argtypes"
)

type unionType struct {
	types []argtypes.Type
}

// Union tries each sub-type in order and resolves to the first non-miss
// result. Order is significant; there is no backtracking once a sub-type
// matches.
func Union(types ...argtypes.Type) argtypes.Type {
	return unionType{types: types}
}

func (t unionType) Cast(ctx context.Context, cc *argtypes.CastContext, phrase string) (any, bool, error) {
	for _, sub := range t.types {
		v, ok, err := TypeOrDefault(sub).Cast(ctx, cc, phrase)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return v, true, nil
		}
	}
	return nil, false, nil
}

type tupleType struct {
	types []argtypes.Type
}

// Tuple evaluates every sub-type against the same phrase and resolves to
// the ordered list of results. A single miss fails the whole tuple.
func Tuple(types ...argtypes.Type) argtypes.Type {
	return tupleType{types: types}
}

func (t tupleType) Cast(ctx context.Context, cc *argtypes.CastContext, phrase string) (any, bool, error) {
	results := make([]any, 0, len(t.types))
	for _, sub := range t.types {
		v, ok, err := TypeOrDefault(sub).Cast(ctx, cc, phrase)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		results = append(results, v)
	}
	return results, true, nil
}

// Predicate decides whether a successfully cast value is acceptable.
type Predicate func(ctx context.Context, cc *argtypes.CastContext, phrase string, value any) bool

type validateType struct {
	inner argtypes.Type
	pred  Predicate
}

// Validate wraps a sub-type with a predicate; a false predicate forces a
// miss even though the sub-type succeeded.
func Validate(inner argtypes.Type, pred Predicate) argtypes.Type {
	return validateType{inner: inner, pred: pred}
}

func (t validateType) Cast(ctx context.Context, cc *argtypes.CastContext, phrase string) (any, bool, error) {
	v, ok, err := TypeOrDefault(t.inner).Cast(ctx, cc, phrase)
	if err != nil || !ok {
		return nil, false, err
	}
	if t.pred != nil && !t.pred(ctx, cc, phrase, v) {
		return nil, false, nil
	}
	return v, true, nil
}

// Range restricts a sub-type's numeric result to [min, max] when inclusive,
// or [min, max) otherwise. Strings and collections are measured by length.
func Range(inner argtypes.Type, min, max float64, inclusive bool) argtypes.Type {
	return Validate(inner, func(_ context.Context, _ *argtypes.CastContext, _ string, value any) bool {
		n, ok := rangeValue(value)
		if !ok {
			return false
		}
		if inclusive {
			return n >= min && n <= max
		}
		return n >= min && n < max
	})
}

// rangeValue coerces a cast result to the number Range compares: numbers as
// themselves, strings and collections by length.
func rangeValue(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case string:
		return float64(len(x)), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return float64(rv.Len()), true
	}
	return 0, false
}

type composeType struct {
	first      argtypes.Type
	second     argtypes.Type
	ignoreVoid bool
}

// Compose feeds the first type's result, rendered as a string, into the
// second type. A miss from the first type is passed through as empty input.
func Compose(first, second argtypes.Type) argtypes.Type {
	return composeType{first: first, second: second, ignoreVoid: true}
}

// ComposeStrict is Compose except that a miss from the first type fails the
// whole composition.
func ComposeStrict(first, second argtypes.Type) argtypes.Type {
	return composeType{first: first, second: second}
}

func (t composeType) Cast(ctx context.Context, cc *argtypes.CastContext, phrase string) (any, bool, error) {
	v, ok, err := TypeOrDefault(t.first).Cast(ctx, cc, phrase)
	if err != nil {
		return nil, false, err
	}
	if !ok && !t.ignoreVoid {
		return nil, false, nil
	}
	next := ""
	if ok {
		next = stringify(v)
	}
	return TypeOrDefault(t.second).Cast(ctx, cc, next)
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
