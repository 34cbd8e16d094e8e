package resolver

import (
	"context"
	"math"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"promptcast/pkg/argtypes"
)

// dateLayouts are tried in order by the "date" type.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
}

func (r *Resolver) addBuiltInTypes() {
	builtins := map[string]argtypes.CastFunc{
		"string":    castString,
		"lowercase": castLowercase,
		"uppercase": castUppercase,
		"charCodes": castCharCodes,
		"number":    castNumber,
		"integer":   castInteger,
		"bigint":    castBigint,
		"url":       castURL,
		"date":      castDate,
		"color":     castColor,
		"duration":  castDuration,
		"uuid":      castUUID,
		"semver":    castSemver,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, fn := range builtins {
		r.types[name] = fn
	}
}

func castString(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	return phrase, true, nil
}

func castLowercase(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	return strings.ToLower(phrase), true, nil
}

func castUppercase(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	return strings.ToUpper(phrase), true, nil
}

func castCharCodes(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	codes := make([]int, 0, len(phrase))
	for _, r := range phrase {
		codes = append(codes, int(r))
	}
	return codes, true, nil
}

func castNumber(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	n, err := strconv.ParseFloat(phrase, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, false, nil
	}
	return n, true, nil
}

func castInteger(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	n, err := strconv.Atoi(phrase)
	if err != nil {
		return nil, false, nil
	}
	return n, true, nil
}

func castBigint(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	n, ok := new(big.Int).SetString(phrase, 10)
	if !ok {
		return nil, false, nil
	}
	return n, true, nil
}

func castURL(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	// Chat clients wrap suppressed links in angle brackets
	trimmed := strings.TrimSuffix(strings.TrimPrefix(phrase, "<"), ">")
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false, nil
	}
	return u, true, nil
}

func castDate(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, phrase); err == nil {
			return t, true, nil
		}
	}
	return nil, false, nil
}

func castColor(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	hex := strings.TrimPrefix(phrase, "#")
	n, err := strconv.ParseInt(hex, 16, 64)
	if err != nil || n < 0 || n > 0xFFFFFF {
		return nil, false, nil
	}
	return int(n), true, nil
}

func castDuration(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	d, err := time.ParseDuration(phrase)
	if err != nil {
		return nil, false, nil
	}
	return d, true, nil
}

func castUUID(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	id, err := uuid.Parse(phrase)
	if err != nil {
		return nil, false, nil
	}
	return id, true, nil
}

func castSemver(_ context.Context, _ *argtypes.CastContext, phrase string) (any, bool, error) {
	if phrase == "" {
		return nil, false, nil
	}
	v, err := semver.NewVersion(phrase)
	if err != nil {
		return nil, false, nil
	}
	return v, true, nil
}
