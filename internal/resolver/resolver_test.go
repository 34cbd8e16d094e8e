package resolver

import (
	"context"
	"math/big"
	"net/url"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptcast/pkg/argtypes"
)

func cast(t *testing.T, r *Resolver, name, phrase string) (any, bool) {
	t.Helper()
	fn, ok := r.Lookup(name)
	require.True(t, ok, "type %s must be registered", name)
	v, ok, err := fn(context.Background(), nil, phrase)
	require.NoError(t, err)
	return v, ok
}

func TestNew_RegistersBuiltIns(t *testing.T) {
	r := New()
	for _, name := range []string{
		"string", "lowercase", "uppercase", "charCodes", "number", "integer",
		"bigint", "url", "date", "color", "duration", "uuid", "semver",
	} {
		_, ok := r.Lookup(name)
		assert.True(t, ok, "built-in %s missing", name)
	}
	assert.Equal(t, len(r.Types()), r.Len())
}

func TestNewEmpty(t *testing.T) {
	r := NewEmpty()
	assert.Equal(t, 0, r.Len())
	_, ok := r.Lookup("string")
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	r := NewEmpty()

	err := r.Register("", func(context.Context, *argtypes.CastContext, string) (any, bool, error) {
		return nil, false, nil
	})
	assert.Error(t, err)

	err = r.Register("custom", nil)
	assert.Error(t, err)

	err = r.Register("custom", func(context.Context, *argtypes.CastContext, string) (any, bool, error) {
		return "v1", true, nil
	})
	require.NoError(t, err)

	// Re-registering replaces
	err = r.Register("custom", func(context.Context, *argtypes.CastContext, string) (any, bool, error) {
		return "v2", true, nil
	})
	require.NoError(t, err)

	v, ok := cast(t, r, "custom", "x")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestStringTypes(t *testing.T) {
	r := New()

	tests := []struct {
		typ    string
		phrase string
		want   any
		wantOK bool
	}{
		{typ: "string", phrase: "hello", want: "hello", wantOK: true},
		{typ: "string", phrase: "", wantOK: false},
		{typ: "lowercase", phrase: "HeLLo", want: "hello", wantOK: true},
		{typ: "uppercase", phrase: "HeLLo", want: "HELLO", wantOK: true},
		{typ: "charCodes", phrase: "AB", want: []int{65, 66}, wantOK: true},
		{typ: "charCodes", phrase: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.phrase, func(t *testing.T) {
			got, ok := cast(t, r, tt.typ, tt.phrase)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNumericTypes(t *testing.T) {
	r := New()

	tests := []struct {
		typ    string
		phrase string
		want   any
		wantOK bool
	}{
		{typ: "number", phrase: "3.25", want: 3.25, wantOK: true},
		{typ: "number", phrase: "abc", wantOK: false},
		{typ: "number", phrase: "NaN", wantOK: false},
		{typ: "number", phrase: "Inf", wantOK: false},
		{typ: "integer", phrase: "42", want: 42, wantOK: true},
		{typ: "integer", phrase: "-7", want: -7, wantOK: true},
		{typ: "integer", phrase: "4.2", wantOK: false},
		{typ: "integer", phrase: "abc", wantOK: false},
		{typ: "color", phrase: "#FF0000", want: 0xFF0000, wantOK: true},
		{typ: "color", phrase: "crimson", wantOK: false},
		{typ: "color", phrase: "#1000000", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.phrase, func(t *testing.T) {
			got, ok := cast(t, r, tt.typ, tt.phrase)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBigint(t *testing.T) {
	r := New()

	got, ok := cast(t, r, "bigint", "123456789012345678901234567890")
	require.True(t, ok)
	want, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Equal(t, 0, want.Cmp(got.(*big.Int)))

	_, ok = cast(t, r, "bigint", "not a number")
	assert.False(t, ok)
}

func TestURLType(t *testing.T) {
	r := New()

	got, ok := cast(t, r, "url", "https://example.com/path")
	require.True(t, ok)
	assert.Equal(t, "example.com", got.(*url.URL).Host)

	// Suppressed-embed angle brackets are stripped
	got, ok = cast(t, r, "url", "<https://example.com>")
	require.True(t, ok)
	assert.Equal(t, "example.com", got.(*url.URL).Host)

	_, ok = cast(t, r, "url", "not a url")
	assert.False(t, ok)

	_, ok = cast(t, r, "url", "/relative/only")
	assert.False(t, ok)
}

func TestDateType(t *testing.T) {
	r := New()

	got, ok := cast(t, r, "date", "2026-08-29")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), got)

	got, ok = cast(t, r, "date", "2026-08-29T10:30:00Z")
	require.True(t, ok)
	assert.Equal(t, 10, got.(time.Time).Hour())

	_, ok = cast(t, r, "date", "yesterday")
	assert.False(t, ok)
}

func TestDurationType(t *testing.T) {
	r := New()

	got, ok := cast(t, r, "duration", "1h30m")
	require.True(t, ok)
	assert.Equal(t, 90*time.Minute, got)

	_, ok = cast(t, r, "duration", "90 minutes")
	assert.False(t, ok)
}

func TestUUIDType(t *testing.T) {
	r := New()

	id := uuid.New()
	got, ok := cast(t, r, "uuid", id.String())
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = cast(t, r, "uuid", "not-a-uuid")
	assert.False(t, ok)
}

func TestSemverType(t *testing.T) {
	r := New()

	got, ok := cast(t, r, "semver", "1.2.3-rc.1")
	require.True(t, ok)
	assert.Equal(t, "1.2.3-rc.1", got.(*semver.Version).String())

	_, ok = cast(t, r, "semver", "not.a.version")
	assert.False(t, ok)
}

func TestEmptyPhraseMissesEverywhere(t *testing.T) {
	r := New()
	for _, name := range r.Types() {
		_, ok := cast(t, r, name, "")
		assert.False(t, ok, "type %s must miss on empty phrase", name)
	}
}
