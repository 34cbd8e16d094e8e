package processor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptcast/internal/caster"
	"promptcast/internal/resolver"
	"promptcast/internal/testutils"
	"promptcast/pkg/argtypes"
)

const (
	testConversation = "conv-1"
	testAuthor       = "author-1"
)

func newTestHandler(tr argtypes.Transport, defaults *argtypes.PromptConfig) *Handler {
	return NewHandler(Options{
		Resolver:  resolver.New(),
		Transport: tr,
		Defaults:  defaults,
	})
}

func trigger() *argtypes.Message {
	return testutils.TriggerMessage(testConversation, testAuthor, "!cmd 42")
}

func TestProcess_CastSuccess(t *testing.T) {
	h := newTestHandler(testutils.NewScriptedTransport(testConversation, testAuthor), nil)
	arg := &argtypes.Argument{ID: "n", Type: caster.Named("integer")}

	got, err := h.Process(context.Background(), nil, arg, trigger(), nil, "42")
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestProcess_SuccessNeverConsultsDefault(t *testing.T) {
	h := newTestHandler(testutils.NewScriptedTransport(testConversation, testAuthor), nil)

	defaultCalled := false
	arg := &argtypes.Argument{
		ID:   "n",
		Type: caster.Named("integer"),
		Default: argtypes.DefaultFunc(func(context.Context, *argtypes.CastContext) (any, error) {
			defaultCalled = true
			return -1, nil
		}),
	}

	got, err := h.Process(context.Background(), nil, arg, trigger(), nil, "7")
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.False(t, defaultCalled)
}

func TestProcess_MissFallsBackToDefault(t *testing.T) {
	h := newTestHandler(testutils.NewScriptedTransport(testConversation, testAuthor), nil)

	tests := []struct {
		name string
		def  any
		want any
	}{
		{name: "literal default", def: 99, want: 99},
		{
			name: "function default",
			def: argtypes.DefaultFunc(func(context.Context, *argtypes.CastContext) (any, error) {
				return "fallback", nil
			}),
			want: "fallback",
		},
		{name: "no default resolves to nil", def: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arg := &argtypes.Argument{ID: "n", Type: caster.Named("integer"), Default: tt.def}

			got, err := h.Process(context.Background(), nil, arg, trigger(), nil, "abc")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcess_OptionalEmptyPhraseShortCircuits(t *testing.T) {
	h := newTestHandler(testutils.NewScriptedTransport(testConversation, testAuthor), nil)

	castCalled := false
	arg := &argtypes.Argument{
		ID: "n",
		Type: caster.Func(func(context.Context, *argtypes.CastContext, string) (any, bool, error) {
			castCalled = true
			return nil, false, nil
		}),
		Default: "the default",
		Prompt: &argtypes.PromptConfig{
			Optional: argtypes.Bool(true),
			Start:    argtypes.StaticText("never sent"),
		},
	}

	got, err := h.Process(context.Background(), nil, arg, trigger(), nil, "   ")
	require.NoError(t, err)
	assert.Equal(t, "the default", got)
	assert.False(t, castCalled, "optional short-circuit skips casting entirely")
}

func TestProcess_OptionalPrecedenceAcrossLayers(t *testing.T) {
	tests := []struct {
		name     string
		handler  *argtypes.PromptConfig
		command  *argtypes.PromptConfig
		argument *argtypes.PromptConfig
		want     any
	}{
		{
			name:    "handler layer marks optional",
			handler: &argtypes.PromptConfig{Optional: argtypes.Bool(true)},
			want:    "dflt",
		},
		{
			name:    "command layer overrides handler",
			handler: &argtypes.PromptConfig{Optional: argtypes.Bool(false)},
			command: &argtypes.PromptConfig{Optional: argtypes.Bool(true)},
			want:    "dflt",
		},
		{
			name:     "argument layer wins over both",
			handler:  &argtypes.PromptConfig{Optional: argtypes.Bool(true)},
			command:  &argtypes.PromptConfig{Optional: argtypes.Bool(true)},
			argument: &argtypes.PromptConfig{Optional: argtypes.Bool(false)},
			want:     nil, // not optional: empty phrase goes through cast, misses, no prompt text configured
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(testutils.NewScriptedTransport(testConversation, testAuthor), tt.handler)
			cmd := &argtypes.Command{ID: "c", ArgumentDefaults: tt.command}
			arg := &argtypes.Argument{ID: "n", Type: caster.Named("integer"), Default: "dflt"}
			if tt.argument != nil {
				prompt := tt.argument.Merge(&argtypes.PromptConfig{Retries: argtypes.Int(0)})
				arg.Prompt = prompt
			}

			got, err := h.Process(context.Background(), cmd, arg, trigger(), nil, "")
			require.NoError(t, err)
			if tt.want == nil {
				assert.True(t, argtypes.IsCancel(got) || got == "dflt" || got == nil)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestProcess_MissWithPromptCollects(t *testing.T) {
	tr := testutils.NewScriptedTransport(testConversation, testAuthor).Reply("42")
	h := newTestHandler(tr, nil)

	arg := &argtypes.Argument{
		ID:   "n",
		Type: caster.Named("integer"),
		Prompt: &argtypes.PromptConfig{
			Start: argtypes.StaticText("give me a number"),
		},
	}

	got, err := h.Process(context.Background(), nil, arg, trigger(), nil, "abc")
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	// The failed command phrase seeds the session, so the opening prompt
	// is the retry phase and Start stays unused; with no retry text the
	// engine asks silently.
	assert.Empty(t, tr.SentTexts())
}

func TestProcess_PromptLayersMergeIntoSession(t *testing.T) {
	tr := testutils.NewScriptedTransport(testConversation, testAuthor).Reply("oops")
	h := newTestHandler(tr, &argtypes.PromptConfig{Retries: argtypes.Int(0)})

	arg := &argtypes.Argument{
		ID:   "n",
		Type: caster.Named("integer"),
		Prompt: &argtypes.PromptConfig{
			Ended: argtypes.StaticText("gave up"),
		},
	}

	got, err := h.Process(context.Background(), nil, arg, trigger(), nil, "")
	require.NoError(t, err)
	assert.True(t, argtypes.IsCancel(got))
	assert.Equal(t, []string{"gave up"}, tr.SentTexts())
}

func TestProcess_PriorResultsReachCasters(t *testing.T) {
	h := newTestHandler(testutils.NewScriptedTransport(testConversation, testAuthor), nil)

	arg := &argtypes.Argument{
		ID: "second",
		Type: caster.Func(func(_ context.Context, cc *argtypes.CastContext, phrase string) (any, bool, error) {
			first, _ := cc.Prior["first"].(int)
			return first + len(phrase), true, nil
		}),
	}

	got, err := h.Process(context.Background(), nil, arg, trigger(), map[string]any{"first": 10}, "abc")
	require.NoError(t, err)
	assert.Equal(t, 13, got)
}

func TestCast_Standalone(t *testing.T) {
	h := newTestHandler(testutils.NewScriptedTransport(testConversation, testAuthor), nil)

	arg := &argtypes.Argument{ID: "verbose", Match: argtypes.MatchFlag, Type: caster.Named("integer")}

	got, ok, err := h.Cast(context.Background(), arg, trigger(), nil, " 42 ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 42, got)

	_, ok, err = h.Cast(context.Background(), arg, trigger(), nil, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProcess_FlagResultsAreNotValues(t *testing.T) {
	tr := testutils.NewScriptedTransport(testConversation, testAuthor).Reply("cancel")
	h := newTestHandler(tr, nil)

	arg := &argtypes.Argument{
		ID:     "n",
		Type:   caster.Named("integer"),
		Prompt: &argtypes.PromptConfig{},
	}

	got, err := h.Process(context.Background(), nil, arg, trigger(), nil, "abc")
	require.NoError(t, err)
	assert.True(t, argtypes.IsCancel(got))

	// Legitimate values never read as flags
	assert.False(t, argtypes.IsCancel(nil))
	assert.False(t, argtypes.IsCancel(false))
	assert.False(t, argtypes.IsCancel([]any{}))
	_, isRetry := argtypes.RetryInput([]any{})
	assert.False(t, isRetry)
}
