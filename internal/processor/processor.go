// Package processor orchestrates argument resolution: the optional/default
// short-circuit, the single-shot cast, and the handoff to the prompt engine
// when casting fails and a prompt is configured. The Handler is the one
// long-lived component; it owns the collaborators and the handler-wide
// configuration layer.
package processor

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"promptcast/internal/caster"
	"promptcast/internal/logger"
	"promptcast/internal/prompt"
	"promptcast/pkg/argtypes"
)

// Options configures a Handler. Transport is required for prompting;
// everything else has a working default.
type Options struct {
	Resolver  argtypes.TypeRegistry
	Transport argtypes.Transport
	Lookahead argtypes.Lookahead
	Sessions  argtypes.SessionRegistry

	// Defaults is the handler-wide PromptConfig layer, merged beneath the
	// command and argument layers.
	Defaults *argtypes.PromptConfig
}

// Handler resolves arguments for the surrounding dispatcher. It is safe for
// concurrent use; per-invocation state lives in the call stack.
type Handler struct {
	resolver  argtypes.TypeRegistry
	transport argtypes.Transport
	sessions  argtypes.SessionRegistry
	engine    *prompt.Engine
	defaults  *argtypes.PromptConfig
	logger    *log.Logger
}

// NewHandler creates a Handler from opts.
func NewHandler(opts Options) *Handler {
	sessions := opts.Sessions
	if sessions == nil {
		sessions = prompt.NewSessions()
	}
	return &Handler{
		resolver:  opts.Resolver,
		transport: opts.Transport,
		sessions:  sessions,
		engine:    prompt.NewEngine(opts.Transport, opts.Lookahead, sessions),
		defaults:  opts.Defaults,
		logger:    logger.NewStyledLogger("ArgumentHandler"),
	}
}

// Sessions returns the active-session registry so the dispatcher can hold
// back command handling for pairs with a running prompt.
func (h *Handler) Sessions() argtypes.SessionRegistry {
	return h.sessions
}

// Process resolves one argument from its phrase. The result is the cast
// value, a resolved default, or a *argtypes.Flag the dispatcher must
// pattern-match before treating the result as a value. Errors are transport
// or environment failures only; ordinary invalid input never errors.
func (h *Handler) Process(ctx context.Context, cmd *argtypes.Command, arg *argtypes.Argument, msg *argtypes.Message, prior map[string]any, phrase string) (any, error) {
	phrase = strings.TrimSpace(phrase)
	cc := h.castContext(msg, prior)

	var commandDefaults *argtypes.PromptConfig
	if cmd != nil {
		commandDefaults = cmd.ArgumentDefaults
	}
	effective := argtypes.DefaultPromptConfig().
		Merge(h.defaults).
		Merge(commandDefaults).
		Merge(arg.Prompt)

	if phrase == "" && effective.IsOptional() {
		h.logger.Debug("optional argument with empty phrase, using default", "argument", arg.ID)
		return arg.ResolveDefault(ctx, cc)
	}

	value, ok, err := caster.TypeOrDefault(arg.Type).Cast(ctx, cc, phrase)
	if err != nil {
		return nil, err
	}
	logger.CastAttempt(arg.ID, phrase, ok)
	if !ok {
		if arg.Prompt != nil {
			return h.engine.Collect(ctx, arg, effective, cc, phrase)
		}
		return arg.ResolveDefault(ctx, cc)
	}
	return value, nil
}

// Cast runs only the type interpreter, without defaults or prompting. Match
// modes that never prompt (flag, option) use this entry point.
func (h *Handler) Cast(ctx context.Context, arg *argtypes.Argument, msg *argtypes.Message, prior map[string]any, phrase string) (any, bool, error) {
	return caster.TypeOrDefault(arg.Type).Cast(ctx, h.castContext(msg, prior), strings.TrimSpace(phrase))
}

func (h *Handler) castContext(msg *argtypes.Message, prior map[string]any) *argtypes.CastContext {
	return &argtypes.CastContext{
		Message:  msg,
		Prior:    prior,
		Resolver: h.resolver,
	}
}
