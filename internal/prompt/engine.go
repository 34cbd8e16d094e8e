package prompt

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"promptcast/internal/caster"
	"promptcast/internal/logger"
	"promptcast/pkg/argtypes"
)

// Engine conducts interactive collection sessions over an abstract
// transport. One Engine serves many concurrent sessions; all per-session
// state lives in the collect loop.
type Engine struct {
	transport argtypes.Transport
	lookahead argtypes.Lookahead
	sessions  argtypes.SessionRegistry
	logger    *log.Logger
}

// NewEngine creates a prompt engine. lookahead may be nil, in which case
// breakout checks are skipped even when enabled by configuration.
func NewEngine(transport argtypes.Transport, lookahead argtypes.Lookahead, sessions argtypes.SessionRegistry) *Engine {
	return &Engine{
		transport: transport,
		lookahead: lookahead,
		sessions:  sessions,
		logger:    logger.NewStyledLogger("PromptEngine"),
	}
}

// session is the transient bookkeeping for one collect invocation. It is
// created at entry and never escapes the loop.
type session struct {
	retryCount int
	infinite   bool
	values     []any
	lastMsg    *argtypes.Message
	lastInput  string
}

// Collect runs the prompting loop for arg until it produces a value, an
// accumulated list (infinite mode), or a control flag. cfg must already be
// the fully merged effective configuration. seed is the phrase the original
// command text supplied, empty if none; a non-empty seed consumes the first
// attempt, so the opening prompt uses the retry phase.
//
// Terminal outcomes: the cast value or value list, *argtypes.Flag for
// cancel/timeout/exhaustion/breakout, or an error for transport failures.
// The session registry entry is cleared on every exit path.
func (e *Engine) Collect(ctx context.Context, arg *argtypes.Argument, cfg *argtypes.PromptConfig, cc *argtypes.CastContext, seed string) (any, error) {
	msg := cc.Message
	e.sessions.Register(msg.ConversationID, msg.AuthorID)
	defer e.sessions.Unregister(msg.ConversationID, msg.AuthorID)

	s := &session{
		retryCount: 1,
		infinite:   cfg.IsInfinite() && !(arg.Match == argtypes.MatchSeparate && seed != ""),
		lastMsg:    msg,
		lastInput:  seed,
	}
	if seed != "" {
		// The command text itself was the first attempt
		s.retryCount++
	}
	if s.infinite {
		s.values = make([]any, 0)
	}

	argType := caster.TypeOrDefault(arg.Type)

	for {
		// SEND
		sent, err := e.sendTurnPrompt(ctx, arg.ID, cfg, s, msg)
		if err != nil {
			return nil, err
		}

		// AWAIT
		reply, err := e.transport.AwaitReply(ctx, msg.ConversationID, func(m *argtypes.Message) bool {
			if m.AuthorID != msg.AuthorID {
				return false
			}
			return sent == nil || m.ID != sent.ID
		}, cfg.ReplyWindow())
		if err != nil {
			if errors.Is(err, argtypes.ErrTimeout) {
				e.logger.Debug("reply window elapsed", "argument", arg.ID, "conversation", msg.ConversationID)
				if err := e.sendPhase(ctx, msg.ConversationID, cfg.Timeout, cfg.ModifyTimeout, e.data(s, s.lastMsg, s.lastInput)); err != nil {
					return nil, err
				}
				return argtypes.CancelFlag(), nil
			}
			return nil, err
		}

		// BREAKOUT
		if cfg.BreakoutEnabled() && e.lookahead != nil && e.lookahead.LooksLikeCommand(reply.Content) {
			e.logger.Debug("reply parses as a command, breaking out", "argument", arg.ID)
			return argtypes.RetryFlag(reply), nil
		}

		// CANCEL
		if strings.EqualFold(reply.Content, cfg.CancelKeyword()) {
			if err := e.sendPhase(ctx, msg.ConversationID, cfg.Cancel, cfg.ModifyCancel, e.data(s, reply, reply.Content)); err != nil {
				return nil, err
			}
			return argtypes.CancelFlag(), nil
		}

		// STOP (infinite only)
		if s.infinite && strings.EqualFold(reply.Content, cfg.StopKeyword()) {
			if len(s.values) == 0 {
				// A stop word before any value is a "try again", not an
				// empty collection
				s.retryCount++
				s.lastMsg, s.lastInput = reply, reply.Content
				continue
			}
			return s.values, nil
		}

		// CAST
		value, ok, err := argType.Cast(ctx, cc, reply.Content)
		if err != nil {
			return nil, err
		}
		logger.CastAttempt(arg.ID, reply.Content, ok)
		if !ok {
			if s.retryCount <= cfg.RetryBudget() {
				s.retryCount++
				s.lastMsg, s.lastInput = reply, reply.Content
				continue
			}
			if err := e.sendPhase(ctx, msg.ConversationID, cfg.Ended, cfg.ModifyEnded, e.data(s, reply, reply.Content)); err != nil {
				return nil, err
			}
			return argtypes.CancelFlag(), nil
		}

		if s.infinite {
			s.values = append(s.values, value)
			if limit := cfg.CollectLimit(); limit > 0 && len(s.values) >= limit {
				return s.values, nil
			}
			s.retryCount = 1
			s.lastMsg, s.lastInput = msg, reply.Content
			continue
		}
		return value, nil
	}
}

// sendTurnPrompt emits the start or retry prompt for the upcoming turn,
// when the turn calls for one: always on a genuine retry, and on a first
// turn unless the session is already accumulating values silently.
func (e *Engine) sendTurnPrompt(ctx context.Context, argID string, cfg *argtypes.PromptConfig, s *session, msg *argtypes.Message) (*argtypes.Message, error) {
	if s.retryCount == 1 && s.infinite && len(s.values) > 0 {
		return nil, nil
	}

	text := cfg.Start
	modify := cfg.ModifyStart
	phase := "start"
	if s.retryCount > 1 {
		text = cfg.Retry
		modify = cfg.ModifyRetry
		phase = "retry"
	}
	logger.PromptTurn(argID, phase, s.retryCount)

	resolved := resolveText(text, modify, e.data(s, s.lastMsg, s.lastInput))
	if resolved == "" {
		return nil, nil
	}
	return e.transport.Send(ctx, msg.ConversationID, resolved)
}

// sendPhase resolves and sends a terminal phase text, staying silent when
// none is configured.
func (e *Engine) sendPhase(ctx context.Context, conversationID string, text argtypes.PromptText, modify argtypes.TextModifier, d argtypes.PromptData) error {
	resolved := resolveText(text, modify, d)
	if resolved == "" {
		return nil
	}
	_, err := e.transport.Send(ctx, conversationID, resolved)
	return err
}

func (e *Engine) data(s *session, m *argtypes.Message, phrase string) argtypes.PromptData {
	return argtypes.PromptData{
		RetryCount: s.retryCount,
		Infinite:   s.infinite,
		Message:    m,
		Phrase:     phrase,
	}
}

func resolveText(text argtypes.PromptText, modify argtypes.TextModifier, d argtypes.PromptData) string {
	if text == nil {
		return ""
	}
	resolved := text(d)
	if modify != nil {
		resolved = modify(d, resolved)
	}
	return resolved
}
