// Package argtypes defines the shared types for the promptcast argument
// engine. This file contains the prompt configuration, its three-layer merge
// semantics, and the text supplier types used for each conversational phase.
package argtypes

import (
	"strings"
	"time"
)

// PromptData is the information handed to every text supplier and modifier:
// the retry count of the turn being prompted, whether the session is in
// infinite-accumulation mode, the message that triggered this turn, and the
// phrase that failed (empty on the first turn).
type PromptData struct {
	RetryCount int
	Infinite   bool
	Message    *Message
	Phrase     string
}

// PromptText resolves the text for one conversational phase. A nil PromptText
// means the phase is silent.
type PromptText func(d PromptData) string

// TextModifier post-processes a resolved phase text.
type TextModifier func(d PromptData, text string) string

// StaticText returns a PromptText that always resolves to s.
func StaticText(s string) PromptText {
	return func(PromptData) string { return s }
}

// LineText returns a PromptText that flattens the given lines into one
// newline-joined block.
func LineText(lines ...string) PromptText {
	joined := strings.Join(lines, "\n")
	return func(PromptData) string { return joined }
}

// PromptConfig governs one prompting session. Scalar fields are pointers so
// that an unset field stays distinguishable from an explicit zero (a retries
// value of 0 and a disabled breakout are both legal settings) and the
// three-layer merge can override field by field.
type PromptConfig struct {
	Retries    *int
	Time       *time.Duration
	CancelWord *string
	StopWord   *string
	Optional   *bool
	Infinite   *bool
	Limit      *int
	Breakout   *bool

	Start   PromptText
	Retry   PromptText
	Timeout PromptText
	Ended   PromptText
	Cancel  PromptText

	ModifyStart   TextModifier
	ModifyRetry   TextModifier
	ModifyTimeout TextModifier
	ModifyEnded   TextModifier
	ModifyCancel  TextModifier
}

// Pointer helpers for building PromptConfig literals.

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Duration returns a pointer to v.
func Duration(v time.Duration) *time.Duration { return &v }

// DefaultPromptConfig returns the base configuration layer: one retry, a
// 30 second reply window, "cancel"/"stop" control words, breakout enabled,
// no infinite mode, and every phase silent.
func DefaultPromptConfig() *PromptConfig {
	return &PromptConfig{
		Retries:    Int(1),
		Time:       Duration(30 * time.Second),
		CancelWord: String("cancel"),
		StopWord:   String("stop"),
		Optional:   Bool(false),
		Infinite:   Bool(false),
		Limit:      Int(0),
		Breakout:   Bool(true),
	}
}

// Merge returns a copy of c with every field that overlay sets taking
// precedence. Unset overlay fields leave c's value in place; nil overlays
// are ignored. Neither receiver nor overlay is modified.
func (c *PromptConfig) Merge(overlay *PromptConfig) *PromptConfig {
	out := &PromptConfig{}
	if c != nil {
		*out = *c
	}
	if overlay == nil {
		return out
	}
	if overlay.Retries != nil {
		out.Retries = overlay.Retries
	}
	if overlay.Time != nil {
		out.Time = overlay.Time
	}
	if overlay.CancelWord != nil {
		out.CancelWord = overlay.CancelWord
	}
	if overlay.StopWord != nil {
		out.StopWord = overlay.StopWord
	}
	if overlay.Optional != nil {
		out.Optional = overlay.Optional
	}
	if overlay.Infinite != nil {
		out.Infinite = overlay.Infinite
	}
	if overlay.Limit != nil {
		out.Limit = overlay.Limit
	}
	if overlay.Breakout != nil {
		out.Breakout = overlay.Breakout
	}
	if overlay.Start != nil {
		out.Start = overlay.Start
	}
	if overlay.Retry != nil {
		out.Retry = overlay.Retry
	}
	if overlay.Timeout != nil {
		out.Timeout = overlay.Timeout
	}
	if overlay.Ended != nil {
		out.Ended = overlay.Ended
	}
	if overlay.Cancel != nil {
		out.Cancel = overlay.Cancel
	}
	if overlay.ModifyStart != nil {
		out.ModifyStart = overlay.ModifyStart
	}
	if overlay.ModifyRetry != nil {
		out.ModifyRetry = overlay.ModifyRetry
	}
	if overlay.ModifyTimeout != nil {
		out.ModifyTimeout = overlay.ModifyTimeout
	}
	if overlay.ModifyEnded != nil {
		out.ModifyEnded = overlay.ModifyEnded
	}
	if overlay.ModifyCancel != nil {
		out.ModifyCancel = overlay.ModifyCancel
	}
	return out
}

// RetryBudget returns the configured retry count, or the default of 1.
func (c *PromptConfig) RetryBudget() int {
	if c == nil || c.Retries == nil {
		return 1
	}
	return *c.Retries
}

// ReplyWindow returns the configured reply timeout, or the default of 30s.
func (c *PromptConfig) ReplyWindow() time.Duration {
	if c == nil || c.Time == nil {
		return 30 * time.Second
	}
	return *c.Time
}

// CancelKeyword returns the configured cancel word, or "cancel".
func (c *PromptConfig) CancelKeyword() string {
	if c == nil || c.CancelWord == nil {
		return "cancel"
	}
	return *c.CancelWord
}

// StopKeyword returns the configured stop word, or "stop".
func (c *PromptConfig) StopKeyword() string {
	if c == nil || c.StopWord == nil {
		return "stop"
	}
	return *c.StopWord
}

// IsOptional reports whether empty input short-circuits to the default.
func (c *PromptConfig) IsOptional() bool {
	return c != nil && c.Optional != nil && *c.Optional
}

// IsInfinite reports whether the session accumulates many values.
func (c *PromptConfig) IsInfinite() bool {
	return c != nil && c.Infinite != nil && *c.Infinite
}

// CollectLimit returns the accumulation limit for infinite sessions.
// Zero or negative means unbounded.
func (c *PromptConfig) CollectLimit() int {
	if c == nil || c.Limit == nil {
		return 0
	}
	return *c.Limit
}

// BreakoutEnabled reports whether replies are probed as new invocations.
// Breakout defaults to on.
func (c *PromptConfig) BreakoutEnabled() bool {
	if c == nil || c.Breakout == nil {
		return true
	}
	return *c.Breakout
}
