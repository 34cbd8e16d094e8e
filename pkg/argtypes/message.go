// Package argtypes defines the shared types for the promptcast argument
// engine. This file contains the message and cast-context types exchanged
// between the caster, the prompt engine, and their collaborators.
package argtypes

import "context"

// Message is one message on a conversation, as seen by this engine.
// ID identity is what lets AwaitReply exclude the prompt the engine
// itself just sent.
type Message struct {
	ID             string
	ConversationID string
	AuthorID       string
	Content        string
}

// CastContext carries the contextual inputs every caster, default supplier,
// and text supplier receives explicitly. Prior holds the values of arguments
// already resolved for the same invocation, keyed by argument ID.
type CastContext struct {
	Message  *Message
	Prior    map[string]any
	Resolver TypeRegistry
}

// CastFunc turns a phrase into a typed value. ok=false reports a cast miss;
// err is reserved for transport or environment failures and never signals
// ordinary invalid input.
type CastFunc func(ctx context.Context, cc *CastContext, phrase string) (any, bool, error)

// Type is the interface every type spec and combinator implements.
// Implementations live in internal/caster.
type Type interface {
	Cast(ctx context.Context, cc *CastContext, phrase string) (any, bool, error)
}

// PatternResult is the unified result shape for regex type specs. Match and
// Groups are always populated from the first match; Matches stays empty
// unless the pattern was built in global mode.
type PatternResult struct {
	Match   string
	Groups  []string
	Matches []string
}
