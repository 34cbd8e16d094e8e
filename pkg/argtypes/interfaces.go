// Package argtypes defines the shared types for the promptcast argument
// engine. This file contains the collaborator interfaces consumed at the
// engine's boundary; implementations live in internal packages or belong to
// the surrounding dispatcher.
package argtypes

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by Transport.AwaitReply when no accepted reply
// arrives within the window. The prompt engine converts it into a cancel
// flag; every other transport error propagates as a failure.
var ErrTimeout = errors.New("await reply timed out")

// Transport sends prompt text into a conversation and awaits replies.
// AwaitReply blocks until a message satisfying accept arrives, the window
// elapses (ErrTimeout), or ctx is done.
type Transport interface {
	Send(ctx context.Context, conversationID, text string) (*Message, error)
	AwaitReply(ctx context.Context, conversationID string, accept func(*Message) bool, window time.Duration) (*Message, error)
}

// TypeRegistry resolves named type specs to their casters.
type TypeRegistry interface {
	Lookup(name string) (CastFunc, bool)
}

// Lookahead probes whether raw reply text parses as a new command
// invocation. Only consulted when breakout is enabled.
type Lookahead interface {
	LooksLikeCommand(content string) bool
}

// SessionRegistry tracks the conversations with an active prompt so the
// dispatcher can suppress command handling for a (conversation, author)
// pair while its session runs. The engine registers on entry and is
// responsible for unregistering on every exit path.
type SessionRegistry interface {
	Register(conversationID, authorID string)
	Unregister(conversationID, authorID string)
	Active(conversationID, authorID string) bool
}
