// Package testutils provides mock collaborators for promptcast testing:
// a scripted transport that replays a fixed reply sequence and a stub
// command lookahead.
package testutils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"promptcast/pkg/argtypes"
)

type scriptedReply struct {
	content string
	timeout bool
}

// ScriptedTransport implements argtypes.Transport against a fixed script of
// replies. Every AwaitReply pops the next scripted entry; an exhausted
// script or an explicit timeout entry yields argtypes.ErrTimeout. Sent
// messages are recorded for assertion.
type ScriptedTransport struct {
	mu sync.Mutex

	conversationID string
	authorID       string

	replies []scriptedReply
	next    int
	sent    int

	// Sent records every outgoing message in order.
	Sent []*argtypes.Message

	// SendErr, when set, is returned by the next Send call to simulate a
	// transport failure.
	SendErr error
}

// NewScriptedTransport creates a transport whose replies arrive from
// authorID on conversationID.
func NewScriptedTransport(conversationID, authorID string) *ScriptedTransport {
	return &ScriptedTransport{
		conversationID: conversationID,
		authorID:       authorID,
	}
}

// Reply queues reply contents, in order.
func (t *ScriptedTransport) Reply(contents ...string) *ScriptedTransport {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range contents {
		t.replies = append(t.replies, scriptedReply{content: c})
	}
	return t
}

// Timeout queues a turn on which no reply arrives.
func (t *ScriptedTransport) Timeout() *ScriptedTransport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies = append(t.replies, scriptedReply{timeout: true})
	return t
}

// Send records the outgoing message and returns it.
func (t *ScriptedTransport) Send(_ context.Context, conversationID, text string) (*argtypes.Message, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.SendErr != nil {
		err := t.SendErr
		t.SendErr = nil
		return nil, err
	}
	t.sent++
	msg := &argtypes.Message{
		ID:             fmt.Sprintf("sent-%d", t.sent),
		ConversationID: conversationID,
		AuthorID:       "bot",
		Content:        text,
	}
	t.Sent = append(t.Sent, msg)
	return msg, nil
}

// SentTexts returns the contents of every recorded outgoing message.
func (t *ScriptedTransport) SentTexts() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	texts := make([]string, len(t.Sent))
	for i, m := range t.Sent {
		texts[i] = m.Content
	}
	return texts
}

// AwaitReply pops the next scripted reply. The accept filter is applied the
// way a real transport would apply it; a rejected scripted reply falls
// through to the next entry.
func (t *ScriptedTransport) AwaitReply(_ context.Context, conversationID string, accept func(*argtypes.Message) bool, _ time.Duration) (*argtypes.Message, error) {
	for {
		t.mu.Lock()
		if t.next >= len(t.replies) {
			t.mu.Unlock()
			return nil, argtypes.ErrTimeout
		}
		entry := t.replies[t.next]
		t.next++
		n := t.next
		t.mu.Unlock()

		if entry.timeout {
			return nil, argtypes.ErrTimeout
		}
		msg := &argtypes.Message{
			ID:             fmt.Sprintf("reply-%d", n),
			ConversationID: conversationID,
			AuthorID:       t.authorID,
			Content:        entry.content,
		}
		if accept == nil || accept(msg) {
			return msg, nil
		}
	}
}

// StubLookahead reports any content starting with Prefix as a command.
type StubLookahead struct {
	Prefix string
}

// LooksLikeCommand implements argtypes.Lookahead.
func (s StubLookahead) LooksLikeCommand(content string) bool {
	return s.Prefix != "" && len(content) >= len(s.Prefix) && content[:len(s.Prefix)] == s.Prefix
}

// TriggerMessage builds the message that started an invocation, for use as
// cast context in tests.
func TriggerMessage(conversationID, authorID, content string) *argtypes.Message {
	return &argtypes.Message{
		ID:             "trigger-1",
		ConversationID: conversationID,
		AuthorID:       authorID,
		Content:        content,
	}
}
