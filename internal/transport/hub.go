// Package transport provides the in-memory conversation transport used by
// the demo shell and the engine tests. A Hub fans every message on a
// conversation out to the subscribers awaiting a reply there; AwaitReply
// applies the engine's accept filter so the just-sent prompt and foreign
// authors never satisfy a wait.
package transport

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"promptcast/internal/logger"
	"promptcast/pkg/argtypes"
)

// subscriberBuffer bounds how many undelivered messages a waiter can lag
// behind before further ones are dropped for it.
const subscriberBuffer = 16

// Hub is an in-memory implementation of argtypes.Transport. Safe for
// concurrent use across many conversations and sessions.
type Hub struct {
	mu       sync.Mutex
	subs     map[string][]chan *argtypes.Message
	onSend   func(*argtypes.Message)
	authorID string
	logger   *log.Logger
}

// NewHub creates a hub whose outgoing messages carry the given author ID.
func NewHub(authorID string) *Hub {
	return &Hub{
		subs:     make(map[string][]chan *argtypes.Message),
		authorID: authorID,
		logger:   logger.NewStyledLogger("Transport"),
	}
}

// OnSend registers a callback invoked for every outgoing message; the demo
// shell uses it to print prompts. Must be set before the hub is used.
func (h *Hub) OnSend(fn func(*argtypes.Message)) {
	h.onSend = fn
}

// Send publishes text to the conversation as the hub's author and returns
// the created message.
func (h *Hub) Send(_ context.Context, conversationID, text string) (*argtypes.Message, error) {
	msg := &argtypes.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		AuthorID:       h.authorID,
		Content:        text,
	}
	if h.onSend != nil {
		h.onSend(msg)
	}
	h.publish(msg)
	return msg, nil
}

// Receive injects a message from an external author into the conversation,
// waking any waiters there, and returns the created message.
func (h *Hub) Receive(conversationID, authorID, content string) *argtypes.Message {
	msg := &argtypes.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		AuthorID:       authorID,
		Content:        content,
	}
	h.publish(msg)
	return msg
}

// AwaitReply blocks until a message on the conversation satisfies accept,
// the window elapses, or ctx is done. A nil accept accepts everything.
func (h *Hub) AwaitReply(ctx context.Context, conversationID string, accept func(*argtypes.Message) bool, window time.Duration) (*argtypes.Message, error) {
	ch := h.subscribe(conversationID)
	defer h.unsubscribe(conversationID, ch)

	timer := time.NewTimer(window)
	defer timer.Stop()

	for {
		select {
		case msg := <-ch:
			if accept == nil || accept(msg) {
				return msg, nil
			}
		case <-timer.C:
			return nil, argtypes.ErrTimeout
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (h *Hub) publish(msg *argtypes.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[msg.ConversationID] {
		select {
		case ch <- msg:
		default:
			h.logger.Warn("dropping message for lagging waiter", "conversation", msg.ConversationID)
		}
	}
}

func (h *Hub) subscribe(conversationID string) chan *argtypes.Message {
	ch := make(chan *argtypes.Message, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[conversationID] = append(h.subs[conversationID], ch)
	return ch
}

func (h *Hub) unsubscribe(conversationID string, ch chan *argtypes.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subs[conversationID]
	for i, sub := range subs {
		if sub == ch {
			h.subs[conversationID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(h.subs[conversationID]) == 0 {
		delete(h.subs, conversationID)
	}
}
