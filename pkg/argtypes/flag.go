// Package argtypes defines the shared types for the promptcast argument
// engine. This file contains the out-of-band control flags a prompt session
// can resolve to instead of a value.
package argtypes

// FlagKind discriminates the control flag variants.
type FlagKind int

const (
	// FlagCancel aborts the current argument and the enclosing invocation.
	FlagCancel FlagKind = iota + 1
	// FlagRetry abandons the current invocation and asks the dispatcher to
	// treat the captured input as a fresh one.
	FlagRetry
)

// Flag is a tagged out-of-band result. It is deliberately a distinct struct
// type so it can never be confused with a legitimate cast result such as
// nil, false, or an empty slice.
type Flag struct {
	kind  FlagKind
	input *Message
}

// CancelFlag returns a flag that aborts the enclosing invocation.
func CancelFlag() *Flag {
	return &Flag{kind: FlagCancel}
}

// RetryFlag returns a flag that hands the captured input back to the
// dispatcher for redispatch as a new invocation.
func RetryFlag(input *Message) *Flag {
	return &Flag{kind: FlagRetry, input: input}
}

// Kind returns the flag's variant.
func (f *Flag) Kind() FlagKind { return f.kind }

// Input returns the message captured by a retry flag, or nil.
func (f *Flag) Input() *Message { return f.input }

// IsCancel reports whether v is a cancel flag. Any non-flag value, including
// nil, reports false.
func IsCancel(v any) bool {
	f, ok := v.(*Flag)
	return ok && f != nil && f.kind == FlagCancel
}

// RetryInput reports whether v is a retry flag and returns the captured
// input message when it is.
func RetryInput(v any) (*Message, bool) {
	f, ok := v.(*Flag)
	if !ok || f == nil || f.kind != FlagRetry {
		return nil, false
	}
	return f.input, true
}
