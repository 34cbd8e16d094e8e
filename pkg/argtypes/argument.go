// Package argtypes defines the shared types for the promptcast argument
// engine. This file contains the argument specification and the minimal
// command shape the processor needs for configuration layering.
package argtypes

import "context"

// DefaultFunc supplies a default value from the triggering context and the
// arguments already resolved for the same invocation.
type DefaultFunc func(ctx context.Context, cc *CastContext) (any, error)

// Argument is the immutable specification for one argument of a command.
type Argument struct {
	// ID keys the resolved value in the invocation's result mapping.
	ID string

	// Match selects how phrases are apportioned to this argument.
	Match MatchMode

	// Type interprets the phrase. A nil Type behaves as the "string" type:
	// any non-empty phrase is returned as-is.
	Type Type

	// Flags holds the flag tokens for MatchFlag and MatchOption arguments.
	Flags []string

	// Index and Unordered control positional selection in the dispatcher.
	Index     *int
	Unordered bool

	// Limit caps how many phrases a multi-phrase match mode may consume.
	// Zero means unbounded.
	Limit int

	// Default is the fallback when casting misses and no prompt runs, and
	// the short-circuit value for optional arguments given empty input.
	// Either a literal value or a DefaultFunc.
	Default any

	// Prompt, when non-nil, enables interactive collection on a cast miss.
	Prompt *PromptConfig
}

// Command carries the per-command configuration layer the processor merges
// between the handler-wide defaults and the argument's own prompt config.
// The full command model (aliases, prefix matching, dispatch) lives in the
// dispatcher and is not this engine's concern.
type Command struct {
	ID               string
	ArgumentDefaults *PromptConfig
}

// ResolveDefault resolves an Argument's default: DefaultFunc values are
// invoked, anything else is returned as-is.
func (a *Argument) ResolveDefault(ctx context.Context, cc *CastContext) (any, error) {
	if a == nil || a.Default == nil {
		return nil, nil
	}
	if fn, ok := a.Default.(DefaultFunc); ok {
		return fn(ctx, cc)
	}
	if fn, ok := a.Default.(func(ctx context.Context, cc *CastContext) (any, error)); ok {
		return fn(ctx, cc)
	}
	return a.Default, nil
}
