// Package argtypes defines the shared types for the promptcast argument
// engine. This file contains the match mode enumeration describing how
// phrases are apportioned to an argument.
package argtypes

// MatchMode defines how a phrase is selected for an argument from the
// tokenized command text. The selection itself happens in the dispatcher;
// the engine only consults the mode where behavior depends on it (SEPARATE
// seeding of infinite prompts, FLAG/OPTION cast-only arguments).
type MatchMode int

const (
	// MatchPhrase consumes the next unclaimed phrase.
	MatchPhrase MatchMode = iota
	// MatchRest consumes the rest of the unclaimed text as one phrase.
	MatchRest
	// MatchSeparate casts each remaining phrase individually.
	MatchSeparate
	// MatchFlag matches the presence of a flag token; never prompts.
	MatchFlag
	// MatchOption matches a flag token followed by a value; never prompts.
	MatchOption
	// MatchText consumes the full text without the flags.
	MatchText
	// MatchContent consumes the full raw content.
	MatchContent
	// MatchNone consumes nothing; casting always starts from an empty phrase.
	MatchNone
)

// String returns the string representation of a MatchMode.
func (m MatchMode) String() string {
	switch m {
	case MatchPhrase:
		return "phrase"
	case MatchRest:
		return "rest"
	case MatchSeparate:
		return "separate"
	case MatchFlag:
		return "flag"
	case MatchOption:
		return "option"
	case MatchText:
		return "text"
	case MatchContent:
		return "content"
	case MatchNone:
		return "none"
	default:
		return "unknown"
	}
}
