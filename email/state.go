package email

import "github.com/jamesainslie/go-segopt/token"

// State is the scanner state between two tokens.
type State uint8

const (
	// Seeking means no candidate is open.
	Seeking State = iota
	// CandidateOpen means a candidate is open and no '@' has been consumed.
	CandidateOpen
	// AtSeen means a candidate is open and its '@' has been consumed.
	AtSeen
)

func (s State) String() string {
	switch s {
	case Seeking:
		return "seeking"
	case CandidateOpen:
		return "candidate-open"
	case AtSeen:
		return "at-seen"
	}
	return "invalid"
}

// Action is what the scanner does with the current token.
type Action uint8

const (
	// Open starts a candidate at the current token.
	Open Action = iota
	// MarkAt consumes the candidate's '@'.
	MarkAt
	// Terminate merges the candidate ending before the current token, then
	// rescans the current token with no candidate open.
	Terminate
	// Extend adds the current token to the candidate.
	Extend
	// Reset abandons any candidate and moves past the current token.
	Reset
)

func (a Action) String() string {
	switch a {
	case Open:
		return "open"
	case MarkAt:
		return "mark-at"
	case Terminate:
		return "terminate"
	case Extend:
		return "extend"
	case Reset:
		return "reset"
	}
	return "invalid"
}

// Transition returns the action for cur and the state after it. prev is the
// token immediately before cur and is only consulted in AtSeen, where it
// always belongs to the open candidate.
//
// Rules are evaluated in precedence order: open, mark '@', terminate, extend,
// reset. Terminate leaves the scanner in Seeking without consuming cur.
func Transition(s State, prev, cur token.Token) (Action, State) {
	atom := IsAddressAtom(cur)

	if s == Seeking {
		if atom {
			return Open, CandidateOpen
		}
		return Reset, Seeking
	}

	if s == CandidateOpen && cur.Text == "@" {
		return MarkAt, AtSeen
	}

	// The token right after '@' never terminates; a bad token there abandons
	// the candidate through Reset instead.
	if s == AtSeen && prev.Text != "@" && !atom && !InBodyCharset(cur.Text) {
		return Terminate, Seeking
	}

	if atom || InBodyCharset(cur.Text) {
		return Extend, s
	}
	return Reset, Seeking
}
