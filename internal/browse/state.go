// Package browse models the search/browse lifecycle as an explicit state
// machine: a pure reducer over typed events, emitting typed commands for the
// runtime to execute. Keeping the transitions pure makes the timing rules
// (debounce, stale-response discard, save-after-stable) unit-testable without
// clocks or goroutines.
package browse

import (
	"strings"
	"time"
)

// Timing rules for the interactive loop.
const (
	// DebounceDelay is how long typing must pause before queries fire.
	DebounceDelay = 120 * time.Millisecond
	// StableDelay is how long a settled query must survive unchanged before
	// it is recorded in the recent-search history.
	StableDelay = 700 * time.Millisecond
)

// Phase names the lifecycle stage of the browse session.
type Phase string

const (
	// PhaseIdle: empty query, showing the random discovery shelf.
	PhaseIdle Phase = "idle"
	// PhaseDebouncing: text present, waiting out the typing pause.
	PhaseDebouncing Phase = "debouncing"
	// PhaseFetching: suggestion and result queries are in flight.
	PhaseFetching Phase = "fetching"
	// PhaseSettled: results for the current query are on screen.
	PhaseSettled Phase = "settled"
)

// State is the complete, serializable session state. It is a value: Reduce
// returns a new State and never mutates its input.
type State struct {
	Phase Phase
	Query string

	// Gen increments on every user-initiated change. Async events carry the
	// generation they were started under; a mismatch means the response is
	// stale and must be dropped.
	Gen uint64

	// SuppressNext swallows the one echo TextChanged that an input widget
	// emits after a suggestion pick fills it programmatically. Only an echo
	// carrying the picked value itself is swallowed; drivers that never echo
	// (a line-oriented client) lose nothing.
	SuppressNext bool

	// ResultCount is the size of the last loaded result set.
	ResultCount int

	// LastErr holds the message of the most recent failed fetch, cleared on
	// the next user change.
	LastErr string
}

// NewState returns the initial idle state.
func NewState() State {
	return State{Phase: PhaseIdle}
}

// # Events

// Event is one input to the reducer: either a user action or the completion
// of an async command. Async events carry the generation of the command that
// spawned them.
type Event interface{ isEvent() }

// TextChanged reports the search input's new contents.
type TextChanged struct{ Text string }

// DebounceElapsed reports that the typing pause outlasted [DebounceDelay].
type DebounceElapsed struct{ Gen uint64 }

// SuggestionsLoaded reports a completed suggestion fetch.
type SuggestionsLoaded struct {
	Gen   uint64
	Count int
}

// ResultsLoaded reports a completed result fetch.
type ResultsLoaded struct {
	Gen   uint64
	Count int
}

// FetchFailed reports a failed suggestion or result fetch.
type FetchFailed struct {
	Gen uint64
	Err string
}

// SuggestionPicked reports that the user selected a dropdown entry; Value is
// the machine value to re-query with.
type SuggestionPicked struct{ Value string }

// StableElapsed reports that a settled query survived [StableDelay] unchanged.
type StableElapsed struct{ Gen uint64 }

// Cleared reports that the user emptied the search box.
type Cleared struct{}

func (TextChanged) isEvent()       {}
func (DebounceElapsed) isEvent()   {}
func (SuggestionsLoaded) isEvent() {}
func (ResultsLoaded) isEvent()     {}
func (FetchFailed) isEvent()       {}
func (SuggestionPicked) isEvent()  {}
func (StableElapsed) isEvent()     {}
func (Cleared) isEvent()           {}

// # Commands

// Command is one side effect the runtime must perform on behalf of a
// transition. Commands that can complete asynchronously carry the generation
// to stamp onto their completion event.
type Command interface{ isCommand() }

// StartDebounce schedules a [DebounceElapsed] after [DebounceDelay].
type StartDebounce struct{ Gen uint64 }

// FetchSuggestions runs the suggestion pipeline for Query.
type FetchSuggestions struct {
	Gen   uint64
	Query string
}

// FetchResults runs the browse search for Query.
type FetchResults struct {
	Gen   uint64
	Query string
}

// StartStableTimer schedules a [StableElapsed] after [StableDelay].
type StartStableTimer struct{ Gen uint64 }

// SaveRecent records Query in the recent-search history.
type SaveRecent struct{ Query string }

// LoadRandomShelf refreshes the idle-state discovery shelf.
type LoadRandomShelf struct{}

func (StartDebounce) isCommand()    {}
func (FetchSuggestions) isCommand() {}
func (FetchResults) isCommand()     {}
func (StartStableTimer) isCommand() {}
func (SaveRecent) isCommand()       {}
func (LoadRandomShelf) isCommand()  {}

// Reduce applies one event to the state and returns the successor state plus
// the commands the transition demands. It is pure and total: unknown or
// stale events produce the input state unchanged with no commands.
func Reduce(state State, event Event) (State, []Command) {
	switch ev := event.(type) {
	case TextChanged:
		if state.SuppressNext {
			state.SuppressNext = false
			// Only the programmatic echo of the picked value is swallowed.
			// Anything else is real typing and debounces as usual, even as
			// the first event after a pick.
			if ev.Text == state.Query {
				return state, nil
			}
		}
		return reduceText(state, ev.Text)

	case Cleared:
		return reduceText(state, "")

	case SuggestionPicked:
		state.Gen++
		state.Query = ev.Value
		state.Phase = PhaseFetching
		state.SuppressNext = true
		state.LastErr = ""
		// A deliberate pick is worth remembering immediately; no debounce and
		// no suggestion round-trip for the filled-in query.
		return state, []Command{
			FetchResults{Gen: state.Gen, Query: ev.Value},
			SaveRecent{Query: ev.Value},
		}

	case DebounceElapsed:
		if ev.Gen != state.Gen || state.Phase != PhaseDebouncing {
			return state, nil
		}
		state.Phase = PhaseFetching
		return state, []Command{
			FetchSuggestions{Gen: state.Gen, Query: state.Query},
			FetchResults{Gen: state.Gen, Query: state.Query},
		}

	case SuggestionsLoaded:
		// Suggestions do not advance the phase; they only decorate it.
		return state, nil

	case ResultsLoaded:
		if ev.Gen != state.Gen {
			return state, nil
		}
		state.Phase = PhaseSettled
		state.ResultCount = ev.Count
		if strings.TrimSpace(state.Query) == "" {
			return state, nil
		}
		return state, []Command{StartStableTimer{Gen: state.Gen}}

	case StableElapsed:
		if ev.Gen != state.Gen || state.Phase != PhaseSettled {
			return state, nil
		}
		return state, []Command{SaveRecent{Query: state.Query}}

	case FetchFailed:
		if ev.Gen != state.Gen {
			return state, nil
		}
		state.Phase = PhaseSettled
		state.LastErr = ev.Err
		return state, nil
	}

	return state, nil
}

// reduceText is the shared transition for any user edit of the query text,
// including clearing it.
func reduceText(state State, text string) (State, []Command) {
	state.Gen++
	state.Query = text
	state.SuppressNext = false
	state.LastErr = ""

	if strings.TrimSpace(text) == "" {
		state.Phase = PhaseIdle
		state.Query = ""
		state.ResultCount = 0
		return state, []Command{LoadRandomShelf{}}
	}

	state.Phase = PhaseDebouncing
	return state, []Command{StartDebounce{Gen: state.Gen}}
}
