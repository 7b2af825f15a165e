package browse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/browse"
)

// step advances the state through one event and returns the commands.
func step(t *testing.T, state *browse.State, event browse.Event) []browse.Command {
	t.Helper()
	next, commands := browse.Reduce(*state, event)
	*state = next
	return commands
}

/*
TestReduce_TypingDebounces verifies that text entry moves to debouncing and
arms a debounce timer for the new generation.
*/
func TestReduce_TypingDebounces(t *testing.T) {
	state := browse.NewState()

	commands := step(t, &state, browse.TextChanged{Text: "dun"})

	assert.Equal(t, browse.PhaseDebouncing, state.Phase)
	assert.Equal(t, "dun", state.Query)
	require.Len(t, commands, 1)
	assert.Equal(t, browse.StartDebounce{Gen: state.Gen}, commands[0])
}

/*
TestReduce_DebounceElapsedFansOut verifies that an up-to-date debounce expiry
fires both fetches for the current query.
*/
func TestReduce_DebounceElapsedFansOut(t *testing.T) {
	state := browse.NewState()
	step(t, &state, browse.TextChanged{Text: "dune"})

	commands := step(t, &state, browse.DebounceElapsed{Gen: state.Gen})

	assert.Equal(t, browse.PhaseFetching, state.Phase)
	require.Len(t, commands, 2)
	assert.Equal(t, browse.FetchSuggestions{Gen: state.Gen, Query: "dune"}, commands[0])
	assert.Equal(t, browse.FetchResults{Gen: state.Gen, Query: "dune"}, commands[1])
}

/*
TestReduce_StaleDebounceDropped verifies last-write-wins debounce: a timer
armed for an older generation is ignored after further typing.
*/
func TestReduce_StaleDebounceDropped(t *testing.T) {
	state := browse.NewState()
	step(t, &state, browse.TextChanged{Text: "dun"})
	staleGen := state.Gen
	step(t, &state, browse.TextChanged{Text: "dune"})

	commands := step(t, &state, browse.DebounceElapsed{Gen: staleGen})

	assert.Empty(t, commands)
	assert.Equal(t, browse.PhaseDebouncing, state.Phase)
}

/*
TestReduce_StaleResultsDiscarded verifies that results for a superseded query
never land: the state keeps waiting for the current generation.
*/
func TestReduce_StaleResultsDiscarded(t *testing.T) {
	state := browse.NewState()
	step(t, &state, browse.TextChanged{Text: "dune"})
	step(t, &state, browse.DebounceElapsed{Gen: state.Gen})
	staleGen := state.Gen

	// User keeps typing while the fetch is in flight.
	step(t, &state, browse.TextChanged{Text: "dune messiah"})

	commands := step(t, &state, browse.ResultsLoaded{Gen: staleGen, Count: 42})

	assert.Empty(t, commands)
	assert.Equal(t, browse.PhaseDebouncing, state.Phase)
	assert.Zero(t, state.ResultCount)
}

/*
TestReduce_SettledQueryArmsStableTimer verifies the save-after-stable flow:
results landing for the live generation settle the state and arm the
stability timer, whose expiry emits SaveRecent.
*/
func TestReduce_SettledQueryArmsStableTimer(t *testing.T) {
	state := browse.NewState()
	step(t, &state, browse.TextChanged{Text: "le guin"})
	step(t, &state, browse.DebounceElapsed{Gen: state.Gen})

	commands := step(t, &state, browse.ResultsLoaded{Gen: state.Gen, Count: 5})

	assert.Equal(t, browse.PhaseSettled, state.Phase)
	assert.Equal(t, 5, state.ResultCount)
	require.Len(t, commands, 1)
	assert.Equal(t, browse.StartStableTimer{Gen: state.Gen}, commands[0])

	commands = step(t, &state, browse.StableElapsed{Gen: state.Gen})
	require.Len(t, commands, 1)
	assert.Equal(t, browse.SaveRecent{Query: "le guin"}, commands[0])
}

/*
TestReduce_StaleStableTimerDropped verifies that editing the query disarms a
pending save: the old generation's stability expiry does nothing.
*/
func TestReduce_StaleStableTimerDropped(t *testing.T) {
	state := browse.NewState()
	step(t, &state, browse.TextChanged{Text: "le guin"})
	step(t, &state, browse.DebounceElapsed{Gen: state.Gen})
	step(t, &state, browse.ResultsLoaded{Gen: state.Gen, Count: 5})
	staleGen := state.Gen

	step(t, &state, browse.TextChanged{Text: "le guin hainish"})

	commands := step(t, &state, browse.StableElapsed{Gen: staleGen})
	assert.Empty(t, commands)
}

/*
TestReduce_SuggestionPick verifies a pick: immediate result fetch plus an
immediate save, no debounce, and the next echoed TextChanged swallowed.
*/
func TestReduce_SuggestionPick(t *testing.T) {
	state := browse.NewState()
	step(t, &state, browse.TextChanged{Text: "asim"})

	commands := step(t, &state, browse.SuggestionPicked{Value: "Isaac Asimov"})

	assert.Equal(t, browse.PhaseFetching, state.Phase)
	assert.Equal(t, "Isaac Asimov", state.Query)
	require.Len(t, commands, 2)
	assert.Equal(t, browse.FetchResults{Gen: state.Gen, Query: "Isaac Asimov"}, commands[0])
	assert.Equal(t, browse.SaveRecent{Query: "Isaac Asimov"}, commands[1])

	// 1. The input widget echoes the programmatic fill; swallowed once.
	genBefore := state.Gen
	commands = step(t, &state, browse.TextChanged{Text: "Isaac Asimov"})
	assert.Empty(t, commands)
	assert.Equal(t, genBefore, state.Gen)

	// 2. Real typing afterwards debounces as usual.
	commands = step(t, &state, browse.TextChanged{Text: "Isaac Asimov foundation"})
	require.Len(t, commands, 1)
	assert.IsType(t, browse.StartDebounce{}, commands[0])
}

/*
TestReduce_TypingAfterPickWithoutEcho verifies the line-client flow: a driver
that never echoes the picked value must not lose the first query typed after
a pick — it debounces immediately.
*/
func TestReduce_TypingAfterPickWithoutEcho(t *testing.T) {
	state := browse.NewState()
	step(t, &state, browse.TextChanged{Text: "asim"})
	step(t, &state, browse.SuggestionPicked{Value: "Isaac Asimov"})

	commands := step(t, &state, browse.TextChanged{Text: "dune"})

	require.NotEmpty(t, commands, "first typed query after a pick must start a debounce")
	assert.Equal(t, browse.StartDebounce{Gen: state.Gen}, commands[0])
	assert.Equal(t, browse.PhaseDebouncing, state.Phase)
	assert.Equal(t, "dune", state.Query)
	assert.False(t, state.SuppressNext)
}

/*
TestReduce_ClearShowsRandomShelf verifies that emptying the query returns to
idle and refreshes the discovery shelf.
*/
func TestReduce_ClearShowsRandomShelf(t *testing.T) {
	state := browse.NewState()
	step(t, &state, browse.TextChanged{Text: "dune"})

	commands := step(t, &state, browse.Cleared{})

	assert.Equal(t, browse.PhaseIdle, state.Phase)
	assert.Empty(t, state.Query)
	require.Len(t, commands, 1)
	assert.Equal(t, browse.LoadRandomShelf{}, commands[0])
}

/*
TestReduce_WhitespaceQueryIsEmpty verifies that an all-whitespace edit is
treated as a cleared box.
*/
func TestReduce_WhitespaceQueryIsEmpty(t *testing.T) {
	state := browse.NewState()

	commands := step(t, &state, browse.TextChanged{Text: "   "})

	assert.Equal(t, browse.PhaseIdle, state.Phase)
	require.Len(t, commands, 1)
	assert.Equal(t, browse.LoadRandomShelf{}, commands[0])
}

/*
TestReduce_FetchFailureKeepsResults verifies the failure policy: the error is
surfaced, the loading phase ends, the previous result count survives, and no
retry is scheduled.
*/
func TestReduce_FetchFailureKeepsResults(t *testing.T) {
	state := browse.NewState()
	step(t, &state, browse.TextChanged{Text: "dune"})
	step(t, &state, browse.DebounceElapsed{Gen: state.Gen})
	step(t, &state, browse.ResultsLoaded{Gen: state.Gen, Count: 12})

	step(t, &state, browse.TextChanged{Text: "dune messiah"})
	step(t, &state, browse.DebounceElapsed{Gen: state.Gen})

	commands := step(t, &state, browse.FetchFailed{Gen: state.Gen, Err: "connection reset"})

	assert.Empty(t, commands)
	assert.Equal(t, browse.PhaseSettled, state.Phase)
	assert.Equal(t, "connection reset", state.LastErr)
	assert.Equal(t, 12, state.ResultCount)

	// The next edit clears the error.
	step(t, &state, browse.TextChanged{Text: "dune messiah "})
	assert.Empty(t, state.LastErr)
}

/*
TestNormalizeRecent verifies history canonicalization.
*/
func TestNormalizeRecent(t *testing.T) {
	assert.Equal(t, "Dune", browse.NormalizeRecent("  Dune "))
	assert.Equal(t, "le guin", browse.NormalizeRecent("le   guin"))
	assert.Equal(t, "", browse.NormalizeRecent("   "))
}
