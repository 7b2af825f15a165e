package browse

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// countingEffects counts result fetches and signals each one.
type countingEffects struct {
	mu      sync.Mutex
	results int
	signal  chan struct{}
}

func (c *countingEffects) FetchSuggestions(ctx context.Context, query string) (int, error) {
	return 0, nil
}

func (c *countingEffects) FetchResults(ctx context.Context, query string) (int, error) {
	c.mu.Lock()
	c.results++
	c.mu.Unlock()
	c.signal <- struct{}{}
	return 1, nil
}

func (c *countingEffects) SaveRecent(ctx context.Context, query string) error { return nil }

func (c *countingEffects) LoadRandomShelf(ctx context.Context) error { return nil }

/*
TestSession_StaleCommandCannotDisarmLiveTimer pins the command/timer ordering
guarantee: commands run outside the reducer's critical section, so a
superseded generation's StartDebounce can reach the timer slot after the
live one. It must be ignored, not re-arm the slot — otherwise its expiry is
discarded as stale and the session parks in debouncing with no fetch.
*/
func TestSession_StaleCommandCannotDisarmLiveTimer(t *testing.T) {
	effects := &countingEffects{signal: make(chan struct{}, 4)}
	session := NewSession(effects, slog.Default())
	defer session.Stop()

	ctx := context.Background()
	session.Dispatch(ctx, TextChanged{Text: "dune"})
	liveGen := session.State().Gen

	// A command stamped with an older generation arrives late.
	session.run(ctx, StartDebounce{Gen: liveGen - 1})

	// The live timer must still fire and the fetch must land.
	select {
	case <-effects.signal:
	case <-time.After(3 * time.Second):
		t.Fatal("live debounce timer was disarmed by a stale command")
	}

	effects.mu.Lock()
	assert.Equal(t, 1, effects.results)
	effects.mu.Unlock()

	// The completion event lands shortly after the fetch returns.
	assert.Eventually(t, func() bool {
		return session.State().Phase == PhaseSettled
	}, 3*time.Second, 10*time.Millisecond)
}
