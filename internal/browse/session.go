package browse

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Effects is everything a running session asks the outside world to do. The
// runtime never touches transports directly; callers supply an
// implementation (HTTP client, in-process service, test fake).
type Effects interface {
	// FetchSuggestions runs the suggestion pipeline and returns how many
	// entries came back.
	FetchSuggestions(ctx context.Context, query string) (int, error)
	// FetchResults runs the browse search and returns the result count.
	FetchResults(ctx context.Context, query string) (int, error)
	// SaveRecent records query in the recent-search history.
	SaveRecent(ctx context.Context, query string) error
	// LoadRandomShelf refreshes the idle discovery shelf.
	LoadRandomShelf(ctx context.Context) error
}

// Session drives the reducer: it serializes events, owns the debounce and
// stability timers, and executes commands through the supplied [Effects].
// All methods are safe for concurrent use.
type Session struct {
	effects Effects
	logger  *slog.Logger

	mu       sync.Mutex
	state    State
	debounce *time.Timer
	stable   *time.Timer
}

func NewSession(effects Effects, logger *slog.Logger) *Session {
	return &Session{
		effects: effects,
		logger:  logger,
		state:   NewState(),
	}
}

// State returns a snapshot of the current session state.
func (session *Session) State() State {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state
}

// Dispatch feeds one event through the reducer and executes the resulting
// commands. Async command completions re-enter through Dispatch, stamped
// with the generation that started them, so stale responses are discarded by
// the reducer rather than by callers.
func (session *Session) Dispatch(ctx context.Context, event Event) {
	session.mu.Lock()
	next, commands := Reduce(session.state, event)
	session.state = next
	session.mu.Unlock()

	for _, command := range commands {
		session.run(ctx, command)
	}
}

func (session *Session) run(ctx context.Context, command Command) {
	switch cmd := command.(type) {
	case StartDebounce:
		session.schedule(&session.debounce, cmd.Gen, DebounceDelay, func() {
			session.Dispatch(ctx, DebounceElapsed{Gen: cmd.Gen})
		})

	case StartStableTimer:
		session.schedule(&session.stable, cmd.Gen, StableDelay, func() {
			session.Dispatch(ctx, StableElapsed{Gen: cmd.Gen})
		})

	case FetchSuggestions:
		go func() {
			count, err := session.effects.FetchSuggestions(ctx, cmd.Query)
			if err != nil {
				session.Dispatch(ctx, FetchFailed{Gen: cmd.Gen, Err: err.Error()})
				return
			}
			session.Dispatch(ctx, SuggestionsLoaded{Gen: cmd.Gen, Count: count})
		}()

	case FetchResults:
		go func() {
			count, err := session.effects.FetchResults(ctx, cmd.Query)
			if err != nil {
				session.Dispatch(ctx, FetchFailed{Gen: cmd.Gen, Err: err.Error()})
				return
			}
			session.Dispatch(ctx, ResultsLoaded{Gen: cmd.Gen, Count: count})
		}()

	case SaveRecent:
		go func() {
			if err := session.effects.SaveRecent(ctx, cmd.Query); err != nil {
				// History is best-effort; a failed save never disturbs the
				// interactive loop.
				session.logger.WarnContext(ctx, "recent_search_save_failed",
					slog.String("query", cmd.Query),
					slog.String("error", err.Error()),
				)
			}
		}()

	case LoadRandomShelf:
		go func() {
			if err := session.effects.LoadRandomShelf(ctx); err != nil {
				session.logger.WarnContext(ctx, "random_shelf_load_failed",
					slog.String("error", err.Error()),
				)
			}
		}()
	}
}

// schedule arms (or re-arms) one of the session's timers. Commands execute
// outside the reducer's critical section, so a command carrying an already
// superseded generation can arrive here after a newer one; it must not
// cancel the live timer. Only a command for the current generation arms.
func (session *Session) schedule(slot **time.Timer, gen uint64, delay time.Duration, fire func()) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if gen != session.state.Gen {
		return
	}

	if *slot != nil {
		(*slot).Stop()
	}
	*slot = time.AfterFunc(delay, fire)
}

// Stop cancels any pending timers. In-flight fetches finish on their own and
// their completions are dropped as stale once the caller moves on.
func (session *Session) Stop() {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.debounce != nil {
		session.debounce.Stop()
	}
	if session.stable != nil {
		session.stable.Stop()
	}
}
