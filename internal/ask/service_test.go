package ask_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/ask"
	"github.com/inkshelf/inkshelf/internal/catalog"
	"github.com/inkshelf/inkshelf/internal/platform/apperr"
	"github.com/inkshelf/inkshelf/internal/platform/completion"
)

// fakeRepo grounds every question in a fixed set of matches.
type fakeRepo struct {
	matches []*catalog.Book
}

func (f *fakeRepo) ListBooks(ctx context.Context, limit, offset int) ([]*catalog.Book, int, error) {
	return f.matches, len(f.matches), nil
}

func (f *fakeRepo) GetBook(ctx context.Context, id int) (*catalog.Book, error) {
	return nil, errors.New("not found")
}

func (f *fakeRepo) BooksByField(ctx context.Context, field, q string, limit int) ([]*catalog.Book, error) {
	if field == "title" {
		return f.matches, nil
	}
	return nil, nil
}

func (f *fakeRepo) BooksByAuthorName(ctx context.Context, q string, limit int) ([]*catalog.Book, error) {
	return nil, nil
}

func (f *fakeRepo) BooksByPublisherName(ctx context.Context, q string, limit int) ([]*catalog.Book, error) {
	return nil, nil
}

func (f *fakeRepo) AttachContributors(ctx context.Context, books []*catalog.Book) error {
	return nil
}

// fakeCompleter records the prompts it was handed.
type fakeCompleter struct {
	calls  int
	system string
	user   string
	answer string
	err    error
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.system = system
	f.user = user
	return f.answer, f.err
}

func newAskService(matches []*catalog.Book, completer completion.Completer) *ask.Service {
	catalogService := catalog.NewService(&fakeRepo{matches: matches}, slog.Default())
	return ask.NewService(catalogService, completer, slog.Default())
}

/*
TestService_Ask_EmptyQuestion verifies the validation error with its literal
message and that no upstream call happens.
*/
func TestService_Ask_EmptyQuestion(t *testing.T) {
	completer := &fakeCompleter{}
	service := newAskService(nil, completer)

	for _, question := range []string{"", "   ", "\t\n"} {
		response, err := service.Ask(context.Background(), question)
		require.Error(t, err)
		assert.Nil(t, response)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "Missing question", appError.Message)
		assert.Equal(t, 400, appError.HTTPStatus)
	}

	assert.Zero(t, completer.calls)
}

/*
TestService_Ask_NotConfigured verifies the configuration error path: a valid
question against a nil completer fails as a server misconfiguration with no
network attempt possible.
*/
func TestService_Ask_NotConfigured(t *testing.T) {
	service := newAskService(nil, nil)

	response, err := service.Ask(context.Background(), "what do I own by Le Guin?")
	require.Error(t, err)
	assert.Nil(t, response)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_CONFIGURED", appError.Code)
	assert.Equal(t, 500, appError.HTTPStatus)
}

/*
TestService_Ask_ZeroMatchesStillProceeds verifies that an unmatched question
is still relayed, with the literal placeholder as the context block.
*/
func TestService_Ask_ZeroMatchesStillProceeds(t *testing.T) {
	completer := &fakeCompleter{answer: "I do not know."}
	service := newAskService(nil, completer)

	response, err := service.Ask(context.Background(), "anything about quantum gardening?")
	require.NoError(t, err)

	assert.Equal(t, 1, completer.calls)
	assert.Contains(t, completer.user, "No matching books found in the catalog.")
	assert.Equal(t, "I do not know.", response.Answer)
	assert.Empty(t, response.Matches)
}

/*
TestService_Ask_GroundsPromptInMatches verifies that matched rows are
rendered into the user prompt and echoed in the response.
*/
func TestService_Ask_GroundsPromptInMatches(t *testing.T) {
	matches := []*catalog.Book{fullBook()}
	completer := &fakeCompleter{answer: "You own the 1974 Harper & Row edition."}
	service := newAskService(matches, completer)

	response, err := service.Ask(context.Background(), "which edition of The Dispossessed do I have?")
	require.NoError(t, err)

	// 1. The context line appears verbatim in the user prompt.
	assert.Contains(t, completer.user,
		`"The Dispossessed" by Ursula K. Le Guin (1974), Harper & Row — Notes: first edition`)
	assert.Contains(t, completer.user, "which edition of The Dispossessed do I have?")

	// 2. The system prompt pins the model to the context.
	assert.True(t, strings.Contains(completer.system, "only"), "system prompt should restrict to supplied context")

	// 3. Matches are echoed.
	require.Len(t, response.Matches, 1)
	assert.Equal(t, "The Dispossessed", response.Matches[0].Title)
}

/*
TestService_Ask_EmptyCompletionFallsBack verifies the literal fallback answer
when the upstream returns empty content.
*/
func TestService_Ask_EmptyCompletionFallsBack(t *testing.T) {
	completer := &fakeCompleter{err: completion.ErrEmptyCompletion}
	service := newAskService(nil, completer)

	response, err := service.Ask(context.Background(), "anything signed?")
	require.NoError(t, err)
	assert.Equal(t, "I could not generate an answer.", response.Answer)
}

/*
TestService_Ask_UpstreamFailure verifies that an upstream error surfaces its
message in a structured 500.
*/
func TestService_Ask_UpstreamFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("completion: endpoint returned 429: rate limited")}
	service := newAskService(nil, completer)

	response, err := service.Ask(context.Background(), "anything signed?")
	require.Error(t, err)
	assert.Nil(t, response)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UPSTREAM_ERROR", appError.Code)
	assert.Contains(t, appError.Message, "rate limited")
}
