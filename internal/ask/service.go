package ask

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/inkshelf/inkshelf/internal/catalog"
	"github.com/inkshelf/inkshelf/internal/platform/apperr"
	"github.com/inkshelf/inkshelf/internal/platform/completion"
)

// Service answers catalog questions: it gathers matching rows, builds the
// context block, and relays the grounded prompt to the completion API.
type Service struct {
	catalog   *catalog.Service
	completer completion.Completer
	logger    *slog.Logger
}

// NewService wires the relay. completer may be nil when no completion
// credential is configured; Ask then fails with a configuration error before
// touching the network.
func NewService(catalogService *catalog.Service, completer completion.Completer, logger *slog.Logger) *Service {
	return &Service{
		catalog:   catalogService,
		completer: completer,
		logger:    logger,
	}
}

// Ask validates the question, grounds it in catalog rows, and returns the
// generated answer with the matched rows echoed back.
func (service *Service) Ask(ctx context.Context, question string) (*Response, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperr.ValidationError("Missing question")
	}

	// The credential check precedes every side effect: a misconfigured
	// deployment must never attempt an upstream call.
	if service.completer == nil {
		return nil, apperr.Misconfigured("Completion API credential is not configured")
	}

	matches, err := service.catalog.Candidates(ctx, question, catalog.AskPlan)
	if err != nil {
		return nil, err
	}

	// Stable context order keeps repeated questions reproducible.
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	contextBlock := BuildContext(matches)

	answer, err := service.completer.Complete(ctx, systemPrompt, userPrompt(question, contextBlock))
	switch {
	case errors.Is(err, completion.ErrEmptyCompletion):
		answer = FallbackAnswer
	case err != nil:
		service.logger.ErrorContext(ctx, "completion_call_failed",
			slog.String("error", err.Error()),
			slog.Int("context_rows", len(matches)),
		)
		return nil, apperr.Upstream(err.Error(), err)
	}

	service.logger.InfoContext(ctx, "ask_answered",
		slog.Int("context_rows", len(matches)),
		slog.Int("answer_len", len(answer)),
	)

	return &Response{Answer: answer, Matches: matches}, nil
}
