package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/inkshelf/inkshelf/internal/platform/database/schema"
)

// FieldQuery pairs a searchable book column with its per-field row cap.
// The fan-out plan is a data table: adding a searchable field is a plan
// change, not new control flow.
type FieldQuery struct {
	Field string
	Limit int
}

// Plan describes one gateway fan-out: the book columns to substring-match
// plus the caps for the relation-joined author and publisher lookups.
type Plan struct {
	Fields         []FieldQuery
	AuthorLimit    int
	PublisherLimit int
}

// SuggestPlan is the narrow, tightly capped plan behind the autocomplete
// dropdown. Caps keep candidate pools small enough for client-side scoring.
var SuggestPlan = Plan{
	Fields: []FieldQuery{
		{Field: schema.Book.Title, Limit: 30},
		{Field: schema.Book.Series, Limit: 20},
	},
	AuthorLimit:    30,
	PublisherLimit: 20,
}

// BrowsePlan is the wider plan behind the main result list.
var BrowsePlan = Plan{
	Fields: []FieldQuery{
		{Field: schema.Book.Title, Limit: 600},
		{Field: schema.Book.Series, Limit: 200},
		{Field: schema.Book.Notes, Limit: 200},
		{Field: schema.Book.WorkType, Limit: 100},
	},
	AuthorLimit:    300,
	PublisherLimit: 200,
}

// AskPlan grounds the AI relay: the fields a free-text question is most
// likely to reference, capped low so the grounding context stays bounded.
var AskPlan = Plan{
	Fields: []FieldQuery{
		{Field: schema.Book.Title, Limit: 30},
		{Field: schema.Book.Notes, Limit: 30},
	},
	AuthorLimit:    30,
	PublisherLimit: 0,
}

// Gateway fans a free-text query out into independent pattern-match lookups
// and merges the rows into one deduplicated set.
//
// # Failure Policy
//
// Fail-fast: the first sub-query error cancels the remaining lookups and
// fails the whole call. Partial results are never returned — a visibly
// failed search beats a silently incomplete one.
type Gateway struct {
	store SearchStore
}

// NewGateway constructs a fan-out gateway over the given search store.
func NewGateway(store SearchStore) *Gateway {
	return &Gateway{store: store}
}

// Search executes the plan for q. The returned set is deduplicated by book
// id (last write wins) and carries contributors for every row; it has no
// guaranteed order.
func (g *Gateway) Search(ctx context.Context, q string, plan Plan) ([]*Book, error) {
	group, groupCtx := errgroup.WithContext(ctx)

	// One slot per sub-query so the goroutines never share state.
	results := make([][]*Book, len(plan.Fields)+2)

	for i, fq := range plan.Fields {
		group.Go(func() error {
			rows, err := g.store.BooksByField(groupCtx, fq.Field, q, fq.Limit)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}

	if plan.AuthorLimit > 0 {
		group.Go(func() error {
			rows, err := g.store.BooksByAuthorName(groupCtx, q, plan.AuthorLimit)
			if err != nil {
				return err
			}
			results[len(plan.Fields)] = rows
			return nil
		})
	}

	if plan.PublisherLimit > 0 {
		group.Go(func() error {
			rows, err := g.store.BooksByPublisherName(groupCtx, q, plan.PublisherLimit)
			if err != nil {
				return err
			}
			results[len(plan.Fields)+1] = rows
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := MergeByID(results...)

	if err := g.store.AttachContributors(ctx, merged); err != nil {
		return nil, err
	}

	return merged, nil
}
