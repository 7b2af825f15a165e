package browse

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/inkshelf/inkshelf/internal/platform/constants"
	"github.com/inkshelf/inkshelf/internal/platform/dberr"
)

// RedisRecentStore keeps the recent-search history in a single bounded Redis
// list, newest first.
type RedisRecentStore struct {
	client *redis.Client
}

var _ RecentStore = (*RedisRecentStore)(nil)

func NewRedisRecentStore(client *redis.Client) *RedisRecentStore {
	return &RedisRecentStore{client: client}
}

// Add moves query to the front of the list. The LREM/LPUSH/LTRIM triple runs
// in one pipeline so concurrent writers cannot interleave a duplicate in
// between.
func (store *RedisRecentStore) Add(ctx context.Context, query string) error {
	query = NormalizeRecent(query)
	if query == "" {
		return nil
	}

	pipe := store.client.TxPipeline()
	pipe.LRem(ctx, constants.RedisKeyRecentSearches, 0, query)
	pipe.LPush(ctx, constants.RedisKeyRecentSearches, query)
	pipe.LTrim(ctx, constants.RedisKeyRecentSearches, 0, MaxRecentSearches-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return dberr.Wrap(err, "saving recent search")
	}
	return nil
}

// List returns the history, most recent first.
func (store *RedisRecentStore) List(ctx context.Context) ([]string, error) {
	entries, err := store.client.LRange(ctx, constants.RedisKeyRecentSearches, 0, MaxRecentSearches-1).Result()
	if err != nil {
		return nil, dberr.Wrap(err, "listing recent searches")
	}
	return entries, nil
}
