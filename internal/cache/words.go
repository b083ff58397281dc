package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/educreate/educreate-backend/internal/logger"
	"github.com/educreate/educreate-backend/internal/types"
)

// WordCache is a read-through cache for the per-level word catalog.
// The catalog is immutable reference data, so entries only expire by
// TTL. A nil *WordCache degrades to a permanent miss.
type WordCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewWordCache(log *logger.Logger) (*WordCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &WordCache{
		log: log.With("service", "WordCache"),
		rdb: rdb,
		ttl: 10 * time.Minute,
	}, nil
}

func catalogKey(level string) string {
	return "word_catalog:" + level
}

func (c *WordCache) GetCatalog(ctx context.Context, level string) ([]*types.Word, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, catalogKey(level)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("catalog cache read failed", "level", level, "error", err)
		}
		return nil, false
	}
	var words []*types.Word
	if err := json.Unmarshal(raw, &words); err != nil {
		c.log.Warn("catalog cache entry corrupt, dropping", "level", level, "error", err)
		_ = c.rdb.Del(ctx, catalogKey(level)).Err()
		return nil, false
	}
	return words, true
}

func (c *WordCache) SetCatalog(ctx context.Context, level string, words []*types.Word) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(words)
	if err != nil {
		c.log.Warn("catalog cache marshal failed", "level", level, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, catalogKey(level), raw, c.ttl).Err(); err != nil {
		c.log.Warn("catalog cache write failed", "level", level, "error", err)
	}
}

func (c *WordCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
