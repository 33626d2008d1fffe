// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ontvitals/internal/platform/constants"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
	"github.com/taibuivan/ontvitals/internal/platform/metrics"
)

// CachedRepository decorates a [Repository] with a Redis read-through cache.
//
// Values are stored as JSON under the ref:* prefixes for ttl. A Redis failure
// is logged and the lookup falls through to the wrapped repository, so a cache
// outage never takes the record pages down.
type CachedRepository struct {
	next    Repository
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewCachedRepository wraps next with a Redis cache.
func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration, collector *metrics.Metrics) *CachedRepository {
	return &CachedRepository{next: next, client: client, ttl: ttl, metrics: collector}
}

func (repository *CachedRepository) GetDomain(context context.Context, code string) (*Domain, error) {
	key := constants.RedisPrefixDomain + code
	domain := &Domain{}
	if repository.get(context, "domain", key, domain) {
		return domain, nil
	}

	domain, err := repository.next.GetDomain(context, code)
	if err != nil {
		return nil, err
	}
	repository.set(context, key, domain)
	return domain, nil
}

func (repository *CachedRepository) ListCounties(context context.Context, domain string) ([]County, error) {
	key := constants.RedisPrefixCounties + domain
	var counties []County
	if repository.get(context, "counties", key, &counties) {
		return counties, nil
	}

	counties, err := repository.next.ListCounties(context, domain)
	if err != nil {
		return nil, err
	}
	repository.set(context, key, counties)
	return counties, nil
}

func (repository *CachedRepository) ListTownships(context context.Context, domain, county string) ([]Township, error) {
	key := fmt.Sprintf("%s%s:%s", constants.RedisPrefixTownship, domain, county)
	var townships []Township
	if repository.get(context, "townships", key, &townships) {
		return townships, nil
	}

	townships, err := repository.next.ListTownships(context, domain, county)
	if err != nil {
		return nil, err
	}
	repository.set(context, key, townships)
	return townships, nil
}

// Invalidate drops every cached reference value of a domain.
func (repository *CachedRepository) Invalidate(context context.Context, domain string) error {
	keys := []string{constants.RedisPrefixDomain + domain, constants.RedisPrefixCounties + domain}

	iterator := repository.client.Scan(context, 0, constants.RedisPrefixTownship+domain+":*", 100).Iterator()
	for iterator.Next(context) {
		keys = append(keys, iterator.Val())
	}
	if err := iterator.Err(); err != nil {
		return fmt.Errorf("redis_reference_scan_failed: %w", err)
	}

	if err := repository.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_reference_delete_failed: %w", err)
	}
	return nil
}

// get decodes a cached value into target and reports a hit.
func (repository *CachedRepository) get(context context.Context, kind, key string, target any) bool {
	raw, err := repository.client.Get(context, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			ctxutil.GetLogger(context).WarnContext(context, "reference_cache_get_failed",
				slog.String("key", key), slog.Any("error", err))
		}
		repository.metrics.IncrementCache(kind, false)
		return false
	}

	if err := json.Unmarshal(raw, target); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "reference_cache_decode_failed",
			slog.String("key", key), slog.Any("error", err))
		repository.metrics.IncrementCache(kind, false)
		return false
	}

	repository.metrics.IncrementCache(kind, true)
	return true
}

func (repository *CachedRepository) set(context context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := repository.client.Set(context, key, raw, repository.ttl).Err(); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "reference_cache_set_failed",
			slog.String("key", key), slog.Any("error", err))
	}
}
