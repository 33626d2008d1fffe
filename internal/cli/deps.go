// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/config"
	"github.com/taibuivan/ontvitals/internal/platform/constants"
	"github.com/taibuivan/ontvitals/internal/platform/migration"
	"github.com/taibuivan/ontvitals/internal/platform/postgres"
	"github.com/taibuivan/ontvitals/internal/platform/redis"
	"github.com/taibuivan/ontvitals/internal/platform/sec"
	"github.com/taibuivan/ontvitals/internal/reference"
	"github.com/taibuivan/ontvitals/internal/registry/death"
)

// NewDeps wires the commands to the configured database and signing keys.
// The environment is read on first use so --help works without it.
func NewDeps(out io.Writer, logger *slog.Logger) Deps {
	load := sync.OnceValues(config.Load)

	openPool := func(context context.Context) (*pgxpool.Pool, error) {
		cfg, err := load()
		if err != nil {
			return nil, err
		}
		return postgres.NewPool(context, cfg.DatabaseURL, logger)
	}

	return Deps{
		Out:    out,
		Logger: logger,

		DefaultDomain: func() string {
			if cfg, err := load(); err == nil {
				return cfg.DefaultDomain
			}
			return "CAON"
		},

		Migrator: func() (Migrator, error) {
			cfg, err := load()
			if err != nil {
				return nil, err
			}
			return migration.Open(cfg.DatabaseURL, cfg.MigrationPath, logger)
		},

		Tokens: func() (TokenMinter, error) {
			cfg, err := load()
			if err != nil {
				return nil, err
			}
			return sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
		},

		Matcher: func(context context.Context) (Matcher, func(), error) {
			pool, err := openPool(context)
			if err != nil {
				return nil, nil, err
			}
			return familytree.NewService(familytree.NewPostgresRepository(pool), nil), pool.Close, nil
		},

		Deaths: func(context context.Context) (DeathExporter, func(), error) {
			pool, err := openPool(context)
			if err != nil {
				return nil, nil, err
			}
			tree := familytree.NewService(familytree.NewPostgresRepository(pool), nil)
			return death.NewService(death.NewPostgresRepository(pool), tree, nil), pool.Close, nil
		},

		Cache: func(context context.Context) (CacheInvalidator, func(), error) {
			cfg, err := load()
			if err != nil {
				return nil, nil, err
			}
			client, err := redis.NewClient(context, cfg.RedisURL, logger)
			if err != nil {
				return nil, nil, err
			}
			release := func() { _ = client.Close() }
			return reference.NewCachedRepository(nil, client, cfg.ReferenceCacheTTL, nil), release, nil
		},
	}
}
