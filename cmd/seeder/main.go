package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"toronto_stays/internal/adapters/observability"
	redisad "toronto_stays/internal/adapters/redis"
	"toronto_stays/internal/app"
	"toronto_stays/internal/domain"
	"toronto_stays/internal/shared"
	mysqlrepo "toronto_stays/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "seeder")
	observability.Serve(cfg.MetricsAddr, observability.InitRegistry())

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	catalog, err := loadCatalog(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load catalog failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(sqlx.NewDb(db, "mysql"))
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	seed := app.NewSeedService(repo, cache)

	res, err := run(ctx, seed, catalog, cfg.SeedWorkers)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding aborted")
	}
	log.Info().
		Int64("hosts_ok", res.HostsOK).
		Int64("hosts_failed", res.HostsFailed).
		Int64("listings_ok", res.ListingsOK).
		Int64("listings_failed", res.ListingsFailed).
		Msg("seeding completed")
	_ = cache.Close()
	_ = db.Close()
}

func loadCatalog(path string) (domain.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Catalog{}, err
	}
	defer f.Close()

	var c domain.Catalog
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return c, nil
}

type seeder interface {
	SeedHost(ctx context.Context, h domain.CatalogHost) error
	SeedListing(ctx context.Context, l domain.CatalogListing) error
}

type result struct {
	HostsOK, HostsFailed       int64
	ListingsOK, ListingsFailed int64
}

// run seeds every host before any listing so listing rows find their host.
// Per-item failures are logged and counted; only a cancelled ctx aborts.
func run(ctx context.Context, s seeder, c domain.Catalog, workers int) (result, error) {
	var res result
	for _, h := range c.Hosts {
		err := s.SeedHost(ctx, h)
		observability.ObserveSeed("host", err)
		if err != nil {
			res.HostsFailed++
			log.Warn().Int64("id", h.ID).Err(err).Msg("seed host failed")
			continue
		}
		res.HostsOK++
	}

	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var ok, failed atomic.Int64

	for _, l := range c.Listings {
		// acquire before launching the goroutine; release inside it
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return res, err
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return res, err
		}

		wg.Add(1)
		go func(l domain.CatalogListing) {
			defer wg.Done()
			defer sem.Release(1)

			err := s.SeedListing(ctx, l)
			observability.ObserveSeed("listing", err)
			if err != nil {
				failed.Add(1)
				log.Warn().Int64("id", l.ID).Err(err).Msg("seed listing failed")
				return
			}
			ok.Add(1)
			log.Debug().Int64("id", l.ID).Msg("seed listing ok")
		}(l)
	}

	wg.Wait()
	res.ListingsOK, res.ListingsFailed = ok.Load(), failed.Load()
	return res, nil
}
