package main

import (
	"context"
	"database/sql"
	"flag"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"flexisync/internal/adapters/observability"
	redisad "flexisync/internal/adapters/redis"
	"flexisync/internal/adapters/stayflexi"
	"flexisync/internal/app"
	"flexisync/internal/shared"
	mysqlrepo "flexisync/internal/storage/mysql"
)

func main() {
	days := flag.Int("days", 30, "sync window length in days, starting today")
	fromFlag := flag.String("from", "", "window start (YYYY-MM-DD, overrides -days)")
	toFlag := flag.String("to", "", "window end (YYYY-MM-DD, overrides -days)")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	from := time.Now().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, *days)
	if *fromFlag != "" {
		t, err := time.Parse("2006-01-02", *fromFlag)
		if err != nil {
			log.Fatal().Str("from", *fromFlag).Msg("invalid -from date")
		}
		from = t
	}
	if *toFlag != "" {
		t, err := time.Parse("2006-01-02", *toFlag)
		if err != nil {
			log.Fatal().Str("to", *toFlag).Msg("invalid -to date")
		}
		to = t
	}

	log.Info().
		Str("base", cfg.FlexiBase).
		Str("from", from.Format("2006-01-02")).
		Str("to", to.Format("2006-01-02")).
		Int("properties", len(shared.Properties)).
		Msg("syncer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	session := stayflexi.NewSession(cfg.FlexiEmail, cfg.FlexiPass)
	client, err := stayflexi.New(cfg.FlexiBase, session, cfg.FlexiRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Stayflexi client")
	}

	sync := app.NewSyncService(client, repo, cache, shared.Properties, cfg.SyncPause)

	out, err := sync.SyncProperties(ctx, shared.PropertyIDs(), from, to)
	if err != nil {
		log.Fatal().Err(err).Msg("sync run failed")
	}
	if out.AuthErr != nil {
		log.Error().Err(out.AuthErr).
			Int("inserted", out.Inserted).
			Int("skipped", out.Skipped).
			Msg("sync aborted: PMS rejected credentials, re-enter FLEXI_EMAIL / FLEXI_PASSWORD")
		return
	}

	log.Info().
		Int("inserted", out.Inserted).
		Int("skipped", out.Skipped).
		Int("errors", out.Errors).
		Msg("sync completed")
}
