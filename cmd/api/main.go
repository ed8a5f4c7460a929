package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "flexisync/internal/adapters/http_server"
	"flexisync/internal/adapters/observability"
	redisad "flexisync/internal/adapters/redis"
	"flexisync/internal/adapters/stayflexi"
	"flexisync/internal/app"
	"flexisync/internal/shared"
	mysqlrepo "flexisync/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	session := stayflexi.NewSession(cfg.FlexiEmail, cfg.FlexiPass)
	client, err := stayflexi.New(cfg.FlexiBase, session, cfg.FlexiRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Stayflexi client")
	}

	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	sync := app.NewSyncService(client, repo, cache, shared.Properties, cfg.SyncPause)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Sync: sync})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
