package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	FlexiBase   string
	FlexiEmail  string
	FlexiPass   string
	FlexiRPS    int
	SyncPause   time.Duration
	CacheTTL    time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/flexisync?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		FlexiBase:   env("FLEXI_BASE_URL", "https://api.stayflexi.com"),
		FlexiEmail:  env("FLEXI_EMAIL", ""),
		FlexiPass:   env("FLEXI_PASSWORD", ""),
		FlexiRPS:    atoi("FLEXI_RPS", 2),
		SyncPause:   time.Duration(atoi("SYNC_PAUSE_MS", 1500)) * time.Millisecond,
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
	}
	if c.FlexiEmail == "" || c.FlexiPass == "" {
		log.Warn().Msg("FLEXI_EMAIL / FLEXI_PASSWORD not set; PMS sync will report missing credentials")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
