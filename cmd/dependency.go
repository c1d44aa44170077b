package cmd

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"
	"vending-machine/common/constant"
	"vending-machine/common/contract"
	commonJetstream "vending-machine/common/jetstream"
	"vending-machine/common/otel"
	"vending-machine/outbound/memory"
	"vending-machine/outbound/postgres"
)

func newCfg(name string) *viper.Viper {
	config := viper.New()

	config.SetConfigName(name)
	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	config.SetDefault("store.driver", "postgres")
	config.SetDefault("nats.stream.max_bytes", -1)
	config.SetDefault("otel.sample_ratio", 1.0)

	err := config.ReadInConfig()
	if err != nil {
		log.Fatalln(err)
	}

	err = os.Setenv("TZ", config.GetString("server.timezone"))
	if err != nil {
		log.Fatalln(err)
	}

	return config
}

func newDb(cfg *viper.Viper) *pgxpool.Pool {
	username := cfg.GetString("db.user")
	password := cfg.GetString("db.password")
	host := cfg.GetString("db.host")
	port := cfg.GetInt("db.port")
	database := cfg.GetString("db.name")
	maxConn := cfg.GetInt("db.pool.max")
	minConn := cfg.GetInt("db.pool.min")
	timezone := cfg.GetString("server.timezone")

	connString := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?timezone=%s",
		username, password, host, port, database, timezone)

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		log.Fatalln(err)
	}

	config.MaxConns = int32(maxConn)
	config.MinConns = int32(minConn)
	config.ConnConfig.Tracer = &otel.PgxCustomTracer{}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatalln(err)
	}

	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatalln(err)
	}

	return pool
}

var (
	storeOnce    sync.Once
	store        contract.Store
	storeRelease func()
)

// newStore picks the store backend from store.driver. Commands running in one
// process share the same store, which the memory driver depends on.
func newStore(cfg *viper.Viper) (contract.Store, func()) {
	storeOnce.Do(func() {
		if cfg.GetString("store.driver") == "memory" {
			slog.Warn("using in-memory store, data is lost on exit")
			store, storeRelease = memory.New(), func() {}
			return
		}

		db := newDb(cfg)
		store, storeRelease = postgres.New(db), db.Close
	})

	return store, storeRelease
}

func newRedis(cfg *viper.Viper) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.GetString("redis.addr"),
		Password: cfg.GetString("redis.password"),
		DB:       0,
	})

	err := rdb.Ping(context.Background()).Err()
	if err != nil {
		log.Fatalln(err)
	}

	return rdb
}

func newNats(viper *viper.Viper) *nats.Conn {
	conn, err := nats.Connect(viper.GetString("nats.addr"))
	if err != nil {
		log.Fatalln(err)
	}

	return conn
}

func newJs(conn *nats.Conn) jetstream.JetStream {
	js, err := jetstream.New(conn)
	if err != nil {
		log.Fatalln(err)
	}

	return js
}

func createStreamWorkQueue(ctx context.Context, cfg *viper.Viper, js jetstream.JetStream) jetstream.Stream {
	st, err := commonJetstream.CreateQueueStream(ctx, js, cfg.GetInt64("nats.stream.max_bytes"))
	if err != nil {
		log.Fatalln("failed to create stream", err)
	}

	return st
}

// newTracerProvider installs the OTLP exporter when otel.endpoint is set and
// returns its shutdown func.
func newTracerProvider(ctx context.Context, cfg *viper.Viper) func() {
	endpoint := cfg.GetString("otel.endpoint")
	if endpoint == "" {
		return func() {}
	}

	tp, err := otel.NewTracerProvider(ctx, endpoint, cfg.GetFloat64("otel.sample_ratio"))
	if err != nil {
		log.Fatalln("failed to create tracer provider", err)
	}

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown tracer provider", slog.Any(constant.LogFieldErr, err))
		}
	}
}
