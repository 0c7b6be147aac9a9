// Package main runs the MultiversX transaction processor.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/config"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/metrics"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/gateway"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/processor"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/repository/clickhouse"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/repository/pebble"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/repository/redis"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/runner"
	"github.com/goodnatureofminers/mvx-txprocessor/internal/mvx/sink"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type options struct {
	Network         string        `long:"network" env:"MVX_NETWORK" description:"network name used for metrics and stored rows" default:"mainnet"`
	GatewayURL      string        `long:"gateway-url" env:"MVX_GATEWAY_URL" description:"MultiversX gateway URL" default:"https://gateway.multiversx.com"`
	GatewayTimeout  time.Duration `long:"gateway-timeout" env:"MVX_GATEWAY_TIMEOUT" description:"timeout for a single gateway request" default:"5s"`
	GatewayRPS      int           `long:"gateway-rps" env:"MVX_GATEWAY_RPS" description:"gateway requests per second, 0 disables the limit" default:"0"`
	ProcessorConfig string        `long:"processor-config" env:"MVX_PROCESSOR_CONFIG" description:"YAML file with processor and runner tuning"`
	Store           string        `long:"store" env:"MVX_STORE" description:"watermark store" choice:"memory" choice:"clickhouse" choice:"pebble" choice:"redis" default:"memory"`
	Sinks           []string      `long:"sink" env:"MVX_SINKS" env-delim:"," description:"transaction sink, repeatable" choice:"log" choice:"clickhouse" default:"log"`
	ClickhouseDSN   string        `long:"clickhouse-dsn" env:"MVX_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	PebblePath      string        `long:"pebble-path" env:"MVX_PEBBLE_PATH" description:"Pebble database directory" default:"data/watermarks"`
	RedisAddr       string        `long:"redis-addr" env:"MVX_REDIS_ADDR" description:"Redis address"`
	RedisPassword   string        `long:"redis-password" env:"MVX_REDIS_PASSWORD" description:"Redis password"`
	RedisDB         int           `long:"redis-db" env:"MVX_REDIS_DB" description:"Redis database" default:"0"`
	RedisPrefix     string        `long:"redis-prefix" env:"MVX_REDIS_PREFIX" description:"Redis key prefix" default:"mvx:"`
	Lock            bool          `long:"lock" env:"MVX_LOCK" description:"serialize runs across instances with a Redis lock"`
	LockTTL         time.Duration `long:"lock-ttl" env:"MVX_LOCK_TTL" description:"Redis lock expiry" default:"5m"`
	Once            bool          `long:"once" env:"MVX_ONCE" description:"run a single catch-up and exit"`
	MetricsAddr     string        `long:"metrics-addr" env:"MVX_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	LogProduction   bool          `long:"log-production" env:"MVX_LOG_PRODUCTION" description:"use JSON production logging"`
}

func main() {
	opts := options{}
	if _, err := flags.ParseArgs(&opts, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(opts.LogProduction)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, logger.With(zap.String("network", opts.Network))); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("transaction processor failed", zap.Error(err))
	}
}

func newLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, opts options, logger *zap.Logger) error {
	cfg, err := config.Load(opts.ProcessorConfig)
	if err != nil {
		return err
	}

	startMetricsServer(ctx, opts.MetricsAddr, logger)

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("close resource failed", zap.Error(err))
			}
		}
	}()

	repoMetrics := metrics.NewRepository(opts.Network)

	var chRepo *clickhouse.Repository
	clickhouseRepo := func() (*clickhouse.Repository, error) {
		if chRepo != nil {
			return chRepo, nil
		}
		repo, err := clickhouse.NewRepository(opts.ClickhouseDSN, opts.Network, repoMetrics)
		if err != nil {
			return nil, fmt.Errorf("init clickhouse repository: %w", err)
		}
		chRepo = repo
		closers = append(closers, repo.Close)
		return repo, nil
	}

	var redisRepo *redis.Repository
	var locker runner.Locker
	if opts.Store == "redis" || opts.Lock {
		client, err := redis.NewClient(ctx, redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err != nil {
			return fmt.Errorf("init redis client: %w", err)
		}
		closers = append(closers, client.Close)
		redisRepo = redis.NewRepository(client, opts.RedisPrefix, opts.Network, repoMetrics)
		if opts.Lock {
			locker = redis.NewLocker(client, opts.RedisPrefix, opts.Network, opts.LockTTL, repoMetrics)
		}
	}

	var store processor.WatermarkStore
	switch opts.Store {
	case "clickhouse":
		repo, err := clickhouseRepo()
		if err != nil {
			return err
		}
		store = repo
	case "pebble":
		repo, err := pebble.NewRepository(opts.PebblePath, opts.Network, repoMetrics)
		if err != nil {
			return fmt.Errorf("init pebble repository: %w", err)
		}
		closers = append(closers, repo.Close)
		store = repo
	case "redis":
		store = redisRepo
	default:
		logger.Warn("using in-memory watermarks, progress is lost on restart")
	}

	consumers := make(sink.Multi, 0, len(opts.Sinks))
	for _, name := range opts.Sinks {
		switch name {
		case "clickhouse":
			repo, err := clickhouseRepo()
			if err != nil {
				return err
			}
			consumers = append(consumers, sink.NewStore(repo, logger))
		default:
			consumers = append(consumers, sink.NewLog(logger))
		}
	}

	gw, err := gateway.NewClient(opts.GatewayURL, opts.GatewayTimeout, opts.GatewayRPS, metrics.NewGatewayClient(opts.Network))
	if err != nil {
		return fmt.Errorf("init gateway client: %w", err)
	}

	proc, err := processor.New(
		gw,
		consumers,
		store,
		processor.NewZapMessageLogger(logger.Named("processor")),
		metrics.NewProcessor(opts.Network),
		cfg.ProcessorOptions(),
	)
	if err != nil {
		return fmt.Errorf("init processor: %w", err)
	}

	if opts.Once {
		return proc.Start(ctx)
	}

	r, err := runner.New(proc, locker, metrics.NewRunner(opts.Network), logger, runner.Options{
		Interval:   cfg.Runner.Interval,
		Backoff:    cfg.Runner.Backoff,
		MaxBackoff: cfg.Runner.MaxBackoff,
	})
	if err != nil {
		return fmt.Errorf("init runner: %w", err)
	}

	logger.Info("starting transaction processor",
		zap.String("mode", string(cfg.ProcessorOptions().Mode)),
		zap.String("store", opts.Store),
		zap.Strings("sinks", opts.Sinks),
		zap.Bool("lock", locker != nil),
	)
	return r.Run(ctx)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
