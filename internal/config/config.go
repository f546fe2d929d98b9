package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	RedisAddress        string
	RedisPassword       string
	RedisDB             int
	AMQPURL             string
	NotifyExchange      string
	WorkerPoolSize      int
	TaskQueueSize       int
	DispatchConcurrency int
	ShutdownTimeout     time.Duration
	GradeCacheTTL       time.Duration
	StockCacheTTL       time.Duration
	CacheWarmInterval   time.Duration
	CacheWarmRatio      float64
	ShippingFee         int64
	DefaultGrade        string
	DefaultGradeMinUse  int64
	StockCompensation   bool
	OperatorToken       string
}

const (
	defaultRunAddress          = ":8080"
	defaultRedisAddress        = "localhost:6379"
	defaultNotifyExchange      = "bookshop.notifications"
	defaultWorkerPoolSize      = 4
	defaultTaskQueueSize       = 64
	defaultDispatchConcurrency = 8
	defaultShutdownTimeout     = 10 * time.Second
	defaultGradeCacheTTL       = 24 * time.Hour
	defaultStockCacheTTL       = 7 * 24 * time.Hour
	defaultCacheWarmInterval   = 7 * 24 * time.Hour
	defaultCacheWarmRatio      = 0.2
	defaultShippingFee         = 3000
	defaultGrade               = "BRONZE"
	defaultGradeMinUsage       = 50000
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		RedisAddress:        getString(lookup, "REDIS_ADDRESS", defaultRedisAddress),
		RedisPassword:       getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:             getInt(lookup, "REDIS_DB", 0),
		AMQPURL:             getString(lookup, "AMQP_URL", ""),
		NotifyExchange:      getString(lookup, "NOTIFY_EXCHANGE", defaultNotifyExchange),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		TaskQueueSize:       getInt(lookup, "TASK_QUEUE_SIZE", defaultTaskQueueSize),
		DispatchConcurrency: getInt(lookup, "DISPATCH_CONCURRENCY", defaultDispatchConcurrency),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		GradeCacheTTL:       getDuration(lookup, "GRADE_CACHE_TTL", defaultGradeCacheTTL),
		StockCacheTTL:       getDuration(lookup, "STOCK_CACHE_TTL", defaultStockCacheTTL),
		CacheWarmInterval:   getDuration(lookup, "CACHE_WARM_INTERVAL", defaultCacheWarmInterval),
		CacheWarmRatio:      getFloat(lookup, "CACHE_WARM_RATIO", defaultCacheWarmRatio),
		ShippingFee:         getInt64(lookup, "SHIPPING_FEE", defaultShippingFee),
		DefaultGrade:        getString(lookup, "DEFAULT_GRADE", defaultGrade),
		DefaultGradeMinUse:  getInt64(lookup, "DEFAULT_GRADE_MIN_USAGE", defaultGradeMinUsage),
		StockCompensation:   getBool(lookup, "STOCK_COMPENSATION", true),
		OperatorToken:       getString(lookup, "OPERATOR_TOKEN", ""),
	}

	fs := flag.NewFlagSet("bookshop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		warmIntervalStr    = cfg.CacheWarmInterval.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address")
	fs.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "Redis database number")
	fs.StringVar(&cfg.AMQPURL, "amqp", cfg.AMQPURL, "RabbitMQ URL for notification delivery")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of background task workers")
	fs.IntVar(&cfg.TaskQueueSize, "task-queue", cfg.TaskQueueSize, "Background task queue length")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&warmIntervalStr, "warm-interval", warmIntervalStr, "Interval between stock cache warm-ups")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.CacheWarmInterval, err = time.ParseDuration(warmIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid warm interval: %w", err)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.TaskQueueSize <= 0 {
		cfg.TaskQueueSize = defaultTaskQueueSize
	}

	if cfg.DispatchConcurrency <= 0 {
		cfg.DispatchConcurrency = defaultDispatchConcurrency
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.GradeCacheTTL <= 0 {
		cfg.GradeCacheTTL = defaultGradeCacheTTL
	}

	if cfg.StockCacheTTL <= 0 {
		cfg.StockCacheTTL = defaultStockCacheTTL
	}

	if cfg.CacheWarmInterval <= 0 {
		cfg.CacheWarmInterval = defaultCacheWarmInterval
	}

	if cfg.CacheWarmRatio <= 0 || cfg.CacheWarmRatio > 1 {
		cfg.CacheWarmRatio = defaultCacheWarmRatio
	}

	if cfg.ShippingFee < 0 {
		cfg.ShippingFee = defaultShippingFee
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
