package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-document-validator/document"
	log "go-document-validator/logging"
	"go-document-validator/metrics"
	redis "go-document-validator/redis"
)

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 3000
	defaultCacheTtlSeconds = 300
)

type Config struct {
	ServerConfig ServerConfig `json:"server_config"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`

	StorageType         string                    `json:"storage_type"`
	CacheTtlSeconds     int                       `json:"cache_ttl_seconds"`
	RedisConfig         redis.RedisConfig         `json:"redis_config,omitempty"`
	RedisSentinelConfig redis.RedisSentinelConfig `json:"redis_sentinel_config,omitempty"`
}

func (c Config) CacheTtl() time.Duration {
	return time.Duration(c.CacheTtlSeconds) * time.Second
}

//	@title			Document Validator API
//	@version		1.0
//	@description	Validates PAN, CPF, CNPJ and South African national ID numbers.
//	@BasePath		/
func main() {
	configPath := flag.String("config", "", "Path for the config.json to use")
	flag.Parse()

	config := defaultConfig()
	if *configPath != "" {
		var err error
		config, err = readConfigFile(*configPath)
		if err != nil {
			fatal("failed to read config file", err)
		}
	}

	log.InitLogger(config.LogLevel, config.LogFormat)
	slog.Info("Loaded configuration", "config_path", *configPath, "storage_type", config.StorageType)

	resultCache, err := createResultCache(&config)
	if err != nil {
		fatal("failed to instantiate result cache", err)
	}

	serverState := ServerState{
		documentValidator: document.NewDefaultDispatcher(),
		resultCache:       resultCache,
		metrics:           metrics.New(),
	}

	server, err := NewServer(&serverState, config.ServerConfig)
	if err != nil {
		fatal("failed to create server", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		_ = server.Stop()
	}()

	slog.Info(fmt.Sprintf("Server is running on http://%s:%d", config.ServerConfig.Host, config.ServerConfig.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatal("failed to listen and serve", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func defaultConfig() Config {
	return Config{
		ServerConfig: ServerConfig{
			Host: defaultHost,
			Port: defaultPort,
		},
		LogLevel:        "info",
		LogFormat:       "text",
		StorageType:     "none",
		CacheTtlSeconds: defaultCacheTtlSeconds,
	}
}

// readConfigFile reads a JSON config. Fields left out keep their defaults.
func readConfigFile(path string) (Config, error) {
	configBytes, err := os.ReadFile(path)

	if err != nil {
		return Config{}, err
	}

	config := defaultConfig()
	err = json.Unmarshal(configBytes, &config)

	if err != nil {
		return Config{}, err
	}

	if config.CacheTtlSeconds <= 0 {
		return Config{}, fmt.Errorf("cache_ttl_seconds must be positive, got %d", config.CacheTtlSeconds)
	}

	return config, nil
}

func createResultCache(config *Config) (ResultCache, error) {
	switch config.StorageType {
	case "", "none":
		slog.Info("Result cache disabled")
		return NoopResultCache{}, nil
	case "memory":
		slog.Info("Using in memory result cache", "ttl", config.CacheTtl())
		return NewInMemoryResultCache(config.CacheTtl()), nil
	case "redis":
		slog.Info("Using redis result cache", "ttl", config.CacheTtl())
		client, err := redis.NewRedisClient(&config.RedisConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisResultCache(client, config.RedisConfig.Namespace, config.CacheTtl()), nil
	case "redis_sentinel":
		slog.Info("Using redis sentinel result cache", "ttl", config.CacheTtl())
		client, err := redis.NewRedisSentinelClient(&config.RedisSentinelConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisResultCache(client, config.RedisSentinelConfig.Namespace, config.CacheTtl()), nil
	}
	return nil, fmt.Errorf("%v is not a valid storage type", config.StorageType)
}
