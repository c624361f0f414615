package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/totegamma/todolist/internal/domain"
)

type Config struct {
	Server Server `yaml:"server"`
}

type Server struct {
	ListenAddr       string        `yaml:"listenAddr"`
	PostgresDsn      string        `yaml:"postgresDsn"`
	RedisAddr        string        `yaml:"redisAddr"`
	RedisDB          int           `yaml:"redisDB"`
	MemcachedAddr    string        `yaml:"memcachedAddr"`
	EnableTrace      bool          `yaml:"enableTrace"`
	TraceEndpoint    string        `yaml:"traceEndpoint"`
	LogLevel         string        `yaml:"logLevel"` // debug, info, warn, error
	CategoryCacheTTL time.Duration `yaml:"categoryCacheTTL"`

	// nil means enabled
	DedupeCategoryLinks *bool `yaml:"dedupeCategoryLinks"`
}

func Default() Config {
	return Config{
		Server: Server{
			ListenAddr:       ":8000",
			PostgresDsn:      "host=localhost user=postgres password=postgres dbname=postgres port=5432 sslmode=disable",
			LogLevel:         "info",
			CategoryCacheTTL: time.Minute,
		},
	}
}

// Load reads the yaml file at path over the defaults. A missing file is not
// an error; the defaults are returned.
func Load(path string) (Config, error) {
	config := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return Config{}, errors.Wrapf(err, "open config %s", path)
	}
	defer file.Close()

	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, errors.Wrapf(err, "decode config %s", path)
	}

	if config.Server.ListenAddr == "" {
		config.Server.ListenAddr = Default().Server.ListenAddr
	}
	if config.Server.CategoryCacheTTL <= 0 {
		config.Server.CategoryCacheTTL = Default().Server.CategoryCacheTTL
	}

	return config, nil
}

// Domain extracts the switches consumed by the usecases.
func (c Config) Domain() domain.Config {
	dedupe := true
	if c.Server.DedupeCategoryLinks != nil {
		dedupe = *c.Server.DedupeCategoryLinks
	}
	return domain.Config{DedupeCategoryLinks: dedupe}
}
