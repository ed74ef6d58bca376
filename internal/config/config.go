package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string   `yaml:"env" env:"ENV" env-default:"local"`
	Postgres Postgres `yaml:"postgres"`
	Server   Server   `yaml:"server" env-required:"true"`
	Redis    Redis    `yaml:"redis"`
	Alerts   Alerts   `yaml:"alerts"`
	Session  Session  `yaml:"session"`
}

type Postgres struct {
	Username        string        `yaml:"username" env:"POSTGRES_USER" env-required:"true"`
	Password        string        `yaml:"password" env:"POSTGRES_PASSWORD" env-required:"true"`
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-required:"true"`
	Port            string        `yaml:"port" env:"POSTGRES_PORT" env-required:"true"`
	Database        string        `yaml:"database" env:"POSTGRES_DB" env-required:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"50"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env-default:"1m"`
}

type Server struct {
	Host    string        `yaml:"host" env-default:"localhost"`
	Port    string        `yaml:"port" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

// Redis backs the capacity cache. An empty Addr selects the in-memory cache.
type Redis struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `yaml:"ttl" env-default:"10m"`
}

// Alerts is the peak-utilization threshold table, in percent.
type Alerts struct {
	CriticalAbove      float64 `yaml:"critical_above" env-default:"100"`
	WarningFrom        float64 `yaml:"warning_from" env-default:"85"`
	UnderUtilizedBelow float64 `yaml:"under_utilized_below" env-default:"70"`
}

func (a Alerts) Thresholds() capacity.Thresholds {
	return capacity.Thresholds{
		Critical:      a.CriticalAbove,
		Warning:       a.WarningFrom,
		UnderUtilized: a.UnderUtilizedBelow,
	}.Normalize()
}

type Session struct {
	RowLockDebounce time.Duration `yaml:"row_lock_debounce" env-default:"2s"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	return LoadFile(configPath)
}

func LoadFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	return cfg
}
