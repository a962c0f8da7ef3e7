// Package config provides runtime configuration values for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server and the store.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	QueryTimeout    time.Duration
	StoreDriver     string
	DB              DBConfig
}

// DBConfig holds the MySQL connection parameters. Credentials come from the
// environment; there are no built-in defaults for them.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	TLSMode  string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

func requireenv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("config: %s is required", key)
	}
	return v, nil
}

// Load collects configuration from the environment. Only the "mysql" and
// "memory" store drivers are accepted; it fails when the mysql driver is
// selected and any database credential is missing.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		QueryTimeout:    durenvs("QUERY_TIMEOUT", 5),
		StoreDriver:     getenv("STORE_DRIVER", "mysql"),
	}
	switch cfg.StoreDriver {
	case "memory":
		return cfg, nil
	case "mysql":
	default:
		return Config{}, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	user, err := requireenv("DB_USER")
	if err != nil {
		return Config{}, err
	}
	password, err := requireenv("DB_PASSWORD")
	if err != nil {
		return Config{}, err
	}
	name, err := requireenv("DB_NAME")
	if err != nil {
		return Config{}, err
	}
	cfg.DB = DBConfig{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     atoienv("DB_PORT", 3306),
		User:     user,
		Password: password,
		Name:     name,
		TLSMode:  getenv("DB_TLS_MODE", "preferred"),
	}
	return cfg, nil
}
