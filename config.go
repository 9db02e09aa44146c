package main

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment after an optional .env load. A local
// .env never overrides variables already set in the process environment.
type Config struct {
	DSN         string `envconfig:"DB_DSN"`
	JWTSecret   string `envconfig:"JWT_SECRET" default:"dev-insecure-secret-change"`
	ListenAddr  string `envconfig:"LISTEN_ADDR" default:":8081"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

func loadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
