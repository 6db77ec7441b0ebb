package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	RunAddress    string `envconfig:"RUN_ADDRESS"`
	MenuSource    string `envconfig:"MENU_SOURCE"`
	StoreSource   string `envconfig:"STORE_CONFIG"`
	DatabaseURI   string `envconfig:"DATABASE_URI"`
	SessionSecret string `envconfig:"SESSION_SECRET"`
	TimeZone      string `envconfig:"TIME_ZONE"`
	LogJSON       bool   `envconfig:"LOG_JSON"`
}

// New reads flags from args, then lets environment variables (and a .env
// file, when present) override them.
func New(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg := &Config{}

	set := flag.NewFlagSet("littletreat", flag.ContinueOnError)
	set.SetOutput(io.Discard)
	set.StringVar(&cfg.RunAddress, "a", "localhost:8080", "server address and port")
	set.StringVar(&cfg.MenuSource, "m", "menu.json", "menu document path or URL")
	set.StringVar(&cfg.StoreSource, "c", "config.json", "store config document path or URL")
	set.StringVar(&cfg.DatabaseURI, "d", "", "database URI for the postgres order log")
	set.StringVar(&cfg.SessionSecret, "s", "little-treat-session-key", "cart session signing key")
	set.StringVar(&cfg.TimeZone, "z", "Asia/Kolkata", "time zone used for order dates")
	set.BoolVar(&cfg.LogJSON, "log-json", false, "emit JSON logs")
	if err := set.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	return cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
