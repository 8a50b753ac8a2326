package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/micronotes/internal/logging"
	"github.com/spf13/pflag"
)

// DatabaseFile is the name of the SQLite file inside DataDir.
const DatabaseFile = "micronotes.db"

// Config holds runtime settings for the Micro Notes CLI.
//
// UsersBaseURL and NotesBaseURL are independent roots; neither is derived
// from the other. ProxyAddr, UsersUpstream and NotesUpstream are only read
// by the dev proxy.
type Config struct {
	UsersBaseURL   string
	NotesBaseURL   string
	DataDir        string
	RequestTimeout time.Duration
	LogLevel       string
	LogFile        string
	DefaultEmail   string

	ProxyAddr     string
	UsersUpstream string
	NotesUpstream string
}

// LoadDefaults populates c with settings matching a local dev setup: both
// services reached through the dev proxy.
func (c *Config) LoadDefaults() {
	c.UsersBaseURL = "http://127.0.0.1:5173/api/users"
	c.NotesBaseURL = "http://127.0.0.1:5173/api/notes"
	c.DataDir = defaultDataDir()
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "error"
	c.LogFile = ""
	c.DefaultEmail = ""

	c.ProxyAddr = "127.0.0.1:5173"
	c.UsersUpstream = "http://127.0.0.1:8001"
	c.NotesUpstream = "http://127.0.0.1:8002"
}

// DatabasePath is the SQLite file holding the stored token.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, DatabaseFile)
}

func (c *Config) Validate() error {
	var errs []error
	for _, u := range []struct{ name, raw string }{
		{"users base URL", c.UsersBaseURL},
		{"notes base URL", c.NotesBaseURL},
		{"users upstream", c.UsersUpstream},
		{"notes upstream", c.NotesUpstream},
	} {
		if err := checkURL(u.raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", u.name, err))
		}
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data dir is empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

// Load builds a Config by applying defaults, .env and environment, the config
// file, then the explicitly set flags in fs. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	return load(fs, ".env", os.LookupEnv)
}

func load(fs *pflag.FlagSet, dotenv string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	env, err := newEnv(dotenv, lookup)
	if err != nil {
		return nil, err
	}
	if err := env.apply(cfg); err != nil {
		return nil, err
	}

	path, _ := env.get(envConfig)
	if fs != nil && fs.Changed(flagConfig) {
		path, _ = fs.GetString(flagConfig)
	}
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if fs != nil {
		if err := applyFlags(cfg, fs); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "micronotes")
	}
	return ".micronotes"
}
