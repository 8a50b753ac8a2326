package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

const (
	envConfig         = "MN_CONFIG"
	envUsersURL       = "MN_USERS_URL"
	envNotesURL       = "MN_NOTES_URL"
	envDataDir        = "MN_DATA_DIR"
	envRequestTimeout = "MN_REQUEST_TIMEOUT"
	envLogLevel       = "MN_LOG_LEVEL"
	envLogFile        = "MN_LOG_FILE"
	envEmail          = "MN_EMAIL"
	envProxyAddr      = "MN_PROXY_ADDR"
	envUsersUpstream  = "MN_USERS_UPSTREAM"
	envNotesUpstream  = "MN_NOTES_UPSTREAM"
)

// env resolves a variable from the process environment first and the .env
// file second. The process environment is never modified.
type env struct {
	lookup func(string) (string, bool)
	dotenv map[string]string
}

func newEnv(dotenvPath string, lookup func(string) (string, bool)) (*env, error) {
	e := &env{lookup: lookup}
	if dotenvPath == "" {
		return e, nil
	}
	values, err := godotenv.Read(dotenvPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return e, nil
		}
		return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
	}
	e.dotenv = values
	return e, nil
}

func (e *env) get(key string) (string, bool) {
	if v, ok := e.lookup(key); ok {
		return v, true
	}
	v, ok := e.dotenv[key]
	return v, ok
}

func (e *env) apply(cfg *Config) error {
	strs := map[string]*string{
		envUsersURL:      &cfg.UsersBaseURL,
		envNotesURL:      &cfg.NotesBaseURL,
		envDataDir:       &cfg.DataDir,
		envLogLevel:      &cfg.LogLevel,
		envLogFile:       &cfg.LogFile,
		envEmail:         &cfg.DefaultEmail,
		envProxyAddr:     &cfg.ProxyAddr,
		envUsersUpstream: &cfg.UsersUpstream,
		envNotesUpstream: &cfg.NotesUpstream,
	}
	for key, dst := range strs {
		if v, ok := e.get(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := e.get(envRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
