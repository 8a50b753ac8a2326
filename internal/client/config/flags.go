package config

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig         = "config"
	flagUsersURL       = "users-url"
	flagNotesURL       = "notes-url"
	flagDataDir        = "data-dir"
	flagRequestTimeout = "timeout"
	flagLogLevel       = "log-level"
	flagLogFile        = "log-file"
	flagEmail          = "email"
	flagProxyAddr      = "proxy-addr"
	flagUsersUpstream  = "users-upstream"
	flagNotesUpstream  = "notes-upstream"
)

// BindFlags registers the configuration flags on fs. Flag defaults are left
// empty: Load only applies flags that were set on the command line, so the
// defaults live in LoadDefaults.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "config file (JSON or YAML)")
	fs.String(flagUsersURL, "", "base URL of the Users service")
	fs.String(flagNotesURL, "", "base URL of the Notes service")
	fs.String(flagDataDir, "", "directory holding the local database")
	fs.Duration(flagRequestTimeout, 0, "per-request timeout")
	fs.String(flagLogLevel, "", "log level (debug|info|warn|error)")
	fs.String(flagLogFile, "", "also write JSON logs to this file")
	fs.String(flagEmail, "", "email prefilled in the login prompt")
	fs.String(flagProxyAddr, "", "listen address of the dev proxy")
	fs.String(flagUsersUpstream, "", "dev proxy target for /api/users")
	fs.String(flagNotesUpstream, "", "dev proxy target for /api/notes")
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	strs := map[string]*string{
		flagUsersURL:      &cfg.UsersBaseURL,
		flagNotesURL:      &cfg.NotesBaseURL,
		flagDataDir:       &cfg.DataDir,
		flagLogLevel:      &cfg.LogLevel,
		flagLogFile:       &cfg.LogFile,
		flagEmail:         &cfg.DefaultEmail,
		flagProxyAddr:     &cfg.ProxyAddr,
		flagUsersUpstream: &cfg.UsersUpstream,
		flagNotesUpstream: &cfg.NotesUpstream,
	}
	for name, dst := range strs {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Lookup(flagRequestTimeout) != nil && fs.Changed(flagRequestTimeout) {
		d, err := fs.GetDuration(flagRequestTimeout)
		if err != nil {
			return err
		}
		cfg.RequestTimeout = d
	}
	return nil
}
