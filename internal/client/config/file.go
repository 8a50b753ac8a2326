package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/micronotes/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used only for decoding config files. Empty fields leave
// the current value alone.
type FileConfig struct {
	UsersBaseURL   string          `json:"users_base_url" yaml:"users_base_url"`
	NotesBaseURL   string          `json:"notes_base_url" yaml:"notes_base_url"`
	DataDir        string          `json:"data_dir" yaml:"data_dir"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       string          `json:"log_level" yaml:"log_level"`
	LogFile        string          `json:"log_file" yaml:"log_file"`
	DefaultEmail   string          `json:"default_email" yaml:"default_email"`
	ProxyAddr      string          `json:"proxy_addr" yaml:"proxy_addr"`
	UsersUpstream  string          `json:"users_upstream" yaml:"users_upstream"`
	NotesUpstream  string          `json:"notes_upstream" yaml:"notes_upstream"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.applyTo(cfg)
	return nil
}

func (fc *FileConfig) applyTo(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.UsersBaseURL, fc.UsersBaseURL)
	set(&cfg.NotesBaseURL, fc.NotesBaseURL)
	set(&cfg.DataDir, fc.DataDir)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.LogFile, fc.LogFile)
	set(&cfg.DefaultEmail, fc.DefaultEmail)
	set(&cfg.ProxyAddr, fc.ProxyAddr)
	set(&cfg.UsersUpstream, fc.UsersUpstream)
	set(&cfg.NotesUpstream, fc.NotesUpstream)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}
