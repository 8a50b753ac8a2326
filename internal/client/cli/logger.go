package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/micronotes/internal/client/config"
	"github.com/dmitrijs2005/micronotes/internal/filex"
	"github.com/dmitrijs2005/micronotes/internal/logging"
)

// newLogger writes text records to console and, if cfg.LogFile is set, JSON
// records to that file. The returned closer is nil when no file was opened.
func newLogger(cfg *config.Config, console io.Writer) (logging.Logger, io.Closer, error) {
	opts := logging.Options{Level: cfg.LogLevel, Console: console}

	var f *os.File
	if cfg.LogFile != "" {
		path, err := filex.EnsureParentDir(cfg.LogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		opts.File = f
	}

	l, err := logging.New(opts)
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return nil, nil, err
	}
	if f == nil {
		return l, nil, nil
	}
	return l, f, nil
}
