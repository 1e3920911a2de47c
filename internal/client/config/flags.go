package config

import (
	"flag"
	"os"
	"time"

	"github.com/unioncup/contestdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend REST service
//	-t int      request timeout in seconds
//	-r int      real-time poll interval in seconds
//	-p string   preference database path
//
// os.Args is filtered to just these flags (flagx.FilterArgs) so other
// components can define their own.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-r", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend REST service")
	timeout := fs.Int("t", int(cfg.APITimeout.Seconds()), "request timeout (in seconds)")
	refresh := fs.Int("r", int(cfg.RefreshInterval.Seconds()), "real-time poll interval (in seconds)")
	fs.StringVar(&cfg.PrefsPath, "p", cfg.PrefsPath, "preference database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.APITimeout = time.Duration(*timeout) * time.Second
	cfg.RefreshInterval = time.Duration(*refresh) * time.Second
}
