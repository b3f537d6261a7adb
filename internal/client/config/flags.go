package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the notes service
//	-m          use the in-memory mock instead of the service
//	-d string   path of the local SQLite database
//
// Only these flags are taken from args (see flagx.FilterArgs), so flags of
// other components do not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-m", "-d"})

	fs := flag.NewFlagSet("gophnotes", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the notes service")
	fs.BoolVar(&cfg.UseMock, "m", cfg.UseMock, "use the in-memory mock service")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local database")

	return fs.Parse(args)
}
