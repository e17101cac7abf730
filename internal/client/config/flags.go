package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/storefront/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string     storage backend: sqlite, nutsdb or memory
//	-d string     data path (SQLite file or nutsdb directory)
//	-l string     log level
//	-f string     log format: text, json or zap
//	-r duration   window for "recent" user stats, e.g. 720h
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-l", "-f", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend (sqlite, nutsdb, memory)")
	fs.StringVar(&cfg.DataPath, "d", cfg.DataPath, "data file or directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text, json, zap)")
	fs.DurationVar(&cfg.RecentWindow, "r", cfg.RecentWindow, "recent registrations window")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
