package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/userholder/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-l string   log level
//	-a string   hash algorithm (md5, argon2id)
//	-i string   legacy export to import at startup
//
// Only these flags are parsed, see flagx.FilterArgs.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-l", "-a", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.HashAlgorithm, "a", config.HashAlgorithm, "hash algorithm (md5, argon2id)")
	fs.StringVar(&config.ImportFile, "i", config.ImportFile, "file with users to import")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
