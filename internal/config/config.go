// Package config handles configuration for the userholder command,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userholder/internal/cryptox"
)

// Hash algorithm names accepted in HashAlgorithm.
const (
	HashMD5      = "md5"
	HashArgon2id = "argon2id"
)

// Config holds runtime settings.
//
// Fields:
//   - LogLevel: minimum level written to the log (debug, info, warn, error).
//   - HashAlgorithm: credential hasher, md5 (legacy, default) or argon2id.
//     Imported records only verify under the algorithm that produced them.
//   - ImportFile: optional path of a legacy export loaded at startup.
type Config struct {
	LogLevel      string
	HashAlgorithm string
	ImportFile    string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.LogLevel = "info"
	c.HashAlgorithm = HashMD5
	c.ImportFile = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Hasher resolves HashAlgorithm.
func (c *Config) Hasher() (cryptox.Hasher, error) {
	switch strings.ToLower(c.HashAlgorithm) {
	case HashMD5, "":
		return cryptox.MD5Hasher{}, nil
	case HashArgon2id:
		return cryptox.NewArgon2Hasher(), nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", c.HashAlgorithm)
	}
}
