package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userholder/internal/flagx"
)

// JsonConfig is the on-disk shape of the configuration file. Empty fields
// leave the current value in place.
type JsonConfig struct {
	LogLevel      string `json:"log_level"`
	HashAlgorithm string `json:"hash_algorithm"`
	ImportFile    string `json:"import_file"`
}

// parseJson overlays values from the file named by -c or -config. Without
// either flag nothing is loaded. An unreadable or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.HashAlgorithm != "" {
		config.HashAlgorithm = c.HashAlgorithm
	}
	if c.ImportFile != "" {
		config.ImportFile = c.ImportFile
	}
}
