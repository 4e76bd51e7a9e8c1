package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/upttmbi/campus-auth/internal/flagx"
	"github.com/upttmbi/campus-auth/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. It uses timex.Duration
// for interval fields, which accepts both string values such as "15m" and
// integer nanoseconds. After unmarshalling, its fields are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config flags; if neither is
// set, no JSON file is loaded. An unreadable or invalid file panics: a
// misconfigured server must not start.
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

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.BcryptCost = c.BcryptCost
}
