package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ngcs-mobile/courtclient/internal/flagx"
	"github.com/ngcs-mobile/courtclient/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL                 string         `json:"base_url"`
	AppVersion              string         `json:"app_version"`
	CompatibleServerVersion float64        `json:"compatible_server_version"`
	DatabasePath            string         `json:"database_path"`
	RequestTimeout          timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. Absent flags mean no JSON is loaded. Panics on read
// or unmarshal errors. Only fields present in the file override defaults.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.AppVersion != "" {
		cfg.AppVersion = jc.AppVersion
	}
	if jc.CompatibleServerVersion != 0 {
		cfg.CompatibleServerVersion = jc.CompatibleServerVersion
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
