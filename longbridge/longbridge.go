// Package longbridge retrieves executed orders from the Longbridge OpenAPI
// and normalizes them into trades, ready to be written as a platform
// history file. It is a boundary collaborator: the profit engine never
// depends on it.
package longbridge

import (
	"fmt"
	"os"
	"time"
)

const defaultBaseURL = "https://openapi.longportapp.com"

// Config carries the OpenAPI credentials and the fetch budget.
type Config struct {
	AppKey      string
	AppSecret   string
	AccessToken string
	BaseURL     string
	// MinInterval is the minimum delay between two API calls. The trade
	// endpoints are rate limited server-side; the default keeps well under
	// the documented budget.
	MinInterval time.Duration
}

// FromEnv builds a Config from the LONGPORT_* environment variables, the
// same ones the official SDKs read.
func FromEnv() (Config, error) {
	cfg := Config{
		AppKey:      os.Getenv("LONGPORT_APP_KEY"),
		AppSecret:   os.Getenv("LONGPORT_APP_SECRET"),
		AccessToken: os.Getenv("LONGPORT_ACCESS_TOKEN"),
		BaseURL:     os.Getenv("LONGPORT_TRADE_URL"),
		MinInterval: 1500 * time.Millisecond,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.AppKey == "" || cfg.AccessToken == "" {
		return Config{}, fmt.Errorf("LONGPORT_APP_KEY and LONGPORT_ACCESS_TOKEN must be set")
	}
	return cfg, nil
}
