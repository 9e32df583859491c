package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Config is the wixport.json configuration file.
type Config struct {
	// Wix API credentials. APIKey takes precedence over AccessToken;
	// AccountID is only meaningful together with APIKey.
	SiteID      string `json:"siteId,omitempty"`
	AccountID   string `json:"accountId,omitempty"`
	APIKey      string `json:"apiKey,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`

	// OAuth client credentials for the token command.
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
	InstanceID   string `json:"instanceId,omitempty"`

	// API tuning.
	BaseURL           string `json:"baseUrl,omitempty"`
	RequestsPerMinute int    `json:"requestsPerMinute,omitempty"`

	// Migration settings.
	SiteURL            string            `json:"siteUrl,omitempty"`
	OldDomain          string            `json:"oldDomain,omitempty"`
	DefaultMemberEmail string            `json:"defaultMemberEmail,omitempty"`
	CategoryMap        map[string]string `json:"categoryMap,omitempty"`
	DBPath             string            `json:"dbPath,omitempty"`
	Gemini             bool              `json:"gemini,omitempty"`
}

// LoadConfig reads the configuration file at path. A missing file yields a
// zero config so commands that need no credentials work without one.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration back to path.
func SaveConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

// defaultConfigPath returns the configuration file location, honoring the
// WIXPORT_CONFIG environment variable.
func defaultConfigPath() string {
	if path := os.Getenv("WIXPORT_CONFIG"); path != "" {
		return path
	}
	return "wixport.json"
}
