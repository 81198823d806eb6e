// Package config loads service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Feed endpoints and rate-limit policy. The NVD delay keeps the run under
// the published limit of 5 requests per 30 seconds.
const (
	defaultNVDBaseURL  = "https://services.nvd.nist.gov/rest/json/cves/2.0"
	defaultKEVURL      = "https://www.cisa.gov/sites/default/files/feeds/known_exploited_vulnerabilities.json"
	defaultEPSSBaseURL = "https://api.first.org/data/v1/epss"

	defaultNVDPageSize    = 2000
	defaultNVDPageDelay   = 6500 * time.Millisecond
	defaultEPSSBatchSize  = 100
	defaultEPSSBatchDelay = 1 * time.Second
	defaultCatalogWindow  = 7 * 24 * time.Hour
)

// Config holds everything the service reads at startup.
type Config struct {
	Port string

	NVDBaseURL  string
	KEVURL      string
	EPSSBaseURL string

	NVDPageSize    int
	NVDPageDelay   time.Duration
	EPSSBatchSize  int
	EPSSBatchDelay time.Duration
	CatalogWindow  time.Duration

	// Zero disables the background ingestion ticker; runs are then only
	// triggered through the admin endpoint.
	IngestInterval time.Duration
}

// fileConfig is the YAML schema; durations are Go duration strings
// ("6.5s", "1s", "168h").
type fileConfig struct {
	Port           string `yaml:"port"`
	NVDBaseURL     string `yaml:"nvd_base_url"`
	KEVURL         string `yaml:"kev_url"`
	EPSSBaseURL    string `yaml:"epss_base_url"`
	NVDPageSize    int    `yaml:"nvd_page_size"`
	NVDPageDelay   string `yaml:"nvd_page_delay"`
	EPSSBatchSize  int    `yaml:"epss_batch_size"`
	EPSSBatchDelay string `yaml:"epss_batch_delay"`
	CatalogWindow  string `yaml:"catalog_window"`
	IngestInterval string `yaml:"ingest_interval"`
}

// Defaults returns the built-in configuration, before file and environment
// overrides.
func Defaults() *Config {
	return &Config{
		Port:           "3000",
		NVDBaseURL:     defaultNVDBaseURL,
		KEVURL:         defaultKEVURL,
		EPSSBaseURL:    defaultEPSSBaseURL,
		NVDPageSize:    defaultNVDPageSize,
		NVDPageDelay:   defaultNVDPageDelay,
		EPSSBatchSize:  defaultEPSSBatchSize,
		EPSSBatchDelay: defaultEPSSBatchDelay,
		CatalogWindow:  defaultCatalogWindow,
	}
}

// Load reads the YAML file named by SENTINEL_CONFIG when present, then
// applies environment overrides on top of the defaults.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("SENTINEL_CONFIG"); path != "" {
		raw, err := os.ReadFile(path) // #nosec G304
		if err != nil {
			return nil, err
		}
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return nil, err
		}
		applyFile(cfg, fc)
	}

	cfg.Port = getEnvDefault("MS_PORT", cfg.Port)
	cfg.NVDBaseURL = getEnvDefault("SENTINEL_NVD_URL", cfg.NVDBaseURL)
	cfg.KEVURL = getEnvDefault("SENTINEL_KEV_URL", cfg.KEVURL)
	cfg.EPSSBaseURL = getEnvDefault("SENTINEL_EPSS_URL", cfg.EPSSBaseURL)
	cfg.IngestInterval = getEnvDuration("SENTINEL_INGEST_INTERVAL", cfg.IngestInterval)
	cfg.NVDPageSize = getEnvInt("SENTINEL_NVD_PAGE_SIZE", cfg.NVDPageSize)

	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.NVDBaseURL != "" {
		cfg.NVDBaseURL = fc.NVDBaseURL
	}
	if fc.KEVURL != "" {
		cfg.KEVURL = fc.KEVURL
	}
	if fc.EPSSBaseURL != "" {
		cfg.EPSSBaseURL = fc.EPSSBaseURL
	}
	if fc.NVDPageSize > 0 {
		cfg.NVDPageSize = fc.NVDPageSize
	}
	if fc.EPSSBatchSize > 0 {
		cfg.EPSSBatchSize = fc.EPSSBatchSize
	}
	cfg.NVDPageDelay = parseDur(fc.NVDPageDelay, cfg.NVDPageDelay)
	cfg.EPSSBatchDelay = parseDur(fc.EPSSBatchDelay, cfg.EPSSBatchDelay)
	cfg.CatalogWindow = parseDur(fc.CatalogWindow, cfg.CatalogWindow)
	cfg.IngestInterval = parseDur(fc.IngestInterval, cfg.IngestInterval)
}

func parseDur(val string, defVal time.Duration) time.Duration {
	if val == "" {
		return defVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defVal
	}
	return d
}

func getEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	return val
}

func getEnvInt(key string, defVal int) int {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defVal
	}
	return n
}

func getEnvDuration(key string, defVal time.Duration) time.Duration {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defVal
	}
	return d
}
