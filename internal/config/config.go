package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPublicURL = "https://public-api.lykke.com/api"
	DefaultHFTURL    = "https://hft-api.lykke.com/api"
)

// Config holds all application configuration
type Config struct {
	// Exchange name used in error messages
	ExchangeName string `yaml:"exchange_name"`

	// API settings
	PublicURL string `yaml:"public_url"`
	HFTURL    string `yaml:"hft_url"`

	// HTTP settings
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// Serialization settings
	StrictDecoding bool `yaml:"strict_decoding"`

	// Order settings
	ExecuteOrders bool `yaml:"execute_orders"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		ExchangeName:   "Lykke Exchange",
		PublicURL:      DefaultPublicURL,
		HFTURL:         DefaultHFTURL,
		RequestTimeout: 30 * time.Second,
	}
}

// LoadFromFile overlays the values found in a YAML file
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() {
	if name := os.Getenv("LYKKE_EXCHANGE_NAME"); name != "" {
		c.ExchangeName = name
	}

	if publicURL := os.Getenv("LYKKE_PUBLIC_URL"); publicURL != "" {
		c.PublicURL = publicURL
	}

	if hftURL := os.Getenv("LYKKE_HFT_URL"); hftURL != "" {
		c.HFTURL = hftURL
	}

	if timeout := os.Getenv("LYKKE_REQUEST_TIMEOUT"); timeout != "" {
		if t, err := time.ParseDuration(timeout); err == nil {
			c.RequestTimeout = t
		} else if s, err := strconv.Atoi(timeout); err == nil {
			c.RequestTimeout = time.Duration(s) * time.Second
		}
	}

	if strict := os.Getenv("LYKKE_STRICT_DECODING"); strict != "" {
		if b, err := strconv.ParseBool(strict); err == nil {
			c.StrictDecoding = b
		}
	}

	if execute := os.Getenv("LYKKE_EXECUTE_ORDERS"); execute != "" {
		if b, err := strconv.ParseBool(execute); err == nil {
			c.ExecuteOrders = b
		}
	}
}

// Normalize trims trailing slashes from the base URLs
func (c *Config) Normalize() {
	c.PublicURL = strings.TrimRight(c.PublicURL, "/")
	c.HFTURL = strings.TrimRight(c.HFTURL, "/")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ExchangeName == "" {
		return fmt.Errorf("exchange name cannot be empty")
	}

	if err := validateURL("public", c.PublicURL); err != nil {
		return err
	}

	if err := validateURL("hft", c.HFTURL); err != nil {
		return err
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got: %s", c.RequestTimeout)
	}

	return nil
}

func validateURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s URL cannot be empty", name)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s URL %q: %w", name, raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s URL must be http or https, got: %q", name, raw)
	}

	return nil
}
