package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kelsos/lykke-cli/internal/config"
	"github.com/kelsos/lykke-cli/internal/logger"
	"github.com/kelsos/lykke-cli/internal/models"
	"github.com/kelsos/lykke-cli/internal/tui"
)

const apiKeyEnv = "LYKKE_API_KEY"

type options struct {
	configPath string
	logDir     string
	plain      bool

	// set by commands whose flags override config values
	executeOverride *bool
}

// buildConfig layers defaults, the optional file and the environment
func buildConfig(opts *options) (*config.Config, error) {
	cfg := config.NewConfig()

	if opts.configPath != "" {
		if err := cfg.LoadFromFile(opts.configPath); err != nil {
			return nil, err
		}
	}

	cfg.LoadFromEnvironment()
	if opts.executeOverride != nil {
		cfg.ExecuteOrders = *opts.executeOverride
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Debug("Using public API %s and HFT API %s", cfg.PublicURL, cfg.HFTURL)
	return cfg, nil
}

// param is a command value that can come from a flag or a prompt
type param struct {
	value *string
	field tui.Field
}

// fillParams prompts for every param whose flag was left empty
func fillParams(opts *options, title string, params ...param) error {
	var missing []param
	for _, p := range params {
		*p.value = strings.TrimSpace(*p.value)
		if *p.value == "" {
			missing = append(missing, p)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	if opts.plain {
		names := make([]string, 0, len(missing))
		for _, p := range missing {
			names = append(names, p.field.Key)
		}
		return fmt.Errorf("missing required values: %s", strings.Join(names, ", "))
	}

	fields := make([]tui.Field, 0, len(missing))
	for _, p := range missing {
		fields = append(fields, p.field)
	}

	values, err := tui.Ask(title, fields)
	if err != nil {
		return err
	}

	for _, p := range missing {
		*p.value = values[p.field.Key]
	}

	for _, p := range missing {
		if p.field.Validate == nil {
			continue
		}
		if err := p.field.Validate(*p.value); err != nil {
			return fmt.Errorf("%s: %w", p.field.Key, err)
		}
	}
	return nil
}

// apiKey reads the HFT key from the environment or asks for it masked
func apiKey(opts *options) (string, error) {
	if key := strings.TrimSpace(os.Getenv(apiKeyEnv)); key != "" {
		return key, nil
	}

	if opts.plain {
		return "", fmt.Errorf("%s is not set", apiKeyEnv)
	}

	key := ""
	err := fillParams(opts, "Lykke credentials", param{value: &key, field: tui.Field{
		Key:         "api_key",
		Label:       "HFT API key",
		Placeholder: "api key",
		Secret:      true,
		Validate:    required("API key"),
	}})
	return key, err
}

func required(name string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func positiveDecimal(v string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%q is not a number", v)
	}
	if !d.IsPositive() {
		return errors.New("must be greater than zero")
	}
	return nil
}

func validDirection(v string) error {
	_, err := models.ParseDirection(v)
	return err
}

func currencyFields(from, to *string) []param {
	return []param{
		{value: from, field: tui.Field{Key: "from", Label: "From currency", Placeholder: "BTC", Validate: required("from currency")}},
		{value: to, field: tui.Field{Key: "to", Label: "To currency", Placeholder: "ETH", Validate: required("to currency")}},
	}
}
