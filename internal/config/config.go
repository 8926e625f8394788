package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const configFileName = "roster_config.yaml"

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// LookbackDays is the rotation history window. Zero means the engine
	// default (90).
	LookbackDays int `yaml:"lookbackDays,omitempty" validate:"omitempty,min=1,max=365"`

	// HospitalityCount is how many hospitality picks each roster gets.
	// Zero means the engine default (2).
	HospitalityCount int `yaml:"hospitalityCount,omitempty" validate:"omitempty,min=1"`

	// SocialMediaPreferred names the person who gets first refusal on the
	// social media role
	SocialMediaPreferred string `yaml:"socialMediaPreferred,omitempty"`

	// ServiceRule is an RFC 5545 recurrence rule for service dates, e.g.
	// "FREQ=WEEKLY;BYDAY=SU". When set, generate can target the next
	// occurrence without an explicit date.
	ServiceRule string `yaml:"serviceRule,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from roster_config.yaml,
// looking in the current directory first, then the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.ServiceRule != "" {
		if _, err := rrule.StrToRRule(cfg.ServiceRule); err != nil {
			return fmt.Errorf("invalid serviceRule: %w", err)
		}
	}

	return nil
}

// NextServiceDate returns the first service occurrence on or after now,
// derived from the configured recurrence rule
func (c *Config) NextServiceDate(now time.Time) (time.Time, error) {
	if c.ServiceRule == "" {
		return time.Time{}, fmt.Errorf("no serviceRule configured; pass an explicit date")
	}

	rule, err := rrule.StrToRRule(c.ServiceRule)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid serviceRule: %w", err)
	}

	// Anchor the rule just before now so After finds the next occurrence
	rule.DTStart(now.AddDate(0, 0, -1))

	next := rule.After(now, true)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("serviceRule yields no occurrence after %s", now.Format("2006-01-02"))
	}

	return next, nil
}

// findConfigFile searches for roster_config.yaml in the current directory
// and the home directory
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
