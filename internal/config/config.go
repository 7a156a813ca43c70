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

const configBaseName = "schedule_config"

// DemandOverride adjusts staffing demand on the dates matched by an rrule
type DemandOverride struct {
	RRule string `yaml:"rrule" validate:"required"`

	// ShiftID limits the override to one shift template (empty = every template)
	ShiftID string `yaml:"shiftID,omitempty"`

	// Required replaces the weekly requirement on matching dates
	Required *int `yaml:"required,omitempty" validate:"omitempty,min=0"`

	// Closed removes all demand on matching dates
	Closed bool `yaml:"closed,omitempty"`
}

// SolverConfig holds the soft constraints and size limits applied to every schedule
type SolverConfig struct {
	MaxConsecutiveDays int     `yaml:"maxConsecutiveDays" validate:"min=0"`
	MaxWeeklyHours     float64 `yaml:"maxWeeklyHours" validate:"min=0"`
	EnforceWeeklyHours bool    `yaml:"enforceWeeklyHours"`
	MaxStaff           int     `yaml:"maxStaff" validate:"min=0"`
	MaxShiftTemplates  int     `yaml:"maxShiftTemplates" validate:"min=0"`

	// Locale selects the warning message language ("en" or "vi")
	Locale string `yaml:"locale,omitempty" validate:"omitempty,oneof=en vi"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL     string           `yaml:"databaseURL" validate:"required"`
	HTTPAddr        string           `yaml:"httpAddr"`
	Timezone        string           `yaml:"timezone,omitempty"`
	Solver          SolverConfig     `yaml:"solver"`
	DemandOverrides []DemandOverride `yaml:"demandOverrides,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns a config populated with the default values.
// DatabaseURL has no default.
func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		Solver: SolverConfig{
			MaxConsecutiveDays: 6,
			MaxWeeklyHours:     48,
			MaxStaff:           10,
			MaxShiftTemplates:  3,
			Locale:             "en",
		},
	}
}

// Load loads and validates the configuration from schedule_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads schedule_config.<env>.yaml, falling back to schedule_config.yaml
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Fields absent from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the timezone and rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
	}

	for i, override := range cfg.DemandOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in demandOverrides[%d]: %w", i, err)
		}
		if !override.Closed && override.Required == nil {
			return fmt.Errorf("demandOverrides[%d] must set either required or closed", i)
		}
	}

	return nil
}

// Location returns the configured timezone, or UTC when none is set
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// findConfigFile searches the current directory and then the home directory,
// preferring schedule_config.<env>.yaml over schedule_config.yaml in each
func findConfigFile(env string) (string, error) {
	var names []string
	if env != "" {
		names = append(names, fmt.Sprintf("%s.%s.yaml", configBaseName, env))
	}
	names = append(names, configBaseName+".yaml")

	dirs := []string{"."}
	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, homeDir)
	}

	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
