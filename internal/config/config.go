package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"

	env "github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/koskimas/json2code/internal/ptr"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile = "json2code.yaml"
	EnvPrefix   = "JSON2CODE_"
)

// Config is the merged configuration of a run. Values are read from a YAML
// file, then from `JSON2CODE_` prefixed environment variables and finally
// from command line flags, each overriding the previous.
type Config struct {
	File      string   `yaml:"file" env:"FILE" validate:"required_without=InDir,excluded_with=InDir"`
	InDir     string   `yaml:"indir" env:"INDIR" validate:"required_without=File"`
	Pattern   string   `yaml:"pattern" env:"PATTERN" validate:"required"`
	OutDir    string   `yaml:"outdir" env:"OUTDIR" validate:"required"`
	Output    string   `yaml:"output" env:"OUTPUT" validate:"excluded_with=InDir"`
	Package   string   `yaml:"package" env:"PACKAGE" validate:"required,goident"`
	SQLSchema string   `yaml:"sqlSchema" env:"SQL_SCHEMA"`
	Combined  string   `yaml:"combined" env:"COMBINED"`
	Targets   []string `yaml:"targets" env:"TARGETS" envSeparator:"," validate:"required,min=1,unique,dive,oneof=go sql ir"`
	Debug     int      `yaml:"debug" env:"DEBUG" validate:"min=0,max=2"`
	Check     bool     `yaml:"check" env:"CHECK"`

	// ValidateInput turns on structural validation of the input documents.
	ValidateInput bool `yaml:"validate" env:"VALIDATE"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return token.IsIdentifier(s) && !token.IsKeyword(s)
	})

	return v
}

func Default() Config {
	return Config{
		Pattern:  "*.json",
		OutDir:   "autogen",
		Package:  "api",
		Combined: "autogen/manifest.yaml",
		Targets:  []string{"go"},
		Debug:    1,
	}
}

// Read reads a config file on top of the defaults.
func Read(configPath string) (*Config, error) {
	config := Default()

	fileData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf(`failed to read config file "%s": %w`, configPath, err)
	}

	if err := yaml.Unmarshal(fileData, &config); err != nil {
		return nil, fmt.Errorf(`failed to unmarshal config file "%s": %w`, configPath, err)
	}

	return &config, nil
}

// Load reads `configPath` if it exists and applies the environment. A missing
// file is only an error when `required` is set.
func Load(configPath string, required bool) (*Config, error) {
	config, err := Read(configPath)
	if errors.Is(err, os.ErrNotExist) && !required {
		config = ptr.V(Default())
	} else if err != nil {
		return nil, err
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}

	return config, nil
}

func ApplyEnv(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf(`failed to parse environment variables: %w`, err)
	}

	return nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf(`invalid configuration: %w`, err)
	}

	return nil
}
