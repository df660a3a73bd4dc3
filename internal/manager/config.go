package manager

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/hoppxi/svgico/config"
	"github.com/hoppxi/svgico/internal/icon"
	"github.com/hoppxi/svgico/internal/raster"
)

const EnvPrefix = "SVGICO"

type Config struct {
	InputDir        string `mapstructure:"input_dir" yaml:"input_dir"`
	OutputDir       string `mapstructure:"output_dir" yaml:"output_dir"`
	Sizes           []int  `mapstructure:"sizes" yaml:"sizes,flow"`
	SourceFillColor string `mapstructure:"source_fill_color" yaml:"source_fill_color"`
	Color           string `mapstructure:"color" yaml:"color,omitempty"`
	Supersample     int    `mapstructure:"supersample" yaml:"supersample"`
	SVGErrors       string `mapstructure:"svg_errors" yaml:"svg_errors"`
	ValidateColor   bool   `mapstructure:"validate_color" yaml:"validate_color"`

	// ColorSet is true when a color came from a flag, the environment or a
	// config file, even if it is empty.
	ColorSet bool `mapstructure:"-" yaml:"-"`
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"input":  "input_dir",
	"output": "output_dir",
	"sizes":  "sizes",
	"color":  "color",
}

type ConfigManager struct {
	// File is an explicit config file. When empty, ./svgico.yaml is merged
	// if it exists.
	File  string
	Flags *pflag.FlagSet
}

// Load layers built-in defaults, the config file, SVGICO_* environment
// variables and flags, in increasing priority.
func (c *ConfigManager) Load() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults, err := config.Defaults()
	if err != nil {
		return nil, xerrors.Errorf("read built-in config: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, xerrors.Errorf("parse built-in config: %w", err)
	}

	switch {
	case c.File != "":
		v.SetConfigFile(c.File)
		if err := v.MergeInConfig(); err != nil {
			return nil, xerrors.Errorf("failed to read config %s: %w", c.File, err)
		}
	default:
		if _, err := os.Stat(config.FileName); err == nil {
			v.SetConfigFile(config.FileName)
			if err := v.MergeInConfig(); err != nil {
				return nil, xerrors.Errorf("failed to read config %s: %w", config.FileName, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, xerrors.Errorf("stat %s: %w", config.FileName, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Not in the built-in file, so the environment needs an explicit binding.
	if err := v.BindEnv("color"); err != nil {
		return nil, xerrors.Errorf("bind color env: %w", err)
	}

	if c.Flags != nil {
		for name, key := range flagKeys {
			f := c.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, xerrors.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	return v, nil
}

// Decode loads, validates and resolves the configuration.
func (c *ConfigManager) Decode() (Config, error) {
	v, err := c.Load()
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, xerrors.Errorf("decode config: %w", err)
	}
	cfg.ColorSet = v.IsSet("color")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if err := cfg.Resolve(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	var errs []error
	if cfg.InputDir == "" {
		errs = append(errs, xerrors.New("input_dir is empty"))
	}
	if cfg.OutputDir == "" {
		errs = append(errs, xerrors.New("output_dir is empty"))
	}
	if cfg.SourceFillColor == "" {
		errs = append(errs, xerrors.New("source_fill_color is empty"))
	}
	if len(cfg.Sizes) == 0 {
		errs = append(errs, xerrors.New("sizes is empty"))
	}
	seen := map[int]bool{}
	for _, s := range cfg.Sizes {
		if s < 1 || s > icon.MaxSize {
			errs = append(errs, xerrors.Errorf("size %d out of range 1..%d", s, icon.MaxSize))
		}
		if seen[s] {
			errs = append(errs, xerrors.Errorf("size %d listed twice", s))
		}
		seen[s] = true
	}
	if cfg.Supersample < 1 {
		errs = append(errs, xerrors.Errorf("supersample must be at least 1, got %d", cfg.Supersample))
	}
	if _, err := raster.ParseErrorMode(cfg.SVGErrors); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return xerrors.Errorf("invalid config: %w", err)
	}
	return nil
}

// Resolve makes the directories absolute against the working directory.
func (cfg *Config) Resolve() error {
	in, err := filepath.Abs(cfg.InputDir)
	if err != nil {
		return xerrors.Errorf("resolve input_dir: %w", err)
	}
	out, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return xerrors.Errorf("resolve output_dir: %w", err)
	}
	cfg.InputDir, cfg.OutputDir = in, out
	return nil
}
