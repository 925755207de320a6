package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/streamstats-cli/internal/utils"
)

const (
	envPrefix = "STREAMSTATS"
	dirName   = ".streamstats"
)

// Global configuration structure.
type Global struct {
	DataFile string `mapstructure:"data_file" yaml:"data_file"`

	// Diagnostics log; empty writes to stderr
	LogFile       string `mapstructure:"log_file" yaml:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb" yaml:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups" yaml:"log_max_backups"`
	Verbose       bool   `mapstructure:"verbose" yaml:"verbose"`

	// Input parsing
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`

	// Query defaults
	PlotWidth     int     `mapstructure:"plot_width" yaml:"plot_width"`
	PlotHeight    int     `mapstructure:"plot_height" yaml:"plot_height"`
	TopN          int     `mapstructure:"top_n" yaml:"top_n"`
	SoloThreshold float64 `mapstructure:"solo_threshold" yaml:"solo_threshold"`
	CondTopN      int     `mapstructure:"cond_top_n" yaml:"cond_top_n"`
}

// keys lists every configuration key, sorted.
var keys = []string{
	"cond_top_n", "data_file", "delimiter", "log_file", "log_max_backups", "log_max_size_mb",
	"plot_height", "plot_width", "sheet_index", "sheet_name", "solo_threshold", "top_n", "verbose",
}

// Keys lists the configuration keys in alphabetical order.
func Keys() []string {
	return slices.Clone(keys)
}

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		DataFile:      "artists.csv",
		LogFile:       "logs",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		Delimiter:     ",",
		SheetIndex:    1,
		PlotWidth:     60,
		PlotHeight:    20,
		TopN:          10,
		SoloThreshold: 0.70,
		CondTopN:      10,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data_file", d.DataFile)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_max_size_mb", d.LogMaxSizeMB)
	v.SetDefault("log_max_backups", d.LogMaxBackups)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("sheet_name", d.SheetName)
	v.SetDefault("sheet_index", d.SheetIndex)
	v.SetDefault("plot_width", d.PlotWidth)
	v.SetDefault("plot_height", d.PlotHeight)
	v.SetDefault("top_n", d.TopN)
	v.SetDefault("solo_threshold", d.SoloThreshold)
	v.SetDefault("cond_top_n", d.CondTopN)
}

// Path resolves the config file: cfgFile if set, else ~/.streamstats/config.yaml.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.streamstats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine; a broken one is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Set assigns one key from its string form, converting with cast.
func (c *Global) Set(key, value string) error {
	var err error
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "data_file":
		c.DataFile = value
	case "log_file":
		c.LogFile = value
	case "log_max_size_mb":
		c.LogMaxSizeMB, err = cast.ToIntE(value)
	case "log_max_backups":
		c.LogMaxBackups, err = cast.ToIntE(value)
	case "verbose":
		c.Verbose, err = cast.ToBoolE(value)
	case "delimiter":
		c.Delimiter = value
	case "sheet_name":
		c.SheetName = value
	case "sheet_index":
		c.SheetIndex, err = cast.ToIntE(value)
	case "plot_width":
		c.PlotWidth, err = cast.ToIntE(value)
	case "plot_height":
		c.PlotHeight, err = cast.ToIntE(value)
	case "top_n":
		c.TopN, err = cast.ToIntE(value)
	case "solo_threshold":
		c.SoloThreshold, err = cast.ToFloat64E(value)
	case "cond_top_n":
		c.CondTopN, err = cast.ToIntE(value)
	default:
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}
