package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/geotally/internal/utils"
)

// Global configuration structure. Everything the pipeline needs is carried
// here explicitly; nothing reads package-level state, so independent runs
// and tests do not interfere.
type Global struct {
	// Loader
	FieldIndex int    `mapstructure:"field_index" yaml:"field_index"`
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`

	// Renderer
	Output      string `mapstructure:"output" yaml:"output"`
	MapType     string `mapstructure:"map_type" yaml:"map_type"`
	Title       string `mapstructure:"title" yaml:"title"`
	Subtitle    string `mapstructure:"subtitle" yaml:"subtitle"`
	SeriesName  string `mapstructure:"series_name" yaml:"series_name"`
	ScaleMargin int    `mapstructure:"scale_margin" yaml:"scale_margin"`
	Width       string `mapstructure:"width" yaml:"width"`
	Height      string `mapstructure:"height" yaml:"height"`

	// Run report sidecar
	WriteReport bool `mapstructure:"write_report" yaml:"write_report"`
}

func setDefaults(v *viper.Viper) {
	// The default column index matches the common contact-export layout
	// where the province lives in the fourth column.
	v.SetDefault("field_index", 3)
	v.SetDefault("delimiter", ",")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("output", "province_map.html")
	v.SetDefault("map_type", "china")
	v.SetDefault("title", "Contact province distribution")
	v.SetDefault("subtitle", "Tallied from a contact export")
	v.SetDefault("series_name", "Contacts")
	v.SetDefault("scale_margin", 1)
	v.SetDefault("width", "1000px")
	v.SetDefault("height", "800px")
	v.SetDefault("write_report", false)
}

// Defaults returns the built-in configuration without touching disk or env.
func Defaults() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by cmd) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("GEOTALLY")
	v.AutomaticEnv()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".geotally")
		_ = utils.EnsureDir(dir)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.geotally/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, ".geotally", "config.yaml")
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
