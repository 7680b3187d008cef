package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Spreadsheet source: a local path or an http(s) URL.
	Source    string `mapstructure:"source" yaml:"source"`
	Sheet     string `mapstructure:"sheet" yaml:"sheet"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Header patterns for the logical fields, tried in order.
	GroupPatterns     []string `mapstructure:"group_patterns" yaml:"group_patterns"`
	SubsectorPatterns []string `mapstructure:"subsector_patterns" yaml:"subsector_patterns"`

	PreviewLimit int      `mapstructure:"preview_limit" yaml:"preview_limit"`
	AllLabel     string   `mapstructure:"all_label" yaml:"all_label"`
	Locale       string   `mapstructure:"locale" yaml:"locale"`
	ChartPalette []string `mapstructure:"chart_palette" yaml:"chart_palette"`
	ChartSize    int      `mapstructure:"chart_size" yaml:"chart_size"`

	// HTTP server and remote fetch
	ListenAddr     string `mapstructure:"listen_addr" yaml:"listen_addr"`
	HTTPTimeoutSec int    `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
}

// DelimiterRune maps the delimiter setting to a rune; 0 means auto-detect.
func (g *Global) DelimiterRune() rune {
	switch strings.ToLower(strings.TrimSpace(g.Delimiter)) {
	case ",", "comma":
		return ','
	case ";", "semicolon":
		return ';'
	case "\t", "tab":
		return '\t'
	}
	return 0
}

// Defaults mirrors the values Load falls back to.
func Defaults() map[string]any {
	return map[string]any{
		"source":             "./Base de datos Grupo PRA.xlsx",
		"sheet":              "",
		"delimiter":          "",
		"group_patterns":     []string{"grupo", "grupos"},
		"subsector_patterns": []string{"subsector", "sub sector", "sector"},
		"preview_limit":      200,
		"all_label":          "Todos",
		"locale":             "es",
		"chart_palette": []string{
			"#3b82f6", "#f43f5e", "#10b981", "#f59e0b",
			"#6366f1", "#a78bfa", "#ef4444", "#22c55e",
		},
		"chart_size":       280,
		"listen_addr":      "127.0.0.1:8080",
		"http_timeout_sec": 30,
	}
}

// DefaultPath returns ~/.sectorlens/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".sectorlens", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.sectorlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
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

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
// A .env file in the working directory is applied to the environment first.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SECTORLENS")
	v.AutomaticEnv()

	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		// a missing file is fine (config set/init create it); a broken one is not
		if _, err := os.Stat(cfgFile); err == nil {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	} else {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.PreviewLimit <= 0 {
		c.PreviewLimit = 200
	}
	return &c, nil
}
