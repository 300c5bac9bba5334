// Package config manages YAML-based configuration, environment overrides, and CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvRootDir = "FS_ROOT_DIR"
	EnvPort    = "DIRVIEW_PORT"
)

// DefaultConfigFile is loaded from the working directory when no --config is given.
const DefaultConfigFile = "dirview.yaml"

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `yaml:"level" validate:"required,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"required,oneof=json console"`
}

// Config holds all configuration options for dirview
type Config struct {
	// Root is the directory every request path is resolved against.
	Root string `yaml:"root" validate:"required"`

	Port      int `yaml:"port" validate:"gt=0,lte=65535"`
	AdminPort int `yaml:"admin_port" validate:"gte=0,lte=65535,nefield=Port"`

	// ConfineToRoot rejects request paths that escape Root via "..".
	ConfineToRoot bool `yaml:"confine_to_root"`

	// Watch streams change events for files under Root on the admin listener.
	Watch   bool     `yaml:"watch"`
	Exclude []string `yaml:"exclude"`

	MarkdownExtensions []string `yaml:"markdown_extensions" validate:"dive,startswith=."`

	Log LogConfig `yaml:"log"`

	// Internal: path of the config file that was loaded, if any
	configPath string
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	return &Config{
		Root:               root,
		Port:               8080,
		AdminPort:          9090,
		Watch:              false,
		Exclude:            []string{".git", ".svn", "node_modules"},
		MarkdownExtensions: []string{".md", ".markdown"},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the config file, the
// environment, and args (highest precedence last).
func Load(args []string) (*Config, error) {
	cfg := DefaultConfig()

	flags := flag.NewFlagSet("dirview", flag.ContinueOnError)
	root := flags.String("root", "", "Directory to serve (default: $FS_ROOT_DIR or the working directory)")
	port := flags.Int("port", 0, "HTTP server port")
	adminPort := flags.Int("admin-port", -1, "Admin server port for metrics, health and events (0 disables)")
	confine := flags.Bool("confine", false, "Reject paths that escape the root directory")
	watch := flags.Bool("watch", false, "Stream file change events on the admin server")
	logLevel := flags.String("log-level", "", "Log level (debug, info, warn, error)")
	configFile := flags.String("config", "", "Configuration file path")

	flags.StringVar(root, "r", "", "Directory to serve (shorthand)")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// Determine config file path
	cfgPath := *configFile
	if cfgPath == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgPath = DefaultConfigFile
		}
	}
	if cfgPath != "" {
		if err := cfg.loadFromFile(cfgPath); err != nil {
			return nil, fmt.Errorf("load config %s: %w", cfgPath, err)
		}
		cfg.configPath = cfgPath
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	// Command line flags override everything else (only if explicitly set)
	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *root != "" {
		cfg.Root = *root
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *adminPort >= 0 {
		cfg.AdminPort = *adminPort
	}
	if set["confine"] {
		cfg.ConfineToRoot = *confine
	}
	if set["watch"] {
		cfg.Watch = *watch
	}
	if *logLevel != "" {
		cfg.Log.Level = strings.ToLower(*logLevel)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRootDir); ok && v != "" {
		c.Root = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		c.Port = p
	}
	return nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate checks field constraints. The root is not required to exist:
// a missing root is reported per request.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfigFilePath returns the path to the loaded config file, or "" if none was used
func (c *Config) GetConfigFilePath() string {
	return c.configPath
}

// IsExcluded checks if a path should be excluded from change events
func (c *Config) IsExcluded(path string) bool {
	base := filepath.Base(path)
	for _, exclude := range c.Exclude {
		if matched, _ := filepath.Match(exclude, base); matched {
			return true
		}
	}
	return false
}

// IsMarkdownFile checks if a file has a markdown extension
func (c *Config) IsMarkdownFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.MarkdownExtensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
