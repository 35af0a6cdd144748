// Package config provides loading and parsing of the landingroute
// configuration file using Viper. It defines the full configuration schema,
// its defaults, and publishes the loaded result through configloader.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mfulz/landingroute/internal/configloader"
	"github.com/mfulz/landingroute/internal/logging"
	"github.com/mfulz/landingroute/internal/route"
	"github.com/mfulz/landingroute/internal/termindex"
	"github.com/spf13/viper"
)

// FileName is the config file looked up by configloader.ResolveConfigPath.
const FileName = "landingroute.yaml"

// EnvPrefix prefixes environment overrides, e.g. LANDINGROUTE_DATASET_PATH.
const EnvPrefix = "LANDINGROUTE"

// Config represents the full structure of landingroute.yaml.
type Config struct {
	Dataset DatasetConfig  `mapstructure:"dataset"`
	Sources SourcesConfig  `mapstructure:"sources"`
	Route   RouteConfig    `mapstructure:"route"`
	Output  OutputConfig   `mapstructure:"output"`
	Logger  logging.Config `mapstructure:"log"`
}

// DatasetConfig names the input table and its relevant columns.
type DatasetConfig struct {
	Path         string `mapstructure:"path"`          // input CSV
	Output       string `mapstructure:"output"`        // defaults to Path (rewrite in place)
	TermColumn   string `mapstructure:"term_column"`   // term identifier column
	EntityColumn string `mapstructure:"entity_column"` // entity name column
	RouteColumn  string `mapstructure:"route_column"`  // column replaced with results
}

// SourcesConfig lists where term configuration files are searched.
// The flat directory always outranks the tree.
type SourcesConfig struct {
	FlatDir          string `mapstructure:"flat_dir"`
	TreeDir          string `mapstructure:"tree_dir"`
	Extension        string `mapstructure:"extension"`
	ReportDuplicates bool   `mapstructure:"report_duplicates"` // warn for every shadowed duplicate
}

// RouteConfig controls key precedence and placeholder substitution.
type RouteConfig struct {
	PrimaryKey  string `mapstructure:"primary_key"`
	FallbackKey string `mapstructure:"fallback_key"`
	Placeholder string `mapstructure:"placeholder"`
}

// OutputConfig names the route list and the optional YAML run report.
type OutputConfig struct {
	RoutesFile string `mapstructure:"routes_file"`
	ReportFile string `mapstructure:"report_file"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dataset.term_column", "atlas_term")
	v.SetDefault("dataset.entity_column", "entidad")
	v.SetDefault("dataset.route_column", route.DefaultPrimaryKey)

	v.SetDefault("sources.flat_dir", "params_Ingestas")
	v.SetDefault("sources.tree_dir", "atlas_prod-main")
	v.SetDefault("sources.extension", termindex.DefaultExtension)
	v.SetDefault("sources.report_duplicates", false)

	v.SetDefault("route.primary_key", route.DefaultPrimaryKey)
	v.SetDefault("route.fallback_key", route.DefaultFallbackKey)
	v.SetDefault("route.placeholder", route.DefaultPlaceholder)

	v.SetDefault("output.routes_file", "rutas_landing.txt")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.to_stderr", true)
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
}

// LoadConfig reads the config file into v (if one is found), applies env
// overrides, unmarshals the result and registers it with configloader.
// An explicit path must exist; otherwise a missing file means defaults only.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		found, err := configloader.ResolveConfigPath(FileName)
		if err != nil && !errors.Is(err, configloader.ErrNoConfig) {
			return nil, err
		}
		path = found
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}
	if cfg.Dataset.Output == "" {
		cfg.Dataset.Output = cfg.Dataset.Path
	}

	configloader.SetConfig(&cfg)
	configloader.SetConfig(&cfg.Logger)
	return &cfg, nil
}

// Validate checks the settings a batch run cannot do without.
func (c *Config) Validate() error {
	if c.Dataset.Path == "" {
		return errors.New("dataset.path is required")
	}
	if c.Output.RoutesFile == "" {
		return errors.New("output.routes_file is required")
	}
	return nil
}

// IndexSources returns the search locations in precedence order.
func (c *Config) IndexSources() []termindex.Source {
	return []termindex.Source{
		{Dir: c.Sources.FlatDir, Priority: 0},
		{Dir: c.Sources.TreeDir, Recursive: true, Priority: 1},
	}
}

// RouteOptions converts the route settings for route.NewResolver.
func (c *Config) RouteOptions() route.Options {
	return route.Options{
		PrimaryKey:  c.Route.PrimaryKey,
		FallbackKey: c.Route.FallbackKey,
		Placeholder: c.Route.Placeholder,
		Extension:   c.Sources.Extension,
	}
}
