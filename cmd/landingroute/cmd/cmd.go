// Package cmd provides the landingroute subcommands. Flags are bound to the
// shared Viper instance so that they override config file and env values.
package cmd

import (
	"github.com/mfulz/landingroute/internal/config"
	"github.com/mfulz/landingroute/internal/configloader"
	"github.com/mfulz/landingroute/internal/route"
	"github.com/mfulz/landingroute/internal/termindex"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Viper holds flag bindings; config.LoadConfig reads into it.
var Viper = viper.New()

// FS is the filesystem configuration files and the dataset are read from.
var FS afero.Fs = afero.NewOsFs()

func bind(flags *pflag.FlagSet, key, name string) {
	if err := Viper.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(err)
	}
}

func loadedConfig() *config.Config {
	return configloader.MustGetConfig[*config.Config]()
}

func buildIndex(cfg *config.Config) (*termindex.Index, error) {
	return termindex.Build(FS, cfg.Sources.Extension, cfg.IndexSources()...)
}

func newResolver(cfg *config.Config, idx *termindex.Index) *route.Resolver {
	return route.NewResolver(FS, idx, cfg.RouteOptions())
}

// RegisterSourceFlags adds the search location flags shared by every
// subcommand to the root's persistent flags.
func RegisterSourceFlags(flags *pflag.FlagSet) {
	flags.String("flat-dir", "", "Flat directory of term configurations (highest priority)")
	flags.String("tree-dir", "", "Directory tree of term configurations")
	bind(flags, "sources.flat_dir", "flat-dir")
	bind(flags, "sources.tree_dir", "tree-dir")
}
