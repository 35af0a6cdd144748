// Package logging owns the process-wide zap logger of landingroute.
//
// Batch progress (index size, per-row outcomes at debug level, written
// outputs) goes through Log. Sinks and level come from the `log` section of
// landingroute.yaml; until that is loaded, Log writes info and above to
// stderr so stdout stays free for command output.
package logging

import (
	"io"
	"os"

	"github.com/mfulz/landingroute/internal/configloader"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is the `log` section of landingroute.yaml.
type Config struct {
	Level      string `mapstructure:"level"` // debug shows one line per dataset row
	ToStdout   bool   `mapstructure:"to_stdout"`
	ToStderr   bool   `mapstructure:"to_stderr"`   // default sink
	ToFile     bool   `mapstructure:"to_file"`     // requires FilePath
	FilePath   string `mapstructure:"file"`        // e.g. ./landingroute.log
	MaxSizeMB  int    `mapstructure:"max_size"`    // rotate after this many MB
	MaxAge     int    `mapstructure:"max_age"`     // days to keep rotated files
	MaxBackups int    `mapstructure:"max_backups"` // rotated files to keep
	Compress   bool   `mapstructure:"compress"`    // gzip rotated files
}

// Log is the shared sugared logger.
var Log *zap.SugaredLogger

// Init swaps Log for one built from the registered *Config.
func Init() error {
	Log = New(configloader.MustGetConfig[*Config]()).Sugar()
	return nil
}

// New builds a logger for cfg. An unknown level falls back to info and a
// config without sinks logs to stderr.
func New(cfg *Config) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)

	level := zapcore.InfoLevel
	_ = level.Set(cfg.Level)

	var cores []zapcore.Core
	for _, w := range sinks(cfg) {
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), level))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

func sinks(cfg *Config) []io.Writer {
	var out []io.Writer
	if cfg.ToStdout {
		out = append(out, os.Stdout)
	}
	if cfg.ToStderr {
		out = append(out, os.Stderr)
	}
	if cfg.ToFile && cfg.FilePath != "" {
		out = append(out, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}
	if len(out) == 0 {
		out = append(out, os.Stderr)
	}
	return out
}

func init() {
	configloader.RegisterConfig(&Config{Level: "info", ToStderr: true})
	_ = Init()
}
