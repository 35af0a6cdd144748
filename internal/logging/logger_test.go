package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mfulz/landingroute/internal/configloader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestDefaultLoggerIsReady(t *testing.T) {
	require.NotNil(t, Log)
	Log.Debugw("probe", "k", "v")
}

func TestNewHonoursLevel(t *testing.T) {
	l := New(&Config{Level: "warn", ToStderr: true})
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l = New(&Config{Level: "bogus"})
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lr.log")
	prev := configloader.MustGetConfig[*Config]()
	t.Cleanup(func() {
		configloader.SetConfig(prev)
		_ = Init()
	})

	configloader.SetConfig(&Config{Level: "debug", ToFile: true, FilePath: path, MaxSizeMB: 1})
	require.NoError(t, Init())
	Log.Infow("[landingroute] hello", "rows", 3)
	_ = Log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "rows")
}

func TestSinks(t *testing.T) {
	assert.Equal(t, []io.Writer{os.Stderr}, sinks(&Config{}))
	assert.Len(t, sinks(&Config{ToStdout: true, ToStderr: true}), 2)
	assert.Len(t, sinks(&Config{ToFile: true}), 1, "file sink needs a path")

	ws := sinks(&Config{ToFile: true, FilePath: "x.log", MaxSizeMB: 5})
	require.Len(t, ws, 1)
	lj, ok := ws[0].(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, 5, lj.MaxSize)
}
