package configloader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfigPath names the environment variable that pins the config file.
const EnvConfigPath = "LANDINGROUTE_CONFIG"

// ErrNoConfig is returned when no config file exists in any search location.
var ErrNoConfig = errors.New("no config file found")

// ResolveConfigPath returns the best config path for the given file name.
// It checks, in order:
// 1. $LANDINGROUTE_CONFIG if set (used as-is, even if missing)
// 2. ./<file>
// 3. ~/.landingroute/<file>
// 4. /etc/landingroute/<file>
func ResolveConfigPath(file string) (string, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env, nil
	}

	candidates := []string{file}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".landingroute", file))
	}
	candidates = append(candidates, filepath.Join("/etc/landingroute", file))

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoConfig, file)
}
