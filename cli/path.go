package cli

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/ardnew/pillar/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// baseHistory is the name of the REPL history file in the cache directory.
const baseHistory = "history"

// defaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// userDir returns the application directory under $env, falling back to the
// directory fallback reports, then to home/dot, then to the working
// directory.
func userDir(env string, fallback func() (string, error), dot string) string {
	dir := os.Getenv(env)
	if dir == "" || !filepath.IsAbs(dir) {
		var err error

		dir, err = fallback()
		if err != nil {
			dir, err = os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(dir, dot)
			} else if dir, err = os.Getwd(); err != nil {
				dir = "."
			}
		}
	}

	return filepath.Join(dir, pkg.Name)
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(func() string {
	return userDir("XDG_CONFIG_HOME", os.UserConfigDir, ".config")
})

// cacheDir returns the cache directory path used for transient files.
var cacheDir = sync.OnceValue(func() string {
	return userDir("XDG_CACHE_HOME", os.UserCacheDir, ".cache")
})

// configPath returns the path formed by joining the configuration directory
// with the given path elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	if err := os.MkdirAll(configDir(), defaultDirMode); err != nil {
		return err
	}

	return os.MkdirAll(cacheDir(), defaultDirMode)
}
