package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DataPaths holds the locations the assistant reads and writes
type DataPaths struct {
	BasePath  string // per-user data directory
	StatePath string // default state database
	CacheDir  string // catalogue snapshot directory
}

// DetectDataPaths resolves the per-user data directory for the current OS
func DetectDataPaths() (DataPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DataPaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	var basePath string
	switch runtime.GOOS {
	case "darwin":
		basePath = filepath.Join(home, "Library/Application Support/routine-assistant")
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			basePath = filepath.Join(xdg, "routine-assistant")
		} else {
			basePath = filepath.Join(home, ".local/share/routine-assistant")
		}
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		basePath = filepath.Join(appData, "routine-assistant")
	default:
		return DataPaths{}, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}

	return DataPathsAt(basePath), nil
}

// DataPathsAt lays out the data files under basePath
func DataPathsAt(basePath string) DataPaths {
	return DataPaths{
		BasePath:  basePath,
		StatePath: filepath.Join(basePath, "state.db"),
		CacheDir:  filepath.Join(basePath, "cache"),
	}
}

// DefaultDataDir returns the per-user data directory, or ".routine-assistant" when it cannot be detected
func DefaultDataDir() string {
	paths, err := DetectDataPaths()
	if err != nil {
		LogDebug("Falling back to local data dir: %v", err)
		return ".routine-assistant"
	}
	return paths.BasePath
}

// ConfigFilePath returns the config.yaml path inside the data directory
func (dp DataPaths) ConfigFilePath() string {
	return filepath.Join(dp.BasePath, "config.yaml")
}

// StateExists checks if the state database file exists
func (dp DataPaths) StateExists() bool {
	_, err := os.Stat(dp.StatePath)
	return err == nil
}
