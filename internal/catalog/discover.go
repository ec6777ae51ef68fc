package catalog

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
)

// Discover searches the platform default Lightroom CC data directory for
// catalog databases. Zero, one, or several paths may come back; the CLI
// prompts when there is a choice to make.
func Discover() ([]string, error) {
	base, err := defaultDataDir()
	if err != nil || base == "" {
		return nil, err
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var catalogs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(base, entry.Name(), CatalogFileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			catalogs = append(catalogs, candidate)
		}
	}
	sort.Strings(catalogs)
	return catalogs, nil
}

func defaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			return "", nil
		}
		return filepath.Join(localAppData, "Adobe", "Lightroom CC", "Data"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "Adobe", "Lightroom CC", "Data"), nil
	default:
		// Lightroom CC does not ship for other platforms; rely on explicit
		// configuration there.
		return "", nil
	}
}
