package config

import "strings"

// normalize expands path fields and lowercases enum-like values. Empty
// fields fall back to defaults so a sparse config file still loads cleanly.
func (c *Config) normalize() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	logDir, err := expandPath(c.Paths.LogDir)
	if err != nil {
		return err
	}
	c.Paths.LogDir = logDir

	if strings.TrimSpace(c.Catalog.Path) != "" {
		catalogPath, err := expandPath(c.Catalog.Path)
		if err != nil {
			return err
		}
		c.Catalog.Path = catalogPath
	} else {
		c.Catalog.Path = ""
	}

	c.Organize.Naming = strings.ToLower(strings.TrimSpace(c.Organize.Naming))
	if c.Organize.Naming == "" {
		c.Organize.Naming = defaultNaming
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	return nil
}
