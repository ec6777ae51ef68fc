package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"lrsort/internal/catalog"
	"lrsort/internal/config"
	"lrsort/internal/logging"
)

type commandContext struct {
	configFlag  *string
	libraryFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, libraryFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		libraryFlag: libraryFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the run logger once, tagging every line with a fresh
// correlation id.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	})
	return c.logger, c.loggerErr
}

// openCatalog resolves the catalog location (flag, config, then platform
// discovery) and opens it read-only. A directory path is accepted and
// completed with the catalog file name.
func (c *commandContext) openCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	path := ""
	if c.libraryFlag != nil {
		path = strings.TrimSpace(*c.libraryFlag)
	}
	if path == "" {
		path = cfg.Catalog.Path
	}
	if path == "" {
		path, err = c.discoverCatalog(cmd)
		if err != nil {
			return nil, err
		}
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if info, statErr := os.Stat(expanded); statErr == nil && info.IsDir() {
		expanded = filepath.Join(expanded, catalog.CatalogFileName)
	}

	return catalog.Open(expanded, logger)
}

func (c *commandContext) discoverCatalog(cmd *cobra.Command) (string, error) {
	catalogs, err := catalog.Discover()
	if err != nil {
		return "", fmt.Errorf("discover catalogs: %w", err)
	}
	switch len(catalogs) {
	case 0:
		return "", errors.New("no Lightroom catalog found; pass --library or set catalog.path in the config")
	case 1:
		return catalogs[0], nil
	}
	if !stdinIsTerminal() {
		return "", fmt.Errorf("found %d catalogs; pass --library to pick one", len(catalogs))
	}
	return promptCatalogSelection(cmd.InOrStdin(), cmd.OutOrStdout(), catalogs)
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
