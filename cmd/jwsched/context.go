package main

import (
	"strings"
	"sync"

	"jwsched/internal/config"
	"jwsched/internal/logging"
	"jwsched/internal/parser"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
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
		c.config = cfg
	})
	return c.config, c.configErr
}

// newParser builds the parser and its logger from the resolved config.
func (c *commandContext) newParser() (*parser.Parser, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, err
	}
	return parser.New(parser.Options{
		Strict:                cfg.Parser.Strict,
		EnableEnhancedParsing: cfg.Parser.EnhancedParsing,
		MaxTotalBytes:         cfg.Parser.MaxTotalBytes,
		MaxEntries:            cfg.Parser.MaxEntries,
		Logger:                log,
	}), nil
}
