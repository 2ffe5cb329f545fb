// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// Config holds the CLI's settings; environment variables provide the flag defaults.
type Config struct {
	DataDir   string `env:"ORGCHART_DATA_DIR" envDefault:"."`
	Locale    string `env:"ORGCHART_LOCALE" envDefault:"und"`
	Workers   int    `env:"ORGCHART_WORKERS" envDefault:"4"`
	LogLevel  string `env:"ORGCHART_LOG_LEVEL" envDefault:"warning"`
	LogFormat string `env:"ORGCHART_LOG_FORMAT" envDefault:"text"`
	Debug     bool   `env:"ORGCHART_DEBUG"`
}

// Configuration errors.
var (
	ErrLogFormat = errors.New("unsupported log format")
)

// LoadConfig reads the Config from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Logger configures a logrus.Logger writing to out.
func (c *Config) Logger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	if c.Debug {
		level = logrus.DebugLevel
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	switch c.LogFormat {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("(%s) %w", c.LogFormat, ErrLogFormat)
	}

	return logger, nil
}

// Language parses the configured locale.
func (c *Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("locale (%s): %w", c.Locale, err)
	}

	return tag, nil
}
