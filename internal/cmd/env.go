// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/hinerm/hIPNAT/internal/logger"
)

var (
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")

	validLogFormats = []string{string(logger.JSONFormat), string(logger.TextFormat)}
)

// LoggerConfig holds the logging settings read from the environment.
type LoggerConfig struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// LoadLoggerConfig reads and validates the logging settings.
func LoadLoggerConfig() (*LoggerConfig, error) {
	var envVars LoggerConfig
	if err := env.Parse(&envVars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	if !slices.Contains(validLogFormats, strings.ToLower(envVars.LogFormat)) {
		return nil, fmt.Errorf("%w: LOG_FORMAT must be one of %s", ErrEnvVariablesNotValid, strings.Join(validLogFormats, ", "))
	}

	return &envVars, nil
}

// NewLogger returns the logger described by cfg writing on writer.
func (cfg *LoggerConfig) NewLogger(writer io.Writer) logger.Logger {
	return logger.NewLoggerWithOptions(logger.Options{
		Output: writer,
		Format: logger.FormatFromString(cfg.LogFormat),
		Level:  logger.LevelFromString(cfg.LogLevel),
	})
}
