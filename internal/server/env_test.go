// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEnvironmentVariables(t *testing.T) {
	t.Run("load environment variables", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "3000")
		t.Setenv("HTTP_HOST", "127.0.0.1")
		envVars, err := LoadServerConfig()
		require.NoError(t, err)
		require.Equal(t, &Config{DisableStartupMessage: true, HTTPHost: "127.0.0.1", HTTPPort: 3000}, envVars)
		require.Equal(t, 3000, envVars.HTTPPort)
		require.Equal(t, "127.0.0.1", envVars.HTTPHost)
		require.True(t, envVars.DisableStartupMessage)
	})

	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "655350")
		_, err := LoadServerConfig()
		require.ErrorIs(t, err, ErrEnvVariablesNotValid)
	})

	t.Run("port is not a number", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "http")
		_, err := LoadServerConfig()
		require.ErrorIs(t, err, ErrEnvVariablesNotValid)
	})
}

func TestValidateEnvironmentVariables(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		envVars     *Config
		expectError bool
	}{
		"negative port": {
			envVars:     &Config{HTTPPort: -1},
			expectError: true,
		},
		"port too big": {
			envVars:     &Config{HTTPPort: 655350},
			expectError: true,
		},
		"invalid host": {
			envVars:     &Config{HTTPPort: 3000, HTTPHost: "local host"},
			expectError: true,
		},
		"valid config": {
			envVars: &Config{HTTPPort: 3000},
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := validateEnvironmentVariables(test.envVars)
			if test.expectError {
				require.ErrorIs(t, err, ErrEnvVariablesNotValid)
				return
			}
			require.NoError(t, err)
		})
	}
}
