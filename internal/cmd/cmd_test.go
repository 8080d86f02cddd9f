// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hinerm/hIPNAT/internal/info"
	"github.com/hinerm/hIPNAT/internal/ipnat"
	"github.com/hinerm/hIPNAT/internal/logger"
	"github.com/hinerm/hIPNAT/internal/server"
	"github.com/hinerm/hIPNAT/internal/server/fake"
)

func staticMetadata(version, date string) func() *info.Metadata {
	metadata := info.NewMetadata(func() (info.Manifest, error) {
		return info.Manifest{
			info.ImplementationVersionKey: version,
			info.ImplementationDateKey:    date,
		}, nil
	})
	return func() *info.Metadata { return metadata }
}

// setGetters overrides the package getters for the duration of the test.
func setGetters(t *testing.T, metadata func() *info.Metadata, srv func(context.Context, *ipnat.Suite) (server.Server, error)) {
	t.Helper()

	previousMetadata, previousServer := metadataGetter, serverGetter
	t.Cleanup(func() {
		metadataGetter, serverGetter = previousMetadata, previousServer
	})

	if metadata != nil {
		metadataGetter = metadata
	}
	if srv != nil {
		serverGetter = srv
	}
}

func TestAboutCmd(t *testing.T) {
	testCases := map[string]struct {
		metadata        func() *info.Metadata
		expectedOutput  string
		expectedWarning bool
	}{
		"release build": {
			metadata: staticMetadata("3.1.0", "2017-06-12T10:20:30Z"),
			expectedOutput: "Image Processing for NeuroAnatomy and Tree-like structures\n" +
				"hIPNAT v3.1.0\n" +
				"Copyright 2017\n" +
				"Documentation: https://imagej.net/Neuroanatomy\n" +
				"Source code: https://github.com/tferr/hIPNAT\n",
		},
		"development build": {
			metadata: func() *info.Metadata { return info.NewMetadata() },
			expectedOutput: "Image Processing for NeuroAnatomy and Tree-like structures\n" +
				"hIPNAT vX Dev\n" +
				"Documentation: https://imagej.net/Neuroanatomy\n" +
				"Source code: https://github.com/tferr/hIPNAT\n",
			expectedWarning: true,
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			setGetters(t, test.metadata, nil)

			logBuffer := new(bytes.Buffer)
			ctx := logger.WithContext(t.Context(), logger.NewLogger(logBuffer))

			cmd := AboutCmd()
			outBuffer := new(bytes.Buffer)
			cmd.SetOut(outBuffer)
			cmd.SetArgs([]string{})

			require.NoError(t, cmd.ExecuteContext(ctx))
			assert.Equal(t, test.expectedOutput, outBuffer.String())

			if test.expectedWarning {
				assert.Contains(t, logBuffer.String(), "[hIPNAT] "+nonReleaseWarning)
			} else {
				assert.Empty(t, logBuffer.String())
			}
		})
	}
}

func TestAboutCmdRejectsArguments(t *testing.T) {
	cmd := AboutCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"extra"})

	require.Error(t, cmd.ExecuteContext(t.Context()))
}

func TestServeCmd(t *testing.T) {
	fakeServer := fake.NewFakeServer(t)
	var receivedSuite *ipnat.Suite
	setGetters(t, staticMetadata("3.1.0", ""), func(_ context.Context, suite *ipnat.Suite) (server.Server, error) {
		receivedSuite = suite
		return fakeServer, nil
	})

	logBuffer := new(bytes.Buffer)
	ctx, cancel := context.WithCancel(logger.WithContext(t.Context(), logger.NewLogger(logBuffer)))
	defer cancel()

	cmd := ServeCmd()
	cmd.SetArgs([]string{})

	errChan := make(chan error, 1)
	go func() {
		errChan <- cmd.ExecuteContext(ctx)
	}()

	select {
	case <-fakeServer.StartedServer():
	case <-time.After(5 * time.Second):
		require.Fail(t, "server not started")
	}

	cancel()
	select {
	case err := <-errChan:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.Fail(t, "serve command did not return")
	}

	<-fakeServer.StoppedServer()
	require.NotNil(t, receivedSuite)
	assert.Equal(t, "hIPNAT v3.1.0", receivedSuite.VersionString())
	assert.Contains(t, logBuffer.String(), "[hIPNAT] starting status server hIPNAT v3.1.0")
	assert.Contains(t, logBuffer.String(), "[hIPNAT] stopping status server")
}

func TestServeCmdServerError(t *testing.T) {
	serverErr := errors.New("invalid configuration")
	setGetters(t, staticMetadata("3.1.0", ""), func(context.Context, *ipnat.Suite) (server.Server, error) {
		return nil, serverErr
	})

	cmd := ServeCmd()
	errBuffer := new(bytes.Buffer)
	cmd.SetErr(errBuffer)
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(t.Context())
	require.ErrorIs(t, err, serverErr)
	assert.Equal(t, "invalid configuration\n", errBuffer.String())
}

func TestLoadLoggerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadLoggerConfig()
		require.NoError(t, err)
		assert.Equal(t, "INFO", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("text format", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "warn")
		t.Setenv("LOG_FORMAT", "TEXT")

		cfg, err := LoadLoggerConfig()
		require.NoError(t, err)

		buffer := new(bytes.Buffer)
		log := cfg.NewLogger(buffer)
		log.Info("silenced")
		log.Warn("written")
		assert.NotContains(t, buffer.String(), "silenced")
		assert.Contains(t, buffer.String(), "[WARN]")
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")

		_, err := LoadLoggerConfig()
		require.ErrorIs(t, err, ErrEnvVariablesNotValid)
	})
}
