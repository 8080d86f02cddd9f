// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hinerm/hIPNAT/internal/host"
	"github.com/hinerm/hIPNAT/internal/info"
	"github.com/hinerm/hIPNAT/internal/ipnat"
	"github.com/hinerm/hIPNAT/internal/logger"
	"github.com/hinerm/hIPNAT/internal/server"
)

var (
	// metadataGetter returns the build metadata used by the commands.
	// It can be overridden for testing purposes.
	metadataGetter = info.Default

	// serverGetter builds the status server.
	// It can be overridden for testing purposes.
	serverGetter = server.NewServer
)

// handleError prints err on the command error stream and returns it.
func handleError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(err)
	return err
}

// newSuite binds a suite to a host application that logs with the logger found in the command context.
func newSuite(cmd *cobra.Command) *ipnat.Suite {
	log := logger.FromContext(cmd.Context())
	app := host.NewApplication(log, host.WithErrorOutput(cmd.ErrOrStderr()))
	return ipnat.New(app, metadataGetter(), ipnat.WithFallbackLogService(log))
}
