// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	serveCmdUse   = "serve"
	serveCmdShort = "Start the status server"
	serveCmdLong  = `Start an HTTP server exposing the health and build metadata routes
	of the plugin suite. The server runs until an interrupt is received.

	The server is configured with the following environment variables:
	- HTTP_HOST: the address to listen on (default all interfaces)
	- HTTP_PORT: the port to listen on (default 3000)`

	serveCmdExample = `# Start the status server on port 8080
	HTTP_PORT=8080 hipnat serve`
)

// ServeCmd returns the Cobra command that runs the status server.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     serveCmdUse,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			suite := newSuite(cmd)
			srv, err := serverGetter(ctx, suite)
			if err != nil {
				return handleError(cmd, err)
			}

			suite.Log("starting status server", suite.VersionString())
			srv.StartAsync(ctx)

			<-ctx.Done()
			suite.Log("stopping status server")
			if err := srv.Stop(); err != nil {
				suite.HandleException(err)
				return handleError(cmd, err)
			}

			return nil
		},
	}
}
