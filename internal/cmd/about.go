// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/hinerm/hIPNAT/internal/info"
)

const (
	aboutCmdUse   = "about"
	aboutCmdShort = "Display information about the plugin suite"
	aboutCmdLong  = `Display the name, version and build year of the plugin suite
	together with the links to its documentation and source code.`

	nonReleaseWarning = "running a development build, please use a released version when reporting issues"
)

// AboutCmd returns the Cobra command that prints the suite identity.
func AboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   aboutCmdUse,
		Short: heredoc.Doc(aboutCmdShort),
		Long:  heredoc.Doc(aboutCmdLong),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			suite := newSuite(cmd)
			if err := printAbout(cmd.OutOrStdout(), suite.VersionString(), suite.Metadata().BuildYear()); err != nil {
				return handleError(cmd, err)
			}

			if !suite.Metadata().IsRelease() {
				suite.Warn(nonReleaseWarning)
			}
			return nil
		},
	}
}

func printAbout(writer io.Writer, versionString, buildYear string) error {
	text := info.ExtendedName + "\n" + versionString + "\n"
	if buildYear != "" {
		text += "Copyright " + buildYear + "\n"
	}
	text += "Documentation: " + info.DocURL + "\n"
	text += "Source code: " + info.SrcURL + "\n"

	_, err := fmt.Fprint(writer, text)
	return err
}
