// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	internalcmd "github.com/hinerm/hIPNAT/internal/cmd"
	"github.com/hinerm/hIPNAT/internal/info"
	"github.com/hinerm/hIPNAT/internal/logger"
	"github.com/hinerm/hIPNAT/internal/version"
)

var (
	// metadata returns the build metadata displayed by the version command.
	metadata = info.Default

	appName      = info.AppName
	versionShort = "Display the " + info.AbbrevName + " version"
)

const (
	appShort = "hipnat exposes the runtime helpers of the hIPNAT plugin suite"

	logLevelFlagName      = "log-level"
	logLevelShortFlagName = "v"

	versionCmdName = "version"

	shortFlagName  = "short"
	shortFlagUsage = "print only the suite name and version"

	outputFlagName      = "output"
	outputShortFlagName = "o"
	outputFlagUsage     = "output format of the build metadata (possible values: json, yaml)"
)

var (
	allLoggerLevels = []string{
		logger.TRACE.String(),
		logger.DEBUG.String(),
		logger.INFO.String(),
		logger.WARN.String(),
		logger.ERROR.String(),
	}
	logLevelDefaultValue = logger.INFO.String()
	logLevelFlagUsage    = "set the logging level (possible values: " + strings.Join(allLoggerLevels, ", ") + ")"

	errInvalidOutput = errors.New("invalid output format")
)

// rootFlags holds the persistent flags shared across the command tree.
type rootFlags struct {
	logLevel string
}

// addFlags registers the persistent CLI flags on cmd.
func (f *rootFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.logLevel, logLevelFlagName, logLevelShortFlagName, logLevelDefaultValue, heredoc.Doc(logLevelFlagUsage))
}

func main() {
	cmd := rootCmd()

	cfg, err := internalcmd.LoadLoggerConfig()
	if err != nil {
		cmd.PrintErrln(err)
		os.Exit(1)
	}

	log := cfg.NewLogger(cmd.OutOrStderr())
	log.Debug(info.VersionString()+" starting", "version", info.GetVersion(), "buildDate", info.GetBuildDate(), "buildYear", info.GetBuildYear())
	ctx := logger.WithContext(context.Background(), log)

	exitCode := 0
	if err := cmd.ExecuteContext(ctx); err != nil {
		exitCode = 1
	}

	os.Exit(exitCode)
}

// rootCmd constructs the root Cobra command with shared configuration.
func rootCmd() *cobra.Command {
	flag := &rootFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: heredoc.Doc(appShort),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// the flag wins over LOG_LEVEL only when explicitly set
			if f := cmd.Flag(logLevelFlagName); f != nil && f.Changed {
				log := logger.FromContext(cmd.Context())
				log.SetLevel(logger.LevelFromString(flag.logLevel))
			}
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	flag.addFlags(cmd)
	cmd.AddCommand(
		internalcmd.AboutCmd(),
		internalcmd.ServeCmd(),
		versionCmd(),
	)

	return cmd
}

// versionCmd constructs the Cobra command that prints version information.
func versionCmd() *cobra.Command {
	var short bool
	var output string

	cmd := &cobra.Command{
		Use:   versionCmdName,
		Short: heredoc.Doc(versionShort),

		Args: func(cmd *cobra.Command, args []string) error {
			err := cobra.NoArgs(cmd, args)
			if err != nil {
				cmd.PrintErrln(err)
				_ = cmd.Usage()
			}

			return err
		},
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := printVersion(cmd.OutOrStdout(), metadata(), short, output); err != nil {
				cmd.PrintErrln(err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, shortFlagName, false, shortFlagUsage)
	cmd.Flags().StringVarP(&output, outputFlagName, outputShortFlagName, "", outputFlagUsage)
	return cmd
}

// printVersion writes the version metadata on writer in the requested format.
func printVersion(writer io.Writer, meta *info.Metadata, short bool, output string) error {
	switch {
	case output == "" && short:
		_, err := fmt.Fprintln(writer, meta.VersionString())
		return err
	case output == "":
		_, err := fmt.Fprintln(writer, version.ServiceVersionInformation(meta))
		return err
	case strings.EqualFold(output, "json"):
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(meta.Build())
	case strings.EqualFold(output, "yaml"):
		encoder := yaml.NewEncoder(writer)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(meta.Build())
	default:
		return fmt.Errorf("%w: %s", errInvalidOutput, output)
	}
}
