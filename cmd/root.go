// Package cmd provides the CLI commands for studytrack.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/studytrack/internal/output"
	"github.com/manav03panchal/studytrack/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagUser   string
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// newContext builds the runtime context. Tests replace it to inject an in-memory store.
var newContext = runtime.New

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "studytrack",
	Short: "Track daily study habits and get insights",
	Long: `studytrack records one entry per day (study hours, breaks, sleep,
stress and focus) and turns your history into streaks, trends and
personalised suggestions.

Examples:
  studytrack log --study 6 --sleep 7.5 --stress 2 --focus 4
  studytrack log yesterday --study 3h30m --break 45
  studytrack streak
  studytrack insights
  studytrack stats
  studytrack dashboard`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for commands that never touch the store.
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		format, err := output.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		colorMode, err := output.ParseColorMode(flagColor)
		if err != nil {
			return err
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug
		opts.UserID = flagUser

		ctx, err = newContext(opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()
		ctx.Debugf("user %s, backend %s", ctx.UserID, ctx.Config.Storage.Backend)

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			err := ctx.Close()
			ctx = nil
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show the streak
		return runStreak(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && ctx != nil {
		// PersistentPostRunE is skipped when RunE fails.
		ctx.Close()
		ctx = nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "",
		"User ID (default: $STUDYTRACK_USER or the local user)")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("studytrack %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Println("Based on Zeit (https://github.com/mrusme/zeit)")
		cmd.Println("Licensed under SEGV License v1.0")
	},
}

// Die prints an error and exits with its exit code.
func Die(err error) {
	f := output.NewFormatter()
	if ctx != nil {
		f = ctx.Formatter
	} else if format, perr := output.ParseFormat(flagFormat); perr == nil {
		f.Format = format
	}
	runtime.ReportError(f, os.Stderr, err, flagDebug)
	os.Exit(runtime.ExitCode(err))
}
