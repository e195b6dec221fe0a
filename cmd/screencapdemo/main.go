// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command screencapdemo displays a capture source through screencap.
//
// The window command opens an OpenGL 3.3 window with a full-view display and
// a picture-in-picture display sharing one pipeline. The snapshot command
// renders the same scene with the software backend and writes it to a file.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/screencap"
	"github.com/gogpu/screencap/backend"
)

var version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "screencapdemo",
	Short:         "Display a captured screen with screencap",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Show the capture in an OpenGL window",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runWindow(cfg)
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the capture headless and write it to an image file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runSnapshot(cfg)
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List capture sources and graphics backends",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "sources:  %s\n", strings.Join(screencap.Sources(), ", "))
		fmt.Fprintf(out, "backends: %s\n", strings.Join(backend.Available(), ", "))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "screencapdemo v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is screencapdemo.yaml)")
	bindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command) (*Config, error) {
	cfg, err := Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
