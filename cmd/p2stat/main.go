// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

// Command p2stat estimates quantiles of numeric streams in constant memory.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/DataDog/p2-go/internal/config"
	"github.com/DataDog/p2-go/internal/plog"
)

type options struct {
	configPath string
	logLevel   string
	cfg        config.Config
	logger     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: config.Default()}
	rootCmd := &cobra.Command{
		Use:   "p2stat",
		Short: "Streaming quantile estimates",
		Long:  "p2stat estimates quartiles and selected quantiles of numeric streams without storing them.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath != "" {
				cfg, err := config.Load(opts.configPath)
				if err != nil {
					return err
				}
				opts.cfg = cfg
			}
			if cmd.Flags().Changed("log-level") {
				opts.cfg.LogLevel = opts.logLevel
			}
			opts.logger = plog.New(cmd.ErrOrStderr(), opts.cfg.LogLevel)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warning, error)")

	rootCmd.AddCommand(newSummarizeCmd(opts), newGenCmd(opts))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
