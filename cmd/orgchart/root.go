// SPDX-License-Identifier: MIT
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/orgchart/directory"
)

// app holds the dependencies shared by the subcommands, built once per invocation.
type app struct {
	cfg     *Config
	logger  *logrus.Logger
	source  *directory.FileSource
	service *directory.Service
}

func newRootCmd(cfg *Config) *cobra.Command {
	a := &app{cfg: cfg}

	cmd := &cobra.Command{
		Use:          "orgchart",
		Short:        "Resolve & render tenant org charts from an employee directory",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding one employee file per tenant")
	flags.StringVar(&cfg.Locale, "locale", cfg.Locale, "BCP 47 locale used to order names")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "tenants rebuilt concurrently")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug output")

	cmd.AddCommand(
		newTenantsCmd(a),
		newTreeCmd(a),
		newHighlightCmd(a),
		newCheckCmd(a),
	)

	return cmd
}

// init wires the logger, directory source & org chart service from the parsed flags.
func (a *app) init(cmd *cobra.Command) (err error) {
	if a.logger, err = a.cfg.Logger(cmd.ErrOrStderr()); err != nil {
		return
	}

	tag, err := a.cfg.Language()
	if err != nil {
		return
	}

	if a.source, err = directory.NewFileSource(a.cfg.DataDir, directory.WithFileLogger(a.logger)); err != nil {
		return
	}

	a.service, err = directory.NewService(a.source, directory.Options{
		Workers: a.cfg.Workers,
		Locale:  tag,
		Debug:   a.cfg.Debug,
		Logger:  a.logger,
	})

	return
}

// close releases the service's worker pool.
func (a *app) close() {
	if a.service != nil {
		a.service.Close()
	}
}
