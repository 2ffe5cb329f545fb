// SPDX-License-Identifier: MIT
package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/orgchart"
)

// Output formats of the tree command.
const (
	formatOutline = "outline"
	formatCompact = "compact"
	formatJSON    = "json"
)

// Command errors.
var (
	ErrFormat      = errors.New("unsupported output format")
	ErrIssuesFound = errors.New("org chart issues found")
)

func newTenantsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tenants",
		Short: "List the tenants in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()

			tenants, err := a.source.Tenants(cmd.Context())
			if err != nil {
				return err
			}
			for _, tenant := range tenants {
				fmt.Fprintln(cmd.OutOrStdout(), tenant)
			}

			return nil
		},
	}
}

func newTreeCmd(a *app) *cobra.Command {
	var (
		hoveredID string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "tree <tenant>",
		Short: "Render a tenant's org chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()

			ctx, tenant := cmd.Context(), args[0]
			if err := a.service.Refresh(ctx, tenant); err != nil {
				return err
			}

			forest, err := a.service.Forest(tenant)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatOutline:
				return forest.Outline(ctx, out, forest.Highlight(hoveredID))
			case formatCompact:
				output, err := forest.Serialize(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, output)

				return nil
			case formatJSON:
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")

				return encoder.Encode(forest)
			default:
				return fmt.Errorf("(%s) %w", format, ErrFormat)
			}
		},
	}

	cmd.Flags().StringVar(&hoveredID, "hover", "", "highlight a node, its managers & its reports")
	cmd.Flags().StringVarP(&format, "format", "o", formatOutline, "output format: outline, compact or json")

	return cmd
}

func newHighlightCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "highlight <tenant> <id>",
		Short: "List the nodes highlighted while hovering an employee",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()

			tenant, id := args[0], args[1]
			if err := a.service.Refresh(cmd.Context(), tenant); err != nil {
				return err
			}

			forest, err := a.service.Forest(tenant)
			if err != nil {
				return err
			}
			if _, err = forest.Locate(id); err != nil {
				return err
			}

			for _, highlighted := range forest.Highlight(id).IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), highlighted)
			}

			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report unassigned, duplicate & unreachable employees of every tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()

			ctx := cmd.Context()
			refreshErr := a.service.Refresh(ctx)
			if refreshErr != nil {
				a.logger.WithError(refreshErr).Error("refresh failed")
			}

			issues, out := 0, cmd.OutOrStdout()
			for _, tenant := range a.service.Tenants() {
				forest, err := a.service.Forest(tenant)
				if err != nil {
					return err
				}

				unreachable, err := forest.Unreachable(ctx)
				if err != nil {
					return err
				}

				logger := a.logger.WithField("tenant", tenant)
				for _, e := range forest.Unassigned {
					issues++
					logger.WithFields(logrus.Fields{"id": e.ID, "manager": e.ReportingManagerID}).Warn("unassigned employee")
					fmt.Fprintf(out, "%s: unassigned %s, manager %q not found\n", tenant, e, e.ReportingManagerID)
				}
				for _, e := range forest.Duplicates {
					issues++
					fmt.Fprintf(out, "%s: duplicate %s\n", tenant, e)
				}
				for _, id := range unreachable {
					issues++
					fmt.Fprintf(out, "%s: unreachable %s\n", tenant, describe(forest, id))
				}
			}

			switch {
			case refreshErr != nil:
				return refreshErr
			case issues > 0:
				return fmt.Errorf("%w: %d", ErrIssuesFound, issues)
			}

			return nil
		},
	}
}

func describe(f *orgchart.Forest, id string) string {
	node, err := f.Locate(id)
	if err != nil {
		return id
	}

	return node.Employee.String()
}
