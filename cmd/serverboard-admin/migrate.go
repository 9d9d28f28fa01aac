package main

import (
	"context"
	"database/sql"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/target/serverboard/internal/migrate"
)

func newMigrateCmd(cmdCtx *commandContext) *cobra.Command {
	var allowRemote bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			guard := remoteGuard{
				host:  cmdCtx.Config.Postgres.Host,
				allow: allowRemote,
				in:    cmd.InOrStdin(),
				out:   cmd.ErrOrStderr(),
			}
			if err := guard.check("apply schema migrations"); err != nil {
				return err
			}
			return withDatabase(cmd.Context(), cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
				if err := migrate.Run(ctx, db); err != nil {
					return fmt.Errorf("run migrations: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&allowRemote, "allow-remote", false, "allow running against a non-local database host")

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they have been applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd.Context(), cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
				statuses, err := migrate.List(ctx, db)
				if err != nil {
					return fmt.Errorf("list migrations: %w", err)
				}
				return printMigrationStatus(cmd, statuses)
			})
		},
	})
	return cmd
}

func printMigrationStatus(cmd *cobra.Command, statuses []migrate.Status) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tAPPLIED")
	for _, s := range statuses {
		applied := "no"
		if s.Applied {
			applied = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\n", s.Version, applied)
	}
	return tw.Flush()
}
