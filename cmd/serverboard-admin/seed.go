package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/target/serverboard/internal/devseed"
)

func newSeedCmd(cmdCtx *commandContext) *cobra.Command {
	var (
		file        string
		allowRemote bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load development fixtures",
		Long: `Load servers, members, timetable entries and games from a YAML file.
Without --file the bundled development fixtures are used. Existing rows are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fx, err := loadFixtures(file)
			if err != nil {
				return err
			}
			guard := remoteGuard{
				host:  cmdCtx.Config.Postgres.Host,
				allow: allowRemote,
				in:    cmd.InOrStdin(),
				out:   cmd.ErrOrStderr(),
			}
			if err := guard.check("insert development fixtures"); err != nil {
				return err
			}
			return withDatabase(cmd.Context(), cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
				if err := devseed.Run(ctx, devseed.NewServices(db), fx, cmdCtx.Logger); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d servers\n", len(fx.Servers))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a fixtures YAML file")
	cmd.Flags().BoolVar(&allowRemote, "allow-remote", false, "allow running against a non-local database host")
	return cmd
}

func loadFixtures(path string) (*devseed.Fixtures, error) {
	if path == "" {
		return devseed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	fx, err := devseed.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fx, nil
}
