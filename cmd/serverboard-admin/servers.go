package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/target/serverboard/internal/data"
	"github.com/target/serverboard/internal/domain/model"
)

type serversListOptions struct {
	model.ServerListOptions
	JSON bool
}

func newServersCmd(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "servers",
		Short: "Inspect servers",
	}

	var opts serversListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List servers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd.Context(), cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
				servers, err := data.NewServerRepo(db).List(ctx, opts.ServerListOptions)
				if err != nil {
					return err
				}
				if opts.JSON {
					return printServersJSON(cmd.OutOrStdout(), servers)
				}
				return printServers(cmd.OutOrStdout(), servers)
			})
		},
	}
	list.Flags().StringVar(&opts.Owner, "owner", "", "only servers owned by this user id")
	list.Flags().StringVarP(&opts.Q, "query", "q", "", "case-insensitive name filter")
	list.Flags().IntVar(&opts.Limit, "limit", 50, "maximum rows")
	list.Flags().IntVar(&opts.Offset, "offset", 0, "rows to skip")
	list.Flags().BoolVar(&opts.JSON, "json", false, "print JSON instead of a table")

	cmd.AddCommand(list)
	return cmd
}

func printServers(w io.Writer, servers []*model.Server) error {
	if len(servers) == 0 {
		_, err := fmt.Fprintln(w, "no servers found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tOWNER\tCREATED")
	for _, s := range servers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.ID, s.Name, s.Owner, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func printServersJSON(w io.Writer, servers []*model.Server) error {
	if servers == nil {
		servers = []*model.Server{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(servers)
}
