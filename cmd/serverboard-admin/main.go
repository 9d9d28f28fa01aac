// Package main is the serverboard-admin CLI.
//
// Usage:
//
//	serverboard-admin migrate                 # apply pending migrations
//	serverboard-admin migrate status          # list migrations and whether they ran
//	serverboard-admin seed -f fixtures.yaml   # load development fixtures
//	serverboard-admin servers list --owner me # list servers
package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/target/serverboard/config"
	"github.com/target/serverboard/internal/bootstrap"
)

// Version information, set at build time via -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

const defaultCommandTimeout = 5 * time.Minute

// commandContext carries what every subcommand needs once the root has loaded config.
type commandContext struct {
	Logger *slog.Logger
	Config config.AppConfig
	// connect opens the database; tests replace it.
	connect func(context.Context, config.DBConfig, *slog.Logger) (*sql.DB, error)
}

func connectDB(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*sql.DB, error) {
	return bootstrap.ConnectDB(ctx, cfg, logger)
}

// newRootCmd builds the command tree around cmdCtx.
func newRootCmd(cmdCtx *commandContext) *cobra.Command {
	root := &cobra.Command{
		Use:   "serverboard-admin",
		Short: "Administrative tasks for serverboard",
		Long: `serverboard-admin runs maintenance tasks against the serverboard database.

Configuration is read from the same environment variables (and .env file)
as the server: DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSL_MODE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" || cmdCtx.Logger != nil {
				return nil
			}
			cfg, err := bootstrap.LoadConfig()
			if err != nil {
				return err
			}
			cmdCtx.Config = cfg
			cmdCtx.Logger = bootstrap.InitLogger(cfg.Observability.SlogLevel())
			return nil
		},
	}

	root.AddCommand(
		newMigrateCmd(cmdCtx),
		newSeedCmd(cmdCtx),
		newServersCmd(cmdCtx),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "serverboard-admin %s (%s)\n", version, commit)
		},
	}
}

func main() {
	root := newRootCmd(&commandContext{connect: connectDB})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1) //nolint:forbidigo // CLI must exit with failure status on error
	}
}

// withDatabase runs f with an open database, cancelled on SIGINT/SIGTERM or after timeout.
func withDatabase(
	parent context.Context,
	cmdCtx *commandContext,
	timeout time.Duration,
	f func(context.Context, *sql.DB) error,
) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := cmdCtx.connect(ctx, cmdCtx.Config.Postgres, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", cerr)
		}
	}()

	return f(ctx, db)
}

// remoteGuard asks for confirmation before writing to a database that does not look local.
type remoteGuard struct {
	host  string
	allow bool
	in    io.Reader
	out   io.Writer
}

func (g remoteGuard) check(action string) error {
	if !isLikelyRemoteHost(g.host) {
		return nil
	}
	if !g.allow {
		return fmt.Errorf(
			"refusing to run against potentially remote database host %q; re-run with --allow-remote if this is intentional",
			g.host,
		)
	}
	fmt.Fprintf(g.out, "\nWARNING: database host %q does not look like a local address.\nThis operation will %s.\n",
		g.host, action)
	fmt.Fprintf(g.out, "Type %q to continue or press enter to abort: ", g.host)
	resp, err := bufio.NewReader(g.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if strings.TrimSpace(resp) != g.host {
		fmt.Fprintln(g.out, "\nRemote safeguard check failed; aborting.")
		return errors.New("aborted by user")
	}
	return nil
}

func isLikelyRemoteHost(host string) bool {
	h := strings.ToLower(strings.TrimSpace(host))
	if h == "" {
		return false
	}
	if h == "localhost" || h == "127.0.0.1" || h == "::1" {
		return false
	}
	if strings.HasSuffix(h, ".local") {
		return false
	}
	if ip := net.ParseIP(h); ip != nil {
		return !ip.IsLoopback()
	}
	return true
}
