package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rbhughes/purr-petra/internal/iocollect"
	"github.com/rbhughes/purr-petra/internal/iodbisam"
	"github.com/rbhughes/purr-petra/internal/iorecon"
	"github.com/rbhughes/purr-petra/internal/ioserve"
	"github.com/rbhughes/purr-petra/pkg/config"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the purr HTTP API.

Routes are mounted under /purr/petra:
  POST /purr/petra/asset/{repo_id}/{asset}   start an export, 202 + task
  GET  /purr/petra/asset/status/{task_id}    poll an export task
  GET  /purr/petra/repos                     list registered repos
  GET  /purr/petra/repos/{repo_id}           one repo in detail
  POST /purr/petra/repos/recon               start a recon, 202 + task
  GET  /purr/petra/file_depot                current file depot
  POST /purr/petra/file_depot                set the file depot

Exports and recon run in the background; poll the returned task id for
completion.

Examples:
  purr serve
  purr serve --port 9000 --host 0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var serveOpts []config.Option
			if cmd.Flags().Changed("host") {
				serveOpts = append(serveOpts, config.OptServeHost(host))
			}
			if cmd.Flags().Changed("port") {
				serveOpts = append(serveOpts, config.OptServePort(port))
			}
			if len(serveOpts) > 0 {
				cfg.Update(serveOpts)
			}

			err := runServe()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			return err
		},
	}

	serveCmd.Flags().StringVar(
		&host, "host", "localhost",
		"interface the API binds to",
	)
	serveCmd.Flags().IntVarP(
		&port, "port", "p", 8070,
		"port the API listens on",
	)

	return serveCmd
}

func runServe() error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	exec := iodbisam.NewExecutor()
	collector := iocollect.NewCollector(exec)
	reconer := iorecon.New(exec, store, cfg.JobsNumber)

	api := ioserve.New(store, collector, reconer, ioserve.NewTaskStore(), cfg.Depot)

	addr := net.JoinHostPort(cfg.Serve.Host, strconv.Itoa(cfg.Serve.Port))
	srv := &http.Server{
		Addr:    addr,
		Handler: api,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API listening", "addr", addr)
		fmt.Printf("purr API listening on http://%s/purr/petra\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
