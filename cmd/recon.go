package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rbhughes/purr-petra/internal/iodbisam"
	"github.com/rbhughes/purr-petra/internal/iorecon"
	"github.com/spf13/cobra"
)

// getReconCmd returns the recon command.
func getReconCmd() *cobra.Command {
	reconCmd := &cobra.Command{
		Use:   "recon <root-dir>",
		Short: "Scan a directory tree for Petra projects and register them",
		Long: `Crawl a directory tree looking for Petra project directories.

A directory qualifies when it has DB and PARMS subdirectories and a
DB/WELL.DAT table file. Each discovered project gets a well count, a
count of wells per asset and directory stats, then is registered as a
repo in the local store. Projects whose database does not answer are
logged and skipped.

Recon is re-runnable: registering an already known repo refreshes its
counts and stats.

Examples:
  # Scan a network share
  purr recon //scarab/petra_projects

  # Scan a local drive
  purr recon D:/projects`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRecon(args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			return err
		},
	}

	return reconCmd
}

func runRecon(root string) error {
	ctx := context.Background()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	rc := iorecon.New(iodbisam.NewExecutor(), store, cfg.JobsNumber)

	repos, err := rc.Recon(ctx, root)
	if err != nil {
		return err
	}

	if len(repos) == 0 {
		fmt.Printf("No Petra projects found under %s\n", root)
		return nil
	}

	fmt.Printf("Registered %d repos:\n\n", len(repos))
	for _, repo := range repos {
		fmt.Printf("%-12s %-24s wells: %-8s size: %s\n",
			repo.ID, repo.Name,
			humanize.Comma(int64(repo.WellCount)),
			humanize.Bytes(uint64(repo.Bytes)))
	}
	slog.Info("recon complete", "root", root, "repos", len(repos))

	return nil
}
