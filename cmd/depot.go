package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// getDepotCmd returns the depot command.
func getDepotCmd() *cobra.Command {
	depotCmd := &cobra.Command{
		Use:   "depot [directory]",
		Short: "Show or set the file depot",
		Long: `Show or set the file depot, the directory collect exports land in.

Without arguments prints the current depot. With a directory argument
stores it as the new depot. The directory must already exist.

The depot setting lives in the local store and applies to both the CLI
and the HTTP API. A 'depot' entry in config.yaml (or PURR_DEPOT)
overrides it without changing the stored value.

Examples:
  purr depot
  purr depot D:/exports`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if len(args) == 1 {
				err = runDepotSet(args[0])
			} else {
				err = runDepotShow()
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			return err
		},
	}

	return depotCmd
}

func runDepotShow() error {
	ctx := context.Background()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	depot, err := exportDepot(ctx, store)
	if err != nil {
		return err
	}
	fmt.Println(depot)
	return nil
}

func runDepotSet(dir string) error {
	ctx := context.Background()

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("invalid directory: %s", dir)
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err = store.SetFileDepot(ctx, dir); err != nil {
		return err
	}
	fmt.Printf("File depot set to %s\n", dir)
	return nil
}
