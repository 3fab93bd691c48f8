package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// getReposCmd returns the repos command.
func getReposCmd() *cobra.Command {
	var asJSON bool

	reposCmd := &cobra.Command{
		Use:   "repos [repo-id]",
		Short: "List registered repos",
		Long: `List repos registered by recon, or show one repo in detail.

Without arguments prints a one-line summary per repo. With a repo id
prints the full record including per-asset well counts and connection
parameters.

Examples:
  # List everything
  purr repos

  # Show one repo as JSON
  purr repos BLA_0F0588 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if len(args) == 1 {
				err = runRepoShow(args[0], asJSON)
			} else {
				err = runRepoList(asJSON)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			return err
		},
	}

	reposCmd.Flags().BoolVarP(
		&asJSON, "json", "j", false,
		"print repos as JSON",
	)

	return reposCmd
}

func runRepoList(asJSON bool) error {
	ctx := context.Background()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	repos, err := store.ListRepos(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(repos)
	}

	if len(repos) == 0 {
		fmt.Println("No repos registered. Run 'purr recon <root-dir>' first.")
		return nil
	}

	for _, repo := range repos {
		fmt.Printf("%-12s %-24s wells: %-8s %s\n",
			repo.ID, repo.Name,
			humanize.Comma(int64(repo.WellCount)),
			repo.FSPath)
	}
	return nil
}

func runRepoShow(repoID string, asJSON bool) error {
	ctx := context.Background()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	repo, err := store.GetRepo(ctx, repoID)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(repo)
	}

	fmt.Printf("id:      %s\n", repo.ID)
	fmt.Printf("name:    %s\n", repo.Name)
	fmt.Printf("path:    %s\n", repo.FSPath)
	fmt.Printf("catalog: %s\n", repo.Conn.CatalogName)
	fmt.Printf("wells:   %s\n", humanize.Comma(int64(repo.WellCount)))
	fmt.Printf("size:    %s in %s files\n",
		humanize.Bytes(uint64(repo.Bytes)),
		humanize.Comma(repo.Files))
	fmt.Printf("mod:     %s\n", repo.RepoMod.Format("2006-01-02 15:04:05"))
	if len(repo.AssetCounts) > 0 {
		fmt.Println("assets:")
		assets := make([]string, 0, len(repo.AssetCounts))
		for asset := range repo.AssetCounts {
			assets = append(assets, asset)
		}
		sort.Strings(assets)
		for _, asset := range assets {
			fmt.Printf("  %-12s %s\n",
				asset, humanize.Comma(int64(repo.AssetCounts[asset])))
		}
	}
	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
