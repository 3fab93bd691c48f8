package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/rbhughes/purr-petra/internal/iocollect"
	"github.com/rbhughes/purr-petra/internal/iodbisam"
	"github.com/rbhughes/purr-petra/pkg/config"
	"github.com/rbhughes/purr-petra/pkg/petra"
	"github.com/rbhughes/purr-petra/pkg/recipe"
	"github.com/spf13/cobra"
)

// getCollectCmd returns the collect command.
func getCollectCmd() *cobra.Command {
	var (
		uwiQuery    string
		outDir      string
		batchSize   int
		recipesPath string
	)

	collectCmd := &cobra.Command{
		Use:   "collect <repo-id> <asset>",
		Short: "Export an asset from a repo as JSON documents",
		Long: `Export one asset from a registered repo.

The output is a single JSON array of well-centric documents written to
the file depot (or --out) as <repo_id>_<timestamp>_<asset>.json.

Assets: core, dst, formation, ip, perforation, production, raster_log,
survey, vector_log, well, zone.

The optional UWI filter takes comma or space separated patterns with
'*' as the wildcard. Without a filter every well is exported.

Examples:
  # All DSTs in a repo
  purr collect BLA_0F0588 dst

  # Surveys for matching wells only
  purr collect BLA_0F0588 survey -u "0505*,4900955498"

  # Smaller batches for very wide selects
  purr collect BLA_0F0588 vector_log -b 200`,
		Aliases: []string{"export"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCollect(
				args[0], args[1],
				uwiQuery, outDir, batchSize, recipesPath,
			)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			return err
		},
	}

	collectCmd.Flags().StringVarP(
		&uwiQuery, "uwi", "u", "",
		"UWI filter patterns, comma or space separated, '*' wildcard",
	)
	collectCmd.Flags().StringVarP(
		&outDir, "out", "o", "",
		"output directory (default: the file depot)",
	)
	collectCmd.Flags().IntVarP(
		&batchSize, "batch-size", "b", 0,
		"identifier batch size override (0 = per-recipe size)",
	)
	collectCmd.Flags().StringVarP(
		&recipesPath, "recipes", "r", "",
		"path to a recipes.yaml replacing the embedded registry",
	)

	return collectCmd
}

func runCollect(
	repoID string,
	asset string,
	uwiQuery string,
	outDir string,
	batchSize int,
	recipesPath string,
) error {
	ctx := context.Background()

	var collectOpts []config.Option
	if batchSize > 0 {
		collectOpts = append(collectOpts, config.OptCollectBatchSize(batchSize))
	}
	if recipesPath != "" {
		collectOpts = append(collectOpts, config.OptCollectRecipesPath(recipesPath))
	}
	if outDir != "" {
		collectOpts = append(collectOpts, config.OptDepot(outDir))
	}
	if len(collectOpts) > 0 {
		cfg.Update(collectOpts)
	}

	if cfg.Collect.RecipesPath != "" {
		recipe.SetOverridePath(cfg.Collect.RecipesPath)
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	repo, err := store.GetRepo(ctx, repoID)
	if err != nil {
		return err
	}

	depot, err := exportDepot(ctx, store)
	if err != nil {
		return err
	}

	uwis := petra.ParseUWIs(uwiQuery)
	outPath := filepath.Join(depot, petra.ExportFilename(repoID, asset))

	var opts []iocollect.Option
	if cfg.Collect.BatchSize > 0 {
		opts = append(opts, iocollect.OptBatchSize(cfg.Collect.BatchSize))
	}
	collector := iocollect.NewCollector(iodbisam.NewExecutor(), opts...)

	sum, err := collector.Collect(ctx, repo.Conn, asset, uwis, outPath)
	if err != nil {
		return err
	}

	if sum.NoHits {
		fmt.Printf("No %s results in %s for the given filter.\n",
			asset, repo.Name)
		return nil
	}

	fmt.Printf("Exported %s %s docs from %s to:\n  %s\n",
		humanize.Comma(int64(sum.DocsWritten)), asset, repo.Name,
		sum.OutputPath)

	return nil
}
