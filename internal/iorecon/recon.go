// Package iorecon discovers Petra project directories under a root
// path, verifies their databases answer queries, augments each with
// well counts and directory stats, and registers them in the repo
// store. This is an impure I/O package that implements contracts
// defined in pkg/.
package iorecon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/rbhughes/purr-petra/pkg/petra"
	"golang.org/x/sync/errgroup"
)

// assetTables maps asset names to the Petra table whose rows indicate
// a well has that asset. Counts are distinct wells, not child rows.
var assetTables = map[string]string{
	"core":        "cores",
	"dst":         "fmtest",
	"formation":   "fmtops",
	"ip":          "pdtest",
	"perforation": "perfs",
	"production":  "prodhdr",
	"raster_log":  "rastlog",
	"survey":      "dirsurvdata",
	"vector_log":  "loghdr",
	"zone":        "zdata",
}

// Reconer crawls for repos and registers them.
type Reconer struct {
	exec  petra.Executor
	store petra.RepoStore
	jobs  int
}

// New creates a Reconer. jobs bounds concurrent repo augmentation.
func New(exec petra.Executor, store petra.RepoStore, jobs int) *Reconer {
	if jobs < 1 {
		jobs = 1
	}
	return &Reconer{exec: exec, store: store, jobs: jobs}
}

// Recon scans root for Petra projects, drops candidates whose
// database does not answer a well count, augments the rest
// concurrently and upserts them into the store. Returns the
// registered repos sorted by name.
func (rc *Reconer) Recon(ctx context.Context, root string) ([]*petra.Repo, error) {
	paths, err := scanForRepos(root)
	if err != nil {
		return nil, err
	}
	slog.Info("recon scan complete", "root", root, "candidates", len(paths))
	if len(paths) == 0 {
		return nil, nil
	}

	bar := pb.Full.Start(len(paths))
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(rc.jobs)

	repos := make([]*petra.Repo, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			defer bar.Increment()
			repo, err := rc.buildRepo(gCtx, path)
			if err != nil {
				// looks like a Petra project but the db is unreadable:
				// log and move on, recon registers what it can
				slog.Warn("skipping repo with unreadable database",
					"path", path, "error", err)
				return nil
			}
			repos[i] = repo
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var registered []*petra.Repo
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		if err := rc.store.UpsertRepo(ctx, repo); err != nil {
			return nil, err
		}
		registered = append(registered, repo)
		slog.Info("registered repo",
			"id", repo.ID, "name", repo.Name,
			"wells", repo.WellCount,
			"size", humanize.Bytes(uint64(repo.Bytes)))
	}
	sort.Slice(registered, func(i, j int) bool {
		return registered[i].Name < registered[j].Name
	})
	return registered, nil
}

// buildRepo assembles one repo's metadata. The well count query doubles
// as the connectivity check.
func (rc *Reconer) buildRepo(ctx context.Context, path string) (*petra.Repo, error) {
	conn := petra.MakeConnParams(path)

	wells, err := rc.countQuery(ctx, conn, "SELECT COUNT(*) AS n FROM well")
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(assetTables))
	for asset, table := range assetTables {
		n, err := rc.countQuery(ctx, conn,
			fmt.Sprintf("SELECT COUNT(DISTINCT wsn) AS n FROM %s", table))
		if err != nil {
			// schema drift: old projects lack some tables
			slog.Debug("asset count unavailable",
				"path", path, "asset", asset, "error", err)
			continue
		}
		counts[asset] = n
	}

	files, dirs, bytes, lastMod := dirStats(path)

	return &petra.Repo{
		ID:          petra.RepoID(path),
		Active:      true,
		Name:        filepath.Base(path),
		FSPath:      path,
		Conn:        conn,
		Suite:       "petra",
		WellCount:   wells,
		AssetCounts: counts,
		Files:       files,
		Directories: dirs,
		Bytes:       bytes,
		RepoMod:     lastMod,
	}, nil
}

func (rc *Reconer) countQuery(
	ctx context.Context, conn petra.ConnParams, query string,
) (int, error) {
	res, err := rc.exec.Execute(ctx, conn, query)
	if err != nil {
		return 0, err
	}
	if len(res.Rows) == 0 || len(res.Rows[0]) == 0 {
		return 0, nil
	}
	switch n := res.Rows[0][0].(type) {
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, nil
	}
}
