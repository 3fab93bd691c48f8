package cmd

import (
	"context"

	"github.com/rbhughes/purr-petra/internal/iostore"
	"github.com/rbhughes/purr-petra/pkg/config"
	"github.com/rbhughes/purr-petra/pkg/petra"
)

// openStore opens the repo registry database and makes sure the schema
// and settings exist. Callers own Close.
func openStore(ctx context.Context) (petra.RepoStore, error) {
	store, err := iostore.New(config.StoreFilePath(cfg.HomeDir))
	if err != nil {
		return nil, err
	}
	if err = store.Init(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// exportDepot resolves where export files land: the config override
// when set, else the store setting, else the current directory.
func exportDepot(ctx context.Context, store petra.RepoStore) (string, error) {
	if cfg.Depot != "" {
		return cfg.Depot, nil
	}
	depot, err := store.FileDepot(ctx)
	if err != nil {
		return "", err
	}
	if depot == "" {
		return ".", nil
	}
	return depot, nil
}
