package recipe

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/rbhughes/purr-petra/pkg/decode"
	"gopkg.in/yaml.v3"
)

//go:embed recipes.yaml
var recipesYAML []byte

// registryFile is the YAML document shape.
type registryFile struct {
	Assets map[string]*Recipe `yaml:"assets"`
}

// overridePath, when set, points at a user recipes.yaml that replaces
// the embedded registry. Recipes are re-read on every Load so edits
// take effect without a restart.
var overridePath string

// SetOverridePath makes Load read recipes from path instead of the
// embedded registry. An empty path restores the embedded recipes.
func SetOverridePath(path string) {
	overridePath = path
}

// Load returns the recipe for asset, freshly parsed from the registry
// source. Unknown assets are an error listing the known ones.
func Load(asset string) (*Recipe, error) {
	all, err := LoadAll()
	if err != nil {
		return nil, err
	}
	r, ok := all[asset]
	if !ok {
		return nil, &UnknownAssetError{Asset: asset, Known: assetNames(all)}
	}
	return r, nil
}

// LoadAll parses and validates the whole registry.
func LoadAll() (map[string]*Recipe, error) {
	raw := recipesYAML
	src := "embedded"
	if overridePath != "" {
		b, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("cannot read recipes %s: %w", overridePath, err)
		}
		raw = b
		src = overridePath
	}

	var file registryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("cannot parse recipes (%s): %w", src, err)
	}

	for asset, r := range file.Assets {
		r.Asset = asset
		if err := validate(r); err != nil {
			return nil, err
		}
	}
	return file.Assets, nil
}

// validate rejects structurally broken recipes. Unrecognized transform
// names are only warned about and fall back to identity: several
// legacy recipes rely on pass-through columns.
func validate(r *Recipe) error {
	if !strings.Contains(r.Identifier, WherePlaceholder) {
		return &InvalidRecipeError{
			Asset:  r.Asset,
			Reason: "identifier query has no " + WherePlaceholder + " token",
		}
	}
	if !strings.Contains(r.Selector, WherePlaceholder) {
		return &InvalidRecipeError{
			Asset:  r.Asset,
			Reason: "selector query has no " + WherePlaceholder + " token",
		}
	}
	if len(r.IdentifierKeys) == 0 {
		return &InvalidRecipeError{Asset: r.Asset, Reason: "no identifier keys"}
	}
	if len(r.Prefixes) == 0 {
		return &InvalidRecipeError{Asset: r.Asset, Reason: "no prefix map"}
	}
	if r.PostAggregate != "" {
		if _, ok := Aggregators[r.PostAggregate]; !ok {
			return &InvalidRecipeError{
				Asset: r.Asset,
				Reason: fmt.Sprintf("unknown post_process %q (known: %s)",
					r.PostAggregate, strings.Join(AggregatorNames(), ", ")),
			}
		}
	}
	for col, kind := range r.Transforms {
		if !decode.Known(string(kind)) {
			slog.Warn("unknown transform, column will pass through",
				"asset", r.Asset, "column", col, "transform", kind)
			r.Transforms[col] = decode.KindIdentity
		}
	}
	return nil
}

func assetNames(all map[string]*Recipe) []string {
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownAssetError reports a request for an unregistered asset.
type UnknownAssetError struct {
	Asset string
	Known []string
}

func (e *UnknownAssetError) Error() string {
	return fmt.Sprintf("unknown asset %q, known assets: %s",
		e.Asset, strings.Join(e.Known, ", "))
}

// InvalidRecipeError reports a structurally broken recipe entry.
type InvalidRecipeError struct {
	Asset  string
	Reason string
}

func (e *InvalidRecipeError) Error() string {
	return fmt.Sprintf("invalid recipe %q: %s", e.Asset, e.Reason)
}
