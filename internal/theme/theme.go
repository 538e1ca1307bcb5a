// Package theme switches the color variant of documentation site assets.
//
// A theme directory holds canonical asset files (logo.png, favicon.png and
// friends) plus per-color variants named like logo_blue.png. Applying a
// color replaces every canonical file with a copy of, or symbolic link to,
// its variant.
package theme

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CanonicalAssets are the asset files a documentation theme must provide
// in every color.
var CanonicalAssets = []string{
	"logo.png",
	"logo_small.png",
	"banner.png",
	"favicon.png",
}

// ErrMissingAsset reports a color for which a variant asset file does not
// exist.
var ErrMissingAsset = errors.New("theme: missing asset")

// VariantName returns the color-variant filename of a canonical asset,
// for example logo.png and blue give logo_blue.png.
func VariantName(asset, color string) string {
	ext := filepath.Ext(asset)
	return strings.TrimSuffix(asset, ext) + "_" + color + ext
}

// Apply replaces every canonical asset in dir with its color variant.
// All variants are checked before anything is touched, so a missing file
// leaves the directory unchanged. Pre-existing files or links at the
// canonical paths are removed first; with symlink set, links are created
// instead of copies.
func Apply(dir, color string, symlink bool) error {
	for _, asset := range CanonicalAssets {
		variant := filepath.Join(dir, VariantName(asset, color))
		if _, err := os.Stat(variant); err != nil {
			return fmt.Errorf("%w: %s", ErrMissingAsset, VariantName(asset, color))
		}
	}
	for _, asset := range CanonicalAssets {
		dst := filepath.Join(dir, asset)
		variant := VariantName(asset, color)
		if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("theme: removing %s: %w", asset, err)
		}
		if symlink {
			if err := os.Symlink(variant, dst); err != nil {
				return fmt.Errorf("theme: linking %s: %w", asset, err)
			}
			continue
		}
		if err := copyFile(filepath.Join(dir, variant), dst); err != nil {
			return fmt.Errorf("theme: copying %s: %w", asset, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
