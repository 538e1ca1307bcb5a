// Command doctheme switches the color theme of the documentation site
// assets.
//
// Usage:
//
//	doctheme [-dir assets] [-link] <color>
//
// It replaces logo.png, logo_small.png, banner.png and favicon.png with
// copies of their <name>_<color>.png variants, or with symbolic links
// when -link is given. It exits with status 1 on a usage error and with
// status 2 when a variant asset is missing.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-spharm/internal/theme"
)

func main() {
	dir := flag.String("dir", ".", "theme asset directory")
	link := flag.Bool("link", false, "create symbolic links instead of copies")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: doctheme [-dir assets] [-link] <color>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := theme.Apply(*dir, flag.Arg(0), *link); err != nil {
		fmt.Fprintf(os.Stderr, "doctheme: %v\n", err)
		if errors.Is(err, theme.ErrMissingAsset) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
