// Package main implements the git-sitemap executable.
package main

import (
	"context"
	"os"

	"github.com/d-kuro/git-sitemap/internal/cmd"
)

func main() {
	if err := cmd.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
