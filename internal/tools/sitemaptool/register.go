package sitemaptool

import (
	"github.com/d-kuro/git-sitemap/internal/tools"
)

// CreateSitemapTools creates all sitemap tools.
func CreateSitemapTools(ctx *tools.Context) []*tools.ServerTool {
	return []*tools.ServerTool{
		CreateGenerateTool(ctx),
	}
}
