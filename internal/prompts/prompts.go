package prompts

// ToolPrompts contains all prompts for MCP tools.
type ToolPrompts struct {
	GenerateSitemap string
}

// Default returns the default prompts configuration.
func Default() *ToolPrompts {
	return &ToolPrompts{
		GenerateSitemap: GenerateSitemapToolDoc,
	}
}
