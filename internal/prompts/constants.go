// Package prompts contains the descriptions advertised for MCP tools.
package prompts

// GenerateSitemapToolDoc describes the generate_sitemap tool.
const GenerateSitemapToolDoc = `Generates a sitemap.xml for a directory of static HTML pages.

- Every file with an eligible extension (default .html) becomes a <url> entry
- Files whose name starts with "_" are treated as template partials and skipped
- The top-level index.html maps to the bare base URL with priority 1.0 and changefreq weekly
- Every other page gets priority 0.8 and changefreq monthly
- lastmod is the date of the most recent git commit touching the file; untracked files use today's date
- Entries are sorted by URL so the output is reproducible

Usage notes:
- root and output must be absolute paths
- base_url must be an absolute http or https URL, e.g. https://example.com
- When output is omitted the sitemap XML is returned instead of written
- Set respect_noindex to skip pages carrying <meta name="robots" content="noindex">`
