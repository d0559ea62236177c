// Package collector discovers HTML pages under a root directory and turns
// them into sitemap records.
package collector

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/d-kuro/git-sitemap/internal/errors"
	"github.com/d-kuro/git-sitemap/internal/history"
	"github.com/d-kuro/git-sitemap/internal/htmlmeta"
	"github.com/d-kuro/git-sitemap/internal/logging"
	"github.com/d-kuro/git-sitemap/internal/sitemap"
)

// Config controls which files become sitemap entries and how their URLs look.
type Config struct {
	BaseURL        string
	Extensions     []string
	PrivatePrefix  string
	IndexFile      string
	SkipDirs       []string
	RespectNoindex bool
	Jobs           int
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Extensions:    []string{".html"},
		PrivatePrefix: "_",
		IndexFile:     "index.html",
		SkipDirs:      []string{".git"},
		Jobs:          1,
	}
}

// Collector walks a root directory and builds sorted sitemap records.
type Collector struct {
	cfg    Config
	lookup history.Lookup
	now    func() time.Time
	logger *logging.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithNow replaces the wall clock. Useful for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Collector) { c.now = now }
}

// WithLogger sets the logger for lookup fallbacks and skipped entries.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger.WithComponent("collector")
		}
	}
}

// New creates a Collector. Zero-valued fields of cfg fall back to DefaultConfig.
func New(cfg Config, lookup history.Lookup, opts ...Option) *Collector {
	def := DefaultConfig()
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = def.Extensions
	}
	if cfg.PrivatePrefix == "" {
		cfg.PrivatePrefix = def.PrivatePrefix
	}
	if cfg.IndexFile == "" {
		cfg.IndexFile = def.IndexFile
	}
	if cfg.SkipDirs == nil {
		cfg.SkipDirs = def.SkipDirs
	}
	if cfg.Jobs < 1 {
		cfg.Jobs = def.Jobs
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Collector{
		cfg:    cfg,
		lookup: lookup,
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// page is an eligible file found during the walk.
type page struct {
	path string
	rel  string
}

// Collect returns one record per eligible file under root, sorted by location.
// Only a root that cannot be read is reported as an error; history lookups
// that fail fall back to the current time.
func (c *Collector) Collect(ctx context.Context, root string) ([]sitemap.URL, error) {
	pages, err := c.discover(ctx, root)
	if err != nil {
		return nil, err
	}

	now := c.now()
	urls := make([]sitemap.URL, len(pages))

	sem := make(chan struct{}, c.cfg.Jobs)
	var wg sync.WaitGroup
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, p page) {
			defer wg.Done()
			defer func() { <-sem }()

			urls[i] = c.record(ctx, p, now)
		}(i, p)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(urls, func(a, b sitemap.URL) int {
		return strings.Compare(a.Loc, b.Loc)
	})

	c.logger.Info("Collected pages", "root", root, "count", len(urls))
	return urls, nil
}

// discover walks root and returns eligible pages in traversal order.
func (c *Collector) discover(ctx context.Context, root string) ([]page, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Filesystem(root, err)
	}
	if !info.IsDir() {
		return nil, errors.Filesystem(root, errors.New("not a directory"))
	}

	// WalkDir does not follow a symlinked root.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	var pages []page
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if walkErr != nil {
			if path == root {
				return errors.Filesystem(root, walkErr)
			}
			c.logger.Warn("Skipping unreadable entry", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && slices.Contains(c.cfg.SkipDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !c.eligible(d.Name()) {
			return nil
		}

		if c.cfg.RespectNoindex {
			noindex, err := htmlmeta.FileIsNoIndex(path)
			if err != nil {
				c.logger.Warn("Could not inspect robots meta", "path", path, "error", err)
			} else if noindex {
				c.logger.Debug("Skipping noindex page", "path", path)
				return nil
			}
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Filesystem(path, err)
		}
		pages = append(pages, page{path: path, rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pages, nil
}

// eligible applies the extension and private-prefix rules to a file name.
func (c *Collector) eligible(name string) bool {
	if strings.HasPrefix(name, c.cfg.PrivatePrefix) {
		return false
	}
	return slices.Contains(c.cfg.Extensions, filepath.Ext(name))
}

func (c *Collector) record(ctx context.Context, p page, now time.Time) sitemap.URL {
	u := sitemap.URL{
		Loc:        c.location(p.rel),
		LastMod:    c.lastModified(ctx, p.path, now),
		ChangeFreq: sitemap.Monthly,
		Priority:   sitemap.PagePriority,
	}
	if p.rel == c.cfg.IndexFile {
		u.ChangeFreq = sitemap.Weekly
		u.Priority = sitemap.RootPriority
	}
	return u
}

// location maps a slash-separated relative path to an absolute URL.
// Only the top-level index file collapses to the bare site root.
func (c *Collector) location(rel string) string {
	if rel == c.cfg.IndexFile {
		return c.cfg.BaseURL + "/"
	}

	segments := strings.Split(rel, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return c.cfg.BaseURL + "/" + strings.Join(segments, "/")
}

func (c *Collector) lastModified(ctx context.Context, path string, now time.Time) time.Time {
	res := c.lookup.LastChange(ctx, path)

	t, found := res.Time()
	if !found {
		c.logger.Debug("History unavailable, using current time", "path", path, "reason", res.Reason())
		return now.UTC()
	}
	if t.After(now) {
		c.logger.Debug("Clamping future timestamp", "path", path, "timestamp", t)
		return now.UTC()
	}
	// Dates render in the zone of the time value, so keep every lastmod in
	// UTC like the fallback and the clamp.
	return t.UTC()
}
