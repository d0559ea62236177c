// Package htmlmeta inspects page metadata relevant to crawlers.
package htmlmeta

import (
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// IsNoIndex reports whether the document asks crawlers not to index it
// through a robots meta tag.
func IsNoIndex(r io.Reader) (bool, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return false, err
	}

	noindex := false
	doc.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		if !strings.EqualFold(strings.TrimSpace(name), "robots") {
			return true
		}
		content, _ := s.Attr("content")
		for _, directive := range strings.Split(content, ",") {
			switch strings.ToLower(strings.TrimSpace(directive)) {
			case "noindex", "none":
				noindex = true
				return false
			}
		}
		return true
	})

	return noindex, nil
}

// FileIsNoIndex opens path and calls IsNoIndex.
func FileIsNoIndex(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	return IsNoIndex(f)
}
