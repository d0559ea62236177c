// Package sitemap renders URL records as sitemap protocol XML.
package sitemap

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

// Namespace is the sitemap protocol XML namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// DateLayout is the ISO 8601 date-only form used for lastmod.
const DateLayout = "2006-01-02"

// ChangeFreq is a crawler hint for how often a page changes.
type ChangeFreq string

const (
	Always  ChangeFreq = "always"
	Hourly  ChangeFreq = "hourly"
	Daily   ChangeFreq = "daily"
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
	Yearly  ChangeFreq = "yearly"
	Never   ChangeFreq = "never"
)

// Valid reports whether f is one of the protocol's enumerated values.
func (f ChangeFreq) Valid() bool {
	switch f {
	case Always, Hourly, Daily, Weekly, Monthly, Yearly, Never:
		return true
	}
	return false
}

// Priority tiers.
const (
	RootPriority = "1.0"
	PagePriority = "0.8"
)

// URL is a single sitemap entry.
type URL struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq ChangeFreq
	Priority   string
}

// Encode writes urls to w in the order given.
func Encode(w io.Writer, urls []URL) error {
	bw := bufio.NewWriter(w)

	// Write errors are sticky on bufio.Writer and surface from Flush.
	bw.WriteString(xml.Header)
	fmt.Fprintf(bw, "<urlset xmlns=%q>\n", Namespace)
	for _, u := range urls {
		bw.WriteString("  <url>\n")
		writeElement(bw, "loc", u.Loc)
		writeElement(bw, "lastmod", u.LastMod.Format(DateLayout))
		writeElement(bw, "changefreq", string(u.ChangeFreq))
		writeElement(bw, "priority", u.Priority)
		bw.WriteString("  </url>\n")
	}
	bw.WriteString("</urlset>\n")

	return bw.Flush()
}

func writeElement(w *bufio.Writer, name, text string) {
	w.WriteString("    <")
	w.WriteString(name)
	w.WriteString(">")
	xml.EscapeText(w, []byte(text))
	w.WriteString("</")
	w.WriteString(name)
	w.WriteString(">\n")
}
