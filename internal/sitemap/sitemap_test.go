package sitemap

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/d-kuro/git-sitemap/internal/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleURLs() []URL {
	return []URL{
		{Loc: "https://example.com/", LastMod: date(2024, 1, 10), ChangeFreq: Weekly, Priority: RootPriority},
		{Loc: "https://example.com/about.html", LastMod: date(2024, 2, 5), ChangeFreq: Monthly, Priority: PagePriority},
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleURLs()); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>https://example.com/</loc>
    <lastmod>2024-01-10</lastmod>
    <changefreq>weekly</changefreq>
    <priority>1.0</priority>
  </url>
  <url>
    <loc>https://example.com/about.html</loc>
    <lastmod>2024-02-05</lastmod>
    <changefreq>monthly</changefreq>
    <priority>0.8</priority>
  </url>
</urlset>
`
	if got := buf.String(); got != want {
		t.Errorf("Encode() output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"</urlset>\n"
	if got := buf.String(); got != want {
		t.Errorf("Encode(nil) = %q, want %q", got, want)
	}
}

func TestEncodeEscapesText(t *testing.T) {
	var buf bytes.Buffer
	urls := []URL{{Loc: "https://example.com/a&b<c>.html", LastMod: date(2024, 1, 1), ChangeFreq: Monthly, Priority: PagePriority}}
	if err := Encode(&buf, urls); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !strings.Contains(buf.String(), "<loc>https://example.com/a&amp;b&lt;c&gt;.html</loc>") {
		t.Errorf("expected escaped loc, got:\n%s", buf.String())
	}
}

func TestEncodeFormatsDateOnly(t *testing.T) {
	urls := []URL{{Loc: "https://example.com/", LastMod: time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC), ChangeFreq: Weekly, Priority: RootPriority}}

	var buf bytes.Buffer
	if err := Encode(&buf, urls); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), "<lastmod>2024-03-01</lastmod>") {
		t.Errorf("expected date-only lastmod, got:\n%s", buf.String())
	}
}

func TestChangeFreqValid(t *testing.T) {
	tests := []struct {
		freq ChangeFreq
		want bool
	}{
		{Weekly, true},
		{Monthly, true},
		{Never, true},
		{"fortnightly", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.freq.Valid(); got != tt.want {
			t.Errorf("ChangeFreq(%q).Valid() = %v, want %v", tt.freq, got, tt.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitemap.xml")

	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(path, sampleURLs()); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sitemap: %v", err)
	}

	var want bytes.Buffer
	if err := Encode(&want, sampleURLs()); err != nil {
		t.Fatal(err)
	}
	if string(got) != want.String() {
		t.Errorf("file content mismatch\ngot:\n%s\nwant:\n%s", got, want.String())
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != FileMode {
		t.Errorf("expected mode %v, got %v", FileMode, info.Mode().Perm())
	}

	assertNoTempFiles(t, dir)
}

func TestWriteFileMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "sitemap.xml")

	err := WriteFile(path, sampleURLs())
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !errors.Is(err, errors.ErrOutputWrite) {
		t.Errorf("expected ErrOutputWrite, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("expected no output file, stat err = %v", statErr)
	}
}

func TestWriteFileTargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitemap.xml")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	err := WriteFile(path, sampleURLs())
	if !errors.Is(err, errors.ErrOutputWrite) {
		t.Fatalf("expected ErrOutputWrite, got %v", err)
	}

	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("unexpected temp file left behind: %s", e.Name())
		}
	}
}
