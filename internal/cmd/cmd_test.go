package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/d-kuro/git-sitemap/pkg/version"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SITEMAP_BASE_URL", "")
	t.Setenv("SITEMAP_OUTPUT", "")

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func createSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"index.html":        "<html></html>",
		"about.html":        "<html></html>",
		"_partial.html":     "<div></div>",
		"blog/first.html":   "<html></html>",
		"assets/styles.css": "body{}",
		"blog/_draft.html":  "<html></html>",
		"blog/notes/a.html": "<html></html>",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestGenerateWritesFile(t *testing.T) {
	root := createSite(t)

	out, err := execute(t, "generate", root, "--base-url", "https://example.com/", "--log-level", "error")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(out, "Wrote 4 URL(s)") {
		t.Errorf("unexpected summary %q", out)
	}

	b, err := os.ReadFile(filepath.Join(root, "sitemap.xml"))
	if err != nil {
		t.Fatalf("read sitemap: %v", err)
	}
	got := string(b)

	want := []string{
		"<loc>https://example.com/</loc>",
		"<loc>https://example.com/about.html</loc>",
		"<loc>https://example.com/blog/first.html</loc>",
		"<loc>https://example.com/blog/notes/a.html</loc>",
	}
	last := -1
	for _, w := range want {
		i := strings.Index(got, w)
		if i < 0 {
			t.Fatalf("sitemap missing %s:\n%s", w, got)
		}
		if i < last {
			t.Errorf("%s out of order", w)
		}
		last = i
	}
	if strings.Contains(got, "_partial") || strings.Contains(got, "_draft") {
		t.Errorf("private pages leaked:\n%s", got)
	}
}

func TestGenerateStdout(t *testing.T) {
	root := createSite(t)

	out, err := execute(t, "generate", root, "--base-url", "https://example.com", "-o", "-", "--ext", "css")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("expected XML on stdout, got:\n%s", out)
	}
	if !strings.Contains(out, "<loc>https://example.com/assets/styles.css</loc>") {
		t.Errorf("expected css page, got:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(root, "sitemap.xml")); !os.IsNotExist(err) {
		t.Errorf("expected no sitemap file, stat err = %v", err)
	}
}

func TestGenerateConfigFile(t *testing.T) {
	root := createSite(t)
	cfg := "base_url: https://docs.example.com\noutput: out.xml\n"
	if err := os.WriteFile(filepath.Join(root, "sitemap.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(root)

	if _, err := execute(t, "generate", root); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(root, "out.xml"))
	if err != nil {
		t.Fatalf("read sitemap: %v", err)
	}
	if !strings.Contains(string(b), "<loc>https://docs.example.com/</loc>") {
		t.Errorf("config base URL not used:\n%s", b)
	}
}

func TestGenerateErrors(t *testing.T) {
	root := createSite(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing base url", args: []string{"generate", root}, want: "base URL is required"},
		{name: "relative base url", args: []string{"generate", root, "--base-url", "example.com"}, want: "invalid base URL"},
		{name: "bad timestamp", args: []string{"generate", root, "--base-url", "https://example.com", "--timestamp", "tagger"}, want: "timestamp"},
		{name: "bad jobs", args: []string{"generate", root, "--base-url", "https://example.com", "--jobs", "0"}, want: "jobs"},
		{name: "missing root", args: []string{"generate", filepath.Join(root, "missing"), "--base-url", "https://example.com"}, want: "filesystem error"},
		{name: "blocked root", args: []string{"generate", "/proc", "--base-url", "https://example.com"}, want: "invalid root"},
		{name: "too many args", args: []string{"generate", root, root}, want: "accepts at most 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "git-sitemap ") {
		t.Errorf("unexpected version output %q", out)
	}

	out, err = execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json failed: %v", err)
	}
	var info version.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if info.Version != version.Version {
		t.Errorf("version = %q, want %q", info.Version, version.Version)
	}
}
