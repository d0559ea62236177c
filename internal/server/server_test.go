package server

import (
	"testing"

	"github.com/d-kuro/git-sitemap/internal/logging"
	"github.com/d-kuro/git-sitemap/internal/tools/sitemaptool"
)

func TestNew(t *testing.T) {
	srv, err := New(&Options{Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	names := srv.GetRegistry().List()
	if len(names) != 1 || names[0] != sitemaptool.ToolName {
		t.Errorf("registered tools = %v, want [%s]", names, sitemaptool.ToolName)
	}
}

func TestNewDefaults(t *testing.T) {
	srv, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}
	if srv.validator == nil || srv.logger == nil {
		t.Error("expected default validator and logger")
	}
}
