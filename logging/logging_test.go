package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seriesview.log")
	cleanup, err := Setup(path)
	if err != nil {
		t.Fatalf("expected setup to succeed, got %v", err)
	}
	log.Printf("loaded %d channels", 3)
	cleanup()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "loaded 3 channels") || !strings.Contains(string(data), "logging_test.go") {
		t.Errorf("expected message with file location, got %q", data)
	}
}

func TestSetupBadPath(t *testing.T) {
	if _, err := Setup(filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Errorf("expected an error for an unwritable path")
	}
}
