package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "claimdesk.log")

	logger, closeFn := Open(path)
	logger.Info("view restored", "view", "claims")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "view restored") {
		t.Fatalf("log file missing entry: %q", string(data))
	}
}

func TestOpen_EmptyPathDiscards(t *testing.T) {
	logger, closeFn := Open("")
	defer closeFn()

	// Must not panic or write anywhere.
	logger.Error("dropped", "err", "nope")
}
