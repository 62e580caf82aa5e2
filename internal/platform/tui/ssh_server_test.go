package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func TestNewSSHServerCreatesHostKey(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "keys", "host_key")

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = keyPath
	cfg.DBPath = filepath.Join(dir, "scores.db")
	cfg.Logger = log.New(&bytes.Buffer{})

	server, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	defer server.Shutdown()

	if _, err := os.Stat(keyPath); err != nil {
		t.Errorf("host key was not created: %v", err)
	}
	if server.store == nil {
		t.Error("server should share an open store")
	}
	if server.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", server.Addr())
	}
}

func TestNewSSHServerWithoutDatabase(t *testing.T) {
	dir := t.TempDir()

	// A regular file where a directory is needed makes the store unavailable.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	server, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(dir, "host_key"),
		DBPath:      filepath.Join(blocker, "scores.db"),
		TickRate:    60,
		Game:        config.DefaultFlappyConfig(),
		Logger:      log.New(&buf),
	})
	if err != nil {
		t.Fatalf("NewSSHServer() should run without storage, got %v", err)
	}
	defer server.Shutdown()

	if server.store != nil {
		t.Error("store should be nil when the database cannot be opened")
	}
	if !strings.Contains(buf.String(), "could not open scores database") {
		t.Errorf("expected a storage warning, got %q", buf.String())
	}
}
