package config

import (
	"os"
	"path/filepath"
	"testing"

	"github/sabouaram/dargo/streamcompress"
)

func TestLoadDecodesAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dargo.yaml")
	body := []byte("clear_block_size: 65536\ncompression: zstd\niterations: 50000\nmin_digits: 4\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}

	l := New()
	s, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ClearBlockSize != 65536 {
		t.Fatalf("ClearBlockSize = %d, want 65536", s.ClearBlockSize)
	}
	if s.Compression != streamcompress.Zstd {
		t.Fatalf("Compression = %v, want Zstd", s.Compression)
	}
	if s.Iterations != 50000 {
		t.Fatalf("Iterations = %d, want 50000", s.Iterations)
	}
	if s.MinDigits != 4 {
		t.Fatalf("MinDigits = %d, want 4", s.MinDigits)
	}
	if s.SaltSize != Default().SaltSize {
		t.Fatalf("SaltSize = %d, want default %d", s.SaltSize, Default().SaltSize)
	}
	if got := l.Current(); got != s {
		t.Fatalf("Current() = %+v, want %+v", got, s)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dargo.yaml")
	if err := os.WriteFile(path, []byte("salt_size: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	l := New()
	if _, err := l.Load(path); err == nil {
		t.Fatal("Load: want error for salt_size out of range, got nil")
	}
}

func TestOnChangeRegistersWatcher(t *testing.T) {
	l := New()
	called := false
	l.OnChange(func(Settings) { called = true })
	if len(l.watchers) != 1 {
		t.Fatalf("watchers = %d, want 1", len(l.watchers))
	}
	_ = called
}
