package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	if _, ok := s.Get(KeySquareCount); ok {
		t.Fatal("new store should be empty")
	}
	s.Set(KeySquareCount, "9")
	s.Set(KeyDartsTarget, "100")
	if v, ok := s.Get(KeySquareCount); !ok || v != "9" {
		t.Fatalf("expected 9, got %q", v)
	}
	if keys := s.Keys(); len(keys) != 2 || keys[0] != KeyDartsTarget {
		t.Fatalf("expected sorted keys, got %v", keys)
	}
	s.Remove(KeySquareCount)
	s.Remove("missing")
	if _, ok := s.Get(KeySquareCount); ok {
		t.Fatal("removed key still present")
	}
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "flags.json")
	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open missing file: %v", err)
	}
	fs.Set(KeySquareCount, "16")
	fs.Set(KeyRoundDurationLabel, "1:30")
	if fs.Err() != nil {
		t.Fatalf("write failed: %v", fs.Err())
	}
	fs.Remove(KeyRoundDurationLabel)

	reopened, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, ok := reopened.Get(KeySquareCount); !ok || v != "16" {
		t.Fatalf("expected persisted 16, got %q ok=%v", v, ok)
	}
	if _, ok := reopened.Get(KeyRoundDurationLabel); ok {
		t.Fatal("removed key should not be persisted")
	}
	if reopened.Path() != path {
		t.Fatalf("unexpected path %s", reopened.Path())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file should be renamed away")
	}
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFileStore(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFileStoreEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("empty file should open: %v", err)
	}
	fs.Set(KeyDartsTarget, "10")
	if fs.Err() != nil {
		t.Fatalf("write failed: %v", fs.Err())
	}
}
