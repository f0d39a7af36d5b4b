package file

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestStorage(t *testing.T) {
	base := t.TempDir()
	s := NewStorage(base)
	ctx := context.Background()

	path, err := s.Save(ctx, "normalized", "a.jpeg", bytes.NewReader([]byte("jpeg bytes")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(base, "normalized", "a.jpeg"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	r, err := s.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	data, _ := io.ReadAll(r)
	r.Close()
	if string(data) != "jpeg bytes" {
		t.Errorf("loaded %q", data)
	}

	if err := s.Delete(ctx, path); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file still exists after delete")
	}
}

func TestStorage_LoadMissing(t *testing.T) {
	s := NewStorage(t.TempDir())
	if _, err := s.Load(context.Background(), "nope/missing.jpeg"); err == nil {
		t.Error("expected error for missing file")
	}
}
