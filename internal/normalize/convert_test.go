package normalize

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestToJPEG_NoOpForJPEGExtensions(t *testing.T) {
	// The file deliberately does not exist: a no-op must not touch disk.
	for _, path := range []string{"photo.jpg", "photo.jpeg", "photo.JPG", "dir/photo.JPEG"} {
		got, err := ToJPEG(path, true)
		if err != nil {
			t.Fatalf("ToJPEG(%s): %v", path, err)
		}
		if got != path {
			t.Errorf("ToJPEG(%s) = %s, want identical path", path, got)
		}
	}
}

func TestToJPEG_UnrecognizedExtension(t *testing.T) {
	for _, path := range []string{"doc.pdf", "archive.tar.gz", "noext", "image.png.txt"} {
		if _, err := ToJPEG(path, false); !errors.Is(err, ErrNotAnImage) {
			t.Errorf("ToJPEG(%s): got err %v, want ErrNotAnImage", path, err)
		}
	}
}

func TestToJPEG_ConvertsPNG(t *testing.T) {
	dir := t.TempDir()
	src := writeTestImage(t, dir, "product.png", 80, 60)

	got, err := ToJPEG(src, false)
	if err != nil {
		t.Fatalf("ToJPEG: %v", err)
	}

	want := filepath.Join(dir, "product.jpeg")
	if got != want {
		t.Errorf("got path %s, want %s", got, want)
	}
	if !fileExists(got) {
		t.Fatal("converted file does not exist")
	}
	if !fileExists(src) {
		t.Error("original deleted without autoDelete")
	}

	dims, err := PixelDimensions(got)
	if err != nil {
		t.Fatalf("PixelDimensions: %v", err)
	}
	if dims.Width != 80 || dims.Height != 60 {
		t.Errorf("converted dimensions %dx%d, want 80x60", dims.Width, dims.Height)
	}
}

func TestToJPEG_AutoDelete(t *testing.T) {
	dir := t.TempDir()
	src := writeTestImage(t, dir, "product.png", 40, 40)

	got, err := ToJPEG(src, true)
	if err != nil {
		t.Fatalf("ToJPEG: %v", err)
	}
	if fileExists(src) {
		t.Error("original still exists after autoDelete")
	}
	if !fileExists(got) {
		t.Error("converted file does not exist")
	}
}

func TestCanonicalPath(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"a/b.png", "a/b.jpeg"},
		{"a/b.gif", "a/b.jpeg"},
		{"a/b.svg", "a/b.jpeg"},
		{"a/b.jpg", "a/b.jpg"},
		{"a/b.jpeg", "a/b.jpeg"},
		{"a/b.txt", ""},
	}

	for _, tt := range tests {
		if got := CanonicalPath(tt.path); got != tt.want {
			t.Errorf("CanonicalPath(%s) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMarkedPath(t *testing.T) {
	if got := markedPath("a/b.jpeg", "-resized"); got != "a/b-resized.jpeg" {
		t.Errorf("markedPath = %s", got)
	}
	if got := markedPath("b.jpeg", "-compressed"); !strings.HasSuffix(got, "b-compressed.jpeg") {
		t.Errorf("markedPath = %s", got)
	}
}
