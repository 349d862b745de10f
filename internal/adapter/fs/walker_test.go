package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkDefaults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "guide.pdf"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "sub", "readme.md"))
	writeFile(t, filepath.Join(root, "image.png"))

	walker := NewWalker(nil, nil)
	files, err := walker.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d: %+v", len(files), files)
	}
	for _, f := range files {
		if filepath.Ext(f.Path) == ".png" {
			t.Errorf("unsupported file included: %s", f.Path)
		}
		if f.Size == 0 {
			t.Errorf("size not captured for %s", f.Path)
		}
	}
}

func TestWalkExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.txt"))
	writeFile(t, filepath.Join(root, "node_modules", "skip.txt"))

	walker := NewWalker(nil, []string{"**/node_modules/**"})
	files, err := walker.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d: %+v", len(files), files)
	}
	if filepath.Base(files[0].Path) != "keep.txt" {
		t.Errorf("unexpected file: %s", files[0].Path)
	}
}

func TestWalkCustomIncludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"))
	writeFile(t, filepath.Join(root, "b.pdf"))

	walker := NewWalker([]string{"**/*.txt"}, nil)
	files, err := walker.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 || filepath.Base(files[0].Path) != "a.txt" {
		t.Fatalf("expected only a.txt, got %+v", files)
	}
}
