package mdfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadNormalizesLineEndings(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "crlf.md")
	if err := os.WriteFile(path, []byte("# A\r\n\rtext\r\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "# A\n\ntext\n" {
		t.Errorf("got %q, want LF-only text", got)
	}
}

func TestReadStripsBOM(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bom.md")
	if err := os.WriteFile(path, []byte("\ufeff# A\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "# A\n" {
		t.Errorf("got %q, want BOM stripped", got)
	}
}

func TestReadRejectsNonMarkdown(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(path, []byte("text"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := Read(path)
	if !errors.Is(err, ErrNotMarkdown) {
		t.Errorf("got %v, want ErrNotMarkdown", err)
	}
}

func TestReadRejectsOversizedFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "big.md")
	if err := os.WriteFile(path, []byte("# too big\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	original := MaxFileSize
	MaxFileSize = 4
	defer func() { MaxFileSize = original }()

	_, err := Read(path)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("got %v, want ErrTooLarge", err)
	}
}

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"a.md", "b.markdown", "c.txt", "draft.md"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	subDir := filepath.Join(tmpDir, "sub")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(subDir, "d.md"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file in subdir: %v", err)
	}

	hiddenDir := filepath.Join(tmpDir, ".obsidian")
	if err := os.MkdirAll(hiddenDir, 0755); err != nil {
		t.Fatalf("Failed to create hidden directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(hiddenDir, "e.md"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file in hidden dir: %v", err)
	}

	files, err := Discover(tmpDir, []string{"draft.*"})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	// a.md, b.markdown, sub/d.md; c.txt, draft.md and .obsidian/e.md dropped
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3: %v", len(files), files)
	}
	for i := 1; i < len(files); i++ {
		if files[i-1] > files[i] {
			t.Errorf("files not sorted: %v", files)
		}
	}
}
