// Package mdfile reads and discovers markdown files on disk. Reading
// normalizes the text so the parser only ever sees LF line endings.
package mdfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxFileSize caps how large a file Read accepts. Var so tests can lower it.
var MaxFileSize int64 = 10 << 20

var (
	ErrTooLarge    = errors.New("file exceeds size limit")
	ErrNotMarkdown = errors.New("not a markdown file")
)

var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdown":    true,
	".mkd":      true,
}

// IsMarkdown reports whether path has a markdown extension.
func IsMarkdown(path string) bool {
	return markdownExts[strings.ToLower(filepath.Ext(path))]
}

// Read loads a markdown file and normalizes it: a UTF-8 BOM is stripped
// and CRLF line endings become LF.
func Read(path string) (string, error) {
	if !IsMarkdown(path) {
		return "", fmt.Errorf("%s: %w", path, ErrNotMarkdown)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("%s (%d bytes): %w", path, info.Size(), ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text, nil
}

// Discover walks dir and returns all markdown files, sorted. Base names
// matching an exclude pattern (filepath.Match syntax) are dropped; hidden
// directories are not descended into.
func Discover(dir string, excludePatterns []string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != dir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsMarkdown(path) {
			return nil
		}
		for _, pattern := range excludePatterns {
			if ok, _ := filepath.Match(pattern, info.Name()); ok {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
