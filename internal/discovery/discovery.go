// Package discovery finds options files below directories.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultMaxDepth is the number of directory levels scanned below a root
const DefaultMaxDepth = 3

// DefaultExtensions are the formats optionsource can read
var DefaultExtensions = []string{".yaml", ".yml", ".toml", ".json"}

// skipDirs are never descended into
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
	"venv":         true,
}

// Scanner walks directories looking for options files
type Scanner struct {
	MaxDepth   int
	Extensions []string
	// Exclude lists base names to ignore, such as the config file
	Exclude []string
	Logger  *log.Logger
}

// NewScanner creates a scanner with the default depth and extensions
func NewScanner(logger *log.Logger, exclude ...string) *Scanner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scanner{
		MaxDepth:   DefaultMaxDepth,
		Extensions: DefaultExtensions,
		Exclude:    exclude,
		Logger:     logger,
	}
}

// Scan returns the options files below roots, sorted within each root.
// Hidden files and directories are skipped. A root that is a file is
// returned as is.
func (s *Scanner) Scan(ctx context.Context, roots []string) ([]string, error) {
	var found []string
	for _, root := range roots {
		files, err := s.scanRoot(ctx, root)
		if err != nil {
			return nil, err
		}
		found = append(found, files...)
	}
	return found, nil
}

func (s *Scanner) scanRoot(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == root {
				return err
			}
			s.Logger.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			rel, _ := filepath.Rel(root, path)
			if strings.Count(rel, string(filepath.Separator)) >= s.MaxDepth {
				return filepath.SkipDir
			}
			if strings.HasPrefix(name, ".") || skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root && strings.HasPrefix(name, ".") {
			return nil
		}
		if s.excluded(name) || !s.accepts(name) {
			return nil
		}
		s.Logger.Debug("found options file", "path", path)
		files = append(files, path)
		return nil
	})

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

func (s *Scanner) accepts(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range s.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (s *Scanner) excluded(name string) bool {
	for _, e := range s.Exclude {
		if name == e {
			return true
		}
	}
	return false
}
