// Copyright © 2024 The ELPS authors

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/luthersystems/fixkit/hostio"
)

// ignoreFile holds gitignore-style exclude patterns of the working directory.
const ignoreFile = ".fixkitignore"

// expandArgs expands arguments, resolving patterns ending with "/..." to all
// host documents found recursively under the given directory. Paths that
// match an exclude pattern or a line of .fixkitignore are dropped.
func expandArgs(args, excludes []string) ([]string, error) {
	ign, err := compileExcludes(ignoreFile, excludes)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, arg := range args {
		if dir, ok := strings.CutSuffix(arg, "/..."); ok {
			if dir == "" {
				dir = "."
			}
			files, err := findDocuments(dir, ign)
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", arg, err)
			}
			out = append(out, files...)
		} else if !excluded(ign, arg) {
			out = append(out, arg)
		}
	}
	return out, nil
}

// compileExcludes compiles patterns together with the lines of path, when
// that file exists.
func compileExcludes(path string, patterns []string) (*ignore.GitIgnore, error) {
	if _, err := os.Stat(path); err == nil {
		ign, err := ignore.CompileIgnoreFileAndLines(path, patterns...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return ign, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, nil
	}
	return ignore.CompileIgnoreLines(patterns...), nil
}

func excluded(ign *ignore.GitIgnore, path string) bool {
	return ign != nil && ign.MatchesPath(filepath.ToSlash(filepath.Clean(path)))
}

func findDocuments(root string, ign *ignore.GitIgnore) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && excluded(ign, path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && hostio.IsDocument(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
