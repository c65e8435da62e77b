// Copyright © 2024 The ELPS authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	}
}

// chdir switches into dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	touch(t, ".",
		"src/main.json",
		"src/generated_foo.json",
		"src/notes.txt",
		"build/output.msgpack",
		"build/sub/deep.json",
		"lib/utils.mpk",
	)

	tests := []struct {
		name     string
		args     []string
		excludes []string
		want     []string
	}{
		{"recursive", []string{"./..."}, nil, []string{
			"build/output.msgpack", "build/sub/deep.json", "lib/utils.mpk", "src/generated_foo.json", "src/main.json",
		}},
		{"by directory", []string{"./..."}, []string{"build"}, []string{
			"lib/utils.mpk", "src/generated_foo.json", "src/main.json",
		}},
		{"glob", []string{"src/..."}, []string{"generated_*"}, []string{"src/main.json"}},
		{"multiple patterns", []string{"./..."}, []string{"build", "lib/"}, []string{
			"src/generated_foo.json", "src/main.json",
		}},
		{"explicit files", []string{"src/main.json", "src/generated_foo.json"}, []string{"generated_*"}, []string{"src/main.json"}},
		{"no matches", []string{"lib/..."}, []string{"nonexistent"}, []string{"lib/utils.mpk"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandArgs(tt.args, tt.excludes)
			require.NoError(t, err)
			for i := range got {
				got[i] = filepath.ToSlash(filepath.Clean(got[i]))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandArgsIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	touch(t, ".", "a/keep.json", "a/skip.json", "vendor/x.json")
	require.NoError(t, os.WriteFile(ignoreFile, []byte("# generated\nskip.json\nvendor/\n"), 0o600))

	got, err := expandArgs([]string{"./..."}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/keep.json"}, got)
}
