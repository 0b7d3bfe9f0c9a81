package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "github.com/mouse-blink/predeploy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSourceFSAdapter_ResolvePath(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	t.Run("relative path becomes absolute", func(t *testing.T) {
		got, err := adapter.ResolvePath("script.js")
		require.NoError(t, err)

		wd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, m.Path(filepath.Join(wd, "script.js")), got)
	})

	t.Run("tilde expands to home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		got, err := adapter.ResolvePath(m.Path("~" + string(os.PathSeparator) + "site/script.js"))
		require.NoError(t, err)
		assert.Equal(t, m.Path(filepath.Join(home, "site", "script.js")), got)
	})

	t.Run("tilde inside a name is kept", func(t *testing.T) {
		root := t.TempDir()

		got, err := adapter.ResolvePath(m.Path(filepath.Join(root, "~backup.js")))
		require.NoError(t, err)
		assert.Equal(t, m.Path(filepath.Join(root, "~backup.js")), got)
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "script.js")
	content := "const quizData = [];\nrun();\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	_, err = adapter.ReadFile(m.Path(filepath.Join(root, "missing.js")))
	assert.ErrorIs(t, err, m.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "script.js")
	writeTestFile(t, path, "run();\n")

	info, err := adapter.FileInfo(m.Path(path))
	require.NoError(t, err)
	assert.False(t, info.IsDir(), "FileInfo() reported file as directory")

	dirInfo, err := adapter.FileInfo(m.Path(root))
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir(), "FileInfo() reported directory as file")

	_, err = adapter.FileInfo(m.Path(filepath.Join(root, "missing.js")))
	assert.ErrorIs(t, err, m.ErrIO)
}

func TestLocalSourceFSAdapter_WriteFileAtomic(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	t.Run("creates a new file", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "script.production.js")

		require.NoError(t, adapter.WriteFileAtomic(m.Path(path), []byte("run();\n")))

		assert.Equal(t, "run();\n", string(readFileBytes(t, path)))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, defaultFileMode, info.Mode().Perm())
		assert.Equal(t, []string{"script.production.js"}, dirEntries(t, root))
	})

	t.Run("replaces an existing file and keeps its mode", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "script.js")
		writeTestFile(t, path, "// old\nrun();\n")
		require.NoError(t, os.Chmod(path, 0o600))

		require.NoError(t, adapter.WriteFileAtomic(m.Path(path), []byte("run();\n")))

		assert.Equal(t, "run();\n", string(readFileBytes(t, path)))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		assert.Equal(t, []string{"script.js"}, dirEntries(t, root))
	})

	t.Run("refuses a directory and leaves it alone", func(t *testing.T) {
		root := t.TempDir()
		target := filepath.Join(root, "script.js")
		mustMkdir(t, target)
		writeTestFile(t, filepath.Join(target, "keep.txt"), "keep")

		err := adapter.WriteFileAtomic(m.Path(target), []byte("run();\n"))
		require.ErrorIs(t, err, m.ErrIO)

		assert.Equal(t, "keep", string(readFileBytes(t, filepath.Join(target, "keep.txt"))))
		assert.Equal(t, []string{"script.js"}, dirEntries(t, root))
	})

	t.Run("fails when the directory is missing", func(t *testing.T) {
		root := t.TempDir()

		err := adapter.WriteFileAtomic(m.Path(filepath.Join(root, "nope", "script.js")), []byte("x"))
		require.ErrorIs(t, err, m.ErrIO)
		assert.Empty(t, dirEntries(t, root))
	})
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func readFileBytes(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}

	return data
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to list %s: %v", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	return names
}
