package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/insights/compiler"
)

// copyFixtures copies dumps from the repository testdata into a fresh
// directory.
func copyFixtures(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join("..", "testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	return dir
}

func TestCollectDumps(t *testing.T) {
	dir := copyFixtures(t, "lambda.yaml", "static.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "UPPER.JSON"), []byte("{}"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0755))

	files, err := collectDumps(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "UPPER.JSON"),
		filepath.Join(dir, "lambda.yaml"),
		filepath.Join(dir, "static.yaml"),
	}, files)

	_, err = collectDumps(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRunBatch(t *testing.T) {
	dir := copyFixtures(t, "lambda.yaml", "rangefor.yaml", "static.yaml")
	broken := filepath.Join(dir, "broken.yml")
	require.NoError(t, os.WriteFile(broken, []byte("decls:\n  - {kind: VarDecl, name: x}\n"), 0644))
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(out, 0755))

	files, err := collectDumps(dir)
	require.NoError(t, err)
	results := runBatch(context.Background(), files, out, compiler.DefaultOptions(), 2)

	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, files[i], r.input, "results keep input order")
	}

	assert.Error(t, results[0].err, "broken.yml has a variable without type")
	assert.Empty(t, results[0].output)
	assert.Equal(t, 1, countFailed(results))

	for _, r := range results[1:] {
		require.NoError(t, r.err)
		data, err := os.ReadFile(r.output)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
	assert.Equal(t, filepath.Join(out, "static.cpp"), results[3].output)
	assert.True(t, results[3].local)
	assert.False(t, results[1].local)
}

func TestRunBatchCancelled(t *testing.T) {
	dir := copyFixtures(t, "lambda.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := runBatch(ctx, []string{filepath.Join(dir, "lambda.yaml")}, dir, compiler.DefaultOptions(), 1)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "lambda.cpp"))
}

func TestIsFile(t *testing.T) {
	dir := copyFixtures(t, "lambda.yaml")
	assert.True(t, isFile(filepath.Join(dir, "lambda.yaml")))
	assert.False(t, isFile(dir))
	assert.False(t, isFile(filepath.Join(dir, "nope")))
}
