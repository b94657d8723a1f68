package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

func TestInitCreatesEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tools.json")
	b := New(path)

	require.NoError(t, b.Init())
	assert.Equal(t, path, b.Path())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestInitKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.json")
	content := `[{"id":"keep","name":"Keep"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, New(path).Init())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "absent.json"))

	tools, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tools)
	assert.NotNil(t, tools)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := New(path).Load(context.Background())
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.json")
	b := New(path)
	require.NoError(t, b.Init())

	in := []domain.Tool{
		{ID: "b", Name: "Beta", Tags: []string{"x"}},
		{ID: "a", Name: "Alpha"},
	}
	require.NoError(t, b.Save(context.Background(), in))

	out, err := b.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, "a", out[1].ID)
	assert.Equal(t, []string{}, out[1].Tags)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLoadHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(filepath.Join(t.TempDir(), "tools.json")).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
