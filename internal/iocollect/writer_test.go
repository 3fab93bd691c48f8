package iocollect

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocWriterWellFormed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w, err := newDocWriter(path)
	require.NoError(t, err)

	docs := []map[string]any{
		{"well": map[string]any{"uwi": "001"}},
		{"well": map[string]any{"uwi": "002"}},
		{"well": map[string]any{"uwi": "003"}},
	}
	for _, doc := range docs {
		require.NoError(t, w.write(doc))
	}
	require.NoError(t, w.finalize())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(b), ",]"), "no trailing comma")

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(b, &parsed))
	require.Len(t, parsed, 3)
	assert.Equal(t, "001", parsed[0]["well"].(map[string]any)["uwi"])
	assert.Equal(t, "003", parsed[2]["well"].(map[string]any)["uwi"])
}

// Zero documents from batches that ran yields an empty array, not a
// broken file.
func TestDocWriterEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w, err := newDocWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.finalize())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestDocWriterDiscard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w, err := newDocWriter(path)
	require.NoError(t, err)

	w.discard()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "discard removes the file")
}

// An aborted run releases the file handle but keeps the partial file
// on disk.
func TestDocWriterCloseReleasesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w, err := newDocWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.write(map[string]any{"well": "001"}))

	w.close()
	err = w.write(map[string]any{"well": "002"})
	require.Error(t, err, "closed writer accepts no more documents")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "["), "partial file remains")
	assert.False(t, strings.HasSuffix(string(b), "]"), "array never finished")
}

func TestDocWriterBadPath(t *testing.T) {
	_, err := newDocWriter(filepath.Join(t.TempDir(), "missing", "out.json"))
	require.Error(t, err)
	var fe *FilesystemError
	assert.ErrorAs(t, err, &fe)
}
