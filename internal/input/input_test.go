package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDefinition drops a message definition file into a temp dir and
// returns its path.
func writeDefinition(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "message.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadDefinition(t *testing.T) {
	path := writeDefinition(t, `{
	// Subject shown in git log --oneline.
	"subject": "Add caching layer",
	"context": ["Reduces repeated lookups"],
	"enable": ["Faster repeated reads"],
	"change": ["cache.go: add LRU cache (new file)"],
	"deferred": ["Add eviction metrics"], // trailing comma tolerated below
}`)

	msg, err := LoadDefinition(path)
	require.NoError(t, err)

	assert.Equal(t, "Add caching layer", msg.Subject)
	assert.Equal(t, []string{"Reduces repeated lookups"}, msg.Context)
	assert.Equal(t, []string{"Faster repeated reads"}, msg.Enables)
	assert.Equal(t, []string{"cache.go: add LRU cache (new file)"}, msg.Changes)
	assert.Equal(t, []string{"Add eviction metrics"}, msg.Deferred)
}

func TestLoadDefinition_UnknownFieldRejected(t *testing.T) {
	path := writeDefinition(t, `{"subject": "s", "contexts": ["typo"]}`)

	_, err := LoadDefinition(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse message definition")
}

func TestLoadDefinition_MissingFile(t *testing.T) {
	_, err := LoadDefinition(filepath.Join(t.TempDir(), "nope.jsonc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read message definition")
}

func TestLoadDefinition_MalformedJSON(t *testing.T) {
	path := writeDefinition(t, `{"subject": `)

	_, err := LoadDefinition(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse message definition")
}
