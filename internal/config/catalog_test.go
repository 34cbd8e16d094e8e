package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptcast/pkg/argtypes"
)

const catalogYAML = `
arguments:
  age:
    start:
      - "How old are you?"
      - "Numbers only, please."
    retry: ["Still not a number."]
    ended: ["Giving up."]
  name:
    start: ["What is your name?"]
`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)

	require.Len(t, c.Arguments, 2)
	assert.Equal(t, []string{"How old are you?", "Numbers only, please."}, c.Arguments["age"].Start)
	assert.Equal(t, []string{"Still not a number."}, c.Arguments["age"].Retry)
	assert.Empty(t, c.Arguments["name"].Retry)
}

func TestParseCatalog_Invalid(t *testing.T) {
	_, err := ParseCatalog([]byte("arguments: [not, a, map]"))
	assert.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Contains(t, c.Arguments, "age")

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestCatalog_Apply(t *testing.T) {
	c, err := ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)

	data := argtypes.PromptData{}

	cfg := c.Apply("age", &argtypes.PromptConfig{})
	require.NotNil(t, cfg.Start)
	assert.Equal(t, "How old are you?\nNumbers only, please.", cfg.Start(data))
	require.NotNil(t, cfg.Retry)
	assert.Equal(t, "Still not a number.", cfg.Retry(data))
	assert.Nil(t, cfg.Timeout, "phases absent from the catalog stay unset")

	// Unknown IDs leave the config untouched
	cfg = c.Apply("unknown", &argtypes.PromptConfig{})
	assert.Nil(t, cfg.Start)
}
