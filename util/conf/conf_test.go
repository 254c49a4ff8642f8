package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	gen := Default()
	assert.Equal(t, 8, gen.BeamSize)
	assert.Equal(t, 200, gen.MaxSteps)
	assert.Equal(t, int64(1), gen.Seed)
	assert.Equal(t, 1, gen.Sentences)
	assert.True(t, gen.RewriteRootLabels)
}

func TestLoad(t *testing.T) {
	data := []byte("beam size: 16\nseed: 42\nlabel map: maps/labels.txt\n")
	gen, err := Load(data)
	require.NoError(t, err)

	assert.Equal(t, 16, gen.BeamSize)
	assert.Equal(t, int64(42), gen.Seed)
	assert.Equal(t, "maps/labels.txt", gen.LabelMapFile)
	// unset keys keep their defaults
	assert.Equal(t, 200, gen.MaxSteps)
	assert.True(t, gen.RewriteRootLabels)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load([]byte("beam size: [not a number\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "gen.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("sentences: 3\n"), 0644))

	gen, err := LoadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, 3, gen.Sentences)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
