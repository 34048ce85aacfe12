//go:build !gnuplot

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamletTheHamster/ntupleviz/internal/viz"
)

func TestGnuplotDisabled(t *testing.T) {
	err := gnuplot3D(nil, "px", "py", "pz", "cloud.png")
	assert.True(t, errors.Is(err, viz.ErrNoGnuplot))

	data := writeNtuple(t, 20)
	dir := t.TempDir()
	out := filepath.Join(dir, "out.html")
	cloud := filepath.Join(dir, "cloud.png")

	var stderr bytes.Buffer
	require.NoError(t, run([]string{"-data", data, "-out", out, "-gnuplot", cloud}, &stderr))

	assert.Contains(t, stderr.String(), "gnuplot rendering skipped")
	assert.Contains(t, stderr.String(), "built without gnuplot support")

	_, err = os.Stat(out)
	assert.NoError(t, err)
	_, err = os.Stat(cloud)
	assert.True(t, os.IsNotExist(err))
}
