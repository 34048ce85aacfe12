//go:build gnuplot

package gnuplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamletTheHamster/ntupleviz/internal/events"
)

func table(t *testing.T) *events.Table {
	t.Helper()
	tbl, err := events.New(
		[]string{"px", "py", "pz"},
		[][]float64{{1, 2, 3, 4}, {4, 3, 2, 1}, {0, 1, 0, 1}},
	)
	require.NoError(t, err)
	t.Cleanup(tbl.Release)
	return tbl
}

func TestScatter3D(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloud.png")
	require.NoError(t, Scatter3D(table(t), "px", "py", "pz", path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestScatter3DMissingColumn(t *testing.T) {
	err := Scatter3D(table(t), "px", "py", "E", filepath.Join(t.TempDir(), "g.png"))
	assert.ErrorIs(t, err, events.ErrNoColumn)
}
