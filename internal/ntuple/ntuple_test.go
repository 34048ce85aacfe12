package ntuple

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
)

const nevents = 25

// writeExample writes a small ntuple shaped like hepdata-example.root.
func writeExample(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "example.root")
	f, err := groot.Create(path)
	require.NoError(t, err)

	var (
		px, py, pz float32
		random     float64
		i          int32
		nhits      int32
		hits       []float32
	)
	wvars := []rtree.WriteVar{
		{Name: "px", Value: &px},
		{Name: "py", Value: &py},
		{Name: "pz", Value: &pz},
		{Name: "random", Value: &random},
		{Name: "i", Value: &i},
		{Name: "nhits", Value: &nhits},
		{Name: "hits", Value: &hits, Count: "nhits"},
	}

	w, err := rtree.NewWriter(f, "ntuple", wvars)
	require.NoError(t, err)

	for j := 0; j < nevents; j++ {
		px = float32(j) * 0.5
		py = -float32(j)
		pz = float32(j * j)
		random = float64(j) / 10
		i = int32(j)
		nhits = int32(j % 3)
		hits = make([]float32, nhits)
		_, err := w.Write()
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestLoad(t *testing.T) {
	path := writeExample(t)

	tbl, err := Load(path, "ntuple", []string{"px", "py", "pz"})
	require.NoError(t, err)
	defer tbl.Release()

	assert.Equal(t, nevents, tbl.NumRows())
	assert.Equal(t, []string{"px", "py", "pz"}, tbl.Names())

	px, err := tbl.Column("px")
	require.NoError(t, err)
	assert.Equal(t, 0.0, px[0])
	assert.Equal(t, 12.0, px[24])

	pz, _ := tbl.Column("pz")
	assert.Equal(t, 576.0, pz[24])
}

func TestLoadIntegerLeaf(t *testing.T) {
	path := writeExample(t)

	tbl, err := Load(path, "ntuple", []string{"i", "random"})
	require.NoError(t, err)
	defer tbl.Release()

	i, _ := tbl.Column("i")
	assert.Equal(t, 7.0, i[7])
	r, _ := tbl.Column("random")
	assert.InDelta(t, 0.7, r[7], 1e-12)
}

func TestLoadErrors(t *testing.T) {
	path := writeExample(t)

	_, err := Load(path, "mini", []string{"px"})
	assert.ErrorIs(t, err, ErrNoTree)

	_, err = Load(path, "ntuple", []string{"px", "E"})
	assert.ErrorIs(t, err, ErrNoField)

	_, err = Load(path, "ntuple", []string{"hits"})
	assert.ErrorIs(t, err, ErrUnsupportedLeaf)

	_, err = Load(filepath.Join(t.TempDir(), "missing.root"), "ntuple", []string{"px"})
	assert.Error(t, err)
}

func TestBranchesAndEntries(t *testing.T) {
	f, err := Open(writeExample(t))
	require.NoError(t, err)
	defer f.Close()

	names, err := f.Branches("ntuple")
	require.NoError(t, err)
	assert.Subset(t, names, []string{"px", "py", "pz", "random", "i"})

	n, err := f.Entries("ntuple")
	require.NoError(t, err)
	assert.EqualValues(t, nevents, n)
}

func TestWiden(t *testing.T) {
	f32 := float32(1.5)
	u8 := uint8(200)
	b := true
	s := "px"

	v, ok := widen(&f32)
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	v, ok = widen(&u8)
	assert.True(t, ok)
	assert.Equal(t, 200.0, v)

	v, ok = widen(&b)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = widen(&s)
	assert.False(t, ok)
}
