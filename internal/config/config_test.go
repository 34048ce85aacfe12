package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"px", "py", "pz"}, cfg.Fields)
	assert.Equal(t, "ntuple", cfg.Tree)
	assert.Equal(t, "vizZmumu.html", cfg.Out)
	assert.Equal(t, "gauss", cfg.Shape)
	assert.Zero(t, cfg.MaxPoints)
	assert.Equal(t, "/home/abyrnes/data/atlas/hepdata-example.root", cfg.DataPath())
}

func TestCatalogNames(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t,
		[]string{"dataA", "dataB", "dataC", "dataD", "dataEx", "dataZmumu"},
		cfg.Catalog.Names(),
	)

	cfg.Data = "dataC"
	assert.Equal(t, "/home/abyrnes/data/atlas/4lep/data_C.4lep.root", cfg.DataPath())
}

func TestDataPathLiteral(t *testing.T) {
	cfg, err := Parse([]string{"-data", "/tmp/some.root"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/some.root", cfg.DataPath())
}

func TestFields(t *testing.T) {
	cfg, err := Parse([]string{"-fields", " pt, eta ,phi", "-kinematics"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pt", "eta", "phi"}, cfg.Fields)
	assert.True(t, cfg.Kinematics)
	assert.False(t, cfg.Slide)

	cfg, err = Parse([]string{"-slide"})
	require.NoError(t, err)
	assert.True(t, cfg.Slide)

	_, err = Parse([]string{"-fields", "px,py"})
	assert.ErrorIs(t, err, ErrFieldCount)

	_, err = Parse([]string{"-fields", "px,py,pz,E"})
	assert.ErrorIs(t, err, ErrFieldCount)
}

func TestBadFlags(t *testing.T) {
	_, err := Parse([]string{"-nope"})
	assert.Error(t, err)

	_, err = Parse([]string{"-bins", "0"})
	assert.Error(t, err)

	_, err = Parse([]string{"-shape", "landau"})
	assert.Error(t, err)

	_, err = Parse([]string{"-max", "-1"})
	assert.Error(t, err)
}

func TestCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
datadir: /data/open
datasets:
  mc_zee: mc/Zee.root
  dataEx: example/hepdata.root
`), 0o644))

	cfg, err := Parse([]string{"-catalog", path, "-data", "mc_zee"})
	require.NoError(t, err)
	assert.Equal(t, "/data/open/mc/Zee.root", cfg.DataPath())

	cfg.Data = "dataEx"
	assert.Equal(t, "/data/open/example/hepdata.root", cfg.DataPath())

	cfg, err = Parse([]string{"-catalog", path, "-datadir", "/mnt", "-data", "dataA"})
	require.NoError(t, err)
	assert.Equal(t, "/mnt/4lep/data_A.4lep.root", cfg.DataPath())
}

func TestCatalogFileErrors(t *testing.T) {
	_, err := Parse([]string{"-catalog", filepath.Join(t.TempDir(), "none.yaml")})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datasets: [1, 2"), 0o644))
	_, err = Parse([]string{"-catalog", path})
	assert.Error(t, err)
}
