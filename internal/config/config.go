// Package config holds the data paths and run options of ntupleviz.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrFieldCount = errors.New("config: the 3D figure needs exactly three fields")

// DefaultDataDir is where the ATLAS open data samples live on the analysis box.
const DefaultDataDir = "/home/abyrnes/data/atlas/"

// Catalog maps dataset names to paths relative to the data directory.
type Catalog map[string]string

// DefaultCatalog returns the datasets the analysis knows by name.
func DefaultCatalog() Catalog {
	return Catalog{
		"dataA":     "4lep/data_A.4lep.root",
		"dataB":     "4lep/data_B.4lep.root",
		"dataC":     "4lep/data_C.4lep.root",
		"dataD":     "4lep/data_D.4lep.root",
		"dataEx":    "hepdata-example.root",
		"dataZmumu": "Zmumu.root",
	}
}

// Names returns the catalog entries in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type catalogFile struct {
	DataDir  string            `yaml:"datadir"`
	Datasets map[string]string `yaml:"datasets"`
}

// Config is everything a run needs.
type Config struct {
	DataDir    string
	Data       string
	Tree       string
	Fields     []string
	Out        string
	Catalog    Catalog
	Hist       bool
	CSV        string
	Parquet    string
	Fit        string
	Shape      string
	MaxPoints  int
	Bins       int
	Gnuplot    string
	Kinematics bool
	Slide      bool
	Note       string
	PlotRoot   string
	SeqURL     string
	Verbose    bool
}

// Defaults reproduces the hepdata example run: px, py and pz of the
// example ntuple into vizZmumu.html.
func Defaults() Config {
	return Config{
		DataDir:  DefaultDataDir,
		Data:     "dataEx",
		Tree:     "ntuple",
		Fields:   []string{"px", "py", "pz"},
		Out:      "vizZmumu.html",
		Catalog:  DefaultCatalog(),
		Bins:     50,
		Shape:    "gauss",
		PlotRoot: "plots",
	}
}

// DataPath resolves Data against the catalog. Names not in the catalog are
// used as file paths.
func (c Config) DataPath() string {
	if rel, ok := c.Catalog[c.Data]; ok {
		return filepath.Join(c.DataDir, rel)
	}
	return c.Data
}

// Parse reads command-line arguments (without the program name).
func Parse(
	args []string,
) (
	Config, error,
) {
	cfg := Defaults()
	fields := strings.Join(cfg.Fields, ",")
	var catalog string

	fs := flag.NewFlagSet("ntupleviz", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.DataDir, "datadir", cfg.DataDir, "base directory of the named datasets")
	fs.StringVar(&cfg.Data, "data", cfg.Data, "dataset name (dataA..dataD, dataEx, dataZmumu) or path to a ROOT file")
	fs.StringVar(&cfg.Tree, "tree", cfg.Tree, "name of the ntuple inside the file")
	fs.StringVar(&fields, "fields", fields, "x,y,z fields of the 3D figure")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "HTML output file")
	fs.StringVar(&catalog, "catalog", "", "YAML file with extra datasets")
	fs.BoolVar(&cfg.Hist, "hist", false, "save histograms and projections to the run folder")
	fs.StringVar(&cfg.CSV, "csv", "", "also write the event table as CSV")
	fs.StringVar(&cfg.Parquet, "parquet", "", "also write the event table as Parquet")
	fs.StringVar(&cfg.Fit, "fit", "", "fit a peak (see -shape) to the histogram of this column")
	fs.StringVar(&cfg.Shape, "shape", cfg.Shape, "peak shape for -fit: gauss or lorentz")
	fs.IntVar(&cfg.MaxPoints, "max", 0, "at most this many events in the 3D figure (0 = all)")
	fs.IntVar(&cfg.Bins, "bins", cfg.Bins, "number of histogram bins")
	fs.StringVar(&cfg.Gnuplot, "gnuplot", "", "also render the 3D scatter with gnuplot to this file")
	fs.BoolVar(&cfg.Slide, "slide", false, "format figures for slide presentation")
	fs.BoolVar(&cfg.Kinematics, "kinematics", false, "add pt, p, eta and phi columns")
	fs.StringVar(&cfg.Note, "note", "", "note to append folder name")
	fs.StringVar(&cfg.PlotRoot, "plots", cfg.PlotRoot, "root folder of the run folders")
	fs.StringVar(&cfg.SeqURL, "seq", "", "Seq server URL for log shipping")
	fs.BoolVar(&cfg.Verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Fields = splitFields(fields)
	if len(cfg.Fields) != 3 {
		return Config{}, fmt.Errorf("%w: got %q", ErrFieldCount, fields)
	}

	if cfg.Bins < 1 {
		return Config{}, fmt.Errorf("config: -bins must be positive, got %d", cfg.Bins)
	}

	if cfg.Shape != "gauss" && cfg.Shape != "lorentz" {
		return Config{}, fmt.Errorf("config: -shape must be gauss or lorentz, got %q", cfg.Shape)
	}

	if cfg.MaxPoints < 0 {
		return Config{}, fmt.Errorf("config: -max must not be negative, got %d", cfg.MaxPoints)
	}

	if catalog != "" {
		if err := cfg.loadCatalog(catalog); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func splitFields(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// loadCatalog merges a YAML catalog into cfg. A datadir in the file only
// applies when -datadir was left at its default.
func (c *Config) loadCatalog(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: could not read catalog: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return fmt.Errorf("config: invalid catalog %q: %w", path, err)
	}

	for name, rel := range cf.Datasets {
		c.Catalog[name] = rel
	}
	if cf.DataDir != "" && c.DataDir == DefaultDataDir {
		c.DataDir = cf.DataDir
	}
	return nil
}
