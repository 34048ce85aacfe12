// Command ntupleviz loads named fields of a ROOT ntuple and writes an
// interactive 3D figure of three of them to an HTML file.
//
//	ntupleviz -data dataEx -tree ntuple -fields px,py,pz -out vizZmumu.html
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/HamletTheHamster/ntupleviz/internal/config"
	"github.com/HamletTheHamster/ntupleviz/internal/events"
	"github.com/HamletTheHamster/ntupleviz/internal/fit"
	"github.com/HamletTheHamster/ntupleviz/internal/logging"
	"github.com/HamletTheHamster/ntupleviz/internal/ntuple"
	"github.com/HamletTheHamster/ntupleviz/internal/viz"
)

// gnuplot3D is set by the gnuplot build tag.
var gnuplot3D = func(*events.Table, string, string, string, string) error {
	return viz.ErrNoGnuplot
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(
	args []string,
	stderr io.Writer,
) error {
	cfg, err := config.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, "ntupleviz:", err)
		return err
	}

	logger, runID, cleanup := logging.Setup(logging.Options{
		Out:     stderr,
		Verbose: cfg.Verbose,
		SeqURL:  cfg.SeqURL,
	})
	defer cleanup()

	if err := analyze(cfg, runID, logger); err != nil {
		logger.Error("run failed", "err", err)
		return err
	}
	return nil
}

func analyze(
	cfg config.Config,
	runID string,
	logger *slog.Logger,
) error {
	path := cfg.DataPath()
	logFile := logHeader(cfg, runID, path)

	// Extra columns only needed for the fit and histograms.
	fields := cfg.Fields
	if cfg.Kinematics {
		fields = withMomentum(fields)
	}

	logger.Info("loading ntuple", "file", path, "tree", cfg.Tree, "fields", fields)
	tbl, err := load(cfg, path, fields, logger)
	if err != nil {
		return err
	}
	defer tbl.Release()
	logger.Info("loaded events", "rows", tbl.NumRows())
	logFile = append(logFile, fmt.Sprintf("Events: %d\n\n", tbl.NumRows()))

	for _, s := range tbl.Summarize() {
		logger.Debug("column", "name", s.Name, "n", s.Count, "mean", s.Mean, "std", s.StdDev)
		logFile = append(logFile, s.String()+"\n")
	}

	x, y, z := cfg.Fields[0], cfg.Fields[1], cfg.Fields[2]
	fig := viz.Figure3D{MaxPoints: cfg.MaxPoints}
	if err := viz.WriteScatter3D(tbl, x, y, z, fig, cfg.Out); err != nil {
		return err
	}
	logger.Info("wrote figure", "out", cfg.Out)

	if err := export(cfg, tbl, logger); err != nil {
		return err
	}

	if cfg.Gnuplot != "" {
		if err := gnuplot3D(tbl, x, y, z, cfg.Gnuplot); err != nil {
			logger.Warn("gnuplot rendering skipped", "err", err)
		} else {
			logger.Info("wrote gnuplot figure", "out", cfg.Gnuplot)
		}
	}

	if !cfg.Hist && cfg.Fit == "" {
		return nil
	}

	dir := viz.RunDir(cfg.PlotRoot, cfg.Note, time.Now())

	if cfg.Hist {
		if err := histograms(cfg, tbl, dir); err != nil {
			return err
		}
		logger.Info("saved histograms", "dir", dir)
	}

	if cfg.Fit != "" {
		line, err := fitColumn(cfg, tbl, dir)
		if err != nil {
			return err
		}
		logger.Info("fit", "column", cfg.Fit, "result", line)
		logFile = append(logFile, "\n"+line+"\n")
	}

	return viz.WriteLog(dir, logFile)
}

func load(
	cfg config.Config,
	path string,
	fields []string,
	logger *slog.Logger,
) (
	*events.Table, error,
) {
	f, err := ntuple.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if cfg.Verbose {
		if names, err := f.Branches(cfg.Tree); err == nil {
			logger.Debug("branches", "tree", cfg.Tree, "names", names)
		}
	}

	tbl, err := f.Read(cfg.Tree, fields)
	if err != nil {
		return nil, err
	}
	if !cfg.Kinematics {
		return tbl, nil
	}

	defer tbl.Release()
	return tbl.WithKinematics()
}

// withMomentum adds px, py and pz to fields unless already requested, and
// drops derived names that WithKinematics will produce.
func withMomentum(fields []string) []string {
	derived := map[string]bool{events.Pt: true, events.P: true, events.Eta: true, events.Phi: true}
	var out []string
	seen := map[string]bool{}
	for _, f := range append(append([]string{}, fields...), "px", "py", "pz") {
		if derived[f] || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func export(
	cfg config.Config,
	tbl *events.Table,
	logger *slog.Logger,
) error {
	writers := []struct {
		path  string
		write func(io.Writer) error
	}{
		{cfg.CSV, tbl.WriteCSV},
		{cfg.Parquet, tbl.WriteParquet},
	}

	for _, w := range writers {
		if w.path == "" {
			continue
		}
		f, err := os.Create(w.path)
		if err != nil {
			return err
		}
		if err := w.write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("exported table", "out", w.path)
	}
	return nil
}

func histograms(
	cfg config.Config,
	tbl *events.Table,
	dir string,
) error {
	for i, name := range tbl.Names() {
		col, _ := tbl.Column(name)
		p, err := viz.Histogram(col, cfg.Bins, name, name, i, cfg.Slide)
		if err != nil {
			return err
		}
		if err := viz.SavePlot(p, dir, name); err != nil {
			return err
		}
	}

	pairs := [][2]string{
		{cfg.Fields[0], cfg.Fields[1]},
		{cfg.Fields[0], cfg.Fields[2]},
		{cfg.Fields[1], cfg.Fields[2]},
	}
	for i, pair := range pairs {
		p, err := viz.Projection(tbl, pair[0], pair[1], i, cfg.Slide)
		if err != nil {
			return err
		}
		if err := viz.SavePlot(p, dir, pair[1]+" vs "+pair[0]); err != nil {
			return err
		}
	}
	return nil
}

func fitColumn(
	cfg config.Config,
	tbl *events.Table,
	dir string,
) (
	string, error,
) {
	shape, err := fit.ParseShape(cfg.Shape)
	if err != nil {
		return "", err
	}

	col, err := tbl.Column(cfg.Fit)
	if err != nil {
		return "", err
	}

	r, err := fit.Peak(shape, col, cfg.Bins)
	if err != nil {
		return "", fmt.Errorf("fit %q: %w", cfg.Fit, err)
	}

	p, err := viz.FitOverlay(r, cfg.Fit+" fit", cfg.Fit, 0, cfg.Slide)
	if err != nil {
		return "", err
	}
	if err := viz.SavePlot(p, dir, cfg.Fit+" fit"); err != nil {
		return "", err
	}

	return fmt.Sprintf("Fit of %s: %s", cfg.Fit, r), nil
}

func logHeader(
	cfg config.Config,
	runID, path string,
) []string {
	logFile := []string{}
	logFile = append(logFile, "Run: "+runID+"\n")
	if cfg.Note != "" {
		logFile = append(logFile, "Runtime note: "+cfg.Note+"\n")
	}
	logFile = append(logFile, "Dataset: "+cfg.Data+"\n")
	logFile = append(logFile, "File: "+path+"\n")
	logFile = append(logFile, "Tree: "+cfg.Tree+"\n")
	logFile = append(logFile, fmt.Sprintf("Figure: %s, %s, %s -> %s\n",
		cfg.Fields[0], cfg.Fields[1], cfg.Fields[2], cfg.Out))
	if cfg.Slide {
		logFile = append(logFile, "Figures formatted for slide presentation\n")
	}
	if cfg.Kinematics {
		logFile = append(logFile, "\n*Derived kinematics: pt, p, eta, phi*\n")
	}

	return logFile
}
