package viz

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// RunDir names the folder of one run: <root>/<date>/<time>: <note>.
func RunDir(
	root, note string,
	now time.Time,
) string {
	return filepath.Join(root, now.Format("2006-Jan-02"), now.Format("15:04:05")+": "+note)
}

// SavePlot writes p as png, svg and pdf into dir, creating it if needed.
func SavePlot(
	p *plot.Plot,
	dir, name string,
) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, name)
	for _, ext := range []string{".png", ".svg", ".pdf"} {
		if err := p.Save(15*vg.Inch, 15*vg.Inch, path+ext); err != nil {
			return fmt.Errorf("save %s: %w", name+ext, err)
		}
	}
	return nil
}

// WriteLog writes the run summary lines to dir/log.txt.
func WriteLog(
	dir string,
	logFile []string,
) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	txt, err := os.Create(filepath.Join(dir, "log.txt"))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(txt)
	for _, line := range logFile {
		if _, err := w.WriteString(line); err != nil {
			txt.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		txt.Close()
		return err
	}
	return txt.Close()
}
