package events

import (
	"fmt"
	"math"
)

// Derived column names added by WithKinematics.
const (
	Pt  = "pt"
	P   = "p"
	Eta = "eta"
	Phi = "phi"
)

// WithKinematics returns a new table with pt, p, eta and phi appended,
// computed from the px, py and pz columns. The receiver is left untouched.
func (t *Table) WithKinematics() (*Table, error) {
	px, err := t.Column("px")
	if err != nil {
		return nil, fmt.Errorf("kinematics: %w", err)
	}
	py, err := t.Column("py")
	if err != nil {
		return nil, fmt.Errorf("kinematics: %w", err)
	}
	pz, err := t.Column("pz")
	if err != nil {
		return nil, fmt.Errorf("kinematics: %w", err)
	}

	n := len(px)
	pt := make([]float64, n)
	p := make([]float64, n)
	eta := make([]float64, n)
	phi := make([]float64, n)

	for i := 0; i < n; i++ {
		pt[i] = math.Hypot(px[i], py[i])
		p[i] = math.Sqrt(px[i]*px[i] + py[i]*py[i] + pz[i]*pz[i])
		eta[i] = pseudorapidity(pt[i], pz[i])
		phi[i] = math.Atan2(py[i], px[i])
	}

	names, cols := t.columns()
	for _, derived := range []string{Pt, P, Eta, Phi} {
		if t.Has(derived) {
			return nil, fmt.Errorf("kinematics: %w: %q", ErrDuplicate, derived)
		}
	}
	names = append(names, Pt, P, Eta, Phi)
	cols = append(cols, pt, p, eta, phi)

	return New(names, cols)
}

// pseudorapidity is asinh(pz/pt); along the beam axis it diverges.
func pseudorapidity(pt, pz float64) float64 {
	if pt == 0 {
		switch {
		case pz > 0:
			return math.Inf(1)
		case pz < 0:
			return math.Inf(-1)
		}
		return 0
	}
	return math.Asinh(pz / pt)
}
