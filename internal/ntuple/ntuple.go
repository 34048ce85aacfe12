// Package ntuple reads named fields of a ROOT tree into an event table.
//
// The ROOT format itself is handled by go-hep's groot; this package only
// locates the tree, checks the requested leaves and widens every numeric
// leaf to float64.
package ntuple

import (
	"errors"
	"fmt"
	"reflect"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/HamletTheHamster/ntupleviz/internal/events"
)

var (
	ErrNoTree          = errors.New("ntuple: no such tree")
	ErrNoField         = errors.New("ntuple: no such field")
	ErrUnsupportedLeaf = errors.New("ntuple: unsupported leaf")
)

// File is an open ROOT file.
type File struct {
	path string
	f    *riofs.File
}

// Open opens the ROOT file at path for reading.
func Open(path string) (*File, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	return &File{path: path, f: f}, nil
}

func (f *File) Close() error {
	return f.f.Close()
}

// Load opens path, reads fields of tree and closes the file.
func Load(
	path, tree string,
	fields []string,
) (
	*events.Table, error,
) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Read(tree, fields)
}

func (f *File) tree(name string) (rtree.Tree, error) {
	obj, err := f.f.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q in %q: %v", ErrNoTree, name, f.path, err)
	}
	t, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %q is a %s", ErrNoTree, name, f.path, obj.Class())
	}
	return t, nil
}

// Entries returns the number of events stored in tree.
func (f *File) Entries(tree string) (int64, error) {
	t, err := f.tree(tree)
	if err != nil {
		return 0, err
	}
	return t.Entries(), nil
}

// Branches lists the leaf names of tree.
func (f *File) Branches(tree string) ([]string, error) {
	t, err := f.tree(tree)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, leaf := range t.Leaves() {
		names = append(names, leaf.Name())
	}
	return names, nil
}

// Read extracts fields from every entry of tree, in file order.
func (f *File) Read(
	tree string,
	fields []string,
) (
	*events.Table, error,
) {
	t, err := f.tree(tree)
	if err != nil {
		return nil, err
	}

	rvars := make([]rtree.ReadVar, len(fields))
	for i, name := range fields {
		leaf := t.Leaf(name)
		if leaf == nil {
			return nil, fmt.Errorf("%w: %q in tree %q", ErrNoField, name, tree)
		}
		if leaf.LeafCount() != nil || leaf.Len() > 1 {
			return nil, fmt.Errorf("%w: %q is an array leaf", ErrUnsupportedLeaf, name)
		}
		if _, ok := widen(reflect.New(leaf.Type()).Interface()); !ok {
			return nil, fmt.Errorf("%w: %q has type %s", ErrUnsupportedLeaf, name, leaf.TypeName())
		}
		rvars[i] = rtree.ReadVar{Name: name, Value: reflect.New(leaf.Type()).Interface()}
	}

	n := t.Entries()
	cols := make([][]float64, len(fields))
	for i := range cols {
		cols[i] = make([]float64, 0, n)
	}

	r, err := rtree.NewReader(t, rvars)
	if err != nil {
		return nil, fmt.Errorf("could not create reader for %q: %w", tree, err)
	}
	defer r.Close()

	err = r.Read(func(ctx rtree.RCtx) error {
		for i, rv := range rvars {
			v, _ := widen(rv.Value)
			cols[i] = append(cols[i], v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not read tree %q: %w", tree, err)
	}

	return events.New(fields, cols)
}

// widen converts a pointer to a scalar numeric value into a float64.
func widen(ptr any) (float64, bool) {
	switch v := ptr.(type) {
	case *float64:
		return *v, true
	case *float32:
		return float64(*v), true
	case *int8:
		return float64(*v), true
	case *int16:
		return float64(*v), true
	case *int32:
		return float64(*v), true
	case *int64:
		return float64(*v), true
	case *uint8:
		return float64(*v), true
	case *uint16:
		return float64(*v), true
	case *uint32:
		return float64(*v), true
	case *uint64:
		return float64(*v), true
	case *bool:
		if *v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
