package output

import (
	"errors"
	"fmt"

	"github.com/SudhakarYogaraj/dgtri/mesh"
	"github.com/SudhakarYogaraj/dgtri/utils"
)

var (
	// ErrUnknownFormat reports an unrecognized format tag. Remaining known
	// formats are still written; the caller may drop the offending tag and
	// retry without losing state.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrInconsistentFieldSize reports fields that disagree in element count
	// or local polynomial order. Nothing is written.
	ErrInconsistentFieldSize = errors.New("inconsistent field size")
)

type Format uint8

const (
	VTK     Format = iota // legacy ASCII .vtk
	Tecplot               // ASCII FEPOINT .dat
)

func ParseFormat(tag string) (Format, error) {
	switch tag {
	case "vtk":
		return VTK, nil
	case "tec":
		return Tecplot, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, tag)
}

func (f Format) Ext() string {
	switch f {
	case VTK:
		return "vtk"
	case Tecplot:
		return "dat"
	}
	return ""
}

// Field is one scalar field in per-element Lagrangian (nodal) form. Data is
// K x {1,3,6} for a piecewise constant, linear or quadratic local basis;
// columns are the element vertices followed by the edge midpoints of local
// edges (0,1), (1,2), (2,0).
type Field struct {
	Name string
	Data utils.Matrix
}

// VectorGroup names two scalar fields forming the components of a vector
// variable in formats that support one.
type VectorGroup struct {
	Name       string
	Components [2]string
}

/*
WriteLagrangian writes the given fields at time level `level` to one file
per requested format, named <basename>.<level>.<ext>. All fields must share
the mesh's element count and a common polynomial order.

An unknown format in the list does not abort the call: every recognized
format is still written and the error is returned afterward.
*/
func WriteLagrangian(tri *mesh.Triangulation, fields []Field, basename string, level int, formats []Format, groups ...VectorGroup) error {
	order, err := fieldOrder(tri, fields)
	if err != nil {
		return err
	}
	if err = checkGroups(fields, groups); err != nil {
		return err
	}
	var errs []error
	for _, f := range formats {
		name := fmt.Sprintf("%s.%d.%s", basename, level, f.Ext())
		switch f {
		case VTK:
			err = writeVTK(name, tri, fields, order, groups)
		case Tecplot:
			err = writeTecplot(name, tri, fields, order, level)
		default:
			err = fmt.Errorf("%w: tag %d", ErrUnknownFormat, f)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// fieldOrder validates the field set against the mesh and returns the shared
// local polynomial order (0, 1 or 2).
func fieldOrder(tri *mesh.Triangulation, fields []Field) (order int, err error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: no fields given", ErrInconsistentFieldSize)
	}
	_, nc0 := fields[0].Data.Dims()
	for _, f := range fields {
		nr, nc := f.Data.Dims()
		if nr != tri.K {
			return 0, fmt.Errorf("%w: field %q has %d rows, mesh has %d elements", ErrInconsistentFieldSize, f.Name, nr, tri.K)
		}
		if nc != nc0 {
			return 0, fmt.Errorf("%w: field %q has %d columns, field %q has %d", ErrInconsistentFieldSize, f.Name, nc, fields[0].Name, nc0)
		}
	}
	switch nc0 {
	case 1:
		order = 0
	case 3:
		order = 1
	case 6:
		order = 2
	default:
		return 0, fmt.Errorf("%w: %d nodal columns, want 1, 3 or 6", ErrInconsistentFieldSize, nc0)
	}
	return
}

func checkGroups(fields []Field, groups []VectorGroup) error {
	have := make(map[string]bool, len(fields))
	for _, f := range fields {
		have[f.Name] = true
	}
	for _, g := range groups {
		for _, c := range g.Components {
			if !have[c] {
				return fmt.Errorf("vector group %q references unknown field %q", g.Name, c)
			}
		}
	}
	return nil
}

// nodeCoords returns the per-element Lagrangian point coordinates for the
// given order: 3 points per element for orders 0 and 1, 6 for order 2.
func nodeCoords(tri *mesh.Triangulation, order int) (xs, ys []float64, perElem int) {
	perElem = 3
	if order == 2 {
		perElem = 6
	}
	xs = make([]float64, tri.K*perElem)
	ys = make([]float64, tri.K*perElem)
	for k := 0; k < tri.K; k++ {
		var vx, vy [3]float64
		for n := 0; n < 3; n++ {
			v := int(tri.EToV.At(k, n))
			vx[n], vy[n] = tri.VX.AtVec(v), tri.VY.AtVec(v)
			xs[k*perElem+n], ys[k*perElem+n] = vx[n], vy[n]
		}
		if order == 2 {
			for n := 0; n < 3; n++ {
				xs[k*perElem+3+n] = 0.5 * (vx[n] + vx[(n+1)%3])
				ys[k*perElem+3+n] = 0.5 * (vy[n] + vy[(n+1)%3])
			}
		}
	}
	return
}
