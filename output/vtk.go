package output

import (
	"bufio"
	"fmt"
	"os"

	"github.com/SudhakarYogaraj/dgtri/mesh"
)

// writeVTK writes one legacy ASCII VTK unstructured grid file. Points are
// duplicated per element so discontinuous fields render without averaging.
// Order 0 fields become CELL_DATA; orders 1 and 2 become POINT_DATA, the
// latter on quadratic triangle cells.
func writeVTK(name string, tri *mesh.Triangulation, fields []Field, order int, groups []VectorGroup) (err error) {
	fh, err := os.Create(name)
	if err != nil {
		return err
	}
	defer fh.Close()
	w := bufio.NewWriter(fh)
	defer func() {
		if flushErr := w.Flush(); err == nil {
			err = flushErr
		}
	}()

	xs, ys, perElem := nodeCoords(tri, order)
	nPts := len(xs)
	fmt.Fprintln(w, "# vtk DataFile Version 3.0")
	fmt.Fprintln(w, "Lagrangian DG field data")
	fmt.Fprintln(w, "ASCII")
	fmt.Fprintln(w, "DATASET UNSTRUCTURED_GRID")
	fmt.Fprintf(w, "POINTS %d double\n", nPts)
	for p := 0; p < nPts; p++ {
		fmt.Fprintf(w, "%.12g %.12g 0\n", xs[p], ys[p])
	}
	fmt.Fprintf(w, "CELLS %d %d\n", tri.K, tri.K*(perElem+1))
	for k := 0; k < tri.K; k++ {
		fmt.Fprintf(w, "%d", perElem)
		for p := 0; p < perElem; p++ {
			fmt.Fprintf(w, " %d", k*perElem+p)
		}
		fmt.Fprintln(w)
	}
	cellType := 5 // VTK_TRIANGLE
	if order == 2 {
		cellType = 22 // VTK_QUADRATIC_TRIANGLE
	}
	fmt.Fprintf(w, "CELL_TYPES %d\n", tri.K)
	for k := 0; k < tri.K; k++ {
		fmt.Fprintln(w, cellType)
	}

	if order == 0 {
		fmt.Fprintf(w, "CELL_DATA %d\n", tri.K)
	} else {
		fmt.Fprintf(w, "POINT_DATA %d\n", nPts)
	}
	grouped := make(map[string]bool)
	for _, g := range groups {
		grouped[g.Components[0]] = true
		grouped[g.Components[1]] = true
	}
	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	// Order 0 writes one tuple per cell, higher orders one per point.
	nVals, perVal := tri.K, 1
	if order != 0 {
		perVal = perElem
	}
	for _, f := range fields {
		if grouped[f.Name] {
			continue
		}
		fmt.Fprintf(w, "SCALARS %s double 1\n", f.Name)
		fmt.Fprintln(w, "LOOKUP_TABLE default")
		for k := 0; k < nVals; k++ {
			for p := 0; p < perVal; p++ {
				fmt.Fprintf(w, "%.12g\n", f.Data.At(k, p))
			}
		}
	}
	for _, g := range groups {
		fmt.Fprintf(w, "VECTORS %s double\n", g.Name)
		fu, fv := byName[g.Components[0]], byName[g.Components[1]]
		for k := 0; k < nVals; k++ {
			for p := 0; p < perVal; p++ {
				fmt.Fprintf(w, "%.12g %.12g 0\n", fu.Data.At(k, p), fv.Data.At(k, p))
			}
		}
	}
	return nil
}
