package output

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/SudhakarYogaraj/dgtri/mesh"
)

// quadSub is the split of a quadratic triangle (vertices 0,1,2 and edge
// midpoints 3,4,5) into four linear sub-triangles; Tecplot has no quadratic
// triangle element.
var quadSub = [4][3]int{{0, 3, 5}, {3, 1, 4}, {5, 4, 2}, {3, 4, 5}}

// writeTecplot writes one ASCII Tecplot FEPOINT zone over triangle elements.
// Order 0 values are replicated to the element vertices.
func writeTecplot(name string, tri *mesh.Triangulation, fields []Field, order, level int) (err error) {
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
	var (
		nPts   = len(xs)
		nCells = tri.K
	)
	if order == 2 {
		nCells = 4 * tri.K
	}
	vars := make([]string, 0, len(fields)+2)
	vars = append(vars, `"X"`, `"Y"`)
	for _, f := range fields {
		vars = append(vars, fmt.Sprintf("%q", f.Name))
	}
	fmt.Fprintln(w, `TITLE = "Lagrangian DG field data"`)
	fmt.Fprintf(w, "VARIABLES = %s\n", strings.Join(vars, ", "))
	fmt.Fprintf(w, "ZONE T=\"step %d\", N=%d, E=%d, F=FEPOINT, ET=TRIANGLE\n", level, nPts, nCells)
	for k := 0; k < tri.K; k++ {
		for p := 0; p < perElem; p++ {
			fmt.Fprintf(w, "%.12g %.12g", xs[k*perElem+p], ys[k*perElem+p])
			for _, f := range fields {
				col := p
				if order == 0 {
					col = 0
				}
				fmt.Fprintf(w, " %.12g", f.Data.At(k, col))
			}
			fmt.Fprintln(w)
		}
	}
	// Connectivity is 1-based
	for k := 0; k < tri.K; k++ {
		base := k * perElem
		if order == 2 {
			for _, sub := range quadSub {
				fmt.Fprintf(w, "%d %d %d\n", base+sub[0]+1, base+sub[1]+1, base+sub[2]+1)
			}
		} else {
			fmt.Fprintf(w, "%d %d %d\n", base+1, base+2, base+3)
		}
	}
	return nil
}
