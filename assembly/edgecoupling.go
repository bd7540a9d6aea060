package assembly

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/SudhakarYogaraj/dgtri/element"
	"github.com/SudhakarYogaraj/dgtri/mesh"
	"github.com/SudhakarYogaraj/dgtri/utils"
)

/*
EdgeCoupling assembles the two global edge-coupling operators for a
discontinuous coefficient field, one per spatial direction m in {x, y}.
Both are (K*Np) x (K*Np) sparse matrices of K x K blocks sized Np x Np.

For every interior local edge n of element k the diagonal block (k, k)
accumulates

	0.5 * EdgeLen[k][n] * N_m[k][n] * sum_l coeff[k][l] * Diag[i][j][l][n]

and for every matched local edge pair (nm of k, np of kp) the block (k, kp)
accumulates

	0.5 * EdgeLen[k][nm] * N_m[k][nm] * sum_l coeff[kp][l] * Off[i][j][l][nm][np]

Blocks without a neighbor relation stay structurally zero. The computation
is a pure function of its inputs; the returned matrices are newly allocated
and owned by the caller.
*/
func EdgeCoupling(tri *mesh.Triangulation, et *element.EdgeTensors, coeff utils.Matrix) (R [2]*sparse.CSR, err error) {
	if err = validate(tri, et, coeff); err != nil {
		return
	}
	var (
		Np  = et.Np
		dim = tri.K * Np
		acc = [2]*sparse.DOK{sparse.NewDOK(dim, dim), sparse.NewDOK(dim, dim)}
	)
	for _, p := range neighborPairs(tri) {
		accumulateOffDiag(acc, tri, et, coeff, p)
	}
	for k := 0; k < tri.K; k++ {
		accumulateDiag(acc, tri, et, coeff, k)
	}
	R[0], R[1] = acc[0].ToCSR(), acc[1].ToCSR()
	return
}

// validate fail-fasts on any dimension disagreement before output storage
// is allocated.
func validate(tri *mesh.Triangulation, et *element.EdgeTensors, coeff utils.Matrix) error {
	var (
		K      = tri.K
		kc, nc = coeff.Dims()
	)
	if kc != K {
		return fmt.Errorf("%w: coefficient field has %d rows, mesh has %d elements", element.ErrShapeMismatch, kc, K)
	}
	if nc != et.Np {
		return fmt.Errorf("%w: coefficient field has %d columns, basis dimension is %d", element.ErrShapeMismatch, nc, et.Np)
	}
	if mr, mc := tri.MarkInterior.Dims(); mr != K || mc != 3 {
		return fmt.Errorf("%w: interior edge mask is %d x %d, want %d x 3", element.ErrShapeMismatch, mr, mc, K)
	}
	for n := 0; n < 3; n++ {
		for np := 0; np < 3; np++ {
			if mr, mc := tri.MarkNeighbor[n][np].Dims(); mr != K || mc != K {
				return fmt.Errorf("%w: neighbor mask (%d,%d) is %d x %d, want %d x %d", element.ErrShapeMismatch, n, np, mr, mc, K, K)
			}
		}
	}
	if lr, lc := tri.EdgeLen.Dims(); lr != K || lc != 3 {
		return fmt.Errorf("%w: edge length table is %d x %d, want %d x 3", element.ErrShapeMismatch, lr, lc, K)
	}
	return nil
}

// pair is one structural hit of a neighbor mask: local edge nm of element k
// coincides with local edge np of element kp.
type pair struct {
	k, kp, nm, np int
}

// neighborPairs flattens the nine adjacency masks into an explicit pair
// list, ordered by (nm, np) and within that by mask traversal order. Derived
// once per assembly; both the serial and the parallel paths consume it.
func neighborPairs(tri *mesh.Triangulation) (pairs []pair) {
	for nm := 0; nm < 3; nm++ {
		for np := 0; np < 3; np++ {
			nmC, npC := nm, np
			tri.MarkNeighbor[nm][np].DoNonZero(func(k, kp int, v float64) {
				if v != 0 {
					pairs = append(pairs, pair{k, kp, nmC, npC})
				}
			})
		}
	}
	return
}

// accumulateOffDiag adds the Np x Np block of one matched edge pair into
// block (k, kp) of both direction matrices.
func accumulateOffDiag(acc [2]*sparse.DOK, tri *mesh.Triangulation, et *element.EdgeTensors, coeff utils.Matrix, p pair) {
	var (
		Np = et.Np
		w  = 0.5 * tri.EdgeLen.At(p.k, p.nm)
		wm = [2]float64{w * tri.Nx.At(p.k, p.nm), w * tri.Ny.At(p.k, p.nm)}
	)
	for i := 0; i < Np; i++ {
		for j := 0; j < Np; j++ {
			var s float64
			for l := 0; l < Np; l++ {
				s += coeff.At(p.kp, l) * et.OffAt(i, j, l, p.nm, p.np)
			}
			addAt(acc, p.k*Np+i, p.kp*Np+j, s, wm)
		}
	}
}

// accumulateDiag adds the self-coupling contributions of element k over its
// interior edges into block (k, k) of both direction matrices.
func accumulateDiag(acc [2]*sparse.DOK, tri *mesh.Triangulation, et *element.EdgeTensors, coeff utils.Matrix, k int) {
	Np := et.Np
	for n := 0; n < 3; n++ {
		if tri.MarkInterior.At(k, n) == 0 {
			continue
		}
		var (
			w  = 0.5 * tri.EdgeLen.At(k, n)
			wm = [2]float64{w * tri.Nx.At(k, n), w * tri.Ny.At(k, n)}
		)
		for i := 0; i < Np; i++ {
			for j := 0; j < Np; j++ {
				var s float64
				for l := 0; l < Np; l++ {
					s += coeff.At(k, l) * et.DiagAt(i, j, l, n)
				}
				addAt(acc, k*Np+i, k*Np+j, s, wm)
			}
		}
	}
}

// addAt accumulates s weighted per direction, skipping exact zeros so the
// structural nonzero pattern never exceeds the adjacency graph. The skip
// also means a zero-weighted contribution (an axis-aligned edge has a zero
// normal component in one direction, and a zero coefficient block zeroes
// both) is structurally absent, not stored as an explicit zero: assertions
// on the stored pattern must account for the weight values.
func addAt(acc [2]*sparse.DOK, r, c int, s float64, wm [2]float64) {
	for m := 0; m < 2; m++ {
		if v := wm[m] * s; v != 0 {
			acc[m].Set(r, c, acc[m].At(r, c)+v)
		}
	}
}
