package assembly

import (
	"fmt"
	"sync"

	"github.com/james-bowman/sparse"

	"github.com/SudhakarYogaraj/dgtri/element"
	"github.com/SudhakarYogaraj/dgtri/mesh"
	"github.com/SudhakarYogaraj/dgtri/utils"
)

/*
EdgeCouplingParallel assembles the same operators as EdgeCoupling using nP
workers. Each worker accumulates its share of the neighbor-pair list and a
contiguous element range of the diagonal pass into private builders; the
partial results are merged serially afterward, so no two goroutines ever
touch the same sparse structure.

Values equal the serial result up to floating point addition order; the
structural nonzero pattern is identical.
*/
func EdgeCouplingParallel(tri *mesh.Triangulation, et *element.EdgeTensors, coeff utils.Matrix, nP int) (R [2]*sparse.CSR, err error) {
	if nP < 1 {
		return R, fmt.Errorf("worker count must be positive, got %d", nP)
	}
	if err = validate(tri, et, coeff); err != nil {
		return
	}
	var (
		dim   = tri.K * et.Np
		pairs = neighborPairs(tri)
		parts = make([][2]*sparse.DOK, nP)
		wg    sync.WaitGroup
	)
	for n := 0; n < nP; n++ {
		parts[n] = [2]*sparse.DOK{sparse.NewDOK(dim, dim), sparse.NewDOK(dim, dim)}
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			pLo, pHi := split1D(len(pairs), nP, n)
			for _, p := range pairs[pLo:pHi] {
				accumulateOffDiag(parts[n], tri, et, coeff, p)
			}
			kLo, kHi := split1D(tri.K, nP, n)
			for k := kLo; k < kHi; k++ {
				accumulateDiag(parts[n], tri, et, coeff, k)
			}
		}(n)
	}
	wg.Wait()
	acc := [2]*sparse.DOK{sparse.NewDOK(dim, dim), sparse.NewDOK(dim, dim)}
	for n := 0; n < nP; n++ {
		for m := 0; m < 2; m++ {
			mC := m
			parts[n][m].DoNonZero(func(i, j int, v float64) {
				acc[mC].Set(i, j, acc[mC].At(i, j)+v)
			})
		}
	}
	R[0], R[1] = acc[0].ToCSR(), acc[1].ToCSR()
	return
}

// split1D partitions [0,total) into nP near-even contiguous ranges and
// returns the half-open bounds of range n.
func split1D(total, nP, n int) (lo, hi int) {
	base := total / nP
	rem := total % nP
	lo = n*base + min(n, rem)
	hi = lo + base
	if n < rem {
		hi++
	}
	return
}
