package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/james-bowman/sparse"

	"github.com/SudhakarYogaraj/dgtri/utils"
)

// ErrNonConforming reports a mesh edge shared by more than two elements, or
// an element connected to itself. Assembly over such a topology has no
// well-defined neighbor pairing, so construction rejects it outright.
var ErrNonConforming = errors.New("non-conforming triangulation")

/*
Triangulation is an immutable geometric and topological snapshot of a
conforming mesh of K triangles. Local edge n of an element joins local
vertices n and (n+1)%3; elements are stored counter-clockwise so the
outward normal of edge n is the edge vector rotated by -90 degrees.

MarkNeighbor[n][np] is a K x K structural matrix with a 1 at (k, kp) iff
local edge n of element k coincides with local edge np of element kp. Each
of the nine matrices has a zero diagonal, and MarkNeighbor[np][n] is its
structural transpose.
*/
type Triangulation struct {
	K            int
	VX, VY       utils.Vector // Vertex coordinates
	EToV         utils.Matrix // K x 3 element to vertex map
	EdgeLen      utils.Matrix // K x 3 physical edge lengths
	Nx, Ny       utils.Matrix // K x 3 outward unit normal components
	MarkNeighbor [3][3]*sparse.CSR
	MarkInterior utils.Matrix // K x 3, 1 where the edge has a neighbor
}

// edgeKey packs a sorted vertex pair into a single uint64 to key the edge
// map during construction, as in the 2D triangulation edge numbering.
type edgeKey uint64

func newEdgeKey(v1, v2 int) edgeKey {
	if v1 < 0 || v2 < 0 || v1 > math.MaxUint32 || v2 > math.MaxUint32 {
		panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs", v1, v2))
	}
	if v1 > v2 {
		v1, v2 = v2, v1
	}
	return edgeKey(v1 + v2<<32)
}

type edgeUse struct {
	k, n int
}

func NewTriangulation(VX, VY utils.Vector, EToV utils.Matrix) (tri *Triangulation, err error) {
	var (
		K, nc = EToV.Dims()
		Nv    = VX.Len()
	)
	if nc != 3 {
		return nil, fmt.Errorf("EToV must be K x 3, got %d x %d", K, nc)
	}
	if VY.Len() != Nv {
		return nil, fmt.Errorf("vertex coordinate lengths disagree: %d vs %d", Nv, VY.Len())
	}
	tri = &Triangulation{
		K:            K,
		VX:           VX,
		VY:           VY,
		EToV:         EToV.Copy(),
		EdgeLen:      utils.NewMatrix(K, 3),
		Nx:           utils.NewMatrix(K, 3),
		Ny:           utils.NewMatrix(K, 3),
		MarkInterior: utils.NewMatrix(K, 3),
	}
	edges := make(map[edgeKey][]edgeUse)
	for k := 0; k < K; k++ {
		verts, errV := tri.orientCCW(k, Nv)
		if errV != nil {
			return nil, errV
		}
		for n := 0; n < 3; n++ {
			v1, v2 := verts[n], verts[(n+1)%3]
			dx := VX.AtVec(v2) - VX.AtVec(v1)
			dy := VY.AtVec(v2) - VY.AtVec(v1)
			length := math.Sqrt(dx*dx + dy*dy)
			tri.EdgeLen.Set(k, n, length)
			tri.Nx.Set(k, n, dy/length)
			tri.Ny.Set(k, n, -dx/length)
			key := newEdgeKey(v1, v2)
			edges[key] = append(edges[key], edgeUse{k, n})
			if len(edges[key]) > 2 {
				return nil, fmt.Errorf("%w: edge %d-%d is shared by more than two elements", ErrNonConforming, v1, v2)
			}
		}
	}
	// Nine structural adjacency matrices, one per ordered local edge pair
	var dok [3][3]*sparse.DOK
	for n := 0; n < 3; n++ {
		for np := 0; np < 3; np++ {
			dok[n][np] = sparse.NewDOK(K, K)
		}
	}
	for _, uses := range edges {
		if len(uses) != 2 {
			continue // boundary edge
		}
		a, b := uses[0], uses[1]
		if a.k == b.k {
			return nil, fmt.Errorf("%w: element %d is connected to itself", ErrNonConforming, a.k)
		}
		dok[a.n][b.n].Set(a.k, b.k, 1)
		dok[b.n][a.n].Set(b.k, a.k, 1)
		tri.MarkInterior.Set(a.k, a.n, 1)
		tri.MarkInterior.Set(b.k, b.n, 1)
	}
	for n := 0; n < 3; n++ {
		for np := 0; np < 3; np++ {
			tri.MarkNeighbor[n][np] = dok[n][np].ToCSR()
		}
	}
	tri.EToV.SetReadOnly("EToV")
	tri.EdgeLen.SetReadOnly("EdgeLen")
	tri.Nx.SetReadOnly("Nx")
	tri.Ny.SetReadOnly("Ny")
	tri.MarkInterior.SetReadOnly("MarkInterior")
	return tri, nil
}

// orientCCW rewrites element k counter-clockwise and returns its vertices.
func (tri *Triangulation) orientCCW(k, Nv int) (verts [3]int, err error) {
	for n := 0; n < 3; n++ {
		verts[n] = int(tri.EToV.At(k, n))
		if verts[n] < 0 || verts[n] >= Nv {
			return verts, fmt.Errorf("element %d references vertex %d outside [0,%d)", k, verts[n], Nv)
		}
	}
	var (
		x0, y0 = tri.VX.AtVec(verts[0]), tri.VY.AtVec(verts[0])
		x1, y1 = tri.VX.AtVec(verts[1]), tri.VY.AtVec(verts[1])
		x2, y2 = tri.VX.AtVec(verts[2]), tri.VY.AtVec(verts[2])
	)
	area2 := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	if math.Abs(area2) < utils.NODETOL {
		return verts, fmt.Errorf("element %d is degenerate (zero area)", k)
	}
	if area2 < 0 {
		verts[1], verts[2] = verts[2], verts[1]
		tri.EToV.Set(k, 1, float64(verts[1]))
		tri.EToV.Set(k, 2, float64(verts[2]))
	}
	return verts, nil
}

// InteriorEdgeCount reports the number of distinct interior edges.
func (tri *Triangulation) InteriorEdgeCount() (count int) {
	for k := 0; k < tri.K; k++ {
		for n := 0; n < 3; n++ {
			if tri.MarkInterior.At(k, n) != 0 {
				count++
			}
		}
	}
	return count / 2
}
