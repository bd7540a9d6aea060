package mesh

import (
	"fmt"

	"github.com/pradeep-pyro/triangle"

	"github.com/SudhakarYogaraj/dgtri/utils"
)

// Delaunay triangulates a point cloud and wraps the result in a
// Triangulation descriptor.
func Delaunay(pts [][2]float64) (tri *Triangulation, err error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("need at least 3 points to triangulate, got %d", len(pts))
	}
	faces := triangle.Delaunay(pts)
	var (
		Nv   = len(pts)
		K    = len(faces)
		vx   = make([]float64, Nv)
		vy   = make([]float64, Nv)
		etov = make([]float64, 3*K)
	)
	for i, p := range pts {
		vx[i], vy[i] = p[0], p[1]
	}
	for k, f := range faces {
		etov[3*k+0] = float64(f[0])
		etov[3*k+1] = float64(f[1])
		etov[3*k+2] = float64(f[2])
	}
	return NewTriangulation(
		utils.NewVector(Nv, vx), utils.NewVector(Nv, vy),
		utils.NewMatrix(K, 3, etov))
}

// UnitSquare builds a structured triangulation of [0,1]^2 with n x n cells,
// each split into two triangles. Used by the demo command and tests.
func UnitSquare(n int) (tri *Triangulation) {
	if n < 1 {
		panic(fmt.Errorf("UnitSquare needs n >= 1, got %d", n))
	}
	var (
		nv   = n + 1
		Nv   = nv * nv
		K    = 2 * n * n
		vx   = make([]float64, Nv)
		vy   = make([]float64, Nv)
		etov = make([]float64, 3*K)
		h    = 1. / float64(n)
	)
	for j := 0; j < nv; j++ {
		for i := 0; i < nv; i++ {
			vx[i+nv*j] = float64(i) * h
			vy[i+nv*j] = float64(j) * h
		}
	}
	var k int
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			var (
				v00 = i + nv*j
				v10 = i + 1 + nv*j
				v01 = i + nv*(j+1)
				v11 = i + 1 + nv*(j+1)
			)
			etov[3*k+0], etov[3*k+1], etov[3*k+2] = float64(v00), float64(v10), float64(v11)
			k++
			etov[3*k+0], etov[3*k+1], etov[3*k+2] = float64(v00), float64(v11), float64(v01)
			k++
		}
	}
	tri, err := NewTriangulation(
		utils.NewVector(Nv, vx), utils.NewVector(Nv, vy),
		utils.NewMatrix(K, 3, etov))
	if err != nil {
		panic(err)
	}
	return
}
