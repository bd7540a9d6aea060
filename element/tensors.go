package element

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch reports a dimension disagreement among the numeric inputs
// of an operator assembly. It is a caller error: the assembly must abort
// before touching any output storage.
var ErrShapeMismatch = errors.New("shape mismatch")

// Dof returns the local basis dimension for polynomial order p on a
// triangle: (p+1)(p+2)/2.
func Dof(p int) int {
	return (p + 1) * (p + 2) / 2
}

/*
EdgeTensors holds the mesh-independent reference-element integrals that feed
edge-operator assembly. Both tensors are stored flat with the fastest index
last to keep the contraction loops cache friendly.

Diag[i][j][l][n] is the integral over local edge n of the reference triangle
of the product of basis functions i, j and l, with l the coefficient
carrier. Off[i][j][l][nm][np] is the analogous integral where the j and l
factors live on the neighboring element's edge np, composed with the edge
matching map.
*/
type EdgeTensors struct {
	Np   int
	diag []float64 // Np*Np*Np*3
	off  []float64 // Np*Np*Np*3*3
}

func NewEdgeTensors(np int, diag, off []float64) (et *EdgeTensors, err error) {
	if np < 1 {
		return nil, fmt.Errorf("%w: basis dimension must be positive, got %d", ErrShapeMismatch, np)
	}
	if want := np * np * np * 3; len(diag) != want {
		return nil, fmt.Errorf("%w: diagonal tensor has %d entries, want Np^3*3 = %d", ErrShapeMismatch, len(diag), want)
	}
	if want := np * np * np * 9; len(off) != want {
		return nil, fmt.Errorf("%w: off-diagonal tensor has %d entries, want Np^3*9 = %d", ErrShapeMismatch, len(off), want)
	}
	return &EdgeTensors{Np: np, diag: diag, off: off}, nil
}

// ConstantBasis returns the Np=1 tensors of the piecewise-constant basis.
// Every entry is one: the reference edge integral of three unit basis
// functions under the unit-length normalization used here.
func ConstantBasis() *EdgeTensors {
	var (
		diag = make([]float64, 3)
		off  = make([]float64, 9)
	)
	for i := range diag {
		diag[i] = 1
	}
	for i := range off {
		off[i] = 1
	}
	et, err := NewEdgeTensors(1, diag, off)
	if err != nil {
		panic(err)
	}
	return et
}

func (et *EdgeTensors) DiagAt(i, j, l, n int) float64 {
	return et.diag[((i*et.Np+j)*et.Np+l)*3+n]
}

func (et *EdgeTensors) OffAt(i, j, l, nm, np int) float64 {
	return et.off[(((i*et.Np+j)*et.Np+l)*3+nm)*3+np]
}
