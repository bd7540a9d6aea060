package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixBasics(t *testing.T) {
	M := NewMatrix(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	nr, nc := M.Dims()
	assert.Equal(t, 2, nr)
	assert.Equal(t, 3, nc)
	assert.Equal(t, 5., M.At(1, 1))
	assert.Equal(t, []float64{1, 2, 3}, M.Row(0).Data())
	assert.Equal(t, []float64{2, 5}, M.Col(1).Data())

	C := M.Copy().Scale(2).Add(M)
	assert.Equal(t, 15., C.At(1, 1))
	assert.Equal(t, 5., M.At(1, 1)) // source untouched

	assert.Panics(t, func() { NewMatrix(2, 2, []float64{1}) })
}

func TestReadOnlyGuard(t *testing.T) {
	M := NewMatrix(2, 2)
	M.SetReadOnly("M")
	assert.Panics(t, func() { M.Set(0, 0, 1) })
	M.SetWritable()
	assert.NotPanics(t, func() { M.Set(0, 0, 1) })
}

func TestMatrixMul(t *testing.T) {
	A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
	B := NewMatrix(2, 1, []float64{1, 1})
	C := A.Mul(B)
	assert.Equal(t, []float64{3, 7}, C.Data())
}
