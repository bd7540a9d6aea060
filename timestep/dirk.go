package timestep

import (
	"errors"
	"fmt"
	"math"

	"github.com/SudhakarYogaraj/dgtri/utils"
)

// ErrUnsupportedOrder reports a requested DIRK order outside {1,2,3,4}.
var ErrUnsupportedOrder = errors.New("unsupported DIRK order")

// stage matrices of the stiffly accurate DIRK family, orders 1 to 4:
// implicit Euler, the two-stage SDIRK with gamma = 1 - sqrt(2)/2, the
// three-stage Alexander SDIRK, and the five-stage Hairer-Wanner SDIRK with
// gamma = 1/4.
func stageMatrix(order int) (A utils.Matrix, ok bool) {
	switch order {
	case 1:
		return utils.NewMatrix(1, 1, []float64{1}), true
	case 2:
		g := 1. - math.Sqrt2/2.
		return utils.NewMatrix(2, 2, []float64{
			g, 0,
			1 - g, g,
		}), true
	case 3:
		var (
			g  = 0.435866521508459
			b1 = -(6*g*g - 16*g + 1) / 4.
			b2 = (6*g*g - 20*g + 5) / 4.
		)
		return utils.NewMatrix(3, 3, []float64{
			g, 0, 0,
			(1 - g) / 2., g, 0,
			b1, b2, g,
		}), true
	case 4:
		return utils.NewMatrix(5, 5, []float64{
			1. / 4., 0, 0, 0, 0,
			1. / 2., 1. / 4., 0, 0, 0,
			17. / 50., -1. / 25., 1. / 4., 0, 0,
			371. / 1360., -137. / 2720., 15. / 544., 1. / 4., 0,
			25. / 24., -49. / 48., 125. / 16., -85. / 12., 1. / 4.,
		}), true
	}
	return A, false
}

/*
DIRK returns the coefficients of a stiffly accurate diagonally implicit
Runge-Kutta method of the given order (1 to 4) for a step of size tau from
time t0: the stage times t, the lower triangular stage matrix A, the weight
vector b (the last row of A) and the row-sum vector c with t[i] = t0 +
c[i]*tau.
*/
func DIRK(order int, tau, t0 float64) (t []float64, A utils.Matrix, b, c []float64, err error) {
	A, ok := stageMatrix(order)
	if !ok {
		err = fmt.Errorf("%w: %d, supported orders are 1 through 4", ErrUnsupportedOrder, order)
		return
	}
	s, _ := A.Dims()
	t = make([]float64, s)
	b = make([]float64, s)
	c = make([]float64, s)
	for i := 0; i < s; i++ {
		for j := 0; j < s; j++ {
			c[i] += A.At(i, j)
		}
		b[i] = A.At(s-1, i)
		t[i] = t0 + c[i]*tau
	}
	A.SetReadOnly("DIRK stage matrix")
	return
}
