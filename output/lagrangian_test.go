package output

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SudhakarYogaraj/dgtri/mesh"
	"github.com/SudhakarYogaraj/dgtri/utils"
)

func constantField(K int, name string, val float64) Field {
	data := make([]float64, K)
	for i := range data {
		data[i] = val
	}
	return Field{Name: name, Data: utils.NewMatrix(K, 1, data)}
}

func linearField(tri *mesh.Triangulation, name string) Field {
	data := utils.NewMatrix(tri.K, 3)
	for k := 0; k < tri.K; k++ {
		for n := 0; n < 3; n++ {
			v := int(tri.EToV.At(k, n))
			data.Set(k, n, tri.VX.AtVec(v)+2*tri.VY.AtVec(v))
		}
	}
	return Field{Name: name, Data: data}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("vtk")
	require.NoError(t, err)
	assert.Equal(t, VTK, f)
	f, err = ParseFormat("tec")
	require.NoError(t, err)
	assert.Equal(t, Tecplot, f)
	_, err = ParseFormat("format-X")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestWriteBothFormats(t *testing.T) {
	var (
		tri  = mesh.UnitSquare(2)
		dir  = t.TempDir()
		base = filepath.Join(dir, "run")
	)
	fields := []Field{linearField(tri, "u")}
	err := WriteLagrangian(tri, fields, base, 3, []Format{VTK, Tecplot})
	require.NoError(t, err)

	vtk, err := os.ReadFile(base + ".3.vtk")
	require.NoError(t, err)
	s := string(vtk)
	assert.True(t, strings.HasPrefix(s, "# vtk DataFile Version 3.0"))
	assert.Contains(t, s, "DATASET UNSTRUCTURED_GRID")
	assert.Contains(t, s, "POINT_DATA 24") // 8 elements x 3 nodes
	assert.Contains(t, s, "SCALARS u double 1")

	tec, err := os.ReadFile(base + ".3.dat")
	require.NoError(t, err)
	s = string(tec)
	assert.Contains(t, s, `VARIABLES = "X", "Y", "u"`)
	assert.Contains(t, s, "N=24, E=8, F=FEPOINT, ET=TRIANGLE")
}

func TestWritePiecewiseConstant(t *testing.T) {
	var (
		tri  = mesh.UnitSquare(2)
		base = filepath.Join(t.TempDir(), "pc")
	)
	err := WriteLagrangian(tri, []Field{constantField(tri.K, "rho", 1.5)}, base, 0, []Format{VTK})
	require.NoError(t, err)
	vtk, err := os.ReadFile(base + ".0.vtk")
	require.NoError(t, err)
	assert.Contains(t, string(vtk), "CELL_DATA 8")
}

func TestWriteQuadratic(t *testing.T) {
	var (
		tri  = mesh.UnitSquare(1)
		base = filepath.Join(t.TempDir(), "q")
		data = utils.NewMatrix(tri.K, 6)
	)
	err := WriteLagrangian(tri, []Field{{Name: "u", Data: data}}, base, 1, []Format{VTK, Tecplot})
	require.NoError(t, err)
	vtk, err := os.ReadFile(base + ".1.vtk")
	require.NoError(t, err)
	assert.Contains(t, string(vtk), "CELL_TYPES 2")
	assert.Contains(t, string(vtk), "\n22\n") // quadratic triangle cells
	tec, err := os.ReadFile(base + ".1.dat")
	require.NoError(t, err)
	assert.Contains(t, string(tec), "E=8") // 2 elements x 4 sub-triangles
}

func TestVectorGroup(t *testing.T) {
	var (
		tri  = mesh.UnitSquare(2)
		base = filepath.Join(t.TempDir(), "vec")
	)
	fields := []Field{linearField(tri, "vx"), linearField(tri, "vy"), linearField(tri, "p")}
	err := WriteLagrangian(tri, fields, base, 0, []Format{VTK},
		VectorGroup{Name: "velocity", Components: [2]string{"vx", "vy"}})
	require.NoError(t, err)
	vtk, err := os.ReadFile(base + ".0.vtk")
	require.NoError(t, err)
	s := string(vtk)
	assert.Contains(t, s, "VECTORS velocity double")
	assert.Contains(t, s, "SCALARS p double 1")
	assert.NotContains(t, s, "SCALARS vx")

	err = WriteLagrangian(tri, fields, base, 1, []Format{VTK},
		VectorGroup{Name: "velocity", Components: [2]string{"vx", "vz"}})
	assert.Error(t, err)
}

func TestInconsistentFields(t *testing.T) {
	var (
		tri  = mesh.UnitSquare(2)
		base = filepath.Join(t.TempDir(), "bad")
	)
	// Element count mismatch
	err := WriteLagrangian(tri, []Field{constantField(tri.K+1, "u", 0)}, base, 0, []Format{VTK})
	assert.True(t, errors.Is(err, ErrInconsistentFieldSize))
	// Order mismatch between fields
	err = WriteLagrangian(tri, []Field{constantField(tri.K, "u", 0), linearField(tri, "v")}, base, 0, []Format{VTK})
	assert.True(t, errors.Is(err, ErrInconsistentFieldSize))
	// Unsupported column count
	err = WriteLagrangian(tri, []Field{{Name: "u", Data: utils.NewMatrix(tri.K, 4)}}, base, 0, []Format{VTK})
	assert.True(t, errors.Is(err, ErrInconsistentFieldSize))
	// No fields
	err = WriteLagrangian(tri, nil, base, 0, []Format{VTK})
	assert.True(t, errors.Is(err, ErrInconsistentFieldSize))
	// Nothing may be written on validation failure
	entries, errDir := os.ReadDir(filepath.Dir(base))
	require.NoError(t, errDir)
	assert.Empty(t, entries)
}

func TestUnknownFormatSkipped(t *testing.T) {
	var (
		tri  = mesh.UnitSquare(2)
		base = filepath.Join(t.TempDir(), "mix")
	)
	fields := []Field{constantField(tri.K, "u", 2)}
	err := WriteLagrangian(tri, fields, base, 5, []Format{VTK, Format(99)})
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	// The recognized format was still written
	_, errStat := os.Stat(base + ".5.vtk")
	assert.NoError(t, errStat)
}
