/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/james-bowman/sparse"
	"github.com/spf13/cobra"

	"github.com/SudhakarYogaraj/dgtri/assembly"
	"github.com/SudhakarYogaraj/dgtri/element"
	"github.com/SudhakarYogaraj/dgtri/input"
	"github.com/SudhakarYogaraj/dgtri/mesh"
	"github.com/SudhakarYogaraj/dgtri/output"
	"github.com/SudhakarYogaraj/dgtri/timestep"
	"github.com/SudhakarYogaraj/dgtri/utils"
)

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble the edge-coupling operators on a demo mesh and export field snapshots",
	Long: `Builds a triangulation, assembles the two direction-split edge-coupling
sparse operators for a time-varying piecewise-constant coefficient field at
each DIRK stage time, and exports the field at the configured cadence.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ip  = &input.Parameters{}
		)
		if fn, _ := cmd.Flags().GetString("inputFile"); len(fn) != 0 {
			var data []byte
			if data, err = os.ReadFile(fn); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			if err = ip.Parse(data); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
		}
		ip.Defaults()
		ip.Print()
		basename, _ := cmd.Flags().GetString("output")
		if err = runAssemble(ip, basename); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().StringP("inputFile", "I", "", "YAML file for run parameters like:\n\t- MeshSize\n\t- DIRKOrder\n\t- OutputFormats")
	assembleCmd.Flags().StringP("output", "o", "field", "basename for exported field files")
}

func runAssemble(ip *input.Parameters, basename string) (err error) {
	var tri *mesh.Triangulation
	switch ip.MeshType {
	case "square":
		tri = mesh.UnitSquare(ip.MeshSize)
	case "delaunay":
		tri, err = mesh.Delaunay(gridPoints(ip.MeshSize))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mesh type %q, want square or delaunay", ip.MeshType)
	}
	if ip.PolynomialOrder != 0 {
		return fmt.Errorf("the demo command carries only the constant basis (order 0); higher orders need caller-supplied tensors via element.NewEdgeTensors")
	}
	et := element.ConstantBasis()

	formats := make([]output.Format, 0, len(ip.OutputFormats))
	for _, tag := range ip.OutputFormats {
		f, errF := output.ParseFormat(tag)
		if errF != nil {
			return errF
		}
		formats = append(formats, f)
	}

	var (
		nSteps = int(math.Ceil(ip.FinalTime / ip.StepSize))
		t      float64
		level  int
	)
	fmt.Printf("K = %d elements, %d interior edges, %d steps\n", tri.K, tri.InteriorEdgeCount(), nSteps)
	for step := 0; step < nSteps; step++ {
		stageT, _, _, _, errD := timestep.DIRK(ip.DIRKOrder, ip.StepSize, t)
		if errD != nil {
			return errD
		}
		start := time.Now()
		var R [2]*sparse.CSR
		for _, ts := range stageT {
			coeff := coefficientField(tri, ts)
			if ip.Parallelism > 1 {
				R, err = assembly.EdgeCouplingParallel(tri, et, coeff, ip.Parallelism)
			} else {
				R, err = assembly.EdgeCoupling(tri, et, coeff)
			}
			if err != nil {
				return err
			}
		}
		elapsed := time.Since(start)
		t += ip.StepSize
		if ip.OutputInterval > 0 && step%ip.OutputInterval == 0 {
			fields := []output.Field{{Name: "coefficient", Data: coefficientField(tri, t)}}
			if err = output.WriteLagrangian(tri, fields, basename, level, formats); err != nil {
				return err
			}
			level++
		}
		fmt.Printf("step %4d  t = %8.5f  %d stage assemblies in %v, nnz = %d + %d\n",
			step, t, len(stageT), elapsed, R[0].NNZ(), R[1].NNZ())
	}
	return nil
}

// coefficientField evaluates the demo coefficient c(x,t) at element
// centroids: a decaying sinusoidal bump.
func coefficientField(tri *mesh.Triangulation, t float64) (coeff utils.Matrix) {
	coeff = utils.NewMatrix(tri.K, 1)
	for k := 0; k < tri.K; k++ {
		var xc, yc float64
		for n := 0; n < 3; n++ {
			v := int(tri.EToV.At(k, n))
			xc += tri.VX.AtVec(v) / 3.
			yc += tri.VY.AtVec(v) / 3.
		}
		coeff.Set(k, 0, 1.+0.5*math.Exp(-t)*math.Sin(2.*math.Pi*xc)*math.Sin(2.*math.Pi*yc))
	}
	return
}

// gridPoints lays out size x size points on the unit square with a small
// deterministic jitter on the interior so Delaunay gives an irregular mesh.
func gridPoints(size int) (pts [][2]float64) {
	if size < 2 {
		size = 2
	}
	h := 1. / float64(size-1)
	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			x, y := float64(i)*h, float64(j)*h
			if i > 0 && i < size-1 && j > 0 && j < size-1 {
				x += 0.15 * h * math.Sin(float64(7*i+3*j))
				y += 0.15 * h * math.Cos(float64(3*i+11*j))
			}
			pts = append(pts, [2]float64{x, y})
		}
	}
	return
}
