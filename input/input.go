package input

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type Parameters struct {
	Title           string   `yaml:"Title"`
	MeshType        string   `yaml:"MeshType"` // "square" or "delaunay"
	MeshSize        int      `yaml:"MeshSize"` // cells per side (square) or points per side (delaunay)
	PolynomialOrder int      `yaml:"PolynomialOrder"`
	DIRKOrder       int      `yaml:"DIRKOrder"`
	FinalTime       float64  `yaml:"FinalTime"`
	StepSize        float64  `yaml:"StepSize"`
	OutputInterval  int      `yaml:"OutputInterval"` // steps between exports, 0 disables export
	OutputFormats   []string `yaml:"OutputFormats"`
	Parallelism     int      `yaml:"Parallelism"` // assembly workers, <=1 runs serial
}

func (p *Parameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, p)
}

// Defaults fills unset fields with a runnable demo configuration.
func (p *Parameters) Defaults() {
	if p.MeshType == "" {
		p.MeshType = "square"
	}
	if p.MeshSize == 0 {
		p.MeshSize = 8
	}
	if p.DIRKOrder == 0 {
		p.DIRKOrder = 2
	}
	if p.StepSize == 0 {
		p.StepSize = 0.1
	}
	if p.FinalTime == 0 {
		p.FinalTime = 1
	}
}

func (p *Parameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", p.Title)
	fmt.Printf("[%s]\t\t\t= Mesh Type\n", p.MeshType)
	fmt.Printf("[%d]\t\t\t\t= Mesh Size\n", p.MeshSize)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", p.PolynomialOrder)
	fmt.Printf("[%d]\t\t\t\t= DIRK Order\n", p.DIRKOrder)
	fmt.Printf("%8.5f\t\t= FinalTime\n", p.FinalTime)
	fmt.Printf("%8.5f\t\t= StepSize\n", p.StepSize)
	fmt.Printf("[%d]\t\t\t\t= Output Interval\n", p.OutputInterval)
	fmt.Printf("%v\t\t= Output Formats\n", p.OutputFormats)
	fmt.Printf("[%d]\t\t\t\t= Parallelism\n", p.Parallelism)
}
