// Package sweep defines the input sizes the benchmarks iterate over.
package sweep

import (
	"strconv"

	"github.com/rotisserie/eris"
)

// Sweep covers From through To inclusive in increments of Step.
type Sweep struct {
	From int
	To   int
	Step int
}

// Default is 0 to 10,000 in steps of 1,000.
var Default = Sweep{From: 0, To: 10_000, Step: 1_000}

func (s Sweep) Validate() error {
	if s.Step <= 0 {
		return eris.Errorf("sweep step must be positive, got %d", s.Step)
	}
	if s.From < 0 || s.To < s.From {
		return eris.Errorf("invalid sweep range [%d, %d]", s.From, s.To)
	}
	return nil
}

// Sizes lists every size in the sweep. An invalid sweep yields nothing.
func (s Sweep) Sizes() []int {
	if s.Validate() != nil {
		return nil
	}
	sizes := make([]int, 0, (s.To-s.From)/s.Step+1)
	for n := s.From; n <= s.To; n += s.Step {
		sizes = append(sizes, n)
	}
	return sizes
}

// Name is the sub-benchmark name for size n.
func Name(n int) string {
	return "n=" + strconv.Itoa(n)
}
