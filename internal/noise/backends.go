package noise

import (
	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Aquilax adapts github.com/aquilax/go-perlin to Field. The library is built
// with a single octave, so alpha and beta have no effect on the output.
type Aquilax struct {
	p *perlin.Perlin
}

// NewAquilax returns a seeded go-perlin field.
func NewAquilax(seed int64) *Aquilax {
	return &Aquilax{p: perlin.NewPerlin(2, 2, 1, seed)}
}

// Sample implements Field.
func (a *Aquilax) Sample(x, z float64) float64 {
	return a.p.Noise2D(x, z)
}

// OpenSimplex adapts github.com/ojrac/opensimplex-go to Field.
type OpenSimplex struct {
	n opensimplex.Noise
}

// NewOpenSimplex returns a seeded OpenSimplex field with output in [-1, 1].
func NewOpenSimplex(seed int64) *OpenSimplex {
	return &OpenSimplex{n: opensimplex.New(seed)}
}

// Sample implements Field.
func (o *OpenSimplex) Sample(x, z float64) float64 {
	return o.n.Eval2(x, z)
}
