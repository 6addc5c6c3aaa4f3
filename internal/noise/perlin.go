package noise

import (
	"math"
	"math/rand"
)

// reference is Ken Perlin's reference permutation of 0..255.
var reference = [256]uint8{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// gradients are the eight 2D lattice gradients. Diagonals have length sqrt(2)
// and axes length 1, which keeps a single sample inside [-1, 1].
var gradients = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Perlin is classic lattice gradient noise over a fixed permutation table.
type Perlin struct {
	perm [512]uint8 // doubled to avoid wrapping
}

// NewPerlin returns gradient noise over the reference permutation. Every
// instance produces the same values in every process.
func NewPerlin() *Perlin {
	p := &Perlin{}
	p.fill(reference)
	return p
}

// NewShuffledPerlin returns the same gradient noise over a permutation
// shuffled from seed with Fisher-Yates.
func NewShuffledPerlin(seed int64) *Perlin {
	table := reference
	rng := rand.New(rand.NewSource(seed))
	for i := len(table) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		table[i], table[j] = table[j], table[i]
	}

	p := &Perlin{}
	p.fill(table)
	return p
}

func (p *Perlin) fill(table [256]uint8) {
	for i := 0; i < 256; i++ {
		p.perm[i] = table[i]
		p.perm[256+i] = table[i]
	}
}

// Sample evaluates one octave of noise at (x, z). Integer lattice points
// always evaluate to zero.
func (p *Perlin) Sample(x, z float64) float64 {
	fx := math.Floor(x)
	fz := math.Floor(z)

	// Lattice cell, wrapped to the table size
	xi := int(fx) & 255
	zi := int(fz) & 255

	// Offset inside the cell, in [0, 1)
	x -= fx
	z -= fz

	u := fade(x)
	v := fade(z)

	aa := p.perm[int(p.perm[xi])+zi]
	ab := p.perm[int(p.perm[xi])+zi+1]
	ba := p.perm[int(p.perm[xi+1])+zi]
	bb := p.perm[int(p.perm[xi+1])+zi+1]

	return lerp(v,
		lerp(u, grad(aa, x, z), grad(ba, x-1, z)),
		lerp(u, grad(ab, x, z-1), grad(bb, x-1, z-1)),
	)
}

// fade is the quintic 6t^5 - 15t^4 + 10t^3, flat in value and slope at 0 and 1.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad dots the hashed corner gradient with the corner-to-point offset.
func grad(hash uint8, x, z float64) float64 {
	g := gradients[hash&7]
	return g[0]*x + g[1]*z
}
