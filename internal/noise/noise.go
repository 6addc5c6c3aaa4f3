// Package noise provides deterministic 2D gradient-noise fields used to derive
// terrain heights.
//
// Every Field returns a single octave. Octave layering (frequency growth and
// amplitude decay) belongs to the caller.
package noise

import (
	"errors"
	"fmt"
	"strings"
)

// Field maps a 2D coordinate to a scalar noise value in roughly [-1, 1].
// Implementations are pure: equal inputs always produce equal outputs.
type Field interface {
	Sample(x, z float64) float64
}

// Kind names a noise backend.
type Kind string

// Supported backends.
const (
	KindClassic     Kind = "classic"
	KindShuffled    Kind = "shuffled"
	KindAquilax     Kind = "aquilax"
	KindOpenSimplex Kind = "opensimplex"
)

// ErrUnknownKind is returned by New for an unrecognised backend name.
var ErrUnknownKind = errors.New("noise: unknown kind")

// Kinds lists the backends accepted by New.
func Kinds() []Kind {
	return []Kind{KindClassic, KindShuffled, KindAquilax, KindOpenSimplex}
}

// New builds the field for the named backend. The seed is ignored by
// KindClassic, which always uses the reference permutation.
func New(kind Kind, seed int64) (Field, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case KindClassic, "":
		return NewPerlin(), nil
	case KindShuffled:
		return NewShuffledPerlin(seed), nil
	case KindAquilax:
		return NewAquilax(seed), nil
	case KindOpenSimplex:
		return NewOpenSimplex(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
