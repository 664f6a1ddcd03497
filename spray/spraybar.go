// Package spray implements the inflow sampler that continuously seeds new
// fluid particles near a spray bar.
package spray

import (
	"math/rand/v2"

	"github.com/pthm-cable/mlsmpm/vecmath"
)

const uniformHalfSpan = 100.0 / 201.0

// Bar is a uniform random point sampler over a box: each call returns a
// point center + u*extent with u uniform in (-100/201, 100/201) per axis.
type Bar struct {
	Center vecmath.Vec
	Extent vecmath.Vec
	rng    *rand.Rand
}

// NewBar builds a sampler seeded from seed for reproducible test runs.
func NewBar(center, extent vecmath.Vec, seed uint64) *Bar {
	return &Bar{Center: center, Extent: extent, rng: rand.New(rand.NewPCG(seed, seed))}
}

// Sample draws one point from the bar's box.
func (b *Bar) Sample() vecmath.Vec {
	u := vecmath.Vec{
		X: b.uniform(),
		Y: b.uniform(),
		Z: b.uniform(),
	}
	return vecmath.Add(b.Center, vecmath.Vec{
		X: u.X * b.Extent.X,
		Y: u.Y * b.Extent.Y,
		Z: u.Z * b.Extent.Z,
	})
}

func (b *Bar) uniform() float64 {
	return -uniformHalfSpan + b.rng.Float64()*2*uniformHalfSpan
}

// Ring precomputes n deterministic samples for a reproducible inflow
// pattern, looping back to the first sample once exhausted.
type Ring struct {
	samples []vecmath.Vec
	next    int
}

// NewRing precomputes n samples from bar.
func NewRing(bar *Bar, n int) *Ring {
	samples := make([]vecmath.Vec, n)
	for i := range samples {
		samples[i] = bar.Sample()
	}
	return &Ring{samples: samples}
}

// Next returns the next sample in the ring, wrapping around.
func (r *Ring) Next() vecmath.Vec {
	if len(r.samples) == 0 {
		return vecmath.Vec{}
	}
	s := r.samples[r.next]
	r.next = (r.next + 1) % len(r.samples)
	return s
}
