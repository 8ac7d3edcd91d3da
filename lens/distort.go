package lens

import "math"

// Distort returns the coordinate the offscreen buffer should be sampled at
// for output coordinate uv, bending the view toward a black hole of apparent
// radius r at center.
//
// The deflection r²/(d²+Softening·r) falls off as an inverse square,
// softened so it stays finite at the center; real weak-field bending goes
// as 2·Rs/b. Between r and WrapOuter·r a bump centered on the photon sphere
// strengthens it. Points within SkipFactor·r of the center are returned
// unchanged. Distort is stateless.
func Distort(uv, center Vec2, r, aspect float64, cfg *Config) Vec2 {
	delta := Delta(uv, center, aspect)
	dist := delta.Len()
	if dist <= cfg.SkipFactor*r {
		return uv
	}

	deflection := Deflection(dist, r, cfg)
	wrap := Wrap(dist, r, cfg)

	dir := delta.Scale(1 / dist)
	return uv.Sub(dir.Scale(deflection * wrap * cfg.Strength))
}

// Deflection is the softened inverse-square bending magnitude at distance d.
func Deflection(d, r float64, cfg *Config) float64 {
	return r * r / (d*d + cfg.Softening*r)
}

// Wrap is the strong-field multiplier: 1 outside (r, WrapOuter·r), and
// 1 + WrapGain·exp(-(d - PhotonSphere·r)·WrapFalloff) inside.
func Wrap(d, r float64, cfg *Config) float64 {
	if d <= r || d >= cfg.WrapOuter*r {
		return 1
	}
	return 1 + cfg.WrapGain*math.Exp(-(d-cfg.PhotonSphere*r)*cfg.WrapFalloff)
}

// MaxOffset bounds |Distort(uv) - uv| for any uv: the deflection peaks where
// d is smallest and the wrap factor never exceeds its value at d = r.
func MaxOffset(r float64, cfg *Config) float64 {
	dmin := cfg.SkipFactor * r
	return Deflection(dmin, r, cfg) * (1 + cfg.WrapGain*math.Exp((cfg.PhotonSphere-1)*r*cfg.WrapFalloff)) * cfg.Strength
}
