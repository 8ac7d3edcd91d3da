// Package gargantua renders a black hole bending the light of the scene
// behind it.
//
// # Overview
//
// Each frame is two passes over CPU pixmaps. The scene pass draws a star
// field, an accretion disk of orbiting particles, Einstein-ring arcs and a
// photon sphere into an offscreen buffer. The lens pass then resamples that
// buffer around the projected hole: a gravitational deflection pulls the
// sample point toward the center, and bloom, a horizon shadow, an orange
// glow, chromatic aberration, Reinhard tone mapping and gamma correction
// are layered on top.
//
// # Quick Start
//
//	r, err := gargantua.NewRenderer(1280, 720, gargantua.WithSeed(7))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	frame, err := r.Frame(1.0 / 60)
//	if err != nil {
//		log.Fatal(err)
//	}
//	frame.SavePNG("gargantua.png")
//
// # Coordinate System
//
// Pixel coordinates have their origin at the top-left, X to the right and
// Y down. Lens distances are measured in units of the viewport height with
// the X offset scaled by the aspect ratio, so the horizon stays circular on
// any frame size.
//
// # Architecture
//
//   - surface: float color and the Pixmap buffers with bilinear sampling
//   - shading: temperature ramp and Doppler shading of the disk
//   - orbit: Keplerian disk elements
//   - camera: orbit camera, projection and the spring-smoothed controller
//   - scene: the scene pass
//   - lens: the lens pass
//
// A Renderer is not safe for concurrent use. The passes themselves fan out
// across an internal worker pool.
package gargantua

// Version information
const (
	// Version is the current version of the renderer
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
