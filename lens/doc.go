// Package lens bends the rendered scene around a black hole and composites
// the final image.
//
// The pass is screen-space: every output pixel is mapped by Distort to a
// coordinate in the offscreen buffer, sampled with FXAA and bloom, and then
// shaded by its distance from the black hole. Coordinates are normalized to
// [0,1]² with the origin at the top-left; distances scale the X component
// by the viewport aspect ratio so that rings are circular on screen.
//
// All functions are pure. Tuning values live in Config and are passed in
// explicitly; nothing in the package holds mutable state, so a Pass may be
// split across any number of goroutines.
package lens
