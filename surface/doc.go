// Package surface provides the pixel buffers the renderer draws into and
// reads from.
//
// A frame uses two pixmaps of identical size: the offscreen buffer that
// receives the emissive scene geometry, and the output buffer produced by
// the lens pass. The offscreen buffer is read through Sample, which behaves
// like a linearly filtered, clamp-to-edge texture addressed by normalized
// coordinates.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - u increases right, v increases down
//   - Texel centers sit at ((x+0.5)/width, (y+0.5)/height)
//
// Both Pixmap and Color implement the standard image interfaces, so a
// Pixmap can be handed to image/png, golang.org/x/image/draw or font
// drawers directly.
package surface
