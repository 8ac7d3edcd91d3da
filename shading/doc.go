// Package shading implements the relativistic color model for accretion
// disk material.
//
// A disk sample is described by its normalized radius t (0 at the inner
// edge, 1 at the outer edge) and by its Doppler factor D. The radius picks a
// base color from a blackbody-like Ramp; D brightens approaching material by
// D³ (relativistic beaming) and nudges its hue toward blue, while receding
// material dims and reddens. No spectral integration is performed.
//
//	beta := shading.OrbitalBeta(radius, inner)
//	d := shading.Doppler(beta, math.Cos(angle), shading.DiskRange)
//	c := shading.Shade(t, d)
//
// Every function in this package is pure.
package shading
