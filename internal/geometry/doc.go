// Package geometry generates the point sets of a confocal field-line diagram.
//
// Every curve in a [Scene] shares one focal distance f. Ellipses are traced
// by sweeping an angle at fixed radius r, hyperbolae by sweeping a radius at
// fixed angle θ, both through the same map:
//
//	x = sqrt(r² + f²)·sin θ
//	y = r·cos θ
//
// The ellipses have semi-minor axis r and semi-major axis sqrt(r² + f²); the
// hyperbolae satisfy x²/sin²θ − y²/cos²θ = f².
//
//   - [Generator]: validated sampling parameters, produces curves and scenes
//   - [ViewBounds]: viewport-derived radius and axis extents
//   - [Scene]: ordered curves, ellipses first
//
// # Thread Safety
//
// A Generator is immutable after construction and may be shared.
package geometry
