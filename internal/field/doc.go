// Package field owns the interactive state of the confocal diagram.
//
// A [Controller] holds the focal distance and the current [geometry.ViewBounds].
// Input arrives as discrete events (directional keys, press-and-hold arrows,
// viewport resizes, first touch or key press, fullscreen requests). Every
// state change regenerates the whole scene and hands it to a [Renderer];
// nothing is diffed or cached.
//
// # Wrap-around
//
// After each update tick the focal distance is compared against
// WrapFactor × viewport width. Once its magnitude exceeds that limit its sign
// is flipped, so repeated input oscillates instead of drifting.
//
// # Thread Safety
//
// Controller instances are NOT thread-safe. Front-ends deliver events from a
// single goroutine and each handler completes, redraw included, before it
// returns.
package field
