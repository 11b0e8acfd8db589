// Package viz renders the confocal diagram in a terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: Bubble Tea model that feeds input to a [field.Controller]
//   - [Surface]: a [field.Renderer] drawing scenes onto a Braille [Canvas]
//   - Theme selection with 6 built-in color schemes
//
// # Key Bindings
//
//	←/h   - Decrease focal distance
//	→/l   - Increase focal distance
//	F     - Fullscreen (alternate screen)
//	T     - Cycle color themes
//	Q     - Quit
//
// The on-screen arrows below the plot respond to mouse presses the way the
// keys do; they widen while held.
//
// One terminal cell stands for CellWidth×CellHeight viewport pixels, so a
// Braille sub-pixel is square and the wrap-around limit scales with the
// terminal width.
package viz
